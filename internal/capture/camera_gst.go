//go:build gst

package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"camera-trail/internal/core"

	"github.com/google/uuid"
	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"
)

// CameraSource captures frames from a local camera through a GStreamer
// pipeline:
//
//	v4l2src|autovideosrc → videoconvert → videoscale → capsfilter(RGB) → appsink
type CameraSource struct {
	cfg      CameraConfig
	pipeline *gst.Pipeline
	sink     *app.Sink

	frames   chan *Frame
	failed   chan struct{}
	failOnce sync.Once
	failErr  error

	seq     uint64
	dropped uint64

	reqMu  sync.Mutex
	closed atomic.Bool
	once   sync.Once
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewCamera opens the device and starts the pipeline. It returns an error
// wrapping ErrUnavailable when no camera can be opened or it is busy.
func NewCamera(cfg CameraConfig) (*CameraSource, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("capture: invalid frame size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFrameTimeout
	}

	gst.Init(nil)

	s := &CameraSource{
		cfg:    cfg,
		frames: make(chan *Frame, 1),
		failed: make(chan struct{}),
	}
	if err := s.build(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.sink.SetCallbacks(&app.SinkCallbacks{
		NewSampleFunc: s.onNewSample,
	})

	if err := s.pipeline.SetState(gst.StatePlaying); err != nil {
		s.pipeline.SetState(gst.StateNull)
		return nil, fmt.Errorf("%w: %v", ErrDeviceBusy, err)
	}
	if err := s.awaitPlaying(5 * time.Second); err != nil {
		s.pipeline.SetState(gst.StateNull)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	go s.monitor(ctx)

	slog.Info("capture: camera started",
		"device", deviceLabel(cfg.Device),
		"resolution", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"fps", cfg.FPS,
	)
	return s, nil
}

func deviceLabel(dev string) string {
	if dev == "" {
		return "default"
	}
	return dev
}

func (s *CameraSource) build() error {
	pipeline, err := gst.NewPipeline("")
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	var src *gst.Element
	if s.cfg.Device != "" {
		src, err = gst.NewElement("v4l2src")
		if err != nil {
			return fmt.Errorf("failed to create v4l2src: %w", err)
		}
		if err := src.SetProperty("device", s.cfg.Device); err != nil {
			return fmt.Errorf("failed to set device: %w", err)
		}
	} else {
		src, err = gst.NewElement("autovideosrc")
		if err != nil {
			return fmt.Errorf("failed to create autovideosrc: %w", err)
		}
	}

	converter, err := gst.NewElement("videoconvert")
	if err != nil {
		return fmt.Errorf("failed to create videoconvert: %w", err)
	}
	scaler, err := gst.NewElement("videoscale")
	if err != nil {
		return fmt.Errorf("failed to create videoscale: %w", err)
	}
	rate, err := gst.NewElement("videorate")
	if err != nil {
		return fmt.Errorf("failed to create videorate: %w", err)
	}
	rate.SetProperty("drop-only", true)

	capsfilter, err := gst.NewElement("capsfilter")
	if err != nil {
		return fmt.Errorf("failed to create capsfilter: %w", err)
	}
	capsfilter.SetProperty("caps", gst.NewCapsFromString(s.capsString()))

	sink, err := app.NewAppSink()
	if err != nil {
		return fmt.Errorf("failed to create appsink: %w", err)
	}
	sink.SetProperty("sync", false)
	sink.SetProperty("max-buffers", 1)
	sink.SetProperty("drop", true)

	if err := pipeline.AddMany(src, converter, scaler, rate, capsfilter, sink.Element); err != nil {
		return fmt.Errorf("failed to add elements: %w", err)
	}
	if err := gst.ElementLinkMany(src, converter, scaler, rate, capsfilter, sink.Element); err != nil {
		return fmt.Errorf("failed to link elements: %w", err)
	}

	s.pipeline = pipeline
	s.sink = sink
	return nil
}

func (s *CameraSource) capsString() string {
	caps := fmt.Sprintf("video/x-raw,format=RGB,width=%d,height=%d", s.cfg.Width, s.cfg.Height)
	if s.cfg.FPS > 0 {
		caps += fmt.Sprintf(",framerate=%d/1", s.cfg.FPS)
	}
	return caps
}

// awaitPlaying watches the bus until the pipeline plays or reports an error.
func (s *CameraSource) awaitPlaying(limit time.Duration) error {
	bus := s.pipeline.GetPipelineBus()
	deadline := time.Now().Add(limit)
	for time.Now().Before(deadline) {
		msg := bus.TimedPop(100 * time.Millisecond)
		if msg == nil {
			continue
		}
		switch msg.Type() {
		case gst.MessageError:
			gerr := msg.ParseError()
			return fmt.Errorf("capture failed, the device may be already in use: %s", gerr.Error())
		case gst.MessageStateChanged:
			if msg.Source() != s.pipeline.GetName() {
				continue
			}
			if _, newState := msg.ParseStateChanged(); newState == gst.StatePlaying {
				return nil
			}
		}
	}
	return errors.New("no camera detected: pipeline did not reach PLAYING")
}

func (s *CameraSource) onNewSample(sink *app.Sink) gst.FlowReturn {
	sample := sink.PullSample()
	if sample == nil {
		slog.Warn("capture: failed to pull sample from appsink, skipping frame")
		return gst.FlowOK
	}
	buffer := sample.GetBuffer()
	if buffer == nil {
		slog.Warn("capture: failed to get buffer from sample, skipping frame")
		return gst.FlowOK
	}

	mapInfo := buffer.Map(gst.MapRead)
	data := mapInfo.Bytes()
	f := NewFrame(s.cfg.Width, s.cfg.Height)
	ok := unpadRGB(f.Pix, data, s.cfg.Width, s.cfg.Height)
	buffer.Unmap()
	if !ok {
		slog.Warn("capture: unexpected buffer size, skipping frame",
			"size_bytes", len(data),
			"expected", rgbStride(s.cfg.Width)*s.cfg.Height,
		)
		return gst.FlowOK
	}

	f.Seq = atomic.AddUint64(&s.seq, 1)
	f.Timestamp = time.Now()
	f.TraceID = uuid.New().String()

	// Keep only the newest frame.
	select {
	case s.frames <- f:
	default:
		select {
		case <-s.frames:
			atomic.AddUint64(&s.dropped, 1)
		default:
		}
		select {
		case s.frames <- f:
		default:
		}
	}
	return gst.FlowOK
}

func (s *CameraSource) monitor(ctx context.Context) {
	defer s.wg.Done()
	bus := s.pipeline.GetPipelineBus()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		msg := bus.TimedPop(50 * time.Millisecond)
		if msg == nil {
			continue
		}
		switch msg.Type() {
		case gst.MessageEOS:
			s.fail(errors.New("capture: camera stream ended"))
			return
		case gst.MessageError:
			gerr := msg.ParseError()
			slog.Error("capture: pipeline error",
				"error", gerr.Error(),
				"debug", gerr.DebugString(),
				"frames_captured", atomic.LoadUint64(&s.seq),
			)
			s.fail(fmt.Errorf("capture: pipeline error: %s", gerr.Error()))
			return
		}
	}
}

func (s *CameraSource) fail(err error) {
	s.failOnce.Do(func() {
		s.failErr = err
		close(s.failed)
	})
}

// Size reports the frame dimensions.
func (s *CameraSource) Size() core.Size { return core.Size{W: s.cfg.Width, H: s.cfg.Height} }

// RequestFrame waits for the next captured frame, bounded by ctx and the
// configured timeout.
func (s *CameraSource) RequestFrame(ctx context.Context) (*Frame, error) {
	s.reqMu.Lock()
	defer s.reqMu.Unlock()
	if s.closed.Load() {
		return nil, ErrClosed
	}

	timer := time.NewTimer(s.cfg.Timeout)
	defer timer.Stop()
	select {
	case f := <-s.frames:
		return f, nil
	case <-s.failed:
		return nil, s.failErr
	case <-timer.C:
		return nil, ErrTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close waits for an in-flight request, stops the bus monitor and releases
// the device.
func (s *CameraSource) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		s.reqMu.Lock()
		defer s.reqMu.Unlock()

		s.cancel()
		s.wg.Wait()
		if serr := s.pipeline.SetState(gst.StateNull); serr != nil {
			err = fmt.Errorf("capture: failed to stop pipeline: %w", serr)
		}
		slog.Info("capture: camera released",
			"frames_captured", atomic.LoadUint64(&s.seq),
			"frames_dropped", atomic.LoadUint64(&s.dropped),
		)
	})
	return err
}
