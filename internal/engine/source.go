package engine

import (
	"fmt"
	"time"

	"camera-trail/internal/capture"
	"camera-trail/internal/config"
)

// OpenSource constructs the frame source selected by cfg.Source. When paced
// is false the synthetic pattern delivers frames as fast as they are
// requested, which suits offline rendering.
func OpenSource(cfg *config.Config, paced bool) (capture.Source, error) {
	switch cfg.Source {
	case config.SourceCamera:
		cam, err := capture.NewCamera(capture.CameraConfig{
			Device:  cfg.Device,
			Width:   cfg.Width,
			Height:  cfg.Height,
			FPS:     cfg.TPS,
			Timeout: cfg.FrameTimeout,
		})
		if err != nil {
			return nil, err
		}
		return cam, nil
	case config.SourcePattern:
		var interval time.Duration
		if paced && cfg.TPS > 0 {
			interval = time.Second / time.Duration(cfg.TPS)
		}
		radius := min(cfg.Width, cfg.Height) / 24
		return capture.NewPattern(capture.PatternConfig{
			Width:    cfg.Width,
			Height:   cfg.Height,
			Blobs:    3,
			Radius:   max(radius, 1),
			Interval: interval,
			Seed:     cfg.Seed,
		}), nil
	case config.SourceFiles:
		files, err := capture.NewFiles(capture.FileConfig{
			Pattern: cfg.InputGlob,
			Width:   cfg.Width,
			Height:  cfg.Height,
			Loop:    cfg.Loop,
		})
		if err != nil {
			return nil, err
		}
		return files, nil
	}
	return nil, fmt.Errorf("engine: unknown source %q", cfg.Source)
}
