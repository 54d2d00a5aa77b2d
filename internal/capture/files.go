package capture

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"camera-trail/internal/core"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FileConfig describes an image-sequence source.
type FileConfig struct {
	// Pattern is a filepath.Glob pattern; matches are played in lexical order.
	Pattern string
	Width   int
	Height  int
	// Loop restarts from the first file instead of reporting ErrEndOfStream.
	Loop bool
}

// FileSource replays still images as frames, scaling each to the configured
// size.
type FileSource struct {
	cfg     FileConfig
	paths   []string
	scratch *image.RGBA

	mu     sync.Mutex
	next   int
	seq    uint64
	closed bool
}

// NewFiles resolves the glob and returns a source over the matches.
func NewFiles(cfg FileConfig) (*FileSource, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("capture: invalid frame size %dx%d", cfg.Width, cfg.Height)
	}
	paths, err := filepath.Glob(cfg.Pattern)
	if err != nil {
		return nil, fmt.Errorf("capture: bad input pattern %q: %w", cfg.Pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("capture: no files match %q: %w", cfg.Pattern, ErrUnavailable)
	}
	sort.Strings(paths)
	slog.Info("capture: image sequence ready",
		"pattern", cfg.Pattern,
		"files", len(paths),
		"loop", cfg.Loop,
	)
	return &FileSource{
		cfg:     cfg,
		paths:   paths,
		scratch: image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)),
	}, nil
}

// Size reports the frame dimensions.
func (s *FileSource) Size() core.Size { return core.Size{W: s.cfg.Width, H: s.cfg.Height} }

// Len returns the number of files in the sequence.
func (s *FileSource) Len() int { return len(s.paths) }

// RequestFrame decodes and scales the next file.
func (s *FileSource) RequestFrame(ctx context.Context) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if s.next >= len(s.paths) {
		if !s.cfg.Loop {
			return nil, ErrEndOfStream
		}
		s.next = 0
	}
	path := s.paths[s.next]
	s.next++

	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	draw.ApproxBiLinear.Scale(s.scratch, s.scratch.Bounds(), img, img.Bounds(), draw.Src, nil)

	f := NewFrame(s.cfg.Width, s.cfg.Height)
	packRGB(f.Pix, s.scratch)
	s.seq++
	f.Seq = s.seq
	f.Timestamp = time.Now()
	f.TraceID = uuid.New().String()
	slog.Debug("capture: frame decoded", "path", path, "seq", f.Seq, "trace_id", f.TraceID)
	return f, nil
}

func decodeFile(path string) (image.Image, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("capture: open %s: %w", path, err)
	}
	defer fh.Close()
	img, _, err := image.Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("capture: decode %s: %w", path, err)
	}
	return img, nil
}

// packRGB drops alpha from an opaque RGBA image. Partially transparent input
// is flattened onto black by the premultiplied representation.
func packRGB(dst []byte, src *image.RGBA) {
	b := src.Bounds()
	w := b.Dx()
	for y := 0; y < b.Dy(); y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		out := dst[y*w*3 : (y+1)*w*3]
		for x := 0; x < w; x++ {
			out[x*3] = row[x*4]
			out[x*3+1] = row[x*4+1]
			out[x*3+2] = row[x*4+2]
		}
	}
}

// Close marks the source closed once any in-flight decode has finished.
func (s *FileSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
