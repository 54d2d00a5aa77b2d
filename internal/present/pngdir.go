// Package present holds the non-GUI presentation sinks.
package present

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
)

// PNGDir writes every presented frame to dir as frame-NNNNNN.png.
type PNGDir struct {
	dir     string
	enc     png.Encoder
	written int
}

// NewPNGDir creates dir if needed.
func NewPNGDir(dir string) (*PNGDir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("present: %w", err)
	}
	slog.Info("present: writing frames", "dir", dir)
	return &PNGDir{dir: dir, enc: png.Encoder{CompressionLevel: png.BestSpeed}}, nil
}

// Present encodes img to the next file in sequence.
func (p *PNGDir) Present(img *image.RGBA) error {
	path := filepath.Join(p.dir, fmt.Sprintf("frame-%06d.png", p.written))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("present: %w", err)
	}
	if err := p.enc.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("present: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	p.written++
	return nil
}

// Written reports how many frames have been saved.
func (p *PNGDir) Written() int { return p.written }
