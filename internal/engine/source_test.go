package engine

import (
	"context"
	"errors"
	"image"
	"testing"

	"camera-trail/internal/capture"
	"camera-trail/internal/config"
)

func TestOpenSourcePattern(t *testing.T) {
	cfg := smallConfig()
	cfg.Source = config.SourcePattern
	src, err := OpenSource(cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	e := newEngine(t, cfg)
	ctx, cancel := context.WithCancel(context.Background())
	err = e.Run(ctx, src, SinkFunc(func(img *image.RGBA) error {
		if e.Stats().Ticks == 4 {
			cancel()
		}
		return nil
	}), nil)
	if err != nil {
		t.Fatal(err)
	}
}

func TestOpenSourceErrors(t *testing.T) {
	cfg := smallConfig()
	cfg.Source = config.SourceFiles
	cfg.InputGlob = t.TempDir() + "/*.png"
	if _, err := OpenSource(cfg, false); !errors.Is(err, capture.ErrUnavailable) {
		t.Fatalf("empty glob should be unavailable, got %v", err)
	}

	cfg.Source = "webcam"
	if _, err := OpenSource(cfg, false); err == nil {
		t.Fatal("expected unknown source error")
	}
}
