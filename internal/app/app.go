//go:build ebiten

// Package app adapts the engine to ebiten's game loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"camera-trail/internal/capture"
	"camera-trail/internal/engine"
	"camera-trail/internal/render"
	"camera-trail/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game drives one engine tick per ebiten update.
type Game struct {
	eng     *engine.Engine
	src     capture.Source
	painter *render.FramePainter
	hud     *ui.HUD

	scale   int
	timeout time.Duration
	frame   *image.RGBA
}

// New constructs a Game. The caller keeps ownership of src.
func New(eng *engine.Engine, src capture.Source, scale int, timeout time.Duration) *Game {
	size := eng.Size()
	if scale <= 0 {
		scale = 1
	}
	if timeout <= 0 {
		timeout = capture.DefaultFrameTimeout
	}
	return &Game{
		eng:     eng,
		src:     src,
		painter: render.NewFramePainter(size.W, size.H),
		hud:     ui.NewHUD(eng),
		scale:   scale,
		timeout: timeout,
	}
}

// Update handles input and advances the engine by one frame.
func (g *Game) Update() error {
	in := ui.PollInput()
	if in.Quit {
		return ebiten.Termination
	}
	if in.ToggleHUD {
		g.hud.Toggle()
	}
	g.eng.Apply(in.Events...)

	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()
	frame, err := g.src.RequestFrame(ctx)
	if err != nil {
		if errors.Is(err, capture.ErrEndOfStream) {
			slog.Info("app: source exhausted")
			return ebiten.Termination
		}
		return fmt.Errorf("app: capture failed: %w", err)
	}

	out, err := g.eng.Tick(frame, nil)
	if err != nil {
		return err
	}
	g.frame = out
	g.hud.Update()
	return nil
}

// Draw renders the last composited frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.frame, g.scale)
	g.hud.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.eng.Size()
	return s.W * g.scale, s.H * g.scale
}
