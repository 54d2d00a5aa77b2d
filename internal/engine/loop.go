package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"camera-trail/internal/capture"
	"camera-trail/internal/mode"
)

// Sink receives every composited frame. The image is only valid until the
// next tick.
type Sink interface {
	Present(img *image.RGBA) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(img *image.RGBA) error

// Present calls f.
func (f SinkFunc) Present(img *image.RGBA) error { return f(img) }

// EventSource drains the input events collected since the last call.
type EventSource func() []mode.Event

// Run drives the tick loop until ctx is cancelled or the source fails. One
// iteration drains events, waits for a frame, ticks and presents. A source
// reporting capture.ErrEndOfStream ends the loop without error. Run never
// closes src.
func (e *Engine) Run(ctx context.Context, src capture.Source, sink Sink, events EventSource) error {
	if src.Size() != e.size {
		return fmt.Errorf("engine: source size %v does not match %v", src.Size(), e.size)
	}
	for {
		if ctx.Err() != nil {
			return nil
		}
		if events != nil {
			e.Apply(events()...)
		}

		frame, err := src.RequestFrame(ctx)
		switch {
		case err == nil:
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, capture.ErrEndOfStream):
			slog.Info("engine: source exhausted", "ticks", e.stats.Ticks)
			return nil
		default:
			return fmt.Errorf("engine: frame request failed: %w", err)
		}

		img, err := e.Tick(frame, nil)
		if err != nil {
			return err
		}
		if sink != nil {
			if err := sink.Present(img); err != nil {
				return fmt.Errorf("engine: present: %w", err)
			}
		}
		slog.Debug("engine: tick",
			"seq", frame.Seq,
			"trace_id", frame.TraceID,
			"bright", e.stats.BrightPixels,
			"live", e.stats.LiveCells,
		)
	}
}
