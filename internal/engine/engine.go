// Package engine runs the per-tick pipeline: input events, trail update,
// automaton seeding, compositing and the automaton step.
package engine

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strconv"

	"camera-trail/internal/automaton"
	"camera-trail/internal/capture"
	"camera-trail/internal/compositor"
	"camera-trail/internal/config"
	"camera-trail/internal/core"
	"camera-trail/internal/mode"
	"camera-trail/internal/palette"
	"camera-trail/internal/trail"
)

// Stats summarises the most recent tick.
type Stats struct {
	Ticks        uint64
	RainbowTicks uint64
	BrightPixels int
	LiveCells    int
}

// Engine owns every piece of per-process state. It is not safe for
// concurrent use; the tick loop is its only caller.
type Engine struct {
	size       core.Size
	classifier trail.Classifier
	trail      *trail.Buffer
	cells      *automaton.Automaton
	comp       *compositor.Compositor
	palette    palette.Palette
	out        *image.RGBA

	state mode.State
	stats Stats
}

// New allocates an engine from validated configuration.
func New(cfg *config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	size := core.Size{W: cfg.Width, H: cfg.Height}
	return &Engine{
		size:       size,
		classifier: trail.NewClassifier(uint8(cfg.Threshold)),
		trail:      trail.NewBuffer(size.W, size.H, cfg.TrailParams()),
		cells:      automaton.New(size, cfg.CellSize),
		comp:       compositor.New(compositor.DefaultCellColor(uint8(cfg.CellAlpha))),
		palette:    palette.Rainbow,
		out:        image.NewRGBA(image.Rect(0, 0, size.W, size.H)),
		state:      mode.State{Mode: cfg.InitialMode, TrailEnabled: cfg.TrailEnabled},
	}, nil
}

// Size returns the fixed frame size.
func (e *Engine) Size() core.Size { return e.size }

// State returns the current mode state.
func (e *Engine) State() mode.State { return e.state }

// Stats returns counters for the most recent tick.
func (e *Engine) Stats() Stats { return e.stats }

// Trail exposes the trail buffer for inspection.
func (e *Engine) Trail() *trail.Buffer { return e.trail }

// Automaton exposes the cell grid for inspection.
func (e *Engine) Automaton() *automaton.Automaton { return e.cells }

// Apply runs events through the state machine in order.
func (e *Engine) Apply(events ...mode.Event) {
	for _, ev := range events {
		next, effect := mode.Transition(e.state, ev)
		if next != e.state {
			slog.Debug("engine: mode state changed",
				"event", ev.String(),
				"mode", next.Mode.String(),
				"trail", next.TrailEnabled,
			)
		}
		e.state = next
		if effect == mode.EffectClearTrail {
			e.trail.Clear()
			slog.Debug("engine: trail cleared")
		}
	}
}

// Tick validates frame, applies events, consumes the frame and returns the
// composited image, which is reused by the next tick. A rejected frame leaves
// the engine untouched.
func (e *Engine) Tick(frame *capture.Frame, events []mode.Event) (*image.RGBA, error) {
	if frame == nil {
		return nil, fmt.Errorf("engine: nil frame")
	}
	if frame.Size() != e.size || len(frame.Pix) != e.size.Pixels()*3 {
		return nil, fmt.Errorf("engine: frame %dx%d does not match %dx%d", frame.Width, frame.Height, e.size.W, e.size.H)
	}
	e.Apply(events...)

	e.stats.BrightPixels = e.ingest(frame)

	layers := compositor.Layers{
		Background: e.background(),
		Trail:      e.trail.Image(),
	}
	if e.state.Mode.Automaton() {
		layers.Cells = e.cells.Grid()
		layers.CellSize = e.cells.CellSize()
	}
	if err := e.comp.Compose(e.out, layers); err != nil {
		return nil, err
	}

	if rule := ruleFor(e.state.Mode); rule != nil {
		e.cells.Step(rule)
	}
	e.stats.Ticks++
	e.stats.LiveCells = e.cells.Live()
	return e.out, nil
}

// ingest classifies every pixel once, updating the trail and seeding cells.
func (e *Engine) ingest(frame *capture.Frame) int {
	enabled := e.state.TrailEnabled
	bright := 0
	i := 0
	for y := 0; y < e.size.H; y++ {
		for x := 0; x < e.size.W; x++ {
			r, g, b := frame.RGB(x, y)
			isBright := e.classifier.Bright(r, g, b)
			e.trail.Update(i, r, g, b, isBright, enabled)
			if isBright {
				bright++
				e.cells.Seed(x, y)
			}
			i++
		}
	}
	return bright
}

func (e *Engine) background() color.Color {
	if e.state.Mode != mode.Rainbow {
		return color.White
	}
	c := e.palette.At(e.stats.RainbowTicks)
	e.stats.RainbowTicks++
	return c
}

func ruleFor(m mode.Mode) automaton.Rule {
	switch m {
	case mode.GameOfLife:
		return automaton.Life{}
	case mode.Sand:
		return automaton.Sand{}
	}
	return nil
}

// Parameters reports the current configuration and counters for display.
func (e *Engine) Parameters() core.ParameterSnapshot {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Mode",
			Params: []core.Parameter{
				{Key: "mode", Label: "Mode", Value: e.state.Mode.String()},
				{Key: "trail", Label: "Trail", Value: onOff(e.state.TrailEnabled)},
			},
		},
		{
			Name: "Frame",
			Params: []core.Parameter{
				{Key: "tick", Label: "Tick", Value: strconv.FormatUint(e.stats.Ticks, 10)},
				{Key: "bright", Label: "Bright px", Value: strconv.Itoa(e.stats.BrightPixels)},
				{Key: "live", Label: "Live cells", Value: strconv.Itoa(e.stats.LiveCells)},
			},
		},
		{
			Name: "Tuning",
			Params: []core.Parameter{
				{Key: "threshold", Label: "Threshold", Value: strconv.Itoa(int(e.classifier.Threshold))},
				{Key: "cell_size", Label: "Cell size", Value: strconv.Itoa(e.cells.CellSize())},
			},
		},
	}}
}
