package engine

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"slices"
	"testing"

	"camera-trail/internal/automaton"
	"camera-trail/internal/capture"
	"camera-trail/internal/config"
	"camera-trail/internal/core"
	"camera-trail/internal/mode"
	"camera-trail/internal/palette"
)

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Width = 10
	cfg.Height = 10
	cfg.CellSize = 5
	return cfg
}

func newEngine(t *testing.T, cfg *config.Config) *Engine {
	t.Helper()
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func darkFrame(w, h int) *capture.Frame {
	f := capture.NewFrame(w, h)
	for i := range f.Pix {
		f.Pix[i] = 20
	}
	return f
}

func whiteFrame(w, h int) *capture.Frame {
	f := capture.NewFrame(w, h)
	for i := range f.Pix {
		f.Pix[i] = 255
	}
	return f
}

func TestBrightPixelOpensTrailAndSeedsCell(t *testing.T) {
	e := newEngine(t, smallConfig())
	f := darkFrame(10, 10)
	f.SetRGB(7, 2, 255, 255, 255)

	if _, err := e.Tick(f, nil); err != nil {
		t.Fatal(err)
	}
	if got := e.Trail().Alpha(7, 2); got != 55 {
		t.Fatalf("bright pixel alpha=%d, expected 55", got)
	}
	if got := e.Trail().Alpha(0, 0); got != 255 {
		t.Fatalf("dark pixel alpha=%d, expected 255", got)
	}
	if !e.Automaton().Grid().At(0, 1) {
		t.Fatal("cell owning (7,2) should be seeded")
	}
	if e.Stats().BrightPixels != 1 || e.Stats().LiveCells != 1 {
		t.Fatalf("unexpected stats %+v", e.Stats())
	}
}

func TestSeedsAccumulateOutsideAutomatonModes(t *testing.T) {
	e := newEngine(t, smallConfig())
	f := darkFrame(10, 10)
	f.SetRGB(0, 0, 255, 255, 255)
	for i := 0; i < 3; i++ {
		if _, err := e.Tick(f, nil); err != nil {
			t.Fatal(err)
		}
	}
	if e.Stats().LiveCells != 1 {
		t.Fatalf("a lone seeded cell must survive in normal mode, live=%d", e.Stats().LiveCells)
	}

	// Switching to life evolves the lone cell away after one step.
	if _, err := e.Tick(darkFrame(10, 10), []mode.Event{mode.Select(mode.GameOfLife)}); err != nil {
		t.Fatal(err)
	}
	if e.Stats().LiveCells != 0 {
		t.Fatalf("lone cell should die under life, live=%d", e.Stats().LiveCells)
	}
}

func TestOverlayDrawnBeforeStep(t *testing.T) {
	e := newEngine(t, smallConfig())
	f := darkFrame(10, 10)
	f.SetRGB(1, 1, 255, 255, 255)
	out, err := e.Tick(f, []mode.Event{mode.Select(mode.GameOfLife)})
	if err != nil {
		t.Fatal(err)
	}
	// The seeded cell is composited this tick even though the step kills it.
	if out.RGBAAt(3, 3) == (color.RGBA{R: 20, G: 20, B: 20, A: 255}) {
		t.Fatal("expected the cell overlay to tint (3,3)")
	}
	if out.RGBAAt(8, 8) != (color.RGBA{R: 20, G: 20, B: 20, A: 255}) {
		t.Fatalf("pixel outside any cell should show the source, got %+v", out.RGBAAt(8, 8))
	}
}

func TestSandModeConservesSeededGrains(t *testing.T) {
	cfg := smallConfig()
	cfg.Width, cfg.Height = 20, 20
	e := newEngine(t, cfg)
	f := darkFrame(20, 20)
	f.SetRGB(2, 2, 255, 255, 255)
	f.SetRGB(12, 2, 255, 255, 255)
	if _, err := e.Tick(f, []mode.Event{mode.Select(mode.Sand)}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		if _, err := e.Tick(darkFrame(20, 20), nil); err != nil {
			t.Fatal(err)
		}
		if e.Stats().LiveCells != 2 {
			t.Fatalf("tick %d: live=%d, expected 2", i, e.Stats().LiveCells)
		}
	}
	g := e.Automaton().Grid()
	if !g.At(g.Rows-1, 0) || !g.At(g.Rows-1, 2) {
		t.Fatal("grains should have settled on the bottom row")
	}
}

func TestRainbowBackgroundCycles(t *testing.T) {
	e := newEngine(t, smallConfig())
	e.Apply(mode.Select(mode.Rainbow))
	w := whiteFrame(10, 10)
	var seen []color.RGBA
	for tick := 0; tick < 25; tick++ {
		out, err := e.Tick(w, nil)
		if err != nil {
			t.Fatal(err)
		}
		seen = append(seen, out.RGBAAt(4, 4))
	}
	// From the second tick on the trail is fully open and the background shows.
	for tick := 2; tick < 25; tick++ {
		if seen[tick] != palette.Rainbow.At(uint64(tick)) {
			t.Fatalf("tick %d shows %+v, expected palette entry %+v", tick, seen[tick], palette.Rainbow.At(uint64(tick)))
		}
	}
	if seen[2] != seen[2+palette.Size] {
		t.Fatal("background must repeat after a full palette cycle")
	}
}

func TestNormalBackgroundIsWhite(t *testing.T) {
	e := newEngine(t, smallConfig())
	w := whiteFrame(10, 10)
	e.Tick(w, nil)
	e.Tick(w, nil)
	out, err := e.Tick(darkFrame(10, 10), nil)
	if err != nil {
		t.Fatal(err)
	}
	// Trail is enabled, so alpha stays 0 and the white background shows.
	if out.RGBAAt(5, 5) != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("expected white, got %+v", out.RGBAAt(5, 5))
	}
}

func TestClearEventRestoresTrail(t *testing.T) {
	e := newEngine(t, smallConfig())
	w := whiteFrame(10, 10)
	e.Tick(w, nil)
	e.Tick(w, nil)
	if e.Trail().Alpha(3, 3) != 0 {
		t.Fatal("precondition: trail should be fully open")
	}

	// Clear is ignored while the trail is enabled.
	e.Apply(mode.Event{Kind: mode.ClearTrail})
	if e.Trail().Alpha(3, 3) != 0 {
		t.Fatal("clear must be a no-op while the trail is enabled")
	}

	e.Apply(mode.Event{Kind: mode.ToggleTrail}, mode.Event{Kind: mode.ClearTrail})
	if e.Trail().Alpha(3, 3) != 255 {
		t.Fatalf("clear should restore opacity, alpha=%d", e.Trail().Alpha(3, 3))
	}
}

func TestDrawingModeReopacifiesThroughEngine(t *testing.T) {
	e := newEngine(t, smallConfig())
	e.Apply(mode.Event{Kind: mode.ToggleTrail})
	e.Trail().SetAlpha(1, 1, 100)
	for i := 0; i < 3; i++ {
		if _, err := e.Tick(darkFrame(10, 10), nil); err != nil {
			t.Fatal(err)
		}
	}
	if got := e.Trail().Alpha(1, 1); got != 109 {
		t.Fatalf("alpha=%d, expected 109", got)
	}
}

func TestSelectModeIdempotentOnBuffers(t *testing.T) {
	e := newEngine(t, smallConfig())
	f := darkFrame(10, 10)
	f.SetRGB(6, 6, 255, 255, 255)
	e.Tick(f, nil)

	trailBefore := bytes.Clone(e.Trail().Image().Pix)
	cellsBefore := slices.Clone(e.Automaton().Grid().Cells())
	stateBefore := e.State()
	for i := 0; i < 4; i++ {
		e.Apply(mode.Select(mode.Normal))
	}
	if e.State() != stateBefore {
		t.Fatalf("state changed: %+v -> %+v", stateBefore, e.State())
	}
	if !bytes.Equal(trailBefore, e.Trail().Image().Pix) || !slices.Equal(cellsBefore, e.Automaton().Grid().Cells()) {
		t.Fatal("repeated mode selection must not touch buffers")
	}
}

func TestTickRejectsWrongFrameSize(t *testing.T) {
	e := newEngine(t, smallConfig())
	if _, err := e.Tick(darkFrame(9, 10), nil); err == nil {
		t.Fatal("expected size mismatch error")
	}
	if _, err := e.Tick(nil, nil); err == nil {
		t.Fatal("expected nil frame error")
	}
}

func TestParametersSnapshot(t *testing.T) {
	e := newEngine(t, smallConfig())
	e.Apply(mode.Select(mode.Sand), mode.Event{Kind: mode.ToggleTrail})
	snap := e.Parameters()
	if p, ok := snap.Lookup("mode"); !ok || p.Value != "sand" {
		t.Fatalf("mode parameter = %+v", p)
	}
	if p, ok := snap.Lookup("trail"); !ok || p.Value != "off" {
		t.Fatalf("trail parameter = %+v", p)
	}
	if _, ok := snap.Lookup("nope"); ok {
		t.Fatal("unexpected parameter")
	}
}

type countingSource struct {
	size   core.Size
	frames int
	served int
}

func (s *countingSource) Size() core.Size { return s.size }
func (s *countingSource) Close() error    { return nil }
func (s *countingSource) RequestFrame(ctx context.Context) (*capture.Frame, error) {
	if s.served >= s.frames {
		return nil, capture.ErrEndOfStream
	}
	s.served++
	f := darkFrame(s.size.W, s.size.H)
	f.Seq = uint64(s.served)
	return f, nil
}

func TestRunUntilEndOfStream(t *testing.T) {
	e := newEngine(t, smallConfig())
	src := &countingSource{size: core.Size{W: 10, H: 10}, frames: 5}
	presented := 0
	calls := 0
	events := func() []mode.Event {
		calls++
		if calls == 2 {
			return []mode.Event{mode.Select(mode.Rainbow)}
		}
		return nil
	}
	err := e.Run(context.Background(), src, SinkFunc(func(img *image.RGBA) error {
		presented++
		return nil
	}), events)
	if err != nil {
		t.Fatal(err)
	}
	if presented != 5 || e.Stats().Ticks != 5 {
		t.Fatalf("presented=%d ticks=%d, expected 5", presented, e.Stats().Ticks)
	}
	if e.State().Mode != mode.Rainbow {
		t.Fatal("events from the event source should be applied")
	}
}

func TestRunStopsOnCancelAndSinkError(t *testing.T) {
	e := newEngine(t, smallConfig())
	ctx, cancel := context.WithCancel(context.Background())
	src := &countingSource{size: core.Size{W: 10, H: 10}, frames: 100}
	err := e.Run(ctx, src, SinkFunc(func(img *image.RGBA) error {
		if e.Stats().Ticks == 3 {
			cancel()
		}
		return nil
	}), nil)
	if err != nil {
		t.Fatal(err)
	}
	if e.Stats().Ticks != 3 {
		t.Fatalf("expected loop to stop after cancel, ticks=%d", e.Stats().Ticks)
	}

	boom := errors.New("boom")
	err = e.Run(context.Background(), src, SinkFunc(func(*image.RGBA) error { return boom }), nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected sink error, got %v", err)
	}

	wrong := &countingSource{size: core.Size{W: 5, H: 5}, frames: 1}
	if err := e.Run(context.Background(), wrong, nil, nil); err == nil {
		t.Fatal("expected size mismatch error")
	}
}

func TestSwitchingAutomatonRulesKeepsGrid(t *testing.T) {
	cfg := smallConfig()
	cfg.Width, cfg.Height = 20, 20
	e := newEngine(t, cfg)

	// Three grains side by side on the top row fall one row under sand.
	f := darkFrame(20, 20)
	for _, x := range []int{2, 7, 12} {
		f.SetRGB(x, 2, 255, 255, 255)
	}
	if _, err := e.Tick(f, []mode.Event{mode.Select(mode.Sand)}); err != nil {
		t.Fatal(err)
	}
	g := e.Automaton().Grid()
	for col := 0; col < 3; col++ {
		if !g.At(1, col) {
			t.Fatalf("grain in column %d should have fallen to row 1", col)
		}
	}

	afterSand := core.NewBoolGrid(g.Rows, g.Cols)
	copy(afterSand.Cells(), g.Cells())
	expected := core.NewBoolGrid(g.Rows, g.Cols)
	automaton.Life{}.Step(afterSand, expected)

	if _, err := e.Tick(darkFrame(20, 20), []mode.Event{mode.Select(mode.GameOfLife)}); err != nil {
		t.Fatal(err)
	}
	got := e.Automaton().Grid()
	if !slices.Equal(got.Cells(), expected.Cells()) {
		t.Fatal("life must continue from the sand grid rather than a fresh one")
	}
	// The horizontal row becomes a vertical blinker.
	if got.Count() != 3 || !got.At(0, 1) || !got.At(1, 1) || !got.At(2, 1) {
		t.Fatalf("unexpected generation, live=%d", got.Count())
	}

	// And back: sand drops the blinker without losing cells.
	if _, err := e.Tick(darkFrame(20, 20), []mode.Event{mode.Select(mode.Sand)}); err != nil {
		t.Fatal(err)
	}
	if e.Stats().LiveCells != 3 {
		t.Fatalf("sand after life should keep 3 cells, live=%d", e.Stats().LiveCells)
	}
}

func TestRejectedFrameLeavesStateUntouched(t *testing.T) {
	e := newEngine(t, smallConfig())
	before := e.State()
	_, err := e.Tick(darkFrame(4, 4), []mode.Event{mode.Select(mode.Sand), {Kind: mode.ToggleTrail}})
	if err == nil {
		t.Fatal("expected size mismatch error")
	}
	if e.State() != before {
		t.Fatalf("state changed on a rejected frame: %+v -> %+v", before, e.State())
	}
	if e.Stats().Ticks != 0 {
		t.Fatal("no tick should be counted")
	}
}
