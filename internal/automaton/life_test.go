package automaton

import "testing"

func liveSet(a *Automaton) map[[2]int]bool {
	g := a.Grid()
	out := map[[2]int]bool{}
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			if g.At(y, x) {
				out[[2]int{x, y}] = true
			}
		}
	}
	return out
}

func expectCells(t *testing.T, a *Automaton, want map[[2]int]bool, stage string) {
	t.Helper()
	got := liveSet(a)
	if len(got) != len(want) {
		t.Fatalf("%s: %d live cells, expected %d (%v)", stage, len(got), len(want), got)
	}
	for k := range want {
		if !got[k] {
			t.Fatalf("%s: cell (%d,%d) should be alive", stage, k[0], k[1])
		}
	}
}

func TestLifeEmptyGridStaysEmpty(t *testing.T) {
	a := NewGrid(10, 10, 1)
	for i := 0; i < 5; i++ {
		a.Step(Life{})
	}
	if a.Live() != 0 {
		t.Fatalf("empty grid produced %d live cells", a.Live())
	}
}

func TestLifeLoneCellDies(t *testing.T) {
	a := NewGrid(10, 10, 1)
	a.Grid().Set(4, 4, true)
	a.Step(Life{})
	if a.Live() != 0 {
		t.Fatalf("lone cell should die, got %d live cells", a.Live())
	}
}

func TestBlinkerOscillation(t *testing.T) {
	a := NewGrid(10, 10, 1)
	set := func(x, y int) { a.Grid().Set(y, x, true) }
	set(4, 3)
	set(4, 4)
	set(4, 5)

	vertical := map[[2]int]bool{{4, 3}: true, {4, 4}: true, {4, 5}: true}
	horizontal := map[[2]int]bool{{3, 4}: true, {4, 4}: true, {5, 4}: true}

	a.Step(Life{})
	expectCells(t, a, horizontal, "after first step")
	a.Step(Life{})
	expectCells(t, a, vertical, "after second step")
}

func TestLifeDoesNotWrapAcrossRows(t *testing.T) {
	// A vertical pair in the last column plus one cell in the first column of
	// the following row would birth a cell if indices wrapped linearly.
	a := NewGrid(6, 6, 1)
	g := a.Grid()
	g.Set(1, 5, true)
	g.Set(2, 5, true)
	g.Set(3, 0, true)
	a.Step(Life{})
	if a.Grid().At(2, 0) || a.Grid().At(3, 1) {
		t.Fatal("cells were influenced by neighbours across the row boundary")
	}
}

func TestLifeBlockIsStable(t *testing.T) {
	a := NewGrid(4, 4, 1)
	block := map[[2]int]bool{{0, 0}: true, {1, 0}: true, {0, 1}: true, {1, 1}: true}
	for k := range block {
		a.Grid().Set(k[1], k[0], true)
	}
	for i := 0; i < 3; i++ {
		a.Step(Life{})
	}
	expectCells(t, a, block, "corner block")
}
