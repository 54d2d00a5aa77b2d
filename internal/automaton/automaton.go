// Package automaton holds the coarse cell grid that is seeded from bright
// pixels and evolved by a step rule.
package automaton

import "camera-trail/internal/core"

// Rule computes the next generation into nxt from a read-only cur. Both grids
// share dimensions and nxt must be fully overwritten.
type Rule interface {
	Name() string
	Step(cur, nxt *core.BoolGrid)
}

// Automaton owns a double-buffered cell grid laid over a pixel buffer.
type Automaton struct {
	cellSize int
	cur      *core.BoolGrid
	nxt      *core.BoolGrid
}

// New returns an empty automaton covering a pixel buffer of the given size.
func New(size core.Size, cellSize int) *Automaton {
	if cellSize <= 0 {
		cellSize = 1
	}
	rows, cols := size.CellLayout(cellSize)
	return NewGrid(rows, cols, cellSize)
}

// NewGrid returns an empty automaton with an explicit grid shape.
func NewGrid(rows, cols, cellSize int) *Automaton {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Automaton{
		cellSize: cellSize,
		cur:      core.NewBoolGrid(rows, cols),
		nxt:      core.NewBoolGrid(rows, cols),
	}
}

// Grid exposes the current generation.
func (a *Automaton) Grid() *core.BoolGrid { return a.cur }

// CellSize returns the side of one cell in pixels.
func (a *Automaton) CellSize() int { return a.cellSize }

// Seed marks the cell owning pixel (x, y) as live. Seeding never clears.
func (a *Automaton) Seed(x, y int) {
	a.cur.Set(y/a.cellSize, x/a.cellSize, true)
}

// Step advances the grid by one generation and swaps the buffers.
func (a *Automaton) Step(rule Rule) {
	if rule == nil {
		return
	}
	rule.Step(a.cur, a.nxt)
	a.cur, a.nxt = a.nxt, a.cur
}

// Live returns the number of live cells in the current generation.
func (a *Automaton) Live() int { return a.cur.Count() }
