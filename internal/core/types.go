package core

// Size describes the dimensions of a pixel buffer.
type Size struct {
	W int
	H int
}

// Pixels returns the number of pixels covered by the size.
func (s Size) Pixels() int {
	if s.W <= 0 || s.H <= 0 {
		return 0
	}
	return s.W * s.H
}

// CellLayout derives the automaton grid shape for a pixel buffer of this size.
// Columns use integer division; rows carry one extra row so the bottom partial
// block of pixels always has a cell to seed.
func (s Size) CellLayout(cellSize int) (rows, cols int) {
	if cellSize <= 0 {
		cellSize = 1
	}
	return s.H/cellSize + 1, s.W / cellSize
}
