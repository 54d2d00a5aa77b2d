package core

// BoolGrid stores a rows×columns grid of boolean cells in row-major order.
type BoolGrid struct {
	Rows, Cols int
	data       []bool
}

// NewBoolGrid allocates a grid with the given dimensions.
func NewBoolGrid(rows, cols int) *BoolGrid {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	return &BoolGrid{Rows: rows, Cols: cols, data: make([]bool, rows*cols)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *BoolGrid) Cells() []bool { return g.data }

// Index returns the linear slice index for (row, col).
func (g *BoolGrid) Index(row, col int) int { return row*g.Cols + col }

// InBounds reports whether row and col both lie inside the grid. Each axis is
// checked on its own so a column overflow never spills into the next row.
func (g *BoolGrid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// At returns the cell at (row, col); out-of-range coordinates read as false.
func (g *BoolGrid) At(row, col int) bool {
	if !g.InBounds(row, col) {
		return false
	}
	return g.data[row*g.Cols+col]
}

// Set writes the cell at (row, col). Out-of-range writes are dropped.
func (g *BoolGrid) Set(row, col int, v bool) {
	if !g.InBounds(row, col) {
		return
	}
	g.data[row*g.Cols+col] = v
}

// Count returns the number of true cells.
func (g *BoolGrid) Count() int {
	n := 0
	for _, c := range g.data {
		if c {
			n++
		}
	}
	return n
}

// Clear sets every cell to false.
func (g *BoolGrid) Clear() {
	for i := range g.data {
		g.data[i] = false
	}
}
