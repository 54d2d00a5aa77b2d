package automaton

import "camera-trail/internal/core"

// Life implements Conway's Game of Life on a bounded grid. Neighbours that
// fall outside the grid count as dead.
type Life struct{}

// Name returns the rule identifier.
func (Life) Name() string { return "life" }

// Step advances cur by one generation into nxt.
func (Life) Step(cur, nxt *core.BoolGrid) {
	rows, cols := cur.Rows, cur.Cols
	src := cur.Cells()
	dst := nxt.Cells()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				ny := y + dy
				if ny < 0 || ny >= rows {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					nx := x + dx
					if nx < 0 || nx >= cols {
						continue
					}
					if dx == 0 && dy == 0 {
						continue
					}
					if src[ny*cols+nx] {
						neighbors++
					}
				}
			}
			idx := y*cols + x
			alive := src[idx]
			dst[idx] = (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3)
		}
	}
}
