package automaton

import "camera-trail/internal/core"

// sandTargets lists where a grain tries to go, in order of preference, as
// column offsets on the row below.
var sandTargets = [...]int{0, -1, 1}

// Sand lets every live cell fall one row per step: straight down if free,
// otherwise down-left, otherwise down-right. Grains at the bottom or boxed in
// stay put. A target is free only if it is empty before the step and no other
// grain has already claimed it, so grains are never created or destroyed.
type Sand struct{}

// Name returns the rule identifier.
func (Sand) Name() string { return "sand" }

// Step advances cur by one generation into nxt.
func (Sand) Step(cur, nxt *core.BoolGrid) {
	nxt.Clear()
	rows, cols := cur.Rows, cur.Cols
	src := cur.Cells()
	dst := nxt.Cells()
	for y := rows - 1; y >= 0; y-- {
		for x := 0; x < cols; x++ {
			if !src[y*cols+x] {
				continue
			}
			target := y*cols + x
			if ny := y + 1; ny < rows {
				for _, dx := range sandTargets {
					nx := x + dx
					if nx < 0 || nx >= cols {
						continue
					}
					idx := ny*cols + nx
					if !src[idx] && !dst[idx] {
						target = idx
						break
					}
				}
			}
			dst[target] = true
		}
	}
}
