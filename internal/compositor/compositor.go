// Package compositor merges the background, the trail buffer and the cell
// overlay into the presented image.
package compositor

import (
	"fmt"
	"image"
	"image/color"

	"camera-trail/internal/core"

	"golang.org/x/image/draw"
)

// DefaultCellAlpha is the opacity of one overlay square.
const DefaultCellAlpha = 48

// Layers describes one frame's worth of compositing input.
type Layers struct {
	// Background fills the whole image first.
	Background color.Color
	// Trail carries the source colours with trail alpha. It must match the
	// destination bounds.
	Trail *image.NRGBA
	// Cells is drawn on top when non-nil.
	Cells    *core.BoolGrid
	CellSize int
}

// Compositor draws Layers into an RGBA image.
type Compositor struct {
	cell *image.Uniform
}

// New returns a compositor drawing live cells as squares of the given colour.
func New(cellColor color.NRGBA) *Compositor {
	return &Compositor{cell: image.NewUniform(cellColor)}
}

// DefaultCellColor is a dark translucent tint.
func DefaultCellColor(alpha uint8) color.NRGBA {
	return color.NRGBA{R: 16, G: 16, B: 24, A: alpha}
}

// Compose renders l into dst. Mismatched sizes are programming errors and are
// reported rather than drawn.
func (c *Compositor) Compose(dst *image.RGBA, l Layers) error {
	bounds := dst.Bounds()
	if l.Trail == nil {
		return fmt.Errorf("compositor: missing trail layer")
	}
	if l.Trail.Bounds().Size() != bounds.Size() {
		return fmt.Errorf("compositor: trail %v does not match output %v", l.Trail.Bounds().Size(), bounds.Size())
	}

	bg := l.Background
	if bg == nil {
		bg = color.White
	}
	draw.Draw(dst, bounds, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, bounds, l.Trail, l.Trail.Bounds().Min, draw.Over)

	if l.Cells != nil {
		c.drawCells(dst, l.Cells, l.CellSize)
	}
	return nil
}

func (c *Compositor) drawCells(dst *image.RGBA, grid *core.BoolGrid, size int) {
	if size <= 0 {
		size = 1
	}
	bounds := dst.Bounds()
	cells := grid.Cells()
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			if !cells[row*grid.Cols+col] {
				continue
			}
			x := bounds.Min.X + col*size
			y := bounds.Min.Y + row*size
			r := image.Rect(x, y, x+size, y+size).Intersect(bounds)
			if r.Empty() {
				continue
			}
			draw.Draw(dst, r, c.cell, image.Point{}, draw.Over)
		}
	}
}
