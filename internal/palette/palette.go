// Package palette provides the rotating background colours used in rainbow
// mode.
package palette

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Size is the number of entries in the rainbow palette.
const Size = 19

const (
	saturation = 0.55
	brightness = 1.0
)

// Palette is a fixed, immutable cycle of opaque colours.
type Palette struct {
	colors [Size]color.RGBA
}

// Rainbow walks the hue wheel in equal steps.
var Rainbow = newRainbow()

func newRainbow() Palette {
	var p Palette
	for i := range p.colors {
		c := colorful.Hsv(float64(i)*360/Size, saturation, brightness)
		r, g, b := c.RGB255()
		p.colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return p
}

// Len returns the number of entries.
func (p Palette) Len() int { return len(p.colors) }

// At returns the entry selected by a free-running tick counter.
func (p Palette) At(tick uint64) color.RGBA {
	return p.colors[tick%uint64(len(p.colors))]
}
