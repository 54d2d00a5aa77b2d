//go:build ebiten

package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// FramePainter keeps one texture sized to the frame and redraws it scaled.
type FramePainter struct {
	img *ebiten.Image
	buf []byte
	w   int
	h   int
}

// NewFramePainter allocates a texture of w×h pixels.
func NewFramePainter(w, h int) *FramePainter {
	return &FramePainter{img: ebiten.NewImage(w, h), w: w, h: h}
}

// Blit uploads frame and draws it onto dst at the given integer scale.
func (p *FramePainter) Blit(dst *ebiten.Image, frame *image.RGBA, scale int) {
	if frame == nil || frame.Bounds().Empty() {
		return
	}
	if b := frame.Bounds(); b.Dx() != p.w || b.Dy() != p.h {
		p.img = ebiten.NewImage(b.Dx(), b.Dy())
		p.w, p.h = b.Dx(), b.Dy()
	}
	pix := tightPixels(p.buf, frame)
	if &pix[0] != &frame.Pix[0] {
		p.buf = pix
	}
	p.img.WritePixels(pix)

	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(p.img, op)
}
