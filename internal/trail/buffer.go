package trail

import "image"

const (
	// DefaultBrightDecrement is subtracted from alpha on each bright tick.
	DefaultBrightDecrement = 200
	// DefaultFadeIncrement is added back to alpha per tick in drawing mode.
	DefaultFadeIncrement = 3

	opaque = 255
)

// Params controls how quickly the trail opens and closes.
type Params struct {
	BrightDecrement int
	FadeIncrement   int
}

// DefaultParams returns the standard trail tuning.
func DefaultParams() Params {
	return Params{BrightDecrement: DefaultBrightDecrement, FadeIncrement: DefaultFadeIncrement}
}

// Buffer holds the latest source colour of every pixel plus an alpha channel
// that carries the trail history. It is backed by a non-premultiplied image
// so it can be drawn directly over a background.
type Buffer struct {
	img    *image.NRGBA
	params Params
}

// NewBuffer allocates a fully opaque buffer of w×h pixels.
func NewBuffer(w, h int, params Params) *Buffer {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	b := &Buffer{img: image.NewNRGBA(image.Rect(0, 0, w, h)), params: params}
	b.Clear()
	return b
}

// Image exposes the backing image. Callers must treat it as read-only.
func (b *Buffer) Image() *image.NRGBA { return b.img }

// Size returns the buffer dimensions.
func (b *Buffer) Size() (int, int) {
	r := b.img.Bounds()
	return r.Dx(), r.Dy()
}

// Alpha returns the trail alpha at pixel (x, y).
func (b *Buffer) Alpha(x, y int) uint8 {
	return b.img.Pix[b.img.PixOffset(x, y)+3]
}

// SetAlpha overwrites the trail alpha at pixel (x, y).
func (b *Buffer) SetAlpha(x, y int, a uint8) {
	b.img.Pix[b.img.PixOffset(x, y)+3] = a
}

// Update applies one tick to the pixel with linear index i. The colour is
// always replaced; only alpha depends on brightness and the trail flag.
func (b *Buffer) Update(i int, r, g, bl uint8, bright, trailEnabled bool) {
	p := b.img.Pix[i*4 : i*4+4 : i*4+4]
	p[0] = r
	p[1] = g
	p[2] = bl
	p[3] = b.nextAlpha(p[3], bright, trailEnabled)
}

func (b *Buffer) nextAlpha(a uint8, bright, trailEnabled bool) uint8 {
	switch {
	case bright:
		return clampAlpha(int(a) - b.params.BrightDecrement)
	case trailEnabled:
		return a
	case a != opaque:
		return clampAlpha(int(a) + b.params.FadeIncrement)
	default:
		return a
	}
}

// Clear makes every pixel fully opaque again, erasing the drawing.
func (b *Buffer) Clear() {
	pix := b.img.Pix
	for i := 3; i < len(pix); i += 4 {
		pix[i] = opaque
	}
}

func clampAlpha(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > opaque {
		return opaque
	}
	return uint8(v)
}
