// Package render uploads composited frames to the GPU.
package render

import "image"

// tightPixels returns img's pixels as a packed RGBA slice of exactly
// w*h*4 bytes. When img already has that layout its buffer is returned
// directly; otherwise the rows are copied into buf, which is grown as needed.
func tightPixels(buf []byte, img *image.RGBA) []byte {
	b := img.Bounds()
	row := b.Dx() * 4
	n := row * b.Dy()
	if img.Stride == row && len(img.Pix) >= n {
		off := img.PixOffset(b.Min.X, b.Min.Y)
		if off == 0 {
			return img.Pix[:n]
		}
	}
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	buf = buf[:n]
	for y := 0; y < b.Dy(); y++ {
		start := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(buf[y*row:(y+1)*row], img.Pix[start:start+row])
	}
	return buf
}
