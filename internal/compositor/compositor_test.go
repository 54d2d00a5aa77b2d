package compositor

import (
	"image"
	"image/color"
	"testing"

	"camera-trail/internal/core"
)

func solidTrail(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}

func TestOpaqueTrailShowsSource(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 3))
	c := New(DefaultCellColor(DefaultCellAlpha))
	err := c.Compose(dst, Layers{Background: color.White, Trail: solidTrail(4, 3, color.NRGBA{R: 10, G: 20, B: 30, A: 255})})
	if err != nil {
		t.Fatal(err)
	}
	got := dst.RGBAAt(2, 1)
	if got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Fatalf("expected source colour, got %+v", got)
	}
}

func TestTransparentTrailShowsBackground(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 2, 2))
	bg := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	c := New(DefaultCellColor(DefaultCellAlpha))
	if err := c.Compose(dst, Layers{Background: bg, Trail: solidTrail(2, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 0})}); err != nil {
		t.Fatal(err)
	}
	if got := dst.RGBAAt(1, 1); got != bg {
		t.Fatalf("expected background %+v, got %+v", bg, got)
	}
}

func TestPartialTrailBlendsOverWhite(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 1, 1))
	c := New(DefaultCellColor(DefaultCellAlpha))
	if err := c.Compose(dst, Layers{Trail: solidTrail(1, 1, color.NRGBA{R: 255, A: 128})}); err != nil {
		t.Fatal(err)
	}
	got := dst.RGBAAt(0, 0)
	if got.R != 255 || !near(got.G, 127) || !near(got.B, 127) || got.A != 255 {
		t.Fatalf("unexpected blend %+v", got)
	}
}

func TestCellOverlayCoversOnlyLiveCells(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	grid := core.NewBoolGrid(3, 2)
	grid.Set(1, 1, true)
	c := New(color.NRGBA{A: 255})
	err := c.Compose(dst, Layers{
		Background: color.White,
		Trail:      solidTrail(10, 10, color.NRGBA{A: 0}),
		Cells:      grid,
		CellSize:   5,
	})
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			px := dst.RGBAAt(x, y)
			inCell := x >= 5 && y >= 5
			if inCell && px.R != 0 {
				t.Fatalf("pixel (%d,%d) should be covered by the cell, got %+v", x, y, px)
			}
			if !inCell && px.R != 255 {
				t.Fatalf("pixel (%d,%d) should be background, got %+v", x, y, px)
			}
		}
	}
}

func TestCellOverlayIsTranslucent(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 5, 5))
	grid := core.NewBoolGrid(2, 1)
	grid.Set(0, 0, true)
	c := New(DefaultCellColor(DefaultCellAlpha))
	if err := c.Compose(dst, Layers{Trail: solidTrail(5, 5, color.NRGBA{A: 0}), Cells: grid, CellSize: 5}); err != nil {
		t.Fatal(err)
	}
	px := dst.RGBAAt(2, 2)
	if px.R == 255 || px.R < 200 {
		t.Fatalf("cell should tint the background lightly, got %+v", px)
	}
}

func TestComposeRejectsSizeMismatch(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	c := New(DefaultCellColor(DefaultCellAlpha))
	if err := c.Compose(dst, Layers{Trail: solidTrail(3, 4, color.NRGBA{})}); err == nil {
		t.Fatal("expected size mismatch error")
	}
	if err := c.Compose(dst, Layers{}); err == nil {
		t.Fatal("expected missing trail error")
	}
}
