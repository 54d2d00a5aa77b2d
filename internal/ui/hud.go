//go:build ebiten

// Package ui draws the on-screen HUD and reads keyboard input.
package ui

import (
	"image/color"

	"camera-trail/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding = 8
	lineHeight   = 16
	glyphWidth   = 7
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

// HUD renders a read-only parameter panel in the top-left corner.
type HUD struct {
	src     parameterProvider
	visible bool
	lines   []string
	panel   *ebiten.Image
}

// NewHUD constructs a hidden HUD reading from src.
func NewHUD(src parameterProvider) *HUD {
	return &HUD{src: src}
}

// Toggle shows or hides the panel.
func (h *HUD) Toggle() {
	if h == nil {
		return
	}
	h.visible = !h.visible
}

// Visible reports whether the panel is drawn.
func (h *HUD) Visible() bool { return h != nil && h.visible }

// Update refreshes the cached snapshot.
func (h *HUD) Update() {
	if !h.Visible() {
		return
	}
	h.lines = hudLines(h.src.Parameters())
}

// Draw paints the panel over screen.
func (h *HUD) Draw(screen *ebiten.Image) {
	if !h.Visible() || len(h.lines) == 0 {
		return
	}
	w := longest(h.lines)*glyphWidth + 2*panelPadding
	ht := len(h.lines)*lineHeight + panelPadding
	if h.panel == nil || h.panel.Bounds().Dx() != w || h.panel.Bounds().Dy() != ht {
		h.panel = ebiten.NewImage(w, ht)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 200})

	face := basicfont.Face7x13
	for i, line := range h.lines {
		fg := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if line[0] != ' ' {
			fg = color.RGBA{R: 160, G: 200, B: 255, A: 255}
		}
		text.Draw(h.panel, line, face, panelPadding, (i+1)*lineHeight, fg)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(panelPadding, panelPadding)
	screen.DrawImage(h.panel, op)
}
