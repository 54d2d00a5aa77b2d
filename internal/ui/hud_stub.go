//go:build !ebiten

// Package ui draws the on-screen HUD and reads keyboard input.
package ui

import "camera-trail/internal/core"

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(parameterProvider) *HUD { return nil }

// Toggle is a no-op in the headless build.
func (h *HUD) Toggle() {}

// Visible is always false in the headless build.
func (h *HUD) Visible() bool { return false }

// Update is a no-op in the headless build.
func (h *HUD) Update() {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any) {}
