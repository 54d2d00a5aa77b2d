//go:build ebiten

package ui

import (
	"camera-trail/internal/mode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var keyRunes = []struct {
	key ebiten.Key
	r   rune
}{
	{ebiten.KeyT, 't'},
	{ebiten.KeyC, 'c'},
	{ebiten.KeyDigit1, '1'},
	{ebiten.KeyDigit2, '2'},
	{ebiten.KeyDigit3, '3'},
	{ebiten.KeyDigit4, '4'},
	{ebiten.KeyNumpad1, '1'},
	{ebiten.KeyNumpad2, '2'},
	{ebiten.KeyNumpad3, '3'},
	{ebiten.KeyNumpad4, '4'},
}

// Input is the keyboard state collected for one tick.
type Input struct {
	Events    []mode.Event
	ToggleHUD bool
	Quit      bool
}

// PollInput reads the keys pressed since the previous tick. Events keep the
// order of the binding table when several keys land on the same tick.
func PollInput() Input {
	var in Input
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		in.Quit = true
	}
	in.ToggleHUD = inpututil.IsKeyJustPressed(ebiten.KeyH)
	for _, kr := range keyRunes {
		if !inpututil.IsKeyJustPressed(kr.key) {
			continue
		}
		if ev, ok := mode.KeyEvent(kr.r); ok {
			in.Events = append(in.Events, ev)
		}
	}
	return in
}
