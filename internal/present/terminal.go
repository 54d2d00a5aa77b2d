package present

import (
	"image"
	"image/color"

	"camera-trail/internal/mode"

	"github.com/gdamore/tcell/v2"
)

// upperHalf draws the top pixel as foreground and the bottom as background.
const upperHalf = '▀'

// Terminal paints frames into a tcell screen. Each character cell shows two
// vertically stacked pixels sampled from the image.
type Terminal struct {
	screen tcell.Screen
}

// NewTerminal wraps an initialised screen.
func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Present samples img to the current screen size and shows it.
func (t *Terminal) Present(img *image.RGBA) error {
	cols, rows := t.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	b := img.Bounds()
	subRows := rows * 2
	for cy := 0; cy < rows; cy++ {
		top := sampleY(b, cy*2, subRows)
		bottom := sampleY(b, cy*2+1, subRows)
		for cx := 0; cx < cols; cx++ {
			x := b.Min.X + cx*b.Dx()/cols
			style := tcell.StyleDefault.
				Foreground(toColor(img.RGBAAt(x, top))).
				Background(toColor(img.RGBAAt(x, bottom)))
			t.screen.SetContent(cx, cy, upperHalf, nil, style)
		}
	}
	t.screen.Show()
	return nil
}

func sampleY(b image.Rectangle, sub, total int) int {
	return b.Min.Y + sub*b.Dy()/total
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// KeyAction is the result of translating a terminal key press.
type KeyAction struct {
	Event mode.Event
	// HasEvent is false for keys that do not map to a mode event.
	HasEvent bool
	Quit     bool
}

// TranslateKey maps the shared key bindings onto mode events.
func TranslateKey(ev *tcell.EventKey) KeyAction {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return KeyAction{Quit: true}
	case tcell.KeyRune:
	default:
		return KeyAction{}
	}
	switch r := ev.Rune(); r {
	case 'q', 'Q':
		return KeyAction{Quit: true}
	default:
		if e, ok := mode.KeyEvent(r); ok {
			return KeyAction{Event: e, HasEvent: true}
		}
	}
	return KeyAction{}
}
