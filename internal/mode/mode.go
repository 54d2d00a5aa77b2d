// Package mode holds the compositing mode state machine. Transitions are pure
// functions of the current state and one input event.
package mode

import (
	"fmt"
	"strings"
)

// Mode selects how the frame is composited.
type Mode uint8

const (
	Normal Mode = iota
	Rainbow
	GameOfLife
	Sand
)

var modeNames = [...]string{
	Normal:     "normal",
	Rainbow:    "rainbow",
	GameOfLife: "life",
	Sand:       "sand",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", m)
}

// Automaton reports whether the cell overlay is drawn and evolved in m.
func (m Mode) Automaton() bool { return m == GameOfLife || m == Sand }

// ParseMode accepts the names printed by String plus a few aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "plain":
		return Normal, nil
	case "rainbow":
		return Rainbow, nil
	case "life", "gameoflife", "game_of_life", "gol":
		return GameOfLife, nil
	case "sand":
		return Sand, nil
	}
	return Normal, fmt.Errorf("mode: unknown mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// State is the complete mode state owned by the tick loop.
type State struct {
	Mode         Mode
	TrailEnabled bool
}

// Initial returns the start-up state: normal mode with the trail enabled.
func Initial() State {
	return State{Mode: Normal, TrailEnabled: true}
}

// EventKind enumerates the input events the machine understands.
type EventKind uint8

const (
	ToggleTrail EventKind = iota
	SelectMode
	ClearTrail
)

// Event is one discrete input. Mode is only read for SelectMode.
type Event struct {
	Kind EventKind
	Mode Mode
}

// Select returns a SelectMode event for m.
func Select(m Mode) Event { return Event{Kind: SelectMode, Mode: m} }

func (e Event) String() string {
	switch e.Kind {
	case ToggleTrail:
		return "toggle-trail"
	case SelectMode:
		return "select-" + e.Mode.String()
	case ClearTrail:
		return "clear-trail"
	}
	return fmt.Sprintf("event(%d)", e.Kind)
}

// Effect is a side effect the caller must apply to buffers after a transition.
type Effect uint8

const (
	EffectNone Effect = iota
	// EffectClearTrail asks for every trail pixel to be made opaque.
	EffectClearTrail
)

// Transition applies ev to s. Clearing only has an effect while the trail is
// disabled; selecting the current mode is a no-op.
func Transition(s State, ev Event) (State, Effect) {
	switch ev.Kind {
	case ToggleTrail:
		s.TrailEnabled = !s.TrailEnabled
	case SelectMode:
		s.Mode = ev.Mode
	case ClearTrail:
		if !s.TrailEnabled {
			return s, EffectClearTrail
		}
	}
	return s, EffectNone
}
