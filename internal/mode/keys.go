package mode

// KeyEvent maps a key character to its event using the bindings shared by
// every front-end: T toggles the trail, C clears it and 1-4 select a mode.
func KeyEvent(r rune) (Event, bool) {
	switch r {
	case 't', 'T':
		return Event{Kind: ToggleTrail}, true
	case 'c', 'C':
		return Event{Kind: ClearTrail}, true
	case '1':
		return Select(Normal), true
	case '2':
		return Select(Rainbow), true
	case '3':
		return Select(GameOfLife), true
	case '4':
		return Select(Sand), true
	}
	return Event{}, false
}
