package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"camera-trail/internal/mode"
)

// keyScript maps a tick index to the events applied before that tick.
type keyScript map[uint64][]mode.Event

// parseKeyScript reads comma-separated tick:key pairs. Keys use the same
// bindings as the live front-ends.
func parseKeyScript(s string) (keyScript, error) {
	script := keyScript{}
	if strings.TrimSpace(s) == "" {
		return script, nil
	}
	for _, pair := range strings.Split(s, ",") {
		tickStr, key, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok {
			return nil, fmt.Errorf("keys: %q is not tick:key", pair)
		}
		tick, err := strconv.ParseUint(tickStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("keys: bad tick in %q: %w", pair, err)
		}
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("keys: %q must name a single key", pair)
		}
		r, _ := utf8.DecodeRuneInString(key)
		ev, ok := mode.KeyEvent(r)
		if !ok {
			return nil, fmt.Errorf("keys: %q is not bound", key)
		}
		script[tick] = append(script[tick], ev)
	}
	return script, nil
}
