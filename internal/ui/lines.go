package ui

import (
	"fmt"

	"camera-trail/internal/core"
)

// hudLines flattens a snapshot into the rows shown by the HUD: one header per
// group followed by indented "label: value" rows.
func hudLines(s core.ParameterSnapshot) []string {
	var lines []string
	for _, g := range s.Groups {
		if len(g.Params) == 0 {
			continue
		}
		lines = append(lines, g.Name)
		for _, p := range g.Params {
			label := p.Label
			if label == "" {
				label = p.Key
			}
			lines = append(lines, fmt.Sprintf("  %s: %s", label, p.Value))
		}
	}
	return lines
}

func longest(lines []string) int {
	n := 0
	for _, l := range lines {
		n = max(n, len(l))
	}
	return n
}
