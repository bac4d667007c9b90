package rule

import "strings"

// Marker flags the exact position of an expected violation inside an
// Example's code. It is stripped before the code is checked.
const Marker = "↓"

// Example is a source snippet attached to a rule.
type Example struct {
	Code string
	// Settings, when non-nil, are applied to a clone of the rule before
	// the example is checked.
	Settings map[string]any
}

// Source returns the example code with all markers removed, and the byte
// offsets (in the returned source) at which the markers stood.
func (e Example) Source() (src string, offsets []int) {
	var b strings.Builder
	rest := e.Code
	for {
		i := strings.Index(rest, Marker)
		if i < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:i])
		offsets = append(offsets, b.Len())
		rest = rest[i+len(Marker):]
	}
	return b.String(), offsets
}
