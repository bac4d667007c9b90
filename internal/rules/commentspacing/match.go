package commentspacing

import (
	"unicode"
	"unicode/utf8"
)

// match is the prefix of a comment that violates the spacing convention,
// in span-local coordinates. The disallowed character counts as a single
// position, so end-1 is always its byte index.
type match struct {
	start, end int
}

// matchPrefix is the anchored test ^/{2,3}[^\s/]: two or three slashes
// immediately followed by a character that is neither whitespace nor a
// slash. Four or more slashes never match, since every way of splitting
// the run leaves a slash where the disallowed character would have to be.
func matchPrefix(text []byte) (match, bool) {
	slashes := 0
	for slashes < len(text) && slashes < 4 && text[slashes] == '/' {
		slashes++
	}
	if slashes < 2 || slashes > 3 || slashes == len(text) {
		return match{}, false
	}
	r, _ := utf8.DecodeRune(text[slashes:])
	if unicode.IsSpace(r) {
		return match{}, false
	}
	return match{start: 0, end: slashes + 1}, true
}
