package syntax

// ByteRange is a half-open byte interval [Start, Start+Length) in a file.
type ByteRange struct {
	Start  int
	Length int
}

// End returns the exclusive end offset.
func (r ByteRange) End() int { return r.Start + r.Length }

// Valid reports whether r lies within a buffer of size n. Length is
// compared against the room left after Start, so a huge Length cannot
// overflow End.
func (r ByteRange) Valid(n int) bool {
	return r.Start >= 0 && r.Length >= 0 && r.Start <= n && r.Length <= n-r.Start
}

// Span is a classified region of source text.
type Span struct {
	Kind  Kind
	Range ByteRange
}

// Text returns the bytes of src covered by s and false when the range
// does not fit inside src.
func (s Span) Text(src []byte) ([]byte, bool) {
	if !s.Range.Valid(len(src)) {
		return nil, false
	}
	return src[s.Range.Start:s.Range.End()], true
}
