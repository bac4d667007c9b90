package lint

import (
	"bytes"
	"sort"

	"github.com/jeduden/lexlint/internal/syntax"
)

// File holds a tokenized source file. Spans are owned by the tokenizer and
// must be treated as read-only by rules.
type File struct {
	Path   string
	Source []byte
	Spans  []syntax.Span

	lineStarts []int
}

// NewFile tokenizes source and returns a File.
func NewFile(path string, source []byte) (*File, error) {
	return NewFileWithSpans(path, source, syntax.Tokenize(source)), nil
}

// NewFileWithSpans wraps source and spans produced by an external
// tokenizer. The spans are not validated here; rules skip spans whose
// range does not resolve to text.
func NewFileWithSpans(path string, source []byte, spans []syntax.Span) *File {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &File{
		Path:       path,
		Source:     source,
		Spans:      spans,
		lineStarts: starts,
	}
}

// Text resolves the byte range of span to its text. It reports false when
// the range does not fit inside the file.
func (f *File) Text(span syntax.Span) ([]byte, bool) {
	return span.Text(f.Source)
}

// LineCol converts a byte offset in Source to a 1-based line and a 1-based
// byte column. Offsets past the end are clamped to the end of the file.
func (f *File) LineCol(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.Source) {
		offset = len(f.Source)
	}
	idx := sort.Search(len(f.lineStarts), func(i int) bool {
		return f.lineStarts[i] > offset
	}) - 1
	return idx + 1, offset - f.lineStarts[idx] + 1
}

// Line returns the content of the 1-based line n without its line ending,
// or nil when n is out of range.
func (f *File) Line(n int) []byte {
	if n < 1 || n > len(f.lineStarts) {
		return nil
	}
	start := f.lineStarts[n-1]
	end := len(f.Source)
	if n < len(f.lineStarts) {
		end = f.lineStarts[n] - 1
	}
	return bytes.TrimSuffix(f.Source[start:end], []byte("\r"))
}

// Locate fills in Line and Column of d from its Offset.
func (f *File) Locate(d *Diagnostic) {
	d.Line, d.Column = f.LineCol(d.Offset)
}
