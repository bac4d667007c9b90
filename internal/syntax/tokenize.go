package syntax

import "bytes"

// Tokenize splits src into spans covering every byte, in source order.
// Adjacent code bytes are merged into a single Code span. Line comments
// never include the terminating newline, so consecutive "//" lines yield
// one span each.
func Tokenize(src []byte) []Span {
	t := &tokenizer{src: src, codeStart: -1}
	for t.pos < len(src) {
		switch {
		case t.hasPrefix("//"):
			t.lineComment()
		case t.hasPrefix("/*"):
			t.blockComment()
		case src[t.pos] == '"':
			t.stringLiteral()
		case src[t.pos] == '\'' && t.charLiteral():
		default:
			if t.codeStart < 0 {
				t.codeStart = t.pos
			}
			t.pos++
		}
	}
	t.flushCode(len(src))
	return t.spans
}

type tokenizer struct {
	src       []byte
	pos       int
	codeStart int
	spans     []Span
}

func (t *tokenizer) hasPrefix(p string) bool {
	return bytes.HasPrefix(t.src[t.pos:], []byte(p))
}

// flushCode closes the pending code span at end, the start of the token
// that interrupted it.
func (t *tokenizer) flushCode(end int) {
	if t.codeStart < 0 {
		return
	}
	t.spans = append(t.spans, Span{
		Kind:  Code,
		Range: ByteRange{Start: t.codeStart, Length: end - t.codeStart},
	})
	t.codeStart = -1
}

func (t *tokenizer) emit(kind Kind, start int) {
	t.flushCode(start)
	t.spans = append(t.spans, Span{
		Kind:  kind,
		Range: ByteRange{Start: start, Length: t.pos - start},
	})
}

func (t *tokenizer) lineComment() {
	start := t.pos
	kind := Comment
	// "///" is a doc comment, "////" and longer runs are plain comments.
	if t.hasPrefix("///") && !t.hasPrefix("////") {
		kind = DocComment
	}
	end := len(t.src)
	if i := bytes.IndexByte(t.src[start:], '\n'); i >= 0 {
		end = start + i
	}
	if end > start && t.src[end-1] == '\r' {
		end--
	}
	t.pos = end
	t.emit(kind, start)
}

func (t *tokenizer) blockComment() {
	start := t.pos
	kind := BlockComment
	if t.hasPrefix("/**") && !t.hasPrefix("/**/") && !t.hasPrefix("/***") {
		kind = DocComment
	}
	t.pos += 2
	depth := 1
	for t.pos < len(t.src) && depth > 0 {
		switch {
		case t.hasPrefix("/*"):
			depth++
			t.pos += 2
		case t.hasPrefix("*/"):
			depth--
			t.pos += 2
		default:
			t.pos++
		}
	}
	t.emit(kind, start)
}

func (t *tokenizer) stringLiteral() {
	start := t.pos
	if t.hasPrefix(`"""`) {
		t.pos += 3
		end := bytes.Index(t.src[t.pos:], []byte(`"""`))
		if end < 0 {
			t.pos = len(t.src)
		} else {
			t.pos += end + 3
		}
		t.emit(String, start)
		return
	}
	t.pos++
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		if c == '\\' && t.pos+1 < len(t.src) {
			t.pos += 2
			continue
		}
		if c == '\n' {
			break
		}
		t.pos++
		if c == '"' {
			break
		}
	}
	t.emit(String, start)
}

// charLiteral consumes 'x' or '\x' and reports whether it did. A lone
// quote (a Rust lifetime, a Swift key path) is left to the code span.
func (t *tokenizer) charLiteral() bool {
	start := t.pos
	rest := t.src[start:]
	n := 0
	switch {
	case len(rest) >= 4 && rest[1] == '\\' && rest[3] == '\'':
		n = 4
	case len(rest) >= 3 && rest[1] != '\\' && rest[1] != '\n' && rest[2] == '\'':
		n = 3
	default:
		return false
	}
	t.pos += n
	t.emit(String, start)
	return true
}
