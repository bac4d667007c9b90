// Package syntax classifies source text into typed lexical spans for the
// C family of languages that use slash comments (Swift, Go, C, Java, ...).
//
// The classifier is deliberately shallow. It only distinguishes comments,
// string literals and everything else, which is all the lexical rules need.
package syntax

// Kind classifies a lexical span.
type Kind uint8

// Span kinds.
const (
	Code Kind = iota
	String
	Comment      // "// ..." up to the end of the line
	DocComment   // "/// ..." lines and "/** ... */" blocks
	BlockComment // "/* ... */", nesting as in Swift
)

var kindNames = [...]string{
	Code:         "code",
	String:       "string",
	Comment:      "comment",
	DocComment:   "doc-comment",
	BlockComment: "block-comment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsComment reports whether k is any of the comment kinds.
func (k Kind) IsComment() bool {
	return k == Comment || k == DocComment || k == BlockComment
}
