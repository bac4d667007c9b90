package commentspacing

import "github.com/jeduden/lexlint/internal/syntax"

// SelectComments returns the spans of kind Comment or DocComment, in
// source order. Block comments are excluded by kind: the spacing
// convention only applies to slash-prefixed comments.
func SelectComments(spans []syntax.Span) []syntax.Span {
	var out []syntax.Span
	for _, s := range spans {
		if s.Kind == syntax.Comment || s.Kind == syntax.DocComment {
			out = append(out, s)
		}
	}
	return out
}
