package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/jeduden/lexlint/internal/lint"
)

// TextFormatter outputs diagnostics in human-readable text format.
// When Color is true, the file location is printed in cyan and the rule ID
// in a color that depends on the severity.
//
// When Snippet is true and Sources holds the file's content, each
// diagnostic is followed by its source line and a caret under the
// reported column.
type TextFormatter struct {
	Color   bool
	Snippet bool
	Sources map[string][]byte
}

// Format writes each diagnostic as a single line in the pattern:
// file:line:col rule message
func (f *TextFormatter) Format(w io.Writer, diagnostics []lint.Diagnostic) error {
	files := make(map[string]*lint.File)
	for _, d := range diagnostics {
		loc := fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
		id := d.RuleID
		if f.Color {
			loc = paint(color.FgCyan).Sprint(loc)
			id = paint(severityColor(d.Severity)).Sprint(id)
		}
		if _, err := fmt.Fprintf(w, "%s %s %s\n", loc, id, d.Message); err != nil {
			return err
		}

		if !f.Snippet {
			continue
		}
		file, ok := files[d.File]
		if !ok {
			if src, found := f.Sources[d.File]; found {
				file = lint.NewFileWithSpans(d.File, src, nil)
			}
			files[d.File] = file
		}
		if file == nil {
			continue
		}
		if err := f.writeSnippet(w, file.Line(d.Line), d.Column); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) writeSnippet(w io.Writer, line []byte, col int) error {
	if line == nil {
		return nil
	}
	caret := "^"
	if f.Color {
		caret = paint(color.FgRed).Sprint(caret)
	}
	_, err := fmt.Fprintf(w, "  %s\n  %s%s\n", line, caretPad(line, col), caret)
	return err
}

// caretPad returns the whitespace that lines up a caret with the 1-based
// byte column col of line on a terminal. Tabs are kept so the caret
// follows the same tab stops as the line above it.
func caretPad(line []byte, col int) string {
	n := col - 1
	if n < 0 {
		n = 0
	}
	if n > len(line) {
		n = len(line)
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(string(line[:n]))
	for g.Next() {
		s := g.Str()
		if s == "\t" {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.StringWidth(s)))
	}
	return b.String()
}

func severityColor(s lint.Severity) color.Attribute {
	switch s {
	case lint.Error:
		return color.FgRed
	case lint.Info:
		return color.FgBlue
	default:
		return color.FgYellow
	}
}

// paint returns a color that is applied even when stdout is not a
// terminal; the caller has already decided that color is wanted.
func paint(attr color.Attribute) *color.Color {
	c := color.New(attr)
	c.EnableColor()
	return c
}
