package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jeduden/lexlint/internal/lint"
)

func sample() lint.Diagnostic {
	return lint.Diagnostic{
		File:     "Sources/App.swift",
		Offset:   13,
		Line:     2,
		Column:   3,
		RuleID:   "LEX001",
		RuleName: "comment-spacing",
		Severity: lint.Warning,
		Message:  "Prefer at least one space after slashes for comments",
	}
}

func TestTextFormatter_SingleDiagnostic(t *testing.T) {
	f := &TextFormatter{Color: false}
	var buf bytes.Buffer

	if err := f.Format(&buf, []lint.Diagnostic{sample()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "Sources/App.swift:2:3 LEX001 Prefer at least one space after slashes for comments\n"
	if buf.String() != expected {
		t.Errorf("got %q, want %q", buf.String(), expected)
	}
}

func TestTextFormatter_MultipleDiagnostics(t *testing.T) {
	f := &TextFormatter{Color: false}
	var buf bytes.Buffer

	second := sample()
	second.File = "main.go"
	second.Line = 7
	second.Column = 4

	if err := f.Format(&buf, []lint.Diagnostic{sample(), second}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "Sources/App.swift:2:3 LEX001 ") {
		t.Errorf("line 1: got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "main.go:7:4 LEX001 ") {
		t.Errorf("line 2: got %q", lines[1])
	}
}

func TestTextFormatter_WithColor(t *testing.T) {
	f := &TextFormatter{Color: true}
	var buf bytes.Buffer

	if err := f.Format(&buf, []lint.Diagnostic{sample()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "\x1b[36mSources/App.swift:2:3") {
		t.Errorf("expected cyan location, got %q", out)
	}
	if !strings.Contains(out, "\x1b[33mLEX001") {
		t.Errorf("expected yellow rule ID for a warning, got %q", out)
	}
}

func TestTextFormatter_ErrorSeverityColor(t *testing.T) {
	f := &TextFormatter{Color: true}
	var buf bytes.Buffer

	d := sample()
	d.Severity = lint.Error
	if err := f.Format(&buf, []lint.Diagnostic{d}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[31mLEX001") {
		t.Errorf("expected red rule ID for an error, got %q", buf.String())
	}
}

func TestTextFormatter_WithoutColor(t *testing.T) {
	f := &TextFormatter{Color: false}
	var buf bytes.Buffer

	if err := f.Format(&buf, []lint.Diagnostic{sample()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected no ANSI escape codes, got %q", buf.String())
	}
}

func TestTextFormatter_Snippet(t *testing.T) {
	f := &TextFormatter{
		Snippet: true,
		Sources: map[string][]byte{
			"Sources/App.swift": []byte("let a = 1\n//x\n"),
		},
	}
	var buf bytes.Buffer

	d := sample()
	d.Offset = 12
	if err := f.Format(&buf, []lint.Diagnostic{d}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "Sources/App.swift:2:3 LEX001 Prefer at least one space after slashes for comments\n" +
		"  //x\n" +
		"    ^\n"
	if buf.String() != expected {
		t.Errorf("got %q, want %q", buf.String(), expected)
	}
}

func TestTextFormatter_SnippetWithoutSource(t *testing.T) {
	f := &TextFormatter{Snippet: true}
	var buf bytes.Buffer

	if err := f.Format(&buf, []lint.Diagnostic{sample()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("expected only the diagnostic line, got %q", buf.String())
	}
}

func TestCaretPad(t *testing.T) {
	tests := []struct {
		name string
		line string
		col  int
		want string
	}{
		{"ascii", "//x", 3, "  "},
		{"two-byte letter", "é//x", 5, "   "},
		{"wide emoji", "🎉//x", 7, "    "},
		{"tab kept", "\t//x", 4, "\t  "},
		{"first column", "//x", 1, ""},
		{"column past end", "ab", 10, "  "},
		{"column before start", "ab", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := caretPad([]byte(tt.line), tt.col); got != tt.want {
				t.Errorf("caretPad(%q, %d) = %q, want %q", tt.line, tt.col, got, tt.want)
			}
		})
	}
}

func TestTextFormatter_EmptyDiagnostics(t *testing.T) {
	f := &TextFormatter{Color: false}
	var buf bytes.Buffer

	if err := f.Format(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected empty output, got %q", buf.String())
	}
}

func TestNew(t *testing.T) {
	if _, ok := mustNew(t, "text").(*TextFormatter); !ok {
		t.Error("text should return a TextFormatter")
	}
	if _, ok := mustNew(t, "").(*TextFormatter); !ok {
		t.Error("empty name should return a TextFormatter")
	}
	if _, ok := mustNew(t, "json").(*JSONFormatter); !ok {
		t.Error("json should return a JSONFormatter")
	}
	if _, err := New("sarif", false); err == nil {
		t.Error("expected error for unknown format")
	}
}

func mustNew(t *testing.T, name string) Formatter {
	t.Helper()
	f, err := New(name, false)
	if err != nil {
		t.Fatalf("New(%q): %v", name, err)
	}
	return f
}

func TestTextFormatter_ImplementsFormatter(t *testing.T) {
	var _ Formatter = &TextFormatter{}
}
