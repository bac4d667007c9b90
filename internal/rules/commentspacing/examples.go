package commentspacing

import "github.com/jeduden/lexlint/internal/rule"

// NonTriggeringExamples implements rule.Exemplified.
func (r *Rule) NonTriggeringExamples() []rule.Example {
	return []rule.Example{
		{Code: "// This is a comment"},
		{Code: "/// Triple slash comment"},
		{Code: "// Multiline double-slash\n// comment"},
		{Code: "/// Multiline triple-slash\n/// comment"},
		{Code: "/// Multiline triple-slash\n///   - This is indented"},
		{Code: "// - MARK: Mark comment"},
		{Code: "/* Asterisk comment */"},
		{Code: "/*\n    Multiline asterisk comment\n*/"},
		{Code: "/**Doc block without a space*/"},
		{Code: "//\n"},
		{Code: "////Banner"},
		{Code: "let url = \"http://example.com\""},
	}
}

// TriggeringExamples implements rule.Exemplified.
func (r *Rule) TriggeringExamples() []rule.Example {
	return []rule.Example{
		{Code: "//↓Something"},
		{Code: "//↓MARK"},
		{Code: "//↓👨‍👨‍👦‍👦Something"},
		{Code: "func a() {\n    //↓This needs refactoring\n    print(\"Something\")\n}\n//↓We should improve above function"},
		{Code: "///↓This is a comment"},
		{Code: "/// Multiline triple-slash\n///↓This line is incorrect, though"},
		{Code: "//↓- MARK: Mark comment"},
		{Code: "let x = 1 //↓trailing"},
		{Code: "//↓Something", Settings: map[string]any{"severity": "error"}},
	}
}
