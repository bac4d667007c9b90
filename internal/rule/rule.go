package rule

import "github.com/jeduden/lexlint/internal/lint"

// Rule is a single lexical rule that checks a tokenized source file.
// Check must be a pure function of f: it may run concurrently with other
// Check calls on different files.
type Rule interface {
	ID() string
	Name() string
	Category() string
	Description() string
	Check(f *lint.File) []lint.Diagnostic
}

// Configurable is implemented by rules that have user-tunable settings.
type Configurable interface {
	ApplySettings(settings map[string]any) error
	DefaultSettings() map[string]any
}

// Defaultable is implemented by rules that override the default enabled
// state in generated/runtime configs.
type Defaultable interface {
	EnabledByDefault() bool
}

// Exemplified is implemented by rules that ship example sources. The
// examples double as documentation and as regression fixtures.
type Exemplified interface {
	TriggeringExamples() []Example
	NonTriggeringExamples() []Example
}

// SkipReporter is implemented by rules that can report spans they had to
// skip because the span's byte range did not resolve to text.
type SkipReporter interface {
	SetSkipHandler(fn func(path string, start, length int))
}
