// Package commentspacing implements LEX001, which asks for at least one
// space between the leading slashes of a line or doc comment and its text.
package commentspacing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jeduden/lexlint/internal/lint"
	"github.com/jeduden/lexlint/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule reports comments like "//text" and "///text".
type Rule struct {
	rule.SeverityConfig

	skipped func(path string, start, length int)
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "LEX001" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "comment-spacing" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "lint" }

// Description implements rule.Rule.
func (r *Rule) Description() string {
	return "Prefer at least one space after slashes for comments."
}

// EnabledByDefault implements rule.Defaultable. The rule is opt-in.
func (r *Rule) EnabledByDefault() bool { return false }

const message = "Prefer at least one space after slashes for comments"

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	sev := r.SeverityOrDefault(lint.Warning)
	var diags []lint.Diagnostic
	for _, span := range SelectComments(f.Spans) {
		text, ok := f.Text(span)
		if !ok {
			if r.skipped != nil {
				r.skipped(f.Path, span.Range.Start, span.Range.Length)
			}
			continue
		}
		m, ok := matchPrefix(text)
		if !ok {
			continue
		}
		d := lint.Diagnostic{
			File:     f.Path,
			Offset:   span.Range.Start + m.end - 1,
			RuleID:   r.ID(),
			RuleName: r.Name(),
			Severity: sev,
			Message:  message,
		}
		f.Locate(&d)
		diags = append(diags, d)
	}
	// Spans from an external tokenizer are not guaranteed to be sorted.
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Offset < diags[j].Offset
	})
	return diags
}

// SetSkipHandler implements rule.SkipReporter.
func (r *Rule) SetSkipHandler(fn func(path string, start, length int)) {
	r.skipped = fn
}

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	rest, err := r.ApplySeverity(settings)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		keys := make([]string, 0, len(rest))
		for k := range rest {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown setting(s) %s", strings.Join(keys, ", "))
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{rule.SeverityKey: string(lint.Warning)}
}
