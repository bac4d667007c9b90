// Package ruletest turns the examples a rule ships into assertions. Every
// marker in a triggering example must produce exactly one diagnostic at
// that offset, and non-triggering examples must produce none.
package ruletest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeduden/lexlint/internal/lint"
	"github.com/jeduden/lexlint/internal/rule"
)

// ExamplePath is the file name used in diagnostics produced by examples.
const ExamplePath = "<example>"

// Run checks the marker-free source of ex with r, after applying the
// example's settings to a clone of r.
func Run(r rule.Rule, ex rule.Example) ([]lint.Diagnostic, error) {
	checked := r
	if ex.Settings != nil {
		checked = rule.CloneRule(r)
		c, ok := checked.(rule.Configurable)
		if !ok {
			return nil, fmt.Errorf("%s: example has settings but the rule is not configurable", r.Name())
		}
		if err := c.ApplySettings(ex.Settings); err != nil {
			return nil, fmt.Errorf("%s: applying example settings: %w", r.Name(), err)
		}
	}

	src, _ := ex.Source()
	f, err := lint.NewFile(ExamplePath, []byte(src))
	if err != nil {
		return nil, err
	}
	if err := CheckSpans(f); err != nil {
		return nil, err
	}
	return checked.Check(f), nil
}

// Offsets returns the offsets of diags in order.
func Offsets(diags []lint.Diagnostic) []int {
	out := make([]int, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Offset)
	}
	return out
}

// Verify runs every example of r as a subtest. It fails the test when r
// does not implement rule.Exemplified.
func Verify(t *testing.T, r rule.Rule) {
	t.Helper()

	ex, ok := r.(rule.Exemplified)
	require.Truef(t, ok, "%s does not ship examples", r.Name())

	for i, e := range ex.NonTriggeringExamples() {
		e := e
		t.Run(fmt.Sprintf("non-triggering/%d", i), func(t *testing.T) {
			_, markers := e.Source()
			require.Empty(t, markers, "non-triggering example contains a marker: %q", e.Code)

			diags, err := Run(r, e)
			require.NoError(t, err)
			assert.Empty(t, diags, "unexpected diagnostics for %q", e.Code)
		})
	}

	for i, e := range ex.TriggeringExamples() {
		e := e
		t.Run(fmt.Sprintf("triggering/%d", i), func(t *testing.T) {
			_, want := e.Source()
			require.NotEmpty(t, want, "triggering example has no marker: %q", e.Code)

			diags, err := Run(r, e)
			require.NoError(t, err)
			assert.Equal(t, want, Offsets(diags), "violation offsets for %q", e.Code)
			sev := ExpectedSeverity(r, e)
			for _, d := range diags {
				assert.Equal(t, r.ID(), d.RuleID)
				assert.Equal(t, ExamplePath, d.File)
				if sev != "" {
					assert.Equal(t, sev, d.Severity, "severity for %q", e.Code)
				}
			}
		})
	}
}

// ExpectedSeverity returns the severity diagnostics of ex must carry: the
// example's own severity setting, else the rule's default one. It returns
// "" when neither is known.
func ExpectedSeverity(r rule.Rule, ex rule.Example) lint.Severity {
	if s, ok := ex.Settings[rule.SeverityKey].(string); ok {
		return lint.Severity(s)
	}
	if c, ok := r.(rule.Configurable); ok {
		if s, ok := c.DefaultSettings()[rule.SeverityKey].(string); ok {
			return lint.Severity(s)
		}
	}
	return ""
}

// CheckSpans verifies the invariants rules rely on: every span lies
// within the source, spans are sorted and do not overlap.
func CheckSpans(f *lint.File) error {
	prevEnd := 0
	for i, s := range f.Spans {
		if !s.Range.Valid(len(f.Source)) {
			return fmt.Errorf("span %d %+v outside source of %d bytes", i, s.Range, len(f.Source))
		}
		if s.Range.Start < prevEnd {
			return fmt.Errorf("span %d starts at %d before previous end %d", i, s.Range.Start, prevEnd)
		}
		prevEnd = s.Range.End()
	}
	return nil
}
