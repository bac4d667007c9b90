package engine

import (
	"strings"
	"testing"

	"github.com/jeduden/lexlint/internal/config"
	"github.com/jeduden/lexlint/internal/lint"
	"github.com/jeduden/lexlint/internal/rule"
	"github.com/jeduden/lexlint/internal/rules/commentspacing"
)

func newFile(t *testing.T, src string) *lint.File {
	t.Helper()
	f, err := lint.NewFile("test.swift", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestCheckRules_BasicDiagnostics(t *testing.T) {
	f := newFile(t, "let a = 1\n")

	effective := map[string]config.RuleCfg{
		"mock-rule": {Enabled: true},
	}
	rules := []rule.Rule{&mockRule{id: "LEX999", name: "mock-rule"}}

	diags, errs := CheckRules(f, rules, effective)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].RuleID != "LEX999" {
		t.Errorf("expected RuleID LEX999, got %s", diags[0].RuleID)
	}
}

func TestCheckRules_DisabledRuleSkipped(t *testing.T) {
	f := newFile(t, "//x\n")

	effective := map[string]config.RuleCfg{
		"comment-spacing": {Enabled: false},
	}
	diags, errs := CheckRules(f, []rule.Rule{&commentspacing.Rule{}}, effective)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics, got %d", len(diags))
	}
}

func TestCheckRules_UnconfiguredRuleSkipped(t *testing.T) {
	f := newFile(t, "//x\n")

	diags, errs := CheckRules(f, []rule.Rule{&commentspacing.Rule{}}, map[string]config.RuleCfg{})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics, got %d", len(diags))
	}
}

func TestCheckRules_SettingsDoNotMutateSharedRule(t *testing.T) {
	f := newFile(t, "//x\n")
	shared := &commentspacing.Rule{}

	effective := map[string]config.RuleCfg{
		"comment-spacing": {Enabled: true, Settings: map[string]any{"severity": "error"}},
	}
	diags, errs := CheckRules(f, []rule.Rule{shared}, effective)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(diags) != 1 || diags[0].Severity != lint.Error {
		t.Fatalf("expected one error diagnostic, got %+v", diags)
	}
	if shared.Severity != "" {
		t.Errorf("shared rule was modified: severity %q", shared.Severity)
	}
}

func TestCheckRules_SettingsError(t *testing.T) {
	f := newFile(t, "//x\n")

	effective := map[string]config.RuleCfg{
		"comment-spacing": {Enabled: true, Settings: map[string]any{"width": 2}},
	}
	diags, errs := CheckRules(f, []rule.Rule{&commentspacing.Rule{}}, effective)
	if len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics, got %d", len(diags))
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if !strings.Contains(errs[0].Error(), "applying settings for comment-spacing") {
		t.Errorf("unexpected error: %v", errs[0])
	}
}

func TestConfigureRule_NonConfigurableIgnoresSettings(t *testing.T) {
	rl := &mockRule{id: "LEX999", name: "mock-rule"}
	got, err := ConfigureRule(rl, config.RuleCfg{Enabled: true, Settings: map[string]any{"x": 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != rule.Rule(rl) {
		t.Error("expected the original rule back")
	}
}

func TestConfigureRule_NoSettingsReturnsOriginal(t *testing.T) {
	rl := &commentspacing.Rule{}
	got, err := ConfigureRule(rl, config.RuleCfg{Enabled: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != rule.Rule(rl) {
		t.Error("expected the original rule back")
	}
}

func TestChecker_MinSeverityFilters(t *testing.T) {
	f := newFile(t, "//x\n")
	rules := []rule.Rule{&commentspacing.Rule{}}
	effective := map[string]config.RuleCfg{"comment-spacing": {Enabled: true}}

	diags, _ := checker{minSeverity: lint.Warning}.check(f, rules, effective)
	if len(diags) != 1 {
		t.Errorf("warning should pass min-severity warning, got %d", len(diags))
	}
	diags, _ = checker{minSeverity: lint.Error}.check(f, rules, effective)
	if len(diags) != 0 {
		t.Errorf("warning should not pass min-severity error, got %d", len(diags))
	}
}

func TestChecker_SkipHandlerOnClone(t *testing.T) {
	f := newFile(t, "//x\n")
	shared := &spanRule{}
	var got []int
	c := checker{onSkip: func(rl rule.Rule, path string, start, length int) {
		if rl != rule.Rule(shared) {
			t.Errorf("handler should receive the configured rule")
		}
		got = append(got, start, length)
	}}

	diags, errs := c.check(f, []rule.Rule{shared}, map[string]config.RuleCfg{"comment-spacing": {Enabled: true}})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if len(got) != 2 || got[0] != 2 || got[1] != 99 {
		t.Errorf("skip handler calls = %v, want [2 99]", got)
	}
}
