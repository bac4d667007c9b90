package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"

	"github.com/jeduden/lexlint/internal/lint"
	"github.com/jeduden/lexlint/internal/rule"
)

// Validate checks cfg against the registered rules before any file is
// checked: unknown rule names, settings a rule rejects (such as an invalid
// severity), bad glob patterns and an invalid min-severity are all
// reported together.
func Validate(cfg *Config) error {
	var errs []error

	errs = append(errs, validateRules("rules", cfg.Rules)...)
	for i, o := range cfg.Overrides {
		where := fmt.Sprintf("overrides[%d]", i)
		errs = append(errs, validateRules(where+".rules", o.Rules)...)
		errs = append(errs, validateGlobs(where+".files", o.Files)...)
	}
	errs = append(errs, validateGlobs("ignore", cfg.Ignore)...)

	for _, p := range cfg.Files {
		if !doublestar.ValidatePattern(p) {
			errs = append(errs, fmt.Errorf("files: invalid pattern %q", p))
		}
	}

	if cfg.MinSeverity != "" {
		if _, err := lint.ParseSeverity(cfg.MinSeverity); err != nil {
			errs = append(errs, fmt.Errorf("min-severity: %w", err))
		}
	}

	return errors.Join(errs...)
}

func validateRules(where string, rules map[string]RuleCfg) []error {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		rc := rules[name]
		r := rule.ByName(name)
		if r == nil {
			errs = append(errs, fmt.Errorf("%s: unknown rule %q", where, name))
			continue
		}
		if rc.Settings == nil {
			continue
		}
		if _, ok := r.(rule.Configurable); !ok {
			errs = append(errs, fmt.Errorf("%s.%s: rule takes no settings", where, name))
			continue
		}
		clone := rule.CloneRule(r)
		if err := clone.(rule.Configurable).ApplySettings(rc.Settings); err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", where, name, err))
		}
	}
	return errs
}

func validateGlobs(where string, patterns []string) []error {
	var errs []error
	for _, p := range patterns {
		if _, err := glob.Compile(p); err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid pattern %q: %w", where, p, err))
		}
	}
	return errs
}
