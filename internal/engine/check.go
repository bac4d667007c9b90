package engine

import (
	"fmt"

	"github.com/jeduden/lexlint/internal/config"
	"github.com/jeduden/lexlint/internal/lint"
	"github.com/jeduden/lexlint/internal/rule"
)

// ConfigureRule clones a rule and applies settings from cfg if the rule
// implements Configurable and cfg has settings. Returns the configured
// rule (or the original if no settings apply) and any error from
// ApplySettings.
func ConfigureRule(rl rule.Rule, cfg config.RuleCfg) (rule.Rule, error) {
	if cfg.Settings == nil {
		return rl, nil
	}
	if _, ok := rl.(rule.Configurable); !ok {
		return rl, nil
	}
	clone := rule.CloneRule(rl)
	if c, ok := clone.(rule.Configurable); ok {
		if err := c.ApplySettings(cfg.Settings); err != nil {
			return nil, fmt.Errorf("applying settings for %s: %w", rl.Name(), err)
		}
	}
	return clone, nil
}

// checker runs the enabled rules of one file.
type checker struct {
	minSeverity lint.Severity
	onSkip      func(rl rule.Rule, path string, start, length int)
}

// CheckRules runs all enabled rules against f, cloning and applying
// settings for Configurable rules. It returns the collected diagnostics
// and any settings-application errors.
func CheckRules(f *lint.File, rules []rule.Rule, effective map[string]config.RuleCfg) ([]lint.Diagnostic, []error) {
	return checker{}.check(f, rules, effective)
}

func (c checker) check(f *lint.File, rules []rule.Rule, effective map[string]config.RuleCfg) ([]lint.Diagnostic, []error) {
	var diags []lint.Diagnostic
	var errs []error

	for _, rl := range rules {
		cfg, ok := effective[rl.Name()]
		if !ok || !cfg.Enabled {
			continue
		}

		checkRule, err := ConfigureRule(rl, cfg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		checkRule = c.withSkipHandler(checkRule)

		for _, d := range checkRule.Check(f) {
			if c.minSeverity == "" || d.Severity.AtLeast(c.minSeverity) {
				diags = append(diags, d)
			}
		}
	}

	return diags, errs
}

// withSkipHandler returns a copy of rl that reports skipped spans, when
// both the checker and the rule support it. The shared rule is never
// modified, since files are checked concurrently.
func (c checker) withSkipHandler(rl rule.Rule) rule.Rule {
	if c.onSkip == nil {
		return rl
	}
	if _, ok := rl.(rule.SkipReporter); !ok {
		return rl
	}
	clone := rule.CloneRule(rl)
	sr, ok := clone.(rule.SkipReporter)
	if !ok {
		return rl
	}
	sr.SetSkipHandler(func(path string, start, length int) {
		c.onSkip(rl, path, start, length)
	})
	return clone
}
