package rule

import (
	"fmt"

	"github.com/jeduden/lexlint/internal/lint"
)

// SeverityKey is the settings key holding a rule's severity.
const SeverityKey = "severity"

// SeverityConfig is the configuration shared by rules whose only setting
// is the severity they report at. Embed it in a rule struct.
type SeverityConfig struct {
	Severity lint.Severity
}

// SeverityOrDefault returns the configured severity, or def when none
// has been applied yet.
func (c SeverityConfig) SeverityOrDefault(def lint.Severity) lint.Severity {
	if c.Severity == "" {
		return def
	}
	return c.Severity
}

// ApplySeverity reads the severity key from settings. Other keys are
// returned so that the caller can apply or reject them.
func (c *SeverityConfig) ApplySeverity(settings map[string]any) (rest map[string]any, err error) {
	rest = make(map[string]any, len(settings))
	for k, v := range settings {
		if k != SeverityKey {
			rest[k] = v
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be a string, got %T", SeverityKey, v)
		}
		sev, err := lint.ParseSeverity(s)
		if err != nil {
			return nil, err
		}
		c.Severity = sev
	}
	return rest, nil
}
