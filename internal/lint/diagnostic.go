package lint

import "fmt"

// Severity indicates the severity level of a diagnostic. Severities are
// ordered: Info < Warning < Error.
type Severity string

// Severity levels.
const (
	Info    Severity = "info"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// ParseSeverity converts a configuration value into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch sev := Severity(s); sev {
	case Info, Warning, Error:
		return sev, nil
	}
	return "", fmt.Errorf("invalid severity %q (want info, warning or error)", s)
}

func (s Severity) rank() int {
	switch s {
	case Info:
		return 1
	case Warning:
		return 2
	case Error:
		return 3
	}
	return 0
}

// AtLeast reports whether s is as severe as min or more.
func (s Severity) AtLeast(min Severity) bool {
	return s.rank() >= min.rank()
}

// Diagnostic represents a single lint finding. Offset is the absolute byte
// offset of the offending character; Line and Column are derived from it
// (both 1-based, Column counted in bytes).
type Diagnostic struct {
	File     string
	Offset   int
	Line     int
	Column   int
	RuleID   string
	RuleName string
	Severity Severity
	Message  string
}
