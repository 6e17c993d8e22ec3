package diag

import (
	"fmt"
	"strings"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the lower-case form used in short output and config files.
func (s Severity) Label() string {
	return strings.ToLower(s.String())
}

// ParseSeverity accepts error, warning (warn) and info.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SevError, nil
	case "warning", "warn":
		return SevWarning, nil
	case "info":
		return SevInfo, nil
	}
	return SevInfo, fmt.Errorf("invalid severity: %q (expected: error|warning|info)", s)
}
