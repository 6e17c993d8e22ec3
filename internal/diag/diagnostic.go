package diag

import (
	"doclint/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// Rule names the rule that produced d.
func (d Diagnostic) Rule() string {
	return d.Code.Rule()
}
