package rules

import (
	"doclint/internal/diag"
	"doclint/internal/doc"
	"doclint/internal/params"
	"doclint/internal/source"
	"doclint/internal/tags"
)

// Context describes the declaration under check.
type Context struct {
	Grammar *tags.Grammar
	// Prefs is settings.tag_name_preference.
	Prefs  map[string]string
	Block  doc.Block
	Params params.Tree

	// Source is the documented file; Bundle and Decl locate the declaration
	// for data-level fixes.
	Source source.FileID
	Bundle source.FileID
	Decl   int

	Reporter diag.Reporter
	Severity diag.Severity
}

// Preferred returns the project's spelling of a canonical tag name.
func (c *Context) Preferred(tag string) string {
	if c.Grammar == nil {
		return tag
	}
	return c.Grammar.PreferredName(tag, c.Prefs)
}

func (c *Context) at(line int) source.Span {
	return source.At(c.Source, line)
}

func (c *Context) report(code diag.Code, line int, msg string) *diag.ReportBuilder {
	return diag.NewReportBuilder(c.Reporter, c.Severity, code, c.at(line), msg)
}
