package tags

import "doclint/internal/dialect"

// aliases maps a synonym to its canonical JSDoc tag name.
var aliases = map[string]string{
	"virtual":      "abstract",
	"extends":      "augments",
	"constructor":  "class",
	"const":        "constant",
	"defaultvalue": "default",
	"desc":         "description",
	"host":         "external",
	"fileoverview": "file",
	"overview":     "file",
	"emits":        "fires",
	"func":         "function",
	"method":       "function",
	"var":          "member",
	"arg":          "param",
	"argument":     "param",
	"prop":         "property",
	"return":       "returns",
	"exception":    "throws",
	"yield":        "yields",
}

// Grammar is the precomputed tag table for one dialect.
type Grammar struct {
	mode  dialect.Mode
	table map[string]Constraints
}

// NewGrammar evaluates every definition for mode.
func NewGrammar(mode dialect.Mode) *Grammar {
	table := make(map[string]Constraints, len(definitions))
	for name, d := range definitions {
		table[name] = d(mode)
	}
	return &Grammar{mode: mode, table: table}
}

// Mode returns the dialect the table was built for.
func (g *Grammar) Mode() dialect.Mode {
	return g.mode
}

// Lookup returns the constraints for tag (zero value when unknown).
func (g *Grammar) Lookup(tag string) Constraints {
	return g.table[tag]
}

// Known reports whether tag has a definition.
func (g *Grammar) Known(tag string) bool {
	_, ok := g.table[tag]
	return ok
}

// IsNamepathDefining reports whether tag's name introduces a namepath.
func (g *Grammar) IsNamepathDefining(tag string) bool {
	return g.table[tag].NameContents == NameDefining
}

// IsNamepathReferencing reports whether tag's name points at a namepath.
func (g *Grammar) IsNamepathReferencing(tag string) bool {
	return g.table[tag].NameContents == NameReferencing
}

// MightHaveName reports whether a name position can appear. Tags that say
// nothing about their name slot are given the benefit of the doubt.
func (g *Grammar) MightHaveName(tag string) bool {
	cs := g.table[tag]
	if !cs.Has(FieldNameContents) {
		return true
	}
	return cs.NameContents != NameNone
}

// MustHaveName reports whether the name position is mandatory.
func (g *Grammar) MustHaveName(tag string) bool {
	return g.table[tag].NameRequired
}

// MightHaveType reports whether a type position can appear.
func (g *Grammar) MightHaveType(tag string) bool {
	cs := g.table[tag]
	if cs.TypeRequired {
		return true
	}
	if !cs.Has(FieldTypeAllowed) {
		return true
	}
	return cs.TypeAllowed
}

// MustHaveType reports whether the type position is mandatory.
func (g *Grammar) MustHaveType(tag string) bool {
	return g.table[tag].TypeRequired
}

// MightHaveTypeOrName reports whether either position can appear.
func (g *Grammar) MightHaveTypeOrName(tag string) bool {
	return g.MightHaveType(tag) || g.MightHaveName(tag)
}

// MustHaveTypeOrName reports whether at least one position is mandatory.
func (g *Grammar) MustHaveTypeOrName(tag string) bool {
	return g.table[tag].TypeOrNameRequired
}

// Canonical maps a synonym (arg, return, ...) to its canonical tag name.
// Names that are not synonyms are returned unchanged.
func Canonical(tag string) string {
	if canon, ok := aliases[tag]; ok {
		return canon
	}
	return tag
}

// PreferredName resolves the spelling a project wants for tag.
//
// prefs maps tag names (optionally written as "tag <name>") to the preferred
// spelling. A name that already is somebody's preference wins as-is; then an
// explicit entry for the name; then the canonical name of a synonym.
func (g *Grammar) PreferredName(tag string, prefs map[string]string) string {
	for _, v := range prefs {
		if v == tag {
			return tag
		}
	}
	if v := prefs[tag]; v != "" {
		return v
	}
	if v := prefs["tag "+tag]; v != "" {
		return v
	}
	return Canonical(tag)
}
