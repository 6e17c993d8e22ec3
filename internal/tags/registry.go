package tags

import (
	"sort"

	"doclint/internal/dialect"
)

// Definition computes a tag's constraints for a dialect.
type Definition func(dialect.Mode) Constraints

// fixed wraps a dialect-invariant definition.
func fixed(cs Constraints) Definition {
	return func(dialect.Mode) Constraints { return cs }
}

// None of the namepath-defining tags show curly brackets around their
// name. Among defining/referencing tags none allow a bracketed name either;
// `modifies` references namepaths inside its type and `param` defines a name
// but not a namepath.
var definitions = map[string]Definition{
	"alias": fixed(def().names(NameReferencing).typeOrName(true)),

	"arg":      fixed(def().names(NameDefining).nameRequired(true).typeAllowed(true)),
	"argument": fixed(def().names(NameDefining).nameRequired(true).typeAllowed(true)),

	// Namepath in the signature, never shown with curly brackets.
	"augments": fixed(def().names(NameReferencing).typeAllowed(true).typeOrName(true)),

	// Special two-namepath syntax.
	"borrows": fixed(def().names(NameReferencing).typeOrName(true)),

	// Unattached callbacks are unusable without a name, in every dialect.
	"callback": fixed(def().names(NameDefining).nameRequired(true)),

	"class":       fixed(def().names(NameDefining).nameAllowed(true).typeAllowed(true)),
	"const":       fixed(def().names(NameDefining).typeAllowed(true)),
	"constant":    fixed(def().names(NameDefining).typeAllowed(true)),
	"constructor": fixed(def().names(NameDefining).typeAllowed(true)),
	"constructs":  fixed(def().names(NameDefining).nameRequired(false).typeAllowed(false)),

	"define": func(m dialect.Mode) Constraints {
		return def().typeRequired(m == dialect.Closure)
	},

	"emits": fixed(def().names(NameReferencing).nameRequired(true).typeAllowed(false)),
	"enum":  fixed(def().typeAllowed(true)),

	"event":     fixed(def().nameRequired(true).names(NameDefining)),
	"exception": fixed(def().typeAllowed(true)),

	"export": func(m dialect.Mode) Constraints {
		return def().typeAllowed(m.IsClosureOrPermissive())
	},
	"exports": func(m dialect.Mode) Constraints {
		return def().
			names(NameDefining).
			nameRequired(m == dialect.Plain).
			typeAllowed(m.IsClosureOrPermissive())
	},
	"extends": func(m dialect.Mode) Constraints {
		notPlain := m != dialect.Plain
		return def().
			names(NameReferencing).
			typeAllowed(notPlain).
			nameRequired(m == dialect.Plain).
			typeOrName(notPlain)
	},

	"external": fixed(def().names(NameDefining).nameRequired(true).typeAllowed(false)),
	"fires":    fixed(def().names(NameReferencing).nameRequired(true).typeAllowed(false)),
	"function": fixed(def().names(NameDefining).nameRequired(false).typeAllowed(false)),
	"func":     fixed(def().names(NameDefining)),
	"host":     fixed(def().names(NameDefining).nameRequired(true).typeAllowed(false)),

	"interface": func(m dialect.Mode) Constraints {
		return def().
			namesIf(m.IsNotClosure(), NameDefining, NameNone).
			nameAllowed(m == dialect.Closure).
			typeAllowed(false)
	},

	"implements": fixed(def().typeRequired(true)),
	"lends":      fixed(def().names(NameReferencing).typeOrName(true)),
	"listens":    fixed(def().names(NameReferencing).nameRequired(true).typeAllowed(false)),
	"member":     fixed(def().names(NameDefining).typeAllowed(true)),

	// May end with a connecting symbol (incomplete namepath).
	"memberof":  fixed(def().names(NameReferencing).typeOrName(true)),
	"memberof!": fixed(def().names(NameReferencing).typeOrName(true)),

	"method": fixed(def().names(NameDefining)),
	"mixes":  fixed(def().names(NameReferencing).typeOrName(true)),
	"mixin":  fixed(def().names(NameDefining).nameRequired(false).typeAllowed(false)),

	// Undocumented upstream; examples show a type.
	"modifies": fixed(def().typeAllowed(true)),

	"module": func(m dialect.Mode) Constraints {
		return def().
			namesIf(m == dialect.Plain, NameDefining, NameText).
			typeAllowed(true)
	},

	"name":      fixed(def().names(NameDefining).nameRequired(true).typeOrName(true)),
	"namespace": fixed(def().names(NameDefining).typeAllowed(true)),

	"package": func(m dialect.Mode) Constraints {
		return def().typeAllowed(m.IsClosureOrPermissive())
	},

	"param": fixed(def().names(NameDefining).nameRequired(true).typeAllowed(true)),

	"private": func(m dialect.Mode) Constraints {
		return def().typeAllowed(m.IsClosureOrPermissive())
	},

	// Treated as required by analogy with param.
	"prop":     fixed(def().names(NameDefining).nameRequired(true).typeAllowed(true)),
	"property": fixed(def().names(NameDefining).nameRequired(true).typeAllowed(true)),

	"protected": func(m dialect.Mode) Constraints {
		return def().typeAllowed(m.IsClosureOrPermissive())
	},
	"public": func(m dialect.Mode) Constraints {
		return def().typeAllowed(m.IsClosureOrPermissive())
	},

	"requires": fixed(def().names(NameReferencing).nameRequired(true).typeAllowed(false)),
	"returns":  fixed(def().typeAllowed(true)),
	"return":   fixed(def().typeAllowed(true)),

	// Namepath or free text; users opt into referencing checks themselves.
	"see": fixed(def().names(NameText)),

	"static": func(m dialect.Mode) Constraints {
		return def().typeAllowed(m.IsClosureOrPermissive())
	},

	// Closure puts the suppressed warnings in the type slot.
	"suppress": func(m dialect.Mode) Constraints {
		return def().
			namesIf(m.IsNotClosure(), NameText, NameNone).
			typeRequired(m == dialect.Closure)
	},

	// Template names allow commas, so they are never parsed as defining.
	"template": func(m dialect.Mode) Constraints {
		return def().
			namesIf(m == dialect.Plain, NameText, NameReferencing).
			typeAllowed(m != dialect.Plain)
	},

	"this": func(m dialect.Mode) Constraints {
		return def().
			namesIf(m == dialect.Plain, NameReferencing, NameNone).
			typeRequired(m.IsTypedOrClosure()).
			typeOrName(m == dialect.Plain)
	},

	"throws":   fixed(def().typeAllowed(true)),
	"tutorial": fixed(def().nameRequired(true).typeAllowed(false)),
	"type":     fixed(def().typeRequired(true)),

	// TypeScript accepts a nameless typedef followed by @property tags.
	"typedef": func(m dialect.Mode) Constraints {
		return def().
			names(NameDefining).
			nameRequired(m.IsPlainOrPermissive()).
			typeAllowed(true).
			typeOrName(m != dialect.Typed)
	},

	"var":    fixed(def().names(NameDefining).typeAllowed(true)),
	"yields": fixed(def().typeAllowed(true)),
	"yield":  fixed(def().typeAllowed(true)),
}

// Resolve returns the constraints of tag under mode. Unknown tags yield the
// zero Constraints.
func Resolve(tag string, mode dialect.Mode) Constraints {
	d, ok := definitions[tag]
	if !ok {
		return Constraints{}
	}
	return d(mode)
}

// Known reports whether tag has a grammar definition.
func Known(tag string) bool {
	_, ok := definitions[tag]
	return ok
}

// Names returns every defined tag name, sorted.
func Names() []string {
	out := make([]string, 0, len(definitions))
	for name := range definitions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
