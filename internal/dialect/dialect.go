package dialect

import (
	"fmt"
	"strings"
)

// Mode is the documentation dialect a run is configured for.
type Mode uint8

const (
	// Plain is classic JSDoc.
	Plain Mode = iota
	// Closure is the Google Closure Compiler flavour.
	Closure
	// Typed is JSDoc as understood by the TypeScript checker.
	Typed
	// Permissive accepts the union of the other dialects where they disagree.
	Permissive

	modeCount
)

// Modes lists every dialect in declaration order.
func Modes() []Mode {
	return []Mode{Plain, Closure, Typed, Permissive}
}

func (m Mode) String() string {
	switch m {
	case Plain:
		return "jsdoc"
	case Closure:
		return "closure"
	case Typed:
		return "typescript"
	case Permissive:
		return "permissive"
	default:
		return "unknown"
	}
}

func (m Mode) GoString() string {
	return fmt.Sprintf("dialect.Mode(%s)", m.String())
}

// Valid reports whether m is one of the known dialects.
func (m Mode) Valid() bool {
	return m < modeCount
}

// ParseMode converts a configuration value to a Mode.
// "plain" and "typed" are accepted as synonyms of "jsdoc" and "typescript".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "jsdoc", "plain":
		return Plain, nil
	case "closure":
		return Closure, nil
	case "typescript", "typed":
		return Typed, nil
	case "permissive":
		return Permissive, nil
	default:
		return Plain, fmt.Errorf("invalid mode: %q (expected: jsdoc|closure|typescript|permissive)", s)
	}
}

// IsPlainOrPermissive reports m ∈ {Plain, Permissive}.
func (m Mode) IsPlainOrPermissive() bool { return m == Plain || m == Permissive }

// IsPlainOrTyped reports m ∈ {Plain, Typed}.
func (m Mode) IsPlainOrTyped() bool { return m == Plain || m == Typed }

// IsTypedOrClosure reports m ∈ {Typed, Closure}.
func (m Mode) IsTypedOrClosure() bool { return m == Typed || m == Closure }

// IsClosureOrPermissive reports m ∈ {Closure, Permissive}.
func (m Mode) IsClosureOrPermissive() bool { return m == Closure || m == Permissive }

// IsNotClosure reports m ∈ {Plain, Typed, Permissive}.
func (m Mode) IsNotClosure() bool { return m != Closure }
