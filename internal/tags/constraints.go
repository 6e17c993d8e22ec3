package tags

// NameContents describes what a tag's name slot denotes.
type NameContents uint8

const (
	// NameUnset means the tag definition says nothing about its name slot.
	NameUnset NameContents = iota
	// NameNone means no name is syntactically meaningful.
	NameNone
	// NameText is a free-text label.
	NameText
	// NameDefining is a namepath introducing a new entity (typedef, callback).
	NameDefining
	// NameReferencing is a namepath pointing at an existing entity.
	NameReferencing
)

func (n NameContents) String() string {
	switch n {
	case NameNone:
		return "none"
	case NameText:
		return "text"
	case NameDefining:
		return "namepath-defining"
	case NameReferencing:
		return "namepath-referencing"
	default:
		return "unset"
	}
}

// Field identifies one constraint of a Constraints value.
type Field uint8

const (
	FieldNameContents Field = 1 << iota
	FieldNameAllowed
	FieldNameRequired
	FieldTypeAllowed
	FieldTypeRequired
	FieldTypeOrNameRequired
)

// Constraints is the grammar of a single tag under a single dialect.
// Boolean fields read false when unset; Has distinguishes "explicitly false"
// from "not specified".
type Constraints struct {
	NameContents       NameContents
	NameAllowed        bool
	NameRequired       bool
	TypeAllowed        bool
	TypeRequired       bool
	TypeOrNameRequired bool

	set Field
}

// Has reports whether the definition spells out f.
func (c Constraints) Has(f Field) bool {
	return c.set&f != 0
}

// IsZero reports whether nothing is specified (unknown tags).
func (c Constraints) IsZero() bool {
	return c.set == 0
}

func def() Constraints { return Constraints{} }

func (c Constraints) names(n NameContents) Constraints {
	c.NameContents = n
	c.set |= FieldNameContents
	return c
}

// namesIf picks between two name kinds; used by tags whose name slot changes
// meaning across dialects.
func (c Constraints) namesIf(cond bool, yes, no NameContents) Constraints {
	if cond {
		return c.names(yes)
	}
	return c.names(no)
}

func (c Constraints) nameAllowed(v bool) Constraints {
	c.NameAllowed = v
	c.set |= FieldNameAllowed
	return c
}

func (c Constraints) nameRequired(v bool) Constraints {
	c.NameRequired = v
	c.set |= FieldNameRequired
	return c
}

func (c Constraints) typeAllowed(v bool) Constraints {
	c.TypeAllowed = v
	c.set |= FieldTypeAllowed
	return c
}

func (c Constraints) typeRequired(v bool) Constraints {
	c.TypeRequired = v
	c.set |= FieldTypeRequired
	return c
}

func (c Constraints) typeOrName(v bool) Constraints {
	c.TypeOrNameRequired = v
	c.set |= FieldTypeOrNameRequired
	return c
}
