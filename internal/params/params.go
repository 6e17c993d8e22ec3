// Package params describes the actual formal parameters of a documented
// declaration, as extracted by the external traversal: scalar bindings and
// destructured groups with their (possibly nested) property paths.
package params

import "fmt"

// Kind tells scalar bindings from destructured groups. The empty kind is a
// scalar so bundles may omit it.
type Kind string

const (
	Scalar       Kind = "scalar"
	Destructured Kind = "destructured"
)

// Property is one member of a destructured group, as a dot-joined path
// relative to the group ("timeout", "retry.max").
type Property struct {
	Name string `json:"name" yaml:"name" msgpack:"name"`
	// Rest marks a rest element (`...others`).
	Rest bool `json:"rest,omitempty" yaml:"rest,omitempty" msgpack:"rest,omitempty"`
}

// Param is one formal parameter.
type Param struct {
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty" msgpack:"kind,omitempty"`
	// Name is the binding name. For destructured groups it is optional; the
	// documented name then stands in for it.
	Name string `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	// Annotation is an explicit documentation-style name carried by the
	// declaration itself, when it differs from the binding.
	Annotation string `json:"annotation,omitempty" yaml:"annotation,omitempty" msgpack:"annotation,omitempty"`

	Properties      []Property `json:"properties,omitempty" yaml:"properties,omitempty" msgpack:"properties,omitempty"`
	HasRestProperty bool       `json:"has_rest_property,omitempty" yaml:"has_rest_property,omitempty" msgpack:"has_rest_property,omitempty"`

	// Defaults lists the keys of an object-literal default value
	// (`function f(opts = {a: 1})`). Only consulted by Tree.Expand.
	Defaults []Property `json:"defaults,omitempty" yaml:"defaults,omitempty" msgpack:"defaults,omitempty"`
}

// IsDestructured reports whether p is a destructured group.
func (p Param) IsDestructured() bool {
	return p.Kind == Destructured
}

// DocName is the name documentation is expected to use for a scalar.
func (p Param) DocName() string {
	if p.Annotation != "" {
		return p.Annotation
	}
	return p.Name
}

// PropertyNames returns the relative property paths in declaration order.
func (p Param) PropertyNames() []string {
	out := make([]string, len(p.Properties))
	for i, prop := range p.Properties {
		out[i] = prop.Name
	}
	return out
}

// Tree is the ordered parameter list of one declaration.
type Tree []Param

// At returns the parameter at position i.
func (t Tree) At(i int) (Param, bool) {
	if i < 0 || i >= len(t) {
		return Param{}, false
	}
	return t[i], true
}

// Expand returns the tree the validator should see. With useDefaults set,
// scalars whose default is an object literal become destructured groups
// named after the binding. The receiver is not modified.
func (t Tree) Expand(useDefaults bool) Tree {
	if !useDefaults {
		return t
	}
	out := make(Tree, len(t))
	for i, p := range t {
		if !p.IsDestructured() && len(p.Defaults) > 0 {
			p = Param{
				Kind:       Destructured,
				Name:       p.Name,
				Annotation: p.Annotation,
				Properties: append([]Property(nil), p.Defaults...),
			}
		}
		out[i] = p
	}
	return out
}

// Validate checks the shape invariants an extractor must uphold.
func (t Tree) Validate() error {
	for i, p := range t {
		switch p.Kind {
		case "", Scalar:
			if p.Name == "" && p.Annotation == "" {
				return &ShapeError{Index: i, Reason: "scalar parameter without a name"}
			}
			if len(p.Properties) > 0 {
				return &ShapeError{Index: i, Reason: "scalar parameter with properties"}
			}
		case Destructured:
			for _, prop := range p.Properties {
				if prop.Name == "" {
					return &ShapeError{Index: i, Reason: "empty property name"}
				}
			}
		default:
			return &ShapeError{Index: i, Reason: "unknown kind " + string(p.Kind)}
		}
	}
	return nil
}

// ShapeError reports a malformed parameter.
type ShapeError struct {
	Index  int
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("params[%d]: %s", e.Index, e.Reason)
}
