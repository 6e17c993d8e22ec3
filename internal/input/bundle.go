package input

import (
	"crypto/sha256"
	"fmt"

	"doclint/internal/doc"
	"doclint/internal/params"
)

// Decl is one documented declaration.
type Decl struct {
	// Name is informational ("fetchUser", "Client#send").
	Name string `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	// Line of the declaration itself; the block carries its own lines.
	Line   int         `json:"line,omitempty" yaml:"line,omitempty" msgpack:"line,omitempty"`
	Doc    doc.Block   `json:"doc" yaml:"doc" msgpack:"doc"`
	Params params.Tree `json:"params,omitempty" yaml:"params,omitempty" msgpack:"params,omitempty"`
}

// Bundle is everything the linter knows about one source file.
type Bundle struct {
	// Source is the documented file, relative to the bundle when not absolute.
	Source string `json:"source" yaml:"source" msgpack:"source"`
	Decls  []Decl `json:"decls" yaml:"decls" msgpack:"decls"`

	// Path and Format describe where the bundle was read from.
	Path   string `json:"-" yaml:"-" msgpack:"-"`
	Format Format `json:"-" yaml:"-" msgpack:"-"`
	// Digest is the SHA-256 of the encoded bytes Load read.
	Digest [sha256.Size]byte `json:"-" yaml:"-" msgpack:"-"`
}

// InvalidError reports a bundle that decoded but breaks a shape rule.
type InvalidError struct {
	Path   string
	Decl   int
	Reason string
}

func (e *InvalidError) Error() string {
	if e.Decl < 0 {
		return fmt.Sprintf("%s: invalid bundle: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("%s: invalid bundle: decl %d: %s", e.Path, e.Decl, e.Reason)
}

// Validate checks the bundle shape: a source path, tags with names and
// positive lines, and well-formed parameter trees.
func (b *Bundle) Validate() error {
	if b.Source == "" {
		return &InvalidError{Path: b.Path, Decl: -1, Reason: "missing source"}
	}
	for i := range b.Decls {
		d := &b.Decls[i]
		for j, t := range d.Doc.Tags {
			if t.Tag == "" {
				return &InvalidError{Path: b.Path, Decl: i, Reason: fmt.Sprintf("tag %d has no name", j)}
			}
			if t.Line < 0 {
				return &InvalidError{Path: b.Path, Decl: i, Reason: fmt.Sprintf("tag %d has negative line", j)}
			}
		}
		if err := d.Params.Validate(); err != nil {
			return &InvalidError{Path: b.Path, Decl: i, Reason: err.Error()}
		}
	}
	return nil
}

// Clone returns a deep copy suitable for editing by fixes.
func (b *Bundle) Clone() *Bundle {
	out := *b
	out.Decls = make([]Decl, len(b.Decls))
	for i, d := range b.Decls {
		d.Doc.Tags = append([]doc.Tag(nil), d.Doc.Tags...)
		d.Params = append(params.Tree(nil), d.Params...)
		out.Decls[i] = d
	}
	return &out
}

// TagCount returns the number of tags across all declarations.
func (b *Bundle) TagCount() int {
	n := 0
	for _, d := range b.Decls {
		n += len(d.Doc.Tags)
	}
	return n
}
