// Package testkit provides builders and a recording reporter for rule and
// driver tests.
package testkit

import (
	"strings"

	"doclint/internal/diag"
	"doclint/internal/doc"
	"doclint/internal/params"
	"doclint/internal/source"
)

// Block builds a block starting at line 1 whose tags without a line get
// consecutive lines from 2.
func Block(tags ...doc.Tag) doc.Block {
	out := make([]doc.Tag, len(tags))
	for i, t := range tags {
		if t.Line == 0 {
			t.Line = i + 2
		}
		out[i] = t
	}
	return doc.Block{Line: 1, Tags: out}
}

// Param is an @param tag. A "{Type} name" spec sets the type.
func Param(spec string) doc.Tag {
	return tagged("param", spec)
}

// Property is an @property tag with an optional description.
func Property(spec, description string) doc.Tag {
	t := tagged("property", spec)
	t.Description = description
	return t
}

// Tag is an arbitrary tag.
func Tag(name, spec string) doc.Tag {
	return tagged(name, spec)
}

// Params builds one @param tag per spec.
func Params(specs ...string) doc.Block {
	tags := make([]doc.Tag, len(specs))
	for i, s := range specs {
		tags[i] = Param(s)
	}
	return Block(tags...)
}

func tagged(tag, spec string) doc.Tag {
	t := doc.Tag{Tag: tag, Name: spec}
	if strings.HasPrefix(spec, "{") {
		if end := strings.IndexByte(spec, '}'); end > 0 {
			t.Type = spec[1:end]
			t.Name = strings.TrimSpace(spec[end+1:])
		}
	}
	return t
}

// Scalars builds a tree of scalar parameters.
func Scalars(names ...string) params.Tree {
	tree := make(params.Tree, len(names))
	for i, n := range names {
		tree[i] = params.Param{Name: n}
	}
	return tree
}

// Group builds a destructured parameter. A property written "...rest" is a
// rest element.
func Group(name string, props ...string) params.Param {
	p := params.Param{Kind: params.Destructured, Name: name}
	for _, s := range props {
		rest := strings.HasPrefix(s, "...")
		p.Properties = append(p.Properties, params.Property{Name: strings.TrimPrefix(s, "..."), Rest: rest})
	}
	return p
}

// Recorder is a diag.Reporter that keeps everything in emission order.
type Recorder struct {
	Diags []diag.Diagnostic
}

func (r *Recorder) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.Diags = append(r.Diags, diag.Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Notes: notes, Fixes: fixes,
	})
}

// Messages returns the recorded messages in order.
func (r *Recorder) Messages() []string {
	out := make([]string, len(r.Diags))
	for i, d := range r.Diags {
		out[i] = d.Message
	}
	return out
}

// Lines returns the recorded primary lines in order.
func (r *Recorder) Lines() []uint32 {
	out := make([]uint32, len(r.Diags))
	for i, d := range r.Diags {
		out[i] = d.Primary.Line
	}
	return out
}

// Reset drops recorded diagnostics.
func (r *Recorder) Reset() {
	r.Diags = r.Diags[:0]
}
