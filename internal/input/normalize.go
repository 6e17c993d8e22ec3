package input

import (
	"golang.org/x/text/unicode/norm"

	"doclint/internal/params"
)

// normalize rewrites every name-like string to NFC so that a name typed
// with combining marks compares equal to its precomposed spelling.
func normalize(b *Bundle) {
	b.Source = norm.NFC.String(b.Source)
	for i := range b.Decls {
		d := &b.Decls[i]
		d.Name = norm.NFC.String(d.Name)
		for j := range d.Doc.Tags {
			t := &d.Doc.Tags[j]
			t.Tag = norm.NFC.String(t.Tag)
			t.Name = norm.NFC.String(t.Name)
			t.Type = norm.NFC.String(t.Type)
		}
		for j := range d.Params {
			p := &d.Params[j]
			p.Name = norm.NFC.String(p.Name)
			p.Annotation = norm.NFC.String(p.Annotation)
			normalizeProps(p.Properties)
			normalizeProps(p.Defaults)
		}
	}
}

func normalizeProps(props []params.Property) {
	for i := range props {
		props[i].Name = norm.NFC.String(props[i].Name)
	}
}
