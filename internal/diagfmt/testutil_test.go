package diagfmt

import (
	"testing"

	"doclint/internal/diag"
	"doclint/internal/source"
)

const jsSource = `/**
 * Sum two numbers.
 * @param {number} a
 * @param {number} a
 */
function sum(a, b) {}
`

// sample returns a file set with one documented source, one bundle file and
// a bag holding an error with a fix plus a warning.
func sample(t *testing.T) (*source.FileSet, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSetWithBase("/work")
	src := fs.AddVirtual("/work/src/sum.js", []byte(jsSource))
	bundle := fs.AddVirtual("/work/docs/sum.json", []byte("{}"))

	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.ParamDuplicate, source.At(src, 4), `Duplicate @param "a"`).
		WithNote(source.At(src, 3), "first documented here").
		WithFix(diag.Fix{
			Title:         "Remove duplicate @param",
			Applicability: diag.FixApplicabilityAlwaysSafe,
			IsPreferred:   true,
			Edits:         []diag.TagEdit{{Bundle: bundle, Decl: 0, Tag: 1, Expect: "param"}},
		}))
	bag.Add(diag.New(diag.SevWarning, diag.PropMissingDescription, source.At(src, 3), "Missing JSDoc @property \"a\" description."))
	return fs, bag
}
