package fix

import (
	"doclint/internal/diag"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.FixApplicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

// Preferred marks fix as preferred suggestion.
func Preferred() Option {
	return func(f *diag.Fix) {
		f.IsPreferred = true
	}
}

// WithID sets stable identifier for fix.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

func applyOptions(f diag.Fix, opts []Option) diag.Fix {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// RemoveTag creates a fix that drops one tag from a bundle declaration.
func RemoveTag(title string, edit diag.TagEdit, opts ...Option) diag.Fix {
	fix := diag.Fix{
		Title:         title,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits:         []diag.TagEdit{edit},
	}
	return applyOptions(fix, opts)
}

// RemoveTags drops several tags as one fix; all of them or none are applied.
func RemoveTags(title string, edits []diag.TagEdit, opts ...Option) diag.Fix {
	fix := diag.Fix{
		Title:         title,
		Applicability: diag.FixApplicabilitySafeWithHeuristics,
		Edits:         append([]diag.TagEdit(nil), edits...),
	}
	return applyOptions(fix, opts)
}
