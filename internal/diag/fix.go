package diag

import "doclint/internal/source"

// FixApplicability describes how much a fix can be trusted unattended.
type FixApplicability uint8

const (
	FixApplicabilityAlwaysSafe FixApplicability = iota
	FixApplicabilitySafeWithHeuristics
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	}
	return "unknown"
}

// TagEdit removes one documented tag from a declaration of a bundle.
//
// Fixes work on the tokenized data, not on the documented source text:
// Bundle is the bundle file, Decl the declaration index in it and Tag the
// index into that declaration's tag list. Expect guards against stale
// indices: the tag found there must carry this raw name.
type TagEdit struct {
	Bundle source.FileID
	Decl   int
	Tag    int
	Expect string
}

// Fix is an offered correction.
type Fix struct {
	ID            string
	Title         string
	Applicability FixApplicability
	IsPreferred   bool
	Edits         []TagEdit
}
