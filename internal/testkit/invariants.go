package testkit

import (
	"fmt"
	"strings"

	"doclint/internal/doc"
	"doclint/internal/params"
)

// CheckBlockInvariants runs a minimal set of invariants on a tag block:
// 1) every tag has a tag name without the leading @
// 2) tag lines are positive and never decrease
// 3) tags start at or after the block line
func CheckBlockInvariants(b doc.Block) error {
	prev := 0
	for i, t := range b.Tags {
		if t.Tag == "" {
			return fmt.Errorf("tag %d: empty tag name", i)
		}
		if strings.HasPrefix(t.Tag, "@") {
			return fmt.Errorf("tag %d: name %q keeps its @", i, t.Tag)
		}
		if t.Line <= 0 {
			return fmt.Errorf("tag %d (%s): line %d is not 1-based", i, t.Tag, t.Line)
		}
		if t.Line < prev {
			return fmt.Errorf("tag %d (%s): line %d precedes previous tag line %d", i, t.Tag, t.Line, prev)
		}
		if b.Line > 0 && t.Line < b.Line {
			return fmt.Errorf("tag %d (%s): line %d precedes block line %d", i, t.Tag, t.Line, b.Line)
		}
		prev = t.Line
	}
	return nil
}

// CheckTreeInvariants wraps params.Tree.Validate for symmetry in tests.
func CheckTreeInvariants(t params.Tree) error {
	return t.Validate()
}
