package driver

import (
	"context"
	"errors"

	"doclint/internal/fix"
)

// maxFixPasses bounds the check/apply loop. A block with n copies of one
// name needs n-1 passes because the rule stops at the first duplicate.
const maxFixPasses = 32

// Fix checks path, applies the selected fixes and, in ApplyModeAll, keeps
// re-checking until nothing fixable is left. The returned Result is a fresh
// check of the fixed bundles (the last pre-fix check on a dry run).
func Fix(ctx context.Context, path string, opts Options, fopts fix.ApplyOptions) (*fix.ApplyResult, *Result, error) {
	opts.Config.Rules.CheckParamNames.EnableFixer = true
	if opts.Cache == nil {
		opts.Cache = NewMemoryCache(64)
	}

	total := &fix.ApplyResult{}
	var last *Result
	for n := 0; n < maxFixPasses; n++ {
		res, err := Check(ctx, path, opts)
		if err != nil {
			return total, last, err
		}
		last = res

		pass, err := fix.Apply(res.FileSet, res.Bundle, res.Bag.Items(), fopts)
		if pass != nil {
			total.Applied = append(total.Applied, pass.Applied...)
			total.FileChanges = append(total.FileChanges, pass.FileChanges...)
			total.Skipped = pass.Skipped
		}
		if errors.Is(err, fix.ErrNoFixes) {
			break
		}
		if err != nil {
			return total, last, err
		}
		if fopts.Mode != fix.ApplyModeAll || fopts.DryRun {
			break
		}
	}

	if len(total.Applied) == 0 {
		return total, last, fix.ErrNoFixes
	}
	if fopts.DryRun {
		return total, last, nil
	}
	res, err := Check(ctx, path, opts)
	if err != nil {
		return total, last, err
	}
	return total, res, nil
}
