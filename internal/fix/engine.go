package fix

// todo: интеграция с git:
// По умолчанию создавать .bak только для незатрекинных файлов.
// Флаг --staged-only (работать по git diff --name-only --staged).

import (
	"errors"
	"fmt"
	"sort"

	"doclint/internal/diag"
	"doclint/internal/input"
	"doclint/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun computes the edited bundles without writing them.
	DryRun bool
}

// BundleLookup returns the loaded bundle registered under id, or nil.
type BundleLookup func(source.FileID) *input.Bundle

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	PrimaryPath   string
	EditCount     int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on a bundle.
type FileChange struct {
	Path      string
	EditCount int
	// Updated is the bundle as written (or as it would be, on a dry run).
	Updated *input.Bundle
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

// ID is the identifier `doclint fix --id` selects the idx-th fix of d by:
// its own ID when set, otherwise code, file, line and index.
func ID(d diag.Diagnostic, idx int) string {
	if idx < 0 || idx >= len(d.Fixes) {
		return ""
	}
	if id := d.Fixes[idx].ID; id != "" {
		return id
	}
	return fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Line, idx)
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply collects fixes from diagnostics, selects a subset according to opts,
// applies them to the bundles and writes the bundles back.
func Apply(fs *source.FileSet, bundles BundleLookup, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied:     make([]AppliedFix, 0),
		Skipped:     make([]SkippedFix, 0),
		FileChanges: make([]FileChange, 0),
	}
	if fs == nil || bundles == nil {
		return result, fmt.Errorf("fix: FileSet and bundle lookup are required")
	}

	candidates, buildSkips := gatherCandidates(diagnostics)
	result.Skipped = append(result.Skipped, buildSkips...)

	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sortCandidates(candidates)

	selected, selectionSkips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)

	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, skippedDuringApply, changes, err := applyCandidates(fs, bundles, selected, opts.DryRun)
	result.Applied = append(result.Applied, applied...)
	result.Skipped = append(result.Skipped, skippedDuringApply...)
	result.FileChanges = append(result.FileChanges, changes...)

	if err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// gatherCandidates builds the candidate list. Fixes without edits and fixes
// whose ID was already seen are skipped. Fixes without an ID get one made of
// the diagnostic code, file, line and fix index.
func gatherCandidates(diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	cands := make([]candidate, 0)
	skips := make([]SkippedFix, 0)
	seen := make(map[string]bool)

	order := 0
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{
					ID:     f.ID,
					Title:  f.Title,
					Reason: "fix has no edits",
				})
				continue
			}
			f.ID = ID(d, idx)
			if seen[f.ID] {
				skips = append(skips, SkippedFix{
					ID:     f.ID,
					Title:  f.Title,
					Reason: "duplicate fix id",
				})
				continue
			}
			seen[f.ID] = true
			cands = append(cands, candidate{
				diag:  d,
				fix:   f,
				order: order,
			})
			order++
		}
	}
	return cands, skips
}

// sortCandidates orders candidates by file, line, insertion order, code,
// preference (preferred first), ID and title.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Line != dj.Primary.Line {
			return di.Primary.Line < dj.Primary.Line
		}
		if candidates[i].order != candidates[j].order {
			return candidates[i].order < candidates[j].order
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		if candidates[i].fix.IsPreferred != candidates[j].fix.IsPreferred {
			return candidates[i].fix.IsPreferred && !candidates[j].fix.IsPreferred
		}
		if candidates[i].fix.ID != candidates[j].fix.ID {
			return candidates[i].fix.ID < candidates[j].fix.ID
		}
		return candidates[i].fix.Title < candidates[j].fix.Title
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.fix.ID == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{
			ID:     opts.TargetID,
			Reason: "fix id not found",
		}}
	case ApplyModeAll:
		selected := make([]candidate, 0, len(candidates))
		skipped := make([]SkippedFix, 0)
		for _, cand := range candidates {
			if cand.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				selected = append(selected, cand)
				continue
			}
			skipped = append(skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: fmt.Sprintf("applicability is %s", cand.fix.Applicability.String()),
			})
		}
		return selected, skipped
	case ApplyModeOnce:
		var fallback *candidate
		for i := range candidates {
			cand := candidates[i]
			if cand.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				return []candidate{cand}, nil
			}
			if fallback == nil {
				fallback = &candidates[i]
			}
		}
		if fallback != nil {
			return []candidate{*fallback}, nil
		}
		return nil, nil
	default:
		return nil, nil
	}
}

type tagKey struct {
	bundle source.FileID
	decl   int
	tag    int
}

// applyCandidates stages every selected fix against the original bundles.
// Tag indices always refer to the bundle as loaded, so edits are validated
// against it and removals are applied per declaration from the highest
// index down.
func applyCandidates(fs *source.FileSet, bundles BundleLookup, selected []candidate, dryRun bool) ([]AppliedFix, []SkippedFix, []FileChange, error) {
	removed := make(map[tagKey]bool)
	fileEditCount := make(map[source.FileID]int)

	applied := make([]AppliedFix, 0, len(selected))
	skipped := make([]SkippedFix, 0)

	baseDir := fs.BaseDir()

	for _, cand := range selected {
		staged := make([]tagKey, 0, len(cand.fix.Edits))
		var skipReason string

		for _, edit := range cand.fix.Edits {
			key := tagKey{bundle: edit.Bundle, decl: edit.Decl, tag: edit.Tag}
			b := bundles(edit.Bundle)
			if b == nil {
				skipReason = "target bundle is not loaded"
				break
			}
			if removed[key] || containsKey(staged, key) {
				skipReason = fmt.Sprintf("conflicts with previously applied edits in %s", formatFilePath(fs, edit.Bundle))
				break
			}
			if edit.Decl < 0 || edit.Decl >= len(b.Decls) {
				skipReason = "edit declaration out of range"
				break
			}
			tags := b.Decls[edit.Decl].Doc.Tags
			if edit.Tag < 0 || edit.Tag >= len(tags) {
				skipReason = "edit tag out of range"
				break
			}
			if edit.Expect != "" && tags[edit.Tag].Name != edit.Expect {
				skipReason = "existing tag does not match expected name"
				break
			}
			staged = append(staged, key)
		}

		if skipReason != "" {
			skipped = append(skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: skipReason,
			})
			continue
		}

		for _, key := range staged {
			removed[key] = true
			fileEditCount[key.bundle]++
		}

		applied = append(applied, AppliedFix{
			ID:            cand.fix.ID,
			Title:         cand.fix.Title,
			Code:          cand.diag.Code,
			Message:       cand.diag.Message,
			Applicability: cand.fix.Applicability,
			PrimaryPath:   formatFilePath(fs, cand.diag.Primary.File),
			EditCount:     len(staged),
		})
	}

	if len(applied) == 0 {
		return applied, skipped, nil, nil
	}

	dirty := make([]source.FileID, 0, len(fileEditCount))
	for id := range fileEditCount {
		dirty = append(dirty, id)
	}
	sort.Slice(dirty, func(i, j int) bool { return dirty[i] < dirty[j] })

	fileChanges := make([]FileChange, 0, len(dirty))
	for _, id := range dirty {
		updated := removeTags(bundles(id), id, removed)
		if !dryRun {
			if err := input.Save(updated); err != nil {
				return applied, skipped, fileChanges, fmt.Errorf("write %s: %w", updated.Path, err)
			}
		}
		path := updated.Path
		if file := fs.Get(id); file != nil {
			path = file.FormatPath("relative", baseDir)
		}
		fileChanges = append(fileChanges, FileChange{
			Path:      path,
			EditCount: fileEditCount[id],
			Updated:   updated,
		})
	}

	sort.SliceStable(fileChanges, func(i, j int) bool {
		return fileChanges[i].Path < fileChanges[j].Path
	})

	return applied, skipped, fileChanges, nil
}

func removeTags(orig *input.Bundle, id source.FileID, removed map[tagKey]bool) *input.Bundle {
	out := orig.Clone()
	for d := range out.Decls {
		block := out.Decls[d].Doc
		for t := len(orig.Decls[d].Doc.Tags) - 1; t >= 0; t-- {
			if removed[tagKey{bundle: id, decl: d, tag: t}] {
				block = block.Without(t)
			}
		}
		out.Decls[d].Doc = block
	}
	return out
}

func containsKey(keys []tagKey, k tagKey) bool {
	for _, x := range keys {
		if x == k {
			return true
		}
	}
	return false
}

func formatFilePath(fs *source.FileSet, fileID source.FileID) string {
	if fs == nil {
		return ""
	}
	file := fs.Get(fileID)
	if file == nil {
		return ""
	}
	return file.FormatPath("auto", fs.BaseDir())
}
