package fix

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"doclint/internal/diag"
	"doclint/internal/doc"
	"doclint/internal/input"
	"doclint/internal/source"
)

type fixture struct {
	fs      *source.FileSet
	id      source.FileID
	bundle  *input.Bundle
	lookup  BundleLookup
	srcFile source.FileID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	b := &input.Bundle{
		Source: "a.js",
		Path:   filepath.Join(dir, "a.json"),
		Format: input.FormatJSON,
		Decls: []input.Decl{
			{Doc: doc.Block{Line: 1, Tags: []doc.Tag{
				{Tag: "param", Name: "a", Line: 2},
				{Tag: "param", Name: "a", Line: 3},
				{Tag: "param", Name: "a", Line: 4},
			}}},
			{Doc: doc.Block{Line: 6, Tags: []doc.Tag{
				{Tag: "param", Name: "b", Line: 7},
				{Tag: "param", Name: "b", Line: 8},
			}}},
		},
	}
	if err := input.Save(b); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSetWithBase(dir)
	id := fs.Ensure(b.Path)
	src := fs.AddVirtual(filepath.Join(dir, "a.js"), nil)
	return &fixture{
		fs:      fs,
		id:      id,
		bundle:  b,
		srcFile: src,
		lookup: func(fid source.FileID) *input.Bundle {
			if fid == id {
				return b
			}
			return nil
		},
	}
}

func (f *fixture) dup(line uint32, decl, tag int, name string) diag.Diagnostic {
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.ParamDuplicate,
		Message:  `Duplicate @param "` + name + `"`,
		Primary:  source.Span{File: f.srcFile, Line: line},
		Fixes: []diag.Fix{RemoveTag("Remove duplicate @param",
			diag.TagEdit{Bundle: f.id, Decl: decl, Tag: tag, Expect: name}, Preferred())},
	}
}

func tagNames(b *input.Bundle, decl int) []string {
	var out []string
	for _, t := range b.Decls[decl].Doc.Tags {
		out = append(out, t.Name)
	}
	return out
}

func TestApplyAllWritesBundle(t *testing.T) {
	f := newFixture(t)
	diags := []diag.Diagnostic{f.dup(3, 0, 1, "a"), f.dup(8, 1, 1, "b")}

	res, err := Apply(f.fs, f.lookup, diags, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Applied) != 2 || len(res.FileChanges) != 1 || res.FileChanges[0].EditCount != 2 {
		t.Fatalf("result = %+v", res)
	}

	reloaded, err := input.Load(f.bundle.Path)
	if err != nil {
		t.Fatal(err)
	}
	if got := tagNames(reloaded, 0); !reflect.DeepEqual(got, []string{"a", "a"}) {
		t.Errorf("decl 0 tags = %v", got)
	}
	if got := tagNames(reloaded, 1); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("decl 1 tags = %v", got)
	}
	if reloaded.Decls[0].Doc.Tags[1].Line != 4 {
		t.Errorf("wrong tag removed: %+v", reloaded.Decls[0].Doc.Tags)
	}
}

func TestApplyOnceTakesFirst(t *testing.T) {
	f := newFixture(t)
	diags := []diag.Diagnostic{f.dup(8, 1, 1, "b"), f.dup(3, 0, 1, "a")}

	res, err := Apply(f.fs, f.lookup, diags, ApplyOptions{Mode: ApplyModeOnce, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Applied) != 1 || res.Applied[0].Message != `Duplicate @param "a"` {
		t.Fatalf("applied = %+v", res.Applied)
	}
	if got := tagNames(res.FileChanges[0].Updated, 0); len(got) != 2 {
		t.Errorf("dry-run bundle tags = %v", got)
	}
	// dry run leaves the file alone
	reloaded, err := input.Load(f.bundle.Path)
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded.Decls[0].Doc.Tags) != 3 {
		t.Error("dry run wrote the bundle")
	}
}

func TestApplyByID(t *testing.T) {
	f := newFixture(t)
	d := f.dup(8, 1, 1, "b")
	d.Fixes[0].ID = "drop-b"
	diags := []diag.Diagnostic{f.dup(3, 0, 1, "a"), d}

	res, err := Apply(f.fs, f.lookup, diags, ApplyOptions{Mode: ApplyModeID, TargetID: "drop-b", DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Applied) != 1 || res.Applied[0].ID != "drop-b" {
		t.Fatalf("applied = %+v", res.Applied)
	}

	_, err = Apply(f.fs, f.lookup, diags, ApplyOptions{Mode: ApplyModeID, TargetID: "nope"})
	if !errors.Is(err, ErrNoFixes) {
		t.Errorf("err = %v, want ErrNoFixes", err)
	}
}

func TestApplySkipsConflictsAndStale(t *testing.T) {
	f := newFixture(t)
	stale := f.dup(4, 0, 2, "zzz")
	diags := []diag.Diagnostic{f.dup(3, 0, 1, "a"), f.dup(3, 0, 1, "a"), stale}
	diags[1].Fixes[0].ID = "again"

	res, err := Apply(f.fs, f.lookup, diags, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("applied = %+v", res.Applied)
	}
	reasons := map[string]bool{}
	for _, s := range res.Skipped {
		reasons[s.Reason] = true
	}
	if !reasons["existing tag does not match expected name"] {
		t.Errorf("skips = %+v", res.Skipped)
	}
	conflict := false
	for r := range reasons {
		if len(r) > 9 && r[:9] == "conflicts" {
			conflict = true
		}
	}
	if !conflict {
		t.Errorf("no conflict skip in %+v", res.Skipped)
	}
}

func TestGatherCandidatesSkipsDuplicateFixIDs(t *testing.T) {
	edit := diag.TagEdit{Bundle: 1, Decl: 0, Tag: 1}
	diagnostics := []diag.Diagnostic{{
		Code:    diag.ParamDuplicate,
		Message: "dup",
		Fixes: []diag.Fix{
			RemoveTag("remove", edit, WithID("fix-duplicate")),
			RemoveTag("remove again", edit, WithID("fix-duplicate")),
			{Title: "empty"},
		},
	}}

	candidates, skips := gatherCandidates(diagnostics)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if len(skips) != 2 || skips[0].Reason != "duplicate fix id" || skips[1].Reason != "fix has no edits" {
		t.Fatalf("skips = %+v", skips)
	}
}

func TestSynthesizedIDs(t *testing.T) {
	d := diag.Diagnostic{
		Code:    diag.ParamDuplicate,
		Primary: source.Span{File: 2, Line: 9},
		Fixes:   []diag.Fix{RemoveTag("remove", diag.TagEdit{Bundle: 1})},
	}
	cands, _ := gatherCandidates([]diag.Diagnostic{d})
	if cands[0].fix.ID != "PRM1001-2-9-0" {
		t.Errorf("id = %q", cands[0].fix.ID)
	}
}

func TestApplyAllSkipsHeuristicFixes(t *testing.T) {
	f := newFixture(t)
	d := f.dup(3, 0, 1, "a")
	d.Fixes[0] = RemoveTags("remove both", []diag.TagEdit{
		{Bundle: f.id, Decl: 0, Tag: 1, Expect: "a"},
		{Bundle: f.id, Decl: 0, Tag: 2, Expect: "a"},
	})
	_, err := Apply(f.fs, f.lookup, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll})
	if !errors.Is(err, ErrNoFixes) {
		t.Errorf("err = %v, want ErrNoFixes", err)
	}
	res, err := Apply(f.fs, f.lookup, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeOnce, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Applied[0].EditCount != 2 || len(res.FileChanges[0].Updated.Decls[0].Doc.Tags) != 1 {
		t.Errorf("result = %+v", res)
	}
}
