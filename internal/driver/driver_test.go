package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"doclint/internal/config"
	"doclint/internal/diag"
	"doclint/internal/doc"
	"doclint/internal/driver"
	"doclint/internal/fix"
	"doclint/internal/input"
	"doclint/internal/observ"
	"doclint/internal/params"
	"doclint/internal/trace"
)

func writeBundle(t *testing.T, path string, b *input.Bundle) {
	t.Helper()
	format, ok := input.FormatFor(path)
	if !ok {
		t.Fatalf("no format for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := input.Encode(f, format, b); err != nil {
		t.Fatal(err)
	}
}

// fixtureDir lays out two good bundles and a broken one.
func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeBundle(t, filepath.Join(dir, "a.json"), &input.Bundle{
		Source: "a.js",
		Decls: []input.Decl{
			{
				Name: "f",
				Doc: doc.Block{Line: 1, Tags: []doc.Tag{
					{Tag: "param", Name: "a", Line: 2},
					{Tag: "param", Name: "x", Line: 3},
				}},
				Params: params.Tree{{Name: "a"}, {Name: "b"}},
			},
			{
				Name: "g",
				Doc: doc.Block{Line: 6, Tags: []doc.Tag{
					{Tag: "param", Name: "c", Line: 7},
					{Tag: "param", Name: "c", Line: 8},
				}},
				Params: params.Tree{{Name: "c"}},
			},
		},
	})
	writeBundle(t, filepath.Join(dir, "b.yaml"), &input.Bundle{
		Source: "b.js",
		Decls: []input.Decl{{
			Doc: doc.Block{Line: 1, Tags: []doc.Tag{
				{Tag: "property", Name: "opts.x", Line: 2},
			}},
		}},
	})
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func messages(bag *diag.Bag) []string {
	var out []string
	for _, d := range bag.Items() {
		out = append(out, d.Code.ID()+" "+d.Message)
	}
	return out
}

func TestCheckDirOrderAndMessages(t *testing.T) {
	dir := fixtureDir(t)
	res, err := driver.CheckDir(context.Background(), dir, driver.Options{Config: config.Default(), Jobs: 4})
	if err != nil {
		t.Fatal(err)
	}
	got := messages(res.Bag)
	want := []string{
		`PRM1006 Expected @param names to be "a, b". Got "a, x".`,
		`PRM1001 Duplicate @param "c"`,
		`PRP2001 Missing JSDoc @property "opts.x" description.`,
	}
	if len(got) != 4 || !reflect.DeepEqual(got[:3], want) {
		t.Fatalf("messages = %q", got)
	}
	if !strings.HasPrefix(got[3], "IO4002 failed to load bundle:") {
		t.Errorf("load failure = %q", got[3])
	}
	if !res.HasErrors() {
		t.Error("expected errors")
	}
	if len(res.Files) != 3 || res.Files[2].Bundle != nil {
		t.Errorf("files = %+v", res.Files)
	}
	dup := res.Bag.Items()[1]
	if dup.Primary.Line != 8 || dup.Primary.File != res.Files[0].SourceID {
		t.Errorf("duplicate span = %v", dup.Primary)
	}
	if got := res.FileSet.Path(res.Files[1].SourceID); filepath.Base(got) != "b.js" {
		t.Errorf("source path = %q", got)
	}
}

func TestCheckDirStableAcrossJobs(t *testing.T) {
	dir := fixtureDir(t)
	var runs [][]string
	for _, jobs := range []int{1, 2, 8} {
		res, err := driver.CheckDir(context.Background(), dir, driver.Options{Config: config.Default(), Jobs: jobs})
		if err != nil {
			t.Fatal(err)
		}
		runs = append(runs, messages(res.Bag))
	}
	for i := 1; i < len(runs); i++ {
		if !reflect.DeepEqual(runs[0], runs[i]) {
			t.Errorf("run %d differs:\n%q\n%q", i, runs[0], runs[i])
		}
	}
}

func TestCheckSingleFile(t *testing.T) {
	dir := fixtureDir(t)
	res, err := driver.Check(context.Background(), filepath.Join(dir, "b.yaml"), driver.Options{Config: config.Default()})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 1 || res.HasErrors() {
		t.Errorf("messages = %q", messages(res.Bag))
	}
}

func TestSeverityOptions(t *testing.T) {
	dir := fixtureDir(t)
	path := filepath.Join(dir, "b.yaml")

	res, err := driver.Check(context.Background(), path, driver.Options{Config: config.Default(), WarningsAsErrors: true})
	if err != nil {
		t.Fatal(err)
	}
	if !res.HasErrors() {
		t.Error("warning should have been promoted")
	}

	res, err = driver.Check(context.Background(), path, driver.Options{Config: config.Default(), IgnoreWarnings: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 0 {
		t.Errorf("warnings not dropped: %q", messages(res.Bag))
	}
}

func TestDisabledRule(t *testing.T) {
	dir := fixtureDir(t)
	cfg := config.Default()
	cfg.Rules.RequirePropertyDescription.Severity = config.SeverityOff
	res, err := driver.Check(context.Background(), filepath.Join(dir, "b.yaml"), driver.Options{Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 0 {
		t.Errorf("messages = %q", messages(res.Bag))
	}
}

func TestMaxDiagnostics(t *testing.T) {
	dir := fixtureDir(t)
	res, err := driver.CheckDir(context.Background(), dir, driver.Options{Config: config.Default(), MaxDiagnostics: 2})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 2 || res.Bag.Dropped() != 2 {
		t.Errorf("len=%d dropped=%d", res.Bag.Len(), res.Bag.Dropped())
	}
}

func TestFixerOffersRemoveTag(t *testing.T) {
	dir := fixtureDir(t)
	cfg := config.Default()
	cfg.Rules.CheckParamNames.EnableFixer = true
	res, err := driver.Check(context.Background(), filepath.Join(dir, "a.json"), driver.Options{Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	dup := res.Bag.Items()[1]
	if len(dup.Fixes) != 1 {
		t.Fatalf("fixes = %+v", dup.Fixes)
	}
	edit := dup.Fixes[0].Edits[0]
	if edit.Bundle != res.Files[0].BundleID || edit.Decl != 1 || edit.Tag != 1 || edit.Expect != "c" {
		t.Errorf("edit = %+v", edit)
	}
}

func TestCaches(t *testing.T) {
	disk, err := driver.OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	caches := map[string]driver.Cache{
		"memory": driver.NewMemoryCache(4),
		"disk":   disk,
	}
	for name, cache := range caches {
		t.Run(name, func(t *testing.T) {
			dir := fixtureDir(t)
			cfg := config.Default()
			cfg.Rules.CheckParamNames.EnableFixer = true
			opts := driver.Options{Config: cfg, Cache: cache}

			first, err := driver.CheckDir(context.Background(), dir, opts)
			if err != nil {
				t.Fatal(err)
			}
			second, err := driver.CheckDir(context.Background(), dir, opts)
			if err != nil {
				t.Fatal(err)
			}
			if !second.Files[0].Cached || !second.Files[1].Cached {
				t.Error("second run should hit the cache")
			}
			if !reflect.DeepEqual(first.Bag.Items(), second.Bag.Items()) {
				t.Errorf("cached findings differ:\n%+v\n%+v", first.Bag.Items(), second.Bag.Items())
			}
			for _, d := range second.Bag.Items() {
				if d.Code != diag.ParamDuplicate {
					continue
				}
				if len(d.Notes) != 1 || d.Notes[0].Span.File != second.Files[0].SourceID || d.Notes[0].Span.Line != 7 {
					t.Errorf("cached duplicate lost its note: %+v", d.Notes)
				}
			}
		})
	}
}

func TestCacheKeyDependsOnConfig(t *testing.T) {
	var d driver.Digest
	d[0] = 1
	a := config.Default()
	b := config.Default()
	b.Rules.CheckParamNames.CheckRestProperty = true
	if driver.CacheKey(d, a) == driver.CacheKey(d, b) {
		t.Error("config change should change the key")
	}
	a.Path = "/elsewhere/doclint.toml"
	if driver.CacheKey(d, a) != driver.CacheKey(d, config.Default()) {
		t.Error("config location should not change the key")
	}
}

type recordingSink struct {
	ch chan driver.Event
}

func (s recordingSink) OnEvent(ev driver.Event) { s.ch <- ev }

func TestProgressEvents(t *testing.T) {
	dir := fixtureDir(t)
	sink := recordingSink{ch: make(chan driver.Event, 64)}
	if _, err := driver.CheckDir(context.Background(), dir, driver.Options{Config: config.Default(), Progress: sink}); err != nil {
		t.Fatal(err)
	}
	close(sink.ch)
	counts := map[driver.Status]int{}
	for ev := range sink.ch {
		counts[ev.Status]++
	}
	if counts[driver.StatusQueued] != 3 || counts[driver.StatusDone] != 2 || counts[driver.StatusError] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestTimingsAndTrace(t *testing.T) {
	dir := fixtureDir(t)
	ring := trace.NewRingTracer(256, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	res, err := driver.CheckDir(ctx, dir, driver.Options{
		Config:            config.Default(),
		Timer:             observ.NewTimer(),
		TimingsDiagnostic: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	last := res.Bag.Items()[res.Bag.Len()-1]
	if last.Code != diag.ObsTimings || len(last.Notes) != 1 {
		t.Errorf("last diagnostic = %+v", last)
	}
	if len(res.Timing.Phases) == 0 {
		t.Error("no timings recorded")
	}

	scopes := map[trace.Scope]int{}
	loadErrors := 0
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin {
			scopes[ev.Scope]++
		}
		if ev.Kind == trace.KindPoint && ev.Name == "load-error" {
			loadErrors++
		}
		if ev.Scope == trace.ScopeDecl && ev.Bundle == "" {
			t.Errorf("decl span without bundle: %+v", ev)
		}
	}
	if loadErrors != 1 {
		t.Errorf("load-error points = %d, want 1", loadErrors)
	}
	if scopes[trace.ScopeDriver] != 1 || scopes[trace.ScopeFile] != 2 || scopes[trace.ScopeDecl] != 3 {
		t.Errorf("spans = %v", scopes)
	}
}

func TestCheckMissingPath(t *testing.T) {
	if _, err := driver.Check(context.Background(), filepath.Join(t.TempDir(), "nope.json"), driver.Options{Config: config.Default()}); err == nil {
		t.Error("expected error")
	}
}

func TestFixConverges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dup.yaml")
	writeBundle(t, path, &input.Bundle{
		Source: "dup.js",
		Decls: []input.Decl{{
			Doc: doc.Block{Line: 1, Tags: []doc.Tag{
				{Tag: "param", Name: "a", Line: 2},
				{Tag: "param", Name: "a", Line: 3},
				{Tag: "param", Name: "a", Line: 4},
				{Tag: "param", Name: "b", Line: 5},
			}},
			Params: params.Tree{{Name: "a"}, {Name: "b"}},
		}},
	})

	applied, res, err := driver.Fix(context.Background(), dir, driver.Options{Config: config.Default()}, fix.ApplyOptions{Mode: fix.ApplyModeAll})
	if err != nil {
		t.Fatal(err)
	}
	if len(applied.Applied) != 2 {
		t.Errorf("applied %d fixes, want 2", len(applied.Applied))
	}
	if res.Bag.Len() != 0 {
		t.Errorf("left over: %q", messages(res.Bag))
	}
	b, err := input.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(b.Decls[0].Doc.Tags); n != 2 {
		t.Errorf("tags left = %d", n)
	}

	if _, _, err := driver.Fix(context.Background(), dir, driver.Options{Config: config.Default()}, fix.ApplyOptions{Mode: fix.ApplyModeAll}); !errors.Is(err, fix.ErrNoFixes) {
		t.Errorf("second fix err = %v", err)
	}
}

func TestFixOnceDryRun(t *testing.T) {
	dir := fixtureDir(t)
	path := filepath.Join(dir, "a.json")
	applied, res, err := driver.Fix(context.Background(), path, driver.Options{Config: config.Default()}, fix.ApplyOptions{Mode: fix.ApplyModeOnce, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(applied.Applied) != 1 || len(applied.FileChanges) != 1 {
		t.Fatalf("applied = %+v", applied)
	}
	if res.Bag.Len() != 2 {
		t.Errorf("dry run should return the pre-fix check, got %q", messages(res.Bag))
	}
	b, err := input.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Decls[1].Doc.Tags) != 2 {
		t.Error("dry run modified the bundle")
	}
}
