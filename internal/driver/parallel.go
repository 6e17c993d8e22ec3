package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"doclint/internal/diag"
	"doclint/internal/input"
	"doclint/internal/rules"
	"doclint/internal/source"
	"doclint/internal/tags"
	"doclint/internal/trace"
)

// Check lints the bundle at path, or every bundle below it when path is a
// directory.
func Check(ctx context.Context, path string, opts Options) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return CheckDir(ctx, path, opts)
	}
	return checkFiles(ctx, filepath.Dir(path), []string{path}, opts)
}

// CheckDir lints every bundle under dir in parallel. Results keep the
// sorted discovery order no matter which worker finishes first.
func CheckDir(ctx context.Context, dir string, opts Options) (*Result, error) {
	files, err := input.Discover(dir)
	if err != nil {
		return nil, err
	}
	return checkFiles(ctx, dir, files, opts)
}

func checkFiles(ctx context.Context, base string, files []string, opts Options) (*Result, error) {
	runSpan, ctx := trace.Start(ctx, trace.ScopeDriver, "check")
	defer runSpan.WithExtra("files", strconv.Itoa(len(files))).End("")

	// одна грамматика и один набор правил на весь запуск
	grammar := tags.NewGrammar(opts.Config.Mode())
	reg, err := opts.Config.Registry()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	fileSet := source.NewFileSetWithBase(base)
	results := make([]FileResult, len(files))
	for i, path := range files {
		results[i] = FileResult{
			Path:     path,
			BundleID: fileSet.Ensure(path),
			Bag:      diag.NewBag(0),
		}
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	limit := max(1, min(jobs, len(files)))

	// Загрузка: индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range results {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r := &results[i]
			emit(opts.Progress, Event{File: r.Path, Stage: StageLoad, Status: StatusWorking})
			idx := opts.Timer.Begin("load")
			b, err := input.Load(r.Path)
			opts.Timer.End(idx, "")
			if err != nil {
				reportLoadError(r, err)
				trace.Point(gctx, trace.ScopeFile, "load-error", r.Path+": "+err.Error())
				emit(opts.Progress, Event{File: r.Path, Stage: StageLoad, Status: StatusError, Err: err})
				return nil
			}
			r.Bundle = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// source files get IDs in bundle order so output does not depend on scheduling
	for i := range results {
		if b := results[i].Bundle; b != nil {
			results[i].SourceID = fileSet.Ensure(sourcePath(b))
		}
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range results {
		if results[i].Bundle == nil {
			continue
		}
		i := i
		g.Go(func() error {
			return checkBundle(gctx, &results[i], grammar, reg, opts)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := diag.NewBag(opts.MaxDiagnostics)
	for i := range results {
		applySeverityOptions(results[i].Bag, opts)
		for _, d := range results[i].Bag.Items() {
			all.Add(d)
		}
	}

	res := &Result{FileSet: fileSet, Files: results, Bag: all}
	if opts.Timer != nil {
		res.Timing = opts.Timer.Report()
		if opts.TimingsDiagnostic {
			appendTimingDiagnostic(all, timingPayload{
				Path:    base,
				Files:   len(files),
				TotalMS: res.Timing.TotalMS,
				Phases:  res.Timing.Phases,
			})
		}
	}
	return res, nil
}

func checkBundle(ctx context.Context, r *FileResult, grammar *tags.Grammar, reg *rules.Registry, opts Options) error {
	sp, ctx := trace.StartBundle(ctx, r.Path)
	emit(opts.Progress, Event{File: r.Path, Stage: StageCheck, Status: StatusWorking})
	start := time.Now()
	detail := "checked"
	defer func() {
		sp.WithExtra("decls", strconv.Itoa(len(r.Bundle.Decls))).End(detail)
	}()

	var key Digest
	if opts.Cache != nil {
		key = CacheKey(r.Bundle.Digest, opts.Config)
		if cached, ok := opts.Cache.Get(key); ok {
			restore(cached, r.SourceID, r.BundleID, r.Bag)
			r.Cached = true
			detail = "cached"
			trace.Point(ctx, trace.ScopeFile, "cache-hit", fmt.Sprintf("%d diagnostics", len(cached)))
			emit(opts.Progress, Event{File: r.Path, Stage: StageCheck, Status: StatusDone, Elapsed: time.Since(start)})
			return nil
		}
	}

	idx := opts.Timer.Begin("check")
	for i, d := range r.Bundle.Decls {
		if err := ctx.Err(); err != nil {
			opts.Timer.End(idx, "")
			detail = "cancelled"
			return err
		}
		dsp, _ := trace.Start(ctx, trace.ScopeDecl, declName(d, i))
		reg.Run(&rules.Context{
			Grammar:  grammar,
			Prefs:    opts.Config.Settings.TagNamePreference,
			Block:    d.Doc,
			Params:   d.Params,
			Source:   r.SourceID,
			Bundle:   r.BundleID,
			Decl:     i,
			Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: r.Bag}),
		})
		dsp.End("")
	}
	opts.Timer.End(idx, "")

	if opts.Cache != nil {
		opts.Cache.Put(key, detach(r.Bag.Items()))
	}
	emit(opts.Progress, Event{File: r.Path, Stage: StageCheck, Status: StatusDone, Elapsed: time.Since(start)})
	return nil
}

func reportLoadError(r *FileResult, err error) {
	code := diag.IOLoadFileError
	var (
		de *input.DecodeError
		ie *input.InvalidError
	)
	switch {
	case errors.As(err, &de):
		code = diag.IODecodeError
	case errors.As(err, &ie):
		code = diag.IOInvalidBundle
	}
	r.Bag.Add(diag.NewError(code, source.Span{File: r.BundleID}, "failed to load bundle: "+err.Error()))
}

// sourcePath resolves the documented file relative to its bundle.
func sourcePath(b *input.Bundle) string {
	if b.Source == "" || filepath.IsAbs(b.Source) {
		return b.Source
	}
	return filepath.Join(filepath.Dir(b.Path), b.Source)
}

func declName(d input.Decl, i int) string {
	if d.Name != "" {
		return "decl:" + d.Name
	}
	return "decl:#" + strconv.Itoa(i)
}

func applySeverityOptions(bag *diag.Bag, opts Options) {
	if opts.WarningsAsErrors {
		bag.Transform(func(d diag.Diagnostic) diag.Diagnostic {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
			return d
		})
	}
	if opts.IgnoreWarnings {
		bag.Filter(func(d diag.Diagnostic) bool {
			return d.Severity >= diag.SevError
		})
	}
}
