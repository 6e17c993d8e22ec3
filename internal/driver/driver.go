// Package driver runs the enabled rules over declaration bundles: one file
// or a whole directory checked in parallel, with optional result caching,
// timings, trace spans and progress events.
package driver

import (
	"doclint/internal/config"
	"doclint/internal/diag"
	"doclint/internal/input"
	"doclint/internal/observ"
	"doclint/internal/source"
)

// Options configures a check run.
type Options struct {
	Config         config.Config
	MaxDiagnostics int
	// IgnoreWarnings drops everything below error severity.
	IgnoreWarnings   bool
	WarningsAsErrors bool
	// Jobs bounds parallelism; <= 0 means GOMAXPROCS.
	Jobs int

	Progress ProgressSink
	Timer    *observ.Timer
	// TimingsDiagnostic appends the timer report as an OBS6001 info
	// diagnostic (for machine-readable output).
	TimingsDiagnostic bool
	Cache             Cache
}

// FileResult is the outcome for one bundle.
type FileResult struct {
	Path string
	// Bundle is nil when loading failed.
	Bundle   *input.Bundle
	BundleID source.FileID
	SourceID source.FileID
	Bag      *diag.Bag
	Cached   bool
}

// Result is the outcome of a run. Files follow the sorted bundle order and
// Bag holds their diagnostics merged in that order.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	Bag     *diag.Bag
	Timing  observ.Report
}

// HasErrors reports whether any error-severity diagnostic was produced.
func (r *Result) HasErrors() bool {
	return r != nil && r.Bag != nil && r.Bag.HasErrors()
}

// Bundle returns the loaded bundle registered under id.
func (r *Result) Bundle(id source.FileID) *input.Bundle {
	if r == nil {
		return nil
	}
	for i := range r.Files {
		if r.Files[i].BundleID == id {
			return r.Files[i].Bundle
		}
	}
	return nil
}
