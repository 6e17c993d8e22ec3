package driver

import (
	"sync"

	"doclint/internal/diag"
	"doclint/internal/source"
)

// Cache stores rule findings by CacheKey.
type Cache interface {
	Get(key Digest) ([]CachedDiag, bool)
	Put(key Digest, diags []CachedDiag)
}

// CachedDiag is a diagnostic detached from run-specific file IDs. Rules
// report against the documented source and fix the bundle, so both are
// rebound on restore.
type CachedDiag struct {
	Severity uint8
	Code     uint16
	Line     uint32
	Message  string
	Notes    []CachedNote
	Fixes    []CachedFix
}

// CachedNote mirrors diag.Note; notes always point into the documented source.
type CachedNote struct {
	Line    uint32
	Message string
}

// CachedFix mirrors diag.Fix without bundle IDs.
type CachedFix struct {
	ID            string
	Title         string
	Applicability uint8
	IsPreferred   bool
	Edits         []CachedEdit
}

// CachedEdit mirrors diag.TagEdit.
type CachedEdit struct {
	Decl   int
	Tag    int
	Expect string
}

func detach(items []diag.Diagnostic) []CachedDiag {
	out := make([]CachedDiag, 0, len(items))
	for _, d := range items {
		cd := CachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Line:     d.Primary.Line,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Line: n.Span.Line, Message: n.Msg})
		}
		for _, f := range d.Fixes {
			cf := CachedFix{
				ID:            f.ID,
				Title:         f.Title,
				Applicability: uint8(f.Applicability),
				IsPreferred:   f.IsPreferred,
			}
			for _, e := range f.Edits {
				cf.Edits = append(cf.Edits, CachedEdit{Decl: e.Decl, Tag: e.Tag, Expect: e.Expect})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		out = append(out, cd)
	}
	return out
}

func restore(cached []CachedDiag, src, bundle source.FileID, bag *diag.Bag) {
	for _, cd := range cached {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: src, Line: cd.Line},
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: source.Span{File: src, Line: n.Line}, Msg: n.Message})
		}
		for _, cf := range cd.Fixes {
			f := diag.Fix{
				ID:            cf.ID,
				Title:         cf.Title,
				Applicability: diag.FixApplicability(cf.Applicability),
				IsPreferred:   cf.IsPreferred,
			}
			for _, e := range cf.Edits {
				f.Edits = append(f.Edits, diag.TagEdit{Bundle: bundle, Decl: e.Decl, Tag: e.Tag, Expect: e.Expect})
			}
			d.Fixes = append(d.Fixes, f)
		}
		bag.Add(d)
	}
}

// MemoryCache is a per-process Cache; fix loops re-check bundles that did
// not change between iterations.
type MemoryCache struct {
	mu    sync.RWMutex
	byKey map[Digest][]CachedDiag
}

// NewMemoryCache creates a MemoryCache with the given capacity hint.
func NewMemoryCache(capHint int) *MemoryCache {
	return &MemoryCache{byKey: make(map[Digest][]CachedDiag, capHint)}
}

func (c *MemoryCache) Get(key Digest) ([]CachedDiag, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.byKey[key]
	return d, ok
}

func (c *MemoryCache) Put(key Digest, diags []CachedDiag) {
	c.mu.Lock()
	c.byKey[key] = diags
	c.mu.Unlock()
}

// Len returns the number of cached bundles.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byKey)
}
