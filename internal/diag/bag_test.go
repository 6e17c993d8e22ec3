package diag

import (
	"testing"

	"doclint/internal/source"
)

func TestBagLimitAndSort(t *testing.T) {
	b := NewBag(3)
	r := BagReporter{Bag: b}
	r.Report(ParamMissingProperty, SevError, source.Span{File: 1, Line: 9}, "missing", nil, nil)
	r.Report(ParamUnknownProperty, SevError, source.Span{File: 1, Line: 2}, "extra", nil, nil)
	r.Report(ParamDuplicate, SevWarning, source.Span{File: 0, Line: 5}, "dup", nil, nil)
	r.Report(ParamDuplicate, SevWarning, source.Span{File: 0, Line: 6}, "dropped", nil, nil)

	if b.Len() != 3 || b.Dropped() != 1 {
		t.Fatalf("Len = %d, Dropped = %d", b.Len(), b.Dropped())
	}
	b.Sort()
	got := []string{b.Items()[0].Message, b.Items()[1].Message, b.Items()[2].Message}
	want := []string{"dup", "missing", "extra"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted order = %v, want %v", got, want)
		}
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Error("HasErrors/HasWarnings should both be true")
	}
}

func TestBagDedupAndFilter(t *testing.T) {
	b := NewBag(0)
	sp := source.Span{File: 0, Line: 3}
	b.Add(NewError(ParamMissingProperty, sp, `Missing @param "a.x"`))
	b.Add(NewError(ParamMissingProperty, sp, `Missing @param "a.y"`))
	b.Add(NewError(ParamMissingProperty, sp, `Missing @param "a.x"`))
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("Dedup kept %d, want 2 (same line, different names)", b.Len())
	}
	b.Filter(func(d Diagnostic) bool { return d.Message != `Missing @param "a.y"` })
	if b.Len() != 1 {
		t.Fatalf("Filter kept %d, want 1", b.Len())
	}
	b.Transform(func(d Diagnostic) Diagnostic { d.Severity = SevWarning; return d })
	if b.HasErrors() {
		t.Error("Transform did not apply")
	}
}

func TestDedupReporter(t *testing.T) {
	b := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: b})
	sp := source.Span{File: 0, Line: 1}
	ReportError(r, ParamDuplicate, sp, "dup").Emit()
	ReportError(r, ParamDuplicate, sp, "dup").Emit()
	ReportError(r, ParamDuplicate, source.Span{File: 0, Line: 2}, "dup").Emit()
	if b.Len() != 2 {
		t.Errorf("DedupReporter forwarded %d, want 2", b.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	b := NewBag(0)
	fix := Fix{
		Title: "Remove duplicate @param",
		Edits: []TagEdit{{Bundle: 4, Decl: 0, Tag: 2, Expect: "a"}},
	}
	rb := ReportError(BagReporter{Bag: b}, ParamDuplicate, source.Span{Line: 3}, "dup").
		WithNote(source.Span{Line: 2}, "first documented here").
		WithFix(fix)
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("Emit twice produced %d diagnostics", b.Len())
	}
	d := b.Items()[0]
	if len(d.Notes) != 1 || len(d.Fixes) != 1 {
		t.Fatalf("notes/fixes lost: %+v", d)
	}
	e := d.Fixes[0].Edits[0]
	if e.Bundle != 4 || e.Decl != 0 || e.Tag != 2 || e.Expect != "a" {
		t.Errorf("edit = %+v", e)
	}
	if d.Rule() != RuleCheckParamNames {
		t.Errorf("Rule() = %q", d.Rule())
	}
}
