package rules

import (
	"testing"

	"doclint/internal/diag"
	"doclint/internal/dialect"
	"doclint/internal/params"
	"doclint/internal/tags"
	"doclint/internal/testkit"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	cpn, err := NewCheckParamNames(DefaultParamNamesOptions())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRegistry()
	if err := r.Add(cpn, diag.SevError); err != nil {
		t.Fatal(err)
	}
	if err := r.Add(NewRequirePropertyDescription(), diag.SevWarning); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRegistryAddRejectsDuplicates(t *testing.T) {
	r := newRegistry(t)
	if err := r.Add(NewRequirePropertyDescription(), diag.SevInfo); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}
	if e, ok := r.Lookup(diag.RuleRequirePropertyDescription); !ok || e.Severity != diag.SevWarning {
		t.Errorf("Lookup = %+v, %v", e, ok)
	}
}

func TestRegistryFilter(t *testing.T) {
	r := newRegistry(t)
	if got := r.Filter(nil); len(got) != 2 {
		t.Errorf("Filter(nil) = %d entries, want 2", len(got))
	}
	got := r.Filter([]string{diag.RuleCheckParamNames, "no-such-rule"})
	if len(got) != 1 || got[0].Rule.Name() != diag.RuleCheckParamNames {
		t.Errorf("Filter = %+v", got)
	}
}

func TestRegistryRunAppliesPerRuleSeverity(t *testing.T) {
	r := newRegistry(t)
	rec := &testkit.Recorder{}
	ctx := &Context{
		Grammar: tags.NewGrammar(dialect.Plain),
		Block: testkit.Block(
			testkit.Param("x"),
			testkit.Property("size", ""),
		),
		Params:   params.Tree{{Name: "a"}},
		Reporter: rec,
		Severity: diag.SevInfo,
	}
	r.Run(ctx)

	if len(rec.Diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %v", rec.Messages())
	}
	if rec.Diags[0].Code != diag.ParamNameMismatch || rec.Diags[0].Severity != diag.SevError {
		t.Errorf("first = %+v", rec.Diags[0])
	}
	if rec.Diags[1].Code != diag.PropMissingDescription || rec.Diags[1].Severity != diag.SevWarning {
		t.Errorf("second = %+v", rec.Diags[1])
	}
	if ctx.Severity != diag.SevInfo {
		t.Error("Run modified the caller's context")
	}
}

func TestBuiltinMatchesRuleNames(t *testing.T) {
	r := newRegistry(t)
	infos := Builtin()
	entries := r.All()
	if len(infos) != len(entries) {
		t.Fatalf("Builtin lists %d rules, registry has %d", len(infos), len(entries))
	}
	for i := range infos {
		if infos[i].Name != entries[i].Rule.Name() || infos[i].Description != entries[i].Rule.Description() {
			t.Errorf("Builtin[%d] = %+v, rule %q", i, infos[i], entries[i].Rule.Name())
		}
	}
}
