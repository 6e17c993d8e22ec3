package tags

import (
	"testing"

	"doclint/internal/dialect"
)

func TestGrammarMatchesResolve(t *testing.T) {
	for _, mode := range dialect.Modes() {
		g := NewGrammar(mode)
		if g.Mode() != mode {
			t.Fatalf("Mode() = %v, want %v", g.Mode(), mode)
		}
		for _, name := range Names() {
			if g.Lookup(name) != Resolve(name, mode) {
				t.Errorf("Lookup(%q) under %v disagrees with Resolve", name, mode)
			}
		}
	}
}

func TestGrammarPositionQueries(t *testing.T) {
	g := NewGrammar(dialect.Typed)

	if !g.IsNamepathDefining("typedef") {
		t.Error("typedef should define a namepath")
	}
	if !g.IsNamepathReferencing("alias") {
		t.Error("alias should reference a namepath")
	}
	if g.MightHaveName("this") {
		t.Error("typescript this carries no name")
	}
	if !g.MightHaveName("unknown-tag") {
		t.Error("unknown tags might have a name")
	}
	if !g.MightHaveType("unknown-tag") {
		t.Error("unknown tags might have a type")
	}
	if g.MightHaveType("external") {
		t.Error("external disallows a type")
	}
	if !g.MightHaveType("type") || !g.MustHaveType("type") {
		t.Error("type requires a type")
	}
	if !g.MustHaveName("param") {
		t.Error("param requires a name")
	}
	if !g.MustHaveTypeOrName("alias") {
		t.Error("alias requires a type or a name")
	}
	if !g.MightHaveTypeOrName("see") {
		t.Error("see might have a name")
	}
}

func TestPreferredName(t *testing.T) {
	g := NewGrammar(dialect.Plain)
	tests := []struct {
		name  string
		tag   string
		prefs map[string]string
		want  string
	}{
		{"canonical stays", "param", nil, "param"},
		{"synonym maps to canonical", "arg", nil, "param"},
		{"explicit preference", "param", map[string]string{"param": "arg"}, "arg"},
		{"prefixed key", "param", map[string]string{"tag param": "argument"}, "argument"},
		{"already preferred", "arg", map[string]string{"param": "arg"}, "arg"},
		{"unknown passes through", "custom", nil, "custom"},
		{"empty preference ignored", "return", map[string]string{"return": ""}, "returns"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.PreferredName(tc.tag, tc.prefs); got != tc.want {
				t.Errorf("PreferredName(%q) = %q, want %q", tc.tag, got, tc.want)
			}
		})
	}
}
