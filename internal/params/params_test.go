package params

import (
	"errors"
	"testing"
)

func TestExpandUsesObjectDefaults(t *testing.T) {
	tree := Tree{
		{Name: "a"},
		{Name: "opts", Defaults: []Property{{Name: "timeout"}, {Name: "retries"}}},
	}
	if got := tree.Expand(false); got[1].IsDestructured() {
		t.Fatal("Expand(false) must leave scalars alone")
	}
	got := tree.Expand(true)
	if !got[1].IsDestructured() {
		t.Fatalf("Expand(true)[1] = %+v, want destructured", got[1])
	}
	if names := got[1].PropertyNames(); len(names) != 2 || names[0] != "timeout" || names[1] != "retries" {
		t.Errorf("property names = %v", names)
	}
	if got[0].IsDestructured() {
		t.Error("parameter without defaults must stay scalar")
	}
	if tree[1].IsDestructured() {
		t.Error("Expand modified its receiver")
	}
}

func TestDocNamePrefersAnnotation(t *testing.T) {
	if got := (Param{Name: "x", Annotation: "y"}).DocName(); got != "y" {
		t.Errorf("DocName = %q, want y", got)
	}
	if got := (Param{Name: "x"}).DocName(); got != "x" {
		t.Errorf("DocName = %q, want x", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		tree Tree
		ok   bool
	}{
		{"empty", nil, true},
		{"scalars", Tree{{Name: "a"}, {Kind: Scalar, Name: "b"}}, true},
		{"anonymous group", Tree{{Kind: Destructured, Properties: []Property{{Name: "x"}}}}, true},
		{"unnamed scalar", Tree{{}}, false},
		{"scalar with props", Tree{{Name: "a", Properties: []Property{{Name: "x"}}}}, false},
		{"empty prop", Tree{{Kind: Destructured, Properties: []Property{{}}}}, false},
		{"bad kind", Tree{{Kind: "tuple", Name: "a"}}, false},
	}
	for _, tc := range tests {
		err := tc.tree.Validate()
		if (err == nil) != tc.ok {
			t.Errorf("%s: Validate() = %v", tc.name, err)
		}
		var se *ShapeError
		if err != nil && !errors.As(err, &se) {
			t.Errorf("%s: error %T is not a *ShapeError", tc.name, err)
		}
	}
}
