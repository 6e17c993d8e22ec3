package rules

import "testing"

func TestCompilePattern(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{DefaultCheckTypesPattern, "Object", true},
		{DefaultCheckTypesPattern, "object", true},
		{DefaultCheckTypesPattern, "Array", true},
		{DefaultCheckTypesPattern, "PlainObject", true},
		{DefaultCheckTypesPattern, "GenericArray", true},
		{DefaultCheckTypesPattern, "string", false},
		{DefaultCheckTypesPattern, "Objects", false},
		{DefaultCheckTypesPattern, "Array<string>", false},
		{"/^foo$/i", "FOO", true},
		{"/^foo$/gu", "FOO", false},
		{"^bar", "barn", true},
		{"//", "anything", true},
	}
	for _, tc := range tests {
		re, err := CompilePattern(tc.pattern)
		if err != nil {
			t.Fatalf("CompilePattern(%q): %v", tc.pattern, err)
		}
		if got := re.MatchString(tc.input); got != tc.want {
			t.Errorf("%q on %q = %v, want %v", tc.pattern, tc.input, got, tc.want)
		}
	}
	if _, err := CompilePattern("/(/"); err == nil {
		t.Error("expected error for unbalanced group")
	}
}
