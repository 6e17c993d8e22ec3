package dialect

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"", Plain},
		{"jsdoc", Plain},
		{"plain", Plain},
		{"Closure", Closure},
		{"typescript", Typed},
		{"typed", Typed},
		{" permissive ", Permissive},
	}
	for _, tc := range tests {
		got, err := ParseMode(tc.in)
		if err != nil {
			t.Fatalf("ParseMode(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseMode("flow"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestModeRoundTrip(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", m.String(), err)
		}
		if got != m {
			t.Errorf("round trip of %v gave %v", m, got)
		}
		if !m.Valid() {
			t.Errorf("%v should be valid", m)
		}
	}
	if Mode(42).Valid() {
		t.Error("Mode(42) should not be valid")
	}
}

func TestModePredicates(t *testing.T) {
	if !Plain.IsPlainOrPermissive() || !Permissive.IsPlainOrPermissive() || Closure.IsPlainOrPermissive() {
		t.Error("IsPlainOrPermissive mismatch")
	}
	if !Typed.IsTypedOrClosure() || !Closure.IsTypedOrClosure() || Plain.IsTypedOrClosure() {
		t.Error("IsTypedOrClosure mismatch")
	}
	if !Closure.IsClosureOrPermissive() || Typed.IsClosureOrPermissive() {
		t.Error("IsClosureOrPermissive mismatch")
	}
	if Closure.IsNotClosure() || !Typed.IsNotClosure() {
		t.Error("IsNotClosure mismatch")
	}
	if !Plain.IsPlainOrTyped() || Permissive.IsPlainOrTyped() {
		t.Error("IsPlainOrTyped mismatch")
	}
}
