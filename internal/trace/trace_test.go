package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopeDriver, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeDecl, false},
		{LevelDebug, ScopeDecl, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "Detail", "DEBUG"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) should fail")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	sp := Begin(tr, ScopeFile, "file:a.json", 0)
	sp.WithExtra("decls", "3").End("ok")
	Begin(tr, ScopeDecl, "decl:1", sp.ID()).End("")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines (decl filtered), got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "file:file:a.json") {
		t.Errorf("begin line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "(ok) {decls=3}") {
		t.Errorf("end line = %q", lines[1])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Begin(tr, ScopeDriver, "check", 0).End("done")

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var ev map[string]any
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("bad json %q: %v", line, err)
		}
		if ev["scope"] != "driver" || ev["name"] != "check" {
			t.Errorf("unexpected event %v", ev)
		}
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		tr.Emit(&Event{Kind: KindPoint, Scope: ScopeDecl, Name: name})
	}
	snap := tr.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("snapshot = %+v", snap)
	}
	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Errorf("dump = %q", buf.String())
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	a := NewRingTracer(8, LevelDebug)
	b := NewRingTracer(8, LevelDebug)
	m := NewMultiTracer(a, b, Nop)
	m.Emit(&Event{Kind: KindPoint, Scope: ScopeDriver, Name: "x"})
	if a.Len() != 1 || b.Len() != 1 {
		t.Fatal("event not delivered to every tracer")
	}
	if m.Level() != LevelDebug {
		t.Errorf("level = %s", m.Level())
	}
	if r, ok := m.Ring(); !ok || r != a {
		t.Error("Ring() should return the first ring tracer")
	}
}

func TestStartPropagatesParent(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	outer, ctx := Start(ctx, ScopeDriver, "check")
	inner, _ := Start(ctx, ScopeFile, "file:a.json")
	inner.End("")
	outer.End("")

	var begin Event
	for _, ev := range ring.Snapshot() {
		if ev.Kind == KindSpanBegin && ev.Name == "file:a.json" {
			begin = ev
		}
	}
	if begin.ParentID != outer.ID() {
		t.Errorf("parent = %d, want %d", begin.ParentID, outer.ID())
	}
}

func TestNewOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Error("off tracer should be disabled")
	}
}

func TestStartBundleTagsChildren(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	run, ctx := Start(ctx, ScopeDriver, "check")
	file, fctx := StartBundle(ctx, "docs/a.json")
	decl, _ := Start(fctx, ScopeDecl, "decl:0 sum")
	Point(fctx, ScopeFile, "cache-hit", "")
	decl.End("")
	file.End("")
	run.End("")

	for _, ev := range ring.Snapshot() {
		want := "docs/a.json"
		if ev.Name == "check" {
			want = ""
		}
		if ev.Bundle != want {
			t.Errorf("%s %s: bundle = %q, want %q", ev.Kind, ev.Name, ev.Bundle, want)
		}
		if ev.Kind == KindPoint && ev.ParentID != file.ID() {
			t.Errorf("point parent = %d, want %d", ev.ParentID, file.ID())
		}
		if ev.Kind == KindSpanEnd && ev.Name == "file" && ev.Dur <= 0 && ev.Time.IsZero() {
			t.Errorf("end event without timing: %+v", ev)
		}
	}
}

func TestPointRespectsLevel(t *testing.T) {
	ring := NewRingTracer(8, LevelPhase)
	ctx := WithTracer(context.Background(), ring)
	Point(ctx, ScopeFile, "cache-hit", "")
	Point(ctx, ScopeDriver, "config", "doclint.toml")
	if ring.Len() != 1 {
		t.Fatalf("len = %d, want 1", ring.Len())
	}
	Point(context.Background(), ScopeDriver, "ignored", "")
}

func TestHeartbeatProbe(t *testing.T) {
	ring := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(ring, time.Millisecond, func() string { return "2/5 bundles" })
	deadline := time.Now().Add(2 * time.Second)
	for ring.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()

	snap := ring.Snapshot()
	if len(snap) == 0 {
		t.Fatal("no heartbeat emitted")
	}
	if snap[0].Kind != KindHeartbeat || !strings.HasSuffix(snap[0].Detail, "2/5 bundles") {
		t.Errorf("heartbeat = %+v", snap[0])
	}
	if StartHeartbeat(Nop, time.Millisecond, nil) != nil {
		t.Error("heartbeat on a disabled tracer")
	}
}

func TestNewModes(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	m, ok := tr.(*MultiTracer)
	if !ok {
		t.Fatalf("both mode gave %T", tr)
	}
	Begin(m, ScopeDriver, "check", 0).End("")
	if r, _ := m.Ring(); r.Len() != 2 || buf.Len() == 0 {
		t.Errorf("ring=%d stream=%d", r.Len(), buf.Len())
	}

	if r, ok := RingOf(tr); !ok || r.Len() != 2 {
		t.Error("RingOf should reach the ring inside both mode")
	}
	if _, ok := RingOf(NewStreamTracer(&buf, LevelPhase, FormatText)); ok {
		t.Error("a stream tracer has no ring")
	}

	tr, err = New(Config{Level: LevelPhase, Mode: ModeRing})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*RingTracer); !ok {
		t.Errorf("ring mode gave %T", tr)
	}

	if got := formatFor(Config{OutputPath: "run.ndjson"}); got != FormatNDJSON {
		t.Errorf("formatFor(.ndjson) = %v", got)
	}
	if got := formatFor(Config{OutputPath: "run.log"}); got != FormatText {
		t.Errorf("formatFor(.log) = %v", got)
	}
}
