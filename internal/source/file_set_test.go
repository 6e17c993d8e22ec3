package source

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("src/app.js", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}
	id2 := fs.Add("src/app.js", []byte("hello universe"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists := fs.GetLatest("src/app.js")
	if !exists || latestID != id2 {
		t.Errorf("GetLatest = %d, %v; want %d, true", latestID, exists, id2)
	}
	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Errorf("first version content = %q", got)
	}
	if fs.Get(FileID(99)) != nil {
		t.Error("Get of unknown id should be nil")
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.js", []byte("/**\n * @param a\n */\nfunction f(a) {}"))
	f := fs.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "/**"},
		{2, " * @param a"},
		{4, "function f(a) {}"},
		{5, ""},
	}
	for _, tc := range tests {
		if got := f.GetLine(tc.line); got != tc.want {
			t.Errorf("GetLine(%d) = %q, want %q", tc.line, got, tc.want)
		}
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.js")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nb\r\n")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a\nb\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
	if f.GetLine(2) != "b" {
		t.Errorf("GetLine(2) = %q", f.GetLine(2))
	}
}

func TestEnsureRegistersMissingFilesOnce(t *testing.T) {
	fs := NewFileSet()
	missing := filepath.Join(t.TempDir(), "gone.js")

	var wg sync.WaitGroup
	ids := make([]FileID, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = fs.Ensure(missing)
		}(i)
	}
	wg.Wait()

	for _, id := range ids[1:] {
		if id != ids[0] {
			t.Fatalf("Ensure returned different ids: %v", ids)
		}
	}
	if fs.Len() != 1 {
		t.Errorf("Len = %d, want 1", fs.Len())
	}
	f := fs.Get(ids[0])
	if f.HasContent() {
		t.Error("missing file should be detached")
	}
	if f.GetLine(1) != "" {
		t.Error("detached file has no lines")
	}
}

func TestFormatPath(t *testing.T) {
	f := &File{Path: "/very/long/absolute/path/that/goes/on/and/on/module.js"}
	if got := f.FormatPath("basename", ""); got != "module.js" {
		t.Errorf("basename = %q", got)
	}
	if got := f.FormatPath("auto", ""); got != "module.js" {
		t.Errorf("auto on long absolute path = %q", got)
	}
	short := &File{Path: "src/a.js"}
	if got := short.FormatPath("auto", ""); got != "src/a.js" {
		t.Errorf("auto on short path = %q", got)
	}
	if got := f.FormatPath("relative", "/very/long/absolute"); got != "path/that/goes/on/and/on/module.js" {
		t.Errorf("relative = %q", got)
	}
}

func TestSpanAt(t *testing.T) {
	if sp := At(2, 7); sp.File != 2 || sp.Line != 7 || !sp.Known() {
		t.Errorf("At(2, 7) = %+v", sp)
	}
	if sp := At(0, -3); sp.Line != 0 || sp.Known() {
		t.Errorf("negative line should collapse to 0, got %+v", sp)
	}
	if !At(0, 9).Less(At(1, 1)) || At(1, 2).Less(At(1, 2)) {
		t.Error("Less ordering broken")
	}
}
