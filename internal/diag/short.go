package diag

import (
	"fmt"
	"path/filepath"
	"strings"

	"doclint/internal/source"
)

// FormatShort renders diagnostics one per line, in the given order:
//
//	error PRM1001 src/app.js:12 Duplicate @param "a"
//
// Paths are relative to the FileSet base directory; an unknown line
// prints as 0. Notes follow their diagnostic when includeNotes is set.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s:%d %s", d.Severity.Label(), d.Code.ID(), spanPath(fs, d.Primary), d.Primary.Line, sanitizeMessage(d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "\nnote %s %s:%d %s", d.Code.ID(), spanPath(fs, n.Span), n.Span.Line, sanitizeMessage(n.Msg))
		}
	}
	return b.String()
}

func spanPath(fs *source.FileSet, sp source.Span) string {
	if fs == nil {
		return "?"
	}
	f := fs.Get(sp.File)
	if f == nil {
		return "?"
	}
	return normalizePath(f.FormatPath("relative", fs.BaseDir()))
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
