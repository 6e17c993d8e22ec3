package diagfmt

import (
	"path/filepath"

	"fortio.org/safecast"

	"doclint/internal/source"
)

type previewLine struct {
	num     uint32
	text    string
	primary bool
}

// sourcePreview returns the primary line of span plus up to context lines on
// either side. Detached or unknown files yield nothing.
func sourcePreview(fs *source.FileSet, span source.Span, context int) []previewLine {
	if fs == nil || !span.Known() {
		return nil
	}
	file := fs.Get(span.File)
	if file == nil || !file.HasContent() {
		return nil
	}
	total, err := safecast.Conv[uint32](len(file.LineIdx) + 1)
	if err != nil || span.Line > total {
		return nil
	}
	ctx, err := safecast.Conv[uint32](max(context, 0))
	if err != nil {
		ctx = 0
	}
	from := uint32(1)
	if span.Line > ctx {
		from = span.Line - ctx
	}
	to := min(span.Line+ctx, total)

	out := make([]previewLine, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, previewLine{num: n, text: file.GetLine(n), primary: n == span.Line})
	}
	return out
}

// formatPath renders the path of id according to mode.
func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	if fs == nil {
		return ""
	}
	f := fs.Get(id)
	if f == nil {
		return ""
	}
	var path string
	switch mode {
	case PathModeAbsolute:
		path = f.FormatPath("absolute", "")
	case PathModeRelative:
		path = f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		path = f.FormatPath("basename", "")
	default:
		path = f.FormatPath("auto", "")
	}
	return filepath.ToSlash(path)
}
