package diagfmt

import (
	"io"

	json "github.com/goccy/go-json"

	"doclint/internal/diag"
	"doclint/internal/fix"
	"doclint/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File string `json:"file"`
	Line uint32 `json:"line,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// FixEditJSON is one tag removal.
type FixEditJSON struct {
	Bundle string `json:"bundle"`
	Decl   int    `json:"decl"`
	Tag    int    `json:"tag"`
	Expect string `json:"expect,omitempty"`
}

// FixJSON представляет предложение по исправлению для JSON
type FixJSON struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Applicability string        `json:"applicability"`
	IsPreferred   bool          `json:"is_preferred,omitempty"`
	Edits         []FixEditJSON `json:"edits,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Rule     string       `json:"rule,omitempty"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Preview  []string     `json:"preview,omitempty"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Dropped     int              `json:"dropped,omitempty"`
}

func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode) LocationJSON {
	return LocationJSON{File: formatPath(fs, span.File, pathMode), Line: span.Line}
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}
	diagnostics := make([]DiagnosticJSON, 0, maxItems)

	for i := 0; i < maxItems; i++ {
		d := items[i]

		diagJSON := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Rule:     d.Rule(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts.PathMode),
		}

		if opts.IncludePreviews {
			for _, l := range sourcePreview(fs, d.Primary, 0) {
				diagJSON.Preview = append(diagJSON.Preview, l.text)
			}
		}

		includeNotes := opts.IncludeNotes || d.Code == diag.ObsTimings
		if includeNotes && len(d.Notes) > 0 {
			diagJSON.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				diagJSON.Notes[j] = NoteJSON{
					Message:  note.Msg,
					Location: makeLocation(note.Span, fs, opts.PathMode),
				}
			}
		}

		if opts.IncludeFixes && len(d.Fixes) > 0 {
			diagJSON.Fixes = make([]FixJSON, 0, len(d.Fixes))
			for idx, f := range d.Fixes {
				fixJSON := FixJSON{
					ID:            fix.ID(d, idx),
					Title:         f.Title,
					Applicability: f.Applicability.String(),
					IsPreferred:   f.IsPreferred,
				}
				for _, e := range f.Edits {
					fixJSON.Edits = append(fixJSON.Edits, FixEditJSON{
						Bundle: formatPath(fs, e.Bundle, opts.PathMode),
						Decl:   e.Decl,
						Tag:    e.Tag,
						Expect: e.Expect,
					})
				}
				diagJSON.Fixes = append(diagJSON.Fixes, fixJSON)
			}
		}

		diagnostics = append(diagnostics, diagJSON)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
		Dropped:     bag.Dropped() + len(items) - maxItems,
	}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	output := BuildDiagnosticsOutput(bag, fs, opts)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// Short writes diag.FormatShort output followed by a newline.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatShort(bag.Items(), fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
