package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"doclint/internal/diag"
	"doclint/internal/fix"
	"doclint/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, path      *color.Color
	gutter, note    *color.Color
	fix             *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.FgBlue),
		gutter: color.New(color.FgBlue, color.Bold),
		note:   color.New(color.FgCyan),
		fix:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.note, p.fix} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид, в порядке bag.Items():
//
//	error[PRM1001]: Duplicate @param "a"
//	  --> src/app.js:12 (check-param-names)
//	   |
//	12 |  * @param {string} a
//	   |
//	   = fix: Remove duplicate @param [PRM1001-2-12-0]
//
// The source preview needs the documented file to be readable.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	sev := p.severity(d.Severity)
	fmt.Fprintf(w, "%s%s %s\n",
		sev.Sprint(d.Severity.Label()),
		p.code.Sprintf("[%s]:", d.Code.ID()),
		p.code.Sprint(clip(oneLine(d.Message), opts.Width)))

	var preview []previewLine
	if opts.ShowPreview {
		preview = sourcePreview(fs, d.Primary, opts.Context)
	}
	gutterWidth := 1
	if len(preview) > 0 {
		gutterWidth = len(strconv.FormatUint(uint64(preview[len(preview)-1].num), 10))
	}
	pad := strings.Repeat(" ", gutterWidth)

	if loc := location(fs, d.Primary, opts.PathMode); loc != "" {
		rule := ""
		if r := d.Rule(); r != "" {
			rule = " (" + r + ")"
		}
		fmt.Fprintf(w, "%s%s %s%s\n", pad, p.gutter.Sprint("-->"), p.path.Sprint(loc), rule)
	}

	if len(preview) > 0 {
		fmt.Fprintf(w, "%s %s\n", pad, p.gutter.Sprint("|"))
		for _, l := range preview {
			num := strconv.FormatUint(uint64(l.num), 10)
			num = strings.Repeat(" ", gutterWidth-len(num)) + num
			text := clip(expandTabs(l.text), opts.Width)
			if l.primary {
				fmt.Fprintf(w, "%s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), sev.Sprint(text))
			} else {
				fmt.Fprintf(w, "%s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), text)
			}
		}
		fmt.Fprintf(w, "%s %s\n", pad, p.gutter.Sprint("|"))
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			msg := oneLine(n.Msg)
			if loc := location(fs, n.Span, opts.PathMode); loc != "" {
				msg = loc + ": " + msg
			}
			fmt.Fprintf(w, "%s %s %s\n", pad, p.gutter.Sprint("="), p.note.Sprint("note: "+clip(msg, opts.Width)))
		}
	}
	if opts.ShowFixes {
		for idx, f := range d.Fixes {
			fmt.Fprintf(w, "%s %s %s [%s]\n", pad, p.gutter.Sprint("="), p.fix.Sprint("fix: "+f.Title), fix.ID(d, idx))
		}
	}
}

// Summary prints the closing "N errors, M warnings" line.
func Summary(w io.Writer, bag *diag.Bag, useColor bool) {
	p := newPalette(useColor)
	var errs, warns int
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	parts := []string{
		p.err.Sprint(plural(errs, "error")),
		p.warn.Sprint(plural(warns, "warning")),
	}
	line := strings.Join(parts, ", ")
	if n := bag.Dropped(); n > 0 {
		line += fmt.Sprintf(" (%d more not shown)", n)
	}
	fmt.Fprintln(w, line)
}

func location(fs *source.FileSet, sp source.Span, mode PathMode) string {
	path := formatPath(fs, sp.File, mode)
	if path == "" {
		return ""
	}
	if !sp.Known() {
		return path
	}
	return fmt.Sprintf("%s:%d", path, sp.Line)
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

// clip truncates s to width display cells; wide runes count double.
func clip(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}
