package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"doclint/internal/dialect"
	"doclint/internal/rules"
	"doclint/internal/tags"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Print the tag grammar of a dialect, or the built-in rules",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

func init() {
	tagsCmd.Flags().String("mode", "jsdoc", "dialect (jsdoc|closure|typescript|permissive)")
	tagsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tagsCmd.Flags().Bool("rules", false, "list the built-in rules instead of tags")
}

// tagRow is one line of the grammar table.
type tagRow struct {
	Tag                string `json:"tag"`
	Canonical          string `json:"canonical,omitempty"`
	NameContents       string `json:"name_contents"`
	MightHaveName      bool   `json:"might_have_name"`
	MustHaveName       bool   `json:"must_have_name"`
	MightHaveType      bool   `json:"might_have_type"`
	MustHaveType       bool   `json:"must_have_type"`
	MustHaveTypeOrName bool   `json:"must_have_type_or_name"`
}

func runTags(cmd *cobra.Command, _ []string) error {
	modeFlag, err := cmd.Flags().GetString("mode")
	if err != nil {
		return fmt.Errorf("failed to get mode flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	listRules, err := cmd.Flags().GetBool("rules")
	if err != nil {
		return fmt.Errorf("failed to get rules flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	out := cmd.OutOrStdout()
	if listRules {
		return renderRules(out, rules.Builtin(), format)
	}

	mode, err := dialect.ParseMode(modeFlag)
	if err != nil {
		return err
	}
	rows := grammarRows(tags.NewGrammar(mode))
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Mode string   `json:"mode"`
			Tags []tagRow `json:"tags"`
		}{Mode: mode.String(), Tags: rows})
	}
	renderGrammar(out, mode, rows)
	return nil
}

func grammarRows(g *tags.Grammar) []tagRow {
	names := tags.Names()
	rows := make([]tagRow, 0, len(names))
	for _, name := range names {
		row := tagRow{
			Tag:                name,
			NameContents:       g.Lookup(name).NameContents.String(),
			MightHaveName:      g.MightHaveName(name),
			MustHaveName:       g.MustHaveName(name),
			MightHaveType:      g.MightHaveType(name),
			MustHaveType:       g.MustHaveType(name),
			MustHaveTypeOrName: g.MustHaveTypeOrName(name),
		}
		if canon := tags.Canonical(name); canon != name {
			row.Canonical = canon
		}
		rows = append(rows, row)
	}
	return rows
}

func renderGrammar(out io.Writer, mode dialect.Mode, rows []tagRow) {
	header := color.New(color.Bold)
	fmt.Fprintf(out, "%s %s\n\n", header.Sprint("mode:"), mode)

	cols := []string{"tag", "name", "type", "type|name", "contents", "alias of"}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			"@" + r.Tag,
			slot(r.MightHaveName, r.MustHaveName),
			slot(r.MightHaveType, r.MustHaveType),
			slot(true, r.MustHaveTypeOrName),
			r.NameContents,
			r.Canonical,
		})
	}

	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(c)
	}
	for _, line := range table {
		for i, cell := range line {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	fmt.Fprintln(out, header.Sprint(joinRow(cols, widths)))
	for _, line := range table {
		fmt.Fprintln(out, joinRow(line, widths))
	}
}

// slot renders a name/type position as required, optional or absent.
func slot(might, must bool) string {
	switch {
	case must:
		return "required"
	case might:
		return "optional"
	default:
		return "-"
	}
}

func joinRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = runewidth.FillRight(cell, widths[i])
	}
	return strings.TrimRight(strings.Join(padded, "  "), " ")
}

func renderRules(out io.Writer, infos []rules.Info, format string) error {
	if format == "json" {
		type ruleJSON struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Fixable     bool   `json:"fixable"`
		}
		payload := make([]ruleJSON, 0, len(infos))
		for _, info := range infos {
			payload = append(payload, ruleJSON{Name: info.Name, Description: info.Description, Fixable: info.Fixable})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}
	name := color.New(color.FgCyan, color.Bold)
	for _, info := range infos {
		fixable := ""
		if info.Fixable {
			fixable = " (fixable)"
		}
		fmt.Fprintf(out, "%s%s\n    %s\n", name.Sprint(info.Name), fixable, info.Description)
	}
	return nil
}
