package main

import (
	"fmt"
	"os"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"doclint/internal/diagfmt"
	"doclint/internal/driver"
	"doclint/internal/input"
	"doclint/internal/observ"
	"doclint/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <bundle|directory>",
	Short: "Check declaration bundles for parameter documentation issues",
	Long: `Check one declaration bundle (.json, .yaml, .yml, .msgpack) or every bundle
below a directory. Exits with status 1 when an error-severity diagnostic is found.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	addConfigFlags(checkCmd)
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short|sarif)")
	checkCmd.Flags().String("path-mode", "auto", "how file paths are shown (auto|absolute|relative|basename)")
	checkCmd.Flags().String("ui", "off", "progress UI for directories (auto|on|off)")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("preview", false, "show the documented source line of each diagnostic")
}

type checkFlags struct {
	format           string
	pathMode         diagfmt.PathMode
	ui               uiMode
	noWarnings       bool
	warningsAsErrors bool
	withNotes        bool
	suggest          bool
	preview          bool
	quiet            bool
	timings          bool
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var (
		f   checkFlags
		err error
	)
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch f.format {
	case "pretty", "json", "short", "sarif":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	pathMode, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return f, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	if f.pathMode, err = diagfmt.ParsePathMode(pathMode); err != nil {
		return f, err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}
	if f.noWarnings, err = cmd.Flags().GetBool("no-warnings"); err != nil {
		return f, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if f.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return f, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if f.noWarnings && f.warningsAsErrors {
		return f, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	if f.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.suggest, err = cmd.Flags().GetBool("suggest"); err != nil {
		return f, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if f.preview, err = cmd.Flags().GetBool("preview"); err != nil {
		return f, fmt.Errorf("failed to get preview flag: %w", err)
	}
	if f.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return f, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if f.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return f, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return f, nil
}

// runCheck executes the "check" command and exits with status 1 when any
// diagnostic is an error.
func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]
	flags, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, target)
	if err != nil {
		return err
	}
	opts.IgnoreWarnings = flags.noWarnings
	opts.WarningsAsErrors = flags.warningsAsErrors
	if flags.timings {
		opts.Timer = observ.NewTimer()
		opts.TimingsDiagnostic = flags.format == "json" || flags.format == "sarif"
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var result *driver.Result
	if st.IsDir() && flags.format == "pretty" && !flags.quiet && shouldUseTUI(flags.ui) {
		files, discoverErr := input.Discover(target)
		if discoverErr != nil {
			return discoverErr
		}
		result, err = runCheckWithUI(cmd.Context(), "checking "+target, files, target, opts)
	} else {
		result, err = driver.Check(cmd.Context(), target, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	useColor, err := colorEnabled(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	var formatTimer int
	if opts.Timer != nil {
		formatTimer = opts.Timer.Begin("format")
	}
	switch flags.format {
	case "pretty":
		diagfmt.Pretty(out, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:       useColor,
			Context:     1,
			PathMode:    flags.pathMode,
			Width:       terminalWidth(),
			ShowNotes:   flags.withNotes,
			ShowFixes:   flags.suggest,
			ShowPreview: flags.preview,
		})
		if !flags.quiet {
			if result.Bag.Len() > 0 {
				fmt.Fprintln(out)
			}
			diagfmt.Summary(out, result.Bag, useColor)
		}
	case "short":
		err = diagfmt.Short(out, result.Bag, result.FileSet, flags.withNotes)
	case "json":
		err = diagfmt.JSON(out, result.Bag, result.FileSet, diagfmt.JSONOpts{
			PathMode:        flags.pathMode,
			IncludeNotes:    flags.withNotes,
			IncludeFixes:    flags.suggest,
			IncludePreviews: flags.preview,
		})
	case "sarif":
		err = diagfmt.Sarif(out, result.Bag, result.FileSet, diagfmt.SarifRunMeta{
			ToolName:       "doclint",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
			PathMode:       flags.pathMode,
		})
	}
	if err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}
	if opts.Timer != nil {
		opts.Timer.End(formatTimer, "")
		if flags.format == "pretty" || flags.format == "short" {
			fmt.Fprint(cmd.ErrOrStderr(), opts.Timer.Summary())
		}
	}

	if result.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}

// terminalWidth caps pretty output at the terminal width; 0 when unknown.
func terminalWidth() uint8 {
	if !isTerminal(os.Stdout) {
		return 0
	}
	w, _, err := termSize(os.Stdout)
	if err != nil || w <= 0 {
		return 0
	}
	width, err := safecast.Conv[uint8](min(w, 255))
	if err != nil {
		return 0
	}
	return width
}
