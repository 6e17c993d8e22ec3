package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"doclint/internal/driver"
	"doclint/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <bundle|directory>",
	Short: "Remove duplicate @param tags from declaration bundles",
	Long: `Run the checks, then apply the offered fixes by rewriting the bundle files.
The documented JavaScript sources are never modified.`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	addConfigFlags(fixCmd)
	fixCmd.Flags().Bool("all", false, "apply all safe fixes until none are left")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply the fix with this identifier (see check --suggest)")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}

	opts, err := driverOptions(cmd, target)
	if err != nil {
		return err
	}
	res, after, applyErr := driver.Fix(cmd.Context(), target, opts, fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		DryRun:   dryRun,
	})
	if err := printApplyResult(cmd.OutOrStdout(), res, applyErr, dryRun); err != nil {
		return err
	}
	if after != nil && !dryRun {
		if n := after.Bag.Len(); n > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%d diagnostic(s) remain; run `doclint check` for details.\n", n)
		}
	}
	return nil
}

func printApplyResult(out io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}

	verb := "Applied"
	if dryRun {
		verb = "Would apply"
	}
	if len(res.Applied) > 0 {
		fmt.Fprintf(out, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(out, "  %s [%s] at %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability.String())
		}
	}

	if len(res.FileChanges) > 0 {
		if dryRun {
			fmt.Fprintln(out, "Files that would change:")
		} else {
			fmt.Fprintln(out, "Updated files:")
		}
		for _, change := range res.FileChanges {
			fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(out, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(out, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(out, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}
	return nil
}
