// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"foundry-cli/internal/clean"

	"github.com/spf13/cobra"
)

// newCleanCommand creates the `foundry clean` command.
func newCleanCommand() *cobra.Command {
	var (
		roots    []string
		patterns []string
		dryRun   bool
	)

	cleanCmd := &cobra.Command{
		Use:   "clean [dir...]",
		Short: "Remove build and terraform artifacts",
		Long: `Remove build and terraform artifacts.

Sweeps the given directories (default: the current one) and removes entries
matching the artifact patterns: ` + "`.soup`, `*.tfstate*`, `.terraform.lock.hcl`, `.terraform`" + `.
Cleanup is best-effort: files that cannot be removed are reported as
warnings and never fail the command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				roots = args
			}

			report, err := clean.Run(cmd.Context(), clean.Options{
				Roots:    roots,
				Patterns: patterns,
				DryRun:   dryRun,
			})
			if err != nil {
				return err
			}

			for _, count := range report.Counts {
				if count.Found == 0 && !verbose {
					continue
				}
				cmd.Printf("  %-22s %d found, %d removed\n", count.Pattern, count.Found, count.Removed)
			}
			for _, warning := range report.Warnings {
				cmd.Printf("  %s %s\n", WarningStyle.Render("!"), warning)
			}

			if dryRun {
				cmd.Printf("would remove %d artifact(s), %s on disk\n",
					report.TotalFound, clean.FormatSize(report.SizeAfter))
			} else {
				cmd.Printf("removed %d of %d artifact(s), %s on disk\n",
					report.TotalRemoved, report.TotalFound, clean.FormatSize(report.SizeAfter))
			}
			return nil
		},
	}

	cleanCmd.Flags().StringArrayVar(&roots, "root", nil, "directories to sweep (repeatable)")
	cleanCmd.Flags().StringArrayVar(&patterns, "pattern", nil, "artifact patterns to remove instead of the defaults")
	cleanCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report what would be removed without deleting")
	return cleanCmd
}
