// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"foundry-cli/internal/assets"

	"github.com/spf13/cobra"
)

// newInitCommand creates the `foundry init` command.
func newInitCommand() *cobra.Command {
	var (
		target   string
		makefile bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Extract the shared documentation assets into a project",
		Long: `Extract the shared documentation assets into a project.

Writes the base mkdocs configuration, theme, documentation partials, and
reference-page generator into .provide/foundry/, and copies the theme's
css/js into docs/ for the site to serve. Safe to re-run: managed
directories are refreshed, docs/css/extra.css is left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := assets.Extract(target)
			if err != nil {
				return err
			}

			for _, file := range report.Files {
				cmd.Printf("  %s %s\n", SuccessStyle.Render("+"), file)
			}

			if makefile {
				written, err := assets.ExtractMakefile(target)
				if err != nil {
					return err
				}
				if written {
					cmd.Printf("  %s Makefile\n", SuccessStyle.Render("+"))
				} else {
					cmd.Printf("  %s Makefile exists, left untouched\n", SubtitleStyle.Render("="))
				}
			}

			cmd.Printf("extracted %d file(s)\n", len(report.Files))
			return nil
		},
	}

	initCmd.Flags().StringVarP(&target, "target", "t", ".", "project directory to extract into")
	initCmd.Flags().BoolVar(&makefile, "makefile", false, "also write the standard docs Makefile")
	return initCmd
}
