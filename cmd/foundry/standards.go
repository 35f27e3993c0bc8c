// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"foundry-cli/internal/standards"

	"github.com/spf13/cobra"
)

// newStandardsCommand creates the `foundry standards` command tree.
func newStandardsCommand() *cobra.Command {
	standardsCmd := &cobra.Command{
		Use:   "standards",
		Short: "Check projects against the provide.io documentation standards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	standardsCmd.AddCommand(newStandardsCheckCommand())
	return standardsCmd
}

func newStandardsCheckCommand() *cobra.Command {
	var workspace string

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Report per-project standardization compliance",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := standards.Check(standards.Options{
				Workspace:     workspace,
				InheritExempt: cfg.Docs.InheritExempt,
			})
			if err != nil {
				return err
			}

			for _, result := range report.Results {
				if result.Compliant {
					cmd.Printf("%s %s\n", SuccessStyle.Render("✓"), result.Project)
					continue
				}
				cmd.Printf("%s %s\n", ErrorStyle.Render("✗"), result.Project)
				for _, issue := range result.Issues {
					cmd.Printf("    %s\n", issue)
				}
			}
			cmd.Printf("\nCompliant: %d/%d\n", report.Compliant, report.Total)

			if !report.AllCompliant() {
				return &ExitError{Code: 1, Err: fmt.Errorf("%d project(s) are not standardized", report.Total-report.Compliant)}
			}
			return nil
		},
	}

	checkCmd.Flags().StringVarP(&workspace, "workspace", "w", ".", "workspace directory containing the projects")
	return checkCmd
}
