// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"foundry-cli/internal/issue"
	"foundry-cli/internal/partials"

	"github.com/spf13/cobra"
)

// newPartialsCommand creates the `foundry partials` command tree.
func newPartialsCommand() *cobra.Command {
	partialsCmd := &cobra.Command{
		Use:   "partials",
		Short: "Work with shared documentation partials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	partialsCmd.AddCommand(newPartialsValidateCommand())
	return partialsCmd
}

func newPartialsValidateCommand() *cobra.Command {
	var projectRoot string

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that every --8<-- partial include resolves",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := partials.Validate(projectRoot)
			if err != nil {
				return err
			}

			if !report.Extracted {
				printIssue(issue.PartialsNotExtractedId)
			}

			for _, broken := range report.Broken {
				cmd.Printf("  %s %s\n", ErrorStyle.Render("✗"), broken.Error())
			}
			cmd.Printf("%d partial reference(s), %d broken\n",
				len(report.References), len(report.Broken))

			if !report.OK() {
				return &ExitError{Code: 1, Err: fmt.Errorf("%d broken partial reference(s)", len(report.Broken))}
			}
			return nil
		},
	}

	validateCmd.Flags().StringVarP(&projectRoot, "project", "p", ".", "project root to scan")
	return validateCmd
}
