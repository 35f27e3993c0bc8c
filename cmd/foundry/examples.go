// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"foundry-cli/internal/examples"
	"foundry-cli/internal/issue"
	"foundry-cli/internal/runner"

	"github.com/spf13/cobra"
)

// newExamplesCommand creates the `foundry examples` command tree.
func newExamplesCommand() *cobra.Command {
	examplesCmd := &cobra.Command{
		Use:   "examples",
		Short: "Validate terraform example configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	examplesCmd.AddCommand(newExamplesValidateCommand())
	return examplesCmd
}

func newExamplesValidateCommand() *cobra.Command {
	var (
		root     string
		provider string
	)

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Run terraform fmt and validate over every example",
		Long: `Run terraform fmt and validate over every example.

Every *.tf file is checked with 'terraform fmt -check' and every example
directory with 'terraform validate'. Placeholder text such as TODO or
example.com is reported as a warning. The provider name comes from the
--provider flag, the PROVIDER_NAME environment variable, or pyproject.toml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if provider == "" {
				provider = cfg.Examples.ProviderName
			}

			report, err := examples.Validate(cmd.Context(), examples.Options{
				Root:                root,
				ProviderName:        provider,
				TerraformPath:       string(cfg.Tools.Terraform),
				PlaceholderPatterns: cfg.Examples.PlaceholderPatterns,
			})
			if err != nil {
				if errors.Is(err, runner.ErrToolNotFound) {
					printIssue(issue.TerraformNotFoundId)
				}
				return err
			}

			printExamplesReport(cmd, report)
			if !report.AllPassed() {
				return &ExitError{Code: 1, Err: fmt.Errorf("%d of %d example file(s) failed validation", report.Failed, report.Total)}
			}
			return nil
		},
	}

	validateCmd.Flags().StringVarP(&root, "root", "r", "examples", "examples directory")
	validateCmd.Flags().StringVarP(&provider, "provider", "p", "", "provider name (overrides PROVIDER_NAME and pyproject.toml)")
	return validateCmd
}

func printExamplesReport(cmd *cobra.Command, report *examples.Report) {
	if report.Provider != "" {
		cmd.Printf("%s provider: %s\n", TitleStyle.Render("examples"), report.Provider)
	} else {
		printIssue(issue.ProviderNameNotFoundId)
	}

	for _, file := range report.FormatFailures {
		cmd.Printf("  %s %s is not formatted (terraform fmt)\n", ErrorStyle.Render("✗"), file)
	}
	for _, failure := range report.ValidateFailures {
		cmd.Printf("  %s %s failed terraform validate\n", ErrorStyle.Render("✗"), failure.Dir)
		if verbose && failure.Detail != "" {
			cmd.Printf("    %s\n", VerboseStyle.Render(failure.Detail))
		}
	}
	for _, hit := range report.Placeholders {
		cmd.Printf("  %s %s:%d contains placeholder %q\n",
			WarningStyle.Render("!"), hit.File, hit.Line, hit.Pattern)
	}

	cmd.Printf("\n%d example file(s): %s passed, %s failed\n",
		report.Total,
		SuccessStyle.Render(fmt.Sprintf("%d", report.Passed)),
		ErrorStyle.Render(fmt.Sprintf("%d", report.Failed)))
}
