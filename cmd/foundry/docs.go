// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"foundry-cli/internal/docscheck"
	"foundry-cli/internal/issue"
	"foundry-cli/internal/linkfix"
	"foundry-cli/internal/runner"

	"github.com/spf13/cobra"
)

// newDocsCommand creates the `foundry docs` command tree.
func newDocsCommand() *cobra.Command {
	docsCmd := &cobra.Command{
		Use:   "docs",
		Short: "Validate, build, and serve project documentation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	docsCmd.AddCommand(newDocsValidateCommand())
	docsCmd.AddCommand(newDocsBuildCommand())
	docsCmd.AddCommand(newDocsServeCommand())
	docsCmd.AddCommand(newDocsFixLinksCommand())
	return docsCmd
}

func newDocsValidateCommand() *cobra.Command {
	var (
		workspace string
		build     bool
	)

	validateCmd := &cobra.Command{
		Use:   "validate [project...]",
		Short: "Validate documentation across workspace projects",
		Long: `Validate documentation across workspace projects.

Checks mkdocs.yml configuration, required pages, relative links, and shell
snippets for every project (or just the named ones). Naming projects also
runs a strict mkdocs build for each; projects without a mkdocs.yml are
skipped with a warning. --build forces the strict builds in discovery mode.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := docscheck.Run(cmd.Context(), docscheck.Options{
				Workspace:     workspace,
				Projects:      args,
				RequiredPages: cfg.Docs.RequiredPages,
				InheritExempt: cfg.Docs.InheritExempt,
				Build:         build || len(args) > 0,
				MkdocsPath:    string(cfg.Tools.Mkdocs),
			})
			if err != nil {
				if errors.Is(err, runner.ErrToolNotFound) {
					printIssue(issue.MkdocsNotFoundId)
				}
				return err
			}

			printDocsReport(cmd, report)
			if !report.Passed() {
				return &ExitError{Code: 1, Err: fmt.Errorf("documentation validation failed with %d error(s)", report.TotalErrors())}
			}
			return nil
		},
	}

	validateCmd.Flags().StringVarP(&workspace, "workspace", "w", ".", "workspace directory containing the projects")
	validateCmd.Flags().BoolVar(&build, "build", false, "also run a strict mkdocs build per project")
	return validateCmd
}

func printDocsReport(cmd *cobra.Command, report *docscheck.Report) {
	failed := 0
	for _, pr := range report.Projects {
		if pr.Errors() == 0 && pr.Warnings() == 0 {
			cmd.Printf("%s %s\n", SuccessStyle.Render("✓"), pr.Project)
			continue
		}
		if pr.Errors() > 0 {
			failed++
			cmd.Printf("%s %s\n", ErrorStyle.Render("✗"), pr.Project)
		} else {
			cmd.Printf("%s %s\n", WarningStyle.Render("!"), pr.Project)
		}
		for _, f := range pr.Findings {
			style := ErrorStyle
			if f.Severity == docscheck.SeverityWarning {
				style = WarningStyle
			}
			cmd.Printf("  %s %s\n", style.Render(string(f.Severity)), f.String())
		}
	}
	cmd.Printf("\n%d project(s) checked, %d failed\n", len(report.Projects), failed)
}

func newDocsBuildCommand() *cobra.Command {
	var strict bool

	buildCmd := &cobra.Command{
		Use:   "build [dir]",
		Short: "Build the documentation site with mkdocs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mkdocs, err := runner.Look("mkdocs", string(cfg.Tools.Mkdocs))
			if err != nil {
				printIssue(issue.MkdocsNotFoundId)
				return err
			}

			buildArgs := []string{"build"}
			if strict {
				buildArgs = append(buildArgs, "--strict")
			}

			result := runner.Run(cmd.Context(), runner.Command{
				Name: mkdocs,
				Args: buildArgs,
				Dir:  optionalDir(args),
			})
			return resultToError(result)
		},
	}

	buildCmd.Flags().BoolVar(&strict, "strict", true, "treat mkdocs warnings as errors")
	return buildCmd
}

func newDocsServeCommand() *cobra.Command {
	var addr string

	serveCmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve the documentation site locally with live reload",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mkdocs, err := runner.Look("mkdocs", string(cfg.Tools.Mkdocs))
			if err != nil {
				printIssue(issue.MkdocsNotFoundId)
				return err
			}

			serveArgs := []string{"serve"}
			if addr != "" {
				serveArgs = append(serveArgs, "--dev-addr", addr)
			}

			// mkdocs serve is interactive; give it a real terminal.
			result := runner.RunInteractive(cmd.Context(), runner.Command{
				Name: mkdocs,
				Args: serveArgs,
				Dir:  optionalDir(args),
			})
			return resultToError(result)
		},
	}

	serveCmd.Flags().StringVarP(&addr, "addr", "a", "", "address to serve on (host:port)")
	return serveCmd
}

func newDocsFixLinksCommand() *cobra.Command {
	var (
		root    string
		dryRun  bool
		exclude []string
	)

	fixCmd := &cobra.Command{
		Use:   "fix-links",
		Short: "Rewrite .md links to mkdocs directory URLs",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := linkfix.Run(linkfix.Options{
				Root:    root,
				DryRun:  dryRun,
				Exclude: exclude,
			})
			if err != nil {
				return err
			}

			for _, change := range report.Changes {
				cmd.Printf("%s: %d link(s)\n", CmdStyle.Render(change.File), change.Count)
				if verbose {
					for from, to := range change.Rewrites {
						cmd.Printf("  %s\n", VerboseStyle.Render(from+" -> "+to))
					}
				}
			}

			verb := "rewrote"
			if report.DryRun {
				verb = "would rewrite"
			}
			cmd.Printf("%d file(s) scanned, %s %d link(s) in %d file(s)\n",
				report.Scanned, verb, report.TotalRewrites(), len(report.Changes))
			return nil
		},
	}

	fixCmd.Flags().StringVarP(&root, "root", "r", "docs", "directory to scan for markdown files")
	fixCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report rewrites without modifying files")
	fixCmd.Flags().StringArrayVar(&exclude, "exclude", nil, "path substrings to skip")
	return fixCmd
}

// optionalDir returns the single positional directory argument, if present.
func optionalDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// resultToError converts a runner result into the RunE error convention.
func resultToError(result *runner.Result) error {
	if result.Error != nil {
		return result.Error
	}
	if !result.Success() {
		return &ExitError{Code: result.ExitCode}
	}
	return nil
}
