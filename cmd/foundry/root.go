// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"foundry-cli/internal/config"
	"foundry-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg is the loaded configuration, defaulted when loading fails.
	cfg = config.DefaultConfig()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "foundry",
		Short: "Documentation and workspace tooling for provide.io projects",
		Long: TitleStyle.Render("foundry") + SubtitleStyle.Render(" - docs and workspace tooling for provide.io") + `

foundry keeps the provide.io ecosystem consistent: it validates mkdocs
documentation, checks terraform examples, cleans build artifacts, and
bootstraps workspaces from a manifest.

` + SubtitleStyle.Render("Examples:") + `
  foundry docs validate           Validate every documented project
  foundry examples validate       Validate terraform example configurations
  foundry standards check         Report per-project standardization
  foundry clean --dry-run         Preview artifact cleanup
  foundry workspace sync          Clone or update manifest repositories
  foundry init                    Extract shared docs assets into a project`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/foundry/config.cue)")

	rootCmd.AddCommand(newDocsCommand())
	rootCmd.AddCommand(newExamplesCommand())
	rootCmd.AddCommand(newPartialsCommand())
	rootCmd.AddCommand(newStandardsCommand())
	rootCmd.AddCommand(newCleanCommand())
	rootCmd.AddCommand(newWorkspaceCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newCompletionCommand())
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	if loaded != nil {
		cfg = loaded
	}

	if !verbose {
		verbose = cfg.UI.Verbose
	}
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// stylePath maps the configured color scheme to a glamour style name.
func stylePath() string {
	switch config.ColorScheme(cfg.UI.ColorScheme) {
	case config.ColorSchemeLight:
		return "light"
	default:
		return "dark"
	}
}

// printIssue renders an issue card to stderr, falling back to the plain
// markdown message when rendering fails.
func printIssue(id issue.Id) {
	card := issue.Get(id)
	if card == nil {
		return
	}
	rendered, err := card.Render(stylePath())
	if err != nil {
		fmt.Fprintln(os.Stderr, string(card.MarkdownMsg()))
		return
	}
	fmt.Fprintln(os.Stderr, rendered)
}
