// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"foundry-cli/internal/issue"
	"foundry-cli/internal/runner"
	"foundry-cli/internal/workspace"

	"github.com/spf13/cobra"
)

// newWorkspaceCommand creates the `foundry workspace` command tree.
func newWorkspaceCommand() *cobra.Command {
	workspaceCmd := &cobra.Command{
		Use:   "workspace",
		Short: "Manage a provide.io workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	workspaceCmd.AddCommand(newWorkspaceSyncCommand())
	return workspaceCmd
}

func newWorkspaceSyncCommand() *cobra.Command {
	var (
		root      string
		manifest  string
		skipHooks bool
	)

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Clone or update every repository in the workspace manifest",
		Long: `Clone or update every repository in the workspace manifest.

Repositories listed in workspace.toml are cloned when missing and fetched
when already checked out. Entries with a ref are pinned to that branch or
tag. After a sync the post_sync hooks run in the workspace root.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if manifest == "" {
				manifest = cfg.Workspace.Manifest
			}

			report, err := workspace.Sync(cmd.Context(), workspace.Options{
				Root:         root,
				ManifestPath: manifestOverride(manifest),
				GitPath:      string(cfg.Tools.Git),
				SkipHooks:    skipHooks,
			})
			if err != nil {
				switch {
				case errors.Is(err, runner.ErrToolNotFound):
					printIssue(issue.GitNotFoundId)
				case errors.Is(err, os.ErrNotExist):
					printIssue(issue.WorkspaceManifestNotFoundId)
				}
				return err
			}

			failed := 0
			for _, res := range report.Results {
				if res.OK {
					cmd.Printf("%s %s (%s)\n", SuccessStyle.Render("✓"), res.Name, res.Action)
					continue
				}
				failed++
				cmd.Printf("%s %s (%s): %s\n", ErrorStyle.Render("✗"), res.Name, res.Action, res.Detail)
			}
			if len(report.HookFailures) > 0 {
				printIssue(issue.HookExecutionFailedId)
				for _, failure := range report.HookFailures {
					cmd.Printf("  %s %s\n", WarningStyle.Render("!"), failure)
				}
			}
			cmd.Printf("\n%d repositor(ies) synced, %d failed\n", len(report.Results), failed)

			if !report.AllOK() || len(report.HookFailures) > 0 {
				return &ExitError{Code: 1, Err: fmt.Errorf(
					"%d repositor(ies) and %d hook(s) failed", failed, len(report.HookFailures))}
			}
			return nil
		},
	}

	syncCmd.Flags().StringVarP(&root, "root", "r", ".", "workspace root directory")
	syncCmd.Flags().StringVarP(&manifest, "manifest", "m", "", "manifest path (default: <root>/workspace.toml)")
	syncCmd.Flags().BoolVar(&skipHooks, "skip-hooks", false, "do not run post_sync hooks")
	return syncCmd
}

// manifestOverride maps the default manifest name to "" so workspace.Sync
// resolves it against the workspace root.
func manifestOverride(manifest string) string {
	if manifest == workspace.DefaultManifest {
		return ""
	}
	return manifest
}
