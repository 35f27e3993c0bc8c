// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"foundry-cli/internal/runner"
)

// Sync actions.
const (
	ActionClone  = "clone"
	ActionUpdate = "update"
)

// Options configures a workspace sync.
type Options struct {
	// Root is the workspace directory. Defaults to the current directory.
	Root string
	// ManifestPath overrides the default Root/workspace.toml location.
	ManifestPath string
	// GitPath pins the git binary (tools config).
	GitPath string
	// SkipHooks disables the post_sync hooks.
	SkipHooks bool
	// Stdout and Stderr receive hook output. Default to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Normalize fills defaults and resolves paths.
func (o *Options) Normalize() error {
	if o.Root == "" {
		o.Root = "."
	}
	abs, err := filepath.Abs(o.Root)
	if err != nil {
		return fmt.Errorf("resolve workspace root: %w", err)
	}
	o.Root = abs

	if o.ManifestPath == "" {
		o.ManifestPath = filepath.Join(o.Root, DefaultManifest)
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	return nil
}

type (
	// RepoResult is the sync outcome for one repository.
	RepoResult struct {
		Name   string
		Action string
		OK     bool
		// Detail carries the failing git command's stderr.
		Detail string
	}

	// Report summarizes a sync run.
	Report struct {
		Results []RepoResult
		// HookFailures are non-fatal post_sync hook errors.
		HookFailures []string
	}
)

// AllOK reports whether every repository synced cleanly.
func (r *Report) AllOK() bool {
	for _, res := range r.Results {
		if !res.OK {
			return false
		}
	}
	return true
}

// Sync clones or updates every manifest repository and then runs the
// post_sync hooks. Per-repository failures land on the report; the returned
// error covers manifest and git availability problems.
func Sync(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}

	manifest, err := LoadManifest(opts.ManifestPath)
	if err != nil {
		return nil, err
	}
	if err := ValidateHooks(manifest.Hooks.PostSync); err != nil {
		return nil, err
	}

	git, err := runner.Look("git", opts.GitPath)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, repo := range manifest.Repos {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("workspace sync canceled: %w", err)
		}
		report.Results = append(report.Results, syncRepo(ctx, git, opts.Root, repo))
	}

	if !opts.SkipHooks && len(manifest.Hooks.PostSync) > 0 {
		for _, err := range RunHooks(ctx, opts.Root, manifest.Hooks.PostSync, opts.Stdout, opts.Stderr) {
			report.HookFailures = append(report.HookFailures, err.Error())
		}
	}

	return report, nil
}

// syncRepo brings one repository checkout up to date.
func syncRepo(ctx context.Context, git, root string, repo Repo) RepoResult {
	dest := filepath.Join(root, repo.Name)

	if _, err := os.Stat(filepath.Join(dest, ".git")); err == nil {
		return updateRepo(ctx, git, dest, repo)
	}
	return cloneRepo(ctx, git, dest, repo)
}

func cloneRepo(ctx context.Context, git, dest string, repo Repo) RepoResult {
	res := RepoResult{Name: repo.Name, Action: ActionClone}

	args := []string{"clone"}
	if repo.Ref != "" {
		args = append(args, "--branch", repo.Ref)
	}
	args = append(args, repo.URL, dest)

	result := runner.Capture(ctx, runner.Command{Name: git, Args: args})
	res.OK = result.Error == nil && result.Success()
	if !res.OK {
		res.Detail = gitDetail(result)
	}
	return res
}

func updateRepo(ctx context.Context, git, dest string, repo Repo) RepoResult {
	res := RepoResult{Name: repo.Name, Action: ActionUpdate}

	steps := [][]string{{"-C", dest, "fetch", "--prune"}}
	if repo.Ref != "" {
		steps = append(steps, []string{"-C", dest, "checkout", repo.Ref})
	} else {
		steps = append(steps, []string{"-C", dest, "pull", "--ff-only"})
	}

	for _, args := range steps {
		result := runner.Capture(ctx, runner.Command{Name: git, Args: args})
		if result.Error != nil || !result.Success() {
			res.Detail = gitDetail(result)
			return res
		}
	}
	res.OK = true
	return res
}

func gitDetail(result *runner.Result) string {
	if result.Error != nil {
		return result.Error.Error()
	}
	if detail := strings.TrimSpace(result.ErrOutput); detail != "" {
		return detail
	}
	return fmt.Sprintf("git exited with status %d", result.ExitCode)
}
