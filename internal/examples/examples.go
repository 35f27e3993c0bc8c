// SPDX-License-Identifier: MPL-2.0

package examples

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"foundry-cli/internal/runner"
)

var skipDirs = map[string]struct{}{
	".git":         {},
	".terraform":   {},
	"node_modules": {},
}

// Options configures an example validation run.
type Options struct {
	// Root is the examples directory. Defaults to "examples".
	Root string
	// ProjectRoot is where pyproject.toml lives. Defaults to the parent
	// of Root.
	ProjectRoot string
	// ProviderName overrides provider discovery entirely.
	ProviderName string
	// TerraformPath pins the terraform binary (tools config).
	TerraformPath string
	// PlaceholderPatterns extends DefaultPlaceholderPatterns.
	PlaceholderPatterns []string
}

// Normalize fills defaults and verifies the examples root exists.
func (o *Options) Normalize() error {
	if o.Root == "" {
		o.Root = "examples"
	}
	abs, err := filepath.Abs(o.Root)
	if err != nil {
		return fmt.Errorf("resolve examples root: %w", err)
	}
	o.Root = abs

	if o.ProjectRoot == "" {
		o.ProjectRoot = filepath.Dir(o.Root)
	}

	info, err := os.Stat(o.Root)
	if err != nil {
		return fmt.Errorf("examples root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("examples root is not a directory: %s", o.Root)
	}
	return nil
}

// Report summarizes an example validation run.
type Report struct {
	Provider string
	Total    int
	Passed   int
	Failed   int
	// FormatFailures lists files that failed `terraform fmt -check`.
	FormatFailures []string
	// ValidateFailures lists directories that failed `terraform validate`,
	// with the tool's stderr attached.
	ValidateFailures []ValidateFailure
	// Placeholders are non-fatal template-text warnings.
	Placeholders []PlaceholderHit
}

// ValidateFailure records one failed `terraform validate` directory.
type ValidateFailure struct {
	Dir    string
	Detail string
}

// AllPassed reports whether every file survived both checks.
func (r *Report) AllPassed() bool {
	return r.Failed == 0
}

// Validate runs the example validation pipeline. Validation failures are
// collected onto the Report; the returned error is reserved for
// infrastructure problems such as a missing terraform binary.
func Validate(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}

	terraform, err := runner.Look("terraform", opts.TerraformPath)
	if err != nil {
		return nil, err
	}

	provider, err := ResolveProviderName(opts.ProviderName, opts.ProjectRoot)
	if err != nil {
		// Summary headers survive without a provider name; discovery
		// failure is reported by the caller, not fatal here.
		provider = ""
	}

	files, err := findTerraformFiles(opts.Root)
	if err != nil {
		return nil, err
	}

	patterns := append(append([]string(nil), DefaultPlaceholderPatterns...), opts.PlaceholderPatterns...)

	report := &Report{Provider: provider, Total: len(files)}
	failedFiles := make(map[string]bool)
	failedDirs := make(map[string]bool)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("example validation canceled: %w", err)
		}

		result := runner.Capture(ctx, runner.Command{
			Name: terraform,
			Args: []string{"fmt", "-check", file},
		})
		if result.Error != nil {
			return nil, fmt.Errorf("run terraform fmt: %w", result.Error)
		}
		if !result.Success() {
			report.FormatFailures = append(report.FormatFailures, file)
			failedFiles[file] = true
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read example %s: %w", file, err)
		}
		report.Placeholders = append(report.Placeholders, scanPlaceholders(file, string(content), patterns)...)
	}

	for _, dir := range exampleDirs(files) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("example validation canceled: %w", err)
		}

		result := runner.Capture(ctx, runner.Command{
			Name: terraform,
			Args: []string{"validate"},
			Dir:  dir,
		})
		if result.Error != nil {
			return nil, fmt.Errorf("run terraform validate: %w", result.Error)
		}
		if !result.Success() {
			report.ValidateFailures = append(report.ValidateFailures, ValidateFailure{
				Dir:    dir,
				Detail: strings.TrimSpace(result.ErrOutput),
			})
			failedDirs[dir] = true
		}
	}

	for _, file := range files {
		if failedFiles[file] || failedDirs[filepath.Dir(file)] {
			report.Failed++
		} else {
			report.Passed++
		}
	}

	return report, nil
}

// findTerraformFiles collects *.tf files under root, skipping VCS and cache
// directories, sorted for stable output.
func findTerraformFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if _, ok := skipDirs[d.Name()]; ok {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tf") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// exampleDirs returns the unique parent directories of the files, sorted.
func exampleDirs(files []string) []string {
	seen := make(map[string]struct{})
	var dirs []string
	for _, f := range files {
		dir := filepath.Dir(f)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}
