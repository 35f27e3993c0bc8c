// SPDX-License-Identifier: MPL-2.0

// Package standards checks that every documented project in a workspace
// follows the shared documentation conventions: a Makefile, extracted
// .provide/foundry assets, an mkdocs.yml inheriting the base configuration,
// a docs/ tree, and docs tasks in wrknv.toml when present.
package standards

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// InheritDirective is the line every non-exempt mkdocs.yml must contain.
const InheritDirective = "INHERIT: .provide/foundry/base-mkdocs.yml"

// requiredAssets are the entries `foundry init` extracts; all must exist
// under .provide/foundry for a project to be compliant.
var requiredAssets = []string{
	"base-mkdocs.yml",
	"theme",
	"docs/_partials",
	"gen_ref_pages.py",
}

// Options configures a standardization check.
type Options struct {
	// Workspace is the directory whose child projects are checked.
	Workspace string
	// InheritExempt lists project names allowed to omit the INHERIT
	// directive.
	InheritExempt []string
}

// ProjectResult is the compliance outcome for one project.
type ProjectResult struct {
	Project   string
	Compliant bool
	Issues    []string
}

// Report is the workspace-wide standardization report.
type Report struct {
	Results   []ProjectResult
	Compliant int
	Total     int
}

// AllCompliant reports whether every checked project passed.
func (r *Report) AllCompliant() bool { return r.Compliant == r.Total }

// wrknvFile models the subset of wrknv.toml we inspect.
type wrknvFile struct {
	Tasks map[string]any `toml:"tasks"`
}

// Check walks the workspace and evaluates every directory containing an
// mkdocs.yml.
func Check(opts Options) (*Report, error) {
	workspace := opts.Workspace
	if workspace == "" {
		workspace = "."
	}
	workspace, err := filepath.Abs(workspace)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace: %w", err)
	}

	entries, err := os.ReadDir(workspace)
	if err != nil {
		return nil, fmt.Errorf("read workspace: %w", err)
	}

	exempt := make(map[string]struct{}, len(opts.InheritExempt))
	for _, name := range opts.InheritExempt {
		exempt[name] = struct{}{}
	}

	report := &Report{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		projectPath := filepath.Join(workspace, entry.Name())
		if _, err := os.Stat(filepath.Join(projectPath, "mkdocs.yml")); err != nil {
			continue
		}

		result := checkProject(projectPath, exempt)
		report.Results = append(report.Results, result)
		report.Total++
		if result.Compliant {
			report.Compliant++
		}
	}

	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].Project < report.Results[j].Project
	})

	return report, nil
}

// checkProject evaluates one project against the standardization rules.
func checkProject(projectPath string, exempt map[string]struct{}) ProjectResult {
	name := filepath.Base(projectPath)
	var issues []string

	if _, err := os.Stat(filepath.Join(projectPath, "Makefile")); err != nil {
		issues = append(issues, "Missing Makefile")
	}

	foundryDir := filepath.Join(projectPath, ".provide", "foundry")
	if _, err := os.Stat(foundryDir); err != nil {
		issues = append(issues, "Missing .provide/foundry/ (run 'foundry init')")
	} else {
		for _, asset := range requiredAssets {
			if _, err := os.Stat(filepath.Join(foundryDir, filepath.FromSlash(asset))); err != nil {
				issues = append(issues, fmt.Sprintf("Missing .provide/foundry/%s", asset))
			}
		}
	}

	mkdocsPath := filepath.Join(projectPath, "mkdocs.yml")
	content, err := os.ReadFile(mkdocsPath)
	if err != nil {
		issues = append(issues, "Missing mkdocs.yml")
	} else if _, ok := exempt[name]; !ok {
		if !strings.Contains(string(content), InheritDirective) {
			issues = append(issues, "mkdocs.yml doesn't use INHERIT directive")
		}
	}

	if info, err := os.Stat(filepath.Join(projectPath, "docs")); err != nil || !info.IsDir() {
		issues = append(issues, "Missing docs/ directory")
	}

	// wrknv.toml is optional, but when present it must define docs tasks.
	wrknvPath := filepath.Join(projectPath, "wrknv.toml")
	if data, err := os.ReadFile(wrknvPath); err == nil {
		var wf wrknvFile
		if err := toml.Unmarshal(data, &wf); err != nil {
			issues = append(issues, fmt.Sprintf("wrknv.toml is not valid TOML: %v", err))
		} else if !hasDocsTasks(wf.Tasks) {
			issues = append(issues, "wrknv.toml missing docs tasks")
		}
	}

	return ProjectResult{
		Project:   name,
		Compliant: len(issues) == 0,
		Issues:    issues,
	}
}

func hasDocsTasks(tasks map[string]any) bool {
	for key := range tasks {
		if key == "docs" || strings.HasPrefix(key, "docs.") || strings.HasPrefix(key, "docs-") {
			return true
		}
	}
	return false
}
