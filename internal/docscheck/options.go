// SPDX-License-Identifier: MPL-2.0

package docscheck

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Options configures a docs validation run.
type Options struct {
	// Workspace is the directory whose child projects are validated.
	// Defaults to the current directory.
	Workspace string
	// Projects restricts validation to the named projects. Empty means
	// every child directory containing a mkdocs.yml or docs/ tree.
	Projects []string
	// RequiredPages must exist under each project's docs/ directory.
	RequiredPages []string
	// InheritExempt lists projects allowed to omit the INHERIT directive.
	InheritExempt []string
	// Build additionally runs a strict mkdocs build per project.
	Build bool
	// MkdocsPath pins the mkdocs binary (tools config).
	MkdocsPath string
}

// Normalize fills defaults and resolves the workspace path.
func (o *Options) Normalize() error {
	if o.Workspace == "" {
		o.Workspace = "."
	}
	abs, err := filepath.Abs(o.Workspace)
	if err != nil {
		return fmt.Errorf("resolve workspace: %w", err)
	}
	o.Workspace = abs

	if len(o.RequiredPages) == 0 {
		o.RequiredPages = []string{"index.md"}
	}

	info, err := os.Stat(o.Workspace)
	if err != nil {
		return fmt.Errorf("workspace: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("workspace is not a directory: %s", o.Workspace)
	}
	return nil
}

// resolveProjects returns the absolute project paths to validate.
func (o *Options) resolveProjects() ([]string, error) {
	if len(o.Projects) > 0 {
		paths := make([]string, 0, len(o.Projects))
		for _, name := range o.Projects {
			path := filepath.Join(o.Workspace, name)
			if _, err := os.Stat(path); err != nil {
				return nil, fmt.Errorf("project %s: %w", name, err)
			}
			paths = append(paths, path)
		}
		return paths, nil
	}

	entries, err := os.ReadDir(o.Workspace)
	if err != nil {
		return nil, fmt.Errorf("read workspace: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(o.Workspace, entry.Name())
		if hasDocs(path) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// hasDocs reports whether a directory looks like a documented project.
func hasDocs(path string) bool {
	if _, err := os.Stat(filepath.Join(path, "mkdocs.yml")); err == nil {
		return true
	}
	info, err := os.Stat(filepath.Join(path, "docs"))
	return err == nil && info.IsDir()
}
