// SPDX-License-Identifier: MPL-2.0

// Package clean removes generated build and terraform artifacts from project
// trees. Cleanup is best-effort: individual removal failures are collected as
// warnings and never abort the run.
package clean

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// DefaultPatterns are the artifact names removed by default. A pattern
// matches against the entry's base name.
var DefaultPatterns = []string{
	".soup",
	"*.tfstate*",
	".terraform.lock.hcl",
	".terraform",
}

// Options configures a cleanup run.
type Options struct {
	// Roots are the directories to sweep. Empty defaults to ".".
	Roots []string
	// Patterns override DefaultPatterns when non-empty.
	Patterns []string
	// DryRun reports what would be removed without deleting anything.
	DryRun bool
}

// PatternCount tallies matches for one artifact pattern.
type PatternCount struct {
	Pattern string
	Found   int
	Removed int
}

// Report summarizes a cleanup run.
type Report struct {
	Counts       []PatternCount
	TotalFound   int
	TotalRemoved int
	// Warnings holds non-fatal removal failures.
	Warnings []string
	// SizeAfter is the cumulative on-disk size of the roots after cleanup.
	SizeAfter int64
}

// Run sweeps the roots, removing every entry whose base name matches one of
// the patterns. Matching directories are removed whole. Returns an error only
// for infrastructure failures (an unreadable root); removal failures become
// warnings on the report.
func Run(ctx context.Context, opts Options) (*Report, error) {
	roots := opts.Roots
	if len(roots) == 0 {
		roots = []string{"."}
	}
	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	report := &Report{}
	counts := make(map[string]*PatternCount, len(patterns))
	for _, p := range patterns {
		pc := &PatternCount{Pattern: p}
		counts[p] = pc
		report.Counts = append(report.Counts, PatternCount{Pattern: p})
	}

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("clean canceled: %w", err)
		}

		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat root %s: %w", root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("root is not a directory: %s", root)
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				// An already-removed subtree or a permission hole is a
				// warning, not a reason to abort the sweep.
				report.Warnings = append(report.Warnings, fmt.Sprintf("%s: %v", path, walkErr))
				return nil
			}

			pattern := match(patterns, d.Name())
			if pattern == "" {
				return nil
			}

			pc := counts[pattern]
			pc.Found++
			report.TotalFound++

			if !opts.DryRun {
				if err := os.RemoveAll(path); err != nil {
					report.Warnings = append(report.Warnings, fmt.Sprintf("remove %s: %v", path, err))
				} else {
					pc.Removed++
					report.TotalRemoved++
					log.Debug("removed artifact", "path", path, "pattern", pattern)
				}
			}

			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	for i := range report.Counts {
		report.Counts[i] = *counts[report.Counts[i].Pattern]
	}

	for _, root := range roots {
		size, err := dirSize(root)
		if err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("measure %s: %v", root, err))
			continue
		}
		report.SizeAfter += size
	}

	return report, nil
}

// match returns the first pattern the name matches, or "".
func match(patterns []string, name string) string {
	for _, p := range patterns {
		ok, err := filepath.Match(p, name)
		if err == nil && ok {
			return p
		}
	}
	return ""
}

func dirSize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(_ string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil // best-effort measurement
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	return total, err
}

// FormatSize renders a byte count the way the cleanup summary displays it.
func FormatSize(bytes int64) string {
	const (
		kib = 1 << 10
		mib = 1 << 20
		gib = 1 << 30
	)
	switch {
	case bytes >= gib:
		return fmt.Sprintf("%.1f GiB", float64(bytes)/float64(gib))
	case bytes >= mib:
		return fmt.Sprintf("%.1f MiB", float64(bytes)/float64(mib))
	case bytes >= kib:
		return fmt.Sprintf("%.1f KiB", float64(bytes)/float64(kib))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
