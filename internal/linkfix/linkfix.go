// SPDX-License-Identifier: MPL-2.0

// Package linkfix rewrites markdown links that target .md files into the
// directory-style URLs mkdocs serves, so cross-page links keep working on
// the published site.
package linkfix

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// mdLinkPattern matches an inline markdown link whose destination ends in
// .md, capturing the path and an optional #anchor.
var mdLinkPattern = regexp.MustCompile(`\]\(([^)\s#]+\.md)(#[^)]*)?\)`)

// Options configures a link-fixing run.
type Options struct {
	// Root is the directory scanned for markdown files. Defaults to "docs".
	Root string
	// DryRun reports the rewrites without touching any file.
	DryRun bool
	// Exclude lists path substrings that disqualify a file from rewriting.
	Exclude []string
}

// FileChange records the rewrites applied to one file.
type FileChange struct {
	// File is the markdown file, relative to Root.
	File string
	// Rewrites maps the original destination to its replacement.
	Rewrites map[string]string
	// Count is the number of link occurrences rewritten. A destination
	// linked twice in one file counts twice.
	Count int
}

// Report summarizes a link-fixing run.
type Report struct {
	// Scanned is the number of markdown files examined.
	Scanned int
	// Changes lists files that had at least one link rewritten, sorted.
	Changes []FileChange
	// DryRun mirrors Options.DryRun so callers can phrase their output.
	DryRun bool
}

// TotalRewrites counts individual link rewrites across all files.
func (r *Report) TotalRewrites() int {
	n := 0
	for _, c := range r.Changes {
		n += c.Count
	}
	return n
}

// Run scans Root for *.md files and rewrites their .md links to directory
// URLs. External links, anchors, and shared-asset paths are left alone.
func Run(opts Options) (*Report, error) {
	root := opts.Root
	if root == "" {
		root = "docs"
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	if info, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("link fix root: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("link fix root is not a directory: %s", root)
	}

	report := &Report{DryRun: opts.DryRun}

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			rel = p
		}
		for _, excl := range opts.Exclude {
			if strings.Contains(filepath.ToSlash(rel), excl) {
				return nil
			}
		}

		report.Scanned++

		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}

		rewritten, rewrites, count := rewriteLinks(string(data))
		if count == 0 {
			return nil
		}

		if !opts.DryRun {
			if err := os.WriteFile(p, []byte(rewritten), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", p, err)
			}
		}

		report.Changes = append(report.Changes, FileChange{File: rel, Rewrites: rewrites, Count: count})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Slice(report.Changes, func(i, j int) bool {
		return report.Changes[i].File < report.Changes[j].File
	})

	return report, nil
}

// rewriteLinks applies the .md to directory-URL transformation to one
// document and returns the rewritten text, the applied substitutions, and
// the number of occurrences rewritten.
func rewriteLinks(content string) (string, map[string]string, int) {
	rewrites := make(map[string]string)
	count := 0

	out := mdLinkPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := mdLinkPattern.FindStringSubmatch(match)
		target, anchor := groups[1], groups[2]

		replacement, ok := directoryURL(target)
		if !ok {
			return match
		}

		rewrites[target] = replacement
		count++
		return "](" + replacement + anchor + ")"
	})

	return out, rewrites, count
}

// directoryURL converts a .md link target to its mkdocs directory URL.
// The second return is false when the target must not be rewritten.
func directoryURL(target string) (string, bool) {
	// External and protocol-qualified links stay as authored.
	if strings.Contains(target, "://") || strings.HasPrefix(target, "mailto:") {
		return "", false
	}
	// Shared assets are served verbatim, not as rendered pages.
	if strings.Contains(target, ".provide/") {
		return "", false
	}

	trimmed := strings.TrimSuffix(target, ".md")
	if path.Base(target) == "index.md" {
		dir := path.Dir(target)
		if dir == "." {
			return "./", true
		}
		return dir + "/", true
	}
	return trimmed + "/", true
}
