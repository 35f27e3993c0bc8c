// SPDX-License-Identifier: MPL-2.0

// Package partials verifies that documentation partial includes (the
// pymdownx snippets `--8<-- "path"` syntax) reference files that exist.
package partials

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// partialPattern matches a snippets include and captures the referenced path.
var partialPattern = regexp.MustCompile(`--8<--\s+"([^"]+)"`)

// ExtractedPartialsDir is where `foundry init` places the shared partials,
// relative to the project root.
const ExtractedPartialsDir = ".provide/foundry/docs/_partials"

// Reference is one partial include found in the documentation.
type Reference struct {
	// File is the markdown file containing the include, relative to root.
	File string
	// Ref is the referenced partial path, relative to the project root.
	Ref string
	// Line is the 1-based line number of the include.
	Line int
}

// Broken is a reference whose target does not exist.
type Broken struct {
	Reference
}

// Error renders the finding in file:line: message form.
func (b Broken) Error() string {
	return fmt.Sprintf("%s:%d: referenced partial %q does not exist", b.File, b.Line, b.Ref)
}

// Report summarizes a partials validation run.
type Report struct {
	// References are all includes found, broken or not.
	References []Reference
	// Broken are the includes whose targets are missing.
	Broken []Broken
	// Extracted is false when the shared partials directory has not been
	// extracted into the project yet (a warning, not a failure).
	Extracted bool
}

// OK reports whether every reference resolved.
func (r *Report) OK() bool { return len(r.Broken) == 0 }

// Validate scans docs/ under projectRoot for partial includes and checks that
// each referenced path exists relative to projectRoot.
func Validate(projectRoot string) (*Report, error) {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}

	report := &Report{}

	if info, err := os.Stat(filepath.Join(root, ExtractedPartialsDir)); err == nil && info.IsDir() {
		report.Extracted = true
	}

	docsDir := filepath.Join(root, "docs")
	if _, err := os.Stat(docsDir); err != nil {
		if os.IsNotExist(err) {
			// No docs, no references.
			return report, nil
		}
		return nil, fmt.Errorf("stat docs dir: %w", err)
	}

	err = filepath.WalkDir(docsDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}

		for i, line := range strings.Split(string(data), "\n") {
			for _, m := range partialPattern.FindAllStringSubmatch(line, -1) {
				ref := Reference{File: rel, Ref: m[1], Line: i + 1}
				report.References = append(report.References, ref)

				if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(m[1]))); err != nil {
					report.Broken = append(report.Broken, Broken{Reference: ref})
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk docs: %w", err)
	}

	return report, nil
}
