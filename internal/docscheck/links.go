// SPDX-License-Identifier: MPL-2.0

package docscheck

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// checkLinks parses every markdown file under docs/ and verifies that
// relative link and image targets exist on disk.
func checkLinks(project string, pr *ProjectReport) error {
	docsDir := filepath.Join(project, "docs")
	if info, err := os.Stat(docsDir); err != nil || !info.IsDir() {
		// Structure check already reported the missing tree.
		return nil
	}

	return filepath.WalkDir(docsDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		rel, err := filepath.Rel(project, path)
		if err != nil {
			rel = path
		}

		doc := markdown.Parser().Parse(text.NewReader(source))
		return ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}

			var dest string
			switch node := n.(type) {
			case *ast.Link:
				dest = string(node.Destination)
			case *ast.Image:
				dest = string(node.Destination)
			default:
				return ast.WalkContinue, nil
			}

			if target, ok := localTarget(dest); ok && !targetExists(filepath.Dir(path), target) {
				pr.Findings = append(pr.Findings, Finding{
					Check:    CheckLinks,
					Severity: SeverityError,
					File:     filepath.ToSlash(rel),
					Line:     nodeLine(n, source),
					Message:  fmt.Sprintf("broken link target %q", dest),
				})
			}
			return ast.WalkContinue, nil
		})
	})
}

// localTarget strips anchors and queries from a destination and reports
// whether it points at a file we can verify locally.
func localTarget(dest string) (string, bool) {
	if dest == "" || strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:") {
		return "", false
	}
	// Site-absolute paths resolve against the deployed site, not the tree.
	if strings.HasPrefix(dest, "/") {
		return "", false
	}

	if i := strings.IndexAny(dest, "#?"); i >= 0 {
		dest = dest[:i]
	}
	if dest == "" {
		return "", false
	}
	return dest, true
}

// targetExists resolves target relative to dir, accepting both plain files
// and mkdocs directory URLs.
func targetExists(dir, target string) bool {
	path := filepath.Join(dir, filepath.FromSlash(target))
	if _, err := os.Stat(path); err == nil {
		return true
	}
	// A directory URL like guide/ is served from guide/index.md or guide.md.
	if strings.HasSuffix(target, "/") {
		if _, err := os.Stat(filepath.Join(path, "index.md")); err == nil {
			return true
		}
		if _, err := os.Stat(strings.TrimSuffix(path, string(filepath.Separator)) + ".md"); err == nil {
			return true
		}
	}
	return false
}

// nodeLine returns the 1-based source line of a node's first text segment,
// or 0 when the node carries no text.
func nodeLine(n ast.Node, source []byte) int {
	var seg *text.Segment
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || seg != nil {
			return ast.WalkContinue, nil
		}
		if t, ok := child.(*ast.Text); ok {
			s := t.Segment
			seg = &s
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if seg == nil {
		return 0
	}
	return 1 + bytes.Count(source[:seg.Start], []byte{'\n'})
}
