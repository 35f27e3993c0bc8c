// SPDX-License-Identifier: MPL-2.0

package docscheck

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"mvdan.cc/sh/v3/syntax"
)

var shellLangs = map[string]struct{}{
	"sh":    {},
	"bash":  {},
	"shell": {},
}

// checkSnippets syntax-checks every fenced shell block under docs/.
func checkSnippets(project string, pr *ProjectReport) error {
	docsDir := filepath.Join(project, "docs")
	if info, err := os.Stat(docsDir); err != nil || !info.IsDir() {
		return nil
	}

	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))

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
			fcb, ok := n.(*ast.FencedCodeBlock)
			if !ok {
				return ast.WalkContinue, nil
			}
			if _, ok := shellLangs[string(fcb.Language(source))]; !ok {
				return ast.WalkContinue, nil
			}

			code, startLine := snippetSource(fcb, source)
			if strings.TrimSpace(code) == "" {
				return ast.WalkContinue, nil
			}

			if _, err := parser.Parse(strings.NewReader(code), filepath.ToSlash(rel)); err != nil {
				line := startLine
				var pe syntax.ParseError
				if errors.As(err, &pe) {
					line = startLine + int(pe.Pos.Line()) - 1
				}
				pr.Findings = append(pr.Findings, Finding{
					Check:    CheckSnippets,
					Severity: SeverityError,
					File:     filepath.ToSlash(rel),
					Line:     line,
					Message:  fmt.Sprintf("shell snippet does not parse: %v", err),
				})
			}
			return ast.WalkContinue, nil
		})
	})
}

// snippetSource reassembles a fenced block's body and returns it with the
// 1-based line of its first code line.
func snippetSource(fcb *ast.FencedCodeBlock, source []byte) (string, int) {
	lines := fcb.Lines()
	if lines.Len() == 0 {
		return "", 0
	}

	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}

	start := 1 + bytes.Count(source[:lines.At(0).Start], []byte{'\n'})
	return buf.String(), start
}
