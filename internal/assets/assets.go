// SPDX-License-Identifier: MPL-2.0

// Package assets embeds the shared documentation assets and extracts them
// into a project's .provide/foundry directory.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed all:embedded
var content embed.FS

// FoundryDir is where the shared assets live inside a project, relative to
// the project root.
const FoundryDir = ".provide/foundry"

// Report lists what an extraction wrote, relative to the target directory.
type Report struct {
	Files []string
}

// Extract materializes the shared assets into targetDir:
//
//	.provide/foundry/base-mkdocs.yml
//	.provide/foundry/gen_ref_pages.py
//	.provide/foundry/theme/
//	.provide/foundry/docs/_partials/
//	docs/css/ and docs/js/ (theme copies for the site to serve)
//
// Managed directories are replaced wholesale so stale files do not linger;
// docs/css/extra.css is created once and then left to the project.
func Extract(targetDir string) (*Report, error) {
	target, err := filepath.Abs(targetDir)
	if err != nil {
		return nil, fmt.Errorf("resolve target: %w", err)
	}

	foundry := filepath.Join(target, filepath.FromSlash(FoundryDir))
	report := &Report{}

	if err := extractFile("embedded/base-mkdocs.yml", filepath.Join(foundry, "base-mkdocs.yml"), target, report); err != nil {
		return nil, err
	}
	if err := extractFile("embedded/gen_ref_pages.py", filepath.Join(foundry, "gen_ref_pages.py"), target, report); err != nil {
		return nil, err
	}

	if err := extractTree("embedded/theme", filepath.Join(foundry, "theme"), target, report); err != nil {
		return nil, err
	}
	if err := extractTree("embedded/docs/_partials", filepath.Join(foundry, "docs", "_partials"), target, report); err != nil {
		return nil, err
	}

	// The site serves theme assets out of docs/, so projects get copies.
	// extra.css belongs to the project; carry it across the replacement.
	extraCSS := filepath.Join(target, "docs", "css", "extra.css")
	extra, extraErr := os.ReadFile(extraCSS)

	if err := extractTree("embedded/theme/css", filepath.Join(target, "docs", "css"), target, report); err != nil {
		return nil, err
	}
	if err := extractTree("embedded/theme/js", filepath.Join(target, "docs", "js"), target, report); err != nil {
		return nil, err
	}

	if extraErr != nil {
		extra = []byte("/* Project-specific style overrides. */\n")
		recordFile(report, target, extraCSS)
	}
	if err := os.WriteFile(extraCSS, extra, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", extraCSS, err)
	}

	sort.Strings(report.Files)
	return report, nil
}

// ExtractMakefile writes the standard docs Makefile unless one exists.
// It reports whether the file was written.
func ExtractMakefile(targetDir string) (bool, error) {
	path := filepath.Join(targetDir, "Makefile")
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	data, err := content.ReadFile("embedded/Makefile.tmpl")
	if err != nil {
		return false, fmt.Errorf("read embedded Makefile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write Makefile: %w", err)
	}
	return true, nil
}

// extractFile writes one embedded file, creating parent directories.
func extractFile(src, dst, target string, report *Report) error {
	data, err := content.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read embedded %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", dst, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	recordFile(report, target, dst)
	return nil
}

// extractTree replaces dst with the embedded directory rooted at src.
func extractTree(src, dst, target string, report *Report) error {
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("clear %s: %w", dst, err)
	}

	return fs.WalkDir(content, src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel := strings.TrimPrefix(path, src)
		out := filepath.Join(dst, filepath.FromSlash(rel))

		if d.IsDir() {
			return os.MkdirAll(out, 0o755)
		}

		data, err := content.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read embedded %s: %w", path, err)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		recordFile(report, target, out)
		return nil
	})
}

func recordFile(report *Report, target, path string) {
	rel, err := filepath.Rel(target, path)
	if err != nil {
		rel = path
	}
	report.Files = append(report.Files, filepath.ToSlash(rel))
}
