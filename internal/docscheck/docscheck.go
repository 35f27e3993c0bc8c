// SPDX-License-Identifier: MPL-2.0

// Package docscheck validates the documentation of every project in a
// workspace: mkdocs configuration, required pages, relative links, and
// shell snippets, with an optional strict mkdocs build.
package docscheck

import (
	"context"
	"fmt"
	"path/filepath"

	"foundry-cli/internal/runner"
)

// Run validates every resolved project and returns the combined report.
// Validation problems land on the report as findings; the returned error is
// reserved for infrastructure failures such as a missing mkdocs binary.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}

	projects, err := opts.resolveProjects()
	if err != nil {
		return nil, err
	}

	var mkdocs string
	if opts.Build {
		mkdocs, err = runner.Look("mkdocs", opts.MkdocsPath)
		if err != nil {
			return nil, err
		}
	}

	exempt := make(map[string]struct{}, len(opts.InheritExempt))
	for _, name := range opts.InheritExempt {
		exempt[name] = struct{}{}
	}

	report := &Report{}
	for _, project := range projects {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("docs validation canceled: %w", err)
		}

		pr, err := checkProject(ctx, project, opts, exempt, mkdocs)
		if err != nil {
			return nil, err
		}
		report.Projects = append(report.Projects, pr)
	}

	return report, nil
}

// checkProject runs every check against one project directory.
func checkProject(ctx context.Context, project string, opts Options, exempt map[string]struct{}, mkdocs string) (ProjectReport, error) {
	name := filepath.Base(project)
	pr := ProjectReport{Project: name}

	_, isExempt := exempt[name]
	hasConfig := checkConfig(project, isExempt, &pr)
	checkStructure(project, opts.RequiredPages, &pr)

	if err := checkLinks(project, &pr); err != nil {
		return pr, err
	}
	if err := checkSnippets(project, &pr); err != nil {
		return pr, err
	}

	if opts.Build {
		if !hasConfig {
			pr.Skipped = true
			pr.Findings = append(pr.Findings, Finding{
				Check:    CheckBuild,
				Severity: SeverityWarning,
				Message:  "no mkdocs.yml, skipping strict build",
			})
		} else if err := runStrictBuild(ctx, mkdocs, project, &pr); err != nil {
			return pr, err
		}
	}

	return pr, nil
}
