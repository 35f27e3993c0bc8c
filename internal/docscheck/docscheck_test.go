// SPDX-License-Identifier: MPL-2.0

package docscheck

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"foundry-cli/internal/testutil"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	testutil.WriteFile(t, path, content)
}

// scaffoldProject creates a minimal valid docs project under workspace.
func scaffoldProject(t *testing.T, workspace, name string) string {
	t.Helper()
	project := filepath.Join(workspace, name)
	write(t, filepath.Join(project, "mkdocs.yml"),
		"INHERIT: .provide/foundry/base-mkdocs.yml\n")
	write(t, filepath.Join(project, ".provide", "foundry", "base-mkdocs.yml"),
		"site_name: "+name+"\n")
	write(t, filepath.Join(project, "docs", "index.md"), "# "+name+"\n")
	return project
}

func findingsFor(t *testing.T, report *Report, project string) []Finding {
	t.Helper()
	for _, pr := range report.Projects {
		if pr.Project == project {
			return pr.Findings
		}
	}
	t.Fatalf("project %s not in report: %+v", project, report.Projects)
	return nil
}

func hasFinding(findings []Finding, check CheckID, substr string) bool {
	for _, f := range findings {
		if f.Check == check && strings.Contains(f.Message, substr) {
			return true
		}
	}
	return false
}

func TestRunValidProject(t *testing.T) {
	workspace := t.TempDir()
	scaffoldProject(t, workspace, "pyvider")

	report, err := Run(context.Background(), Options{Workspace: workspace})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.Passed() {
		t.Fatalf("expected pass, findings: %+v", report.Projects)
	}
	if len(report.Projects) != 1 {
		t.Fatalf("Projects = %d, want 1", len(report.Projects))
	}
}

func TestRunMissingConfigAndStructure(t *testing.T) {
	workspace := t.TempDir()
	write(t, filepath.Join(workspace, "bare", "docs", "notes.md"), "notes\n")

	report, err := Run(context.Background(), Options{Workspace: workspace})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	findings := findingsFor(t, report, "bare")
	if !hasFinding(findings, CheckConfig, "missing mkdocs.yml") {
		t.Fatalf("missing config finding: %+v", findings)
	}
	if !hasFinding(findings, CheckStructure, "required page") {
		t.Fatalf("missing required page finding: %+v", findings)
	}
}

func TestRunInheritTargetMustExist(t *testing.T) {
	workspace := t.TempDir()
	project := scaffoldProject(t, workspace, "flavorpack")
	if err := os.RemoveAll(filepath.Join(project, ".provide")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	report, err := Run(context.Background(), Options{Workspace: workspace})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	findings := findingsFor(t, report, "flavorpack")
	if !hasFinding(findings, CheckConfig, "does not exist") {
		t.Fatalf("missing inherited config finding: %+v", findings)
	}
}

func TestRunNonCanonicalInherit(t *testing.T) {
	workspace := t.TempDir()
	project := filepath.Join(workspace, "drifted")
	write(t, filepath.Join(project, "mkdocs.yml"), "INHERIT: mkdocs-base.yml\n")
	write(t, filepath.Join(project, "mkdocs-base.yml"), "site_name: drifted\n")
	write(t, filepath.Join(project, "docs", "index.md"), "# d\n")

	report, err := Run(context.Background(), Options{Workspace: workspace})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	findings := findingsFor(t, report, "drifted")
	if !hasFinding(findings, CheckConfig, ".provide/foundry/base-mkdocs.yml") {
		t.Fatalf("missing canonical INHERIT finding: %+v", findings)
	}
}

func TestRunInheritExempt(t *testing.T) {
	workspace := t.TempDir()
	project := filepath.Join(workspace, "provide-foundation")
	write(t, filepath.Join(project, "mkdocs.yml"), "site_name: provide-foundation\n")
	write(t, filepath.Join(project, "docs", "index.md"), "# home\n")

	report, err := Run(context.Background(), Options{
		Workspace:     workspace,
		InheritExempt: []string{"provide-foundation"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.Passed() {
		t.Fatalf("exempt project should pass: %+v", report.Projects)
	}
}

func TestRunBrokenLinks(t *testing.T) {
	workspace := t.TempDir()
	project := scaffoldProject(t, workspace, "pyvider")
	write(t, filepath.Join(project, "docs", "index.md"),
		"# Home\n\n[good](guide.md)\n[bad](missing.md)\n[ext](https://provide.io/x.md)\n")
	write(t, filepath.Join(project, "docs", "guide.md"), "# Guide\n")

	report, err := Run(context.Background(), Options{Workspace: workspace})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	findings := findingsFor(t, report, "pyvider")
	if !hasFinding(findings, CheckLinks, `"missing.md"`) {
		t.Fatalf("missing broken link finding: %+v", findings)
	}
	if hasFinding(findings, CheckLinks, "guide.md") || hasFinding(findings, CheckLinks, "provide.io") {
		t.Fatalf("false positive link finding: %+v", findings)
	}

	for _, f := range findings {
		if f.Check == CheckLinks && f.Line != 4 {
			t.Fatalf("Line = %d, want 4", f.Line)
		}
	}
}

func TestRunDirectoryURLLinks(t *testing.T) {
	workspace := t.TempDir()
	project := scaffoldProject(t, workspace, "pyvider")
	write(t, filepath.Join(project, "docs", "index.md"),
		"[section](section/)\n[flat](flat/)\n")
	write(t, filepath.Join(project, "docs", "section", "index.md"), "# s\n")
	write(t, filepath.Join(project, "docs", "flat.md"), "# f\n")

	report, err := Run(context.Background(), Options{Workspace: workspace})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.Passed() {
		t.Fatalf("directory URLs should resolve: %+v", report.Projects)
	}
}

func TestRunShellSnippets(t *testing.T) {
	workspace := t.TempDir()
	project := scaffoldProject(t, workspace, "pyvider")
	write(t, filepath.Join(project, "docs", "index.md"),
		"# Home\n\n```bash\necho ok\n```\n\n```sh\nif true; then\n```\n\n```python\nif True\n```\n")

	report, err := Run(context.Background(), Options{Workspace: workspace})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	findings := findingsFor(t, report, "pyvider")

	var snippet []Finding
	for _, f := range findings {
		if f.Check == CheckSnippets {
			snippet = append(snippet, f)
		}
	}
	if len(snippet) != 1 {
		t.Fatalf("snippet findings = %+v, want exactly one", snippet)
	}
	if snippet[0].Line < 8 {
		t.Fatalf("Line = %d, want the broken sh block", snippet[0].Line)
	}
}

func TestRunStrictBuild(t *testing.T) {
	workspace := t.TempDir()
	scaffoldProject(t, workspace, "good")
	write(t, filepath.Join(workspace, "broken", "mkdocs.yml"),
		"INHERIT: base.yml\n")
	write(t, filepath.Join(workspace, "broken", "base.yml"), "site_name: broken\n")
	write(t, filepath.Join(workspace, "broken", "docs", "index.md"), "# b\n")

	testutil.InstallStub(t, "mkdocs",
		"#!/bin/sh\ncase \"$(pwd)\" in\n*broken) echo 'strict mode violation' >&2; exit 1 ;;\n*) exit 0 ;;\nesac\n")

	report, err := Run(context.Background(), Options{Workspace: workspace, Build: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Passed() {
		t.Fatalf("expected broken project to fail the strict build")
	}
	findings := findingsFor(t, report, "broken")
	if !hasFinding(findings, CheckBuild, "strict mode violation") {
		t.Fatalf("missing build finding: %+v", findings)
	}
}

func TestRunBuildSkipsProjectsWithoutConfig(t *testing.T) {
	workspace := t.TempDir()
	write(t, filepath.Join(workspace, "docsonly", "docs", "index.md"), "# d\n")

	testutil.InstallStub(t, "mkdocs", "#!/bin/sh\nexit 0\n")

	report, err := Run(context.Background(), Options{Workspace: workspace, Build: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, pr := range report.Projects {
		if pr.Project == "docsonly" && !pr.Skipped {
			t.Fatalf("expected docsonly to be skipped: %+v", pr)
		}
	}
}

func TestRunMissingMkdocsBinary(t *testing.T) {
	workspace := t.TempDir()
	scaffoldProject(t, workspace, "pyvider")
	testutil.ClearPath(t)

	if _, err := Run(context.Background(), Options{Workspace: workspace, Build: true}); err == nil {
		t.Fatalf("expected error for missing mkdocs binary")
	}
}

func TestRunNamedProjectMustExist(t *testing.T) {
	workspace := t.TempDir()
	if _, err := Run(context.Background(), Options{
		Workspace: workspace,
		Projects:  []string{"nope"},
	}); err == nil {
		t.Fatalf("expected error for unknown project")
	}
}

func TestRunCanceledContext(t *testing.T) {
	workspace := t.TempDir()
	scaffoldProject(t, workspace, "pyvider")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, Options{Workspace: workspace}); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
