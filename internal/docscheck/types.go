// SPDX-License-Identifier: MPL-2.0

package docscheck

import "fmt"

// Severity levels for findings.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Check identifiers.
const (
	CheckConfig    CheckID = "config"
	CheckStructure CheckID = "structure"
	CheckLinks     CheckID = "links"
	CheckSnippets  CheckID = "snippets"
	CheckBuild     CheckID = "build"
)

type (
	// Severity classifies a finding; only errors fail the run.
	Severity string

	// CheckID identifies the check that produced a finding.
	CheckID string

	// Finding is one problem discovered in a project's documentation.
	Finding struct {
		Check    CheckID
		Severity Severity
		// File is relative to the project root; empty for project-level
		// findings.
		File    string
		Line    int
		Message string
	}

	// ProjectReport collects the findings for one project.
	ProjectReport struct {
		Project  string
		Findings []Finding
		// Skipped is set when the project had no mkdocs.yml and was left
		// out of the strict build.
		Skipped bool
	}

	// Report is the outcome of a full docs validation run.
	Report struct {
		Projects []ProjectReport
	}
)

// String renders the finding in file:line: message form.
func (f Finding) String() string {
	switch {
	case f.File != "" && f.Line > 0:
		return fmt.Sprintf("[%s] %s:%d: %s", f.Check, f.File, f.Line, f.Message)
	case f.File != "":
		return fmt.Sprintf("[%s] %s: %s", f.Check, f.File, f.Message)
	default:
		return fmt.Sprintf("[%s] %s", f.Check, f.Message)
	}
}

// Errors counts error-severity findings.
func (p *ProjectReport) Errors() int {
	n := 0
	for _, f := range p.Findings {
		if f.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Warnings counts warning-severity findings.
func (p *ProjectReport) Warnings() int {
	return len(p.Findings) - p.Errors()
}

// Passed reports whether no project produced an error finding.
func (r *Report) Passed() bool {
	for i := range r.Projects {
		if r.Projects[i].Errors() > 0 {
			return false
		}
	}
	return true
}

// TotalErrors sums error findings across projects.
func (r *Report) TotalErrors() int {
	n := 0
	for i := range r.Projects {
		n += r.Projects[i].Errors()
	}
	return n
}
