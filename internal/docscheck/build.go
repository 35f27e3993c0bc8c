// SPDX-License-Identifier: MPL-2.0

package docscheck

import (
	"context"
	"fmt"
	"strings"

	"foundry-cli/internal/runner"
)

// runStrictBuild runs `mkdocs build --strict` in the project directory and
// records a finding when the build fails. Infrastructure errors abort.
func runStrictBuild(ctx context.Context, mkdocs, project string, pr *ProjectReport) error {
	result := runner.Capture(ctx, runner.Command{
		Name: mkdocs,
		Args: []string{"build", "--strict", "--site-dir", ".foundry-build"},
		Dir:  project,
	})
	if result.Error != nil {
		return fmt.Errorf("run mkdocs build: %w", result.Error)
	}
	if !result.Success() {
		detail := strings.TrimSpace(result.ErrOutput)
		if detail == "" {
			detail = strings.TrimSpace(result.Output)
		}
		pr.Findings = append(pr.Findings, Finding{
			Check:    CheckBuild,
			Severity: SeverityError,
			Message:  fmt.Sprintf("strict build failed (exit %d): %s", result.ExitCode, detail),
		})
	}
	return nil
}
