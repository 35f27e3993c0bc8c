// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestGetReturnsRegisteredIssues(t *testing.T) {
	ids := []Id{
		MkdocsNotFoundId,
		TerraformNotFoundId,
		GitNotFoundId,
		DocsDirNotFoundId,
		MkdocsConfigNotFoundId,
		WorkspaceManifestNotFoundId,
		PartialsNotExtractedId,
		ProviderNameNotFoundId,
		ConfigLoadFailedId,
		HookExecutionFailedId,
	}

	for _, id := range ids {
		iss := Get(id)
		if iss == nil {
			t.Fatalf("Get(%d) returned nil", id)
		}
		if iss.Id() != id {
			t.Fatalf("Get(%d).Id() = %d", id, iss.Id())
		}
		if strings.TrimSpace(string(iss.MarkdownMsg())) == "" {
			t.Fatalf("issue %d has empty markdown message", id)
		}
	}
}

func TestValuesCoversAllIssues(t *testing.T) {
	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
}

func TestRenderUsesRenderer(t *testing.T) {
	original := render
	t.Cleanup(func() { render = original })

	var gotInput string
	render = func(in string, stylePath string) (string, error) {
		gotInput = in
		return "rendered", nil
	}

	out, err := Get(TerraformNotFoundId).Render("dark")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "rendered" {
		t.Fatalf("Render output = %q", out)
	}
	if !strings.Contains(gotInput, "terraform") {
		t.Fatalf("rendered input missing issue text")
	}
	if !strings.Contains(gotInput, "See also") {
		t.Fatalf("expected external links section for terraform issue")
	}
}
