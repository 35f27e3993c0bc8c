// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableErrorMessage(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewErrorContext().
		WithOperation("load workspace manifest").
		WithResource("workspace.toml").
		Wrap(cause).
		Build()

	want := "failed to load workspace manifest: workspace.toml: permission denied"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to find the cause")
	}
}

func TestBuildRequiresOperation(t *testing.T) {
	if err := NewErrorContext().WithResource("x").BuildError(); err != nil {
		t.Fatalf("BuildError without operation should return nil, got %v", err)
	}
}

func TestFormatIncludesSuggestions(t *testing.T) {
	err := NewErrorContext().
		WithOperation("run strict build").
		WithSuggestion("Install mkdocs").
		WithSuggestion("Check your PATH").
		Build()

	out := err.Format(false)
	if !strings.Contains(out, "• Install mkdocs") {
		t.Fatalf("Format missing first suggestion: %q", out)
	}
	if !strings.Contains(out, "• Check your PATH") {
		t.Fatalf("Format missing second suggestion: %q", out)
	}
}

func TestFormatVerboseIncludesErrorChain(t *testing.T) {
	inner := errors.New("inner")
	middle := WrapWithOperation(inner, "middle step")
	err := NewErrorContext().
		WithOperation("outer step").
		Wrap(middle).
		Build()

	out := err.Format(true)
	if !strings.Contains(out, "Error chain:") {
		t.Fatalf("verbose format missing error chain: %q", out)
	}
	if !strings.Contains(out, "inner") {
		t.Fatalf("verbose format missing innermost error: %q", out)
	}
}

func TestWrapWithContextNil(t *testing.T) {
	if got := WrapWithContext(nil, "op", "res"); got != nil {
		t.Fatalf("WrapWithContext(nil) = %v, want nil", got)
	}
}
