// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"foundry-cli/internal/testutil"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	testutil.WriteFile(t, path, content)
}

// execCommand runs a command with the given args and returns its output.
func execCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCleanCommandDryRun(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "terraform.tfstate"), "{}")
	write(t, filepath.Join(dir, ".terraform", "plugin"), "bin")

	out, err := execCommand(t, newCleanCommand(), dir, "--dry-run")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if !strings.Contains(out, "would remove 2 artifact(s)") {
		t.Fatalf("output = %q", out)
	}

	// Dry run leaves artifacts in place.
	if _, err := os.Stat(filepath.Join(dir, "terraform.tfstate")); err != nil {
		t.Fatalf("tfstate removed during dry run: %v", err)
	}
}

func TestCleanCommandAlwaysSucceeds(t *testing.T) {
	out, err := execCommand(t, newCleanCommand(), t.TempDir())
	if err != nil {
		t.Fatalf("clean on empty dir: %v", err)
	}
	if !strings.Contains(out, "removed 0 of 0") {
		t.Fatalf("output = %q", out)
	}
}

func TestStandardsCheckReportsExitError(t *testing.T) {
	workspace := t.TempDir()
	write(t, filepath.Join(workspace, "proj", "mkdocs.yml"), "site_name: proj\n")

	out, err := execCommand(t, newStandardsCommand(), "check", "--workspace", workspace)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("err = %v, want *ExitError", err)
	}
	if exitErr.Code != 1 {
		t.Fatalf("Code = %d, want 1", exitErr.Code)
	}
	if !strings.Contains(out, "Compliant: 0/1") {
		t.Fatalf("output = %q", out)
	}
}

func TestWorkspaceSyncHookFailureExitsNonZero(t *testing.T) {
	testutil.InstallStub(t, "git", `#!/bin/sh
case "$1" in
clone)
  for dest; do :; done
  mkdir -p "$dest/.git"
  ;;
esac
exit 0
`)

	root := t.TempDir()
	write(t, filepath.Join(root, "workspace.toml"), `
[[repos]]
name = "a"
url = "https://github.com/provide-io/a.git"

[hooks]
post_sync = ["exit 7"]
`)

	out, err := execCommand(t, newWorkspaceCommand(), "sync", "--root", root)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("err = %v, want *ExitError", err)
	}
	if exitErr.Code != 1 {
		t.Fatalf("Code = %d, want 1", exitErr.Code)
	}
	if !strings.Contains(out, "1 repositor(ies) synced, 0 failed") {
		t.Fatalf("output = %q", out)
	}
}

func TestDocsFixLinksCommand(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "guide.md")
	write(t, page, "[setup](setup.md)\n")

	out, err := execCommand(t, newDocsCommand(), "fix-links", "--root", dir)
	if err != nil {
		t.Fatalf("fix-links: %v", err)
	}
	if !strings.Contains(out, "rewrote 1 link(s)") {
		t.Fatalf("output = %q", out)
	}

	data, err := os.ReadFile(page)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "](setup/)") {
		t.Fatalf("file = %q", data)
	}
}

func TestPartialsValidateCommand(t *testing.T) {
	project := t.TempDir()
	write(t, filepath.Join(project, "docs", "index.md"),
		"--8<-- \"docs/_partials/missing.md\"\n")

	_, err := execCommand(t, newPartialsCommand(), "validate", "--project", project)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("err = %v, want *ExitError", err)
	}
}

func TestInitCommandExtractsAssets(t *testing.T) {
	target := t.TempDir()

	out, err := execCommand(t, newInitCommand(), "--target", target, "--makefile")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, ".provide/foundry/base-mkdocs.yml") {
		t.Fatalf("output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(target, "Makefile")); err != nil {
		t.Fatalf("Makefile not written: %v", err)
	}
}

func TestExitErrorMessage(t *testing.T) {
	err := &ExitError{Code: 2}
	if err.Error() != "exit status 2" {
		t.Fatalf("Error() = %q", err.Error())
	}

	wrapped := &ExitError{Code: 1, Err: errors.New("boom")}
	if wrapped.Error() != "boom" || !errors.Is(wrapped, wrapped.Err) {
		t.Fatalf("wrapped = %q", wrapped.Error())
	}
}

func TestCompletionRejectsUnknownShell(t *testing.T) {
	if _, err := execCommand(t, newCompletionCommand(), "tcsh"); err == nil {
		t.Fatalf("expected error for unknown shell")
	}
}
