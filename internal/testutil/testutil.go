// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include fixture writing (WriteFile) and fake external
// binaries placed on PATH (InstallStub, ClearPath).
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
// The test fails immediately if any step fails.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// InstallStub writes an executable shell script named name into a fresh
// directory and prepends that directory to PATH, so the stub shadows any
// real binary for the remainder of the test. Returns the stub's path.
// Skips the test on platforms without a POSIX shell.
func InstallStub(t testing.TB, name, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub scripts require a POSIX shell")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write stub %s: %v", name, err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return path
}

// ClearPath points PATH at an empty directory so lookups of external
// binaries fail, for exercising missing-tool handling.
func ClearPath(t testing.TB) {
	t.Helper()
	t.Setenv("PATH", t.TempDir())
}
