// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenNoConfigFile(t *testing.T) {
	t.Cleanup(Reset)

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("loadWithOptions: %v", err)
	}
	if path != "" {
		t.Fatalf("expected no resolved path, got %q", path)
	}
	if cfg.UI.ColorScheme != string(ColorSchemeAuto) {
		t.Fatalf("default color scheme = %q", cfg.UI.ColorScheme)
	}
	if cfg.Workspace.Manifest != "workspace.toml" {
		t.Fatalf("default manifest = %q", cfg.Workspace.Manifest)
	}
	if len(cfg.Docs.InheritExempt) != 1 || cfg.Docs.InheritExempt[0] != "provide-foundation" {
		t.Fatalf("default inherit_exempt = %v", cfg.Docs.InheritExempt)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	t.Cleanup(Reset)

	dir := t.TempDir()
	content := `
ui: {
	color_scheme: "dark"
	verbose:      true
}
docs: {
	required_pages: ["index.md", "getting-started.md"]
}
tools: {
	terraform: "/opt/bin/tofu"
}
`
	cfgPath := filepath.Join(dir, "config.cue")
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loadWithOptions: %v", err)
	}
	if path != cfgPath {
		t.Fatalf("resolved path = %q, want %q", path, cfgPath)
	}
	if cfg.UI.ColorScheme != "dark" || !cfg.UI.Verbose {
		t.Fatalf("ui config not applied: %+v", cfg.UI)
	}
	if len(cfg.Docs.RequiredPages) != 2 {
		t.Fatalf("required_pages = %v", cfg.Docs.RequiredPages)
	}
	if cfg.Tools.Terraform != "/opt/bin/tofu" {
		t.Fatalf("tools.terraform = %q", cfg.Tools.Terraform)
	}
}

func TestLoadRejectsUnknownColorScheme(t *testing.T) {
	t.Cleanup(Reset)

	dir := t.TempDir()
	content := `ui: color_scheme: "sepia"`
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatalf("expected schema rejection for unknown color scheme")
	}
}

func TestLoadRejectsInvalidCUESyntax(t *testing.T) {
	t.Cleanup(Reset)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(`ui: {`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatalf("expected error for invalid CUE syntax")
	}
}

func TestLoadExplicitConfigFileMissing(t *testing.T) {
	t.Cleanup(Reset)

	_, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue"),
	})
	if err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
	if !strings.Contains(err.Error(), "load configuration") {
		t.Fatalf("error missing operation context: %v", err)
	}
}

func TestLoadCanceledContext(t *testing.T) {
	t.Cleanup(Reset)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := loadWithOptions(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGenerateCUERoundTrips(t *testing.T) {
	t.Cleanup(Reset)

	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.UI.ColorScheme = "light"
	cfg.Tools.Mkdocs = "/usr/local/bin/mkdocs"

	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(GenerateCUE(cfg)), 0o644); err != nil {
		t.Fatalf("write generated config: %v", err)
	}

	loaded, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loadWithOptions on generated config: %v", err)
	}
	if loaded.UI.ColorScheme != "light" {
		t.Fatalf("round-trip color scheme = %q", loaded.UI.ColorScheme)
	}
	if loaded.Tools.Mkdocs != "/usr/local/bin/mkdocs" {
		t.Fatalf("round-trip mkdocs path = %q", loaded.Tools.Mkdocs)
	}
}
