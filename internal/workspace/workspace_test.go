// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"bytes"
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

// installGitStub puts a fake git on PATH that logs its arguments and
// simulates clone by creating dest/.git. Repos named fail-* error out.
func installGitStub(t *testing.T) string {
	t.Helper()

	logFile := filepath.Join(t.TempDir(), "git.log")
	testutil.InstallStub(t, "git", `#!/bin/sh
echo "$@" >> "`+logFile+`"
case "$*" in
*fail-*) echo "remote error" >&2; exit 128 ;;
esac
case "$1" in
clone)
  for dest; do :; done
  mkdir -p "$dest/.git"
  ;;
esac
exit 0
`)
	return logFile
}

func gitLog(t *testing.T, logFile string) string {
	t.Helper()
	data, err := os.ReadFile(logFile)
	if err != nil {
		return ""
	}
	return string(data)
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.toml")
	write(t, path, `
[[repos]]
name = "pyvider"
url = "https://github.com/provide-io/pyvider.git"
ref = "main"

[[repos]]
name = "flavorpack"
url = "https://github.com/provide-io/flavorpack.git"

[hooks]
post_sync = ["echo synced"]
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(m.Repos) != 2 {
		t.Fatalf("Repos = %d, want 2", len(m.Repos))
	}
	if m.Repos[0].Ref != "main" || m.Repos[1].Ref != "" {
		t.Fatalf("refs = %q, %q", m.Repos[0].Ref, m.Repos[1].Ref)
	}
	if len(m.Hooks.PostSync) != 1 {
		t.Fatalf("PostSync = %v", m.Hooks.PostSync)
	}
}

func TestManifestValidate(t *testing.T) {
	cases := []struct {
		name     string
		manifest Manifest
		wantErr  string
	}{
		{"empty", Manifest{}, "no repositories"},
		{"missing name", Manifest{Repos: []Repo{{URL: "u"}}}, "name is required"},
		{"missing url", Manifest{Repos: []Repo{{Name: "a"}}}, "url is required"},
		{
			"duplicate",
			Manifest{Repos: []Repo{{Name: "a", URL: "u"}, {Name: "a", URL: "v"}}},
			"duplicate",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.manifest.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Validate() = %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestSyncClonesAndUpdates(t *testing.T) {
	logFile := installGitStub(t)
	root := t.TempDir()

	// existing already has a checkout; fresh does not.
	write(t, filepath.Join(root, "existing", ".git", "HEAD"), "ref: refs/heads/main\n")
	write(t, filepath.Join(root, DefaultManifest), `
[[repos]]
name = "fresh"
url = "https://github.com/provide-io/fresh.git"
ref = "main"

[[repos]]
name = "existing"
url = "https://github.com/provide-io/existing.git"
`)

	report, err := Sync(context.Background(), Options{Root: root})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if !report.AllOK() {
		t.Fatalf("expected clean sync: %+v", report.Results)
	}

	actions := map[string]string{}
	for _, res := range report.Results {
		actions[res.Name] = res.Action
	}
	if actions["fresh"] != ActionClone || actions["existing"] != ActionUpdate {
		t.Fatalf("actions = %v", actions)
	}

	log := gitLog(t, logFile)
	if !strings.Contains(log, "clone --branch main") {
		t.Fatalf("clone missing ref pin:\n%s", log)
	}
	if !strings.Contains(log, "fetch --prune") || !strings.Contains(log, "pull --ff-only") {
		t.Fatalf("update steps missing:\n%s", log)
	}
}

func TestSyncCollectsRepoFailures(t *testing.T) {
	installGitStub(t)
	root := t.TempDir()
	write(t, filepath.Join(root, DefaultManifest), `
[[repos]]
name = "fail-repo"
url = "https://github.com/provide-io/fail-repo.git"

[[repos]]
name = "good"
url = "https://github.com/provide-io/good.git"
`)

	report, err := Sync(context.Background(), Options{Root: root})
	if err != nil {
		t.Fatalf("Sync should not fail on repo errors: %v", err)
	}
	if report.AllOK() {
		t.Fatalf("expected a failed repo")
	}

	for _, res := range report.Results {
		switch res.Name {
		case "fail-repo":
			if res.OK || !strings.Contains(res.Detail, "remote error") {
				t.Fatalf("fail-repo = %+v", res)
			}
		case "good":
			if !res.OK {
				t.Fatalf("good repo should sync: %+v", res)
			}
		}
	}
}

func TestSyncMissingGit(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, DefaultManifest), `
[[repos]]
name = "a"
url = "u"
`)
	testutil.ClearPath(t)

	if _, err := Sync(context.Background(), Options{Root: root}); err == nil {
		t.Fatalf("expected error for missing git")
	}
}

func TestSyncRunsHooks(t *testing.T) {
	installGitStub(t)
	root := t.TempDir()
	write(t, filepath.Join(root, DefaultManifest), `
[[repos]]
name = "a"
url = "https://github.com/provide-io/a.git"

[hooks]
post_sync = ["echo hook-ran", "exit 3", "echo still-runs"]
`)

	var out bytes.Buffer
	report, err := Sync(context.Background(), Options{Root: root, Stdout: &out, Stderr: &out})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if !strings.Contains(out.String(), "hook-ran") || !strings.Contains(out.String(), "still-runs") {
		t.Fatalf("hook output = %q", out.String())
	}
	if len(report.HookFailures) != 1 || !strings.Contains(report.HookFailures[0], "status 3") {
		t.Fatalf("HookFailures = %v", report.HookFailures)
	}
}

func TestSyncSkipHooks(t *testing.T) {
	installGitStub(t)
	root := t.TempDir()
	write(t, filepath.Join(root, DefaultManifest), `
[[repos]]
name = "a"
url = "https://github.com/provide-io/a.git"

[hooks]
post_sync = ["echo hook-ran"]
`)

	var out bytes.Buffer
	report, err := Sync(context.Background(), Options{
		Root:      root,
		SkipHooks: true,
		Stdout:    &out,
		Stderr:    &out,
	})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if strings.Contains(out.String(), "hook-ran") {
		t.Fatalf("hooks ran despite SkipHooks")
	}
	if len(report.HookFailures) != 0 {
		t.Fatalf("HookFailures = %v", report.HookFailures)
	}
}

func TestValidateHooks(t *testing.T) {
	if err := ValidateHooks([]string{"echo ok", "make docs && echo done"}); err != nil {
		t.Fatalf("ValidateHooks: %v", err)
	}
	if err := ValidateHooks([]string{"if true; then"}); err == nil {
		t.Fatalf("expected parse error")
	}
}
