// SPDX-License-Identifier: MPL-2.0

// Package workspace materializes a provide.io workspace from a TOML
// manifest: cloning or updating the listed repositories and running the
// configured post-sync hooks.
package workspace

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultManifest is the manifest filename looked up in the workspace root.
const DefaultManifest = "workspace.toml"

type (
	// Repo is one repository entry in the manifest.
	Repo struct {
		Name string `toml:"name"`
		URL  string `toml:"url"`
		// Ref is an optional branch or tag to check out after sync.
		Ref string `toml:"ref"`
	}

	// Hooks holds the shell commands run after a successful sync.
	Hooks struct {
		PostSync []string `toml:"post_sync"`
	}

	// Manifest is the parsed workspace.toml.
	Manifest struct {
		Repos []Repo `toml:"repos"`
		Hooks Hooks  `toml:"hooks"`
	}
)

// LoadManifest reads and validates a workspace manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return &m, nil
}

// Validate checks structural requirements on the manifest.
func (m *Manifest) Validate() error {
	if len(m.Repos) == 0 {
		return fmt.Errorf("no repositories declared")
	}

	seen := make(map[string]struct{}, len(m.Repos))
	for i, repo := range m.Repos {
		if repo.Name == "" {
			return fmt.Errorf("repos[%d]: name is required", i)
		}
		if repo.URL == "" {
			return fmt.Errorf("repos[%d] (%s): url is required", i, repo.Name)
		}
		if _, ok := seen[repo.Name]; ok {
			return fmt.Errorf("duplicate repository name %q", repo.Name)
		}
		seen[repo.Name] = struct{}{}
	}
	return nil
}
