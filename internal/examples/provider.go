// SPDX-License-Identifier: MPL-2.0

package examples

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ProviderNameEnv overrides provider name discovery when set.
const ProviderNameEnv = "PROVIDER_NAME"

// pyproject models the subset of pyproject.toml we read.
type pyproject struct {
	Project struct {
		Name string `toml:"name"`
	} `toml:"project"`
}

// ResolveProviderName determines the provider name for the validation
// summary. Precedence: explicit override (config), PROVIDER_NAME environment
// variable, then the [project].name field of pyproject.toml next to the
// examples root.
func ResolveProviderName(override, projectRoot string) (string, error) {
	if override != "" {
		return override, nil
	}
	if env := os.Getenv(ProviderNameEnv); env != "" {
		return env, nil
	}

	path := filepath.Join(projectRoot, "pyproject.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	var pp pyproject
	if err := toml.Unmarshal(data, &pp); err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	if pp.Project.Name == "" {
		return "", fmt.Errorf("%s has no [project] name", path)
	}

	return pp.Project.Name, nil
}
