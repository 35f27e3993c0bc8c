// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidToolPath is returned when a configured tool path is whitespace-only.
	ErrInvalidToolPath = errors.New("invalid tool path")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// ToolPath is a filesystem path to an external binary. The zero value ("")
	// is valid and means "resolve from PATH". Non-zero values must not be
	// whitespace-only.
	ToolPath string

	// InvalidToolPathError is returned when a ToolPath is non-empty but
	// whitespace-only.
	InvalidToolPathError struct {
		Value ToolPath
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// UIConfig holds terminal output preferences.
	UIConfig struct {
		ColorScheme string `mapstructure:"color_scheme"`
		Verbose     bool   `mapstructure:"verbose"`
	}

	// DocsConfig tunes the docs validation checks.
	DocsConfig struct {
		// InheritExempt lists projects allowed to omit the INHERIT directive.
		InheritExempt []string `mapstructure:"inherit_exempt"`
		// RequiredPages are pages that must exist under docs/.
		RequiredPages []string `mapstructure:"required_pages"`
	}

	// ExamplesConfig tunes example validation.
	ExamplesConfig struct {
		// ProviderName overrides PROVIDER_NAME / pyproject.toml discovery.
		ProviderName string `mapstructure:"provider_name"`
		// PlaceholderPatterns extends the built-in placeholder substrings.
		PlaceholderPatterns []string `mapstructure:"placeholder_patterns"`
	}

	// WorkspaceConfig configures workspace synchronization.
	WorkspaceConfig struct {
		// Manifest is the default manifest path, relative to the working directory.
		Manifest string `mapstructure:"manifest"`
	}

	// ToolsConfig pins external binaries to explicit paths.
	ToolsConfig struct {
		Mkdocs    ToolPath `mapstructure:"mkdocs"`
		Terraform ToolPath `mapstructure:"terraform"`
		Git       ToolPath `mapstructure:"git"`
	}

	// Config is the root foundry configuration.
	Config struct {
		UI        UIConfig        `mapstructure:"ui"`
		Docs      DocsConfig      `mapstructure:"docs"`
		Examples  ExamplesConfig  `mapstructure:"examples"`
		Workspace WorkspaceConfig `mapstructure:"workspace"`
		Tools     ToolsConfig     `mapstructure:"tools"`
	}
)

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (must be auto, dark, or light)", string(e.Value))
}

// Unwrap returns ErrInvalidColorScheme for errors.Is.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Error implements the error interface.
func (e *InvalidToolPathError) Error() string {
	return fmt.Sprintf("invalid tool path %q (must not be whitespace-only)", string(e.Value))
}

// Unwrap returns ErrInvalidToolPath for errors.Is.
func (e *InvalidToolPathError) Unwrap() error { return ErrInvalidToolPath }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig for errors.Is.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// IsValid returns whether the ColorScheme is one of the recognized values.
func (s ColorScheme) IsValid() (bool, []error) {
	switch s {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: s}}
	}
}

// IsValid returns whether the ToolPath is valid. The zero value is valid.
func (p ToolPath) IsValid() (bool, []error) {
	if p != "" && strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidToolPathError{Value: p}}
	}
	return true, nil
}

// Validate checks constraints the CUE schema cannot express and returns an
// InvalidConfigError collecting all field-level failures.
func (c *Config) Validate() error {
	var fieldErrs []error

	if _, errs := ColorScheme(c.UI.ColorScheme).IsValid(); errs != nil {
		fieldErrs = append(fieldErrs, errs...)
	}
	for _, p := range []ToolPath{c.Tools.Mkdocs, c.Tools.Terraform, c.Tools.Git} {
		if _, errs := p.IsValid(); errs != nil {
			fieldErrs = append(fieldErrs, errs...)
		}
	}
	if strings.TrimSpace(c.Workspace.Manifest) == "" {
		fieldErrs = append(fieldErrs, fmt.Errorf("workspace.manifest must not be empty"))
	}

	if len(fieldErrs) > 0 {
		return &InvalidConfigError{FieldErrors: fieldErrs}
	}
	return nil
}

// DefaultConfig returns the built-in defaults applied before any config file
// or environment override.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			ColorScheme: string(ColorSchemeAuto),
			Verbose:     false,
		},
		Docs: DocsConfig{
			InheritExempt: []string{"provide-foundation"},
			RequiredPages: []string{"index.md"},
		},
		Examples: ExamplesConfig{},
		Workspace: WorkspaceConfig{
			Manifest: "workspace.toml",
		},
		Tools: ToolsConfig{},
	}
}
