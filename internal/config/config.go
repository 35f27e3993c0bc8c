// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"foundry-cli/internal/issue"
	"foundry-cli/pkg/cueutil"
	"foundry-cli/pkg/platform"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "foundry"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "FOUNDRY"
)

//go:embed config_schema.cue
var configSchema string

// LoadOptions controls config loading.
type LoadOptions struct {
	// ConfigFilePath, when set, is used exclusively (the --config flag).
	ConfigFilePath string
	// ConfigDirPath overrides the platform config directory (tests).
	ConfigDirPath string
}

// ConfigDir returns the foundry configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the resolved path of the config file, whether or not
// it exists.
func ConfigFilePath() (string, error) {
	if configFilePathOverride != "" {
		return configFilePathOverride, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// Load loads the configuration honoring any test or flag overrides.
func Load() (*Config, error) {
	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
	})
	return cfg, err
}

// loadWithOptions performs option-driven config loading without mutating
// package-level cache state. Callers that want caching can wrap this function.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("docs.inherit_exempt", defaults.Docs.InheritExempt)
	v.SetDefault("docs.required_pages", defaults.Docs.RequiredPages)
	v.SetDefault("examples.provider_name", defaults.Examples.ProviderName)
	v.SetDefault("examples.placeholder_patterns", defaults.Examples.PlaceholderPatterns)
	v.SetDefault("workspace.manifest", defaults.Workspace.Manifest)
	v.SetDefault("tools.mkdocs", string(defaults.Tools.Mkdocs))
	v.SetDefault("tools.terraform", string(defaults.Tools.Terraform))
	v.SetDefault("tools.git", string(defaults.Tools.Git))

	// FOUNDRY_UI_VERBOSE=1 style env overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""

	// If a custom config file path is set via --config flag, use it exclusively.
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'foundry config show' to see default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("See 'foundry config --help' for configuration options").
				Wrap(err).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(cuePath) {
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, "", issue.NewErrorContext().
					WithOperation("load configuration").
					WithResource(cuePath).
					WithSuggestion("Check that the file contains valid CUE syntax").
					WithSuggestion("Verify the configuration values match the expected schema").
					WithSuggestion("See 'foundry config --help' for configuration options").
					Wrap(err).
					BuildError()
			}
			resolvedPath = cuePath
		}
		// If no config file found, use defaults (no error)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate constraints that CUE cannot express.
	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check the listed fields against 'foundry config --help'").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
//
// The config decodes to map[string]any (not a struct) for Viper integration,
// and validates with Concrete(false) because all config fields are optional.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// GenerateCUE renders a Config back to CUE text, suitable for `foundry config
// init` and `foundry config dump`.
func GenerateCUE(cfg *Config) string {
	var b strings.Builder

	b.WriteString("// foundry configuration\n")
	b.WriteString("ui: {\n")
	fmt.Fprintf(&b, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&b, "\tverbose:      %v\n", cfg.UI.Verbose)
	b.WriteString("}\n")

	b.WriteString("docs: {\n")
	writeCUEStringList(&b, "inherit_exempt", cfg.Docs.InheritExempt)
	writeCUEStringList(&b, "required_pages", cfg.Docs.RequiredPages)
	b.WriteString("}\n")

	if cfg.Examples.ProviderName != "" || len(cfg.Examples.PlaceholderPatterns) > 0 {
		b.WriteString("examples: {\n")
		if cfg.Examples.ProviderName != "" {
			fmt.Fprintf(&b, "\tprovider_name: %q\n", cfg.Examples.ProviderName)
		}
		writeCUEStringList(&b, "placeholder_patterns", cfg.Examples.PlaceholderPatterns)
		b.WriteString("}\n")
	}

	b.WriteString("workspace: {\n")
	fmt.Fprintf(&b, "\tmanifest: %q\n", cfg.Workspace.Manifest)
	b.WriteString("}\n")

	if cfg.Tools.Mkdocs != "" || cfg.Tools.Terraform != "" || cfg.Tools.Git != "" {
		b.WriteString("tools: {\n")
		if cfg.Tools.Mkdocs != "" {
			fmt.Fprintf(&b, "\tmkdocs: %q\n", string(cfg.Tools.Mkdocs))
		}
		if cfg.Tools.Terraform != "" {
			fmt.Fprintf(&b, "\tterraform: %q\n", string(cfg.Tools.Terraform))
		}
		if cfg.Tools.Git != "" {
			fmt.Fprintf(&b, "\tgit: %q\n", string(cfg.Tools.Git))
		}
		b.WriteString("}\n")
	}

	return b.String()
}

func writeCUEStringList(b *strings.Builder, key string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(b, "\t%s: [", key)
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%q", v)
	}
	b.WriteString("]\n")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
