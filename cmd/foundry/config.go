// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"foundry-cli/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `foundry config` command tree.
func newConfigCommand() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage foundry configuration",
		Long: `Manage foundry configuration.

Configuration is stored in:
  - Linux: ~/.config/foundry/config.cue
  - macOS: ~/Library/Application Support/foundry/config.cue
  - Windows: %APPDATA%\foundry\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigFilePath()
			if err != nil {
				return err
			}
			cmd.Println(path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile(cmd)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print(config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command) error {
	path, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	source := path
	if _, statErr := os.Stat(path); statErr != nil {
		source = "built-in defaults"
	}

	cmd.Println(TitleStyle.Render("foundry configuration") + SubtitleStyle.Render(" ("+source+")"))
	cmd.Println()
	cmd.Printf("  ui.color_scheme          %s\n", cfg.UI.ColorScheme)
	cmd.Printf("  ui.verbose               %t\n", cfg.UI.Verbose)
	cmd.Printf("  docs.inherit_exempt      %v\n", cfg.Docs.InheritExempt)
	cmd.Printf("  docs.required_pages      %v\n", cfg.Docs.RequiredPages)
	cmd.Printf("  examples.provider_name   %q\n", cfg.Examples.ProviderName)
	cmd.Printf("  workspace.manifest       %s\n", cfg.Workspace.Manifest)
	cmd.Printf("  tools.mkdocs             %q\n", string(cfg.Tools.Mkdocs))
	cmd.Printf("  tools.terraform          %q\n", string(cfg.Tools.Terraform))
	cmd.Printf("  tools.git                %q\n", string(cfg.Tools.Git))
	return nil
}

func initConfigFile(cmd *cobra.Command) error {
	path, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		cmd.Printf("configuration already exists at %s\n", path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GenerateCUE(config.DefaultConfig())), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	cmd.Printf("created %s\n", path)
	return nil
}
