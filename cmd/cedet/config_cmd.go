// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yyr/cedet/internal/config"
)

// newConfigCommand creates the `cedet config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage cedet configuration",
		Long: `Manage cedet configuration.

Configuration is stored in:
  - Linux: ~/.config/cedet/config.cue
  - macOS: ~/Library/Application Support/cedet/config.cue
  - Windows: %APPDATA%\cedet\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeConfig(app, config.DefaultConfig(), false)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			if err := applyConfigValue(cfg, args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return writeConfig(app, cfg, true)
		},
	})

	return cfgCmd
}

func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "compiler":
		cfg.Compiler = value
	case "fallback_cpp":
		cfg.FallbackCpp = value
	case "probe_timeout":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("probe_timeout must be an integer: %w", err)
		}
		cfg.ProbeTimeoutSeconds = n
	case "languages":
		var langs []config.Language
		for _, l := range strings.Split(value, ",") {
			langs = append(langs, config.Language(strings.TrimSpace(l)))
		}
		cfg.Languages = langs
	case "ui.color_scheme":
		cfg.UI.ColorScheme = config.ColorScheme(value)
	case "ui.verbose":
		cfg.UI.Verbose = value == "true"
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func writeConfig(app *App, cfg *config.Config, overwrite bool) error {
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt)

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
	}
	if err := os.WriteFile(path, []byte(config.GenerateCUE(cfg)), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("wrote"), HighlightStyle.Render(path))
	return nil
}
