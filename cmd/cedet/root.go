// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for cedet.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/yyr/cedet/internal/config"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug-level logging
	verbose bool
	// cfgDir allows specifying a custom config directory
	cfgDir string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "cedet",
		Short: "Project detection and compiler-flag resolution for C/C++ trees",
		Long: TitleStyle.Render("cedet") + SubtitleStyle.Render(" - project detection and compiler-flag resolution") + `

cedet recognizes what kind of project a source tree is (EDE, Automake,
plain Make, a Linux kernel tree, ...), loads its build declarations, and
combines them with facts probed from the installed toolchain to produce
the compiler-argument list a parser front end needs.

Project types whose marker files can execute code are never loaded from
a directory you have not explicitly trusted.

` + SubtitleStyle.Render("Examples:") + `
  cedet detect .                 Identify the project type of a directory
  cedet flags src/main.c         Resolve compiler flags for a file
  cedet probe --report           Show probed toolchain facts
  cedet trust add ~/src/proj     Approve a tree for unsafe project types`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config-dir", "", "config directory (default is platform-specific)")

	app := NewApp(Dependencies{})
	rootCmd.AddCommand(
		newDetectCommand(app),
		newFlagsCommand(app),
		newProbeCommand(app),
		newTrustCommand(app),
		newConfigCommand(app),
	)
}

func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig applies global flags before any command runs.
func initRootConfig() {
	if cfgDir != "" {
		config.SetConfigDirOverride(cfgDir)
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
