// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/yyr/cedet/internal/flags"
	"github.com/yyr/cedet/internal/issue"
	"github.com/yyr/cedet/internal/loader"
	"github.com/yyr/cedet/internal/probe"
	"github.com/yyr/cedet/internal/project"
)

// newFlagsCommand creates the `cedet flags` command: detect the file's
// project, load it through the safety gate, run the probe pipeline, and
// print the resolved compiler arguments.
func newFlagsCommand(app *App) *cobra.Command {
	var (
		target string
		report bool
	)

	flagsCmd := &cobra.Command{
		Use:   "flags <file>",
		Short: "Resolve the compiler-argument list for a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlags(cmd.Context(), app, args[0], target, report)
		},
	}
	flagsCmd.Flags().StringVarP(&target, "target", "t", "", "sub-target whose variables contribute flags")
	flagsCmd.Flags().BoolVar(&report, "report", false, "render a markdown report instead of a flag list")

	return flagsCmd
}

func runFlags(ctx context.Context, app *App, file, target string, report bool) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	reg, err := app.seededRegistry()
	if err != nil {
		return err
	}
	ld, err := app.newLoader()
	if err != nil {
		return err
	}

	proj, err := ld.LoadForFile(reg, abs)
	if err != nil {
		if errors.Is(err, loader.ErrUntrustedDir) {
			renderIssue(app, issue.UnsafeProjectTypeId)
			return &ExitError{Code: 1, Err: err}
		}
		return err
	}

	// Probe failure degrades to project-only flags rather than aborting.
	setup, perr := app.runSetup(ctx)
	if perr != nil {
		renderIssue(app, issue.ProbeFailedId)
	}

	var system flags.SystemProvider
	if setup != nil {
		system = setup
	}
	resolver := flags.New(system)

	var args []string
	if proj != nil {
		args = resolver.ArgsFor(proj, abs, target)
	} else if setup != nil {
		for _, inc := range setup.SystemIncludes() {
			args = append(args, "-I"+inc)
		}
	}

	if report {
		return renderFlagsReport(app, proj, setup, args)
	}
	fmt.Fprintln(app.stdout, strings.Join(args, " "))
	return nil
}

func renderFlagsReport(app *App, proj project.Project, setup *probe.Setup, args []string) error {
	var sb strings.Builder
	sb.WriteString("# Flag resolution\n\n")

	if proj != nil {
		sb.WriteString(fmt.Sprintf("## Project\n\n- name: `%s`\n- root: `%s`\n\n", proj.Name(), proj.Root()))
	} else {
		sb.WriteString("## Project\n\nNo project detected; system-only flags.\n\n")
	}

	if setup != nil {
		if f := setup.Facts(); f != nil {
			sb.WriteString(fmt.Sprintf("## Toolchain\n\n- executable: `%s`\n- version: `%s`\n- target: `%s`\n\n",
				f.Executable, f.Version, f.Target))
		}
		if incs := setup.SystemIncludes(); len(incs) > 0 {
			sb.WriteString("## System include paths\n\n")
			for _, inc := range incs {
				sb.WriteString("- `" + inc + "`\n")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("## Predefined macros\n\n%d macros cached\n\n", len(setup.Macros())))
	}

	sb.WriteString("## Arguments\n\n```\n" + strings.Join(args, " ") + "\n```\n")

	out, err := glamour.Render(sb.String(), "auto")
	if err != nil {
		out = sb.String()
	}
	fmt.Fprintln(app.stdout, out)
	return nil
}
