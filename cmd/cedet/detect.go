// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yyr/cedet/internal/issue"
	"github.com/yyr/cedet/internal/projtype"
)

// newDetectCommand creates the `cedet detect` and `cedet root` commands.
func newDetectCommand(app *App) *cobra.Command {
	var explain bool

	detectCmd := &cobra.Command{
		Use:   "detect [dir]",
		Short: "Identify the project type of a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runDetect(app, dir, explain)
		},
	}
	detectCmd.Flags().BoolVar(&explain, "explain", false, "list every registered type and whether it matched")

	rootForCmd := &cobra.Command{
		Use:   "root <file>",
		Short: "Find the project root owning a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRootFor(app, args[0])
		},
	}
	detectCmd.AddCommand(rootForCmd)

	return detectCmd
}

func runDetect(app *App, dir string, explain bool) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	reg, err := app.seededRegistry()
	if err != nil {
		return err
	}

	if explain {
		return explainDetect(app, reg, abs)
	}

	d := reg.Detect(abs)
	if d == nil {
		renderIssue(app, issue.NoProjectDetectedId)
		return &ExitError{Code: 1}
	}

	safety := SuccessStyle.Render("safe")
	if !d.Safe {
		safety = WarningStyle.Render("unsafe - requires trust")
	}
	fmt.Fprintf(app.stdout, "%s  %s (%s)\n",
		TitleStyle.Render(d.Name), SubtitleStyle.Render("marker: "+d.MarkerFile), safety)
	return nil
}

func explainDetect(app *App, reg *projtype.Registry, dir string) error {
	d := reg.Detect(dir)
	for _, cand := range reg.All() {
		status := SubtitleStyle.Render("no match")
		if d != nil && cand.Name == d.Name {
			status = SuccessStyle.Render("matched")
		}
		tier := "default"
		if cand.Generic() {
			tier = "generic"
		}
		fmt.Fprintf(app.stdout, "%-12s %-10s marker=%-20s %s\n",
			cand.Name, tier, cand.MarkerFile, status)
	}
	return nil
}

func runRootFor(app *App, file string) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("source file: %w", err)
	}
	reg, err := app.seededRegistry()
	if err != nil {
		return err
	}

	root, d := reg.RootForFile(abs)
	if d == nil {
		renderIssue(app, issue.NoProjectDetectedId)
		return &ExitError{Code: 1}
	}
	fmt.Fprintf(app.stdout, "%s  %s\n", HighlightStyle.Render(root), SubtitleStyle.Render("("+d.Name+")"))
	return nil
}

// renderIssue prints a rendered issue to stderr, falling back to the raw
// markdown when the renderer fails (e.g. no usable terminal).
func renderIssue(app *App, id issue.Id) {
	i := issue.Get(id)
	if i == nil {
		return
	}
	out, err := i.Render("auto")
	if err != nil {
		out = string(i.MarkdownMsg())
	}
	fmt.Fprintln(app.stderr, out)
}
