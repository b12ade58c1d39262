// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/yyr/cedet/internal/config"
	"github.com/yyr/cedet/internal/probe"
)

// newProbeCommand creates the `cedet probe` command: run the toolchain
// probe pipeline and show what it learned.
func newProbeCommand(app *App) *cobra.Command {
	var (
		fresh  bool
		report bool
	)

	probeCmd := &cobra.Command{
		Use:   "probe",
		Short: "Probe the configured toolchain for facts, includes, and macros",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fresh {
				app.Cache.Reset()
			}

			setup, err := app.runSetup(cmd.Context())
			if err != nil {
				return err
			}
			if report {
				return renderProbeReport(app, setup)
			}

			f := setup.Facts()
			fmt.Fprintf(app.stdout, "%s %s\n", TitleStyle.Render("version"), f.Version)
			fmt.Fprintf(app.stdout, "%s  %s\n", TitleStyle.Render("target"), f.Target)
			fmt.Fprintf(app.stdout, "%s  %s\n", TitleStyle.Render("prefix"), f.Prefix)
			for _, inc := range setup.SystemIncludes() {
				fmt.Fprintln(app.stdout, HighlightStyle.Render("  "+inc))
			}
			fmt.Fprintf(app.stdout, "%s  %d\n", TitleStyle.Render("macros"), len(setup.Macros()))
			return nil
		},
	}
	probeCmd.Flags().BoolVar(&fresh, "fresh", false, "discard cached facts and probe again")
	probeCmd.Flags().BoolVar(&report, "report", false, "render a markdown report")

	return probeCmd
}

func renderProbeReport(app *App, setup *probe.Setup) error {
	var sb strings.Builder
	sb.WriteString("# Toolchain report\n\n")

	if f := setup.Facts(); f != nil {
		sb.WriteString("## Facts\n\n")
		sb.WriteString(fmt.Sprintf("- executable: `%s`\n", f.Executable))
		sb.WriteString(fmt.Sprintf("- version: `%s`\n", f.Version))
		sb.WriteString(fmt.Sprintf("- target: `%s`\n", f.Target))
		sb.WriteString(fmt.Sprintf("- prefix: `%s`\n\n", f.Prefix))

		if len(f.Options) > 0 {
			sb.WriteString("## Configure options\n\n")
			keys := make([]string, 0, len(f.Options))
			for k := range f.Options {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				if v := f.Options[k]; v != "" {
					sb.WriteString(fmt.Sprintf("- `%s` = `%s`\n", k, v))
				} else {
					sb.WriteString(fmt.Sprintf("- `%s`\n", k))
				}
			}
			sb.WriteString("\n")
		}
	}

	for _, lang := range []config.Language{config.LanguageCPP, config.LanguageC} {
		if incs := setup.Includes(lang); len(incs) > 0 {
			sb.WriteString(fmt.Sprintf("## Include paths (%s)\n\n", lang))
			for _, inc := range incs {
				sb.WriteString("- `" + inc + "`\n")
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString(fmt.Sprintf("## Predefined macros\n\n%d macros cached\n", len(setup.Macros())))
	if syms := setup.SymbolFiles(); len(syms) > 0 {
		sb.WriteString("\n## Compatibility headers\n\n")
		for _, s := range syms {
			sb.WriteString("- `" + s + "`\n")
		}
	}

	out, err := glamour.Render(sb.String(), "auto")
	if err != nil {
		out = sb.String()
	}
	fmt.Fprintln(app.stdout, out)
	return nil
}
