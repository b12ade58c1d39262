// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yyr/cedet/internal/config"
)

// newTrustCommand creates the `cedet trust` command tree. Trust entries
// approve a directory (and everything beneath it) for project types
// whose marker files can execute code when loaded.
func newTrustCommand(app *App) *cobra.Command {
	trustCmd := &cobra.Command{
		Use:   "trust",
		Short: "Manage directories approved for unsafe project types",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	trustCmd.AddCommand(&cobra.Command{
		Use:   "add <dir>",
		Short: "Approve a directory tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			store, err := config.LoadTrustStore()
			if err != nil {
				return err
			}
			if !store.Add(abs) {
				fmt.Fprintf(app.stdout, "%s already trusted\n", HighlightStyle.Render(abs))
				return nil
			}
			if err := store.Save(); err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("trusted"), HighlightStyle.Render(abs))
			return nil
		},
	})

	trustCmd.AddCommand(&cobra.Command{
		Use:   "remove <dir>",
		Short: "Withdraw approval for a directory tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			store, err := config.LoadTrustStore()
			if err != nil {
				return err
			}
			if !store.Remove(abs) {
				fmt.Fprintf(app.stdout, "%s was not trusted\n", HighlightStyle.Render(abs))
				return nil
			}
			if err := store.Save(); err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s %s\n", WarningStyle.Render("untrusted"), HighlightStyle.Render(abs))
			return nil
		},
	})

	trustCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List trusted directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.LoadTrustStore()
			if err != nil {
				return err
			}
			if len(store.Directories) == 0 {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("no trusted directories"))
				return nil
			}
			for _, dir := range store.Directories {
				fmt.Fprintln(app.stdout, HighlightStyle.Render(dir))
			}
			return nil
		},
	})

	return trustCmd
}
