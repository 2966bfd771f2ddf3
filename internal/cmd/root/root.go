// Package root provides the root command for the sgn CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sitegen-cli/internal/cmd/importcmd"
	"github.com/open-cli-collective/sitegen-cli/internal/cmd/initcmd"
	"github.com/open-cli-collective/sitegen-cli/internal/cmd/locate"
	"github.com/open-cli-collective/sitegen-cli/internal/cmd/render"
	"github.com/open-cli-collective/sitegen-cli/internal/version"
)

// NewCmdRoot creates the root command for sgn.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sgn",
		Short: "A shortcode-first static site content tool",
		Long: `sgn renders content files for a static site, expanding inline
({{ name(args) }}) and body ({% name(args) %} ... {% end %}) shortcodes
against templates before and after the markdown conversion.

Get started by running: sgn init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ./sitegen.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Set version template
	cmd.SetVersionTemplate("sgn version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(locate.NewCmdLocate())
	cmd.AddCommand(render.NewCmdRender())
	cmd.AddCommand(importcmd.NewCmdImport())

	return cmd
}
