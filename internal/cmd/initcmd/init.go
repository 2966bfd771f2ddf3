// Package initcmd provides the init command for sgn.
package initcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sitegen-cli/internal/config"
)

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var (
		contentDir   string
		shortcodeDir string
		outputDir    string
		yes          bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize an sgn project",
		Long: `Initialize an sgn project in the current directory.

This command will guide you through choosing the content, shortcode
template and output directories, create them, and write sitegen.yml.`,
		Example: `  # Interactive setup
  sgn init

  # Accept the default layout without prompting
  sgn init --yes

  # Pre-populate the content directory
  sgn init --content-dir posts`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(contentDir, shortcodeDir, outputDir, yes)
		},
	}

	cmd.Flags().StringVar(&contentDir, "content-dir", "", "directory holding content files")
	cmd.Flags().StringVar(&shortcodeDir, "shortcode-dir", "", "directory holding shortcode templates")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for rendered output")
	cmd.Flags().BoolVar(&yes, "yes", false, "accept defaults without prompting")

	return cmd
}

func runInit(contentDir, shortcodeDir, outputDir string, yes bool) error {
	configPath := config.DefaultConfigPath()

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !yes {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Project already initialized").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	cfg := config.Default()

	// Use prefilled values or prompt
	if contentDir != "" {
		cfg.ContentDir = contentDir
	}
	if shortcodeDir != "" {
		cfg.ShortcodeDir = shortcodeDir
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	if !yes {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Content directory").
					Description("Where your markdown content files live").
					Value(&cfg.ContentDir).
					Validate(requireValue("content directory")),

				huh.NewInput().
					Title("Shortcode template directory").
					Description("One name.md or name.html template per shortcode").
					Value(&cfg.ShortcodeDir).
					Validate(requireValue("shortcode directory")),

				huh.NewInput().
					Title("Output directory").
					Description("Where rendered HTML is written").
					Value(&cfg.OutputDir).
					Validate(requireValue("output directory")),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	for _, dir := range []string{cfg.ContentDir, cfg.ShortcodeDir, cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	abs, err := filepath.Abs(configPath)
	if err != nil {
		abs = configPath
	}
	fmt.Printf("Initialized sgn project, configuration written to %s\n", abs)
	return nil
}

func requireValue(what string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}
