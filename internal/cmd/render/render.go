// Package render provides the render command: it runs a content file
// through the full shortcode and markdown pipeline and writes HTML.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sitegen-cli/internal/config"
	"github.com/open-cli-collective/sitegen-cli/internal/content"
	"github.com/open-cli-collective/sitegen-cli/internal/pipeline"
	"github.com/open-cli-collective/sitegen-cli/internal/view"
	"github.com/open-cli-collective/sitegen-cli/pkg/shortcode"
)

type renderOptions struct {
	file       string
	configPath string
	stdout     bool
	drafts     bool
	output     string
	noColor    bool
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a content file to HTML",
		Long: `Render a content file: parse its front matter, expand markdown
shortcodes, convert the result to HTML, then expand HTML shortcodes.
The output lands in the configured output directory, named after the
page slug (or the source file name).`,
		Example: `  # Render a post into the output directory
  sgn render content/post.md

  # Print to stdout instead
  sgn render content/post.md --stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.file = args[0]
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runRender(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "print HTML to stdout instead of writing a file")
	cmd.Flags().BoolVar(&opts.drafts, "drafts", false, "render the file even when marked draft")

	return cmd
}

func runRender(opts *renderOptions) error {
	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w (run 'sgn init' to configure)", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w (run 'sgn init' to configure)", err)
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.file, err)
	}
	page, err := content.Parse(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", opts.file, err)
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)

	if page.Draft && !opts.drafts {
		renderer.RenderText(fmt.Sprintf("skipping draft %s (use --drafts to render)", opts.file))
		return nil
	}

	defs, err := loadDefinitions(cfg.ShortcodeDir)
	if err != nil {
		return err
	}
	p, err := pipeline.New(defs)
	if err != nil {
		return err
	}

	html, err := p.RenderContent(page.Body)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", opts.file, err)
	}

	if opts.stdout {
		fmt.Print(html)
		return nil
	}

	outPath := filepath.Join(cfg.OutputDir, outputName(opts.file, page))
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	renderer.Success(fmt.Sprintf("rendered %s -> %s", opts.file, outPath))
	return nil
}

// loadDefinitions tolerates a missing shortcode directory: a site without
// shortcodes is still renderable.
func loadDefinitions(dir string) (map[string]shortcode.Definition, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	return pipeline.LoadDefinitions(dir)
}

// outputName derives the output file name from the page slug, falling
// back to the source file name.
func outputName(file string, page *content.Page) string {
	if page.Slug != "" {
		return page.Slug + ".html"
	}
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
}
