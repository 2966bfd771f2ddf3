// Package importcmd provides the import command: it converts an existing
// HTML page into a markdown content file with front matter.
package importcmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sitegen-cli/internal/content"
	"github.com/open-cli-collective/sitegen-cli/internal/view"
)

type importOptions struct {
	file    string
	title   string
	dest    string
	output  string
	noColor bool
}

// NewCmdImport creates the import command.
func NewCmdImport() *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import <file.html>",
		Short: "Import an HTML page as a markdown content file",
		Long: `Convert an existing HTML page to markdown and wrap it in front
matter, ready for the content directory. The page title is taken from
the first <title> or <h1> element unless --title is given.`,
		Example: `  # Import a legacy page
  sgn import old-site/about.html --dest content/about.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.file = args[0]
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runImport(opts)
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "page title for the front matter")
	cmd.Flags().StringVar(&opts.dest, "dest", "", "destination file (default: alongside the source, .md)")

	return cmd
}

func runImport(opts *importOptions) error {
	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.file, err)
	}
	html := string(data)

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", opts.file, err)
	}

	title := opts.title
	if title == "" {
		title = extractTitle(html)
	}

	page := &content.Page{
		Title: title,
		Body:  strings.TrimSpace(markdown) + "\n",
	}
	out, err := page.Serialize()
	if err != nil {
		return err
	}

	dest := opts.dest
	if dest == "" {
		base := filepath.Base(opts.file)
		dest = strings.TrimSuffix(base, filepath.Ext(base)) + ".md"
	}
	if err := os.WriteFile(dest, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.Success(fmt.Sprintf("imported %s -> %s", opts.file, dest))
	return nil
}

var (
	titleRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	h1Re    = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
	tagRe   = regexp.MustCompile(`<[^>]*>`)
)

// extractTitle pulls a title from the first <title> or <h1> element.
func extractTitle(html string) string {
	for _, re := range []*regexp.Regexp{titleRe, h1Re} {
		if m := re.FindStringSubmatch(html); m != nil {
			return strings.TrimSpace(tagRe.ReplaceAllString(m[1], ""))
		}
	}
	return ""
}
