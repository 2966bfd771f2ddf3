// Package locate provides the locate command: it scans a content file and
// prints the shortcodes found, without rendering anything.
package locate

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sitegen-cli/internal/content"
	"github.com/open-cli-collective/sitegen-cli/internal/view"
	"github.com/open-cli-collective/sitegen-cli/pkg/shortcode"
)

type locateOptions struct {
	file      string
	rewritten bool
	output    string
	noColor   bool
}

// NewCmdLocate creates the locate command.
func NewCmdLocate() *cobra.Command {
	opts := &locateOptions{}

	cmd := &cobra.Command{
		Use:   "locate <file>",
		Short: "List the shortcodes in a content file",
		Long: `Scan a content file and list every top-level shortcode with its
arguments, its placeholder span in the rewritten text, and a preview of
its body. Shortcodes embedded inside another shortcode's body are not
listed; they belong to the embedded pass.`,
		Example: `  # List shortcodes in a post
  sgn locate content/post.md

  # As JSON
  sgn locate content/post.md -o json

  # Print the rewritten text instead
  sgn locate content/post.md --rewritten`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.file = args[0]
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runLocate(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.rewritten, "rewritten", false, "print the placeholder-rewritten text")

	return cmd
}

func runLocate(opts *locateOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.file, err)
	}

	page, err := content.Parse(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", opts.file, err)
	}

	rewritten, dirs := shortcode.Locate(page.Body)
	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)

	if opts.rewritten {
		renderer.RenderText(rewritten)
		return nil
	}

	if view.Format(opts.output) == view.FormatJSON {
		return renderer.RenderJSON(directiveList(dirs))
	}

	headers := []string{"NAME", "ARGS", "SPAN", "BODY"}
	rows := make([][]string, 0, len(dirs))
	for _, d := range dirs {
		rows = append(rows, []string{
			d.Name,
			formatArgs(d.Args),
			fmt.Sprintf("[%d, %d)", d.Span.Start, d.Span.End),
			formatBody(d.Body),
		})
	}
	renderer.RenderTable(headers, rows)
	return nil
}

type directiveSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type directiveEntry struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
	Span directiveSpan  `json:"span"`
	Body *string        `json:"body,omitempty"`
}

// directiveList converts descriptors into the JSON output shape, with
// typed argument values and the placeholder span as an object.
func directiveList(dirs []shortcode.Directive) []directiveEntry {
	entries := make([]directiveEntry, 0, len(dirs))
	for _, d := range dirs {
		entries = append(entries, directiveEntry{
			Name: d.Name,
			Args: d.Args.Interface(),
			Span: directiveSpan{Start: d.Span.Start, End: d.Span.End},
			Body: d.Body,
		})
	}
	return entries
}

func formatArgs(args shortcode.Args) string {
	if args.Len() == 0 {
		return "-"
	}
	parts := make([]string, 0, args.Len())
	for _, key := range args.Keys() {
		v, _ := args.Get(key)
		parts = append(parts, fmt.Sprintf("%s=%v", key, v.Interface()))
	}
	return strings.Join(parts, " ")
}

func formatBody(body *string) string {
	if body == nil {
		return "-"
	}
	preview := strings.ReplaceAll(*body, "\n", " ")
	return view.Truncate(strings.TrimSpace(preview), 40)
}
