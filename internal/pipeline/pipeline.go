// Package pipeline renders content through the shortcode and markdown
// passes, in order: markdown shortcodes (top-level, then embedded),
// markdown to HTML, HTML shortcodes (top-level, then embedded).
package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/open-cli-collective/sitegen-cli/pkg/shortcode"
)

// mdParser is a pre-configured goldmark instance with GFM table extension.
var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// Pipeline renders pages against a fixed shortcode definition set.
// It is safe for concurrent use across files.
type Pipeline struct {
	renderer *shortcode.Renderer
}

// New builds a pipeline from a definition set.
func New(defs map[string]shortcode.Definition) (*Pipeline, error) {
	renderer, err := shortcode.NewRenderer(defs)
	if err != nil {
		return nil, err
	}
	return &Pipeline{renderer: renderer}, nil
}

// RenderContent runs the full pass sequence over markdown content and
// returns HTML. Markdown-kind shortcodes expand before the markdown
// conversion. HTML-kind ones cannot ride through the converter in their
// own syntax (it escapes their quoted arguments), so the markdown pass
// leaves a marker for each and the descriptors are carried across; after
// the conversion their rendered output is spliced in at the markers.
func (p *Pipeline) RenderContent(markdown string) (string, error) {
	expanded, deferred, err := p.renderer.ExpandPass(markdown, shortcode.KindMarkdown)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(expanded), &buf); err != nil {
		return "", fmt.Errorf("markdown conversion: %w", err)
	}

	html, err := p.spliceDeferred(buf.String(), deferred)
	if err != nil {
		return "", err
	}

	return p.renderer.Expand(html, shortcode.KindHTML)
}

// spliceDeferred replaces each deferred directive's marker in the
// converted output with its rendered HTML. Markers appear in the same
// order as the directives they stand for, so each is searched for past
// the previous one; splicing then runs front to back, shifting the later
// marker spans as the string's length changes.
func (p *Pipeline) spliceDeferred(html string, deferred []shortcode.Deferred) (string, error) {
	if len(deferred) == 0 {
		return html, nil
	}

	spans := make([]shortcode.Span, len(deferred))
	search := 0
	for i, d := range deferred {
		idx := strings.Index(html[search:], d.Marker)
		if idx < 0 {
			return "", fmt.Errorf("shortcode %q was lost during markdown conversion", d.Directive.Name)
		}
		start := search + idx
		spans[i] = shortcode.Span{Start: start, End: start + len(d.Marker)}
		search = spans[i].End
	}

	for i, d := range deferred {
		rendered, err := p.renderer.RenderDeferred(d)
		if err != nil {
			return "", err
		}

		sp := spans[i]
		html = html[:sp.Start] + rendered + html[sp.End:]

		delta := len(rendered) - sp.Len()
		for j := i + 1; j < len(deferred); j++ {
			shifted, err := spans[j].Shift(delta)
			if err != nil {
				return "", fmt.Errorf("re-anchoring %q: %w", deferred[j].Directive.Name, err)
			}
			spans[j] = shifted
		}
	}
	return html, nil
}

// LoadDefinitions reads shortcode definitions from dir. Each `name.md` or
// `name.html` file becomes one definition; the extension decides the file
// kind. Other files are ignored.
func LoadDefinitions(dir string) (map[string]shortcode.Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read shortcode directory: %w", err)
	}

	defs := make(map[string]shortcode.Definition)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		var kind shortcode.FileKind
		switch filepath.Ext(entry.Name()) {
		case ".md":
			kind = shortcode.KindMarkdown
		case ".html":
			kind = shortcode.KindHTML
		default:
			continue
		}

		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read shortcode %q: %w", name, err)
		}

		if prev, ok := defs[name]; ok {
			return nil, fmt.Errorf("shortcode %q is defined as both %s and %s", name, prev.Kind, kind)
		}
		defs[name] = shortcode.Definition{
			Name:   name,
			Kind:   kind,
			Source: strings.TrimRight(string(data), "\n"),
		}
	}
	return defs, nil
}
