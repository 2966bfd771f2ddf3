// Package content parses content files: optional YAML front matter
// delimited by `---` lines, followed by the page body.
package content

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

// Page is one parsed content file.
type Page struct {
	Title string         `yaml:"title"`
	Date  string         `yaml:"date,omitempty"`
	Slug  string         `yaml:"slug,omitempty"`
	Draft bool           `yaml:"draft,omitempty"`
	Extra map[string]any `yaml:",inline"`

	// Body is the raw content after the front matter, untouched by any
	// shortcode or markdown processing.
	Body string `yaml:"-"`
}

// Parse splits src into front matter and body. A file without a leading
// `---` line has no front matter and is all body.
func Parse(src string) (*Page, error) {
	rest, ok := strings.CutPrefix(src, frontMatterDelimiter+"\n")
	if !ok {
		// A bare "---" with no newline only happens on an empty file.
		if src == frontMatterDelimiter {
			return &Page{}, nil
		}
		return &Page{Body: src}, nil
	}

	meta, body, ok := cutFrontMatter(rest)
	if !ok {
		return nil, fmt.Errorf("front matter is not terminated by %q", frontMatterDelimiter)
	}

	var page Page
	if err := yaml.Unmarshal([]byte(meta), &page); err != nil {
		return nil, fmt.Errorf("failed to parse front matter: %w", err)
	}
	page.Body = body
	return &page, nil
}

// cutFrontMatter splits rest at the first line consisting of the
// delimiter alone.
func cutFrontMatter(rest string) (meta, body string, ok bool) {
	if rest == frontMatterDelimiter {
		return "", "", true
	}
	if after, found := strings.CutPrefix(rest, frontMatterDelimiter+"\n"); found {
		return "", after, true
	}
	if meta, found := strings.CutSuffix(rest, "\n"+frontMatterDelimiter); found {
		return meta, "", true
	}
	idx := strings.Index(rest, "\n"+frontMatterDelimiter+"\n")
	if idx < 0 {
		return "", "", false
	}
	return rest[:idx], rest[idx+len(frontMatterDelimiter)+2:], true
}

// Serialize renders the page back into front matter plus body, for
// commands that write content files.
func (p *Page) Serialize() (string, error) {
	meta, err := yaml.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal front matter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(frontMatterDelimiter)
	sb.WriteByte('\n')
	sb.Write(meta)
	sb.WriteString(frontMatterDelimiter)
	sb.WriteByte('\n')
	sb.WriteString(p.Body)
	return sb.String(), nil
}
