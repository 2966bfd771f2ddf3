// insert.go implements the rendering pass that consumes Locate's output:
// it resolves each directive against a definition, renders the definition
// template with the directive's arguments and body, and splices the result
// over the placeholder, re-anchoring the remaining spans as it goes.
package shortcode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

// FileKind tells the rendering pass which kind of content a definition
// produces, and therefore in which pipeline pass it should be expanded.
// The locating engine itself never inspects it.
type FileKind int

const (
	KindMarkdown FileKind = iota
	KindHTML
)

func (k FileKind) String() string {
	if k == KindHTML {
		return "html"
	}
	return "markdown"
}

// Definition is one named shortcode definition: a template body and the
// kind of output it produces.
type Definition struct {
	Name   string
	Kind   FileKind
	Source string
}

// ErrUndefined is returned when a located directive has no definition.
// This is the one hard failure of the rendering pass; the locating engine
// itself cannot detect it.
var ErrUndefined = errors.New("shortcode is not defined")

// Renderer expands located shortcodes against a definition set. It holds
// no mutable state across calls and is safe for concurrent use once built.
type Renderer struct {
	defs  map[string]Definition
	tmpls map[string]*template.Template
}

// NewRenderer compiles the definition templates and returns a Renderer.
func NewRenderer(defs map[string]Definition) (*Renderer, error) {
	r := &Renderer{
		defs:  defs,
		tmpls: make(map[string]*template.Template, len(defs)),
	}
	for name, def := range defs {
		tmpl, err := template.New(name).Parse(def.Source)
		if err != nil {
			return nil, fmt.Errorf("shortcode %q: %w", name, err)
		}
		r.tmpls[name] = tmpl
	}
	return r, nil
}

// deferMarker builds the unique token left in a pass's output for a
// directive whose definition belongs to the other file kind. The format
// survives a markdown conversion unmangled (no markdown-active or
// HTML-escapable characters), unlike the directive's own syntax, whose
// quoted string arguments a converter would escape.
const (
	deferMarkerPrefix = "SGNDEFER"
	deferMarkerSuffix = "END"
)

func deferMarker(i int) string {
	return fmt.Sprintf("%s%d%s", deferMarkerPrefix, i, deferMarkerSuffix)
}

// Deferred is a directive that was located during one pass but belongs to
// the other file kind. Its marker stands in its place in the pass output;
// the later pass finds the marker and splices the rendered directive in.
type Deferred struct {
	Directive Directive
	Marker    string
}

// ExpandPass locates every top-level shortcode in content and substitutes
// the rendered output of those whose definition matches kind. Directives
// with a captured body are expanded embedded-first: the body goes through
// its own pass before it is handed to the template, so shortcodes that
// were opaque during the outer scan are resolved now.
//
// Directives whose definition belongs to the other file kind are not
// rendered; each leaves a unique marker in the output and is returned as
// a Deferred, in output order, for the caller to splice after converting
// the surrounding content.
//
// Substitution works front to back over the rewritten string; after each
// splice the remaining descriptors are re-anchored with UpdateOnEdit, so
// their spans stay valid as splices change the string's length.
func (r *Renderer) ExpandPass(content string, kind FileKind) (string, []Deferred, error) {
	rewritten, dirs := Locate(content)

	var deferred []Deferred
	out := rewritten
	for i := range dirs {
		d := dirs[i]

		def, ok := r.defs[d.Name]
		if !ok {
			return "", nil, fmt.Errorf("%q: %w", d.Name, ErrUndefined)
		}

		var text string
		if def.Kind != kind {
			text = deferMarker(len(deferred))
			deferred = append(deferred, Deferred{Directive: d, Marker: text})
		} else {
			rendered, err := r.render(d, kind)
			if err != nil {
				return "", nil, err
			}
			text = rendered
		}

		out = out[:d.Span.Start] + text + out[d.Span.End:]

		for j := i + 1; j < len(dirs); j++ {
			if err := dirs[j].UpdateOnEdit(d.Span.Start, d.Span.Len(), len(text)); err != nil {
				return "", nil, fmt.Errorf("re-anchoring %q: %w", dirs[j].Name, err)
			}
		}
	}
	return out, deferred, nil
}

// RenderDeferred renders a deferred directive for the pass matching its
// definition's kind. The caller splices the result over the marker.
func (r *Renderer) RenderDeferred(d Deferred) (string, error) {
	def := r.defs[d.Directive.Name]
	return r.render(d.Directive, def.Kind)
}

// Expand is the single-pass form of ExpandPass: directives of the other
// file kind are re-serialized into their original syntax in place of
// their markers, so a caller that will re-scan the text later sees them
// unchanged. Callers that convert the text in between (where the syntax
// would not survive intact) should use ExpandPass and splice the
// deferred directives themselves.
func (r *Renderer) Expand(content string, kind FileKind) (string, error) {
	out, deferred, err := r.ExpandPass(content, kind)
	if err != nil {
		return "", err
	}
	for _, d := range deferred {
		out = strings.Replace(out, d.Marker, reserialize(d.Directive), 1)
	}
	return out, nil
}

func (r *Renderer) render(d Directive, kind FileKind) (string, error) {
	body := ""
	if d.Body != nil {
		expanded, err := r.Expand(*d.Body, kind)
		if err != nil {
			return "", err
		}
		body = expanded
	}

	data := d.Args.Interface()
	data["body"] = body

	var sb strings.Builder
	if err := r.tmpls[d.Name].Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering %q: %w", d.Name, err)
	}
	return sb.String(), nil
}

// reserialize rebuilds a directive's original syntax from its descriptor,
// for directives that must survive into a later pass. Argument order is
// the tag's original insertion order.
func reserialize(d Directive) string {
	var sb strings.Builder
	if d.Body != nil {
		sb.WriteString("{% ")
	} else {
		sb.WriteString("{{ ")
	}
	sb.WriteString(d.Name)
	sb.WriteByte('(')
	for i, key := range d.Args.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		v, _ := d.Args.Get(key)
		sb.WriteString(key)
		sb.WriteByte('=')
		writeLiteral(&sb, v)
	}
	sb.WriteByte(')')
	if d.Body != nil {
		sb.WriteString(" %}")
		sb.WriteString(*d.Body)
		sb.WriteString("{% end %}")
	} else {
		sb.WriteString(" }}")
	}
	return sb.String()
}

func writeLiteral(sb *strings.Builder, v ArgValue) {
	switch v.Kind {
	case ArgBoolean:
		sb.WriteString(strconv.FormatBool(v.Boolean))
	case ArgNumber:
		sb.WriteString(strconv.FormatFloat(v.Number, 'f', -1, 64))
	case ArgText:
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(strings.ReplaceAll(v.Text, `\`, `\\`), `"`, `\"`))
		sb.WriteByte('"')
	case ArgList:
		sb.WriteByte('[')
		for i, e := range v.List {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeLiteral(sb, e)
		}
		sb.WriteByte(']')
	}
}
