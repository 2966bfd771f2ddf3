// Package shortcode locates shortcodes in source text and rewrites each
// occurrence into a fixed-width placeholder, handing back ordered
// descriptors for a rendering pass to substitute.
//
// Two delimiter styles are recognized: self-closing `{{ name(args) }}`
// and body-carrying `{% name(args) %} ... {% end %}`.
package shortcode

import "strings"

// Placeholder is the literal token substituted for every located
// shortcode in the rewritten string. It is a single fixed-width string,
// so later offset math never needs to re-measure, and it contains no
// characters that a Markdown renderer would reinterpret.
const Placeholder = "SGNSHORTCODE"

// Directive is one located top-level shortcode occurrence.
type Directive struct {
	Name string
	Args Args

	// Span locates this directive's placeholder in the rewritten string
	// returned by Locate. Its width always equals len(Placeholder).
	Span Span

	// Body is the verbatim source text between a body-carrying
	// directive's opening tag and its `{% end %}` marker, delimiters
	// excluded. It is not rewritten and may contain further, unparsed
	// shortcode syntax; run Locate on it to find embedded shortcodes.
	// Nil for self-closing directives.
	Body *string
}

// frame tracks one open body-carrying directive during a scan.
type frame struct {
	name        string
	args        Args
	placeholder Span // where the placeholder was written in the output
	bodyStart   int  // source offset just past the opening tag's closer
}

// Locate finds every top-level shortcode in source and returns the source
// rewritten with each occurrence replaced by Placeholder, plus the located
// directives in the order their placeholders appear in the output (which
// is the order their opening tags appeared in the source).
//
// Locate is total: malformed input never fails, it degrades. Openers with
// unparsable tags or mismatched closer styles stay literal text, spurious
// end markers stay literal text, and shortcodes embedded inside another
// shortcode's body are left as raw text inside the captured body rather
// than located in this pass.
//
// An unterminated body-carrying directive is dropped without a descriptor;
// its placeholder, written when the opening tag was parsed, remains in the
// output with its body following as literal text. Callers that care can
// detect this by comparing descriptor count against placeholder count.
func Locate(source string) (string, []Directive) {
	var (
		out    strings.Builder
		dirs   []Directive
		stack  []frame
		copied int // source bytes already accounted for in out
		pos    int // scan position
	)

	for {
		tok, ok := nextOpener(source, pos)
		if !ok {
			break
		}

		switch {
		case tok.kind == tokenEndBlock:
			if len(stack) == 0 {
				// Spurious end marker: leave it as literal text.
				pos = tok.span.End
				continue
			}
			fr := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			body := source[fr.bodyStart:tok.span.Start]
			dirs = append(dirs, Directive{
				Name: fr.name,
				Args: fr.args,
				Span: fr.placeholder,
				Body: &body,
			})
			copied = tok.span.End
			pos = tok.span.End

		case len(stack) > 0:
			// Inside an active body: openers are opaque and will be
			// swept into the enclosing body's verbatim capture.
			pos = tok.span.End

		default:
			name, args, rest, err := parseInnerTag(source, tok.span.End)
			if err != nil {
				// Resume just past the opener; its text stays literal.
				pos = tok.span.End
				continue
			}
			closer, cspan, ok := matchCloser(source, rest)
			if !ok || !closerMatches(tok.kind, closer) {
				pos = tok.span.End
				continue
			}

			out.WriteString(source[copied:tok.span.Start])
			ph := Span{Start: out.Len(), End: out.Len() + len(Placeholder)}
			out.WriteString(Placeholder)

			if tok.kind == tokenNormalOpen {
				dirs = append(dirs, Directive{Name: name, Args: args, Span: ph})
			} else {
				stack = append(stack, frame{
					name:        name,
					args:        args,
					placeholder: ph,
					bodyStart:   cspan.End,
				})
			}
			copied = cspan.End
			pos = cspan.End
		}
	}

	out.WriteString(source[copied:])
	return out.String(), dirs
}

// closerMatches reports whether the closer style agrees with the opener:
// `{{` pairs with `}}` and `{%` with `%}`.
func closerMatches(open tokenKind, close closerKind) bool {
	switch open {
	case tokenNormalOpen:
		return close == closerNormal
	case tokenBodyOpen:
		return close == closerBody
	}
	return false
}
