// tokenizer.go implements the two-stage lexer for shortcode delimiters.
//
// Stage one scans raw text left to right for the three opener classes:
// the end marker `{% end %}` (matched atomically, case-insensitive, with
// arbitrary tag whitespace), the body opener `{%` and the normal opener
// `{{`. Stage two runs only after the inner tag has been consumed and
// recognizes the matching closer, `%}` or `}}`, at the cursor.
package shortcode

type tokenKind int

const (
	tokenEndBlock   tokenKind = iota // {% end %}
	tokenBodyOpen                    // {% plus trailing tag whitespace
	tokenNormalOpen                  // {{ plus trailing tag whitespace
)

// token is one recognized opener with its byte range in the source.
// Opener spans include the whitespace consumed after the delimiter.
type token struct {
	kind tokenKind
	span Span
}

// isTagSpace reports whether b is whitespace inside shortcode delimiters.
// Matches space, tab, newline and form feed.
func isTagSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\f'
}

// skipTagSpace returns the first position at or after pos that is not
// tag whitespace.
func skipTagSpace(src string, pos int) int {
	for pos < len(src) && isTagSpace(src[pos]) {
		pos++
	}
	return pos
}

// nextOpener scans src from pos for the next opener token. Text that is
// not an opener is skipped silently, including lone '{' bytes with no
// recognized continuation. Returns ok=false when no opener remains.
func nextOpener(src string, pos int) (token, bool) {
	for pos < len(src) {
		if src[pos] != '{' {
			pos++
			continue
		}
		// The end marker shares the `{%` prefix and is checked first.
		if tok, ok := matchEndBlock(src, pos); ok {
			return tok, true
		}
		if pos+1 < len(src) {
			switch src[pos+1] {
			case '%':
				return token{kind: tokenBodyOpen, span: Span{Start: pos, End: skipTagSpace(src, pos + 2)}}, true
			case '{':
				return token{kind: tokenNormalOpen, span: Span{Start: pos, End: skipTagSpace(src, pos + 2)}}, true
			}
		}
		pos++
	}
	return token{}, false
}

// matchEndBlock attempts to match the atomic `{% end %}` token at pos.
func matchEndBlock(src string, pos int) (token, bool) {
	p := pos
	if p+2 > len(src) || src[p] != '{' || src[p+1] != '%' {
		return token{}, false
	}
	p = skipTagSpace(src, p+2)
	if p+3 > len(src) {
		return token{}, false
	}
	if lowerByte(src[p]) != 'e' || lowerByte(src[p+1]) != 'n' || lowerByte(src[p+2]) != 'd' {
		return token{}, false
	}
	p = skipTagSpace(src, p+3)
	if p+2 > len(src) || src[p] != '%' || src[p+1] != '}' {
		return token{}, false
	}
	return token{kind: tokenEndBlock, span: Span{Start: pos, End: p + 2}}, true
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

type closerKind int

const (
	closerBody   closerKind = iota // %}
	closerNormal                   // }}
)

// matchCloser recognizes optional tag whitespace followed by `%}` or `}}`
// at pos. Anything else is not a closer; the caller abandons the current
// directive attempt. The returned span covers the leading whitespace and
// the delimiter.
func matchCloser(src string, pos int) (closerKind, Span, bool) {
	p := skipTagSpace(src, pos)
	if p+2 > len(src) {
		return 0, Span{}, false
	}
	switch {
	case src[p] == '%' && src[p+1] == '}':
		return closerBody, Span{Start: pos, End: p + 2}, true
	case src[p] == '}' && src[p+1] == '}':
		return closerNormal, Span{Start: pos, End: p + 2}, true
	}
	return 0, Span{}, false
}
