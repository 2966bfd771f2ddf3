// tag.go parses the inner tag between an opener and its closer:
// `name(key=literal, ...)`. Literals cover booleans, numbers, quoted
// strings and bracketed lists of literals.
package shortcode

import (
	"fmt"
	"strconv"
	"strings"
)

// parseInnerTag parses a shortcode tag starting at pos, positioned just
// after the opening delimiter. Returns the directive name, its arguments
// and the position immediately after the closing parenthesis, so the
// tokenizer can resume in closer mode from there.
func parseInnerTag(src string, pos int) (string, Args, int, error) {
	var args Args

	pos = skipTagSpace(src, pos)
	name, pos, err := parseIdent(src, pos)
	if err != nil {
		return "", args, pos, fmt.Errorf("directive name: %w", err)
	}

	pos = skipTagSpace(src, pos)
	if pos >= len(src) || src[pos] != '(' {
		return "", args, pos, fmt.Errorf("expected '(' after %q", name)
	}
	pos++

	for {
		pos = skipTagSpace(src, pos)
		if pos >= len(src) {
			return "", args, pos, fmt.Errorf("unclosed argument list for %q", name)
		}
		if src[pos] == ')' {
			return name, args, pos + 1, nil
		}

		key, next, err := parseIdent(src, pos)
		if err != nil {
			return "", args, pos, fmt.Errorf("argument name: %w", err)
		}
		pos = skipTagSpace(src, next)
		if pos >= len(src) || src[pos] != '=' {
			return "", args, pos, fmt.Errorf("expected '=' after argument %q", key)
		}
		pos = skipTagSpace(src, pos+1)

		value, next, err := parseLiteral(src, pos)
		if err != nil {
			return "", args, pos, fmt.Errorf("argument %q: %w", key, err)
		}
		args.Set(key, value)

		pos = skipTagSpace(src, next)
		if pos < len(src) && src[pos] == ',' {
			pos++
		}
	}
}

// parseIdent reads `[A-Za-z_][A-Za-z0-9_]*` at pos.
func parseIdent(src string, pos int) (string, int, error) {
	start := pos
	for pos < len(src) && isIdentChar(src[pos], pos == start) {
		pos++
	}
	if pos == start {
		return "", pos, fmt.Errorf("expected identifier")
	}
	return src[start:pos], pos, nil
}

func isIdentChar(b byte, first bool) bool {
	if (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' {
		return true
	}
	return !first && b >= '0' && b <= '9'
}

// parseLiteral reads one literal value at pos: `true`/`false`, a number
// (`-?digits[.digits]`), a quoted string, or a bracketed list.
func parseLiteral(src string, pos int) (ArgValue, int, error) {
	if pos >= len(src) {
		return ArgValue{}, pos, fmt.Errorf("unexpected end of input")
	}

	switch c := src[pos]; {
	case c == '"' || c == '\'':
		return parseQuoted(src, pos)
	case c == '[':
		return parseList(src, pos)
	case c == '-' || (c >= '0' && c <= '9'):
		return parseNumber(src, pos)
	case isIdentChar(c, true):
		word, next, _ := parseIdent(src, pos)
		switch word {
		case "true":
			return Boolean(true), next, nil
		case "false":
			return Boolean(false), next, nil
		}
		return ArgValue{}, pos, fmt.Errorf("unknown literal %q", word)
	}
	return ArgValue{}, pos, fmt.Errorf("unexpected character %q", src[pos])
}

// parseQuoted reads a string literal delimited by the quote at pos.
// A backslash escapes the active quote character or another backslash;
// any other backslash is kept literally.
func parseQuoted(src string, pos int) (ArgValue, int, error) {
	quote := src[pos]
	pos++

	var sb strings.Builder
	for pos < len(src) {
		switch src[pos] {
		case quote:
			return Text(sb.String()), pos + 1, nil
		case '\\':
			if pos+1 < len(src) && (src[pos+1] == quote || src[pos+1] == '\\') {
				sb.WriteByte(src[pos+1])
				pos += 2
				continue
			}
			sb.WriteByte('\\')
			pos++
		default:
			sb.WriteByte(src[pos])
			pos++
		}
	}
	return ArgValue{}, pos, fmt.Errorf("unclosed string literal")
}

func parseNumber(src string, pos int) (ArgValue, int, error) {
	start := pos
	if src[pos] == '-' {
		pos++
	}
	digits := 0
	for pos < len(src) && src[pos] >= '0' && src[pos] <= '9' {
		pos++
		digits++
	}
	if digits == 0 {
		return ArgValue{}, start, fmt.Errorf("malformed number")
	}
	if pos < len(src) && src[pos] == '.' {
		pos++
		frac := 0
		for pos < len(src) && src[pos] >= '0' && src[pos] <= '9' {
			pos++
			frac++
		}
		if frac == 0 {
			return ArgValue{}, start, fmt.Errorf("malformed number %q", src[start:pos])
		}
	}
	n, err := strconv.ParseFloat(src[start:pos], 64)
	if err != nil {
		return ArgValue{}, start, fmt.Errorf("malformed number %q", src[start:pos])
	}
	return Number(n), pos, nil
}

// parseList reads `[literal, literal, ...]` recursively. Nesting depth
// is unbounded; the list may be empty and may carry a trailing comma.
func parseList(src string, pos int) (ArgValue, int, error) {
	pos++ // skip '['
	var items []ArgValue

	for {
		pos = skipTagSpace(src, pos)
		if pos >= len(src) {
			return ArgValue{}, pos, fmt.Errorf("unclosed list literal")
		}
		if src[pos] == ']' {
			return List(items...), pos + 1, nil
		}

		item, next, err := parseLiteral(src, pos)
		if err != nil {
			return ArgValue{}, pos, err
		}
		items = append(items, item)

		pos = skipTagSpace(src, next)
		if pos < len(src) && src[pos] == ',' {
			pos++
		}
	}
}
