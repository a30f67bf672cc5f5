// Package scanner classifies byte positions of raw source text as top-level or
// inside a string/template/comment/regex span, and provides the primitive reads
// (identifiers, string literals, balanced blocks) the expression parser is built
// on. It is the reason the parser can work on string slices instead of a token
// stream: every operator-splitting routine above it only splits at positions the
// scanner reports as top-level.
package scanner

import (
	"fmt"
	"strings"
)

type state int

const (
	stTop state = iota
	stSingle
	stDouble
	stTemplate
	stLineComment
	stBlockComment
	stRegex
	stRegexClass // inside [...] of a regex, where / does not terminate
)

// IsIdentStart reports whether c can begin an identifier.
func IsIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsIdentPart reports whether c can continue an identifier.
func IsIdentPart(c byte) bool {
	return IsIdentStart(c) || (c >= '0' && c <= '9')
}

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit(c byte) bool { return c >= '0' && c <= '9' }

// regexCanFollow reports whether a / after the given significant byte starts a
// regex literal rather than division. A / after a value-ending byte (identifier
// tail, digit, closing bracket, quote) is division; anywhere else it opens a
// regex.
func regexCanFollow(prev byte) bool {
	if prev == 0 {
		return true
	}
	if IsIdentPart(prev) {
		return false
	}
	switch prev {
	case ')', ']', '}', '"', '\'', '`', '.':
		return false
	}
	return true
}

// TopLevelMask returns, for each byte of src, whether that position is
// top-level: outside every string/template/comment/regex span and at bracket
// depth zero. Template `${...}` interpolations are still non-top-level because
// they sit inside the enclosing template span.
func TopLevelMask(src string) []bool {
	mask := make([]bool, len(src))
	st := stTop
	depth := 0
	var prev byte // last significant byte seen at top level
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch st {
		case stTop:
			switch {
			case c == '\'':
				st = stSingle
			case c == '"':
				st = stDouble
			case c == '`':
				st = stTemplate
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				st = stLineComment
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				st = stBlockComment
			case c == '/' && regexCanFollow(prev):
				st = stRegex
			case c == '(' || c == '[' || c == '{':
				mask[i] = depth == 0
				depth++
				prev = c
				continue
			case c == ')' || c == ']' || c == '}':
				depth--
				mask[i] = depth == 0
				prev = c
				continue
			default:
				mask[i] = depth == 0
				if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
					prev = c
				}
				continue
			}
			// span openers are not top-level; prev is left alone so that
			// context survives comments unchanged
		case stSingle:
			if c == '\\' {
				i++
			} else if c == '\'' {
				st = stTop
				prev = '\''
			}
		case stDouble:
			if c == '\\' {
				i++
			} else if c == '"' {
				st = stTop
				prev = '"'
			}
		case stTemplate:
			if c == '\\' {
				i++
			} else if c == '`' {
				st = stTop
				prev = '`'
			}
		case stLineComment:
			if c == '\n' {
				st = stTop
			}
		case stBlockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				i++
				st = stTop
			}
		case stRegex:
			if c == '\\' {
				i++
			} else if c == '[' {
				st = stRegexClass
			} else if c == '/' {
				st = stTop
				prev = ')' // a closed regex ends a value
			}
		case stRegexClass:
			if c == '\\' {
				i++
			} else if c == ']' {
				st = stRegex
			}
		}
	}
	return mask
}

// ReadIdentifier reads an identifier starting at i. Returns the identifier and
// the index just past it; the identifier is empty when src[i] cannot start one.
func ReadIdentifier(src string, i int) (string, int) {
	if i >= len(src) || !IsIdentStart(src[i]) {
		return "", i
	}
	j := i + 1
	for j < len(src) && IsIdentPart(src[j]) {
		j++
	}
	return src[i:j], j
}

// ReadStringLiteral reads a quoted literal (', " or `) starting at i and
// returns the raw text including quotes plus the index just past the closing
// quote. Fails on an unterminated literal.
func ReadStringLiteral(src string, i int) (string, int, error) {
	if i >= len(src) {
		return "", i, fmt.Errorf("string literal expected at end of input")
	}
	quote := src[i]
	if quote != '\'' && quote != '"' && quote != '`' {
		return "", i, fmt.Errorf("string literal expected at %q", src[i:])
	}
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return src[i : j+1], j + 1, nil
		}
	}
	return "", i, fmt.Errorf("unterminated string literal %q", src[i:])
}

// ReadBalancedBlock reads from an opening bracket at i to its matching close,
// skipping strings and comments, and returns the inner text plus the index just
// past the closing bracket. Unterminated brackets are an error.
func ReadBalancedBlock(src string, i int, open, close byte) (string, int, error) {
	if i >= len(src) || src[i] != open {
		return "", i, fmt.Errorf("expected %q at %q", string(open), src[i:])
	}
	depth := 0
	for j := i; j < len(src); j++ {
		c := src[j]
		switch c {
		case '\'', '"', '`':
			_, next, err := ReadStringLiteral(src, j)
			if err != nil {
				return "", i, err
			}
			j = next - 1
		case '/':
			if j+1 < len(src) && src[j+1] == '/' {
				for j < len(src) && src[j] != '\n' {
					j++
				}
			} else if j+1 < len(src) && src[j+1] == '*' {
				end := strings.Index(src[j+2:], "*/")
				if end < 0 {
					return "", i, fmt.Errorf("unterminated comment in block %q", src[i:])
				}
				j += 2 + end + 1
			}
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return src[i+1 : j], j + 1, nil
			}
		}
	}
	return "", i, fmt.Errorf("unterminated %q block in %q", string(open), src[i:])
}

// StripComments removes // and /* */ comments in a single pass, leaving string
// and template contents untouched. Applied before isolating a callback's source
// so braces and semicolons inside comments cannot corrupt balanced-block
// extraction.
func StripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	st := stTop
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch st {
		case stTop:
			switch {
			case c == '\'':
				st = stSingle
				b.WriteByte(c)
			case c == '"':
				st = stDouble
				b.WriteByte(c)
			case c == '`':
				st = stTemplate
				b.WriteByte(c)
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				st = stLineComment
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				st = stBlockComment
				i++
			default:
				b.WriteByte(c)
			}
		case stSingle:
			b.WriteByte(c)
			if c == '\\' && i+1 < len(src) {
				i++
				b.WriteByte(src[i])
			} else if c == '\'' {
				st = stTop
			}
		case stDouble:
			b.WriteByte(c)
			if c == '\\' && i+1 < len(src) {
				i++
				b.WriteByte(src[i])
			} else if c == '"' {
				st = stTop
			}
		case stTemplate:
			b.WriteByte(c)
			if c == '\\' && i+1 < len(src) {
				i++
				b.WriteByte(src[i])
			} else if c == '`' {
				st = stTop
			}
		case stLineComment:
			if c == '\n' {
				st = stTop
				b.WriteByte(c)
			}
		case stBlockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				i++
				st = stTop
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

// SplitTop splits src on a separator byte at top-level positions only.
func SplitTop(src string, sep byte) []string {
	mask := TopLevelMask(src)
	var parts []string
	start := 0
	for i := 0; i < len(src); i++ {
		if src[i] == sep && mask[i] {
			parts = append(parts, src[start:i])
			start = i + 1
		}
	}
	parts = append(parts, src[start:])
	return parts
}

// IndexTop returns the first top-level occurrence of sub in src, or -1.
func IndexTop(src, sub string) int {
	if sub == "" {
		return -1
	}
	mask := TopLevelMask(src)
	for i := 0; i+len(sub) <= len(src); i++ {
		if mask[i] && src[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
