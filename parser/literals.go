package parser

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/example/minjs/ast"
	"github.com/example/minjs/scanner"
)

// readNumericSpan reads the maximal numeric-literal span starting at i:
// digits, radix prefixes, decimal point, exponent (with sign), bigint suffix.
func readNumericSpan(src string, i int) (string, int) {
	j := i
	for j < len(src) {
		c := src[j]
		switch {
		case scanner.IsDigit(c), c == '.', c == 'n':
			j++
		case c == 'x' || c == 'X' || c == 'o' || c == 'O' || c == 'b' || c == 'B':
			j++
		case (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F'):
			j++
		case (c == '+' || c == '-') && j > i && (src[j-1] == 'e' || src[j-1] == 'E'):
			j++
		default:
			return src[i:j], j
		}
	}
	return src[i:j], j
}

// parseNumericLiteral converts a full numeric-literal span into a NumberLit,
// FloatLit or BigIntLit. Number vs Float is decided here, at parse time. A
// literal that would overflow to a non-finite float is rejected as malformed
// rather than becoming runtime Infinity.
func parseNumericLiteral(s string) (ast.Expr, error) {
	if s == "" {
		return nil, parseErrf("empty numeric literal")
	}
	if strings.HasSuffix(s, "n") {
		return parseBigIntLiteral(s[:len(s)-1])
	}
	if radix, body, ok := radixSplit(s); ok {
		u, err := strconv.ParseUint(body, radix, 64)
		if err != nil {
			if ne, isNum := err.(*strconv.NumError); isNum && ne.Err == strconv.ErrRange {
				f, _ := new(big.Float).SetInt(mustBigInt(body, radix)).Float64()
				if math.IsInf(f, 0) {
					return nil, parseErrf("numeric literal %q out of range", s)
				}
				return &ast.FloatLit{Value: f}, nil
			}
			return nil, parseErrf("invalid numeric literal %q", s)
		}
		if u <= math.MaxInt64 {
			return &ast.NumberLit{Value: int64(u)}, nil
		}
		return &ast.FloatLit{Value: float64(u)}, nil
	}
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, parseErrf("invalid numeric literal %q", s)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, parseErrf("numeric literal %q out of range", s)
		}
		return &ast.FloatLit{Value: f}, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if ne, isNum := err.(*strconv.NumError); isNum && ne.Err == strconv.ErrRange {
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr != nil || math.IsInf(f, 0) {
				return nil, parseErrf("numeric literal %q out of range", s)
			}
			return &ast.FloatLit{Value: f}, nil
		}
		return nil, parseErrf("invalid numeric literal %q", s)
	}
	return &ast.NumberLit{Value: n}, nil
}

func radixSplit(s string) (int, string, bool) {
	if len(s) < 3 || s[0] != '0' {
		return 0, "", false
	}
	switch s[1] {
	case 'x', 'X':
		return 16, s[2:], true
	case 'o', 'O':
		return 8, s[2:], true
	case 'b', 'B':
		return 2, s[2:], true
	}
	return 0, "", false
}

func mustBigInt(body string, radix int) *big.Int {
	n := new(big.Int)
	n.SetString(body, radix)
	return n
}

// parseBigIntLiteral parses the body of a BigInt literal (suffix already
// removed). Decimal bodies reject leading zeros; radix-prefixed bodies are
// allowed.
func parseBigIntLiteral(body string) (ast.Expr, error) {
	if body == "" {
		return nil, parseErrf("empty bigint literal")
	}
	if radix, digits, ok := radixSplit(body); ok {
		n, valid := new(big.Int).SetString(digits, radix)
		if !valid {
			return nil, parseErrf("invalid bigint literal %qn", body)
		}
		return &ast.BigIntLit{Value: n}, nil
	}
	if len(body) > 1 && body[0] == '0' {
		return nil, parseErrf("bigint literal %qn may not have a leading zero", body)
	}
	n, valid := new(big.Int).SetString(body, 10)
	if !valid {
		return nil, parseErrf("invalid bigint literal %qn", body)
	}
	return &ast.BigIntLit{Value: n}, nil
}

// unescapeString decodes the escapes of a quoted literal body.
func unescapeString(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case 'x':
			if i+2 < len(s) {
				if n, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
					b.WriteRune(rune(n))
					i += 2
					continue
				}
			}
			b.WriteByte('x')
		case 'u':
			if i+4 < len(s) {
				if n, err := strconv.ParseUint(s[i+1:i+5], 16, 32); err == nil {
					b.WriteRune(rune(n))
					i += 4
					continue
				}
			}
			b.WriteByte('u')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// parseTemplateLiteral expands a full-span template literal. Interpolation
// spans are located by brace-depth tracking (escaped \$ is ignored) and parsed
// recursively; the result is an AddExpr of interleaved string segments and
// sub-expressions, collapsed to a plain StringLit when nothing is interpolated.
func parseTemplateLiteral(src string) (ast.Expr, error) {
	raw, next, err := scanner.ReadStringLiteral(src, 0)
	if err != nil || next != len(src) {
		return nil, parseErrf("malformed template literal %q", src)
	}
	body := raw[1 : len(raw)-1]
	var operands []ast.Expr
	var seg strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) {
			if body[i+1] == '$' {
				seg.WriteByte('$')
				i++
				continue
			}
			seg.WriteByte(c)
			i++
			seg.WriteByte(body[i])
			continue
		}
		if c == '$' && i+1 < len(body) && body[i+1] == '{' {
			inner, after, berr := scanner.ReadBalancedBlock(body, i+1, '{', '}')
			if berr != nil {
				return nil, parseErrf("unterminated interpolation in template %q", src)
			}
			operands = append(operands, &ast.StringLit{Value: unescapeString(seg.String())})
			seg.Reset()
			sub, perr := ParseExpr(inner)
			if perr != nil {
				return nil, perr
			}
			operands = append(operands, sub)
			i = after - 1
			continue
		}
		seg.WriteByte(c)
	}
	tail := unescapeString(seg.String())
	if len(operands) == 0 {
		return &ast.StringLit{Value: tail}, nil
	}
	operands = append(operands, &ast.StringLit{Value: tail})
	return &ast.AddExpr{Operands: operands}, nil
}
