package parser

import (
	"math"
	"strings"

	"github.com/example/minjs/ast"
	"github.com/example/minjs/scanner"
)

func parsePrimary(src string) (ast.Expr, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, parseErrf("empty expression")
	}
	if expr, ok, err := tryRecognizers(src); err != nil {
		return nil, err
	} else if ok {
		return expr, nil
	}
	base, rest, err := readAtom(src)
	if err != nil {
		return nil, err
	}
	return parsePostfix(base, rest)
}

func readAtom(src string) (ast.Expr, string, error) {
	c := src[0]
	switch {
	case scanner.IsDigit(c) || (c == '.' && len(src) > 1 && scanner.IsDigit(src[1])):
		span, next := readNumericSpan(src, 0)
		lit, err := parseNumericLiteral(span)
		if err != nil {
			return nil, "", err
		}
		return lit, src[next:], nil
	case c == '\'' || c == '"':
		raw, next, err := scanner.ReadStringLiteral(src, 0)
		if err != nil {
			return nil, "", parseErrf("%s", err.Error())
		}
		return &ast.StringLit{Value: unescapeString(raw[1 : len(raw)-1])}, src[next:], nil
	case c == '`':
		raw, next, err := scanner.ReadStringLiteral(src, 0)
		if err != nil {
			return nil, "", parseErrf("%s", err.Error())
		}
		lit, terr := parseTemplateLiteral(raw)
		if terr != nil {
			return nil, "", terr
		}
		return lit, src[next:], nil
	case c == '(':
		inner, next, err := scanner.ReadBalancedBlock(src, 0, '(', ')')
		if err != nil {
			return nil, "", parseErrf("%s", err.Error())
		}
		expr, perr := ParseExpr(inner)
		if perr != nil {
			return nil, "", perr
		}
		return expr, src[next:], nil
	case c == '[':
		inner, next, err := scanner.ReadBalancedBlock(src, 0, '[', ']')
		if err != nil {
			return nil, "", parseErrf("%s", err.Error())
		}
		lit, perr := parseArrayLiteral(inner)
		if perr != nil {
			return nil, "", perr
		}
		return lit, src[next:], nil
	case c == '{':
		inner, next, err := scanner.ReadBalancedBlock(src, 0, '{', '}')
		if err != nil {
			return nil, "", parseErrf("%s", err.Error())
		}
		lit, perr := parseObjectLiteral(inner)
		if perr != nil {
			return nil, "", perr
		}
		return lit, src[next:], nil
	case scanner.IsIdentStart(c):
		ident, next := scanner.ReadIdentifier(src, 0)
		rest := src[next:]
		switch ident {
		case "true":
			return &ast.BoolLit{Value: true}, rest, nil
		case "false":
			return &ast.BoolLit{Value: false}, rest, nil
		case "null":
			return &ast.NullLit{}, rest, nil
		case "undefined":
			return &ast.UndefinedLit{}, rest, nil
		case "NaN":
			return &ast.FloatLit{Value: math.NaN()}, rest, nil
		case "Infinity":
			return &ast.FloatLit{Value: math.Inf(1)}, rest, nil
		}
		return &ast.VarExpr{Name: ident}, rest, nil
	}
	return nil, "", parseErrf("unrecognized expression %q", src)
}

// parsePostfix consumes a member/index/call chain after an atom.
func parsePostfix(base ast.Expr, rest string) (ast.Expr, error) {
	for {
		rest = strings.TrimSpace(rest)
		if rest == "" {
			return base, nil
		}
		switch rest[0] {
		case '.':
			prop, next := scanner.ReadIdentifier(rest, 1)
			if prop == "" {
				return nil, parseErrf("property name expected after '.' in %q", rest)
			}
			tail := strings.TrimSpace(rest[next:])
			if strings.HasPrefix(tail, "(") {
				inner, after, err := scanner.ReadBalancedBlock(tail, 0, '(', ')')
				if err != nil {
					return nil, parseErrf("%s", err.Error())
				}
				args, aerr := parseArgs(inner)
				if aerr != nil {
					return nil, aerr
				}
				base = &ast.MemberCall{Target: base, Method: prop, Args: args}
				rest = tail[after:]
				continue
			}
			base = &ast.MemberExpr{Target: base, Prop: prop}
			rest = rest[next:]
		case '[':
			inner, next, err := scanner.ReadBalancedBlock(rest, 0, '[', ']')
			if err != nil {
				return nil, parseErrf("%s", err.Error())
			}
			idx, perr := ParseExpr(inner)
			if perr != nil {
				return nil, perr
			}
			base = &ast.MemberExpr{Target: base, Index: idx}
			rest = rest[next:]
		case '(':
			inner, next, err := scanner.ReadBalancedBlock(rest, 0, '(', ')')
			if err != nil {
				return nil, parseErrf("%s", err.Error())
			}
			args, aerr := parseArgs(inner)
			if aerr != nil {
				return nil, aerr
			}
			if v, isVar := base.(*ast.VarExpr); isVar {
				base = &ast.FunctionCall{Name: v.Name, Args: args}
			} else {
				base = &ast.CallExpr{Callee: base, Args: args}
			}
			rest = rest[next:]
		default:
			return nil, parseErrf("unexpected %q after expression", rest)
		}
	}
}

// parseArgs parses a comma-separated argument list, expanding leading ... into
// SpreadExpr nodes.
func parseArgs(inner string) ([]ast.Expr, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return nil, nil
	}
	parts := scanner.SplitTop(inner, ',')
	args := make([]ast.Expr, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, parseErrf("empty argument in %q", inner)
		}
		if strings.HasPrefix(part, "...") {
			operand, err := ParseExpr(part[3:])
			if err != nil {
				return nil, err
			}
			args = append(args, &ast.SpreadExpr{Operand: operand})
			continue
		}
		arg, err := ParseExpr(part)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func parseArrayLiteral(inner string) (ast.Expr, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return &ast.ArrayLit{}, nil
	}
	parts := scanner.SplitTop(inner, ',')
	// a trailing comma leaves one empty tail part
	if len(parts) > 1 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	elems := make([]ast.Expr, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			elems = append(elems, &ast.UndefinedLit{}) // elision hole
			continue
		}
		if strings.HasPrefix(part, "...") {
			operand, err := ParseExpr(part[3:])
			if err != nil {
				return nil, err
			}
			elems = append(elems, &ast.SpreadExpr{Operand: operand})
			continue
		}
		elem, err := ParseExpr(part)
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
	return &ast.ArrayLit{Elems: elems}, nil
}

func parseObjectLiteral(inner string) (ast.Expr, error) {
	inner = strings.TrimSpace(inner)
	lit := &ast.ObjectLit{}
	if inner == "" {
		return lit, nil
	}
	parts := scanner.SplitTop(inner, ',')
	if len(parts) > 1 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, parseErrf("empty property in object literal %q", inner)
		}
		if strings.HasPrefix(part, "...") {
			operand, err := ParseExpr(part[3:])
			if err != nil {
				return nil, err
			}
			lit.Props = append(lit.Props, ast.ObjectProp{Spread: true, Value: operand})
			continue
		}
		prop, err := parseObjectProp(part)
		if err != nil {
			return nil, err
		}
		lit.Props = append(lit.Props, prop)
	}
	return lit, nil
}

func parseObjectProp(part string) (ast.ObjectProp, error) {
	mask := scanner.TopLevelMask(part)
	colon := -1
	for i := 0; i < len(part); i++ {
		if mask[i] && part[i] == ':' {
			colon = i
			break
		}
	}
	if colon < 0 {
		// shorthand { name }
		ident, next := scanner.ReadIdentifier(part, 0)
		if ident == "" || strings.TrimSpace(part[next:]) != "" {
			return ast.ObjectProp{}, parseErrf("unrecognized object property %q", part)
		}
		return ast.ObjectProp{Key: ident, Value: &ast.VarExpr{Name: ident}}, nil
	}
	keySrc := strings.TrimSpace(part[:colon])
	valSrc := strings.TrimSpace(part[colon+1:])
	if valSrc == "" {
		return ast.ObjectProp{}, parseErrf("missing value for property %q", keySrc)
	}
	val, err := ParseExpr(valSrc)
	if err != nil {
		return ast.ObjectProp{}, err
	}
	switch {
	case keySrc == "":
		return ast.ObjectProp{}, parseErrf("missing key in object property %q", part)
	case keySrc[0] == '[':
		inner, next, berr := scanner.ReadBalancedBlock(keySrc, 0, '[', ']')
		if berr != nil || strings.TrimSpace(keySrc[next:]) != "" {
			return ast.ObjectProp{}, parseErrf("malformed computed key %q", keySrc)
		}
		keyExpr, kerr := ParseExpr(inner)
		if kerr != nil {
			return ast.ObjectProp{}, kerr
		}
		return ast.ObjectProp{Computed: keyExpr, Value: val}, nil
	case keySrc[0] == '\'' || keySrc[0] == '"':
		raw, next, serr := scanner.ReadStringLiteral(keySrc, 0)
		if serr != nil || next != len(keySrc) {
			return ast.ObjectProp{}, parseErrf("malformed string key %q", keySrc)
		}
		return ast.ObjectProp{Key: unescapeString(raw[1 : len(raw)-1]), Value: val}, nil
	default:
		ident, next := scanner.ReadIdentifier(keySrc, 0)
		if ident != "" && next == len(keySrc) {
			return ast.ObjectProp{Key: ident, Value: val}, nil
		}
		if span, next := readNumericSpan(keySrc, 0); span != "" && next == len(keySrc) {
			return ast.ObjectProp{Key: span, Value: val}, nil
		}
		return ast.ObjectProp{}, parseErrf("unrecognized object key %q", keySrc)
	}
}
