// Package parser converts one expression's source substring into an ast.Expr.
// It is a precedence ladder operating directly on string slices: each level
// scans for its operators only at scanner-reported top-level positions, so
// splitting can never happen inside a string, template, comment or regex span.
// Ambiguous constructs (regex literals, new-forms, builtin namespace calls) are
// tried first by a chain of shape recognizers; see recognizers.go.
package parser

import (
	"fmt"
	"strings"

	"github.com/example/minjs/ast"
	"github.com/example/minjs/scanner"
)

// ParseError is the malformed-source error kind. It is always surfaced and
// never recovered.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return "ScriptParse: " + e.Msg }

func parseErrf(format string, args ...interface{}) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// ParseExpr parses a trimmed, single-expression substring into an Expr.
func ParseExpr(src string) (ast.Expr, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, parseErrf("empty expression")
	}
	if expr, ok, err := tryRecognizers(src); err != nil {
		return nil, err
	} else if ok {
		return expr, nil
	}
	return parseComma(src)
}

// ---------- operator scanning ----------

// operator tokens longest-first, so a scan can never mistake a prefix of a
// longer operator for a shorter one.
var opTokens = []string{
	"===", "!==", ">>>",
	"**", "&&", "||", "??", "<<", ">>", "<=", ">=", "==", "!=", "=>", "?.",
	"+", "-", "*", "/", "%", "<", ">", "&", "|", "^",
}

var keywordOps = []string{"instanceof", "in"}

type opHit struct {
	pos int
	op  string
}

// valueEnd reports whether prev (the last significant byte before an operator
// candidate) ends a value, which is what makes + and - binary rather than unary.
func valueEnd(prev byte) bool {
	return scanner.IsIdentPart(prev) || prev == ')' || prev == ']' || prev == '}' ||
		prev == '\'' || prev == '"' || prev == '`'
}

// scanOps returns top-level occurrences of the operators in level, left to
// right. Longer operators at the same position always win, keyword operators
// must sit on identifier boundaries, and +/- are skipped in unary positions and
// inside float exponents.
func scanOps(src string, level map[string]bool) []opHit {
	mask := scanner.TopLevelMask(src)
	var hits []opHit
	var prev byte
	for i := 0; i < len(src); {
		c := src[i]
		if !mask[i] {
			// quotes survive into prev so that a closed string literal counts
			// as a value end ('a'+1 must still split on +)
			if c == '\'' || c == '"' || c == '`' {
				prev = c
			}
			i++
			continue
		}
		if scanner.IsIdentStart(c) {
			ident, next := scanner.ReadIdentifier(src, i)
			for _, kw := range keywordOps {
				if ident == kw && level[kw] {
					hits = append(hits, opHit{pos: i, op: kw})
				}
			}
			prev = src[next-1]
			i = next
			continue
		}
		matched := ""
		for _, op := range opTokens {
			if strings.HasPrefix(src[i:], op) {
				matched = op
				break
			}
		}
		if matched == "" {
			if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
				prev = c
			}
			i++
			continue
		}
		if matched == "+" || matched == "-" {
			if !valueEnd(prev) {
				prev = c
				i++
				continue
			}
			// 1e+5: the sign belongs to the exponent, not the expression
			if (prev == 'e' || prev == 'E') && i >= 2 && scanner.IsDigit(src[i-2]) {
				prev = c
				i++
				continue
			}
		}
		if level[matched] {
			hits = append(hits, opHit{pos: i, op: matched})
		}
		prev = matched[len(matched)-1]
		i += len(matched)
	}
	return hits
}

func levelSet(ops ...string) map[string]bool {
	m := make(map[string]bool, len(ops))
	for _, op := range ops {
		m[op] = true
	}
	return m
}

var (
	lvlOr         = levelSet("||")
	lvlNullish    = levelSet("??")
	lvlAnd        = levelSet("&&")
	lvlBitOr      = levelSet("|")
	lvlBitXor     = levelSet("^")
	lvlBitAnd     = levelSet("&")
	lvlEquality   = levelSet("===", "!==", "==", "!=")
	lvlRelational = levelSet("<", ">", "<=", ">=", "in", "instanceof")
	lvlShift      = levelSet("<<", ">>", ">>>")
	lvlAdditive   = levelSet("+", "-")
	lvlMult       = levelSet("*", "/", "%")
	lvlExponent   = levelSet("**")
)

var binOps = map[string]ast.BinaryOp{
	"===":        ast.OpEqStrict,
	"!==":        ast.OpNeqStrict,
	"==":         ast.OpEq,
	"!=":         ast.OpNeq,
	"<":          ast.OpLt,
	">":          ast.OpGt,
	"<=":         ast.OpLe,
	">=":         ast.OpGe,
	"in":         ast.OpIn,
	"instanceof": ast.OpInstanceOf,
	"|":          ast.OpBitOr,
	"^":          ast.OpBitXor,
	"&":          ast.OpBitAnd,
	"<<":         ast.OpShl,
	">>":         ast.OpShr,
	">>>":        ast.OpUShr,
	"-":          ast.OpSub,
	"*":          ast.OpMul,
	"/":          ast.OpDiv,
	"%":          ast.OpMod,
	"**":         ast.OpPow,
	"&&":         ast.OpAnd,
	"||":         ast.OpOr,
	"??":         ast.OpNullish,
}

type levelFunc func(string) (ast.Expr, error)

// foldBinary splits src at the level's top-level operators and folds the
// operands left to right into BinaryExpr nodes, parsing each operand with next.
func foldBinary(src string, level map[string]bool, next levelFunc) (ast.Expr, error) {
	hits := scanOps(src, level)
	if len(hits) == 0 {
		return next(src)
	}
	operands, ops, err := cutOperands(src, hits)
	if err != nil {
		return nil, err
	}
	acc, err := next(operands[0])
	if err != nil {
		return nil, err
	}
	for k, op := range ops {
		rhs, err := next(operands[k+1])
		if err != nil {
			return nil, err
		}
		acc = &ast.BinaryExpr{Left: acc, Op: binOps[op], Right: rhs}
	}
	return acc, nil
}

func cutOperands(src string, hits []opHit) ([]string, []string, error) {
	operands := make([]string, 0, len(hits)+1)
	ops := make([]string, 0, len(hits))
	start := 0
	for _, h := range hits {
		part := strings.TrimSpace(src[start:h.pos])
		if part == "" {
			return nil, nil, parseErrf("missing operand before %q in %q", h.op, src)
		}
		operands = append(operands, part)
		ops = append(ops, h.op)
		start = h.pos + len(h.op)
	}
	last := strings.TrimSpace(src[start:])
	if last == "" {
		return nil, nil, parseErrf("missing operand after %q in %q", ops[len(ops)-1], src)
	}
	operands = append(operands, last)
	return operands, ops, nil
}

// ---------- ladder ----------

func parseComma(src string) (ast.Expr, error) {
	parts := scanner.SplitTop(src, ',')
	if len(parts) == 1 {
		return parseTernary(src)
	}
	exprs := make([]ast.Expr, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, parseErrf("empty operand in comma expression %q", src)
		}
		e, err := parseTernary(part)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return &ast.CommaExpr{Exprs: exprs}, nil
}

func parseTernary(src string) (ast.Expr, error) {
	mask := scanner.TopLevelMask(src)
	q := -1
	for i := 0; i < len(src); i++ {
		if !mask[i] || src[i] != '?' {
			continue
		}
		if i+1 < len(src) && (src[i+1] == '?' || src[i+1] == '.') {
			i++
			continue
		}
		q = i
		break
	}
	if q < 0 {
		return parseLogicalOr(src)
	}
	// matching colon: nested ternaries on the right bump the depth
	depth := 0
	colon := -1
	for i := q + 1; i < len(src); i++ {
		if !mask[i] {
			continue
		}
		switch src[i] {
		case '?':
			if i+1 < len(src) && (src[i+1] == '?' || src[i+1] == '.') {
				i++
				continue
			}
			depth++
		case ':':
			if depth == 0 {
				colon = i
			} else {
				depth--
			}
		}
		if colon >= 0 {
			break
		}
	}
	if colon < 0 {
		return nil, parseErrf("ternary %q is missing a ':'", src)
	}
	cond, err := parseLogicalOr(strings.TrimSpace(src[:q]))
	if err != nil {
		return nil, err
	}
	thenE, err := parseTernary(strings.TrimSpace(src[q+1 : colon]))
	if err != nil {
		return nil, err
	}
	elseE, err := parseTernary(strings.TrimSpace(src[colon+1:]))
	if err != nil {
		return nil, err
	}
	return &ast.TernaryExpr{Cond: cond, Then: thenE, Else: elseE}, nil
}

func parseLogicalOr(src string) (ast.Expr, error) {
	return foldBinary(src, lvlOr, parseNullish)
}

func parseNullish(src string) (ast.Expr, error) {
	return foldBinary(src, lvlNullish, parseLogicalAnd)
}

func parseLogicalAnd(src string) (ast.Expr, error) {
	return foldBinary(src, lvlAnd, parseBitOr)
}

func parseBitOr(src string) (ast.Expr, error) {
	return foldBinary(src, lvlBitOr, parseBitXor)
}

func parseBitXor(src string) (ast.Expr, error) {
	return foldBinary(src, lvlBitXor, parseBitAnd)
}

func parseBitAnd(src string) (ast.Expr, error) {
	return foldBinary(src, lvlBitAnd, parseEquality)
}

func parseEquality(src string) (ast.Expr, error) {
	return foldBinary(src, lvlEquality, parseRelational)
}

func parseRelational(src string) (ast.Expr, error) {
	return foldBinary(src, lvlRelational, parseShift)
}

func parseShift(src string) (ast.Expr, error) {
	return foldBinary(src, lvlShift, parseAdditive)
}

// parseAdditive folds + and - left to right, collapsing consecutive + operands
// into one n-ary AddExpr so the evaluator can apply the string-concat-or-
// numeric-add rule across the whole chain. - stays strictly pairwise.
func parseAdditive(src string) (ast.Expr, error) {
	hits := scanOps(src, lvlAdditive)
	if len(hits) == 0 {
		return parseMultiplicative(src)
	}
	operands, ops, err := cutOperands(src, hits)
	if err != nil {
		return nil, err
	}
	acc, err := parseMultiplicative(operands[0])
	if err != nil {
		return nil, err
	}
	for k, op := range ops {
		rhs, err := parseMultiplicative(operands[k+1])
		if err != nil {
			return nil, err
		}
		if op == "+" {
			if add, isAdd := acc.(*ast.AddExpr); isAdd {
				add.Operands = append(add.Operands, rhs)
			} else {
				acc = &ast.AddExpr{Operands: []ast.Expr{acc, rhs}}
			}
		} else {
			acc = &ast.BinaryExpr{Left: acc, Op: ast.OpSub, Right: rhs}
		}
	}
	return acc, nil
}

func parseMultiplicative(src string) (ast.Expr, error) {
	return foldBinary(src, lvlMult, parseExponent)
}

// parseExponent is right-associative: the first ** splits, the right side
// re-enters this level.
func parseExponent(src string) (ast.Expr, error) {
	hits := scanOps(src, lvlExponent)
	if len(hits) == 0 {
		return parseUnary(src)
	}
	h := hits[0]
	left := strings.TrimSpace(src[:h.pos])
	right := strings.TrimSpace(src[h.pos+2:])
	if left == "" || right == "" {
		return nil, parseErrf("missing operand around ** in %q", src)
	}
	lhs, err := parseUnary(left)
	if err != nil {
		return nil, err
	}
	rhs, err := parseExponent(right)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Left: lhs, Op: ast.OpPow, Right: rhs}, nil
}

var keywordUnary = map[string]ast.UnaryOp{
	"typeof": ast.OpTypeOf,
	"void":   ast.OpVoid,
	"delete": ast.OpDelete,
	"await":  ast.OpAwait,
	"yield":  ast.OpYield,
}

func parseUnary(src string) (ast.Expr, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, parseErrf("empty operand")
	}
	switch src[0] {
	case '!':
		return unaryOperand(ast.OpNot, src[1:])
	case '~':
		return unaryOperand(ast.OpBitNot, src[1:])
	case '-':
		return unaryOperand(ast.OpNeg, src[1:])
	case '+':
		return unaryOperand(ast.OpPos, src[1:])
	}
	if scanner.IsIdentStart(src[0]) {
		ident, next := scanner.ReadIdentifier(src, 0)
		if op, ok := keywordUnary[ident]; ok && next < len(src) {
			rest := src[next:]
			if op == ast.OpYield && strings.HasPrefix(strings.TrimSpace(rest), "*") {
				rest = strings.TrimSpace(rest)
				return unaryOperand(ast.OpYieldStar, rest[1:])
			}
			if rest[0] == ' ' || rest[0] == '\t' || rest[0] == '(' || rest[0] == '\n' {
				return unaryOperand(op, rest)
			}
		}
	}
	return parsePrimary(src)
}

func unaryOperand(op ast.UnaryOp, rest string) (ast.Expr, error) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, parseErrf("missing operand for unary operator")
	}
	operand, err := parseUnary(rest)
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Op: op, Operand: operand}, nil
}
