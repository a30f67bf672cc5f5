package parser

import (
	"strings"

	"github.com/example/minjs/ast"
	"github.com/example/minjs/scanner"
)

// A recognizer greedily matches one ambiguous whole-span shape. The three
// outcomes are load-bearing for the whole chain:
//
//	(expr, true, nil)  — matched
//	(nil, false, nil)  — not this shape; fall through to the next candidate
//	(nil, false, err)  — matched structurally but invalid (wrong arity etc.)
//
// A recognizer must never return an error for a shape it does not own, or
// every candidate after it in the chain becomes unreachable.
type recognizer func(string) (ast.Expr, bool, error)

// Populated in init: the chain and the recognizers reference each other
// through tryRecognizers, so a composite literal would form an
// initialization cycle.
var recognizerChain []recognizer

func init() {
	recognizerChain = []recognizer{
		recognizeRegexLiteral,
		recognizeFunctionExpr,
		recognizeArrowFunction,
		recognizeNewForm,
		recognizeNamespaceCall,
		recognizeGlobalCall,
	}
}

func tryRecognizers(src string) (ast.Expr, bool, error) {
	for _, rec := range recognizerChain {
		expr, ok, err := rec(src)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return expr, true, nil
		}
	}
	return nil, false, nil
}

// chainTail finishes a recognized shape: an empty tail returns the expression
// as-is, a member/index/call tail continues the postfix chain, anything else
// means the recognizer does not own this span.
func chainTail(base ast.Expr, rest string) (ast.Expr, bool, error) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return base, true, nil
	}
	if rest[0] == '.' || rest[0] == '[' || rest[0] == '(' {
		expr, err := parsePostfix(base, rest)
		if err != nil {
			return nil, false, err
		}
		return expr, true, nil
	}
	return nil, false, nil
}

// ---------- regex literal ----------

// recognizeRegexLiteral handles /pattern/flags, including a trailing method
// chain (/ab/g.test(x)). Division never reaches here: an operand beginning
// with / at this point has no left-hand value.
func recognizeRegexLiteral(src string) (ast.Expr, bool, error) {
	if src[0] != '/' || strings.HasPrefix(src, "//") || strings.HasPrefix(src, "/*") {
		return nil, false, nil
	}
	end := -1
	inClass := false
	for i := 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				end = i
			}
		case '\n':
			return nil, false, parseErrf("unterminated regex literal %q", src)
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return nil, false, parseErrf("unterminated regex literal %q", src)
	}
	pattern := src[1:end]
	flags, next := scanner.ReadIdentifier(src, end+1)
	for i := 0; i < len(flags); i++ {
		if !strings.ContainsRune("gimsuy", rune(flags[i])) {
			return nil, false, parseErrf("invalid regex flag %q in %q", string(flags[i]), src)
		}
	}
	return chainTail(&ast.RegexLit{Pattern: pattern, Flags: flags}, src[next:])
}

// ---------- function and arrow expressions ----------

func recognizeFunctionExpr(src string) (ast.Expr, bool, error) {
	rest := src
	async := false
	if kw, next := scanner.ReadIdentifier(rest, 0); kw == "async" {
		trimmed := strings.TrimSpace(rest[next:])
		if strings.HasPrefix(trimmed, "function") {
			async = true
			rest = trimmed
		}
	}
	kw, next := scanner.ReadIdentifier(rest, 0)
	if kw != "function" {
		return nil, false, nil
	}
	rest = strings.TrimSpace(rest[next:])
	if name, n := scanner.ReadIdentifier(rest, 0); name != "" {
		rest = strings.TrimSpace(rest[n:]) // expression-form name is ignored
	}
	if rest == "" || rest[0] != '(' {
		return nil, false, parseErrf("malformed function expression %q", src)
	}
	paramSrc, after, err := scanner.ReadBalancedBlock(rest, 0, '(', ')')
	if err != nil {
		return nil, false, parseErrf("%s", err.Error())
	}
	rest = strings.TrimSpace(rest[after:])
	if rest == "" || rest[0] != '{' {
		return nil, false, parseErrf("function expression %q is missing a body", src)
	}
	body, bodyEnd, err := scanner.ReadBalancedBlock(rest, 0, '{', '}')
	if err != nil {
		return nil, false, parseErrf("%s", err.Error())
	}
	if strings.TrimSpace(rest[bodyEnd:]) != "" {
		return nil, false, nil
	}
	handler, herr := buildHandler(paramSrc, body)
	if herr != nil {
		return nil, false, herr
	}
	return &ast.FuncLit{Handler: handler, Async: async}, true, nil
}

// recognizeArrowFunction matches `params => body` where everything left of the
// first top-level => is exactly an identifier or a parenthesized name list.
func recognizeArrowFunction(src string) (ast.Expr, bool, error) {
	mask := scanner.TopLevelMask(src)
	arrow := -1
	for i := 0; i+1 < len(src); i++ {
		if !mask[i] || src[i] != '=' || src[i+1] != '>' {
			continue
		}
		if i > 0 && strings.ContainsRune("=!<>", rune(src[i-1])) {
			continue
		}
		arrow = i
		break
	}
	if arrow < 0 {
		return nil, false, nil
	}
	lhs := strings.TrimSpace(src[:arrow])
	async := false
	if kw, next := scanner.ReadIdentifier(lhs, 0); kw == "async" && next < len(lhs) {
		async = true
		lhs = strings.TrimSpace(lhs[next:])
	}
	var paramSrc string
	if ident, next := scanner.ReadIdentifier(lhs, 0); ident != "" && next == len(lhs) {
		paramSrc = ident
	} else if len(lhs) > 0 && lhs[0] == '(' {
		inner, after, err := scanner.ReadBalancedBlock(lhs, 0, '(', ')')
		if err != nil || strings.TrimSpace(lhs[after:]) != "" {
			return nil, false, nil
		}
		paramSrc = inner
	} else {
		return nil, false, nil
	}
	// the body source is comment-stripped before brace isolation so stray
	// braces or semicolons inside comments cannot derail block extraction
	body := scanner.StripComments(strings.TrimSpace(src[arrow+2:]))
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, false, parseErrf("arrow function %q is missing a body", src)
	}
	if body[0] == '{' {
		inner, after, err := scanner.ReadBalancedBlock(body, 0, '{', '}')
		if err != nil {
			return nil, false, parseErrf("%s", err.Error())
		}
		if strings.TrimSpace(body[after:]) != "" {
			return nil, false, nil
		}
		handler, herr := buildHandler(paramSrc, inner)
		if herr != nil {
			return nil, false, herr
		}
		return &ast.FuncLit{Handler: handler, Arrow: true, Async: async}, true, nil
	}
	expr, err := ParseExpr(body)
	if err != nil {
		return nil, false, err
	}
	params, perr := parseParamNames(paramSrc)
	if perr != nil {
		return nil, false, perr
	}
	handler := &ast.ScriptHandler{Params: params, Stmts: []ast.Stmt{&ast.ReturnStmt{Value: expr}}}
	return &ast.FuncLit{Handler: handler, Arrow: true, Async: async}, true, nil
}

func buildHandler(paramSrc, bodySrc string) (*ast.ScriptHandler, error) {
	params, err := parseParamNames(paramSrc)
	if err != nil {
		return nil, err
	}
	stmts, err := ParseStmts(bodySrc)
	if err != nil {
		return nil, err
	}
	return &ast.ScriptHandler{Params: params, Stmts: stmts}, nil
}

func parseParamNames(src string) ([]string, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, nil
	}
	parts := scanner.SplitTop(src, ',')
	params := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		ident, next := scanner.ReadIdentifier(part, 0)
		if ident == "" || next != len(part) {
			return nil, parseErrf("unsupported parameter %q", part)
		}
		params = append(params, ident)
	}
	return params, nil
}

// ---------- new-forms ----------

func recognizeNewForm(src string) (ast.Expr, bool, error) {
	kw, next := scanner.ReadIdentifier(src, 0)
	if kw != "new" || next >= len(src) || (src[next] != ' ' && src[next] != '\t') {
		return nil, false, nil
	}
	rest := strings.TrimSpace(src[next:])
	name, n := scanner.ReadIdentifier(rest, 0)
	if name == "" {
		return nil, false, parseErrf("constructor name expected in %q", src)
	}
	rest = rest[n:]
	if name == "Intl" && strings.HasPrefix(rest, ".") {
		sub, m := scanner.ReadIdentifier(rest, 1)
		if sub == "" {
			return nil, false, parseErrf("Intl constructor expected in %q", src)
		}
		name = "Intl." + sub
		rest = rest[m:]
	}
	rest = strings.TrimSpace(rest)
	var args []ast.Expr
	tail := rest
	if strings.HasPrefix(rest, "(") {
		inner, after, err := scanner.ReadBalancedBlock(rest, 0, '(', ')')
		if err != nil {
			return nil, false, parseErrf("%s", err.Error())
		}
		args, err = parseArgs(inner)
		if err != nil {
			return nil, false, err
		}
		tail = rest[after:]
	}
	expr, err := buildNewForm(name, args, src)
	if err != nil {
		return nil, false, err
	}
	return chainTail(expr, tail)
}

func buildNewForm(name string, args []ast.Expr, src string) (ast.Expr, error) {
	switch name {
	case "Date":
		return &ast.NewDate{Args: args}, nil
	case "RegExp":
		if len(args) < 1 || len(args) > 2 {
			return nil, parseErrf("new RegExp takes 1 or 2 arguments, got %d", len(args))
		}
		return &ast.NewRegExp{Args: args}, nil
	case "Map":
		if len(args) > 1 {
			return nil, parseErrf("new Map takes at most 1 argument, got %d", len(args))
		}
		return &ast.NewMap{Args: args}, nil
	case "Set":
		if len(args) > 1 {
			return nil, parseErrf("new Set takes at most 1 argument, got %d", len(args))
		}
		return &ast.NewSet{Args: args}, nil
	case "Promise":
		if len(args) != 1 {
			return nil, parseErrf("new Promise takes exactly 1 executor argument, got %d", len(args))
		}
		return &ast.NewPromise{Executor: args[0]}, nil
	case "URL":
		if len(args) < 1 || len(args) > 2 {
			return nil, parseErrf("new URL takes 1 or 2 arguments, got %d", len(args))
		}
		return &ast.NewURL{Args: args}, nil
	case "URLSearchParams":
		if len(args) > 1 {
			return nil, parseErrf("new URLSearchParams takes at most 1 argument, got %d", len(args))
		}
		return &ast.NewURLSearchParams{Args: args}, nil
	case "FormData":
		if len(args) != 0 {
			return nil, parseErrf("new FormData takes no arguments, got %d", len(args))
		}
		return &ast.NewFormData{}, nil
	case "ArrayBuffer":
		if len(args) != 1 {
			return nil, parseErrf("new ArrayBuffer takes exactly 1 argument, got %d", len(args))
		}
		return &ast.NewArrayBuffer{Size: args[0]}, nil
	case "Uint8Array", "Int8Array", "Uint16Array", "Int16Array",
		"Uint32Array", "Int32Array", "Float32Array", "Float64Array":
		if len(args) != 1 {
			return nil, parseErrf("new %s takes exactly 1 argument, got %d", name, len(args))
		}
		return &ast.NewTypedArray{Name: name, Args: args}, nil
	case "Blob":
		if len(args) < 1 || len(args) > 2 {
			return nil, parseErrf("new Blob takes 1 or 2 arguments, got %d", len(args))
		}
		return &ast.NewBlob{Args: args}, nil
	case "Intl.NumberFormat":
		if len(args) > 2 {
			return nil, parseErrf("new Intl.NumberFormat takes at most 2 arguments, got %d", len(args))
		}
		return &ast.NewIntlNumberFormat{Args: args}, nil
	case "Intl.DateTimeFormat":
		if len(args) > 2 {
			return nil, parseErrf("new Intl.DateTimeFormat takes at most 2 arguments, got %d", len(args))
		}
		return &ast.NewIntlDateTimeFormat{Args: args}, nil
	case "Intl.Collator":
		if len(args) > 2 {
			return nil, parseErrf("new Intl.Collator takes at most 2 arguments, got %d", len(args))
		}
		return &ast.NewIntlCollator{Args: args}, nil
	default:
		return &ast.NewCall{Name: name, Args: args}, nil
	}
}

// ---------- builtin namespace calls ----------

var mathMethods = map[string]bool{
	"abs": true, "floor": true, "ceil": true, "round": true, "trunc": true,
	"sign": true, "sqrt": true, "cbrt": true, "pow": true, "min": true,
	"max": true, "random": true, "log": true, "log2": true, "log10": true,
	"log1p": true, "exp": true, "expm1": true, "sin": true, "cos": true,
	"tan": true, "asin": true, "acos": true, "atan": true, "atan2": true,
	"sinh": true, "cosh": true, "tanh": true, "asinh": true, "acosh": true,
	"atanh": true, "hypot": true,
}

var mathConsts = map[string]bool{
	"PI": true, "E": true, "LN2": true, "LN10": true,
	"LOG2E": true, "LOG10E": true, "SQRT2": true, "SQRT1_2": true,
}

var namespaces = map[string]bool{
	"Math": true, "Date": true, "JSON": true, "Object": true, "Array": true,
	"Promise": true, "console": true, "localStorage": true,
	"sessionStorage": true, "document": true, "Intl": true,
}

func recognizeNamespaceCall(src string) (ast.Expr, bool, error) {
	ns, next := scanner.ReadIdentifier(src, 0)
	if ns == "" || !namespaces[ns] {
		return nil, false, nil
	}
	rest := strings.TrimSpace(src[next:])
	if !strings.HasPrefix(rest, ".") {
		return nil, false, nil
	}
	method, m := scanner.ReadIdentifier(rest, 1)
	if method == "" {
		return nil, false, parseErrf("property name expected after %s. in %q", ns, src)
	}
	rest = strings.TrimSpace(rest[m:])

	// accessor forms without a call
	if !strings.HasPrefix(rest, "(") {
		switch {
		case ns == "Math" && mathConsts[method]:
			return chainTail(&ast.MathConst{Name: method}, rest)
		case (ns == "localStorage" || ns == "sessionStorage") && method == "length":
			return chainTail(&ast.StorageCall{Area: ns, Method: "length"}, rest)
		}
		return nil, false, nil
	}

	inner, after, err := scanner.ReadBalancedBlock(rest, 0, '(', ')')
	if err != nil {
		return nil, false, parseErrf("%s", err.Error())
	}
	args, aerr := parseArgs(inner)
	if aerr != nil {
		return nil, false, aerr
	}
	tail := rest[after:]
	if t := strings.TrimSpace(tail); t != "" && t[0] != '.' && t[0] != '[' && t[0] != '(' {
		return nil, false, nil
	}
	expr, berr := buildNamespaceCall(ns, method, args)
	if berr != nil {
		return nil, false, berr
	}
	return chainTail(expr, tail)
}

func buildNamespaceCall(ns, method string, args []ast.Expr) (ast.Expr, error) {
	arity := func(min, max int) error {
		if len(args) < min || max >= 0 && len(args) > max {
			return parseErrf("%s.%s called with %d arguments", ns, method, len(args))
		}
		return nil
	}
	switch ns {
	case "Math":
		if !mathMethods[method] {
			return nil, parseErrf("unknown Math member %q", method)
		}
		return &ast.MathCall{Method: method, Args: args}, nil
	case "Date":
		if method != "now" {
			return nil, parseErrf("unknown Date member %q", method)
		}
		if err := arity(0, 0); err != nil {
			return nil, err
		}
		return &ast.DateNow{}, nil
	case "JSON":
		switch method {
		case "parse":
			if err := arity(1, 1); err != nil {
				return nil, err
			}
			return &ast.JSONParse{Arg: args[0]}, nil
		case "stringify":
			if err := arity(1, 3); err != nil {
				return nil, err
			}
			return &ast.JSONStringify{Args: args}, nil
		}
		return nil, parseErrf("unknown JSON member %q", method)
	case "Object":
		switch method {
		case "keys":
			if err := arity(1, 1); err != nil {
				return nil, err
			}
			return &ast.ObjectKeys{Arg: args[0]}, nil
		case "values":
			if err := arity(1, 1); err != nil {
				return nil, err
			}
			return &ast.ObjectValues{Arg: args[0]}, nil
		case "entries":
			if err := arity(1, 1); err != nil {
				return nil, err
			}
			return &ast.ObjectEntries{Arg: args[0]}, nil
		case "assign":
			if err := arity(1, -1); err != nil {
				return nil, err
			}
			return &ast.ObjectAssign{Args: args}, nil
		}
		return nil, parseErrf("unknown Object member %q", method)
	case "Array":
		switch method {
		case "isArray":
			if err := arity(1, 1); err != nil {
				return nil, err
			}
			return &ast.ArrayIsArray{Arg: args[0]}, nil
		case "from":
			if err := arity(1, 2); err != nil {
				return nil, err
			}
			return &ast.ArrayFrom{Args: args}, nil
		case "of":
			return &ast.ArrayOf{Args: args}, nil
		}
		return nil, parseErrf("unknown Array member %q", method)
	case "Promise":
		switch method {
		case "resolve":
			if err := arity(0, 1); err != nil {
				return nil, err
			}
			return &ast.PromiseResolve{Arg: argOrNil(args, 0)}, nil
		case "reject":
			if err := arity(0, 1); err != nil {
				return nil, err
			}
			return &ast.PromiseReject{Arg: argOrNil(args, 0)}, nil
		case "all":
			if err := arity(1, 1); err != nil {
				return nil, err
			}
			return &ast.PromiseAll{Arg: args[0]}, nil
		case "race":
			if err := arity(1, 1); err != nil {
				return nil, err
			}
			return &ast.PromiseRace{Arg: args[0]}, nil
		}
		return nil, parseErrf("unknown Promise member %q", method)
	case "console":
		switch method {
		case "log", "warn", "error", "info":
			return &ast.ConsoleCall{Level: method, Args: args}, nil
		}
		return nil, parseErrf("unknown console member %q", method)
	case "localStorage", "sessionStorage":
		switch method {
		case "getItem", "removeItem", "key":
			if err := arity(1, 1); err != nil {
				return nil, err
			}
		case "setItem":
			if err := arity(2, 2); err != nil {
				return nil, err
			}
		case "clear":
			if err := arity(0, 0); err != nil {
				return nil, err
			}
		default:
			return nil, parseErrf("unknown %s member %q", ns, method)
		}
		return &ast.StorageCall{Area: ns, Method: method, Args: args}, nil
	case "document":
		switch method {
		case "getElementById", "querySelector", "querySelectorAll":
			if err := arity(1, 1); err != nil {
				return nil, err
			}
		case "createElement":
			if err := arity(1, 1); err != nil {
				return nil, err
			}
		default:
			return nil, parseErrf("unknown document member %q", method)
		}
		return &ast.DocumentCall{Method: method, Args: args}, nil
	case "Intl":
		switch method {
		case "NumberFormat":
			return &ast.NewIntlNumberFormat{Args: args}, nil
		case "DateTimeFormat":
			return &ast.NewIntlDateTimeFormat{Args: args}, nil
		case "Collator":
			return &ast.NewIntlCollator{Args: args}, nil
		}
		return nil, parseErrf("unknown Intl member %q", method)
	}
	return nil, parseErrf("unknown namespace %q", ns)
}

func argOrNil(args []ast.Expr, i int) ast.Expr {
	if i < len(args) {
		return args[i]
	}
	return nil
}

// ---------- recognized global call forms ----------

func recognizeGlobalCall(src string) (ast.Expr, bool, error) {
	name, next := scanner.ReadIdentifier(src, 0)
	if name == "" {
		return nil, false, nil
	}
	rest := strings.TrimSpace(src[next:])
	if !strings.HasPrefix(rest, "(") {
		return nil, false, nil
	}
	if !recognizedGlobals[name] {
		return nil, false, nil
	}
	inner, after, err := scanner.ReadBalancedBlock(rest, 0, '(', ')')
	if err != nil {
		return nil, false, parseErrf("%s", err.Error())
	}
	args, aerr := parseArgs(inner)
	if aerr != nil {
		return nil, false, aerr
	}
	tail := rest[after:]
	if t := strings.TrimSpace(tail); t != "" && t[0] != '.' && t[0] != '[' && t[0] != '(' {
		return nil, false, nil
	}
	expr, berr := buildGlobalCall(name, args)
	if berr != nil {
		return nil, false, berr
	}
	return chainTail(expr, tail)
}

var recognizedGlobals = map[string]bool{
	"parseInt": true, "parseFloat": true, "isNaN": true, "isFinite": true,
	"Number": true, "String": true, "Boolean": true, "Symbol": true,
	"btoa": true, "atob": true,
	"encodeURIComponent": true, "decodeURIComponent": true,
	"encodeURI": true, "decodeURI": true,
	"setTimeout": true, "setInterval": true,
	"clearTimeout": true, "clearInterval": true,
	"queueMicrotask": true, "requestAnimationFrame": true,
}

func buildGlobalCall(name string, args []ast.Expr) (ast.Expr, error) {
	arity := func(min, max int) error {
		if len(args) < min || max >= 0 && len(args) > max {
			return parseErrf("%s called with %d arguments", name, len(args))
		}
		return nil
	}
	switch name {
	case "parseInt":
		if err := arity(1, 2); err != nil {
			return nil, err
		}
		return &ast.ParseIntCall{Args: args}, nil
	case "parseFloat":
		if err := arity(1, 1); err != nil {
			return nil, err
		}
		return &ast.ParseFloatCall{Arg: args[0]}, nil
	case "isNaN":
		if err := arity(1, 1); err != nil {
			return nil, err
		}
		return &ast.IsNaNCall{Arg: args[0]}, nil
	case "isFinite":
		if err := arity(1, 1); err != nil {
			return nil, err
		}
		return &ast.IsFiniteCall{Arg: args[0]}, nil
	case "Number":
		if err := arity(0, 1); err != nil {
			return nil, err
		}
		return &ast.NumberCtor{Arg: argOrNil(args, 0)}, nil
	case "String":
		if err := arity(0, 1); err != nil {
			return nil, err
		}
		return &ast.StringCtor{Arg: argOrNil(args, 0)}, nil
	case "Boolean":
		if err := arity(0, 1); err != nil {
			return nil, err
		}
		return &ast.BooleanCtor{Arg: argOrNil(args, 0)}, nil
	case "Symbol":
		if err := arity(0, 1); err != nil {
			return nil, err
		}
		return &ast.SymbolCall{Arg: argOrNil(args, 0)}, nil
	case "btoa":
		if err := arity(1, 1); err != nil {
			return nil, err
		}
		return &ast.BtoaCall{Arg: args[0]}, nil
	case "atob":
		if err := arity(1, 1); err != nil {
			return nil, err
		}
		return &ast.AtobCall{Arg: args[0]}, nil
	case "encodeURIComponent":
		if err := arity(1, 1); err != nil {
			return nil, err
		}
		return &ast.EncodeURIComponent{Arg: args[0]}, nil
	case "decodeURIComponent":
		if err := arity(1, 1); err != nil {
			return nil, err
		}
		return &ast.DecodeURIComponent{Arg: args[0]}, nil
	case "encodeURI":
		if err := arity(1, 1); err != nil {
			return nil, err
		}
		return &ast.EncodeURI{Arg: args[0]}, nil
	case "decodeURI":
		if err := arity(1, 1); err != nil {
			return nil, err
		}
		return &ast.DecodeURI{Arg: args[0]}, nil
	case "setTimeout", "setInterval":
		if err := arity(1, -1); err != nil {
			return nil, err
		}
		var delay ast.Expr
		var extra []ast.Expr
		if len(args) > 1 {
			delay = args[1]
		}
		if len(args) > 2 {
			extra = args[2:]
		}
		if name == "setTimeout" {
			return &ast.SetTimeout{Callback: args[0], Delay: delay, Args: extra}, nil
		}
		return &ast.SetInterval{Callback: args[0], Delay: delay, Args: extra}, nil
	case "clearTimeout":
		if err := arity(1, 1); err != nil {
			return nil, err
		}
		return &ast.ClearTimeout{ID: args[0]}, nil
	case "clearInterval":
		if err := arity(1, 1); err != nil {
			return nil, err
		}
		return &ast.ClearInterval{ID: args[0]}, nil
	case "queueMicrotask":
		if err := arity(1, 1); err != nil {
			return nil, err
		}
		return &ast.QueueMicrotask{Callback: args[0]}, nil
	case "requestAnimationFrame":
		if err := arity(1, 1); err != nil {
			return nil, err
		}
		return &ast.RequestAnimationFrame{Callback: args[0]}, nil
	}
	return nil, parseErrf("unrecognized call form %q", name)
}
