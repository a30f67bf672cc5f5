package parser

import (
	"math/big"
	"testing"

	"github.com/example/minjs/ast"
)

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, err := ParseExpr(src)
	if err != nil {
		t.Fatalf("ParseExpr(%q): %v", src, err)
	}
	return expr
}

func expectParseError(t *testing.T, src string) {
	t.Helper()
	if _, err := ParseExpr(src); err == nil {
		t.Fatalf("ParseExpr(%q): expected error, got none", src)
	} else if _, ok := err.(*ParseError); !ok {
		t.Fatalf("ParseExpr(%q): expected *ParseError, got %T", src, err)
	}
}

// ---------- Precedence ----------

func TestMultiplicationBindsTighterThanAddition(t *testing.T) {
	add, ok := parseExpr(t, "1 + 2 * 3").(*ast.AddExpr)
	if !ok {
		t.Fatalf("expected AddExpr")
	}
	if len(add.Operands) != 2 {
		t.Fatalf("expected 2 operands, got %d", len(add.Operands))
	}
	mul, ok := add.Operands[1].(*ast.BinaryExpr)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("expected * on the right, got %#v", add.Operands[1])
	}
}

func TestAdditiveChainCollapses(t *testing.T) {
	add, ok := parseExpr(t, "1 + 2 + x").(*ast.AddExpr)
	if !ok {
		t.Fatalf("expected AddExpr")
	}
	if len(add.Operands) != 3 {
		t.Fatalf("expected 3 operands in one chain, got %d", len(add.Operands))
	}
}

func TestSubtractionStaysPairwise(t *testing.T) {
	sub, ok := parseExpr(t, "1 + 2 - 3").(*ast.BinaryExpr)
	if !ok || sub.Op != ast.OpSub {
		t.Fatalf("expected - at the top")
	}
	if _, ok := sub.Left.(*ast.AddExpr); !ok {
		t.Fatalf("expected the + chain on the left, got %#v", sub.Left)
	}
}

func TestExponentIsRightAssociative(t *testing.T) {
	pow, ok := parseExpr(t, "2 ** 3 ** 2").(*ast.BinaryExpr)
	if !ok || pow.Op != ast.OpPow {
		t.Fatalf("expected ** at the top")
	}
	right, ok := pow.Right.(*ast.BinaryExpr)
	if !ok || right.Op != ast.OpPow {
		t.Fatalf("expected ** nested on the right, got %#v", pow.Right)
	}
}

func TestTernary(t *testing.T) {
	tern, ok := parseExpr(t, "a ? 1 : 2").(*ast.TernaryExpr)
	if !ok {
		t.Fatalf("expected TernaryExpr")
	}
	if _, ok := tern.Cond.(*ast.VarExpr); !ok {
		t.Fatalf("expected VarExpr condition")
	}
}

// ---------- Literals ----------

func TestBigIntLiteral(t *testing.T) {
	lit, ok := parseExpr(t, "10n").(*ast.BigIntLit)
	if !ok {
		t.Fatalf("expected BigIntLit")
	}
	if lit.Value.Cmp(big.NewInt(10)) != 0 {
		t.Errorf("expected 10, got %s", lit.Value)
	}
}

func TestFloatAndIntegerLiteralsStaySeparate(t *testing.T) {
	if _, ok := parseExpr(t, "42").(*ast.NumberLit); !ok {
		t.Errorf("expected NumberLit for 42")
	}
	if _, ok := parseExpr(t, "4.5").(*ast.FloatLit); !ok {
		t.Errorf("expected FloatLit for 4.5")
	}
}

func TestStringOperatorImmunity(t *testing.T) {
	lit, ok := parseExpr(t, "'1 + 2'").(*ast.StringLit)
	if !ok {
		t.Fatalf("expected StringLit")
	}
	if lit.Value != "1 + 2" {
		t.Errorf("expected the raw text, got %q", lit.Value)
	}
}

// ---------- Regex vs division ----------

func TestRegexLiteral(t *testing.T) {
	re, ok := parseExpr(t, `/\d+/g`).(*ast.RegexLit)
	if !ok {
		t.Fatalf("expected RegexLit")
	}
	if re.Pattern != `\d+` || re.Flags != "g" {
		t.Errorf("got pattern %q flags %q", re.Pattern, re.Flags)
	}
}

func TestRegexWithMethodTail(t *testing.T) {
	call, ok := parseExpr(t, `/ab/.test('abc')`).(*ast.MemberCall)
	if !ok {
		t.Fatalf("expected MemberCall")
	}
	if call.Method != "test" {
		t.Errorf("expected test, got %s", call.Method)
	}
	if _, ok := call.Target.(*ast.RegexLit); !ok {
		t.Errorf("expected RegexLit target")
	}
}

func TestSlashAfterValueIsDivision(t *testing.T) {
	div, ok := parseExpr(t, "6 / 2").(*ast.BinaryExpr)
	if !ok || div.Op != ast.OpDiv {
		t.Fatalf("expected division")
	}
}

func TestInvalidRegexFlag(t *testing.T) {
	expectParseError(t, "/ab/q")
}

func TestUnterminatedRegex(t *testing.T) {
	expectParseError(t, "/ab")
}

// ---------- Functions ----------

func TestArrowFunction(t *testing.T) {
	fn, ok := parseExpr(t, "(a, b) => a + b").(*ast.FuncLit)
	if !ok {
		t.Fatalf("expected FuncLit")
	}
	if !fn.Arrow {
		t.Error("expected Arrow")
	}
	if len(fn.Handler.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Handler.Params))
	}
	if len(fn.Handler.Stmts) != 1 {
		t.Fatalf("expected an implicit return, got %d statements", len(fn.Handler.Stmts))
	}
	if _, ok := fn.Handler.Stmts[0].(*ast.ReturnStmt); !ok {
		t.Errorf("expected ReturnStmt body")
	}
}

func TestSingleParamArrowWithoutParens(t *testing.T) {
	fn, ok := parseExpr(t, "x => x * 2").(*ast.FuncLit)
	if !ok {
		t.Fatalf("expected FuncLit")
	}
	if len(fn.Handler.Params) != 1 || fn.Handler.Params[0] != "x" {
		t.Fatalf("expected single param x, got %v", fn.Handler.Params)
	}
}

func TestAsyncArrow(t *testing.T) {
	fn, ok := parseExpr(t, "async () => 1").(*ast.FuncLit)
	if !ok || !fn.Async {
		t.Fatalf("expected async FuncLit")
	}
}

func TestFunctionExpression(t *testing.T) {
	fn, ok := parseExpr(t, "function (x) { return x; }").(*ast.FuncLit)
	if !ok {
		t.Fatalf("expected FuncLit")
	}
	if fn.Arrow {
		t.Error("expected a non-arrow function")
	}
}

// ---------- Recognized builtin forms ----------

func TestMathCall(t *testing.T) {
	call, ok := parseExpr(t, "Math.max(1, 2)").(*ast.MathCall)
	if !ok {
		t.Fatalf("expected MathCall")
	}
	if call.Method != "max" || len(call.Args) != 2 {
		t.Errorf("got method %q with %d args", call.Method, len(call.Args))
	}
}

func TestMathConstant(t *testing.T) {
	c, ok := parseExpr(t, "Math.PI").(*ast.MathConst)
	if !ok || c.Name != "PI" {
		t.Fatalf("expected MathConst PI")
	}
}

func TestUnknownMathMember(t *testing.T) {
	expectParseError(t, "Math.frobnicate(1)")
}

func TestDateNow(t *testing.T) {
	if _, ok := parseExpr(t, "Date.now()").(*ast.DateNow); !ok {
		t.Fatalf("expected DateNow")
	}
}

func TestSetTimeoutShape(t *testing.T) {
	st, ok := parseExpr(t, "setTimeout(() => {}, 50)").(*ast.SetTimeout)
	if !ok {
		t.Fatalf("expected SetTimeout")
	}
	if _, ok := st.Callback.(*ast.FuncLit); !ok {
		t.Errorf("expected FuncLit callback")
	}
	if st.Delay == nil {
		t.Error("expected a delay expression")
	}
}

func TestSetTimeoutExtraArgs(t *testing.T) {
	st, ok := parseExpr(t, "setTimeout(f, 10, 'x', 7)").(*ast.SetTimeout)
	if !ok {
		t.Fatalf("expected SetTimeout")
	}
	if len(st.Args) != 2 {
		t.Errorf("expected 2 extra args, got %d", len(st.Args))
	}
}

func TestNewPromiseArity(t *testing.T) {
	expectParseError(t, "new Promise()")
}

func TestNewFormChain(t *testing.T) {
	call, ok := parseExpr(t, "new Date(0).getUTCFullYear()").(*ast.MemberCall)
	if !ok {
		t.Fatalf("expected MemberCall")
	}
	if _, ok := call.Target.(*ast.NewDate); !ok {
		t.Errorf("expected NewDate target, got %#v", call.Target)
	}
}

func TestUnknownConstructorFallsBackToNewCall(t *testing.T) {
	nc, ok := parseExpr(t, "new Thing(1)").(*ast.NewCall)
	if !ok || nc.Name != "Thing" {
		t.Fatalf("expected NewCall Thing")
	}
}

// ---------- Malformed input ----------

func TestDanglingOperator(t *testing.T) {
	expectParseError(t, "1 +")
}

func TestEmptyExpression(t *testing.T) {
	expectParseError(t, "   ")
}

func TestUnterminatedCall(t *testing.T) {
	expectParseError(t, "f(1, 2")
}

func TestConsoleCallWithArguments(t *testing.T) {
	call, ok := parseExpr(t, `console.log('a', 1)`).(*ast.ConsoleCall)
	if !ok {
		t.Fatal("expected a ConsoleCall")
	}
	if call.Level != "log" || len(call.Args) != 2 {
		t.Errorf("level %q with %d args", call.Level, len(call.Args))
	}
}

func TestNamespaceCallMethodNamesAreExact(t *testing.T) {
	// A single-letter method name exercises the shortest identifier span
	// after the dot.
	if _, err := ParseExpr("Math.e()"); err == nil {
		t.Error("Math.e is not a method and should be rejected")
	}
	call, ok := parseExpr(t, "Math.max(1, 2)").(*ast.MathCall)
	if !ok {
		t.Fatal("expected a MathCall")
	}
	if call.Method != "max" {
		t.Errorf("method %q", call.Method)
	}
}

func TestHyperbolicMathMembersRecognized(t *testing.T) {
	for _, m := range []string{"sinh", "cosh", "tanh", "asinh", "acosh", "atanh", "log1p", "expm1"} {
		call, ok := parseExpr(t, "Math."+m+"(1)").(*ast.MathCall)
		if !ok {
			t.Fatalf("expected a MathCall for %s", m)
		}
		if call.Method != m {
			t.Errorf("method %q, want %q", call.Method, m)
		}
	}
}

func TestNewIntlConstructors(t *testing.T) {
	nf, ok := parseExpr(t, `new Intl.NumberFormat('en-US')`).(*ast.NewIntlNumberFormat)
	if !ok {
		t.Fatal("expected a NewIntlNumberFormat")
	}
	if len(nf.Args) != 1 {
		t.Errorf("got %d args", len(nf.Args))
	}
	if _, ok := parseExpr(t, `new Intl.Collator()`).(*ast.NewIntlCollator); !ok {
		t.Fatal("expected a NewIntlCollator")
	}
	// The constructor result keeps chaining like any other expression.
	call, ok := parseExpr(t, `new Intl.NumberFormat('en-US').format(9)`).(*ast.MemberCall)
	if !ok {
		t.Fatal("expected a MemberCall tail")
	}
	if call.Method != "format" {
		t.Errorf("method %q", call.Method)
	}
}

func TestDocumentQuerySelectorAll(t *testing.T) {
	call, ok := parseExpr(t, `document.querySelectorAll('div')`).(*ast.DocumentCall)
	if !ok {
		t.Fatal("expected a DocumentCall")
	}
	if call.Method != "querySelectorAll" {
		t.Errorf("method %q", call.Method)
	}
}

func TestRecognizerChainCoversEveryShape(t *testing.T) {
	// One source per recognizer in chain order.
	for _, src := range []string{
		"/ab/",
		"function (x) { return x; }",
		"(x) => x",
		"new Map()",
		"Math.max(1, 2)",
		"parseInt('42')",
	} {
		if _, err := ParseExpr(src); err != nil {
			t.Errorf("ParseExpr(%q): %v", src, err)
		}
	}
}
