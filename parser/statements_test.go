package parser

import (
	"testing"

	"github.com/example/minjs/ast"
)

func parseScript(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	stmts, err := ParseScript(src)
	if err != nil {
		t.Fatalf("ParseScript(%q): %v", src, err)
	}
	return stmts
}

func TestConstDeclaration(t *testing.T) {
	stmts := parseScript(t, "const x = 1;")
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	decl, ok := stmts[0].(*ast.DeclStmt)
	if !ok {
		t.Fatalf("expected DeclStmt, got %T", stmts[0])
	}
	if decl.Keyword != "const" || decl.Name != "x" {
		t.Errorf("got %s %s", decl.Keyword, decl.Name)
	}
	if _, ok := decl.Init.(*ast.NumberLit); !ok {
		t.Errorf("expected NumberLit initializer")
	}
}

func TestConstRequiresInitializer(t *testing.T) {
	if _, err := ParseScript("const x;"); err == nil {
		t.Fatal("expected error for const without initializer")
	}
}

func TestMultiDeclaration(t *testing.T) {
	stmts := parseScript(t, "let a = 1, b = 2;")
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	for i, name := range []string{"a", "b"} {
		decl := stmts[i].(*ast.DeclStmt)
		if decl.Name != name || decl.Keyword != "let" {
			t.Errorf("statement %d: got %s %s", i, decl.Keyword, decl.Name)
		}
	}
}

func TestCompoundAssignment(t *testing.T) {
	stmts := parseScript(t, "x += 2;")
	assign, ok := stmts[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("expected AssignStmt, got %T", stmts[0])
	}
	if assign.Op != "+=" {
		t.Errorf("expected +=, got %s", assign.Op)
	}
	if _, ok := assign.Target.(*ast.VarExpr); !ok {
		t.Errorf("expected VarExpr target")
	}
}

func TestIncrementSugar(t *testing.T) {
	stmts := parseScript(t, "i++;")
	assign, ok := stmts[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("expected AssignStmt, got %T", stmts[0])
	}
	if assign.Op != "+=" {
		t.Errorf("expected +=, got %s", assign.Op)
	}
	lit, ok := assign.Value.(*ast.NumberLit)
	if !ok || lit.Value != 1 {
		t.Errorf("expected literal 1 value")
	}
}

func TestMemberAssignment(t *testing.T) {
	stmts := parseScript(t, "obj.field = 3;")
	assign := stmts[0].(*ast.AssignStmt)
	if _, ok := assign.Target.(*ast.MemberExpr); !ok {
		t.Fatalf("expected MemberExpr target, got %T", assign.Target)
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	if _, err := ParseScript("1 = 2;"); err == nil {
		t.Fatal("expected error for literal assignment target")
	}
}

func TestIfElse(t *testing.T) {
	stmts := parseScript(t, "if (x) { y = 1; } else { y = 2; }")
	ifs, ok := stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected IfStmt, got %T", stmts[0])
	}
	if len(ifs.Then) != 1 || len(ifs.Else) != 1 {
		t.Errorf("expected 1 statement per branch, got %d/%d", len(ifs.Then), len(ifs.Else))
	}
}

func TestForLoop(t *testing.T) {
	stmts := parseScript(t, "for (let i = 0; i < 3; i++) { total += i; }")
	loop, ok := stmts[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected ForStmt, got %T", stmts[0])
	}
	if _, ok := loop.Init.(*ast.DeclStmt); !ok {
		t.Errorf("expected DeclStmt init")
	}
	if loop.Cond == nil || loop.Post == nil {
		t.Error("expected condition and post statement")
	}
	if len(loop.Body) != 1 {
		t.Errorf("expected 1 body statement, got %d", len(loop.Body))
	}
}

func TestWhileLoop(t *testing.T) {
	stmts := parseScript(t, "while (n > 0) { n -= 1; }")
	loop, ok := stmts[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected WhileStmt, got %T", stmts[0])
	}
	if len(loop.Body) != 1 {
		t.Errorf("expected 1 body statement, got %d", len(loop.Body))
	}
}

func TestFunctionDeclaration(t *testing.T) {
	stmts := parseScript(t, "function add(a, b) { return a + b; } add(1, 2);")
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	decl, ok := stmts[0].(*ast.DeclStmt)
	if !ok || decl.Keyword != "function" || decl.Name != "add" {
		t.Fatalf("expected function declaration add, got %#v", stmts[0])
	}
	fn, ok := decl.Init.(*ast.FuncLit)
	if !ok || len(fn.Handler.Params) != 2 {
		t.Fatalf("expected a 2-param FuncLit initializer")
	}
	if _, ok := stmts[1].(*ast.ExprStmt); !ok {
		t.Errorf("expected the call after the declaration, got %T", stmts[1])
	}
}

func TestAsyncFunctionDeclaration(t *testing.T) {
	stmts := parseScript(t, "async function go() { return 1; }")
	decl := stmts[0].(*ast.DeclStmt)
	fn, ok := decl.Init.(*ast.FuncLit)
	if !ok || !fn.Async {
		t.Fatalf("expected async FuncLit")
	}
}

func TestCommentsAreStripped(t *testing.T) {
	stmts := parseScript(t, "// leading\nconst x = 1; /* trailing */")
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
}

func TestSemicolonInStringDoesNotSplit(t *testing.T) {
	stmts := parseScript(t, `const s = "a;b";`)
	decl := stmts[0].(*ast.DeclStmt)
	lit, ok := decl.Init.(*ast.StringLit)
	if !ok || lit.Value != "a;b" {
		t.Fatalf("expected string 'a;b', got %#v", decl.Init)
	}
}

func TestBlockStatement(t *testing.T) {
	stmts := parseScript(t, "{ const x = 1; }")
	block, ok := stmts[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("expected BlockStmt, got %T", stmts[0])
	}
	if len(block.Stmts) != 1 {
		t.Errorf("expected 1 inner statement, got %d", len(block.Stmts))
	}
}
