package parser

import (
	"strings"

	"github.com/example/minjs/ast"
	"github.com/example/minjs/scanner"
)

// ParseScript parses a whole script: comments are stripped first, then the
// source is consumed statement by statement.
func ParseScript(src string) ([]ast.Stmt, error) {
	return ParseStmts(scanner.StripComments(src))
}

// ParseStmts parses a statement sequence (a handler body or block interior).
func ParseStmts(src string) ([]ast.Stmt, error) {
	p := &stmtParser{src: src}
	var stmts []ast.Stmt
	for {
		p.skipBlank()
		if p.done() {
			return stmts, nil
		}
		batch, err := p.readStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, batch...)
	}
}

// ParseHandler parses a callback's parameter list and body into a
// ScriptHandler.
func ParseHandler(paramSrc, bodySrc string) (*ast.ScriptHandler, error) {
	return buildHandler(paramSrc, scanner.StripComments(bodySrc))
}

type stmtParser struct {
	src string
	pos int
}

func (p *stmtParser) done() bool { return p.pos >= len(p.src) }

func (p *stmtParser) skipBlank() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ';' {
			p.pos++
			continue
		}
		return
	}
}

// readSimpleText consumes source up to the next top-level semicolon or the end.
func (p *stmtParser) readSimpleText() string {
	rest := p.src[p.pos:]
	mask := scanner.TopLevelMask(rest)
	for i := 0; i < len(rest); i++ {
		if rest[i] == ';' && mask[i] {
			p.pos += i + 1
			return rest[:i]
		}
	}
	p.pos = len(p.src)
	return rest
}

func (p *stmtParser) readStatement() ([]ast.Stmt, error) {
	if p.src[p.pos] == '{' {
		inner, next, err := scanner.ReadBalancedBlock(p.src, p.pos, '{', '}')
		if err != nil {
			return nil, parseErrf("%s", err.Error())
		}
		p.pos = next
		stmts, serr := ParseStmts(inner)
		if serr != nil {
			return nil, serr
		}
		return []ast.Stmt{&ast.BlockStmt{Stmts: stmts}}, nil
	}
	kw, _ := scanner.ReadIdentifier(p.src, p.pos)
	switch kw {
	case "let", "const", "var":
		return p.readDeclaration(kw)
	case "if":
		stmt, err := p.readIf()
		if err != nil {
			return nil, err
		}
		return []ast.Stmt{stmt}, nil
	case "while":
		stmt, err := p.readWhile()
		if err != nil {
			return nil, err
		}
		return []ast.Stmt{stmt}, nil
	case "for":
		stmt, err := p.readFor()
		if err != nil {
			return nil, err
		}
		return []ast.Stmt{stmt}, nil
	case "function", "async":
		if stmt, ok, err := p.readFunctionDecl(); err != nil {
			return nil, err
		} else if ok {
			return []ast.Stmt{stmt}, nil
		}
	case "return":
		p.pos += len("return")
		text := strings.TrimSpace(p.readSimpleText())
		if text == "" {
			return []ast.Stmt{&ast.ReturnStmt{}}, nil
		}
		expr, err := ParseExpr(text)
		if err != nil {
			return nil, err
		}
		return []ast.Stmt{&ast.ReturnStmt{Value: expr}}, nil
	}
	text := strings.TrimSpace(p.readSimpleText())
	if text == "" {
		return nil, nil
	}
	stmt, err := parseSimpleStatement(text)
	if err != nil {
		return nil, err
	}
	return []ast.Stmt{stmt}, nil
}

// readFunctionDecl consumes a named function declaration. It reports false
// without advancing when the text is not one (an anonymous function
// expression statement, or `async` used some other way).
func (p *stmtParser) readFunctionDecl() (ast.Stmt, bool, error) {
	pos := p.pos
	kw, next := scanner.ReadIdentifier(p.src, pos)
	async := false
	if kw == "async" {
		async = true
		for next < len(p.src) && (p.src[next] == ' ' || p.src[next] == '\t') {
			next++
		}
		kw, next = scanner.ReadIdentifier(p.src, next)
	}
	if kw != "function" {
		return nil, false, nil
	}
	for next < len(p.src) && (p.src[next] == ' ' || p.src[next] == '\t') {
		next++
	}
	name, next := scanner.ReadIdentifier(p.src, next)
	if name == "" {
		return nil, false, nil
	}
	for next < len(p.src) && (p.src[next] == ' ' || p.src[next] == '\t') {
		next++
	}
	if next >= len(p.src) || p.src[next] != '(' {
		return nil, false, parseErrf("malformed function declaration %q", name)
	}
	paramSrc, afterParams, err := scanner.ReadBalancedBlock(p.src, next, '(', ')')
	if err != nil {
		return nil, false, parseErrf("%s", err.Error())
	}
	i := afterParams
	for i < len(p.src) && (p.src[i] == ' ' || p.src[i] == '\t' || p.src[i] == '\n' || p.src[i] == '\r') {
		i++
	}
	if i >= len(p.src) || p.src[i] != '{' {
		return nil, false, parseErrf("function declaration %q is missing a body", name)
	}
	body, afterBody, err := scanner.ReadBalancedBlock(p.src, i, '{', '}')
	if err != nil {
		return nil, false, parseErrf("%s", err.Error())
	}
	handler, herr := buildHandler(paramSrc, body)
	if herr != nil {
		return nil, false, herr
	}
	p.pos = afterBody
	return &ast.DeclStmt{
		Keyword: "function",
		Name:    name,
		Init:    &ast.FuncLit{Handler: handler, Async: async},
	}, true, nil
}

func (p *stmtParser) readDeclaration(kw string) ([]ast.Stmt, error) {
	p.pos += len(kw)
	text := strings.TrimSpace(p.readSimpleText())
	if text == "" {
		return nil, parseErrf("%s declaration is missing a name", kw)
	}
	parts := scanner.SplitTop(text, ',')
	stmts := make([]ast.Stmt, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		name, next := scanner.ReadIdentifier(part, 0)
		if name == "" {
			return nil, parseErrf("invalid %s declaration %q", kw, part)
		}
		rest := strings.TrimSpace(part[next:])
		decl := &ast.DeclStmt{Keyword: kw, Name: name}
		if rest != "" {
			if !strings.HasPrefix(rest, "=") || strings.HasPrefix(rest, "==") {
				return nil, parseErrf("invalid %s declaration %q", kw, part)
			}
			init, err := ParseExpr(rest[1:])
			if err != nil {
				return nil, err
			}
			decl.Init = init
		} else if kw == "const" {
			return nil, parseErrf("const declaration %q is missing an initializer", name)
		}
		stmts = append(stmts, decl)
	}
	return stmts, nil
}

func (p *stmtParser) readParenExpr(kw string) (ast.Expr, error) {
	p.pos += len(kw)
	p.skipBlank()
	if p.done() || p.src[p.pos] != '(' {
		return nil, parseErrf("%s statement is missing its condition", kw)
	}
	inner, next, err := scanner.ReadBalancedBlock(p.src, p.pos, '(', ')')
	if err != nil {
		return nil, parseErrf("%s", err.Error())
	}
	p.pos = next
	return ParseExpr(inner)
}

// readBranch reads a braced block or a single statement.
func (p *stmtParser) readBranch() ([]ast.Stmt, error) {
	p.skipBlank()
	if p.done() {
		return nil, parseErrf("statement body expected")
	}
	batch, err := p.readStatement()
	if err != nil {
		return nil, err
	}
	if len(batch) == 1 {
		if block, isBlock := batch[0].(*ast.BlockStmt); isBlock {
			return block.Stmts, nil
		}
	}
	return batch, nil
}

func (p *stmtParser) readIf() (ast.Stmt, error) {
	cond, err := p.readParenExpr("if")
	if err != nil {
		return nil, err
	}
	then, err := p.readBranch()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Cond: cond, Then: then}
	save := p.pos
	p.skipBlank()
	if kw, next := scanner.ReadIdentifier(p.src, p.pos); kw == "else" {
		p.pos = next
		elseStmts, eerr := p.readBranch()
		if eerr != nil {
			return nil, eerr
		}
		stmt.Else = elseStmts
	} else {
		p.pos = save
	}
	return stmt, nil
}

func (p *stmtParser) readWhile() (ast.Stmt, error) {
	cond, err := p.readParenExpr("while")
	if err != nil {
		return nil, err
	}
	body, err := p.readBranch()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body}, nil
}

func (p *stmtParser) readFor() (ast.Stmt, error) {
	p.pos += len("for")
	p.skipBlank()
	if p.done() || p.src[p.pos] != '(' {
		return nil, parseErrf("for statement is missing its header")
	}
	header, next, err := scanner.ReadBalancedBlock(p.src, p.pos, '(', ')')
	if err != nil {
		return nil, parseErrf("%s", err.Error())
	}
	p.pos = next
	parts := scanner.SplitTop(header, ';')
	if len(parts) != 3 {
		return nil, parseErrf("for header %q must have three clauses", header)
	}
	stmt := &ast.ForStmt{}
	if init := strings.TrimSpace(parts[0]); init != "" {
		sub, serr := ParseStmts(init)
		if serr != nil {
			return nil, serr
		}
		if len(sub) != 1 {
			return nil, parseErrf("for initializer %q must be a single statement", init)
		}
		stmt.Init = sub[0]
	}
	if cond := strings.TrimSpace(parts[1]); cond != "" {
		condExpr, cerr := ParseExpr(cond)
		if cerr != nil {
			return nil, cerr
		}
		stmt.Cond = condExpr
	}
	if post := strings.TrimSpace(parts[2]); post != "" {
		postStmt, perr := parseSimpleStatement(post)
		if perr != nil {
			return nil, perr
		}
		stmt.Post = postStmt
	}
	body, berr := p.readBranch()
	if berr != nil {
		return nil, berr
	}
	stmt.Body = body
	return stmt, nil
}

// parseSimpleStatement parses an assignment or a bare expression statement.
func parseSimpleStatement(text string) (ast.Stmt, error) {
	if pos, op := findAssignOp(text); pos >= 0 {
		lhsSrc := strings.TrimSpace(text[:pos])
		rhsSrc := strings.TrimSpace(text[pos+len(op):])
		if lhsSrc == "" || rhsSrc == "" {
			return nil, parseErrf("malformed assignment %q", text)
		}
		target, err := ParseExpr(lhsSrc)
		if err != nil {
			return nil, err
		}
		switch target.(type) {
		case *ast.VarExpr, *ast.MemberExpr:
		default:
			return nil, parseErrf("invalid assignment target %q", lhsSrc)
		}
		value, err := ParseExpr(rhsSrc)
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Target: target, Op: op, Value: value}, nil
	}
	// i++ / i-- sugar
	if len(text) > 2 {
		if strings.HasSuffix(text, "++") || strings.HasSuffix(text, "--") {
			op := text[len(text)-2:]
			target, err := ParseExpr(strings.TrimSpace(text[:len(text)-2]))
			if err == nil {
				switch target.(type) {
				case *ast.VarExpr, *ast.MemberExpr:
					return &ast.AssignStmt{
						Target: target,
						Op:     string(op[0]) + "=",
						Value:  &ast.NumberLit{Value: 1},
					}, nil
				}
			}
		}
	}
	expr, err := ParseExpr(text)
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: expr}, nil
}

// findAssignOp locates the first top-level assignment operator, rejecting
// comparison operators and arrows whose text contains '='.
func findAssignOp(text string) (int, string) {
	mask := scanner.TopLevelMask(text)
	for i := 0; i < len(text); i++ {
		if !mask[i] || text[i] != '=' {
			continue
		}
		if i+1 < len(text) && (text[i+1] == '=' || text[i+1] == '>') {
			i++ // skip ==, ===, =>
			for i+1 < len(text) && text[i+1] == '=' {
				i++
			}
			continue
		}
		if i > 0 {
			switch text[i-1] {
			case '=', '!', '<', '>':
				continue
			case '+', '-', '*', '/', '%':
				return i - 1, string(text[i-1]) + "="
			}
		}
		return i, "="
	}
	return -1, ""
}
