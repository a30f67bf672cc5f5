package interpreter

import (
	"math/big"

	"github.com/example/minjs/ast"
	"github.com/example/minjs/runtime"
)

// loopGuard bounds while/for iterations so a busted condition cannot hang
// the host.
const loopGuard = 1_000_000

// execStmts runs a statement list. The bool reports whether a return
// statement fired, which stops enclosing blocks too.
func (ip *Interp) execStmts(stmts []ast.Stmt, env *runtime.Environment) (*runtime.Value, bool, error) {
	for _, s := range stmts {
		ret, returned, err := ip.execStmt(s, env)
		if err != nil || returned {
			return ret, returned, err
		}
	}
	return nil, false, nil
}

func (ip *Interp) execStmt(s ast.Stmt, env *runtime.Environment) (*runtime.Value, bool, error) {
	switch st := s.(type) {
	case *ast.DeclStmt:
		return nil, false, ip.execDecl(st, env)

	case *ast.AssignStmt:
		return nil, false, ip.execAssign(st, env)

	case *ast.ExprStmt:
		_, err := ip.Eval(st.X, env)
		return nil, false, err

	case *ast.IfStmt:
		cond, err := ip.Eval(st.Cond, env)
		if err != nil {
			return nil, false, err
		}
		if runtime.Truthy(cond) {
			return ip.execStmts(st.Then, env)
		}
		if st.Else != nil {
			return ip.execStmts(st.Else, env)
		}
		return nil, false, nil

	case *ast.WhileStmt:
		for i := 0; ; i++ {
			if i >= loopGuard {
				return nil, false, runtime.Errf("loop iteration limit exceeded")
			}
			cond, err := ip.Eval(st.Cond, env)
			if err != nil {
				return nil, false, err
			}
			if !runtime.Truthy(cond) {
				return nil, false, nil
			}
			ret, returned, err := ip.execStmts(st.Body, env)
			if err != nil || returned {
				return ret, returned, err
			}
		}

	case *ast.ForStmt:
		if st.Init != nil {
			if _, _, err := ip.execStmt(st.Init, env); err != nil {
				return nil, false, err
			}
		}
		for i := 0; ; i++ {
			if i >= loopGuard {
				return nil, false, runtime.Errf("loop iteration limit exceeded")
			}
			if st.Cond != nil {
				cond, err := ip.Eval(st.Cond, env)
				if err != nil {
					return nil, false, err
				}
				if !runtime.Truthy(cond) {
					return nil, false, nil
				}
			}
			ret, returned, err := ip.execStmts(st.Body, env)
			if err != nil || returned {
				return ret, returned, err
			}
			if st.Post != nil {
				if _, _, err := ip.execStmt(st.Post, env); err != nil {
					return nil, false, err
				}
			}
		}

	case *ast.ReturnStmt:
		if st.Value == nil {
			return runtime.Undefined, true, nil
		}
		v, err := ip.Eval(st.Value, env)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil

	case *ast.BlockStmt:
		return ip.execStmts(st.Stmts, env)
	}
	return nil, false, runtime.Errf("unsupported statement %s", s.Kind())
}

// execDecl binds a declaration. When the initializer scheduled a timer whose
// id is the declared value, the binding is patched into the queued task's
// captured environment too. That makes the self-clearing idiom work:
//
//	const id = setInterval(() => clearInterval(id), 100)
//
// The arrow captured its environment before id existed; the patch inserts
// the binding after the fact.
func (ip *Interp) execDecl(st *ast.DeclStmt, env *runtime.Environment) error {
	v := runtime.Undefined
	if st.Init != nil {
		val, err := ip.Eval(st.Init, env)
		if err != nil {
			return err
		}
		v = val
	}
	env.Set(st.Name, v)
	// A declared function sees its own binding, so recursion works even
	// though the closure snapshot predates the declaration.
	if v.Kind == runtime.KindObject && v.Obj.Kind == runtime.ObjFunction && v.Obj.Fn.Env != nil {
		if v.Obj.Fn.Name == "" {
			v.Obj.Fn.Name = st.Name
		}
		v.Obj.Fn.Env.Set(st.Name, v)
	}
	if t := ip.Sched.LastScheduled; t != nil && t.Env != nil &&
		v.Kind == runtime.KindNumber && v.Num == t.ID {
		if _, bound := t.Env.Get(st.Name); !bound {
			t.Env.Set(st.Name, v)
		}
	}
	return nil
}

func (ip *Interp) execAssign(st *ast.AssignStmt, env *runtime.Environment) error {
	value, err := ip.Eval(st.Value, env)
	if err != nil {
		return err
	}

	apply := func(current *runtime.Value) (*runtime.Value, error) {
		if st.Op == "=" {
			return value, nil
		}
		op := compoundOp(st.Op)
		if op == addMarker {
			return addPair(current, value)
		}
		return arith(op, current, value)
	}

	switch target := st.Target.(type) {
	case *ast.VarExpr:
		current := runtime.Undefined
		if st.Op != "=" {
			cur, ok := env.Get(target.Name)
			if !ok {
				return runtime.Errf("%s is not defined", target.Name)
			}
			current = cur
		}
		v, err := apply(current)
		if err != nil {
			return err
		}
		env.Set(target.Name, v)
		return nil
	case *ast.MemberExpr:
		container, err := ip.Eval(target.Target, env)
		if err != nil {
			return err
		}
		current := runtime.Undefined
		if st.Op != "=" {
			cur, err := ip.getMember(container, target, env)
			if err != nil {
				return err
			}
			current = cur
		}
		v, err := apply(current)
		if err != nil {
			return err
		}
		return ip.setMember(container, target, v, env)
	}
	return runtime.Errf("invalid assignment target")
}

// addMarker distinguishes += from the arithmetic compound forms, since + has
// the string-concat rule.
const addMarker = ast.BinaryOp(-1)

func compoundOp(op string) ast.BinaryOp {
	switch op {
	case "+=":
		return addMarker
	case "-=":
		return ast.OpSub
	case "*=":
		return ast.OpMul
	case "/=":
		return ast.OpDiv
	case "%=":
		return ast.OpMod
	}
	return addMarker
}

// addPair applies the + rule to one pair, for += and the pairwise callers.
func addPair(a, b *runtime.Value) (*runtime.Value, error) {
	stringish := func(v *runtime.Value) bool {
		switch v.Kind {
		case runtime.KindString, runtime.KindObject, runtime.KindSymbol:
			return true
		}
		return false
	}
	if stringish(a) || stringish(b) {
		return runtime.NewString(runtime.ToString(a) + runtime.ToString(b)), nil
	}
	if a.Kind == runtime.KindBigInt || b.Kind == runtime.KindBigInt {
		if a.Kind != b.Kind {
			return nil, runtime.Errf("Cannot mix BigInt and other types")
		}
		return runtime.NewBigInt(new(big.Int).Add(a.Big, b.Big)), nil
	}
	if a.Kind == runtime.KindNumber && b.Kind == runtime.KindNumber {
		return runtime.NewNumber(a.Num + b.Num), nil
	}
	return runtime.NumberValue(runtime.ToNumberUnary(a) + runtime.ToNumberUnary(b)), nil
}
