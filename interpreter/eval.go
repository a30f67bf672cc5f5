package interpreter

import (
	"math"
	"math/big"

	"github.com/example/minjs/ast"
	"github.com/example/minjs/builtins"
	"github.com/example/minjs/runtime"
)

// Eval evaluates an expression against an environment.
func (ip *Interp) Eval(expr ast.Expr, env *runtime.Environment) (*runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.StringLit:
		return runtime.NewString(e.Value), nil
	case *ast.BoolLit:
		return runtime.NewBool(e.Value), nil
	case *ast.NullLit:
		return runtime.Null, nil
	case *ast.UndefinedLit:
		return runtime.Undefined, nil
	case *ast.NumberLit:
		return runtime.NewNumber(e.Value), nil
	case *ast.FloatLit:
		return runtime.NewFloat(e.Value), nil
	case *ast.BigIntLit:
		return runtime.NewBigInt(e.Value), nil
	case *ast.RegexLit:
		return builtins.NewRegExpValue(e.Pattern, e.Flags)

	case *ast.VarExpr:
		if v, ok := env.Get(e.Name); ok {
			return v, nil
		}
		return nil, runtime.Errf("%s is not defined", e.Name)

	case *ast.AddExpr:
		return ip.evalAdd(e, env)
	case *ast.BinaryExpr:
		return ip.evalBinary(e, env)
	case *ast.UnaryExpr:
		return ip.evalUnary(e, env)
	case *ast.TernaryExpr:
		cond, err := ip.Eval(e.Cond, env)
		if err != nil {
			return nil, err
		}
		if runtime.Truthy(cond) {
			return ip.Eval(e.Then, env)
		}
		return ip.Eval(e.Else, env)
	case *ast.CommaExpr:
		var last *runtime.Value = runtime.Undefined
		for _, sub := range e.Exprs {
			v, err := ip.Eval(sub, env)
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil

	case *ast.ArrayLit:
		return ip.evalArrayLit(e, env)
	case *ast.ObjectLit:
		return ip.evalObjectLit(e, env)
	case *ast.FuncLit:
		return ip.makeFunction("", e.Handler, e.Arrow, e.Async, env), nil

	case *ast.MemberExpr:
		target, err := ip.Eval(e.Target, env)
		if err != nil {
			return nil, err
		}
		return ip.getMember(target, e, env)
	case *ast.MemberCall:
		return ip.evalMemberCall(e, env)
	case *ast.FunctionCall:
		fn, ok := env.Get(e.Name)
		if !ok {
			return nil, runtime.Errf("%s is not defined", e.Name)
		}
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		if fn.Kind != runtime.KindObject || fn.Obj.Kind != runtime.ObjFunction {
			return nil, runtime.Errf("%s is not a function", e.Name)
		}
		return ip.Call(fn, args)
	case *ast.CallExpr:
		fn, err := ip.Eval(e.Callee, env)
		if err != nil {
			return nil, err
		}
		// Arguments evaluate before the callable check, same as the named
		// call form above.
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		if fn.Kind != runtime.KindObject || fn.Obj.Kind != runtime.ObjFunction {
			return nil, runtime.Errf("value is not a function")
		}
		return ip.Call(fn, args)
	case *ast.NewCall:
		return ip.evalNewCall(e, env)
	case *ast.SpreadExpr:
		return nil, runtime.Errf("unexpected spread")
	}
	return ip.evalBuiltin(expr, env)
}

// evalAdd applies the chain rule: when any operand of a + chain is a string
// the whole chain concatenates, otherwise the chain sums numerically.
func (ip *Interp) evalAdd(e *ast.AddExpr, env *runtime.Environment) (*runtime.Value, error) {
	vals := make([]*runtime.Value, len(e.Operands))
	anyString := false
	anyBig := false
	allInt := true
	for i, op := range e.Operands {
		v, err := ip.Eval(op, env)
		if err != nil {
			return nil, err
		}
		vals[i] = v
		switch v.Kind {
		case runtime.KindString:
			anyString = true
		case runtime.KindBigInt:
			anyBig = true
		case runtime.KindObject, runtime.KindSymbol:
			anyString = true
		case runtime.KindNumber:
		default:
			allInt = false
		}
	}
	if anyString {
		out := ""
		for _, v := range vals {
			out += runtime.ToString(v)
		}
		return runtime.NewString(out), nil
	}
	if anyBig {
		sum := new(big.Int)
		for _, v := range vals {
			if v.Kind != runtime.KindBigInt {
				return nil, runtime.Errf("Cannot mix BigInt and other types")
			}
			sum.Add(sum, v.Big)
		}
		return runtime.NewBigInt(sum), nil
	}
	if allInt {
		var sum int64
		for _, v := range vals {
			sum += v.Num
		}
		return runtime.NewNumber(sum), nil
	}
	sum := 0.0
	for _, v := range vals {
		sum += runtime.ToNumberUnary(v)
	}
	return runtime.NumberValue(sum), nil
}

func (ip *Interp) evalBinary(e *ast.BinaryExpr, env *runtime.Environment) (*runtime.Value, error) {
	// Short-circuit forms evaluate the right side conditionally.
	switch e.Op {
	case ast.OpAnd:
		left, err := ip.Eval(e.Left, env)
		if err != nil {
			return nil, err
		}
		if !runtime.Truthy(left) {
			return left, nil
		}
		return ip.Eval(e.Right, env)
	case ast.OpOr:
		left, err := ip.Eval(e.Left, env)
		if err != nil {
			return nil, err
		}
		if runtime.Truthy(left) {
			return left, nil
		}
		return ip.Eval(e.Right, env)
	case ast.OpNullish:
		left, err := ip.Eval(e.Left, env)
		if err != nil {
			return nil, err
		}
		if left.Kind != runtime.KindUndefined && left.Kind != runtime.KindNull {
			return left, nil
		}
		return ip.Eval(e.Right, env)
	case ast.OpInstanceOf:
		left, err := ip.Eval(e.Left, env)
		if err != nil {
			return nil, err
		}
		if name, ok := e.Right.(*ast.VarExpr); ok {
			return runtime.NewBool(instanceOfName(left, name.Name)), nil
		}
		return runtime.False, nil
	}

	left, err := ip.Eval(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := ip.Eval(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case ast.OpEqStrict:
		return runtime.NewBool(runtime.StrictEquals(left, right)), nil
	case ast.OpNeqStrict:
		return runtime.NewBool(!runtime.StrictEquals(left, right)), nil
	case ast.OpEq:
		return runtime.NewBool(runtime.LooseEquals(left, right)), nil
	case ast.OpNeq:
		return runtime.NewBool(!runtime.LooseEquals(left, right)), nil
	case ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		return compareValues(e.Op, left, right)
	case ast.OpIn:
		return evalInOperator(left, right)
	case ast.OpBitOr:
		return runtime.NewNumber(int64(toInt32(left) | toInt32(right))), nil
	case ast.OpBitXor:
		return runtime.NewNumber(int64(toInt32(left) ^ toInt32(right))), nil
	case ast.OpBitAnd:
		return runtime.NewNumber(int64(toInt32(left) & toInt32(right))), nil
	case ast.OpShl:
		return runtime.NewNumber(int64(toInt32(left) << (toUint32(right) & 31))), nil
	case ast.OpShr:
		return runtime.NewNumber(int64(toInt32(left) >> (toUint32(right) & 31))), nil
	case ast.OpUShr:
		return runtime.NewNumber(int64(toUint32(left) >> (toUint32(right) & 31))), nil
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpPow:
		return arith(e.Op, left, right)
	}
	return nil, runtime.Errf("unsupported operator %s", e.Op)
}

func arith(op ast.BinaryOp, left, right *runtime.Value) (*runtime.Value, error) {
	if left.Kind == runtime.KindBigInt || right.Kind == runtime.KindBigInt {
		return bigArith(op, left, right)
	}
	// Integer results stay integers when both sides are.
	if left.Kind == runtime.KindNumber && right.Kind == runtime.KindNumber {
		a, b := left.Num, right.Num
		switch op {
		case ast.OpSub:
			return runtime.NewNumber(a - b), nil
		case ast.OpMul:
			return runtime.NewNumber(a * b), nil
		case ast.OpDiv:
			if b != 0 && a%b == 0 {
				return runtime.NewNumber(a / b), nil
			}
		case ast.OpMod:
			if b != 0 {
				return runtime.NewNumber(a % b), nil
			}
		case ast.OpPow:
			if b >= 0 && b < 63 {
				r := int64(1)
				overflow := false
				for i := int64(0); i < b; i++ {
					next := r * a
					if a != 0 && next/a != r {
						overflow = true
						break
					}
					r = next
				}
				if !overflow {
					return runtime.NewNumber(r), nil
				}
			}
		}
	}
	fa, fb := runtime.ToNumberUnary(left), runtime.ToNumberUnary(right)
	switch op {
	case ast.OpSub:
		return runtime.NumberValue(fa - fb), nil
	case ast.OpMul:
		return runtime.NumberValue(fa * fb), nil
	case ast.OpDiv:
		return runtime.NumberValue(fa / fb), nil
	case ast.OpMod:
		return runtime.NumberValue(math.Mod(fa, fb)), nil
	case ast.OpPow:
		return runtime.NumberValue(math.Pow(fa, fb)), nil
	}
	return nil, runtime.Errf("unsupported operator %s", op)
}

func bigArith(op ast.BinaryOp, left, right *runtime.Value) (*runtime.Value, error) {
	if left.Kind != runtime.KindBigInt || right.Kind != runtime.KindBigInt {
		return nil, runtime.Errf("Cannot mix BigInt and other types, use explicit conversions")
	}
	out := new(big.Int)
	switch op {
	case ast.OpSub:
		out.Sub(left.Big, right.Big)
	case ast.OpMul:
		out.Mul(left.Big, right.Big)
	case ast.OpDiv:
		if right.Big.Sign() == 0 {
			return nil, runtime.Errf("Division by zero")
		}
		out.Quo(left.Big, right.Big)
	case ast.OpMod:
		if right.Big.Sign() == 0 {
			return nil, runtime.Errf("Division by zero")
		}
		out.Rem(left.Big, right.Big)
	case ast.OpPow:
		if right.Big.Sign() < 0 {
			return nil, runtime.Errf("Exponent must be non-negative")
		}
		out.Exp(left.Big, right.Big, nil)
	default:
		return nil, runtime.Errf("unsupported BigInt operator %s", op)
	}
	return runtime.NewBigInt(out), nil
}

func compareValues(op ast.BinaryOp, left, right *runtime.Value) (*runtime.Value, error) {
	// Two strings compare lexicographically; anything else numerically.
	if left.Kind == runtime.KindString && right.Kind == runtime.KindString {
		a, b := left.Str, right.Str
		switch op {
		case ast.OpLt:
			return runtime.NewBool(a < b), nil
		case ast.OpGt:
			return runtime.NewBool(a > b), nil
		case ast.OpLe:
			return runtime.NewBool(a <= b), nil
		case ast.OpGe:
			return runtime.NewBool(a >= b), nil
		}
	}
	if left.Kind == runtime.KindBigInt && right.Kind == runtime.KindBigInt {
		c := left.Big.Cmp(right.Big)
		switch op {
		case ast.OpLt:
			return runtime.NewBool(c < 0), nil
		case ast.OpGt:
			return runtime.NewBool(c > 0), nil
		case ast.OpLe:
			return runtime.NewBool(c <= 0), nil
		case ast.OpGe:
			return runtime.NewBool(c >= 0), nil
		}
	}
	fa, fb := runtime.ToNumberUnary(left), runtime.ToNumberUnary(right)
	if math.IsNaN(fa) || math.IsNaN(fb) {
		return runtime.False, nil
	}
	switch op {
	case ast.OpLt:
		return runtime.NewBool(fa < fb), nil
	case ast.OpGt:
		return runtime.NewBool(fa > fb), nil
	case ast.OpLe:
		return runtime.NewBool(fa <= fb), nil
	case ast.OpGe:
		return runtime.NewBool(fa >= fb), nil
	}
	return runtime.False, nil
}

func evalInOperator(key, container *runtime.Value) (*runtime.Value, error) {
	if container.Kind != runtime.KindObject {
		return nil, runtime.Errf("Cannot use 'in' operator to search for %q in %s",
			runtime.ToString(key), runtime.ToString(container))
	}
	o := container.Obj
	if o.Kind == runtime.ObjArray {
		if f := runtime.ToNumberUnary(key); !math.IsNaN(f) {
			i := int(f)
			return runtime.NewBool(i >= 0 && i < len(o.Elems)), nil
		}
	}
	return runtime.NewBool(o.GetOwn(runtime.ToString(key)) != nil), nil
}

func (ip *Interp) evalUnary(e *ast.UnaryExpr, env *runtime.Environment) (*runtime.Value, error) {
	switch e.Op {
	case ast.OpTypeOf:
		// typeof tolerates unbound names.
		if v, ok := e.Operand.(*ast.VarExpr); ok {
			bound, exists := env.Get(v.Name)
			if !exists {
				return runtime.NewString("undefined"), nil
			}
			return runtime.NewString(runtime.TypeOf(bound)), nil
		}
	case ast.OpDelete:
		return ip.evalDelete(e.Operand, env)
	}

	v, err := ip.Eval(e.Operand, env)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.OpNeg:
		switch v.Kind {
		case runtime.KindNumber:
			return runtime.NewNumber(-v.Num), nil
		case runtime.KindBigInt:
			return runtime.NewBigInt(new(big.Int).Neg(v.Big)), nil
		}
		return runtime.NumberValue(-runtime.ToNumberUnary(v)), nil
	case ast.OpPos:
		if v.Kind == runtime.KindNumber || v.Kind == runtime.KindFloat {
			return v, nil
		}
		if v.Kind == runtime.KindBigInt {
			return nil, runtime.Errf("Cannot convert a BigInt to a number")
		}
		return runtime.NumberValue(runtime.ToNumberUnary(v)), nil
	case ast.OpNot:
		return runtime.NewBool(!runtime.Truthy(v)), nil
	case ast.OpBitNot:
		return runtime.NewNumber(int64(^toInt32(v))), nil
	case ast.OpTypeOf:
		return runtime.NewString(runtime.TypeOf(v)), nil
	case ast.OpVoid:
		return runtime.Undefined, nil
	case ast.OpAwait:
		return ip.evalAwait(v)
	case ast.OpYield, ast.OpYieldStar:
		return nil, runtime.Errf("yield is only valid inside a generator")
	}
	return nil, runtime.Errf("unsupported unary operator")
}

func (ip *Interp) evalDelete(target ast.Expr, env *runtime.Environment) (*runtime.Value, error) {
	switch t := target.(type) {
	case *ast.VarExpr:
		return runtime.NewBool(env.Delete(t.Name)), nil
	case *ast.MemberExpr:
		container, err := ip.Eval(t.Target, env)
		if err != nil {
			return nil, err
		}
		if container.Kind != runtime.KindObject {
			return runtime.True, nil
		}
		name := t.Prop
		if t.Index != nil {
			idx, err := ip.Eval(t.Index, env)
			if err != nil {
				return nil, err
			}
			if container.Obj.Kind == runtime.ObjArray {
				if f := runtime.ToNumberUnary(idx); !math.IsNaN(f) {
					i := int(f)
					if i >= 0 && i < len(container.Obj.Elems) {
						container.Obj.Elems[i] = runtime.Undefined
					}
					return runtime.True, nil
				}
			}
			name = runtime.ToString(idx)
		}
		container.Obj.DeleteOwn(name)
		return runtime.True, nil
	}
	return runtime.True, nil
}

func (ip *Interp) evalArrayLit(e *ast.ArrayLit, env *runtime.Environment) (*runtime.Value, error) {
	var elems []*runtime.Value
	for _, el := range e.Elems {
		if sp, ok := el.(*ast.SpreadExpr); ok {
			spread, err := ip.Eval(sp.Operand, env)
			if err != nil {
				return nil, err
			}
			expanded, err := spreadElements(spread)
			if err != nil {
				return nil, err
			}
			elems = append(elems, expanded...)
			continue
		}
		v, err := ip.Eval(el, env)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return runtime.NewArrayValue(elems), nil
}

func (ip *Interp) evalObjectLit(e *ast.ObjectLit, env *runtime.Environment) (*runtime.Value, error) {
	obj := runtime.NewCell(runtime.ObjPlain)
	for _, prop := range e.Props {
		if prop.Spread {
			src, err := ip.Eval(prop.Value, env)
			if err != nil {
				return nil, err
			}
			if src.Kind == runtime.KindObject {
				for _, k := range src.Obj.OwnKeys() {
					obj.Obj.SetOwn(k, src.Obj.GetOwn(k))
				}
			}
			continue
		}
		key := prop.Key
		if prop.Computed != nil {
			kv, err := ip.Eval(prop.Computed, env)
			if err != nil {
				return nil, err
			}
			key = runtime.ToString(kv)
		}
		v, err := ip.Eval(prop.Value, env)
		if err != nil {
			return nil, err
		}
		obj.Obj.SetOwn(key, v)
	}
	return obj, nil
}

// spreadElements expands an iterable into elements for spread position.
func spreadElements(v *runtime.Value) ([]*runtime.Value, error) {
	switch {
	case v.Kind == runtime.KindString:
		var out []*runtime.Value
		for _, r := range v.Str {
			out = append(out, runtime.NewString(string(r)))
		}
		return out, nil
	case v.Kind == runtime.KindObject && v.Obj.Kind == runtime.ObjArray:
		return append([]*runtime.Value{}, v.Obj.Elems...), nil
	case v.Kind == runtime.KindObject && v.Obj.Kind == runtime.ObjSet:
		var out []*runtime.Value
		v.Obj.SetData.Each(func(k, _ *runtime.Value) error {
			out = append(out, k)
			return nil
		})
		return out, nil
	case v.Kind == runtime.KindObject && v.Obj.Kind == runtime.ObjMap:
		var out []*runtime.Value
		v.Obj.MapData.Each(func(k, val *runtime.Value) error {
			out = append(out, runtime.NewArrayValue([]*runtime.Value{k, val}))
			return nil
		})
		return out, nil
	}
	return nil, runtime.Errf("%s is not iterable", runtime.TypeOf(v))
}

func toInt32(v *runtime.Value) int32 {
	f := runtime.ToNumberUnary(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int32(uint32(int64(math.Trunc(f))))
}

func toUint32(v *runtime.Value) uint32 {
	f := runtime.ToNumberUnary(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return uint32(int64(math.Trunc(f)))
}

// instanceOfName maps `x instanceof Name` onto container kinds.
func instanceOfName(v *runtime.Value, name string) bool {
	if v.Kind != runtime.KindObject {
		return false
	}
	switch name {
	case "Object":
		return true
	case "Array":
		return v.Obj.Kind == runtime.ObjArray
	case "Map":
		return v.Obj.Kind == runtime.ObjMap
	case "Set":
		return v.Obj.Kind == runtime.ObjSet
	case "Date":
		return v.Obj.Kind == runtime.ObjDate
	case "RegExp":
		return v.Obj.Kind == runtime.ObjRegExp
	case "Promise":
		return v.Obj.Kind == runtime.ObjPromise
	case "Function":
		return v.Obj.Kind == runtime.ObjFunction
	case "ArrayBuffer":
		return v.Obj.Kind == runtime.ObjBuffer
	case "Blob":
		return v.Obj.Kind == runtime.ObjBlob
	case "URL":
		return v.Obj.Kind == runtime.ObjURL
	case "URLSearchParams":
		return v.Obj.Kind == runtime.ObjSearchParams
	case "FormData":
		return v.Obj.Kind == runtime.ObjFormData
	}
	if v.Obj.Kind == runtime.ObjTypedArray {
		return v.Obj.Typed.Name == name
	}
	return false
}
