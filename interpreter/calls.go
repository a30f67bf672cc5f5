package interpreter

import (
	"math"

	"github.com/example/minjs/ast"
	"github.com/example/minjs/builtins"
	"github.com/example/minjs/runtime"
)

// makeFunction binds a parsed handler to a snapshot of the defining
// environment. The snapshot copies the name table but shares every container
// cell, so mutations through the closure alias the outer view.
func (ip *Interp) makeFunction(name string, h *ast.ScriptHandler, arrow, async bool, env *runtime.Environment) *runtime.Value {
	v := runtime.NewCell(runtime.ObjFunction)
	v.Obj.Fn = &runtime.Function{
		Name:    name,
		Handler: h,
		Env:     env.Snapshot(),
		Arrow:   arrow,
		Async:   async,
	}
	return v
}

// Call invokes a function value with its own captured environment.
func (ip *Interp) Call(fn *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	return ip.CallWithEnv(fn, args, nil)
}

// CallWithEnv invokes fn. When envOverride is non-nil it replaces the
// function's captured environment; the scheduler uses this so a timer-id
// back-patch written into the queued task's environment is visible to the
// callback.
func (ip *Interp) CallWithEnv(fn *runtime.Value, args []*runtime.Value, envOverride *runtime.Environment) (*runtime.Value, error) {
	if fn == nil || fn.Kind != runtime.KindObject || fn.Obj.Kind != runtime.ObjFunction {
		return nil, runtime.Errf("value is not a function")
	}
	f := fn.Obj.Fn
	if f.Native != nil {
		return f.Native(args)
	}
	base := f.Env
	if envOverride != nil {
		base = envOverride
	}
	callEnv := base.Snapshot()
	for i, p := range f.Handler.Params {
		if i < len(args) {
			callEnv.Set(p, args[i])
		} else {
			callEnv.Set(p, runtime.Undefined)
		}
	}
	ret, _, err := ip.execStmts(f.Handler.Stmts, callEnv)
	if f.Async {
		if err != nil {
			return runtime.RejectedPromise(runtime.NewString(err.Error())), nil
		}
		if ret == nil {
			ret = runtime.Undefined
		}
		return runtime.ResolvedPromise(ret), nil
	}
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return runtime.Undefined, nil
	}
	return ret, nil
}

// nativeFunc wraps a Go hook as a callable value.
func nativeFunc(name string, fn func(args []*runtime.Value) (*runtime.Value, error)) *runtime.Value {
	v := runtime.NewCell(runtime.ObjFunction)
	v.Obj.Fn = &runtime.Function{Name: name, Native: fn}
	return v
}

// callFunc adapts Call to the builtins callback seam.
func (ip *Interp) callFunc() builtins.CallFunc {
	return func(fn *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return ip.Call(fn, args)
	}
}

// evalArgs evaluates an argument list, expanding spread positions.
func (ip *Interp) evalArgs(args []ast.Expr, env *runtime.Environment) ([]*runtime.Value, error) {
	var out []*runtime.Value
	for _, a := range args {
		if sp, ok := a.(*ast.SpreadExpr); ok {
			v, err := ip.Eval(sp.Operand, env)
			if err != nil {
				return nil, err
			}
			expanded, err := spreadElements(v)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
			continue
		}
		v, err := ip.Eval(a, env)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// getMember reads target.prop or target[index]. Own properties shadow every
// built-in accessor: the Props check always runs first.
func (ip *Interp) getMember(target *runtime.Value, e *ast.MemberExpr, env *runtime.Environment) (*runtime.Value, error) {
	name := e.Prop
	var indexVal *runtime.Value
	if e.Index != nil {
		idx, err := ip.Eval(e.Index, env)
		if err != nil {
			return nil, err
		}
		indexVal = idx
		name = runtime.ToString(idx)
	}

	switch target.Kind {
	case runtime.KindUndefined, runtime.KindNull:
		return nil, runtime.Errf("Cannot read properties of %s (reading '%s')",
			runtime.ToString(target), name)
	case runtime.KindString:
		if v, ok := builtins.StringProperty(target.Str, name); ok {
			return v, nil
		}
		if indexVal != nil {
			if i, ok := asIndex(indexVal); ok {
				runes := []rune(target.Str)
				if i >= 0 && i < len(runes) {
					return runtime.NewString(string(runes[i])), nil
				}
			}
		}
		return runtime.Undefined, nil
	case runtime.KindObject:
		return ip.getObjectMember(target.Obj, name, indexVal)
	}
	return runtime.Undefined, nil
}

func (ip *Interp) getObjectMember(o *runtime.Object, name string, indexVal *runtime.Value) (*runtime.Value, error) {
	// User-assigned properties win over built-in accessors on every kind.
	if v := o.GetOwn(name); v != nil {
		return v, nil
	}
	switch o.Kind {
	case runtime.ObjArray:
		if name == "length" {
			return runtime.NewNumber(int64(len(o.Elems))), nil
		}
		if i, ok := nameAsIndex(name, indexVal); ok {
			if i >= 0 && i < len(o.Elems) {
				if o.Elems[i] == nil {
					return runtime.Undefined, nil
				}
				return o.Elems[i], nil
			}
			return runtime.Undefined, nil
		}
	case runtime.ObjMap, runtime.ObjSet:
		if name == "size" {
			if v, ok := builtins.CollectionSize(o); ok {
				return v, nil
			}
		}
	case runtime.ObjNode:
		if v, ok := builtins.NodeProperty(o, name); ok {
			return v, nil
		}
	case runtime.ObjURL:
		if v, ok := builtins.URLProperty(o, name); ok {
			return v, nil
		}
	case runtime.ObjTypedArray:
		if i, ok := nameAsIndex(name, indexVal); ok {
			return builtins.TypedArrayIndex(o, i), nil
		}
		if v, ok := builtins.TypedArrayProperty(o, name); ok {
			return v, nil
		}
	case runtime.ObjBuffer:
		if v, ok := builtins.BufferProperty(o, name); ok {
			return v, nil
		}
	case runtime.ObjBlob:
		if v, ok := builtins.BlobProperty(o, name); ok {
			return v, nil
		}
	case runtime.ObjRegExp:
		switch name {
		case "source":
			return runtime.NewString(o.Pattern), nil
		case "flags":
			return runtime.NewString(o.Flags), nil
		case "global":
			return runtime.NewBool(regexHasFlag(o, 'g')), nil
		case "lastIndex":
			return runtime.NewNumber(0), nil
		}
	case runtime.ObjFunction:
		switch name {
		case "name":
			return runtime.NewString(o.Fn.Name), nil
		case "length":
			if o.Fn.Handler != nil {
				return runtime.NewNumber(int64(len(o.Fn.Handler.Params))), nil
			}
			return runtime.NewNumber(0), nil
		}
	}
	return runtime.Undefined, nil
}

func regexHasFlag(o *runtime.Object, f byte) bool {
	for i := 0; i < len(o.Flags); i++ {
		if o.Flags[i] == f {
			return true
		}
	}
	return false
}

// setMember writes target.prop = v with the kind-specific routes: array
// indices and length, element fields, typed array slots, plain properties
// everywhere else.
func (ip *Interp) setMember(target *runtime.Value, e *ast.MemberExpr, v *runtime.Value, env *runtime.Environment) error {
	if target.Kind != runtime.KindObject {
		if target.Kind == runtime.KindUndefined || target.Kind == runtime.KindNull {
			return runtime.Errf("Cannot set properties of %s", runtime.ToString(target))
		}
		// Primitive property writes are silently dropped.
		return nil
	}
	o := target.Obj
	name := e.Prop
	var indexVal *runtime.Value
	if e.Index != nil {
		idx, err := ip.Eval(e.Index, env)
		if err != nil {
			return err
		}
		indexVal = idx
		name = runtime.ToString(idx)
	}

	switch o.Kind {
	case runtime.ObjArray:
		if name == "length" {
			n := int(runtime.ToNumberUnary(v))
			if n < 0 {
				return runtime.Errf("Invalid array length")
			}
			for len(o.Elems) < n {
				o.Elems = append(o.Elems, runtime.Undefined)
			}
			if n < len(o.Elems) {
				o.Elems = o.Elems[:n]
			}
			return nil
		}
		if i, ok := nameAsIndex(name, indexVal); ok && i >= 0 {
			for len(o.Elems) <= i {
				o.Elems = append(o.Elems, runtime.Undefined)
			}
			o.Elems[i] = v
			return nil
		}
	case runtime.ObjTypedArray:
		if i, ok := nameAsIndex(name, indexVal); ok {
			return builtins.SetTypedArrayIndex(o, i, runtime.ToNumberUnary(v))
		}
	case runtime.ObjNode:
		if builtins.SetNodeProperty(o, name, v) {
			return nil
		}
	}
	o.SetOwn(name, v)
	return nil
}

// evalMemberCall dispatches target.method(args). An own property holding a
// function shadows the built-in method of the same name.
func (ip *Interp) evalMemberCall(e *ast.MemberCall, env *runtime.Environment) (*runtime.Value, error) {
	target, err := ip.Eval(e.Target, env)
	if err != nil {
		return nil, err
	}
	args, err := ip.evalArgs(e.Args, env)
	if err != nil {
		return nil, err
	}
	return ip.invokeMethod(target, e.Method, args)
}

func (ip *Interp) invokeMethod(target *runtime.Value, method string, args []*runtime.Value) (*runtime.Value, error) {
	switch target.Kind {
	case runtime.KindUndefined, runtime.KindNull:
		return nil, runtime.Errf("Cannot read properties of %s (reading '%s')",
			runtime.ToString(target), method)
	case runtime.KindString:
		return builtins.StringMethod(target.Str, method, args, ip.callFunc())
	case runtime.KindNumber, runtime.KindFloat:
		return builtins.NumberMethod(target, method, args)
	case runtime.KindBigInt:
		if method == "toString" {
			return runtime.NewString(target.Big.String()), nil
		}
		return nil, runtime.Errf("%q is not a function on BigInt", method)
	case runtime.KindBool:
		if method == "toString" || method == "valueOf" {
			return runtime.NewString(runtime.ToString(target)), nil
		}
		return nil, runtime.Errf("%q is not a function on booleans", method)
	}

	o := target.Obj
	// The shadow rule: a caller-installed property takes the call.
	if own := o.GetOwn(method); own != nil {
		if own.Kind == runtime.KindObject && own.Obj.Kind == runtime.ObjFunction {
			return ip.Call(own, args)
		}
		return nil, runtime.Errf("%s is not a function", method)
	}

	switch o.Kind {
	case runtime.ObjArray:
		return builtins.ArrayMethod(o, method, args, ip.callFunc())
	case runtime.ObjMap:
		return builtins.MapMethod(o, method, args, ip.callFunc())
	case runtime.ObjSet:
		return builtins.SetMethod(o, method, args, ip.callFunc())
	case runtime.ObjDate:
		return builtins.DateMethod(o, method, args)
	case runtime.ObjRegExp:
		return builtins.RegExpMethod(o, method, args)
	case runtime.ObjPromise:
		return ip.promiseMethod(target, method, args)
	case runtime.ObjURL:
		return builtins.URLMethod(o, method, args)
	case runtime.ObjSearchParams, runtime.ObjFormData:
		return builtins.SearchParamsMethod(o, method, args, ip.callFunc())
	case runtime.ObjTypedArray:
		return builtins.TypedArrayMethod(o, method, args, ip.callFunc())
	case runtime.ObjBuffer:
		return builtins.BufferMethod(o, method, args)
	case runtime.ObjBlob:
		return builtins.BlobMethod(o, method, args)
	case runtime.ObjNode:
		return ip.Doc.NodeMethod(o, method, args)
	case runtime.ObjIntlFormat:
		return builtins.IntlMethod(o, method, args)
	case runtime.ObjFunction:
		switch method {
		case "call":
			if len(args) > 0 {
				args = args[1:]
			}
			return ip.Call(target, args)
		case "apply":
			var applied []*runtime.Value
			if len(args) > 1 && args[1].Kind == runtime.KindObject && args[1].Obj.Kind == runtime.ObjArray {
				applied = args[1].Obj.Elems
			}
			return ip.Call(target, applied)
		}
	}
	return builtins.PlainObjectMethod(o, method, args)
}

// evalNewCall handles `new Name(...)` for script-defined constructors: the
// function runs and a plain object stands in when it does not return one.
func (ip *Interp) evalNewCall(e *ast.NewCall, env *runtime.Environment) (*runtime.Value, error) {
	fn, ok := env.Get(e.Name)
	if !ok || fn.Kind != runtime.KindObject || fn.Obj.Kind != runtime.ObjFunction {
		return nil, runtime.Errf("%s is not a constructor", e.Name)
	}
	args, err := ip.evalArgs(e.Args, env)
	if err != nil {
		return nil, err
	}
	ret, err := ip.Call(fn, args)
	if err != nil {
		return nil, err
	}
	if ret.Kind == runtime.KindObject {
		return ret, nil
	}
	return runtime.NewCell(runtime.ObjPlain), nil
}

func asIndex(v *runtime.Value) (int, bool) {
	f := runtime.ToNumberUnary(v)
	if math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// nameAsIndex recognizes numeric member names so a[1] and a["1"] route the
// same way.
func nameAsIndex(name string, indexVal *runtime.Value) (int, bool) {
	if indexVal != nil {
		if i, ok := asIndex(indexVal); ok {
			return i, true
		}
		return 0, false
	}
	if name == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return 0, false
		}
		n = n*10 + int(name[i]-'0')
	}
	return n, true
}
