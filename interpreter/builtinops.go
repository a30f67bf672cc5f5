package interpreter

import (
	"github.com/example/minjs/ast"
	"github.com/example/minjs/builtins"
	"github.com/example/minjs/runtime"
)

// evalOpt evaluates an optional sub-expression, nil meaning undefined.
func (ip *Interp) evalOpt(e ast.Expr, env *runtime.Environment) (*runtime.Value, error) {
	if e == nil {
		return runtime.Undefined, nil
	}
	return ip.Eval(e, env)
}

// evalBuiltin covers the recognized builtin call shapes. Each arm pairs with
// one parser recognizer.
func (ip *Interp) evalBuiltin(expr ast.Expr, env *runtime.Environment) (*runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.MathCall:
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		return builtins.MathMethod(e.Method, args)
	case *ast.MathConst:
		return builtins.MathConstant(e.Name)

	case *ast.DateNow:
		return runtime.NewNumber(ip.Sched.NowMS()), nil
	case *ast.NewDate:
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		return builtins.NewDateValue(args, ip.Sched.NowMS())

	case *ast.NewRegExp:
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		return ip.newRegExpFromArgs(args)
	case *ast.NewMap:
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		return newMapValue(args)
	case *ast.NewSet:
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		return newSetValue(args)
	case *ast.NewPromise:
		executor, err := ip.Eval(e.Executor, env)
		if err != nil {
			return nil, err
		}
		if executor.Kind != runtime.KindObject || executor.Obj.Kind != runtime.ObjFunction {
			return nil, runtime.Errf("Promise resolver is not a function")
		}
		return ip.runExecutor(executor)

	case *ast.NewURL:
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		return builtins.NewURLValue(args)
	case *ast.NewURLSearchParams:
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		return builtins.NewSearchParamsValue(args), nil
	case *ast.NewFormData:
		return builtins.NewFormDataValue(), nil
	case *ast.NewArrayBuffer:
		size, err := ip.Eval(e.Size, env)
		if err != nil {
			return nil, err
		}
		return builtins.NewArrayBufferValue([]*runtime.Value{size})
	case *ast.NewTypedArray:
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		return builtins.NewTypedArrayValue(e.Name, args)
	case *ast.NewBlob:
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		return builtins.NewBlobValue(args)

	case *ast.NewIntlNumberFormat:
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		return builtins.NewIntlFormatValue("number", args)
	case *ast.NewIntlDateTimeFormat:
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		return builtins.NewIntlFormatValue("datetime", args)
	case *ast.NewIntlCollator:
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		return builtins.NewIntlFormatValue("collator", args)

	case *ast.JSONParse:
		arg, err := ip.Eval(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return builtins.JSONParse(runtime.ToString(arg))
	case *ast.JSONStringify:
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return runtime.Undefined, nil
		}
		var indent *runtime.Value
		if len(args) > 2 {
			indent = args[2]
		}
		return builtins.JSONStringify(args[0], indent)

	case *ast.ObjectKeys:
		arg, err := ip.Eval(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return builtins.ObjectKeys(arg)
	case *ast.ObjectValues:
		arg, err := ip.Eval(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return builtins.ObjectValues(arg)
	case *ast.ObjectEntries:
		arg, err := ip.Eval(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return builtins.ObjectEntries(arg)
	case *ast.ObjectAssign:
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		return builtins.ObjectAssign(args)

	case *ast.ArrayIsArray:
		arg, err := ip.Eval(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return runtime.NewBool(arg.Kind == runtime.KindObject && arg.Obj.Kind == runtime.ObjArray), nil
	case *ast.ArrayFrom:
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		return ip.arrayFrom(args)
	case *ast.ArrayOf:
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		return runtime.NewArrayValue(args), nil

	case *ast.PromiseResolve:
		arg, err := ip.evalOpt(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return runtime.ResolvedPromise(arg), nil
	case *ast.PromiseReject:
		arg, err := ip.evalOpt(e.Arg, env)
		if err != nil {
			return nil, err
		}
		// Routed through settle so an ignored rejection gets reported.
		p := runtime.NewPromise()
		ip.settle(p, arg, true)
		return p, nil
	case *ast.PromiseAll:
		arg, err := ip.Eval(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return ip.promiseAll(arg)
	case *ast.PromiseRace:
		arg, err := ip.Eval(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return ip.promiseRace(arg)

	case *ast.SetTimeout:
		return ip.scheduleTimer(e.Callback, e.Delay, e.Args, env, false)
	case *ast.SetInterval:
		return ip.scheduleTimer(e.Callback, e.Delay, e.Args, env, true)
	case *ast.ClearTimeout:
		return ip.cancelTimer(e.ID, env)
	case *ast.ClearInterval:
		return ip.cancelTimer(e.ID, env)
	case *ast.QueueMicrotask:
		cb, err := ip.Eval(e.Callback, env)
		if err != nil {
			return nil, err
		}
		if cb.Kind != runtime.KindObject || cb.Obj.Kind != runtime.ObjFunction {
			return nil, runtime.Errf("queueMicrotask expects a function")
		}
		ip.Sched.QueueMicrotask(cb, nil, nil)
		return runtime.Undefined, nil
	case *ast.RequestAnimationFrame:
		cb, err := ip.Eval(e.Callback, env)
		if err != nil {
			return nil, err
		}
		if cb.Kind != runtime.KindObject || cb.Obj.Kind != runtime.ObjFunction {
			return nil, runtime.Errf("requestAnimationFrame expects a function")
		}
		// One frame on the virtual clock.
		id := ip.Sched.ScheduleTimeout(cb, 16,
			[]*runtime.Value{runtime.NewNumber(ip.Sched.NowMS() + 16)}, cb.Obj.Fn.Env)
		return runtime.NewNumber(id), nil

	case *ast.ConsoleCall:
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		ip.consoleLine(e.Level, args)
		return runtime.Undefined, nil

	case *ast.ParseIntCall:
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		return builtins.ParseIntValue(args)
	case *ast.ParseFloatCall:
		arg, err := ip.Eval(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return builtins.ParseFloatValue([]*runtime.Value{arg})
	case *ast.IsNaNCall:
		arg, err := ip.Eval(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return builtins.IsNaNValue([]*runtime.Value{arg})
	case *ast.IsFiniteCall:
		arg, err := ip.Eval(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return builtins.IsFiniteValue([]*runtime.Value{arg})

	case *ast.NumberCtor:
		if e.Arg == nil {
			return builtins.NumberCtorValue(nil)
		}
		arg, err := ip.Eval(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return builtins.NumberCtorValue([]*runtime.Value{arg})
	case *ast.StringCtor:
		if e.Arg == nil {
			return builtins.StringCtorValue(nil)
		}
		arg, err := ip.Eval(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return builtins.StringCtorValue([]*runtime.Value{arg})
	case *ast.BooleanCtor:
		arg, err := ip.evalOpt(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return builtins.BooleanCtorValue([]*runtime.Value{arg})
	case *ast.SymbolCall:
		arg, err := ip.evalOpt(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return builtins.SymbolValue([]*runtime.Value{arg})

	case *ast.EncodeURIComponent:
		arg, err := ip.Eval(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return builtins.EncodeURIComponentValue([]*runtime.Value{arg})
	case *ast.DecodeURIComponent:
		arg, err := ip.Eval(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return builtins.DecodeURIComponentValue([]*runtime.Value{arg})
	case *ast.EncodeURI:
		arg, err := ip.Eval(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return builtins.EncodeURIValue([]*runtime.Value{arg})
	case *ast.DecodeURI:
		arg, err := ip.Eval(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return builtins.DecodeURIValue([]*runtime.Value{arg})
	case *ast.BtoaCall:
		arg, err := ip.Eval(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return builtins.BtoaValue([]*runtime.Value{arg})
	case *ast.AtobCall:
		arg, err := ip.Eval(e.Arg, env)
		if err != nil {
			return nil, err
		}
		return builtins.AtobValue([]*runtime.Value{arg})

	case *ast.StorageCall:
		store, err := ip.openStorage()
		if err != nil {
			return nil, err
		}
		if e.Method == "length" {
			return store.Length(e.Area)
		}
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		return store.Method(e.Area, e.Method, args)

	case *ast.DocumentCall:
		args, err := ip.evalArgs(e.Args, env)
		if err != nil {
			return nil, err
		}
		return ip.Doc.Method(e.Method, args)
	}
	return nil, runtime.Errf("unsupported expression %s", expr.Kind())
}

func (ip *Interp) newRegExpFromArgs(args []*runtime.Value) (*runtime.Value, error) {
	if len(args) > 0 && args[0].Kind == runtime.KindObject && args[0].Obj.Kind == runtime.ObjRegExp {
		flags := args[0].Obj.Flags
		if len(args) > 1 && args[1].Kind == runtime.KindString {
			flags = args[1].Str
		}
		return builtins.NewRegExpValue(args[0].Obj.Pattern, flags)
	}
	pattern := ""
	if len(args) > 0 && args[0].Kind != runtime.KindUndefined {
		pattern = runtime.ToString(args[0])
	}
	flags := ""
	if len(args) > 1 && args[1].Kind != runtime.KindUndefined {
		flags = runtime.ToString(args[1])
	}
	return builtins.NewRegExpValue(pattern, flags)
}

func newMapValue(args []*runtime.Value) (*runtime.Value, error) {
	v := runtime.NewCell(runtime.ObjMap)
	v.Obj.MapData = runtime.NewOrderedMap()
	if len(args) > 0 && args[0].Kind == runtime.KindObject && args[0].Obj.Kind == runtime.ObjArray {
		for _, entry := range args[0].Obj.Elems {
			if entry.Kind != runtime.KindObject || entry.Obj.Kind != runtime.ObjArray || len(entry.Obj.Elems) < 2 {
				return nil, runtime.Errf("Iterator value is not an entry object")
			}
			v.Obj.MapData.Set(entry.Obj.Elems[0], entry.Obj.Elems[1])
		}
	}
	return v, nil
}

func newSetValue(args []*runtime.Value) (*runtime.Value, error) {
	v := runtime.NewCell(runtime.ObjSet)
	v.Obj.SetData = runtime.NewOrderedMap()
	if len(args) > 0 && args[0].Kind == runtime.KindObject && args[0].Obj.Kind == runtime.ObjArray {
		for _, el := range args[0].Obj.Elems {
			v.Obj.SetData.Set(el, runtime.True)
		}
	}
	return v, nil
}

func (ip *Interp) arrayFrom(args []*runtime.Value) (*runtime.Value, error) {
	if len(args) == 0 {
		return runtime.NewArrayValue(nil), nil
	}
	elems, err := spreadElements(args[0])
	if err != nil {
		// Array-likes with a length property still convert.
		if args[0].Kind == runtime.KindObject {
			if l := args[0].Obj.GetOwn("length"); l != nil {
				n := int(runtime.ToNumberUnary(l))
				elems = make([]*runtime.Value, 0, n)
				for i := 0; i < n; i++ {
					el := args[0].Obj.GetOwn(itoaKey(i))
					if el == nil {
						el = runtime.Undefined
					}
					elems = append(elems, el)
				}
				err = nil
			}
		}
		if err != nil {
			return nil, err
		}
	}
	if len(args) > 1 && args[1].Kind == runtime.KindObject && args[1].Obj.Kind == runtime.ObjFunction {
		for i, el := range elems {
			mapped, err := ip.Call(args[1], []*runtime.Value{el, runtime.NewNumber(int64(i))})
			if err != nil {
				return nil, err
			}
			elems[i] = mapped
		}
	}
	return runtime.NewArrayValue(elems), nil
}

// scheduleTimer queues a timer callback with the callback's own captured
// environment attached, which is where a declared timer id gets patched in.
func (ip *Interp) scheduleTimer(cbExpr, delayExpr ast.Expr, extraArgs []ast.Expr, env *runtime.Environment, repeat bool) (*runtime.Value, error) {
	cb, err := ip.Eval(cbExpr, env)
	if err != nil {
		return nil, err
	}
	if cb.Kind != runtime.KindObject || cb.Obj.Kind != runtime.ObjFunction {
		return nil, runtime.Errf("timer callback is not a function")
	}
	delay := int64(0)
	if delayExpr != nil {
		d, err := ip.Eval(delayExpr, env)
		if err != nil {
			return nil, err
		}
		delay = int64(runtime.ToNumberUnary(d))
	}
	args, err := ip.evalArgs(extraArgs, env)
	if err != nil {
		return nil, err
	}
	taskEnv := cb.Obj.Fn.Env
	var id int64
	if repeat {
		id = ip.Sched.ScheduleInterval(cb, delay, args, taskEnv)
	} else {
		id = ip.Sched.ScheduleTimeout(cb, delay, args, taskEnv)
	}
	return runtime.NewNumber(id), nil
}

func (ip *Interp) cancelTimer(idExpr ast.Expr, env *runtime.Environment) (*runtime.Value, error) {
	if idExpr == nil {
		return runtime.Undefined, nil
	}
	id, err := ip.Eval(idExpr, env)
	if err != nil {
		return nil, err
	}
	ip.Sched.Cancel(int64(runtime.ToNumberUnary(id)))
	return runtime.Undefined, nil
}

func itoaKey(i int) string {
	return runtime.ToString(runtime.NewNumber(int64(i)))
}
