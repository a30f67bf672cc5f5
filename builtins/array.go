package builtins

import (
	"sort"
	"strings"

	"github.com/example/minjs/runtime"
)

// ArrayMethod dispatches a method call on an array receiver. The receiver's
// element slice is mutated in place for the mutating methods so every alias
// of the cell observes the change.
func ArrayMethod(recv *runtime.Object, name string, args []*runtime.Value, call CallFunc) (*runtime.Value, error) {
	switch name {
	case "push":
		recv.Elems = append(recv.Elems, args...)
		return runtime.NewNumber(int64(len(recv.Elems))), nil
	case "pop":
		if len(recv.Elems) == 0 {
			return runtime.Undefined, nil
		}
		last := recv.Elems[len(recv.Elems)-1]
		recv.Elems = recv.Elems[:len(recv.Elems)-1]
		return last, nil
	case "shift":
		if len(recv.Elems) == 0 {
			return runtime.Undefined, nil
		}
		first := recv.Elems[0]
		recv.Elems = recv.Elems[1:]
		return first, nil
	case "unshift":
		recv.Elems = append(append([]*runtime.Value{}, args...), recv.Elems...)
		return runtime.NewNumber(int64(len(recv.Elems))), nil
	case "slice":
		start := relativeIndex(argAt(args, 0), len(recv.Elems))
		end := len(recv.Elems)
		if len(args) > 1 && args[1].Kind != runtime.KindUndefined {
			end = relativeIndex(args[1], len(recv.Elems))
		}
		if start >= end {
			return runtime.NewArrayValue(nil), nil
		}
		out := make([]*runtime.Value, end-start)
		copy(out, recv.Elems[start:end])
		return runtime.NewArrayValue(out), nil
	case "splice":
		return arraySplice(recv, args), nil
	case "concat":
		out := append([]*runtime.Value{}, recv.Elems...)
		for _, a := range args {
			if a.Kind == runtime.KindObject && a.Obj.Kind == runtime.ObjArray {
				out = append(out, a.Obj.Elems...)
			} else {
				out = append(out, a)
			}
		}
		return runtime.NewArrayValue(out), nil
	case "join":
		sep := ","
		if len(args) > 0 && args[0].Kind != runtime.KindUndefined {
			sep = argString(args, 0)
		}
		parts := make([]string, len(recv.Elems))
		for i, el := range recv.Elems {
			if el == nil || el.Kind == runtime.KindUndefined || el.Kind == runtime.KindNull {
				continue
			}
			parts[i] = runtime.ToString(el)
		}
		return runtime.NewString(strings.Join(parts, sep)), nil
	case "indexOf":
		for i, el := range recv.Elems {
			if runtime.StrictEquals(el, argAt(args, 0)) {
				return runtime.NewNumber(int64(i)), nil
			}
		}
		return runtime.NewNumber(-1), nil
	case "lastIndexOf":
		for i := len(recv.Elems) - 1; i >= 0; i-- {
			if runtime.StrictEquals(recv.Elems[i], argAt(args, 0)) {
				return runtime.NewNumber(int64(i)), nil
			}
		}
		return runtime.NewNumber(-1), nil
	case "includes":
		for _, el := range recv.Elems {
			if runtime.SameValueZero(el, argAt(args, 0)) {
				return runtime.True, nil
			}
		}
		return runtime.False, nil
	case "reverse":
		for i, j := 0, len(recv.Elems)-1; i < j; i, j = i+1, j-1 {
			recv.Elems[i], recv.Elems[j] = recv.Elems[j], recv.Elems[i]
		}
		return runtime.NewObject(recv), nil
	case "flat":
		depth := 1
		if len(args) > 0 && args[0].Kind != runtime.KindUndefined {
			depth = toInteger(args[0])
		}
		return runtime.NewArrayValue(flatten(recv.Elems, depth)), nil
	case "fill":
		v := argAt(args, 0)
		start := 0
		end := len(recv.Elems)
		if len(args) > 1 {
			start = relativeIndex(args[1], len(recv.Elems))
		}
		if len(args) > 2 {
			end = relativeIndex(args[2], len(recv.Elems))
		}
		for i := start; i < end; i++ {
			recv.Elems[i] = v
		}
		return runtime.NewObject(recv), nil
	case "at":
		i := toInteger(argAt(args, 0))
		if i < 0 {
			i += len(recv.Elems)
		}
		if i < 0 || i >= len(recv.Elems) {
			return runtime.Undefined, nil
		}
		return recv.Elems[i], nil
	case "keys":
		out := make([]*runtime.Value, len(recv.Elems))
		for i := range recv.Elems {
			out[i] = runtime.NewNumber(int64(i))
		}
		return runtime.NewArrayValue(out), nil
	case "toString":
		v, err := ArrayMethod(recv, "join", nil, call)
		return v, err
	case "forEach", "map", "filter", "find", "findIndex", "some", "every", "flatMap":
		return arrayIterate(recv, name, args, call)
	case "reduce", "reduceRight":
		return arrayReduce(recv, name == "reduceRight", args, call)
	case "sort":
		return arraySort(recv, args, call)
	}
	return nil, runtime.Errf("%q is not a function on arrays", name)
}

func flatten(elems []*runtime.Value, depth int) []*runtime.Value {
	var out []*runtime.Value
	for _, el := range elems {
		if depth > 0 && el != nil && el.Kind == runtime.KindObject && el.Obj.Kind == runtime.ObjArray {
			out = append(out, flatten(el.Obj.Elems, depth-1)...)
		} else {
			out = append(out, el)
		}
	}
	return out
}

func arraySplice(recv *runtime.Object, args []*runtime.Value) *runtime.Value {
	length := len(recv.Elems)
	start := relativeIndex(argAt(args, 0), length)
	deleteCount := length - start
	if len(args) > 1 {
		deleteCount = toInteger(args[1])
		if deleteCount < 0 {
			deleteCount = 0
		}
		if deleteCount > length-start {
			deleteCount = length - start
		}
	}
	removed := make([]*runtime.Value, deleteCount)
	copy(removed, recv.Elems[start:start+deleteCount])
	var inserted []*runtime.Value
	if len(args) > 2 {
		inserted = args[2:]
	}
	tail := append([]*runtime.Value{}, recv.Elems[start+deleteCount:]...)
	recv.Elems = append(append(recv.Elems[:start], inserted...), tail...)
	return runtime.NewArrayValue(removed)
}

func arrayIterate(recv *runtime.Object, name string, args []*runtime.Value, call CallFunc) (*runtime.Value, error) {
	fn := argAt(args, 0)
	if !isCallable(fn) {
		return nil, runtime.Errf("%s expects a function", name)
	}
	self := runtime.NewObject(recv)
	var mapped []*runtime.Value
	for i, el := range recv.Elems {
		res, err := call(fn, []*runtime.Value{el, runtime.NewNumber(int64(i)), self})
		if err != nil {
			return nil, err
		}
		switch name {
		case "map":
			mapped = append(mapped, res)
		case "flatMap":
			if res.Kind == runtime.KindObject && res.Obj.Kind == runtime.ObjArray {
				mapped = append(mapped, res.Obj.Elems...)
			} else {
				mapped = append(mapped, res)
			}
		case "filter":
			if runtime.Truthy(res) {
				mapped = append(mapped, el)
			}
		case "find":
			if runtime.Truthy(res) {
				return el, nil
			}
		case "findIndex":
			if runtime.Truthy(res) {
				return runtime.NewNumber(int64(i)), nil
			}
		case "some":
			if runtime.Truthy(res) {
				return runtime.True, nil
			}
		case "every":
			if !runtime.Truthy(res) {
				return runtime.False, nil
			}
		}
	}
	switch name {
	case "map", "filter", "flatMap":
		return runtime.NewArrayValue(mapped), nil
	case "find":
		return runtime.Undefined, nil
	case "findIndex":
		return runtime.NewNumber(-1), nil
	case "some":
		return runtime.False, nil
	case "every":
		return runtime.True, nil
	}
	return runtime.Undefined, nil
}

func arrayReduce(recv *runtime.Object, fromRight bool, args []*runtime.Value, call CallFunc) (*runtime.Value, error) {
	fn := argAt(args, 0)
	if !isCallable(fn) {
		return nil, runtime.Errf("reduce expects a function")
	}
	elems := recv.Elems
	if fromRight {
		elems = make([]*runtime.Value, len(recv.Elems))
		for i, el := range recv.Elems {
			elems[len(recv.Elems)-1-i] = el
		}
	}
	var acc *runtime.Value
	start := 0
	if len(args) > 1 {
		acc = args[1]
	} else {
		if len(elems) == 0 {
			return nil, runtime.Errf("reduce of empty array with no initial value")
		}
		acc = elems[0]
		start = 1
	}
	self := runtime.NewObject(recv)
	for i := start; i < len(elems); i++ {
		idx := i
		if fromRight {
			idx = len(elems) - 1 - i
		}
		res, err := call(fn, []*runtime.Value{acc, elems[i], runtime.NewNumber(int64(idx)), self})
		if err != nil {
			return nil, err
		}
		acc = res
	}
	return acc, nil
}

func arraySort(recv *runtime.Object, args []*runtime.Value, call CallFunc) (*runtime.Value, error) {
	cmp := argAt(args, 0)
	var sortErr error
	sort.SliceStable(recv.Elems, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		a, b := recv.Elems[i], recv.Elems[j]
		if isCallable(cmp) {
			res, err := call(cmp, []*runtime.Value{a, b})
			if err != nil {
				sortErr = err
				return false
			}
			return runtime.ToNumberUnary(res) < 0
		}
		return runtime.ToString(a) < runtime.ToString(b)
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return runtime.NewObject(recv), nil
}
