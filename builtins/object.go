package builtins

import (
	"strconv"

	"github.com/example/minjs/runtime"
)

// ObjectKeys implements Object.keys over every container kind that exposes
// enumerable members.
func ObjectKeys(v *runtime.Value) (*runtime.Value, error) {
	if v.Kind != runtime.KindObject {
		if v.Kind == runtime.KindString {
			out := make([]*runtime.Value, len([]rune(v.Str)))
			for i := range out {
				out[i] = runtime.NewString(itoa(i))
			}
			return runtime.NewArrayValue(out), nil
		}
		return runtime.NewArrayValue(nil), nil
	}
	o := v.Obj
	var out []*runtime.Value
	if o.Kind == runtime.ObjArray {
		for i := range o.Elems {
			out = append(out, runtime.NewString(itoa(i)))
		}
	}
	for _, k := range o.OwnKeys() {
		out = append(out, runtime.NewString(k))
	}
	return runtime.NewArrayValue(out), nil
}

// ObjectValues mirrors ObjectKeys on the value side.
func ObjectValues(v *runtime.Value) (*runtime.Value, error) {
	if v.Kind != runtime.KindObject {
		return runtime.NewArrayValue(nil), nil
	}
	o := v.Obj
	var out []*runtime.Value
	if o.Kind == runtime.ObjArray {
		out = append(out, o.Elems...)
	}
	for _, k := range o.OwnKeys() {
		out = append(out, o.GetOwn(k))
	}
	return runtime.NewArrayValue(out), nil
}

// ObjectEntries returns [key, value] pairs in insertion order.
func ObjectEntries(v *runtime.Value) (*runtime.Value, error) {
	if v.Kind != runtime.KindObject {
		return runtime.NewArrayValue(nil), nil
	}
	o := v.Obj
	var out []*runtime.Value
	if o.Kind == runtime.ObjArray {
		for i, el := range o.Elems {
			out = append(out, runtime.NewArrayValue([]*runtime.Value{
				runtime.NewString(itoa(i)), el,
			}))
		}
	}
	for _, k := range o.OwnKeys() {
		out = append(out, runtime.NewArrayValue([]*runtime.Value{
			runtime.NewString(k), o.GetOwn(k),
		}))
	}
	return runtime.NewArrayValue(out), nil
}

// ObjectAssign copies own properties of each source into target and returns
// target itself, preserving the shared cell.
func ObjectAssign(args []*runtime.Value) (*runtime.Value, error) {
	target := argAt(args, 0)
	if target.Kind != runtime.KindObject {
		return nil, runtime.Errf("Object.assign called on non-object")
	}
	for _, src := range args[1:] {
		if src.Kind != runtime.KindObject {
			continue
		}
		for _, k := range src.Obj.OwnKeys() {
			target.Obj.SetOwn(k, src.Obj.GetOwn(k))
		}
	}
	return target, nil
}

// PlainObjectMethod covers the handful of methods callable on any object.
func PlainObjectMethod(recv *runtime.Object, name string, args []*runtime.Value) (*runtime.Value, error) {
	switch name {
	case "hasOwnProperty":
		key := argString(args, 0)
		return runtime.NewBool(recv.GetOwn(key) != nil), nil
	case "toString":
		return runtime.NewString("[object Object]"), nil
	}
	return nil, runtime.Errf("%q is not a function", name)
}

func itoa(i int) string { return strconv.Itoa(i) }
