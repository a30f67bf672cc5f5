package builtins

import (
	"github.com/example/minjs/runtime"
)

// MapMethod dispatches method calls on a Map receiver.
func MapMethod(recv *runtime.Object, name string, args []*runtime.Value, call CallFunc) (*runtime.Value, error) {
	m := recv.MapData
	switch name {
	case "get":
		return m.Get(argAt(args, 0)), nil
	case "set":
		m.Set(argAt(args, 0), argAt(args, 1))
		return runtime.NewObject(recv), nil
	case "has":
		return runtime.NewBool(m.Has(argAt(args, 0))), nil
	case "delete":
		return runtime.NewBool(m.Delete(argAt(args, 0))), nil
	case "clear":
		m.Clear()
		return runtime.Undefined, nil
	case "forEach":
		fn := argAt(args, 0)
		if !isCallable(fn) {
			return nil, runtime.Errf("forEach expects a function")
		}
		self := runtime.NewObject(recv)
		err := m.Each(func(k, v *runtime.Value) error {
			_, cerr := call(fn, []*runtime.Value{v, k, self})
			return cerr
		})
		return runtime.Undefined, err
	case "keys", "values", "entries":
		var out []*runtime.Value
		m.Each(func(k, v *runtime.Value) error {
			switch name {
			case "keys":
				out = append(out, k)
			case "values":
				out = append(out, v)
			default:
				out = append(out, runtime.NewArrayValue([]*runtime.Value{k, v}))
			}
			return nil
		})
		return runtime.NewArrayValue(out), nil
	}
	return nil, runtime.Errf("%q is not a function on Map", name)
}

// SetMethod dispatches method calls on a Set receiver.
func SetMethod(recv *runtime.Object, name string, args []*runtime.Value, call CallFunc) (*runtime.Value, error) {
	s := recv.SetData
	switch name {
	case "add":
		s.Set(argAt(args, 0), runtime.True)
		return runtime.NewObject(recv), nil
	case "has":
		return runtime.NewBool(s.Has(argAt(args, 0))), nil
	case "delete":
		return runtime.NewBool(s.Delete(argAt(args, 0))), nil
	case "clear":
		s.Clear()
		return runtime.Undefined, nil
	case "forEach":
		fn := argAt(args, 0)
		if !isCallable(fn) {
			return nil, runtime.Errf("forEach expects a function")
		}
		self := runtime.NewObject(recv)
		err := s.Each(func(k, _ *runtime.Value) error {
			_, cerr := call(fn, []*runtime.Value{k, k, self})
			return cerr
		})
		return runtime.Undefined, err
	case "values", "keys":
		var out []*runtime.Value
		s.Each(func(k, _ *runtime.Value) error {
			out = append(out, k)
			return nil
		})
		return runtime.NewArrayValue(out), nil
	}
	return nil, runtime.Errf("%q is not a function on Set", name)
}

// CollectionSize resolves the size accessor on Map and Set receivers.
func CollectionSize(recv *runtime.Object) (*runtime.Value, bool) {
	switch recv.Kind {
	case runtime.ObjMap:
		return runtime.NewNumber(int64(recv.MapData.Len())), true
	case runtime.ObjSet:
		return runtime.NewNumber(int64(recv.SetData.Len())), true
	}
	return nil, false
}
