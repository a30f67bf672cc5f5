package builtins

import (
	"math"
	"testing"

	"github.com/example/minjs/runtime"
)

func nums(xs ...int64) *runtime.Value {
	elems := make([]*runtime.Value, len(xs))
	for i, x := range xs {
		elems[i] = runtime.NewNumber(x)
	}
	return runtime.NewArrayValue(elems)
}

// callable builds a function-kind cell for methods that validate their
// callback argument; the test's CallFunc supplies the actual behavior.
func callable() *runtime.Value {
	fn := runtime.NewCell(runtime.ObjFunction)
	fn.Obj.Fn = &runtime.Function{Name: "cb"}
	return fn
}

func arrMethod(t *testing.T, recv *runtime.Value, name string, args ...*runtime.Value) *runtime.Value {
	t.Helper()
	v, err := ArrayMethod(recv.Obj, name, args, nil)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return v
}

func TestPushReturnsNewLengthAndMutates(t *testing.T) {
	a := nums(1)
	if v := arrMethod(t, a, "push", runtime.NewNumber(2)); v.Num != 2 {
		t.Errorf("push should return the new length, got %s", runtime.ToString(v))
	}
	if len(a.Obj.Elems) != 2 {
		t.Error("push should mutate the receiver cell")
	}
}

func TestPopShiftOnEmpty(t *testing.T) {
	a := nums()
	if v := arrMethod(t, a, "pop"); v.Kind != runtime.KindUndefined {
		t.Error("pop on empty should be undefined")
	}
	if v := arrMethod(t, a, "shift"); v.Kind != runtime.KindUndefined {
		t.Error("shift on empty should be undefined")
	}
}

func TestSliceCopiesWithoutMutating(t *testing.T) {
	a := nums(1, 2, 3, 4)
	v := arrMethod(t, a, "slice", runtime.NewNumber(1), runtime.NewNumber(3))
	if runtime.ToString(v) != "2,3" {
		t.Errorf("got %s", runtime.ToString(v))
	}
	if len(a.Obj.Elems) != 4 {
		t.Error("slice must not mutate")
	}
}

func TestSpliceReturnsRemoved(t *testing.T) {
	a := nums(1, 2, 3, 4)
	removed := arrMethod(t, a, "splice", runtime.NewNumber(1), runtime.NewNumber(2))
	if runtime.ToString(removed) != "2,3" {
		t.Errorf("removed: got %s", runtime.ToString(removed))
	}
	if runtime.ToString(a) != "1,4" {
		t.Errorf("remainder: got %s", runtime.ToString(a))
	}
}

func TestIncludesTreatsNaNEqual(t *testing.T) {
	a := runtime.NewArrayValue([]*runtime.Value{runtime.NewFloat(math.NaN())})
	if v := arrMethod(t, a, "includes", runtime.NewFloat(math.NaN())); !v.Bool {
		t.Error("includes should find NaN")
	}
	if v := arrMethod(t, a, "indexOf", runtime.NewFloat(math.NaN())); v.Num != -1 {
		t.Error("indexOf must not find NaN")
	}
}

func TestJoinSkipsNullish(t *testing.T) {
	a := runtime.NewArrayValue([]*runtime.Value{
		runtime.NewNumber(1), runtime.Null, runtime.Undefined, runtime.NewString("x"),
	})
	v := arrMethod(t, a, "join", runtime.NewString("-"))
	if v.Str != "1---x" {
		t.Errorf("got %q", v.Str)
	}
}

func TestFlat(t *testing.T) {
	inner := nums(2, 3)
	a := runtime.NewArrayValue([]*runtime.Value{runtime.NewNumber(1), inner})
	v := arrMethod(t, a, "flat")
	if runtime.ToString(v) != "1,2,3" {
		t.Errorf("got %s", runtime.ToString(v))
	}
}

func TestMapFilterReduceThroughCallback(t *testing.T) {
	double := func(fn *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(args[0].Num * 2), nil
	}
	a := nums(1, 2, 3)
	v, err := ArrayMethod(a.Obj, "map", []*runtime.Value{callable()}, double)
	if err != nil {
		t.Fatal(err)
	}
	if runtime.ToString(v) != "2,4,6" {
		t.Errorf("map: got %s", runtime.ToString(v))
	}

	odd := func(fn *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewBool(args[0].Num%2 == 1), nil
	}
	v, err = ArrayMethod(a.Obj, "filter", []*runtime.Value{callable()}, odd)
	if err != nil {
		t.Fatal(err)
	}
	if runtime.ToString(v) != "1,3" {
		t.Errorf("filter: got %s", runtime.ToString(v))
	}

	sum := func(fn *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(args[0].Num + args[1].Num), nil
	}
	v, err = ArrayMethod(a.Obj, "reduce", []*runtime.Value{callable(), runtime.NewNumber(0)}, sum)
	if err != nil {
		t.Fatal(err)
	}
	if v.Num != 6 {
		t.Errorf("reduce: got %s", runtime.ToString(v))
	}
}

func TestSortWithComparator(t *testing.T) {
	desc := func(fn *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(args[1].Num - args[0].Num), nil
	}
	a := nums(2, 3, 1)
	v, err := ArrayMethod(a.Obj, "sort", []*runtime.Value{callable()}, desc)
	if err != nil {
		t.Fatal(err)
	}
	if runtime.ToString(v) != "3,2,1" {
		t.Errorf("got %s", runtime.ToString(v))
	}
}

func TestSortDefaultIsLexicographic(t *testing.T) {
	a := nums(10, 9, 2)
	v, err := ArrayMethod(a.Obj, "sort", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if runtime.ToString(v) != "10,2,9" {
		t.Errorf("got %s", runtime.ToString(v))
	}
}

func TestUnknownArrayMethod(t *testing.T) {
	if _, err := ArrayMethod(nums().Obj, "frobnicate", nil, nil); err == nil {
		t.Error("expected error")
	}
}
