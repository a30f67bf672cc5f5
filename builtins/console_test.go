package builtins

import (
	"testing"

	"github.com/example/minjs/runtime"
)

func TestFormatConsoleArgsStringsBare(t *testing.T) {
	got := FormatConsoleArgs([]*runtime.Value{
		runtime.NewString("got"),
		runtime.NewNumber(1),
		runtime.NewBool(true),
	})
	if got != "got 1 true" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatConsoleArgsQuotesNestedStrings(t *testing.T) {
	arr := runtime.NewArrayValue([]*runtime.Value{runtime.NewString("x")})
	got := FormatConsoleArgs([]*runtime.Value{runtime.NewString("list:"), arr})
	if got != "list: [ 'x' ]" {
		t.Fatalf("got %q", got)
	}
}

func TestInspectString(t *testing.T) {
	if got := Inspect(runtime.NewString("a"), 0); got != "'a'" {
		t.Fatalf("got %q", got)
	}
	if got := Inspect(runtime.NewString("it's"), 0); got != `'it\'s'` {
		t.Fatalf("got %q", got)
	}
}

func TestInspectArray(t *testing.T) {
	arr := runtime.NewArrayValue([]*runtime.Value{
		runtime.NewNumber(1),
		runtime.NewNumber(2),
	})
	if got := Inspect(arr, 0); got != "[ 1, 2 ]" {
		t.Fatalf("got %q", got)
	}
	empty := runtime.NewArrayValue(nil)
	if got := Inspect(empty, 0); got != "[]" {
		t.Fatalf("got %q", got)
	}
}

func TestInspectObject(t *testing.T) {
	o := runtime.NewCell(runtime.ObjPlain)
	o.Obj.SetOwn("k", runtime.NewString("v"))
	o.Obj.SetOwn("n", runtime.NewNumber(3))
	if got := Inspect(o, 0); got != "{ k: 'v', n: 3 }" {
		t.Fatalf("got %q", got)
	}
	empty := runtime.NewCell(runtime.ObjPlain)
	if got := Inspect(empty, 0); got != "{}" {
		t.Fatalf("got %q", got)
	}
}

func TestInspectMapAndSet(t *testing.T) {
	m := runtime.NewCell(runtime.ObjMap)
	m.Obj.MapData = runtime.NewOrderedMap()
	m.Obj.MapData.Set(runtime.NewString("a"), runtime.NewNumber(1))
	if got := Inspect(m, 0); got != "Map(1) { 'a' => 1 }" {
		t.Fatalf("got %q", got)
	}

	s := runtime.NewCell(runtime.ObjSet)
	s.Obj.SetData = runtime.NewOrderedMap()
	s.Obj.SetData.Set(runtime.NewNumber(1), runtime.Undefined)
	s.Obj.SetData.Set(runtime.NewNumber(2), runtime.Undefined)
	if got := Inspect(s, 0); got != "Set(2) { 1, 2 }" {
		t.Fatalf("got %q", got)
	}
}

func TestInspectPromiseStates(t *testing.T) {
	p := runtime.NewPromise()
	if got := Inspect(p, 0); got != "Promise { <pending> }" {
		t.Fatalf("pending: got %q", got)
	}
	if got := Inspect(runtime.ResolvedPromise(runtime.NewNumber(7)), 0); got != "Promise { 7 }" {
		t.Fatalf("fulfilled: got %q", got)
	}
	rej := runtime.RejectedPromise(runtime.NewString("boom"))
	if got := Inspect(rej, 0); got != "Promise { <rejected> 'boom' }" {
		t.Fatalf("rejected: got %q", got)
	}
}

func TestInspectFunction(t *testing.T) {
	named := runtime.NewCell(runtime.ObjFunction)
	named.Obj.Fn = &runtime.Function{Name: "greet"}
	if got := Inspect(named, 0); got != "[Function: greet]" {
		t.Fatalf("got %q", got)
	}
	anon := runtime.NewCell(runtime.ObjFunction)
	anon.Obj.Fn = &runtime.Function{}
	if got := Inspect(anon, 0); got != "[Function (anonymous)]" {
		t.Fatalf("got %q", got)
	}
}

func TestInspectDepthCap(t *testing.T) {
	inner := runtime.NewArrayValue([]*runtime.Value{runtime.NewString("x")})
	v := inner
	for i := 0; i < 5; i++ {
		v = runtime.NewArrayValue([]*runtime.Value{v})
	}
	if got := Inspect(v, 0); got != "[ [ [ [ [ ... ] ] ] ] ]" {
		t.Fatalf("got %q", got)
	}
}
