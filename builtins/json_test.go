package builtins

import (
	"testing"

	"github.com/example/minjs/runtime"
)

func stringify(t *testing.T, v *runtime.Value, indent *runtime.Value) string {
	t.Helper()
	out, err := JSONStringify(v, indent)
	if err != nil {
		t.Fatal(err)
	}
	return out.Str
}

func TestParsePreservesKeyOrder(t *testing.T) {
	v, err := JSONParse(`{"b": 1, "a": 2}`)
	if err != nil {
		t.Fatal(err)
	}
	if got := stringify(t, v, nil); got != `{"b":1,"a":2}` {
		t.Errorf("got %s", got)
	}
}

func TestParseNumberKinds(t *testing.T) {
	v, err := JSONParse("42")
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != runtime.KindNumber || v.Num != 42 {
		t.Errorf("integer: got %#v", v)
	}
	v, err = JSONParse("4.5")
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != runtime.KindFloat || v.Flt != 4.5 {
		t.Errorf("float: got %#v", v)
	}
}

func TestParseMalformed(t *testing.T) {
	for _, src := range []string{"{", `{"a":}`, ""} {
		if _, err := JSONParse(src); err == nil {
			t.Errorf("JSONParse(%q): expected error", src)
		}
	}
}

func TestStringifyCensorsUndefined(t *testing.T) {
	obj := runtime.NewObject(runtime.NewPlainObject())
	obj.Obj.SetOwn("u", runtime.Undefined)
	obj.Obj.SetOwn("n", runtime.NewNumber(1))
	if got := stringify(t, obj, nil); got != `{"n":1}` {
		t.Errorf("object: got %s", got)
	}
	arr := runtime.NewArrayValue([]*runtime.Value{runtime.Undefined, runtime.NewNumber(1)})
	if got := stringify(t, arr, nil); got != `[null,1]` {
		t.Errorf("array: got %s", got)
	}
}

func TestStringifyTopLevelUndefined(t *testing.T) {
	out, err := JSONStringify(runtime.Undefined, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind != runtime.KindUndefined {
		t.Errorf("got %#v", out)
	}
}

func TestStringifyIndent(t *testing.T) {
	arr := runtime.NewArrayValue([]*runtime.Value{runtime.NewNumber(1)})
	if got := stringify(t, arr, runtime.NewNumber(2)); got != "[\n  1\n]" {
		t.Errorf("got %q", got)
	}
}

func TestStringifyStringEscapes(t *testing.T) {
	if got := stringify(t, runtime.NewString("a\"b"), nil); got != `"a\"b"` {
		t.Errorf("got %s", got)
	}
}

func TestRoundTripNested(t *testing.T) {
	src := `{"list":[1,2,{"k":"v"}],"ok":true,"none":null}`
	v, err := JSONParse(src)
	if err != nil {
		t.Fatal(err)
	}
	if got := stringify(t, v, nil); got != src {
		t.Errorf("got %s", got)
	}
}
