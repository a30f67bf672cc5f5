package builtins

import (
	"testing"

	"github.com/example/minjs/runtime"
)

func strMethod(t *testing.T, recv, name string, args ...*runtime.Value) *runtime.Value {
	t.Helper()
	v, err := StringMethod(recv, name, args, nil)
	if err != nil {
		t.Fatalf("%q.%s: %v", recv, name, err)
	}
	return v
}

func TestStringSliceAndSubstring(t *testing.T) {
	if v := strMethod(t, "hello", "slice", runtime.NewNumber(1), runtime.NewNumber(3)); v.Str != "el" {
		t.Errorf("slice: got %q", v.Str)
	}
	if v := strMethod(t, "hello", "slice", runtime.NewNumber(-3)); v.Str != "llo" {
		t.Errorf("negative slice: got %q", v.Str)
	}
	// substring swaps reversed bounds instead of returning empty
	if v := strMethod(t, "hello", "substring", runtime.NewNumber(3), runtime.NewNumber(1)); v.Str != "el" {
		t.Errorf("substring: got %q", v.Str)
	}
}

func TestStringAtSupportsNegativeIndex(t *testing.T) {
	if v := strMethod(t, "abc", "at", runtime.NewNumber(-1)); v.Str != "c" {
		t.Errorf("got %q", v.Str)
	}
	if v := strMethod(t, "abc", "at", runtime.NewNumber(5)); v.Kind != runtime.KindUndefined {
		t.Errorf("out of range should be undefined, got %#v", v)
	}
}

func TestStringLengthCountsRunes(t *testing.T) {
	v, ok := StringProperty("héllo", "length")
	if !ok || v.Num != 5 {
		t.Errorf("got %v", v)
	}
}

func TestStringPredicates(t *testing.T) {
	if v := strMethod(t, "banana", "includes", runtime.NewString("nan")); !v.Bool {
		t.Error("includes")
	}
	if v := strMethod(t, "banana", "startsWith", runtime.NewString("ban")); !v.Bool {
		t.Error("startsWith")
	}
	if v := strMethod(t, "banana", "indexOf", runtime.NewString("zz")); v.Num != -1 {
		t.Error("indexOf miss should be -1")
	}
}

func TestStringRepeat(t *testing.T) {
	if v := strMethod(t, "ab", "repeat", runtime.NewNumber(3)); v.Str != "ababab" {
		t.Errorf("got %q", v.Str)
	}
	if _, err := StringMethod("ab", "repeat", []*runtime.Value{runtime.NewNumber(-1)}, nil); err == nil {
		t.Error("negative count should error")
	}
}

func TestStringPad(t *testing.T) {
	if v := strMethod(t, "5", "padStart", runtime.NewNumber(3), runtime.NewString("0")); v.Str != "005" {
		t.Errorf("padStart: got %q", v.Str)
	}
	if v := strMethod(t, "5", "padEnd", runtime.NewNumber(3)); v.Str != "5  " {
		t.Errorf("padEnd: got %q", v.Str)
	}
}

func TestStringSplit(t *testing.T) {
	v := strMethod(t, "a,b,c", "split", runtime.NewString(","))
	if v.Obj == nil || len(v.Obj.Elems) != 3 || v.Obj.Elems[1].Str != "b" {
		t.Errorf("got %s", runtime.ToString(v))
	}
}

func TestStringReplaceWithRegex(t *testing.T) {
	re, err := NewRegExpValue(`\d+`, "g")
	if err != nil {
		t.Fatal(err)
	}
	v, err := StringMethod("a1b22c", "replaceAll", []*runtime.Value{re, runtime.NewString("#")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v.Str != "a#b#c" {
		t.Errorf("got %q", v.Str)
	}
}

func TestStringReplaceFirstOnly(t *testing.T) {
	v := strMethod(t, "aaa", "replace", runtime.NewString("a"), runtime.NewString("b"))
	if v.Str != "baa" {
		t.Errorf("got %q", v.Str)
	}
}

func TestUnknownStringMethod(t *testing.T) {
	if _, err := StringMethod("x", "frobnicate", nil, nil); err == nil {
		t.Error("expected error")
	}
}
