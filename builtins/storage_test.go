package builtins

import (
	"testing"

	"github.com/example/minjs/runtime"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenStorage(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func storageCall(t *testing.T, s *Storage, area, name string, args ...string) *runtime.Value {
	t.Helper()
	vals := make([]*runtime.Value, len(args))
	for i, a := range args {
		vals[i] = runtime.NewString(a)
	}
	v, err := s.Method(area, name, vals)
	if err != nil {
		t.Fatalf("%s.%s: %v", area, name, err)
	}
	return v
}

func TestStorageRoundTrip(t *testing.T) {
	s := openTestStorage(t)
	storageCall(t, s, "localStorage", "setItem", "k", "v")
	if v := storageCall(t, s, "localStorage", "getItem", "k"); v.Str != "v" {
		t.Errorf("got %q", v.Str)
	}
}

func TestStorageMissingKeyIsNull(t *testing.T) {
	s := openTestStorage(t)
	if v := storageCall(t, s, "localStorage", "getItem", "nope"); v.Kind != runtime.KindNull {
		t.Errorf("got %#v", v)
	}
}

func TestStorageOverwriteKeepsSingleEntry(t *testing.T) {
	s := openTestStorage(t)
	storageCall(t, s, "localStorage", "setItem", "k", "one")
	storageCall(t, s, "localStorage", "setItem", "k", "two")
	if v := storageCall(t, s, "localStorage", "getItem", "k"); v.Str != "two" {
		t.Errorf("got %q", v.Str)
	}
	n, err := s.Length("localStorage")
	if err != nil {
		t.Fatal(err)
	}
	if n.Num != 1 {
		t.Errorf("expected 1 entry, got %d", n.Num)
	}
}

func TestStorageKeyFollowsInsertionOrder(t *testing.T) {
	s := openTestStorage(t)
	storageCall(t, s, "localStorage", "setItem", "a", "1")
	storageCall(t, s, "localStorage", "setItem", "b", "2")
	if v := storageCall(t, s, "localStorage", "key", "0"); v.Str != "a" {
		t.Errorf("key(0): got %q", v.Str)
	}
	if v := storageCall(t, s, "localStorage", "key", "1"); v.Str != "b" {
		t.Errorf("key(1): got %q", v.Str)
	}
	if v := storageCall(t, s, "localStorage", "key", "9"); v.Kind != runtime.KindNull {
		t.Error("out-of-range key should be null")
	}
}

func TestStorageAreasAreIsolated(t *testing.T) {
	s := openTestStorage(t)
	storageCall(t, s, "localStorage", "setItem", "k", "local")
	storageCall(t, s, "sessionStorage", "setItem", "k", "session")
	if v := storageCall(t, s, "localStorage", "getItem", "k"); v.Str != "local" {
		t.Errorf("got %q", v.Str)
	}
	storageCall(t, s, "sessionStorage", "clear")
	if v := storageCall(t, s, "localStorage", "getItem", "k"); v.Str != "local" {
		t.Error("clearing one area must not touch the other")
	}
}

func TestStorageRemoveAndClear(t *testing.T) {
	s := openTestStorage(t)
	storageCall(t, s, "localStorage", "setItem", "a", "1")
	storageCall(t, s, "localStorage", "setItem", "b", "2")
	storageCall(t, s, "localStorage", "removeItem", "a")
	n, _ := s.Length("localStorage")
	if n.Num != 1 {
		t.Errorf("after remove: %d", n.Num)
	}
	storageCall(t, s, "localStorage", "clear")
	n, _ = s.Length("localStorage")
	if n.Num != 0 {
		t.Errorf("after clear: %d", n.Num)
	}
}
