package builtins

import (
	"testing"

	"github.com/example/minjs/runtime"
)

func newURL(t *testing.T, parts ...string) *runtime.Value {
	t.Helper()
	args := make([]*runtime.Value, len(parts))
	for i, p := range parts {
		args[i] = runtime.NewString(p)
	}
	v, err := NewURLValue(args)
	if err != nil {
		t.Fatalf("NewURLValue(%v): %v", parts, err)
	}
	return v
}

func urlProp(t *testing.T, u *runtime.Value, name string) string {
	t.Helper()
	v, ok := URLProperty(u.Obj, name)
	if !ok {
		t.Fatalf("no property %s", name)
	}
	return runtime.ToString(v)
}

func TestURLComponents(t *testing.T) {
	u := newURL(t, "https://example.com:8080/path?x=1#frag")
	cases := map[string]string{
		"protocol": "https:",
		"host":     "example.com:8080",
		"hostname": "example.com",
		"port":     "8080",
		"pathname": "/path",
		"search":   "?x=1",
		"hash":     "#frag",
		"origin":   "https://example.com:8080",
	}
	for name, want := range cases {
		if got := urlProp(t, u, name); got != want {
			t.Errorf("%s: got %q, want %q", name, got, want)
		}
	}
}

func TestURLEmptyPathDefaultsToSlash(t *testing.T) {
	u := newURL(t, "https://example.com")
	if got := urlProp(t, u, "pathname"); got != "/" {
		t.Errorf("got %q", got)
	}
}

func TestURLBaseResolution(t *testing.T) {
	u := newURL(t, "../b", "https://example.com/a/c/")
	if got := urlProp(t, u, "href"); got != "https://example.com/a/b" {
		t.Errorf("got %q", got)
	}
}

func TestURLRequiresScheme(t *testing.T) {
	if _, err := NewURLValue([]*runtime.Value{runtime.NewString("example.com/x")}); err == nil {
		t.Error("a URL without a scheme should be rejected")
	}
}

func TestSearchParamsFromQueryString(t *testing.T) {
	sp := NewSearchParamsValue([]*runtime.Value{runtime.NewString("?a=1&b=two+words&a=3")})
	v, err := SearchParamsMethod(sp.Obj, "get", []*runtime.Value{runtime.NewString("b")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v.Str != "two words" {
		t.Errorf("get: got %q", v.Str)
	}
	all, err := SearchParamsMethod(sp.Obj, "getAll", []*runtime.Value{runtime.NewString("a")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all.Obj.Elems) != 2 {
		t.Errorf("getAll: got %d values", len(all.Obj.Elems))
	}
}

func TestSearchParamsGetMissingIsNull(t *testing.T) {
	sp := NewSearchParamsValue(nil)
	v, err := SearchParamsMethod(sp.Obj, "get", []*runtime.Value{runtime.NewString("x")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != runtime.KindNull {
		t.Errorf("got %#v", v)
	}
}

func TestSearchParamsSetReplacesAll(t *testing.T) {
	sp := NewSearchParamsValue([]*runtime.Value{runtime.NewString("a=1&a=2&b=3")})
	if _, err := SearchParamsMethod(sp.Obj, "set",
		[]*runtime.Value{runtime.NewString("a"), runtime.NewString("9")}, nil); err != nil {
		t.Fatal(err)
	}
	if got := runtime.ToString(sp); got != "a=9&b=3" {
		t.Errorf("got %q", got)
	}
}

func TestURLSearchParamsAccessorIsCached(t *testing.T) {
	u := newURL(t, "https://example.com/?a=1")
	first, _ := URLProperty(u.Obj, "searchParams")
	second, _ := URLProperty(u.Obj, "searchParams")
	if first != second {
		t.Error("searchParams should return the same cell each access")
	}
}
