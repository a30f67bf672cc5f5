package builtins

import (
	"testing"

	"github.com/example/minjs/runtime"
)

func newIntl(t *testing.T, kind string, args ...*runtime.Value) *runtime.Object {
	t.Helper()
	v, err := NewIntlFormatValue(kind, args)
	if err != nil {
		t.Fatalf("NewIntlFormatValue(%s): %v", kind, err)
	}
	return v.Obj
}

func optionsObj(pairs map[string]*runtime.Value) *runtime.Value {
	o := runtime.NewCell(runtime.ObjPlain)
	for k, v := range pairs {
		o.Obj.SetOwn(k, v)
	}
	return o
}

func TestNumberFormatGrouping(t *testing.T) {
	nf := newIntl(t, "number", runtime.NewString("en-US"))
	got, err := IntlMethod(nf, "format", []*runtime.Value{runtime.NewFloat(1234.5)})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if got.Str != "1,234.5" {
		t.Fatalf("got %q", got.Str)
	}
}

func TestNumberFormatFractionDigits(t *testing.T) {
	nf := newIntl(t, "number", runtime.NewString("en-US"), optionsObj(map[string]*runtime.Value{
		"minimumFractionDigits": runtime.NewNumber(2),
		"maximumFractionDigits": runtime.NewNumber(2),
	}))
	got, err := IntlMethod(nf, "format", []*runtime.Value{runtime.NewNumber(42)})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if got.Str != "42.00" {
		t.Fatalf("got %q", got.Str)
	}
}

func TestNumberFormatPercent(t *testing.T) {
	nf := newIntl(t, "number", runtime.NewString("en-US"), optionsObj(map[string]*runtime.Value{
		"style": runtime.NewString("percent"),
	}))
	got, err := IntlMethod(nf, "format", []*runtime.Value{runtime.NewFloat(0.5)})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if got.Str != "50%" {
		t.Fatalf("got %q", got.Str)
	}
}

func TestCollatorCompare(t *testing.T) {
	c := newIntl(t, "collator", runtime.NewString("en-US"))
	cases := []struct {
		a, b string
		want int64
	}{
		{"a", "b", -1},
		{"b", "a", 1},
		{"a", "a", 0},
	}
	for _, tc := range cases {
		got, err := IntlMethod(c, "compare", []*runtime.Value{
			runtime.NewString(tc.a), runtime.NewString(tc.b),
		})
		if err != nil {
			t.Fatalf("compare(%q, %q): %v", tc.a, tc.b, err)
		}
		if got.Num != tc.want {
			t.Errorf("compare(%q, %q) = %d, want %d", tc.a, tc.b, got.Num, tc.want)
		}
	}
}

func TestDateTimeFormatMediumStyle(t *testing.T) {
	df := newIntl(t, "datetime", runtime.NewString("en-US"), optionsObj(map[string]*runtime.Value{
		"dateStyle": runtime.NewString("medium"),
	}))
	got, err := IntlMethod(df, "format", []*runtime.Value{runtime.NewNumber(0)})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if got.Str != "Jan 1, 1970" {
		t.Fatalf("got %q", got.Str)
	}
}

func TestIntlResolvedOptionsLocale(t *testing.T) {
	nf := newIntl(t, "number", runtime.NewString("en-US"))
	got, err := IntlMethod(nf, "resolvedOptions", nil)
	if err != nil {
		t.Fatalf("resolvedOptions: %v", err)
	}
	if loc := got.Obj.GetOwn("locale"); loc == nil || loc.Str != "en-US" {
		t.Fatalf("locale = %v", loc)
	}
}

func TestIntlUnknownMethod(t *testing.T) {
	c := newIntl(t, "collator", runtime.NewString("en-US"))
	if _, err := IntlMethod(c, "format", nil); err == nil {
		t.Fatal("expected an error for format on a collator")
	}
}
