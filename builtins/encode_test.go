package builtins

import (
	"testing"

	"github.com/example/minjs/runtime"
)

func oneArg(s string) []*runtime.Value {
	return []*runtime.Value{runtime.NewString(s)}
}

func TestEncodeURIComponentEscapesReserved(t *testing.T) {
	v, err := EncodeURIComponentValue(oneArg("a b&c=d"))
	if err != nil {
		t.Fatal(err)
	}
	if v.Str != "a%20b%26c%3Dd" {
		t.Errorf("got %q", v.Str)
	}
}

func TestEncodeURIKeepsStructure(t *testing.T) {
	v, err := EncodeURIValue(oneArg("https://e.com/a b?x=1"))
	if err != nil {
		t.Fatal(err)
	}
	if v.Str != "https://e.com/a%20b?x=1" {
		t.Errorf("got %q", v.Str)
	}
}

func TestDecodeURIComponent(t *testing.T) {
	v, err := DecodeURIComponentValue(oneArg("a%20b%26c"))
	if err != nil {
		t.Fatal(err)
	}
	if v.Str != "a b&c" {
		t.Errorf("got %q", v.Str)
	}
}

func TestDecodeMalformedEscape(t *testing.T) {
	for _, s := range []string{"%", "%4", "%zz"} {
		if _, err := DecodeURIComponentValue(oneArg(s)); err == nil {
			t.Errorf("decode(%q): expected error", s)
		}
	}
}

func TestBtoaAtobRoundTrip(t *testing.T) {
	enc, err := BtoaValue(oneArg("hi"))
	if err != nil {
		t.Fatal(err)
	}
	if enc.Str != "aGk=" {
		t.Errorf("btoa: got %q", enc.Str)
	}
	dec, err := AtobValue(oneArg(enc.Str))
	if err != nil {
		t.Fatal(err)
	}
	if dec.Str != "hi" {
		t.Errorf("atob: got %q", dec.Str)
	}
}

func TestBtoaRejectsNonLatin1(t *testing.T) {
	if _, err := BtoaValue(oneArg("hélloሴ")); err == nil {
		t.Error("expected error for characters above U+00FF")
	}
}

func TestAtobRejectsGarbage(t *testing.T) {
	if _, err := AtobValue(oneArg("!not base64!")); err == nil {
		t.Error("expected error")
	}
}
