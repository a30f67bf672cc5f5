package builtins

import (
	"encoding/base64"
	"strings"

	"github.com/example/minjs/runtime"
)

const uriUnreserved = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_.!~*'()"

// uriReserved is the extra set encodeURI leaves untouched.
const uriReserved = ";/?:@&=+$,#"

// EncodeURIComponentValue percent-encodes everything outside the unreserved
// set.
func EncodeURIComponentValue(args []*runtime.Value) (*runtime.Value, error) {
	return runtime.NewString(percentEncode(argString(args, 0), uriUnreserved)), nil
}

// EncodeURIValue keeps URI structure characters intact.
func EncodeURIValue(args []*runtime.Value) (*runtime.Value, error) {
	return runtime.NewString(percentEncode(argString(args, 0), uriUnreserved+uriReserved)), nil
}

func percentEncode(s, keep string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(keep, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigit(c >> 4))
		b.WriteByte(hexDigit(c & 0xF))
	}
	return b.String()
}

func hexDigit(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'A' + n - 10
}

// DecodeURIComponentValue reverses percent-encoding. A dangling or malformed
// escape is a runtime error, matching URIError behavior.
func DecodeURIComponentValue(args []*runtime.Value) (*runtime.Value, error) {
	return percentDecode(argString(args, 0))
}

// DecodeURIValue is the same decode; structure characters round-trip since
// encodeURI never escaped them.
func DecodeURIValue(args []*runtime.Value) (*runtime.Value, error) {
	return percentDecode(argString(args, 0))
}

func percentDecode(s string) (*runtime.Value, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b.WriteByte(s[i])
			continue
		}
		if i+2 >= len(s) {
			return nil, runtime.Errf("URI malformed")
		}
		hi, ok1 := unhex(s[i+1])
		lo, ok2 := unhex(s[i+2])
		if !ok1 || !ok2 {
			return nil, runtime.Errf("URI malformed")
		}
		b.WriteByte(hi<<4 | lo)
		i += 2
	}
	return runtime.NewString(b.String()), nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// BtoaValue implements btoa: latin-1 input to base64.
func BtoaValue(args []*runtime.Value) (*runtime.Value, error) {
	s := argString(args, 0)
	bytes := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return nil, runtime.Errf("btoa: the string contains characters outside of the Latin1 range")
		}
		bytes = append(bytes, byte(r))
	}
	return runtime.NewString(base64.StdEncoding.EncodeToString(bytes)), nil
}

// AtobValue implements atob: base64 to a latin-1 string.
func AtobValue(args []*runtime.Value) (*runtime.Value, error) {
	s := strings.TrimSpace(argString(args, 0))
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		decoded, err = base64.RawStdEncoding.DecodeString(s)
		if err != nil {
			return nil, runtime.Errf("atob: the string is not correctly encoded")
		}
	}
	var b strings.Builder
	for _, c := range decoded {
		b.WriteRune(rune(c))
	}
	return runtime.NewString(b.String()), nil
}
