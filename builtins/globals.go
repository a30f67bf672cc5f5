package builtins

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/example/minjs/runtime"
)

// ParseIntValue implements the parseInt global: leading whitespace skipped,
// sign honored, digits consumed greedily until the first invalid one.
func ParseIntValue(args []*runtime.Value) (*runtime.Value, error) {
	s := strings.TrimSpace(argString(args, 0))
	radix := 10
	if len(args) > 1 && args[1].Kind != runtime.KindUndefined {
		radix = toInteger(args[1])
		if radix == 0 {
			radix = 10
		} else if radix < 2 || radix > 36 {
			return runtime.NewFloat(math.NaN()), nil
		}
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if radix == 16 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		s = s[2:]
	} else if radix == 10 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		radix = 16
		s = s[2:]
	}
	end := 0
	for end < len(s) && digitValue(s[end]) < radix {
		end++
	}
	if end == 0 {
		return runtime.NewFloat(math.NaN()), nil
	}
	n, err := strconv.ParseInt(s[:end], radix, 64)
	if err != nil {
		f, _ := strconv.ParseFloat(s[:end], 64)
		if neg {
			f = -f
		}
		return runtime.NewFloat(f), nil
	}
	if neg {
		n = -n
	}
	return runtime.NewNumber(n), nil
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return 99
}

// ParseFloatValue implements the parseFloat global: a greedy decimal prefix
// parse, NaN when nothing numeric leads the string.
func ParseFloatValue(args []*runtime.Value) (*runtime.Value, error) {
	s := strings.TrimSpace(argString(args, 0))
	end := floatPrefixLen(s)
	if end == 0 {
		return runtime.NewFloat(math.NaN()), nil
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return runtime.NewFloat(math.NaN()), nil
	}
	return runtime.NumberValue(f), nil
}

func floatPrefixLen(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		return i + len("Infinity")
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			expDigits++
		}
		if expDigits > 0 {
			i = j
		}
	}
	return i
}

// IsNaNValue implements the isNaN global, which coerces first.
func IsNaNValue(args []*runtime.Value) (*runtime.Value, error) {
	return runtime.NewBool(math.IsNaN(argFloat(args, 0))), nil
}

// IsFiniteValue implements the isFinite global.
func IsFiniteValue(args []*runtime.Value) (*runtime.Value, error) {
	f := argFloat(args, 0)
	return runtime.NewBool(!math.IsNaN(f) && !math.IsInf(f, 0)), nil
}

// NumberCtorValue implements the Number() conversion call. Its string
// handling deliberately differs from unary plus: empty strings are 0 and
// radix prefixes are honored.
func NumberCtorValue(args []*runtime.Value) (*runtime.Value, error) {
	if len(args) == 0 {
		return runtime.NewNumber(0), nil
	}
	a := args[0]
	if a.Kind == runtime.KindNumber || a.Kind == runtime.KindFloat {
		return a, nil
	}
	if a.Kind == runtime.KindBigInt {
		f, _ := new(big.Float).SetInt(a.Big).Float64()
		return runtime.NumberValue(f), nil
	}
	return runtime.NumberValue(runtime.ToNumberCtor(a)), nil
}

// StringCtorValue implements the String() conversion call.
func StringCtorValue(args []*runtime.Value) (*runtime.Value, error) {
	if len(args) == 0 {
		return runtime.NewString(""), nil
	}
	return runtime.NewString(runtime.ToString(args[0])), nil
}

// BooleanCtorValue implements the Boolean() conversion call.
func BooleanCtorValue(args []*runtime.Value) (*runtime.Value, error) {
	return runtime.NewBool(runtime.Truthy(argAt(args, 0))), nil
}

// SymbolValue implements Symbol(description): every call mints a distinct
// identity.
func SymbolValue(args []*runtime.Value) (*runtime.Value, error) {
	desc := ""
	if len(args) > 0 && args[0].Kind != runtime.KindUndefined {
		desc = argString(args, 0)
	}
	return &runtime.Value{Kind: runtime.KindSymbol, Sym: &runtime.Symbol{Description: desc}}, nil
}
