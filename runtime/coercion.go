package runtime

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Truthy implements ToBoolean.
func Truthy(v *Value) bool {
	switch v.Kind {
	case KindUndefined, KindNull:
		return false
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Num != 0
	case KindFloat:
		return v.Flt != 0 && !math.IsNaN(v.Flt)
	case KindBigInt:
		return v.Big.Sign() != 0
	case KindString:
		return len(v.Str) > 0
	case KindSymbol, KindObject:
		return true
	}
	return false
}

// FloatString renders a float the way JS ToString does for the common cases:
// integral values print without a decimal point.
func FloatString(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ToString implements the ToString abstract operation over the value model.
func ToString(v *Value) string {
	switch v.Kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNumber:
		return strconv.FormatInt(v.Num, 10)
	case KindFloat:
		return FloatString(v.Flt)
	case KindBigInt:
		return v.Big.String()
	case KindString:
		return v.Str
	case KindSymbol:
		return "Symbol(" + v.Sym.Description + ")"
	case KindObject:
		return objectString(v.Obj)
	}
	return "undefined"
}

func objectString(o *Object) string {
	switch o.Kind {
	case ObjArray:
		parts := make([]string, len(o.Elems))
		for i, el := range o.Elems {
			if el == nil || el.Kind == KindUndefined || el.Kind == KindNull {
				parts[i] = ""
				continue
			}
			parts[i] = ToString(el)
		}
		return strings.Join(parts, ",")
	case ObjFunction:
		name := "anonymous"
		if o.Fn != nil && o.Fn.Name != "" {
			name = o.Fn.Name
		}
		return "function " + name + "() { [native code] }"
	case ObjRegExp:
		return "/" + o.Pattern + "/" + o.Flags
	case ObjDate:
		return "[object Date]"
	case ObjPromise:
		return "[object Promise]"
	case ObjURL:
		if s, ok := o.Intl["href"].(string); ok {
			return s
		}
		return "[object URL]"
	case ObjSearchParams:
		var b strings.Builder
		for i, k := range o.Params.Keys {
			if i > 0 {
				b.WriteByte('&')
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(o.Params.Vals[i])
		}
		return b.String()
	case ObjNode:
		return "[object HTMLElement]"
	default:
		return "[object " + o.Kind.String() + "]"
	}
}

// ToNumberUnary is the coercion used by the unary + and - operators. It is
// deliberately stricter than the Number() constructor: empty and
// whitespace-only strings and radix-prefixed strings are NaN here, not zero.
// The two paths must stay distinct.
func ToNumberUnary(v *Value) float64 {
	switch v.Kind {
	case KindUndefined:
		return math.NaN()
	case KindNull:
		return 0
	case KindBool:
		if v.Bool {
			return 1
		}
		return 0
	case KindNumber:
		return float64(v.Num)
	case KindFloat:
		return v.Flt
	case KindString:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return math.NaN()
		}
		return parseDecimal(s)
	case KindObject:
		if v.Obj.Kind == ObjDate {
			return float64(v.Obj.DateMS)
		}
		if v.Obj.Kind == ObjArray && len(v.Obj.Elems) == 1 {
			return ToNumberUnary(v.Obj.Elems[0])
		}
		if v.Obj.Kind == ObjArray && len(v.Obj.Elems) == 0 {
			return 0
		}
		return math.NaN()
	}
	return math.NaN()
}

// ToNumberCtor is the Number() constructor's coercion: empty and whitespace
// strings become 0 and 0x/0o/0b radix prefixes are honored.
func ToNumberCtor(v *Value) float64 {
	if v.Kind == KindString {
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return 0
		}
		if len(s) > 2 && s[0] == '0' {
			var base int
			switch s[1] {
			case 'x', 'X':
				base = 16
			case 'o', 'O':
				base = 8
			case 'b', 'B':
				base = 2
			}
			if base != 0 {
				if n, err := strconv.ParseUint(s[2:], base, 64); err == nil {
					return float64(n)
				}
				return math.NaN()
			}
		}
		return parseDecimal(s)
	}
	return ToNumberUnary(v)
}

func parseDecimal(s string) float64 {
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// NumberValue wraps a float back into the value model, preserving the integer
// kind when the result is integral.
func NumberValue(f float64) *Value {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && !math.IsNaN(f) &&
		f >= math.MinInt64 && f <= math.MaxInt64 && !isNegZero(f) {
		return NewNumber(int64(f))
	}
	return NewFloat(f)
}

func isNegZero(f float64) bool {
	return f == 0 && math.Signbit(f)
}

func isNumeric(v *Value) bool {
	return v.Kind == KindNumber || v.Kind == KindFloat
}

// AsFloat reads a numeric value as float64 without coercion.
func AsFloat(v *Value) float64 {
	if v.Kind == KindNumber {
		return float64(v.Num)
	}
	return v.Flt
}

// StrictEquals implements ===: value equality for primitives with Number and
// Float comparing numerically, NaN unequal to itself, +0 equal to -0, and
// cell identity for containers.
func StrictEquals(a, b *Value) bool {
	if isNumeric(a) && isNumeric(b) {
		fa, fb := AsFloat(a), AsFloat(b)
		if math.IsNaN(fa) || math.IsNaN(fb) {
			return false
		}
		return fa == fb
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindUndefined, KindNull:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindBigInt:
		return a.Big.Cmp(b.Big) == 0
	case KindString:
		return a.Str == b.Str
	case KindSymbol:
		return a.Sym == b.Sym
	case KindObject:
		return a.Obj == b.Obj
	}
	return false
}

// SameValueZero is StrictEquals except NaN matches NaN. Map and Set keying
// uses it.
func SameValueZero(a, b *Value) bool {
	if isNumeric(a) && isNumeric(b) {
		fa, fb := AsFloat(a), AsFloat(b)
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb
	}
	return StrictEquals(a, b)
}

// LooseEquals implements ==.
func LooseEquals(a, b *Value) bool {
	if a.Kind == b.Kind || (isNumeric(a) && isNumeric(b)) {
		return StrictEquals(a, b)
	}
	if (a.Kind == KindNull && b.Kind == KindUndefined) ||
		(a.Kind == KindUndefined && b.Kind == KindNull) {
		return true
	}
	if isNumeric(a) && b.Kind == KindString {
		return LooseEquals(a, NumberValue(ToNumberUnary(b)))
	}
	if a.Kind == KindString && isNumeric(b) {
		return LooseEquals(NumberValue(ToNumberUnary(a)), b)
	}
	if a.Kind == KindBool {
		return LooseEquals(NumberValue(ToNumberUnary(a)), b)
	}
	if b.Kind == KindBool {
		return LooseEquals(a, NumberValue(ToNumberUnary(b)))
	}
	if a.Kind == KindBigInt && (isNumeric(b) || b.Kind == KindString) {
		return bigLoose(a, b)
	}
	if b.Kind == KindBigInt && (isNumeric(a) || a.Kind == KindString) {
		return bigLoose(b, a)
	}
	if a.Kind == KindObject && b.Kind != KindObject {
		return LooseEquals(NewString(ToString(a)), b)
	}
	if b.Kind == KindObject && a.Kind != KindObject {
		return LooseEquals(a, NewString(ToString(b)))
	}
	return false
}

func bigLoose(bi, other *Value) bool {
	if other.Kind == KindString {
		return bi.Big.String() == strings.TrimSpace(other.Str)
	}
	f := AsFloat(other)
	if math.IsNaN(f) || f != math.Trunc(f) {
		return false
	}
	bf, _ := new(big.Float).SetInt(bi.Big).Float64()
	return bf == f
}

// TypeOf implements the typeof operator.
func TypeOf(v *Value) string {
	switch v.Kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "object"
	case KindBool:
		return "boolean"
	case KindNumber, KindFloat:
		return "number"
	case KindBigInt:
		return "bigint"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindObject:
		if v.Obj.Kind == ObjFunction {
			return "function"
		}
		return "object"
	}
	return "undefined"
}
