package builtins

import (
	"math"
	"math/rand"

	"github.com/example/minjs/runtime"
)

var mathConstants = map[string]float64{
	"PI":      math.Pi,
	"E":       math.E,
	"LN2":     math.Ln2,
	"LN10":    math.Log(10),
	"LOG2E":   math.Log2E,
	"LOG10E":  math.Log10E,
	"SQRT2":   math.Sqrt2,
	"SQRT1_2": 1.0 / math.Sqrt2,
}

// MathConstant resolves Math.PI and friends.
func MathConstant(name string) (*runtime.Value, error) {
	c, ok := mathConstants[name]
	if !ok {
		return nil, runtime.Errf("Math.%s is not defined", name)
	}
	return runtime.NewFloat(c), nil
}

var mathUnaryFns = map[string]func(float64) float64{
	"abs":   math.Abs,
	"ceil":  math.Ceil,
	"floor": math.Floor,
	"trunc": math.Trunc,
	"sqrt":  math.Sqrt,
	"cbrt":  math.Cbrt,
	"log":   math.Log,
	"log2":  math.Log2,
	"log10": math.Log10,
	"log1p": math.Log1p,
	"exp":   math.Exp,
	"expm1": math.Expm1,
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
	"asinh": math.Asinh,
	"acosh": math.Acosh,
	"atanh": math.Atanh,
}

// MathMethod dispatches a Math namespace call.
func MathMethod(name string, args []*runtime.Value) (*runtime.Value, error) {
	if fn, ok := mathUnaryFns[name]; ok {
		return runtime.NumberValue(fn(argFloat(args, 0))), nil
	}
	switch name {
	case "round":
		// JS rounds half toward +Infinity; math.Round rounds half away
		// from zero.
		return runtime.NumberValue(math.Floor(argFloat(args, 0) + 0.5)), nil
	case "sign":
		n := argFloat(args, 0)
		if math.IsNaN(n) {
			return runtime.NewFloat(n), nil
		}
		if n > 0 {
			return runtime.NewNumber(1), nil
		}
		if n < 0 {
			return runtime.NewNumber(-1), nil
		}
		return runtime.NewNumber(0), nil
	case "pow":
		return runtime.NumberValue(math.Pow(argFloat(args, 0), argFloat(args, 1))), nil
	case "atan2":
		return runtime.NewFloat(math.Atan2(argFloat(args, 0), argFloat(args, 1))), nil
	case "hypot":
		sum := 0.0
		for i := range args {
			n := argFloat(args, i)
			sum += n * n
		}
		return runtime.NumberValue(math.Sqrt(sum)), nil
	case "max":
		result := math.Inf(-1)
		for i := range args {
			n := argFloat(args, i)
			if math.IsNaN(n) {
				return runtime.NewFloat(math.NaN()), nil
			}
			if n > result {
				result = n
			}
		}
		return runtime.NumberValue(result), nil
	case "min":
		result := math.Inf(1)
		for i := range args {
			n := argFloat(args, i)
			if math.IsNaN(n) {
				return runtime.NewFloat(math.NaN()), nil
			}
			if n < result {
				result = n
			}
		}
		return runtime.NumberValue(result), nil
	case "random":
		return runtime.NewFloat(rand.Float64()), nil
	}
	return nil, runtime.Errf("Math.%s is not a function", name)
}
