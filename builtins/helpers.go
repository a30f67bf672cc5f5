package builtins

import (
	"math"

	"github.com/example/minjs/runtime"
)

// CallFunc invokes a script function value with the given arguments. The
// evaluator supplies it so higher-order builtins (map, filter, replace with
// a function replacer) can call back into script code.
type CallFunc func(fn *runtime.Value, args []*runtime.Value) (*runtime.Value, error)

func argAt(args []*runtime.Value, i int) *runtime.Value {
	if i < len(args) {
		return args[i]
	}
	return runtime.Undefined
}

func argFloat(args []*runtime.Value, i int) float64 {
	return runtime.ToNumberUnary(argAt(args, i))
}

func argString(args []*runtime.Value, i int) string {
	return runtime.ToString(argAt(args, i))
}

// toInteger truncates toward zero with NaN mapping to 0, the ToIntegerOrInfinity
// clamp used by index arguments.
func toInteger(v *runtime.Value) int {
	f := runtime.ToNumberUnary(v)
	if math.IsNaN(f) {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(math.Trunc(f))
}

// relativeIndex resolves a possibly negative index against length, clamped
// to [0, length].
func relativeIndex(v *runtime.Value, length int) int {
	i := toInteger(v)
	if i < 0 {
		i += length
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

func nan() float64 { return math.NaN() }

func isCallable(v *runtime.Value) bool {
	return v.Kind == runtime.KindObject && v.Obj.Kind == runtime.ObjFunction
}
