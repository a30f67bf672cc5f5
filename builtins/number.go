package builtins

import (
	"math"
	"strconv"

	"github.com/example/minjs/runtime"
)

// NumberMethod dispatches method calls on a numeric receiver.
func NumberMethod(recv *runtime.Value, name string, args []*runtime.Value) (*runtime.Value, error) {
	f := runtime.AsFloat(recv)
	switch name {
	case "toFixed":
		digits := toInteger(argAt(args, 0))
		if digits < 0 || digits > 100 {
			return nil, runtime.Errf("toFixed() digits argument must be between 0 and 100")
		}
		return runtime.NewString(strconv.FormatFloat(f, 'f', digits, 64)), nil
	case "toPrecision":
		if len(args) == 0 || args[0].Kind == runtime.KindUndefined {
			return runtime.NewString(runtime.ToString(recv)), nil
		}
		p := toInteger(args[0])
		if p < 1 || p > 100 {
			return nil, runtime.Errf("toPrecision() argument must be between 1 and 100")
		}
		return runtime.NewString(strconv.FormatFloat(f, 'g', p, 64)), nil
	case "toString":
		radix := 10
		if len(args) > 0 && args[0].Kind != runtime.KindUndefined {
			radix = toInteger(args[0])
		}
		if radix < 2 || radix > 36 {
			return nil, runtime.Errf("toString() radix must be between 2 and 36")
		}
		if radix == 10 {
			return runtime.NewString(runtime.ToString(recv)), nil
		}
		if recv.Kind == runtime.KindNumber {
			return runtime.NewString(strconv.FormatInt(recv.Num, radix)), nil
		}
		if f == math.Trunc(f) {
			return runtime.NewString(strconv.FormatInt(int64(f), radix)), nil
		}
		return runtime.NewString(strconv.FormatFloat(f, 'g', -1, 64)), nil
	case "valueOf":
		return recv, nil
	case "toLocaleString":
		return runtime.NewString(runtime.ToString(recv)), nil
	}
	return nil, runtime.Errf("%q is not a function on numbers", name)
}
