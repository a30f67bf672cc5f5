package builtins

import (
	"math"
	"time"

	"github.com/example/minjs/runtime"
)

// NewDateValue builds a Date cell. With no arguments it takes nowMS, the
// scheduler's virtual clock; with one numeric argument, epoch milliseconds;
// with one string argument, a parsed timestamp. All date math is UTC.
func NewDateValue(args []*runtime.Value, nowMS int64) (*runtime.Value, error) {
	ms := nowMS
	switch {
	case len(args) == 1 && args[0].Kind == runtime.KindString:
		t, err := parseDateString(args[0].Str)
		if err != nil {
			return nil, err
		}
		ms = t.UnixMilli()
	case len(args) == 1:
		f := runtime.ToNumberUnary(args[0])
		if math.IsNaN(f) {
			return nil, runtime.Errf("invalid Date argument")
		}
		ms = int64(f)
	case len(args) >= 2:
		parts := [7]int{0, 0, 1, 0, 0, 0, 0}
		for i := 0; i < len(args) && i < 7; i++ {
			parts[i] = toInteger(args[i])
		}
		t := time.Date(parts[0], time.Month(parts[1]+1), parts[2],
			parts[3], parts[4], parts[5], parts[6]*int(time.Millisecond), time.UTC)
		ms = t.UnixMilli()
	}
	v := runtime.NewCell(runtime.ObjDate)
	v.Obj.DateMS = ms
	return v, nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.ANSIC,
}

func parseDateString(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, runtime.Errf("invalid date string %q", s)
}

// DateMethod dispatches method calls on a Date receiver.
func DateMethod(recv *runtime.Object, name string, args []*runtime.Value) (*runtime.Value, error) {
	t := time.UnixMilli(recv.DateMS).UTC()
	switch name {
	case "getTime", "valueOf":
		return runtime.NewNumber(recv.DateMS), nil
	case "getFullYear", "getUTCFullYear":
		return runtime.NewNumber(int64(t.Year())), nil
	case "getMonth", "getUTCMonth":
		return runtime.NewNumber(int64(t.Month() - 1)), nil
	case "getDate", "getUTCDate":
		return runtime.NewNumber(int64(t.Day())), nil
	case "getDay", "getUTCDay":
		return runtime.NewNumber(int64(t.Weekday())), nil
	case "getHours", "getUTCHours":
		return runtime.NewNumber(int64(t.Hour())), nil
	case "getMinutes", "getUTCMinutes":
		return runtime.NewNumber(int64(t.Minute())), nil
	case "getSeconds", "getUTCSeconds":
		return runtime.NewNumber(int64(t.Second())), nil
	case "getMilliseconds", "getUTCMilliseconds":
		return runtime.NewNumber(int64(t.Nanosecond() / int(time.Millisecond))), nil
	case "getTimezoneOffset":
		return runtime.NewNumber(0), nil
	case "toISOString", "toJSON":
		return runtime.NewString(t.Format("2006-01-02T15:04:05.000Z")), nil
	case "toDateString":
		return runtime.NewString(t.Format("Mon Jan 02 2006")), nil
	case "toTimeString":
		return runtime.NewString(t.Format("15:04:05 GMT+0000 (Coordinated Universal Time)")), nil
	case "toString", "toUTCString", "toLocaleString":
		return runtime.NewString(t.Format("Mon, 02 Jan 2006 15:04:05 GMT")), nil
	case "toLocaleDateString":
		return runtime.NewString(t.Format("1/2/2006")), nil
	case "toLocaleTimeString":
		return runtime.NewString(t.Format("3:04:05 PM")), nil
	case "setTime":
		recv.DateMS = int64(argFloat(args, 0))
		return runtime.NewNumber(recv.DateMS), nil
	case "setFullYear":
		y := toInteger(argAt(args, 0))
		nt := time.Date(y, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
		recv.DateMS = nt.UnixMilli()
		return runtime.NewNumber(recv.DateMS), nil
	case "setMonth":
		m := toInteger(argAt(args, 0))
		nt := time.Date(t.Year(), time.Month(m+1), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
		recv.DateMS = nt.UnixMilli()
		return runtime.NewNumber(recv.DateMS), nil
	case "setDate":
		d := toInteger(argAt(args, 0))
		nt := time.Date(t.Year(), t.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
		recv.DateMS = nt.UnixMilli()
		return runtime.NewNumber(recv.DateMS), nil
	case "setHours":
		h := toInteger(argAt(args, 0))
		nt := time.Date(t.Year(), t.Month(), t.Day(), h, t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
		recv.DateMS = nt.UnixMilli()
		return runtime.NewNumber(recv.DateMS), nil
	case "setMinutes":
		m := toInteger(argAt(args, 0))
		nt := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), m, t.Second(), t.Nanosecond(), time.UTC)
		recv.DateMS = nt.UnixMilli()
		return runtime.NewNumber(recv.DateMS), nil
	case "setSeconds":
		s := toInteger(argAt(args, 0))
		nt := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), s, t.Nanosecond(), time.UTC)
		recv.DateMS = nt.UnixMilli()
		return runtime.NewNumber(recv.DateMS), nil
	}
	return nil, runtime.Errf("%q is not a function on Date", name)
}
