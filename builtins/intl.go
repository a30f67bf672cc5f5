package builtins

import (
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/example/minjs/runtime"
)

// intlTag resolves the locale argument, falling back to en-US the way the
// default locale does.
func intlTag(args []*runtime.Value) language.Tag {
	if len(args) > 0 && args[0].Kind == runtime.KindString {
		if tag, err := language.Parse(args[0].Str); err == nil {
			return tag
		}
	}
	return language.AmericanEnglish
}

func intlOptions(args []*runtime.Value) *runtime.Object {
	if len(args) > 1 && args[1].Kind == runtime.KindObject {
		return args[1].Obj
	}
	return nil
}

func optString(o *runtime.Object, name string) string {
	if o == nil {
		return ""
	}
	if v := o.GetOwn(name); v != nil {
		return runtime.ToString(v)
	}
	return ""
}

func optInt(o *runtime.Object, name string, def int) int {
	if o == nil {
		return def
	}
	if v := o.GetOwn(name); v != nil {
		return toInteger(v)
	}
	return def
}

// NewIntlFormatValue builds an Intl.NumberFormat, Intl.DateTimeFormat or
// Intl.Collator cell. kind distinguishes the three constructors.
func NewIntlFormatValue(kind string, args []*runtime.Value) (*runtime.Value, error) {
	v := runtime.NewCell(runtime.ObjIntlFormat)
	v.Obj.Intl = map[string]any{
		"kind": kind,
		"tag":  intlTag(args),
	}
	if opts := intlOptions(args); opts != nil {
		v.Obj.Intl["style"] = optString(opts, "style")
		v.Obj.Intl["currency"] = optString(opts, "currency")
		v.Obj.Intl["minFrac"] = optInt(opts, "minimumFractionDigits", -1)
		v.Obj.Intl["maxFrac"] = optInt(opts, "maximumFractionDigits", -1)
		v.Obj.Intl["dateStyle"] = optString(opts, "dateStyle")
		v.Obj.Intl["timeStyle"] = optString(opts, "timeStyle")
	}
	return v, nil
}

// IntlMethod dispatches format and compare on an Intl cell.
func IntlMethod(recv *runtime.Object, name string, args []*runtime.Value) (*runtime.Value, error) {
	kind, _ := recv.Intl["kind"].(string)
	tag, _ := recv.Intl["tag"].(language.Tag)
	switch {
	case kind == "collator" && name == "compare":
		c := collate.New(tag)
		return runtime.NewNumber(int64(c.CompareString(argString(args, 0), argString(args, 1)))), nil
	case kind == "number" && name == "format":
		return runtime.NewString(formatIntlNumber(recv, tag, argFloat(args, 0))), nil
	case kind == "datetime" && name == "format":
		return runtime.NewString(formatIntlDate(recv, argAt(args, 0))), nil
	case name == "resolvedOptions":
		opts := runtime.NewCell(runtime.ObjPlain)
		opts.Obj.SetOwn("locale", runtime.NewString(tag.String()))
		return opts, nil
	}
	return nil, runtime.Errf("%q is not a function on Intl.%s", name, kind)
}

func formatIntlNumber(recv *runtime.Object, tag language.Tag, f float64) string {
	p := message.NewPrinter(tag)
	var opts []number.Option
	if min, ok := recv.Intl["minFrac"].(int); ok && min >= 0 {
		max := min
		if m, ok := recv.Intl["maxFrac"].(int); ok && m >= min {
			max = m
		}
		opts = append(opts, number.MinFractionDigits(min), number.MaxFractionDigits(max))
	}
	style, _ := recv.Intl["style"].(string)
	if style == "percent" {
		return p.Sprint(number.Percent(f, opts...))
	}
	out := p.Sprint(number.Decimal(f, opts...))
	if style == "currency" {
		if cur, _ := recv.Intl["currency"].(string); cur != "" {
			return cur + " " + out
		}
	}
	return out
}

func formatIntlDate(recv *runtime.Object, arg *runtime.Value) string {
	var t time.Time
	if arg.Kind == runtime.KindObject && arg.Obj.Kind == runtime.ObjDate {
		t = time.UnixMilli(arg.Obj.DateMS).UTC()
	} else {
		t = time.UnixMilli(int64(runtime.ToNumberUnary(arg))).UTC()
	}
	dateStyle, _ := recv.Intl["dateStyle"].(string)
	timeStyle, _ := recv.Intl["timeStyle"].(string)
	switch {
	case dateStyle == "full":
		return t.Format("Monday, January 2, 2006")
	case dateStyle == "long":
		return t.Format("January 2, 2006")
	case dateStyle == "medium":
		return t.Format("Jan 2, 2006")
	case timeStyle != "":
		return t.Format("3:04:05 PM")
	}
	return t.Format("1/2/2006")
}
