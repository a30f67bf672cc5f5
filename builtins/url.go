package builtins

import (
	"net/url"
	"strings"

	"github.com/example/minjs/runtime"
)

// NewURLValue implements new URL(href [, base]), backed by net/url.
func NewURLValue(args []*runtime.Value) (*runtime.Value, error) {
	raw := argString(args, 0)
	var u *url.URL
	var err error
	if len(args) > 1 && args[1].Kind != runtime.KindUndefined {
		base, berr := url.Parse(argString(args, 1))
		if berr != nil {
			return nil, runtime.Errf("Invalid base URL: %s", argString(args, 1))
		}
		u, err = base.Parse(raw)
	} else {
		u, err = url.Parse(raw)
	}
	if err != nil || u.Scheme == "" {
		return nil, runtime.Errf("Invalid URL: %s", raw)
	}
	v := runtime.NewCell(runtime.ObjURL)
	v.Obj.Intl = map[string]any{"url": u, "href": u.String()}
	return v, nil
}

// URLProperty resolves the read accessors of a URL cell.
func URLProperty(recv *runtime.Object, name string) (*runtime.Value, bool) {
	u := recv.Intl["url"].(*url.URL)
	switch name {
	case "href":
		return runtime.NewString(u.String()), true
	case "protocol":
		return runtime.NewString(u.Scheme + ":"), true
	case "host":
		return runtime.NewString(u.Host), true
	case "hostname":
		return runtime.NewString(u.Hostname()), true
	case "port":
		return runtime.NewString(u.Port()), true
	case "pathname":
		p := u.EscapedPath()
		if p == "" {
			p = "/"
		}
		return runtime.NewString(p), true
	case "search":
		if u.RawQuery == "" {
			return runtime.NewString(""), true
		}
		return runtime.NewString("?" + u.RawQuery), true
	case "hash":
		if u.Fragment == "" {
			return runtime.NewString(""), true
		}
		return runtime.NewString("#" + u.Fragment), true
	case "origin":
		return runtime.NewString(u.Scheme + "://" + u.Host), true
	case "searchParams":
		if cached, ok := recv.Intl["searchParams"].(*runtime.Value); ok {
			return cached, true
		}
		sp := NewSearchParamsValue([]*runtime.Value{runtime.NewString(u.RawQuery)})
		recv.Intl["searchParams"] = sp
		return sp, true
	}
	return nil, false
}

// URLMethod covers the URL receiver's method surface.
func URLMethod(recv *runtime.Object, name string, args []*runtime.Value) (*runtime.Value, error) {
	switch name {
	case "toString", "toJSON":
		v, _ := URLProperty(recv, "href")
		return v, nil
	}
	return nil, runtime.Errf("%q is not a function on URL", name)
}

// NewSearchParamsValue implements new URLSearchParams(init) for string and
// object initializers.
func NewSearchParamsValue(args []*runtime.Value) *runtime.Value {
	v := runtime.NewCell(runtime.ObjSearchParams)
	v.Obj.Params = &runtime.SearchParams{}
	if len(args) == 0 {
		return v
	}
	init := args[0]
	switch {
	case init.Kind == runtime.KindString:
		q := strings.TrimPrefix(init.Str, "?")
		for _, pair := range strings.Split(q, "&") {
			if pair == "" {
				continue
			}
			k, val, _ := strings.Cut(pair, "=")
			dk, err := percentDecode(strings.ReplaceAll(k, "+", " "))
			if err != nil {
				dk = runtime.NewString(k)
			}
			dv, err := percentDecode(strings.ReplaceAll(val, "+", " "))
			if err != nil {
				dv = runtime.NewString(val)
			}
			v.Obj.Params.Append(dk.Str, dv.Str)
		}
	case init.Kind == runtime.KindObject && init.Obj.Kind == runtime.ObjPlain:
		for _, k := range init.Obj.OwnKeys() {
			v.Obj.Params.Append(k, runtime.ToString(init.Obj.GetOwn(k)))
		}
	}
	return v
}

// SearchParamsMethod dispatches URLSearchParams and FormData methods; the
// two share the multimap surface.
func SearchParamsMethod(recv *runtime.Object, name string, args []*runtime.Value, call CallFunc) (*runtime.Value, error) {
	p := recv.Params
	switch name {
	case "get":
		if v, ok := p.Get(argString(args, 0)); ok {
			return runtime.NewString(v), nil
		}
		return runtime.Null, nil
	case "getAll":
		var out []*runtime.Value
		for i, k := range p.Keys {
			if k == argString(args, 0) {
				out = append(out, runtime.NewString(p.Vals[i]))
			}
		}
		return runtime.NewArrayValue(out), nil
	case "has":
		_, ok := p.Get(argString(args, 0))
		return runtime.NewBool(ok), nil
	case "append":
		p.Append(argString(args, 0), argString(args, 1))
		return runtime.Undefined, nil
	case "set":
		p.Set(argString(args, 0), argString(args, 1))
		return runtime.Undefined, nil
	case "delete":
		p.Delete(argString(args, 0))
		return runtime.Undefined, nil
	case "forEach":
		fn := argAt(args, 0)
		if !isCallable(fn) {
			return nil, runtime.Errf("forEach expects a function")
		}
		self := runtime.NewObject(recv)
		for i := range p.Keys {
			if _, err := call(fn, []*runtime.Value{
				runtime.NewString(p.Vals[i]), runtime.NewString(p.Keys[i]), self,
			}); err != nil {
				return nil, err
			}
		}
		return runtime.Undefined, nil
	case "keys", "values", "entries":
		var out []*runtime.Value
		for i := range p.Keys {
			switch name {
			case "keys":
				out = append(out, runtime.NewString(p.Keys[i]))
			case "values":
				out = append(out, runtime.NewString(p.Vals[i]))
			default:
				out = append(out, runtime.NewArrayValue([]*runtime.Value{
					runtime.NewString(p.Keys[i]), runtime.NewString(p.Vals[i]),
				}))
			}
		}
		return runtime.NewArrayValue(out), nil
	case "toString":
		var b strings.Builder
		for i, k := range p.Keys {
			if i > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(p.Vals[i]))
		}
		return runtime.NewString(b.String()), nil
	}
	return nil, runtime.Errf("%q is not a function", name)
}

// NewFormDataValue implements new FormData().
func NewFormDataValue() *runtime.Value {
	v := runtime.NewCell(runtime.ObjFormData)
	v.Obj.Params = &runtime.SearchParams{}
	return v
}
