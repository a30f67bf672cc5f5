package builtins

import (
	"strings"
	"unicode"

	"github.com/example/minjs/runtime"
)

// StringMethod dispatches a method call on a string receiver. call is used
// when replace gets a function replacer.
func StringMethod(recv string, name string, args []*runtime.Value, call CallFunc) (*runtime.Value, error) {
	runes := []rune(recv)
	switch name {
	case "charAt":
		i := toInteger(argAt(args, 0))
		if i < 0 || i >= len(runes) {
			return runtime.NewString(""), nil
		}
		return runtime.NewString(string(runes[i])), nil
	case "charCodeAt":
		i := toInteger(argAt(args, 0))
		if i < 0 || i >= len(runes) {
			return runtime.NewFloat(nan()), nil
		}
		return runtime.NewNumber(int64(runes[i])), nil
	case "codePointAt":
		i := toInteger(argAt(args, 0))
		if i < 0 || i >= len(runes) {
			return runtime.Undefined, nil
		}
		return runtime.NewNumber(int64(runes[i])), nil
	case "at":
		i := toInteger(argAt(args, 0))
		if i < 0 {
			i += len(runes)
		}
		if i < 0 || i >= len(runes) {
			return runtime.Undefined, nil
		}
		return runtime.NewString(string(runes[i])), nil
	case "indexOf":
		return runtime.NewNumber(int64(strings.Index(recv, argString(args, 0)))), nil
	case "lastIndexOf":
		return runtime.NewNumber(int64(strings.LastIndex(recv, argString(args, 0)))), nil
	case "includes":
		return runtime.NewBool(strings.Contains(recv, argString(args, 0))), nil
	case "startsWith":
		return runtime.NewBool(strings.HasPrefix(recv, argString(args, 0))), nil
	case "endsWith":
		return runtime.NewBool(strings.HasSuffix(recv, argString(args, 0))), nil
	case "slice":
		start := relativeIndex(argAt(args, 0), len(runes))
		end := len(runes)
		if len(args) > 1 && args[1].Kind != runtime.KindUndefined {
			end = relativeIndex(args[1], len(runes))
		}
		if start >= end {
			return runtime.NewString(""), nil
		}
		return runtime.NewString(string(runes[start:end])), nil
	case "substring":
		start := clampIndex(argAt(args, 0), len(runes))
		end := len(runes)
		if len(args) > 1 && args[1].Kind != runtime.KindUndefined {
			end = clampIndex(args[1], len(runes))
		}
		if start > end {
			start, end = end, start
		}
		return runtime.NewString(string(runes[start:end])), nil
	case "toUpperCase":
		return runtime.NewString(strings.ToUpper(recv)), nil
	case "toLowerCase":
		return runtime.NewString(strings.ToLower(recv)), nil
	case "trim":
		return runtime.NewString(strings.TrimSpace(recv)), nil
	case "trimStart":
		return runtime.NewString(strings.TrimLeftFunc(recv, unicode.IsSpace)), nil
	case "trimEnd":
		return runtime.NewString(strings.TrimRightFunc(recv, unicode.IsSpace)), nil
	case "repeat":
		n := toInteger(argAt(args, 0))
		if n < 0 {
			return nil, runtime.Errf("Invalid count value: %d", n)
		}
		return runtime.NewString(strings.Repeat(recv, n)), nil
	case "padStart":
		return runtime.NewString(pad(recv, args, true)), nil
	case "padEnd":
		return runtime.NewString(pad(recv, args, false)), nil
	case "split":
		return stringSplit(recv, args)
	case "replace":
		return stringReplace(recv, args, call, false)
	case "replaceAll":
		return stringReplace(recv, args, call, true)
	case "match":
		return stringMatch(recv, args)
	case "search":
		return stringSearch(recv, args)
	case "concat":
		var b strings.Builder
		b.WriteString(recv)
		for i := range args {
			b.WriteString(argString(args, i))
		}
		return runtime.NewString(b.String()), nil
	case "localeCompare":
		other := argString(args, 0)
		switch {
		case recv < other:
			return runtime.NewNumber(-1), nil
		case recv > other:
			return runtime.NewNumber(1), nil
		}
		return runtime.NewNumber(0), nil
	case "toString", "valueOf":
		return runtime.NewString(recv), nil
	}
	return nil, runtime.Errf("%q is not a function on strings", name)
}

// StringProperty resolves non-call members of a string receiver.
func StringProperty(recv string, name string) (*runtime.Value, bool) {
	if name == "length" {
		return runtime.NewNumber(int64(len([]rune(recv)))), true
	}
	return nil, false
}

// clampIndex is substring's index handling: negative and NaN clamp to 0.
func clampIndex(v *runtime.Value, length int) int {
	i := toInteger(v)
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

func pad(s string, args []*runtime.Value, start bool) string {
	target := toInteger(argAt(args, 0))
	filler := " "
	if len(args) > 1 && args[1].Kind != runtime.KindUndefined {
		filler = argString(args, 1)
	}
	runes := []rune(s)
	if target <= len(runes) || filler == "" {
		return s
	}
	need := target - len(runes)
	fr := []rune(filler)
	var b strings.Builder
	for i := 0; i < need; i++ {
		b.WriteRune(fr[i%len(fr)])
	}
	if start {
		return b.String() + s
	}
	return s + b.String()
}

func stringSplit(s string, args []*runtime.Value) (*runtime.Value, error) {
	sep := argAt(args, 0)
	limit := -1
	if len(args) > 1 && args[1].Kind != runtime.KindUndefined {
		limit = toInteger(args[1])
	}
	var parts []string
	switch {
	case sep.Kind == runtime.KindUndefined:
		parts = []string{s}
	case sep.Kind == runtime.KindObject && sep.Obj.Kind == runtime.ObjRegExp:
		parts = sep.Obj.Re.Split(s, -1)
	default:
		parts = strings.Split(s, runtime.ToString(sep))
	}
	if limit >= 0 && len(parts) > limit {
		parts = parts[:limit]
	}
	elems := make([]*runtime.Value, len(parts))
	for i, p := range parts {
		elems[i] = runtime.NewString(p)
	}
	return runtime.NewArrayValue(elems), nil
}

func stringReplace(s string, args []*runtime.Value, call CallFunc, all bool) (*runtime.Value, error) {
	pattern := argAt(args, 0)
	replacement := argAt(args, 1)

	if pattern.Kind == runtime.KindObject && pattern.Obj.Kind == runtime.ObjRegExp {
		re := pattern.Obj.Re
		global := all || regexGlobal(pattern.Obj)
		if isCallable(replacement) {
			return regexReplaceFunc(s, pattern.Obj, replacement, call, global)
		}
		repl := expandDollars(runtime.ToString(replacement))
		if global {
			return runtime.NewString(re.ReplaceAllString(s, repl)), nil
		}
		done := false
		out := re.ReplaceAllStringFunc(s, func(m string) string {
			if done {
				return m
			}
			done = true
			idx := re.FindStringSubmatchIndex(s)
			return string(re.ExpandString(nil, repl, s, idx))
		})
		return runtime.NewString(out), nil
	}

	search := runtime.ToString(pattern)
	if isCallable(replacement) {
		n := 1
		if all {
			n = -1
		}
		var b strings.Builder
		rest := s
		for n != 0 {
			i := strings.Index(rest, search)
			if i < 0 {
				break
			}
			b.WriteString(rest[:i])
			res, err := call(replacement, []*runtime.Value{
				runtime.NewString(search),
				runtime.NewNumber(int64(len(s) - len(rest) + i)),
				runtime.NewString(s),
			})
			if err != nil {
				return nil, err
			}
			b.WriteString(runtime.ToString(res))
			rest = rest[i+len(search):]
			if search == "" {
				break
			}
			if n > 0 {
				n--
			}
		}
		b.WriteString(rest)
		return runtime.NewString(b.String()), nil
	}
	repl := strings.ReplaceAll(runtime.ToString(replacement), "$&", search)
	if all {
		return runtime.NewString(strings.ReplaceAll(s, search, repl)), nil
	}
	return runtime.NewString(strings.Replace(s, search, repl, 1)), nil
}

// expandDollars rewrites JS $1 replacement syntax into Go's ${1} form.
func expandDollars(repl string) string {
	var b strings.Builder
	for i := 0; i < len(repl); i++ {
		if repl[i] == '$' && i+1 < len(repl) {
			c := repl[i+1]
			if c >= '0' && c <= '9' {
				j := i + 1
				for j < len(repl) && repl[j] >= '0' && repl[j] <= '9' {
					j++
				}
				b.WriteString("${" + repl[i+1:j] + "}")
				i = j - 1
				continue
			}
			if c == '&' {
				b.WriteString("${0}")
				i++
				continue
			}
			if c == '$' {
				b.WriteString("$$")
				i++
				continue
			}
		}
		b.WriteByte(repl[i])
	}
	return b.String()
}

func regexReplaceFunc(s string, re *runtime.Object, fn *runtime.Value, call CallFunc, global bool) (*runtime.Value, error) {
	var b strings.Builder
	pos := 0
	for {
		m := re.Re.FindStringSubmatchIndex(s[pos:])
		if m == nil {
			break
		}
		start, end := pos+m[0], pos+m[1]
		b.WriteString(s[pos:start])
		var callArgs []*runtime.Value
		for i := 0; i < len(m); i += 2 {
			if m[i] < 0 {
				callArgs = append(callArgs, runtime.Undefined)
			} else {
				callArgs = append(callArgs, runtime.NewString(s[pos+m[i]:pos+m[i+1]]))
			}
		}
		callArgs = append(callArgs, runtime.NewNumber(int64(start)), runtime.NewString(s))
		res, err := call(fn, callArgs)
		if err != nil {
			return nil, err
		}
		b.WriteString(runtime.ToString(res))
		if end == start {
			if end < len(s) {
				b.WriteByte(s[end])
			}
			end++
		}
		pos = end
		if !global || pos > len(s) {
			break
		}
	}
	if pos < len(s) {
		b.WriteString(s[pos:])
	}
	return runtime.NewString(b.String()), nil
}

func stringMatch(s string, args []*runtime.Value) (*runtime.Value, error) {
	pattern := argAt(args, 0)
	var obj *runtime.Object
	if pattern.Kind == runtime.KindObject && pattern.Obj.Kind == runtime.ObjRegExp {
		obj = pattern.Obj
	} else {
		v, err := NewRegExpValue(runtime.ToString(pattern), "")
		if err != nil {
			return nil, err
		}
		obj = v.Obj
	}
	if regexGlobal(obj) {
		all := obj.Re.FindAllString(s, -1)
		if all == nil {
			return runtime.Null, nil
		}
		elems := make([]*runtime.Value, len(all))
		for i, m := range all {
			elems[i] = runtime.NewString(m)
		}
		return runtime.NewArrayValue(elems), nil
	}
	m := obj.Re.FindStringSubmatchIndex(s)
	if m == nil {
		return runtime.Null, nil
	}
	return matchArray(s, m), nil
}

func stringSearch(s string, args []*runtime.Value) (*runtime.Value, error) {
	pattern := argAt(args, 0)
	var obj *runtime.Object
	if pattern.Kind == runtime.KindObject && pattern.Obj.Kind == runtime.ObjRegExp {
		obj = pattern.Obj
	} else {
		v, err := NewRegExpValue(runtime.ToString(pattern), "")
		if err != nil {
			return nil, err
		}
		obj = v.Obj
	}
	loc := obj.Re.FindStringIndex(s)
	if loc == nil {
		return runtime.NewNumber(-1), nil
	}
	return runtime.NewNumber(int64(loc[0])), nil
}
