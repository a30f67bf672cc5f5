package builtins

import (
	"regexp"
	"strings"

	"github.com/example/minjs/runtime"
)

// CompileRegex translates a script regex (pattern plus JS flags) into a Go
// regexp. The i, m and s flags map onto Go's inline flag syntax; g and y
// change matching behavior at the call sites, not the pattern; u is accepted
// and ignored since Go patterns are UTF-8 native.
func CompileRegex(pattern, flags string) (*regexp.Regexp, error) {
	var inline string
	for _, f := range flags {
		switch f {
		case 'i':
			inline += "i"
		case 'm':
			inline += "m"
		case 's':
			inline += "s"
		case 'g', 'y', 'u':
		default:
			return nil, runtime.Errf("invalid regular expression flag %q", string(f))
		}
	}
	src := translatePattern(pattern)
	if inline != "" {
		src = "(?" + inline + ")" + src
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, runtime.Errf("invalid regular expression: /%s/", pattern)
	}
	return re, nil
}

// translatePattern rewrites the JS escapes Go's engine spells differently:
// \uXXXX and \u{...} become \x{...}, and (?<name>...) named groups become
// (?P<name>...). Everything else passes through untouched.
func translatePattern(p string) string {
	var b strings.Builder
	for i := 0; i < len(p); i++ {
		if p[i] == '\\' && i+1 < len(p) {
			if p[i+1] == 'u' {
				if i+2 < len(p) && p[i+2] == '{' {
					b.WriteString(`\x`)
					i++
					continue
				}
				if i+5 < len(p) && isHex(p[i+2:i+6]) {
					b.WriteString(`\x{`)
					b.WriteString(p[i+2 : i+6])
					b.WriteByte('}')
					i += 5
					continue
				}
			}
			b.WriteByte(p[i])
			b.WriteByte(p[i+1])
			i++
			continue
		}
		if p[i] == '(' && strings.HasPrefix(p[i:], "(?<") &&
			!strings.HasPrefix(p[i:], "(?<=") && !strings.HasPrefix(p[i:], "(?<!") {
			b.WriteString("(?P<")
			i += 2
			continue
		}
		b.WriteByte(p[i])
	}
	return b.String()
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

// NewRegExpValue builds an ObjRegExp cell with its compiled engine attached.
func NewRegExpValue(pattern, flags string) (*runtime.Value, error) {
	re, err := CompileRegex(pattern, flags)
	if err != nil {
		return nil, err
	}
	v := runtime.NewCell(runtime.ObjRegExp)
	v.Obj.Pattern = pattern
	v.Obj.Flags = flags
	v.Obj.Re = re
	return v, nil
}

func regexGlobal(o *runtime.Object) bool {
	return strings.ContainsRune(o.Flags, 'g')
}

// RegExpMethod dispatches method calls on a regex receiver.
func RegExpMethod(recv *runtime.Object, name string, args []*runtime.Value) (*runtime.Value, error) {
	switch name {
	case "test":
		return runtime.NewBool(recv.Re.MatchString(argString(args, 0))), nil
	case "exec":
		m := recv.Re.FindStringSubmatchIndex(argString(args, 0))
		if m == nil {
			return runtime.Null, nil
		}
		s := argString(args, 0)
		return matchArray(s, m), nil
	case "toString":
		return runtime.NewString("/" + recv.Pattern + "/" + recv.Flags), nil
	}
	return nil, runtime.Errf("regex has no method %q", name)
}

// matchArray converts submatch index pairs into the JS match-result array
// shape with index and input properties.
func matchArray(input string, idx []int) *runtime.Value {
	arr := runtime.NewCell(runtime.ObjArray)
	for i := 0; i < len(idx); i += 2 {
		if idx[i] < 0 {
			arr.Obj.Elems = append(arr.Obj.Elems, runtime.Undefined)
			continue
		}
		arr.Obj.Elems = append(arr.Obj.Elems, runtime.NewString(input[idx[i]:idx[i+1]]))
	}
	arr.Obj.SetOwn("index", runtime.NewNumber(int64(idx[0])))
	arr.Obj.SetOwn("input", runtime.NewString(input))
	return arr
}
