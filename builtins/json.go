package builtins

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/example/minjs/runtime"
)

// JSONParse implements JSON.parse. Decoding goes through the token stream so
// object keys keep their document order.
func JSONParse(src string) (*runtime.Value, error) {
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, runtime.Errf("Unexpected token in JSON: %v", err)
	}
	if dec.More() {
		return nil, runtime.Errf("Unexpected non-whitespace character after JSON")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (*runtime.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return jsonToken(dec, tok)
}

func jsonToken(dec *json.Decoder, tok json.Token) (*runtime.Value, error) {
	switch t := tok.(type) {
	case nil:
		return runtime.Null, nil
	case bool:
		return runtime.NewBool(t), nil
	case string:
		return runtime.NewString(t), nil
	case json.Number:
		if n, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return runtime.NewNumber(n), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return runtime.NewFloat(f), nil
	case json.Delim:
		switch t {
		case '[':
			arr := runtime.NewCell(runtime.ObjArray)
			for dec.More() {
				el, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Obj.Elems = append(arr.Obj.Elems, el)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		case '{':
			obj := runtime.NewCell(runtime.ObjPlain)
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, runtime.Errf("bad object key")
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Obj.SetOwn(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		}
	}
	return nil, runtime.Errf("unexpected token")
}

// JSONStringify implements JSON.stringify with the optional indent argument.
// undefined values and functions disappear from objects and become null in
// arrays, matching JSON.stringify's censor rules.
func JSONStringify(v *runtime.Value, indentArg *runtime.Value) (*runtime.Value, error) {
	indent := ""
	if indentArg != nil {
		switch indentArg.Kind {
		case runtime.KindNumber:
			n := int(indentArg.Num)
			if n > 10 {
				n = 10
			}
			indent = strings.Repeat(" ", n)
		case runtime.KindString:
			indent = indentArg.Str
		}
	}
	var b strings.Builder
	ok := writeJSON(&b, v, indent, "")
	if !ok {
		return runtime.Undefined, nil
	}
	return runtime.NewString(b.String()), nil
}

// writeJSON reports false when the value is not representable at all
// (undefined, function), which the caller maps per context.
func writeJSON(b *strings.Builder, v *runtime.Value, indent, prefix string) bool {
	switch v.Kind {
	case runtime.KindUndefined, runtime.KindSymbol:
		return false
	case runtime.KindNull:
		b.WriteString("null")
	case runtime.KindBool:
		if v.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case runtime.KindNumber:
		b.WriteString(strconv.FormatInt(v.Num, 10))
	case runtime.KindFloat:
		if math.IsNaN(v.Flt) || math.IsInf(v.Flt, 0) {
			b.WriteString("null")
		} else {
			b.WriteString(runtime.FloatString(v.Flt))
		}
	case runtime.KindBigInt:
		return false
	case runtime.KindString:
		writeJSONString(b, v.Str)
	case runtime.KindObject:
		return writeJSONObject(b, v.Obj, indent, prefix)
	}
	return true
}

func writeJSONObject(b *strings.Builder, o *runtime.Object, indent, prefix string) bool {
	inner := prefix + indent
	nl, sp := "", ""
	if indent != "" {
		nl, sp = "\n", " "
	}
	switch o.Kind {
	case runtime.ObjFunction:
		return false
	case runtime.ObjArray:
		if len(o.Elems) == 0 {
			b.WriteString("[]")
			return true
		}
		b.WriteString("[" + nl)
		for i, el := range o.Elems {
			if i > 0 {
				b.WriteString("," + nl)
			}
			b.WriteString(inner)
			if el == nil || !writeJSON(b, el, indent, inner) {
				b.WriteString("null")
			}
		}
		b.WriteString(nl + prefix + "]")
		return true
	case runtime.ObjDate:
		v, _ := DateMethod(o, "toISOString", nil)
		writeJSONString(b, v.Str)
		return true
	case runtime.ObjMap, runtime.ObjSet, runtime.ObjRegExp:
		b.WriteString("{}")
		return true
	default:
		keys := o.OwnKeys()
		first := true
		var body strings.Builder
		for _, k := range keys {
			var vb strings.Builder
			if !writeJSON(&vb, o.GetOwn(k), indent, inner) {
				continue
			}
			if !first {
				body.WriteString("," + nl)
			}
			first = false
			body.WriteString(inner)
			writeJSONString(&body, k)
			body.WriteString(":" + sp)
			body.WriteString(vb.String())
		}
		if first {
			b.WriteString("{}")
			return true
		}
		b.WriteString("{" + nl + body.String() + nl + prefix + "}")
		return true
	}
}

func writeJSONString(b *strings.Builder, s string) {
	enc, _ := json.Marshal(s)
	b.Write(enc)
}
