package builtins

import (
	"strings"

	"github.com/example/minjs/runtime"
)

// ConsoleSink receives console output lines. The test runner captures them;
// the CLI prints them.
type ConsoleSink interface {
	ConsoleLine(level string, line string)
}

// WriterSink adapts a plain function to ConsoleSink.
type WriterSink func(level, line string)

func (w WriterSink) ConsoleLine(level, line string) { w(level, line) }

// FormatConsoleArgs renders console.log arguments: strings print bare at the
// top level, everything else gets the inspect rendering.
func FormatConsoleArgs(args []*runtime.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a.Kind == runtime.KindString {
			parts[i] = a.Str
			continue
		}
		parts[i] = Inspect(a, 0)
	}
	return strings.Join(parts, " ")
}

// Inspect renders a value the way a developer console would, with quoted
// strings inside containers and recursion capped at depth 4.
func Inspect(v *runtime.Value, depth int) string {
	if depth > 4 {
		return "..."
	}
	switch v.Kind {
	case runtime.KindString:
		return "'" + strings.ReplaceAll(v.Str, "'", "\\'") + "'"
	case runtime.KindObject:
		return inspectObject(v.Obj, depth)
	default:
		return runtime.ToString(v)
	}
}

func inspectObject(o *runtime.Object, depth int) string {
	switch o.Kind {
	case runtime.ObjArray:
		if len(o.Elems) == 0 {
			return "[]"
		}
		parts := make([]string, len(o.Elems))
		for i, el := range o.Elems {
			if el == nil {
				parts[i] = "undefined"
				continue
			}
			parts[i] = Inspect(el, depth+1)
		}
		return "[ " + strings.Join(parts, ", ") + " ]"
	case runtime.ObjPlain, runtime.ObjNode, runtime.ObjURL:
		keys := o.OwnKeys()
		if len(keys) == 0 {
			return "{}"
		}
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + Inspect(o.GetOwn(k), depth+1)
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case runtime.ObjMap:
		var parts []string
		o.MapData.Each(func(k, val *runtime.Value) error {
			parts = append(parts, Inspect(k, depth+1)+" => "+Inspect(val, depth+1))
			return nil
		})
		return "Map(" + itoa(o.MapData.Len()) + ") { " + strings.Join(parts, ", ") + " }"
	case runtime.ObjSet:
		var parts []string
		o.SetData.Each(func(k, _ *runtime.Value) error {
			parts = append(parts, Inspect(k, depth+1))
			return nil
		})
		return "Set(" + itoa(o.SetData.Len()) + ") { " + strings.Join(parts, ", ") + " }"
	case runtime.ObjPromise:
		switch o.Promise.State {
		case runtime.Fulfilled:
			return "Promise { " + Inspect(o.Promise.Result, depth+1) + " }"
		case runtime.Rejected:
			return "Promise { <rejected> " + Inspect(o.Promise.Result, depth+1) + " }"
		}
		return "Promise { <pending> }"
	case runtime.ObjFunction:
		name := ""
		if o.Fn != nil {
			name = o.Fn.Name
		}
		if name == "" {
			return "[Function (anonymous)]"
		}
		return "[Function: " + name + "]"
	default:
		return runtime.ToString(runtime.NewObject(o))
	}
}
