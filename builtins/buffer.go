package builtins

import (
	"encoding/binary"
	"math"

	"github.com/example/minjs/runtime"
)

// NewArrayBufferValue implements new ArrayBuffer(byteLength).
func NewArrayBufferValue(args []*runtime.Value) (*runtime.Value, error) {
	n := toInteger(argAt(args, 0))
	if n < 0 {
		return nil, runtime.Errf("Invalid array buffer length")
	}
	v := runtime.NewCell(runtime.ObjBuffer)
	v.Obj.Buffer = &runtime.BufferData{Bytes: make([]byte, n)}
	return v, nil
}

var typedArrayInfo = map[string]struct {
	size   int
	signed bool
	float  bool
}{
	"Int8Array":    {1, true, false},
	"Uint8Array":   {1, false, false},
	"Int16Array":   {2, true, false},
	"Uint16Array":  {2, false, false},
	"Int32Array":   {4, true, false},
	"Uint32Array":  {4, false, false},
	"Float32Array": {4, false, true},
	"Float64Array": {8, false, true},
}

// NewTypedArrayValue implements the typed array constructors over a length,
// an existing buffer, or an array of initial values.
func NewTypedArrayValue(name string, args []*runtime.Value) (*runtime.Value, error) {
	info, ok := typedArrayInfo[name]
	if !ok {
		return nil, runtime.Errf("%s is not a constructor", name)
	}
	td := &runtime.TypedData{Name: name, ElemSize: info.size, Signed: info.signed, Float: info.float}
	arg := argAt(args, 0)
	switch {
	case arg.Kind == runtime.KindObject && arg.Obj.Kind == runtime.ObjBuffer:
		td.Buf = arg.Obj.Buffer
	case arg.Kind == runtime.KindObject && arg.Obj.Kind == runtime.ObjArray:
		td.Buf = &runtime.BufferData{Bytes: make([]byte, len(arg.Obj.Elems)*info.size)}
		for i, el := range arg.Obj.Elems {
			storeTypedElem(td, i, runtime.ToNumberUnary(el))
		}
	default:
		n := toInteger(arg)
		if n < 0 {
			return nil, runtime.Errf("Invalid typed array length")
		}
		td.Buf = &runtime.BufferData{Bytes: make([]byte, n*info.size)}
	}
	v := runtime.NewCell(runtime.ObjTypedArray)
	v.Obj.Typed = td
	return v, nil
}

func typedLen(td *runtime.TypedData) int {
	return len(td.Buf.Bytes) / td.ElemSize
}

func loadTypedElem(td *runtime.TypedData, i int) *runtime.Value {
	off := i * td.ElemSize
	b := td.Buf.Bytes[off : off+td.ElemSize]
	if td.Float {
		if td.ElemSize == 4 {
			return runtime.NewFloat(float64(math.Float32frombits(binary.LittleEndian.Uint32(b))))
		}
		return runtime.NewFloat(math.Float64frombits(binary.LittleEndian.Uint64(b)))
	}
	var raw uint64
	switch td.ElemSize {
	case 1:
		raw = uint64(b[0])
	case 2:
		raw = uint64(binary.LittleEndian.Uint16(b))
	case 4:
		raw = uint64(binary.LittleEndian.Uint32(b))
	}
	if td.Signed {
		switch td.ElemSize {
		case 1:
			return runtime.NewNumber(int64(int8(raw)))
		case 2:
			return runtime.NewNumber(int64(int16(raw)))
		case 4:
			return runtime.NewNumber(int64(int32(raw)))
		}
	}
	return runtime.NewNumber(int64(raw))
}

func storeTypedElem(td *runtime.TypedData, i int, f float64) {
	off := i * td.ElemSize
	b := td.Buf.Bytes[off : off+td.ElemSize]
	if td.Float {
		if td.ElemSize == 4 {
			binary.LittleEndian.PutUint32(b, math.Float32bits(float32(f)))
		} else {
			binary.LittleEndian.PutUint64(b, math.Float64bits(f))
		}
		return
	}
	var n int64
	if !math.IsNaN(f) && !math.IsInf(f, 0) {
		n = int64(math.Trunc(f))
	}
	switch td.ElemSize {
	case 1:
		b[0] = byte(n)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(n))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(n))
	}
}

// TypedArrayIndex reads view[i], Undefined when out of range or the buffer
// is detached.
func TypedArrayIndex(recv *runtime.Object, i int) *runtime.Value {
	td := recv.Typed
	if td.Buf.Detached || i < 0 || i >= typedLen(td) {
		return runtime.Undefined
	}
	return loadTypedElem(td, i)
}

// SetTypedArrayIndex writes view[i] = f; out-of-range writes are dropped.
func SetTypedArrayIndex(recv *runtime.Object, i int, f float64) error {
	td := recv.Typed
	if td.Buf.Detached {
		return errDetached()
	}
	if i >= 0 && i < typedLen(td) {
		storeTypedElem(td, i, f)
	}
	return nil
}

// TypedArrayProperty resolves length, byteLength and buffer accessors.
func TypedArrayProperty(recv *runtime.Object, name string) (*runtime.Value, bool) {
	td := recv.Typed
	switch name {
	case "length":
		return runtime.NewNumber(int64(typedLen(td))), true
	case "byteLength":
		return runtime.NewNumber(int64(len(td.Buf.Bytes))), true
	case "buffer":
		v := runtime.NewCell(runtime.ObjBuffer)
		v.Obj.Buffer = td.Buf
		return v, true
	}
	return nil, false
}

// BufferProperty resolves byteLength and detached on an ArrayBuffer.
func BufferProperty(recv *runtime.Object, name string) (*runtime.Value, bool) {
	switch name {
	case "byteLength":
		if recv.Buffer.Detached {
			return runtime.NewNumber(0), true
		}
		return runtime.NewNumber(int64(len(recv.Buffer.Bytes))), true
	case "detached":
		return runtime.NewBool(recv.Buffer.Detached), true
	}
	return nil, false
}

// BufferMethod covers slice and transfer. transfer moves the bytes into a
// fresh buffer and detaches the receiver; every later byte access through
// the old buffer or its views fails the detached check.
func BufferMethod(recv *runtime.Object, name string, args []*runtime.Value) (*runtime.Value, error) {
	bd := recv.Buffer
	switch name {
	case "slice":
		if bd.Detached {
			return nil, errDetached()
		}
		start := relativeIndex(argAt(args, 0), len(bd.Bytes))
		end := len(bd.Bytes)
		if len(args) > 1 && args[1].Kind != runtime.KindUndefined {
			end = relativeIndex(args[1], len(bd.Bytes))
		}
		out := &runtime.BufferData{}
		if start < end {
			out.Bytes = append(out.Bytes, bd.Bytes[start:end]...)
		}
		v := runtime.NewCell(runtime.ObjBuffer)
		v.Obj.Buffer = out
		return v, nil
	case "transfer":
		if bd.Detached {
			return nil, errDetached()
		}
		v := runtime.NewCell(runtime.ObjBuffer)
		v.Obj.Buffer = &runtime.BufferData{Bytes: bd.Bytes}
		bd.Bytes = nil
		bd.Detached = true
		return v, nil
	}
	return nil, runtime.Errf("%q is not a function on ArrayBuffer", name)
}

func errDetached() error {
	return runtime.Errf("Cannot perform operation on a detached ArrayBuffer")
}

// TypedArrayMethod covers the small method surface of views. Every method
// touches the backing bytes, so the detached check gates them all.
func TypedArrayMethod(recv *runtime.Object, name string, args []*runtime.Value, call CallFunc) (*runtime.Value, error) {
	td := recv.Typed
	if td.Buf.Detached {
		return nil, errDetached()
	}
	switch name {
	case "fill":
		f := argFloat(args, 0)
		for i := 0; i < typedLen(td); i++ {
			storeTypedElem(td, i, f)
		}
		return runtime.NewObject(recv), nil
	case "set":
		src := argAt(args, 0)
		offset := 0
		if len(args) > 1 {
			offset = toInteger(args[1])
		}
		if src.Kind == runtime.KindObject && src.Obj.Kind == runtime.ObjArray {
			for i, el := range src.Obj.Elems {
				if err := SetTypedArrayIndex(recv, offset+i, runtime.ToNumberUnary(el)); err != nil {
					return nil, err
				}
			}
		}
		return runtime.Undefined, nil
	case "slice", "subarray":
		start := relativeIndex(argAt(args, 0), typedLen(td))
		end := typedLen(td)
		if len(args) > 1 && args[1].Kind != runtime.KindUndefined {
			end = relativeIndex(args[1], typedLen(td))
		}
		out := &runtime.TypedData{Name: td.Name, ElemSize: td.ElemSize, Signed: td.Signed, Float: td.Float}
		if name == "subarray" {
			// A subarray shares the backing buffer only when it covers the
			// whole view; partial views get a copy since TypedData has no
			// byte offset.
			if start == 0 && end == typedLen(td) {
				out.Buf = td.Buf
			}
		}
		if out.Buf == nil {
			n := end - start
			if n < 0 {
				n = 0
			}
			out.Buf = &runtime.BufferData{Bytes: make([]byte, n*td.ElemSize)}
			if n > 0 {
				copy(out.Buf.Bytes, td.Buf.Bytes[start*td.ElemSize:end*td.ElemSize])
			}
		}
		v := runtime.NewCell(runtime.ObjTypedArray)
		v.Obj.Typed = out
		return v, nil
	case "join":
		arr := runtime.NewArray(nil)
		for i := 0; i < typedLen(td); i++ {
			arr.Elems = append(arr.Elems, loadTypedElem(td, i))
		}
		return ArrayMethod(arr, "join", args, call)
	}
	return nil, runtime.Errf("%q is not a function on %s", name, td.Name)
}

// NewBlobValue implements new Blob(parts, options).
func NewBlobValue(args []*runtime.Value) (*runtime.Value, error) {
	bd := &runtime.BlobData{}
	parts := argAt(args, 0)
	if parts.Kind == runtime.KindObject && parts.Obj.Kind == runtime.ObjArray {
		for _, el := range parts.Obj.Elems {
			switch {
			case el.Kind == runtime.KindString:
				bd.Bytes = append(bd.Bytes, el.Str...)
			case el.Kind == runtime.KindObject && el.Obj.Kind == runtime.ObjBlob:
				bd.Bytes = append(bd.Bytes, el.Obj.Blob.Bytes...)
			case el.Kind == runtime.KindObject && el.Obj.Kind == runtime.ObjTypedArray:
				bd.Bytes = append(bd.Bytes, el.Obj.Typed.Buf.Bytes...)
			default:
				bd.Bytes = append(bd.Bytes, runtime.ToString(el)...)
			}
		}
	}
	if opts := argAt(args, 1); opts.Kind == runtime.KindObject {
		if t := opts.Obj.GetOwn("type"); t != nil {
			bd.Type = runtime.ToString(t)
		}
	}
	v := runtime.NewCell(runtime.ObjBlob)
	v.Obj.Blob = bd
	return v, nil
}

// BlobProperty resolves size and type.
func BlobProperty(recv *runtime.Object, name string) (*runtime.Value, bool) {
	switch name {
	case "size":
		return runtime.NewNumber(int64(len(recv.Blob.Bytes))), true
	case "type":
		return runtime.NewString(recv.Blob.Type), true
	}
	return nil, false
}

// BlobMethod covers slice and text.
func BlobMethod(recv *runtime.Object, name string, args []*runtime.Value) (*runtime.Value, error) {
	bd := recv.Blob
	switch name {
	case "slice":
		start := relativeIndex(argAt(args, 0), len(bd.Bytes))
		end := len(bd.Bytes)
		if len(args) > 1 && args[1].Kind != runtime.KindUndefined {
			end = relativeIndex(args[1], len(bd.Bytes))
		}
		out := &runtime.BlobData{Type: bd.Type}
		if start < end {
			out.Bytes = append(out.Bytes, bd.Bytes[start:end]...)
		}
		v := runtime.NewCell(runtime.ObjBlob)
		v.Obj.Blob = out
		return v, nil
	case "text":
		// Resolves immediately; the settled promise model has no real I/O.
		return runtime.ResolvedPromise(runtime.NewString(string(bd.Bytes))), nil
	}
	return nil, runtime.Errf("%q is not a function on Blob", name)
}
