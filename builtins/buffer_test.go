package builtins

import (
	"testing"

	"github.com/example/minjs/runtime"
)

func newBufferAndView(t *testing.T, byteLen int) (*runtime.Value, *runtime.Value) {
	t.Helper()
	buf, err := NewArrayBufferValue([]*runtime.Value{runtime.NewNumber(int64(byteLen))})
	if err != nil {
		t.Fatalf("NewArrayBufferValue: %v", err)
	}
	view, err := NewTypedArrayValue("Uint8Array", []*runtime.Value{buf})
	if err != nil {
		t.Fatalf("NewTypedArrayValue: %v", err)
	}
	return buf, view
}

func TestBufferTransferDetaches(t *testing.T) {
	buf, view := newBufferAndView(t, 4)
	if err := SetTypedArrayIndex(view.Obj, 0, 65); err != nil {
		t.Fatalf("write: %v", err)
	}

	moved, err := BufferMethod(buf.Obj, "transfer", nil)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if n := len(moved.Obj.Buffer.Bytes); n != 4 {
		t.Errorf("moved byteLength = %d", n)
	}
	if moved.Obj.Buffer.Bytes[0] != 65 {
		t.Errorf("moved bytes lost the written value: %v", moved.Obj.Buffer.Bytes)
	}

	if !buf.Obj.Buffer.Detached {
		t.Fatal("source buffer should be detached after transfer")
	}
	if v, _ := BufferProperty(buf.Obj, "byteLength"); v.Num != 0 {
		t.Errorf("detached byteLength = %d", v.Num)
	}
	if v, _ := BufferProperty(buf.Obj, "detached"); !v.Bool {
		t.Error("detached property should read true")
	}
}

func TestDetachedBufferRejectsByteAccess(t *testing.T) {
	buf, view := newBufferAndView(t, 4)
	if _, err := BufferMethod(buf.Obj, "transfer", nil); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	if v := TypedArrayIndex(view.Obj, 0); v.Kind != runtime.KindUndefined {
		t.Errorf("read through a detached view = %s", runtime.ToString(v))
	}
	if err := SetTypedArrayIndex(view.Obj, 0, 1); err == nil {
		t.Error("write through a detached view should fail")
	}
	if _, err := TypedArrayMethod(view.Obj, "fill", []*runtime.Value{runtime.NewNumber(1)}, nil); err == nil {
		t.Error("fill on a detached view should fail")
	}
	if _, err := BufferMethod(buf.Obj, "slice", nil); err == nil {
		t.Error("slice of a detached buffer should fail")
	}
	if _, err := BufferMethod(buf.Obj, "transfer", nil); err == nil {
		t.Error("transferring twice should fail")
	}
}

func TestBufferSliceCopies(t *testing.T) {
	buf, view := newBufferAndView(t, 4)
	for i := 0; i < 4; i++ {
		if err := SetTypedArrayIndex(view.Obj, i, float64(i+1)); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}
	part, err := BufferMethod(buf.Obj, "slice", []*runtime.Value{
		runtime.NewNumber(0), runtime.NewNumber(2),
	})
	if err != nil {
		t.Fatalf("slice: %v", err)
	}
	if got := part.Obj.Buffer.Bytes; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("slice bytes = %v", got)
	}
	// The copy is independent of the source.
	if err := SetTypedArrayIndex(view.Obj, 0, 9); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if part.Obj.Buffer.Bytes[0] != 1 {
		t.Error("slice should copy, not alias, the source bytes")
	}
}
