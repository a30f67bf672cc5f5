package runtime

import (
	"math/big"
	"regexp"

	"github.com/example/minjs/ast"
)

// Kind identifies the primitive kind of a Value.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber // integer-representable
	KindFloat
	KindBigInt
	KindString
	KindSymbol
	KindObject
)

// Value is a JS-like runtime value. Primitives are held inline; every
// container kind is backed by exactly one shared *Object cell, so assignment
// shares the cell and aliasing behaves like JS references. Nothing ever deep
// copies a container implicitly.
type Value struct {
	Kind Kind
	Bool bool
	Num  int64
	Flt  float64
	Str  string
	Big  *big.Int
	Sym  *Symbol
	Obj  *Object
}

var (
	Undefined = &Value{Kind: KindUndefined}
	Null      = &Value{Kind: KindNull}
	True      = &Value{Kind: KindBool, Bool: true}
	False     = &Value{Kind: KindBool, Bool: false}
)

func NewNumber(n int64) *Value    { return &Value{Kind: KindNumber, Num: n} }
func NewFloat(f float64) *Value   { return &Value{Kind: KindFloat, Flt: f} }
func NewString(s string) *Value   { return &Value{Kind: KindString, Str: s} }
func NewBigInt(n *big.Int) *Value { return &Value{Kind: KindBigInt, Big: n} }
func NewObject(o *Object) *Value  { return &Value{Kind: KindObject, Obj: o} }

func NewBool(b bool) *Value {
	if b {
		return True
	}
	return False
}

// Symbol is a unique, unforgeable key.
type Symbol struct {
	Description string
}

// ObjectKind identifies the container variant behind an object Value.
type ObjectKind int

const (
	ObjPlain ObjectKind = iota
	ObjArray
	ObjMap
	ObjSet
	ObjDate
	ObjRegExp
	ObjPromise
	ObjBuffer
	ObjTypedArray
	ObjBlob
	ObjFunction
	ObjNode
	ObjURL
	ObjSearchParams
	ObjFormData
	ObjIntlFormat
)

func (k ObjectKind) String() string {
	switch k {
	case ObjPlain:
		return "Object"
	case ObjArray:
		return "Array"
	case ObjMap:
		return "Map"
	case ObjSet:
		return "Set"
	case ObjDate:
		return "Date"
	case ObjRegExp:
		return "RegExp"
	case ObjPromise:
		return "Promise"
	case ObjBuffer:
		return "ArrayBuffer"
	case ObjTypedArray:
		return "TypedArray"
	case ObjBlob:
		return "Blob"
	case ObjFunction:
		return "Function"
	case ObjNode:
		return "Node"
	case ObjURL:
		return "URL"
	case ObjSearchParams:
		return "URLSearchParams"
	case ObjFormData:
		return "FormData"
	case ObjIntlFormat:
		return "IntlFormat"
	}
	return "Object"
}

// Object is the single shared cell behind every container value. Own
// properties live in Props regardless of kind, which is what lets a
// user-assigned member shadow built-in method dispatch: lookup checks Props
// first and only then the fixed builtin for the kind.
type Object struct {
	Kind  ObjectKind
	Props map[string]*Value
	order []string // Props insertion order

	Elems   []*Value    // ObjArray
	MapData *OrderedMap // ObjMap
	SetData *OrderedMap // ObjSet, values ignored

	DateMS int64 // ObjDate: epoch milliseconds

	Pattern string // ObjRegExp
	Flags   string
	Re      *regexp.Regexp

	Promise *PromiseData   // ObjPromise
	Buffer  *BufferData    // ObjBuffer
	Typed   *TypedData     // ObjTypedArray
	Blob    *BlobData      // ObjBlob
	Fn      *Function      // ObjFunction
	Node    *NodeData      // ObjNode
	Params  *SearchParams  // ObjSearchParams, ObjFormData
	Intl    map[string]any // ObjIntlFormat, ObjURL: collaborator handles
}

func NewPlainObject() *Object {
	return &Object{Kind: ObjPlain, Props: map[string]*Value{}}
}

func NewArray(elems []*Value) *Object {
	return &Object{Kind: ObjArray, Props: map[string]*Value{}, Elems: elems}
}

// NewCell builds a fresh container value of the given kind.
func NewCell(kind ObjectKind) *Value {
	return NewObject(&Object{Kind: kind, Props: map[string]*Value{}})
}

// NewArrayValue wraps elements into an array cell.
func NewArrayValue(elems []*Value) *Value {
	return NewObject(NewArray(elems))
}

// GetOwn returns an own property, or nil.
func (o *Object) GetOwn(name string) *Value {
	if o.Props == nil {
		return nil
	}
	return o.Props[name]
}

// SetOwn sets an own property, tracking first-insertion order.
func (o *Object) SetOwn(name string, v *Value) {
	if o.Props == nil {
		o.Props = map[string]*Value{}
	}
	if _, exists := o.Props[name]; !exists {
		o.order = append(o.order, name)
	}
	o.Props[name] = v
}

// DeleteOwn removes an own property.
func (o *Object) DeleteOwn(name string) bool {
	if o.Props == nil {
		return false
	}
	if _, exists := o.Props[name]; !exists {
		return false
	}
	delete(o.Props, name)
	for i, k := range o.order {
		if k == name {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
	return true
}

// OwnKeys returns own property names in insertion order.
func (o *Object) OwnKeys() []string {
	keys := make([]string, 0, len(o.order))
	for _, k := range o.order {
		if _, ok := o.Props[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// BufferData backs ArrayBuffer values. Detached is checked before every byte
// access; it is the one lifetime invariant enforced beyond reference counting.
type BufferData struct {
	Bytes    []byte
	Detached bool
}

// TypedData is a typed-array view over a buffer.
type TypedData struct {
	Name     string // Uint8Array, Int32Array, Float64Array, ...
	ElemSize int
	Signed   bool
	Float    bool
	Buf      *BufferData
}

// BlobData is an immutable byte payload with a MIME type.
type BlobData struct {
	Bytes []byte
	Type  string
}

// NodeData is the minimal element snapshot the DOM collaborator exposes.
type NodeData struct {
	ID    string
	Tag   string
	Text  string
	Value string
	Attrs map[string]string
}

// Function is a runtime function value: either a parsed handler bound to a
// captured environment snapshot, or a native hook (promise resolver etc.).
type Function struct {
	Name    string
	Handler *ast.ScriptHandler
	Env     *Environment
	Arrow   bool
	Async   bool
	Native  func(args []*Value) (*Value, error)
}

// SearchParams is an ordered key/value list shared by URLSearchParams and
// FormData.
type SearchParams struct {
	Keys []string
	Vals []string
}

func (sp *SearchParams) Get(key string) (string, bool) {
	for i, k := range sp.Keys {
		if k == key {
			return sp.Vals[i], true
		}
	}
	return "", false
}

func (sp *SearchParams) Append(key, val string) {
	sp.Keys = append(sp.Keys, key)
	sp.Vals = append(sp.Vals, val)
}

func (sp *SearchParams) Set(key, val string) {
	for i, k := range sp.Keys {
		if k == key {
			sp.Vals[i] = val
			// drop later duplicates
			for j := len(sp.Keys) - 1; j > i; j-- {
				if sp.Keys[j] == key {
					sp.Keys = append(sp.Keys[:j], sp.Keys[j+1:]...)
					sp.Vals = append(sp.Vals[:j], sp.Vals[j+1:]...)
				}
			}
			return
		}
	}
	sp.Append(key, val)
}

func (sp *SearchParams) Delete(key string) {
	for i := len(sp.Keys) - 1; i >= 0; i-- {
		if sp.Keys[i] == key {
			sp.Keys = append(sp.Keys[:i], sp.Keys[i+1:]...)
			sp.Vals = append(sp.Vals[:i], sp.Vals[i+1:]...)
		}
	}
}

// OrderedMap is the backing store for Map and Set values: insertion-ordered,
// keyed by SameValueZero.
type OrderedMap struct {
	keys []*Value
	vals []*Value
}

func NewOrderedMap() *OrderedMap { return &OrderedMap{} }

func (m *OrderedMap) Len() int { return len(m.keys) }

func (m *OrderedMap) index(key *Value) int {
	for i, k := range m.keys {
		if SameValueZero(k, key) {
			return i
		}
	}
	return -1
}

func (m *OrderedMap) Has(key *Value) bool { return m.index(key) >= 0 }

func (m *OrderedMap) Get(key *Value) *Value {
	if i := m.index(key); i >= 0 {
		return m.vals[i]
	}
	return Undefined
}

func (m *OrderedMap) Set(key, val *Value) {
	if i := m.index(key); i >= 0 {
		m.vals[i] = val
		return
	}
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, val)
}

func (m *OrderedMap) Delete(key *Value) bool {
	i := m.index(key)
	if i < 0 {
		return false
	}
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.vals = append(m.vals[:i], m.vals[i+1:]...)
	return true
}

func (m *OrderedMap) Clear() {
	m.keys = nil
	m.vals = nil
}

// Each visits entries in insertion order.
func (m *OrderedMap) Each(fn func(key, val *Value) error) error {
	for i := range m.keys {
		if err := fn(m.keys[i], m.vals[i]); err != nil {
			return err
		}
	}
	return nil
}
