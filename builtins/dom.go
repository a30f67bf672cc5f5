package builtins

import (
	"strings"

	"github.com/example/minjs/runtime"
)

// Listener is an event handler registration on a document node.
type Listener struct {
	NodeID  string
	Event   string
	Handler *runtime.Value
}

// Document is the minimal element tree the script surface exposes. The host
// seeds it with nodes; getElementById hands out the same cell on every call
// so scripted mutations alias.
type Document struct {
	nodes     map[string]*runtime.Value
	order     []string
	Listeners []Listener
}

func NewDocument() *Document {
	return &Document{nodes: map[string]*runtime.Value{}}
}

// AddNode seeds an element. Later lookups return this exact cell.
func (d *Document) AddNode(id, tag, text string) *runtime.Value {
	v := runtime.NewCell(runtime.ObjNode)
	v.Obj.Node = &runtime.NodeData{ID: id, Tag: strings.ToUpper(tag), Text: text, Attrs: map[string]string{}}
	d.nodes[id] = v
	d.order = append(d.order, id)
	return v
}

// Method dispatches document.* calls.
func (d *Document) Method(name string, args []*runtime.Value) (*runtime.Value, error) {
	switch name {
	case "getElementById":
		if v, ok := d.nodes[argString(args, 0)]; ok {
			return v, nil
		}
		return runtime.Null, nil
	case "querySelector":
		sel := argString(args, 0)
		if strings.HasPrefix(sel, "#") {
			if v, ok := d.nodes[sel[1:]]; ok {
				return v, nil
			}
			return runtime.Null, nil
		}
		for _, id := range d.order {
			if strings.EqualFold(d.nodes[id].Obj.Node.Tag, sel) {
				return d.nodes[id], nil
			}
		}
		return runtime.Null, nil
	case "querySelectorAll":
		sel := argString(args, 0)
		var out []*runtime.Value
		for _, id := range d.order {
			n := d.nodes[id]
			if strings.HasPrefix(sel, "#") {
				if n.Obj.Node.ID == sel[1:] {
					out = append(out, n)
				}
			} else if strings.EqualFold(n.Obj.Node.Tag, sel) {
				out = append(out, n)
			}
		}
		return runtime.NewArrayValue(out), nil
	case "createElement":
		v := runtime.NewCell(runtime.ObjNode)
		v.Obj.Node = &runtime.NodeData{Tag: strings.ToUpper(argString(args, 0)), Attrs: map[string]string{}}
		return v, nil
	}
	return nil, runtime.Errf("document.%s is not a function", name)
}

// NodeMethod dispatches method calls on an element receiver.
func (d *Document) NodeMethod(recv *runtime.Object, name string, args []*runtime.Value) (*runtime.Value, error) {
	n := recv.Node
	switch name {
	case "getAttribute":
		if v, ok := n.Attrs[argString(args, 0)]; ok {
			return runtime.NewString(v), nil
		}
		return runtime.Null, nil
	case "setAttribute":
		n.Attrs[argString(args, 0)] = argString(args, 1)
		return runtime.Undefined, nil
	case "removeAttribute":
		delete(n.Attrs, argString(args, 0))
		return runtime.Undefined, nil
	case "hasAttribute":
		_, ok := n.Attrs[argString(args, 0)]
		return runtime.NewBool(ok), nil
	case "addEventListener":
		handler := argAt(args, 1)
		if !isCallable(handler) {
			return nil, runtime.Errf("addEventListener expects a function")
		}
		d.Listeners = append(d.Listeners, Listener{
			NodeID:  n.ID,
			Event:   argString(args, 0),
			Handler: handler,
		})
		return runtime.Undefined, nil
	case "removeEventListener":
		event := argString(args, 0)
		handler := argAt(args, 1)
		for i, l := range d.Listeners {
			if l.NodeID == n.ID && l.Event == event && runtime.StrictEquals(l.Handler, handler) {
				d.Listeners = append(d.Listeners[:i], d.Listeners[i+1:]...)
				break
			}
		}
		return runtime.Undefined, nil
	}
	return nil, runtime.Errf("%q is not a function on elements", name)
}

// NodeProperty resolves the built-in read accessors of an element. Script
// writes go through Props and shadow these.
func NodeProperty(recv *runtime.Object, name string) (*runtime.Value, bool) {
	n := recv.Node
	switch name {
	case "id":
		return runtime.NewString(n.ID), true
	case "tagName":
		return runtime.NewString(n.Tag), true
	case "textContent", "innerText":
		return runtime.NewString(n.Text), true
	case "value":
		return runtime.NewString(n.Value), true
	}
	return nil, false
}

// SetNodeProperty routes writes to the built-in element fields, reporting
// false for names that should fall through to ordinary properties.
func SetNodeProperty(recv *runtime.Object, name string, v *runtime.Value) bool {
	n := recv.Node
	switch name {
	case "textContent", "innerText":
		n.Text = runtime.ToString(v)
		return true
	case "value":
		n.Value = runtime.ToString(v)
		return true
	case "id":
		n.ID = runtime.ToString(v)
		return true
	}
	return false
}

// HandlersFor returns listeners registered for an event on a node.
func (d *Document) HandlersFor(nodeID, event string) []*runtime.Value {
	var out []*runtime.Value
	for _, l := range d.Listeners {
		if l.NodeID == nodeID && l.Event == event {
			out = append(out, l.Handler)
		}
	}
	return out
}

// NewEventValue builds the event object passed to dispatched handlers.
func NewEventValue(eventType string, target *runtime.Value) *runtime.Value {
	v := runtime.NewCell(runtime.ObjPlain)
	v.Obj.SetOwn("type", runtime.NewString(eventType))
	if target != nil {
		v.Obj.SetOwn("target", target)
	}
	return v
}
