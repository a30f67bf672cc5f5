package runtime

// Environment is a flat identifier-to-value map. There is no scope chain:
// an environment is created per call or scheduled task and discarded when it
// completes; closures retain an owned snapshot taken at function-creation
// time. Container cells inside values stay shared across snapshots.
type Environment struct {
	vars  map[string]*Value
	order []string
}

func NewEnvironment() *Environment {
	return &Environment{vars: map[string]*Value{}}
}

// Get returns the binding for name.
func (e *Environment) Get(name string) (*Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Set binds name, creating it when absent.
func (e *Environment) Set(name string, v *Value) {
	if _, exists := e.vars[name]; !exists {
		e.order = append(e.order, name)
	}
	e.vars[name] = v
}

// Delete removes a binding.
func (e *Environment) Delete(name string) bool {
	if _, exists := e.vars[name]; !exists {
		return false
	}
	delete(e.vars, name)
	for i, k := range e.order {
		if k == name {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return true
}

// Names returns bound names in insertion order.
func (e *Environment) Names() []string {
	out := make([]string, 0, len(e.order))
	for _, k := range e.order {
		if _, ok := e.vars[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// Snapshot copies the binding map. The copy owns its map but shares every
// container cell, which is exactly the closure-capture semantics scripts rely
// on for aliasing.
func (e *Environment) Snapshot() *Environment {
	snap := &Environment{
		vars:  make(map[string]*Value, len(e.vars)),
		order: append([]string(nil), e.order...),
	}
	for k, v := range e.vars {
		snap.vars[k] = v
	}
	return snap
}
