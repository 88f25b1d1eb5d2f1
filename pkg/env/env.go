// Package env implements the chain-of-frames environment from §4.2: two
// disjoint namespaces (value bindings, macro bindings) per frame, with
// lexical lookup walking parent pointers and definitions always targeting
// the current frame.
package env

import "github.com/koskinen/sexpr/pkg/types"

// Frame is one lexical scope. It satisfies types.Environment so that
// pkg/types can declare Closure/Macro fields of that type without
// importing this package.
type Frame struct {
	values map[string]types.Value
	macros map[string]types.Value
	parent *Frame
}

// NewRoot returns an empty root frame. Callers that need the primitive
// set populate it afterward (pkg/eval.NewRootEnv does this, keeping
// pkg/env free of any dependency on the primitive registry).
func NewRoot() *Frame {
	return &Frame{values: make(map[string]types.Value), macros: make(map[string]types.Value)}
}

// Child returns a new empty frame whose lookups fall back to f.
func (f *Frame) Child() types.Environment {
	return &Frame{values: make(map[string]types.Value), macros: make(map[string]types.Value), parent: f}
}

func (f *Frame) LookupValue(name string) (types.Value, bool) {
	for cur := f; cur != nil; cur = cur.parent {
		if v, ok := cur.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (f *Frame) LookupMacro(name string) (types.Value, bool) {
	for cur := f; cur != nil; cur = cur.parent {
		if m, ok := cur.macros[name]; ok {
			return m, true
		}
	}
	return nil, false
}

func (f *Frame) DefineValue(name string, v types.Value) { f.values[name] = v }

func (f *Frame) DefineMacro(name string, m types.Value) { f.macros[name] = m }

// SetValue assigns to the nearest existing binding, failing with Unbound
// if the name was never defined in any enclosing frame.
func (f *Frame) SetValue(name string, v types.Value) error {
	for cur := f; cur != nil; cur = cur.parent {
		if _, ok := cur.values[name]; ok {
			cur.values[name] = v
			return nil
		}
	}
	return types.NewUnboundError(name)
}

// Root walks to the outermost frame. set* and setm* (§4.5) target it.
func (f *Frame) Root() *Frame {
	cur := f
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// AsFrame recovers the concrete *Frame behind a types.Environment, for
// callers (like the evaluator's set*/setm* handling) that need Root().
// It panics if env was not produced by this package, which would be a
// programming error since every Environment in this runtime originates
// here.
func AsFrame(e types.Environment) *Frame {
	return e.(*Frame)
}
