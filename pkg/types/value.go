// Package types defines the tagged value representation shared by every
// layer of the runtime: the reader produces values, the expander rewrites
// them, the evaluator consumes and produces them, and the environment
// stores them.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is satisfied by every runtime object kind. The interface itself
// carries no behaviour beyond printing; dispatch on the concrete kind is
// done with type switches at call sites, matching the tagged-sum model.
type Value interface {
	String() string
}

// Nil is the empty list, logical false, and the sole value of its kind.
// It carries no state so any Nil{} compares equal to any other.
type Nil struct{}

func (Nil) String() string { return "nil" }

// NilValue is the shared empty-list sentinel.
var NilValue Value = Nil{}

// Num is an unsigned 64-bit integer. Numeric literals are non-negative;
// negation is a runtime operation that may fail rather than wrap.
type Num uint64

func (n Num) String() string { return strconv.FormatUint(uint64(n), 10) }

// Atom is an interned symbol name. An Atom beginning with ":" is a
// self-evaluating keyword.
type Atom string

func (a Atom) String() string { return string(a) }

// IsKeyword reports whether the atom is a self-evaluating keyword.
func (a Atom) IsKeyword() bool { return strings.HasPrefix(string(a), ":") }

// Str is an immutable UTF-8 string value.
type Str string

func (s Str) String() string { return strconv.Quote(string(s)) }

// Cons is the only aggregate value: a head/tail pair. A proper list is
// Nil or a *Cons whose Tail is itself a proper list.
type Cons struct {
	Head Value
	Tail Value
}

func NewCons(head, tail Value) *Cons { return &Cons{Head: head, Tail: tail} }

func (c *Cons) String() string {
	if quoted, ok := asQuoteShorthand(c); ok {
		return "'" + quoted.String()
	}
	var b strings.Builder
	b.WriteByte('(')
	cur := Value(c)
	first := true
	for {
		cell, ok := cur.(*Cons)
		if !ok {
			break
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(cell.Head.String())
		cur = cell.Tail
	}
	if _, isNil := cur.(Nil); !isNil {
		b.WriteString(" . ")
		b.WriteString(cur.String())
	}
	b.WriteByte(')')
	return b.String()
}

// asQuoteShorthand reports whether c is exactly (quote v), so the printer
// can render it as 'v.
func asQuoteShorthand(c *Cons) (Value, bool) {
	head, ok := c.Head.(Atom)
	if !ok || head != "quote" {
		return nil, false
	}
	rest, ok := c.Tail.(*Cons)
	if !ok {
		return nil, false
	}
	if _, isNil := rest.Tail.(Nil); !isNil {
		return nil, false
	}
	return rest.Head, true
}

// Quote wraps a reader-produced 'x shorthand. It only ever appears in
// freshly-read forms; expand rewrites it to (quote v) on first sight.
type Quote struct {
	Value Value
}

func (q Quote) String() string { return "'" + q.Value.String() }

// Closure is a user-defined function: formals bound against a captured
// environment when applied.
type Closure struct {
	Name    string // "" if anonymous; used only for self-reference in the body.
	Formals []string
	Rest    string // "" if the closure takes no &rest tail.
	Body    Value
	Env     Environment
}

func (c *Closure) String() string {
	name := c.Name
	if name == "" {
		name = "anonymous"
	}
	return fmt.Sprintf("#<closure:%s>", name)
}

// Macro is a closure stored exclusively in the macro namespace. The
// evaluator never applies a Macro directly; only the expander invokes it,
// passing unevaluated argument forms.
type Macro struct {
	Name    string
	Formals []string
	Rest    string
	Body    Value
	Env     Environment
}

func (m *Macro) String() string {
	name := m.Name
	if name == "" {
		name = "anonymous"
	}
	return fmt.Sprintf("#<macro:%s>", name)
}

// PrimitiveFunc is the Go-side implementation of a built-in. args are
// already evaluated. apply lets a primitive call back into closures
// (map/reduce/apply-style higher-order built-ins) without pkg/eval having
// to be imported here.
type PrimitiveFunc func(apply Applier, args []Value) (Value, error)

// Applier lets a primitive apply a Closure value to evaluated arguments
// without creating an import cycle between types and eval.
type Applier interface {
	Apply(fn Value, args []Value) (Value, error)
}

// Primitive is a host-side callable with a declared arity.
// MinArity/MaxArity of -1 means "no upper bound" (variadic).
type Primitive struct {
	Name     string
	MinArity int
	MaxArity int // -1 for variadic
	Fn       PrimitiveFunc
}

func (p *Primitive) String() string { return fmt.Sprintf("#<primitive:%s>", p.Name) }

// ForeignKind distinguishes the two Foreign handle shapes the FFI bridge
// produces.
type ForeignKind int

const (
	ForeignLibrary ForeignKind = iota
	ForeignFunction
)

// Foreign is an opaque handle onto a native library or a resolved native
// function. Payload is type-asserted back to a concrete type by pkg/ffi
// only; no other package inspects it.
type Foreign struct {
	Kind    ForeignKind
	Label   string // human-readable tag, e.g. the path or symbol name.
	Payload any
}

func (f *Foreign) String() string { return fmt.Sprintf("#<foreign:%s>", f.Label) }

// Environment is implemented by pkg/env. It is declared here, rather than
// in pkg/env, so that Closure and Macro (which embed an Environment) do not
// create an import cycle with the package that implements frame chains.
type Environment interface {
	LookupValue(name string) (Value, bool)
	LookupMacro(name string) (Value, bool)
	DefineValue(name string, v Value)
	DefineMacro(name string, m Value)
	SetValue(name string, v Value) error
	Child() Environment
}
