// Package eval implements the tree-walking evaluator from §4.5: it
// dispatches on the structural shape of a value, implements the special
// forms, applies closures and primitives, and drives the macro expander
// at every combination it evaluates.
package eval

import (
	"strconv"

	"github.com/koskinen/sexpr/pkg/env"
	"github.com/koskinen/sexpr/pkg/expand"
	"github.com/koskinen/sexpr/pkg/types"
)

// Evaluator holds no state of its own beyond what the environment chain
// carries; it exists as a receiver so primitives and the expander can call
// back into evaluation (types.Applier, expand.Evaluator) without a free
// function needing a global.
type Evaluator struct{}

// New returns a ready evaluator. It is stateless and safe to reuse across
// independent root environments (§5: "multiple interpreter instances may
// coexist without sharing state").
func New() *Evaluator { return &Evaluator{} }

// NewRootEnv returns a root frame seeded with every primitive this
// package registers, satisfying §4.2's new_root().
func NewRootEnv() types.Environment {
	root := env.NewRoot()
	installPrimitives(root)
	return root
}

// Eval is eval(env, form) -> Value from §4.5. It loops rather than
// recurses on tail positions (if/block/begin branches and closure calls)
// so that deep library-level recursion (e.g. list/map) does not grow the
// Go call stack per the guidance in §4.5's "Tail calls" paragraph.
func (e *Evaluator) Eval(curEnv types.Environment, form types.Value) (types.Value, error) {
	for {
		switch v := form.(type) {
		case types.Nil, types.Num, types.Str, *types.Closure, *types.Primitive, *types.Foreign:
			return form, nil
		case types.Quote:
			// A bare 'x read at top level: the same as (quote x).
			return v.Value, nil
		case types.Atom:
			if v.IsKeyword() {
				return v, nil
			}
			val, ok := curEnv.LookupValue(string(v))
			if !ok {
				return nil, types.NewUnboundError(string(v))
			}
			return val, nil
		case *types.Cons:
			expanded, err := expand.Expand(e, curEnv, v)
			if err != nil {
				return nil, err
			}
			cons, ok := expanded.(*types.Cons)
			if !ok {
				form = expanded
				continue
			}

			if headAtom, isAtom := cons.Head.(types.Atom); isAtom {
				switch string(headAtom) {
				case "quote":
					return firstArg(cons.Tail)
				case "if":
					nextForm, err := e.evalIf(curEnv, cons.Tail)
					if err != nil {
						return nil, err
					}
					form = nextForm
					continue
				case "block", "begin":
					nextForm, done, result, err := e.evalBlock(curEnv, cons.Tail)
					if err != nil {
						return nil, err
					}
					if done {
						return result, nil
					}
					form = nextForm
					continue
				case "let":
					return e.evalLet(curEnv, cons.Tail)
				case "set*":
					return e.evalSetStar(curEnv, cons.Tail)
				case "setm*":
					return e.evalSetmStar(curEnv, cons.Tail)
				case "fn*":
					return e.evalFnStar(curEnv, cons.Tail)
				case "set", "set!":
					return e.evalSetBang(curEnv, cons.Tail)
				case "while":
					return e.evalWhile(curEnv, cons.Tail)
				case "throw":
					return e.evalThrow(curEnv, cons.Tail)
				}
			}

			fn, err := e.Eval(curEnv, cons.Head)
			if err != nil {
				return nil, err
			}
			argForms, err := types.ToSlice(cons.Tail)
			if err != nil {
				return nil, err
			}
			args := make([]types.Value, len(argForms))
			for i, a := range argForms {
				args[i], err = e.Eval(curEnv, a)
				if err != nil {
					return nil, err
				}
			}

			switch callee := fn.(type) {
			case *types.Closure:
				childEnv, err := bindClosureCall(callee, args)
				if err != nil {
					return nil, err
				}
				curEnv = childEnv
				form = callee.Body
				continue
			case *types.Primitive:
				if err := checkArity(callee, len(args)); err != nil {
					return nil, err
				}
				return callee.Fn(e, args)
			default:
				return nil, types.NewTypeMismatchError("%s is not callable", types.TypeName(fn))
			}
		default:
			return nil, types.NewTypeMismatchError("unrecognised value kind")
		}
	}
}

// Apply lets a primitive (map, filter, apply, …) invoke a Closure or
// Primitive value with already-evaluated arguments.
func (e *Evaluator) Apply(fn types.Value, args []types.Value) (types.Value, error) {
	switch callee := fn.(type) {
	case *types.Closure:
		childEnv, err := bindClosureCall(callee, args)
		if err != nil {
			return nil, err
		}
		return e.Eval(childEnv, callee.Body)
	case *types.Primitive:
		if err := checkArity(callee, len(args)); err != nil {
			return nil, err
		}
		return callee.Fn(e, args)
	default:
		return nil, types.NewTypeMismatchError("%s is not callable", types.TypeName(fn))
	}
}

// bindClosureCall binds formals the way bindFormals does, and additionally
// makes the closure's own name resolve to itself in the new frame — the
// self-reference §4.5 promises fn* a name for, independent of whether the
// closure has also been stored in some outer binding via set*.
func bindClosureCall(callee *types.Closure, args []types.Value) (types.Environment, error) {
	child, err := bindFormals(callee.Env, callee.Formals, callee.Rest, args)
	if err != nil {
		return nil, err
	}
	if callee.Name != "" {
		child.DefineValue(callee.Name, callee)
	}
	return child, nil
}

func firstArg(rest types.Value) (types.Value, error) {
	c, ok := rest.(*types.Cons)
	if !ok {
		return nil, types.NewArityError("quote expects exactly one argument")
	}
	return c.Head, nil
}

func bindFormals(parent types.Environment, formals []string, rest string, args []types.Value) (types.Environment, error) {
	if rest == "" && len(args) != len(formals) {
		return nil, types.NewArityError("expected %d argument(s), got %d", len(formals), len(args))
	}
	if rest != "" && len(args) < len(formals) {
		return nil, types.NewArityError("expected at least %d argument(s), got %d", len(formals), len(args))
	}
	child := parent.Child()
	for i, name := range formals {
		child.DefineValue(name, args[i])
	}
	if rest != "" {
		child.DefineValue(rest, types.FromSlice(args[len(formals):]))
	}
	return child, nil
}

func checkArity(p *types.Primitive, n int) error {
	if n < p.MinArity || (p.MaxArity >= 0 && n > p.MaxArity) {
		return types.NewArityError("%s expects %s, got %d", p.Name, arityDescription(p), n)
	}
	return nil
}

func arityDescription(p *types.Primitive) string {
	if p.MaxArity < 0 {
		return strconv.Itoa(p.MinArity) + "+ argument(s)"
	}
	if p.MinArity == p.MaxArity {
		return strconv.Itoa(p.MinArity) + " argument(s)"
	}
	return strconv.Itoa(p.MinArity) + "-" + strconv.Itoa(p.MaxArity) + " argument(s)"
}
