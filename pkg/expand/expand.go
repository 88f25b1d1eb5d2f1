// Package expand implements the macro expander from §4.4: a fixed-point
// rewriter over a single value that substitutes head-symbol macro
// bindings (with unevaluated arguments, per the decision recorded in
// DESIGN.md) and interprets quasiquote/unquote templates. It performs no
// hygiene, per the specification's explicit mandate.
package expand

import "github.com/koskinen/sexpr/pkg/types"

// Evaluator is the slice of pkg/eval's behaviour the expander needs to run
// a macro body. Taking an interface here, rather than importing pkg/eval,
// is what lets expand and eval be mutually recursive (§2) without an
// import cycle: pkg/eval imports pkg/expand and its *Evaluator type
// satisfies this interface.
type Evaluator interface {
	Eval(env types.Environment, form types.Value) (types.Value, error)
}

// Expand rewrites form in one pass over the whole tree: it recurses into
// every sub-form except quoted data and the name/formals positions of
// special forms, and re-expands a macro's output until its head is no
// longer a macro. The evaluator calls Expand again on each sub-form it
// evaluates.
func Expand(ev Evaluator, env types.Environment, form types.Value) (types.Value, error) {
	switch t := form.(type) {
	case types.Quote:
		return types.NewCons(types.Atom("quote"), types.NewCons(t.Value, types.NilValue)), nil
	case *types.Cons:
		return expandCons(ev, env, t)
	default:
		return form, nil
	}
}

func expandCons(ev Evaluator, env types.Environment, form *types.Cons) (types.Value, error) {
	headAtom, isAtom := form.Head.(types.Atom)
	if isAtom {
		switch string(headAtom) {
		case "quote":
			return form, nil
		case "quasi-quote":
			arg, err := soleArg(form)
			if err != nil {
				return nil, err
			}
			return quasiquote(arg)
		}

		if m, ok := env.LookupMacro(string(headAtom)); ok {
			macro, ok := m.(*types.Macro)
			if !ok {
				return nil, types.NewTypeMismatchError("%s is bound as a macro but is not callable", headAtom)
			}
			expanded, err := invokeMacro(ev, macro, form.Tail)
			if err != nil {
				return nil, err
			}
			return Expand(ev, env, expanded)
		}

		if sf, ok := specialForms[string(headAtom)]; ok {
			return sf(ev, env, form)
		}
	}

	head, err := Expand(ev, env, form.Head)
	if err != nil {
		return nil, err
	}
	rest, err := expandEach(ev, env, form.Tail)
	if err != nil {
		return nil, err
	}
	return types.NewCons(head, rest), nil
}

// expandEach expands every element of a proper list, preserving its
// (possibly improper) shape.
func expandEach(ev Evaluator, env types.Environment, list types.Value) (types.Value, error) {
	cons, ok := list.(*types.Cons)
	if !ok {
		return list, nil
	}
	head, err := Expand(ev, env, cons.Head)
	if err != nil {
		return nil, err
	}
	tail, err := expandEach(ev, env, cons.Tail)
	if err != nil {
		return nil, err
	}
	return types.NewCons(head, tail), nil
}

func soleArg(form *types.Cons) (types.Value, error) {
	rest, ok := form.Tail.(*types.Cons)
	if !ok {
		return nil, types.NewArityError("%s expects exactly one argument", form.Head.String())
	}
	return rest.Head, nil
}

func invokeMacro(ev Evaluator, macro *types.Macro, args types.Value) (types.Value, error) {
	argValues, err := types.ToSlice(args)
	if err != nil {
		return nil, err
	}
	child, err := bindFormals(macro.Env, macro.Formals, macro.Rest, argValues)
	if err != nil {
		return nil, err
	}
	return ev.Eval(child, macro.Body)
}

// bindFormals binds formals positionally to args in a new child frame,
// splicing any trailing &rest arguments into a list — the same binding
// rule §4.5 specifies for closure application, reused here because macro
// invocation binds its (unevaluated) arguments the same way.
func bindFormals(env types.Environment, formals []string, rest string, args []types.Value) (types.Environment, error) {
	if rest == "" && len(args) != len(formals) {
		return nil, types.NewArityError("expected %d argument(s), got %d", len(formals), len(args))
	}
	if rest != "" && len(args) < len(formals) {
		return nil, types.NewArityError("expected at least %d argument(s), got %d", len(formals), len(args))
	}
	child := env.Child()
	for i, name := range formals {
		child.DefineValue(name, args[i])
	}
	if rest != "" {
		child.DefineValue(rest, types.FromSlice(args[len(formals):]))
	}
	return child, nil
}
