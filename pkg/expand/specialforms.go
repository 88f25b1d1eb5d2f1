package expand

import "github.com/koskinen/sexpr/pkg/types"

// specialFormFunc expands a cons whose head is a known special form,
// recursing only into the sub-positions that form evaluates (§4.4 rule 4).
type specialFormFunc func(ev Evaluator, env types.Environment, form *types.Cons) (types.Value, error)

var specialForms map[string]specialFormFunc

func init() {
	specialForms = map[string]specialFormFunc{
		"if":     expandTailElements,
		"block":  expandTailElements,
		"begin":  expandTailElements,
		"while":  expandTailElements,
		"throw":  expandTailElements,
		"let":    expandLastOnly,
		"set*":   expandLastOnly,
		"setm*":  expandLastOnly,
		"set":    expandLastOnly,
		"set!":   expandLastOnly,
		"fn*":    expandFnStar,
	}
}

// expandTailElements expands every element of rest, leaving head alone.
// Used for forms where every argument position is evaluated: if, block,
// begin, while, throw.
func expandTailElements(ev Evaluator, env types.Environment, form *types.Cons) (types.Value, error) {
	rest, err := expandEach(ev, env, form.Tail)
	if err != nil {
		return nil, err
	}
	return types.NewCons(form.Head, rest), nil
}

// expandLastOnly expands only the final element of rest (the value
// expression), leaving any leading name/target positions untouched. Used
// for let, set*, setm*, set, set!.
func expandLastOnly(ev Evaluator, env types.Environment, form *types.Cons) (types.Value, error) {
	elems, err := types.ToSlice(form.Tail)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return form, nil
	}
	last := len(elems) - 1
	expanded, err := Expand(ev, env, elems[last])
	if err != nil {
		return nil, err
	}
	elems[last] = expanded
	return types.NewCons(form.Head, types.FromSlice(elems)), nil
}

// expandFnStar handles (fn* name (a1 … an [&rest tail]) body): name and
// the formals list are left alone; only body is expanded.
func expandFnStar(ev Evaluator, env types.Environment, form *types.Cons) (types.Value, error) {
	elems, err := types.ToSlice(form.Tail)
	if err != nil {
		return nil, err
	}
	if len(elems) < 3 {
		return form, nil
	}
	name, formals := elems[0], elems[1]
	bodyStart := 2
	bodyElems := make([]types.Value, len(elems)-bodyStart)
	for i := bodyStart; i < len(elems); i++ {
		expanded, err := Expand(ev, env, elems[i])
		if err != nil {
			return nil, err
		}
		bodyElems[i-bodyStart] = expanded
	}
	newElems := append([]types.Value{name, formals}, bodyElems...)
	return types.NewCons(form.Head, types.FromSlice(newElems)), nil
}
