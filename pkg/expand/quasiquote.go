package expand

import "github.com/koskinen/sexpr/pkg/types"

// quasiquote walks a quasiquoted template per §4.4: a cons whose own head
// is the symbol unquote yields its sole argument unevaluated-in-place;
// any other cons yields (cons A B) over the quasiquoted head and tail;
// everything else yields (quote t).
func quasiquote(t types.Value) (types.Value, error) {
	cons, ok := t.(*types.Cons)
	if !ok {
		return quoteForm(t), nil
	}
	if headAtom, ok := cons.Head.(types.Atom); ok && headAtom == "unquote" {
		return soleArg(cons)
	}
	a, err := quasiquote(cons.Head)
	if err != nil {
		return nil, err
	}
	b, err := quasiquote(cons.Tail)
	if err != nil {
		return nil, err
	}
	return types.NewCons(types.Atom("cons"), types.NewCons(a, types.NewCons(b, types.NilValue))), nil
}

func quoteForm(v types.Value) types.Value {
	return types.NewCons(types.Atom("quote"), types.NewCons(v, types.NilValue))
}
