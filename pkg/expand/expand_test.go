package expand

import (
	"testing"

	"github.com/koskinen/sexpr/pkg/env"
	"github.com/koskinen/sexpr/pkg/reader"
	"github.com/koskinen/sexpr/pkg/types"
)

// fakeEval is the minimal Evaluator a macro body needs: enough to run the
// quasiquote-building cons/quote shapes macros typically expand to,
// without depending on pkg/eval (which imports this package).
type fakeEval struct{}

func (fakeEval) Eval(e types.Environment, form types.Value) (types.Value, error) {
	switch v := form.(type) {
	case types.Atom:
		if val, ok := e.LookupValue(string(v)); ok {
			return val, nil
		}
		return nil, types.NewUnboundError(string(v))
	case *types.Cons:
		if head, ok := v.Head.(types.Atom); ok && head == "quote" {
			rest := v.Tail.(*types.Cons)
			return rest.Head, nil
		}
		if head, ok := v.Head.(types.Atom); ok && head == "cons" {
			rest, _ := types.ToSlice(v.Tail)
			a, err := fakeEval{}.Eval(e, rest[0])
			if err != nil {
				return nil, err
			}
			b, err := fakeEval{}.Eval(e, rest[1])
			if err != nil {
				return nil, err
			}
			return types.NewCons(a, b), nil
		}
		return form, nil
	default:
		return form, nil
	}
}

func readOne(t *testing.T, src string) types.Value {
	t.Helper()
	forms, err := reader.ReadForms(src, "<test>")
	if err != nil {
		t.Fatalf("ReadForms(%q): %v", src, err)
	}
	if len(forms) != 1 {
		t.Fatalf("expected exactly one form from %q", src)
	}
	return forms[0]
}

func TestExpandIsIdempotentOnMacroFreeForms(t *testing.T) {
	root := env.NewRoot()
	form := readOne(t, "(+ 1 (* 2 3))")
	once, err := Expand(fakeEval{}, root, form)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	twice, err := Expand(fakeEval{}, root, once)
	if err != nil {
		t.Fatalf("Expand (second pass): %v", err)
	}
	if !types.Equal(once, twice) {
		t.Errorf("expanding a macro-free form twice should be a no-op: %v != %v", once, twice)
	}
}

func TestQuoteRewritesToQuoteForm(t *testing.T) {
	root := env.NewRoot()
	got, err := Expand(fakeEval{}, root, types.Quote{Value: types.Atom("x")})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got.String() != "'x" {
		t.Errorf("got %v", got)
	}
}

func TestQuasiquoteBuildsConsChain(t *testing.T) {
	// (a ,x b) should expand to (cons 'a (cons x (cons 'b (quote nil))))
	inner := readOne(t, "(a ,x b)")
	got, err := quasiquote(inner)
	if err != nil {
		t.Fatalf("quasiquote: %v", err)
	}
	want := "(cons 'a (cons x (cons 'b 'nil)))"
	if got.String() != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestQuasiquoteEvaluatesToSpecExample(t *testing.T) {
	root := env.NewRoot()
	root.DefineValue("x", types.Num(5))
	form := readOne(t, "`(a ,x b)")
	expanded, err := Expand(fakeEval{}, root, form)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	result, err := fakeEval{}.Eval(root, expanded)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if result.String() != "(a 5 b)" {
		t.Errorf("got %v, want (a 5 b)", result)
	}
}

func TestSpecialFormIfExpandsOnlyTailPositions(t *testing.T) {
	root := env.NewRoot()
	root.DefineMacro("m", &types.Macro{Formals: nil, Body: types.Num(99), Env: root})
	form := readOne(t, "(if (m) 1 2)")
	got, err := Expand(fakeEval{}, root, form)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	// (m) should have been expanded away to the macro's body value.
	if got.String() != "(if 99 1 2)" {
		t.Errorf("got %v", got)
	}
}

func TestSpecialFormLetExpandsOnlyFinalExpr(t *testing.T) {
	root := env.NewRoot()
	root.DefineMacro("m", &types.Macro{Body: types.Num(7), Env: root})
	form := readOne(t, "(let name (m))")
	got, err := Expand(fakeEval{}, root, form)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got.String() != "(let name 7)" {
		t.Errorf("got %v", got)
	}
}

func TestSpecialFormFnStarLeavesFormalsAlone(t *testing.T) {
	root := env.NewRoot()
	root.DefineMacro("m", &types.Macro{Body: types.Num(1), Env: root})
	form := readOne(t, "(fn* f (m) (m))")
	got, err := Expand(fakeEval{}, root, form)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	// the formals list "(m)" must be left untouched even though m is a macro
	// name; only the body position re-expands.
	if got.String() != "(fn* f (m) 1)" {
		t.Errorf("got %v", got)
	}
}

func TestMacroInvocationReceivesUnevaluatedArgs(t *testing.T) {
	root := env.NewRoot()
	// (defmacro-like) macro that just returns its sole argument form
	// verbatim, proving args arrive unevaluated.
	root.DefineMacro("id", &types.Macro{Formals: []string{"x"}, Body: types.Atom("x"), Env: root})
	form := readOne(t, "(id (+ 1 2))")
	got, err := Expand(fakeEval{}, root, form)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got.String() != "(+ 1 2)" {
		t.Errorf("macro should receive the unevaluated form, got %v", got)
	}
}
