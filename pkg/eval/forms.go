package eval

import (
	"github.com/koskinen/sexpr/pkg/env"
	"github.com/koskinen/sexpr/pkg/types"
)

// evalIf returns the branch Eval's trampoline should continue with,
// rather than evaluating it itself, so (if c t e) is a true tail call.
func (e *Evaluator) evalIf(curEnv types.Environment, rest types.Value) (types.Value, error) {
	elems, err := types.ToSlice(rest)
	if err != nil {
		return nil, err
	}
	if len(elems) < 2 || len(elems) > 3 {
		return nil, types.NewArityError("if expects (if cond then [else])")
	}
	cond, err := e.Eval(curEnv, elems[0])
	if err != nil {
		return nil, err
	}
	if types.IsTruthy(cond) {
		return elems[1], nil
	}
	if len(elems) == 3 {
		return elems[2], nil
	}
	return types.NilValue, nil
}

// evalBlock evaluates every form but the last, then reports the last form
// as the trampoline's next step (again, a tail call). done=true with a
// concrete result covers the empty-block case, which yields Nil directly.
func (e *Evaluator) evalBlock(curEnv types.Environment, rest types.Value) (next types.Value, done bool, result types.Value, err error) {
	elems, err := types.ToSlice(rest)
	if err != nil {
		return nil, true, nil, err
	}
	if len(elems) == 0 {
		return nil, true, types.NilValue, nil
	}
	for _, form := range elems[:len(elems)-1] {
		if _, err := e.Eval(curEnv, form); err != nil {
			return nil, true, nil, err
		}
	}
	return elems[len(elems)-1], false, nil, nil
}

func (e *Evaluator) evalLet(curEnv types.Environment, rest types.Value) (types.Value, error) {
	name, expr, err := nameAndExpr(rest, "let")
	if err != nil {
		return nil, err
	}
	val, err := e.Eval(curEnv, expr)
	if err != nil {
		return nil, err
	}
	curEnv.DefineValue(name, val)
	return types.NilValue, nil
}

func (e *Evaluator) evalSetStar(curEnv types.Environment, rest types.Value) (types.Value, error) {
	name, expr, err := nameAndExpr(rest, "set*")
	if err != nil {
		return nil, err
	}
	val, err := e.Eval(curEnv, expr)
	if err != nil {
		return nil, err
	}
	env.AsFrame(curEnv).Root().DefineValue(name, val)
	return types.NilValue, nil
}

func (e *Evaluator) evalSetmStar(curEnv types.Environment, rest types.Value) (types.Value, error) {
	name, expr, err := nameAndExpr(rest, "setm*")
	if err != nil {
		return nil, err
	}
	val, err := e.Eval(curEnv, expr)
	if err != nil {
		return nil, err
	}
	closure, ok := val.(*types.Closure)
	if !ok {
		return nil, types.NewTypeMismatchError("setm* expects a closure, got %s", types.TypeName(val))
	}
	macro := &types.Macro{Name: closure.Name, Formals: closure.Formals, Rest: closure.Rest, Body: closure.Body, Env: closure.Env}
	env.AsFrame(curEnv).Root().DefineMacro(name, macro)
	return types.NilValue, nil
}

func (e *Evaluator) evalFnStar(curEnv types.Environment, rest types.Value) (types.Value, error) {
	elems, err := types.ToSlice(rest)
	if err != nil {
		return nil, err
	}
	if len(elems) < 3 {
		return nil, types.NewArityError("fn* expects (fn* name (formals...) body)")
	}
	name, _ := types.AsAtom(elems[0])
	formals, restName, err := parseFormals(elems[1])
	if err != nil {
		return nil, err
	}
	var body types.Value
	if len(elems) == 3 {
		body = elems[2]
	} else {
		body = types.NewCons(types.Atom("block"), types.FromSlice(elems[2:]))
	}
	return &types.Closure{Name: name, Formals: formals, Rest: restName, Body: body, Env: curEnv}, nil
}

func (e *Evaluator) evalSetBang(curEnv types.Environment, rest types.Value) (types.Value, error) {
	elems, err := types.ToSlice(rest)
	if err != nil {
		return nil, err
	}
	if len(elems) != 2 {
		return nil, types.NewArityError("set!/set expects (set! name expr)")
	}
	name, err := targetName(elems[0])
	if err != nil {
		return nil, err
	}
	val, err := e.Eval(curEnv, elems[1])
	if err != nil {
		return nil, err
	}
	if err := curEnv.SetValue(name, val); err != nil {
		return nil, err
	}
	return val, nil
}

func (e *Evaluator) evalWhile(curEnv types.Environment, rest types.Value) (types.Value, error) {
	elems, err := types.ToSlice(rest)
	if err != nil {
		return nil, err
	}
	if len(elems) < 1 {
		return nil, types.NewArityError("while expects (while cond body...)")
	}
	cond, body := elems[0], elems[1:]
	for {
		c, err := e.Eval(curEnv, cond)
		if err != nil {
			return nil, err
		}
		if !types.IsTruthy(c) {
			return types.NilValue, nil
		}
		for _, form := range body {
			if _, err := e.Eval(curEnv, form); err != nil {
				return nil, err
			}
		}
	}
}

func (e *Evaluator) evalThrow(curEnv types.Environment, rest types.Value) (types.Value, error) {
	v, err := firstArg(rest)
	if err != nil {
		return nil, err
	}
	val, err := e.Eval(curEnv, v)
	if err != nil {
		return nil, err
	}
	return nil, types.NewUserError(val)
}

func nameAndExpr(rest types.Value, formName string) (string, types.Value, error) {
	elems, err := types.ToSlice(rest)
	if err != nil {
		return "", nil, err
	}
	if len(elems) != 2 {
		return "", nil, types.NewArityError("%s expects (%s name expr)", formName, formName)
	}
	name, ok := types.AsAtom(elems[0])
	if !ok {
		return "", nil, types.NewTypeMismatchError("%s expects a symbol name, got %s", formName, types.TypeName(elems[0]))
	}
	return name, elems[1], nil
}

// targetName unwraps either a bare symbol or the (id name) alternate
// surface §4.5 allows for set/set!'s target position.
func targetName(v types.Value) (string, error) {
	if name, ok := types.AsAtom(v); ok {
		return name, nil
	}
	if cons, ok := v.(*types.Cons); ok {
		if head, ok := types.AsAtom(cons.Head); ok && head == "id" {
			if inner, ok := cons.Tail.(*types.Cons); ok {
				if name, ok := types.AsAtom(inner.Head); ok {
					return name, nil
				}
			}
		}
	}
	return "", types.NewTypeMismatchError("expected a symbol or (id name) target, got %s", v.String())
}

// parseFormals splits a formals list into positional names and an
// optional &rest name.
func parseFormals(v types.Value) ([]string, string, error) {
	elems, err := types.ToSlice(v)
	if err != nil {
		return nil, "", err
	}
	var formals []string
	rest := ""
	for i := 0; i < len(elems); i++ {
		name, ok := types.AsAtom(elems[i])
		if !ok {
			return nil, "", types.NewTypeMismatchError("formal parameter must be a symbol, got %s", types.TypeName(elems[i]))
		}
		if name == "&rest" {
			if i+1 >= len(elems) {
				return nil, "", types.NewTypeMismatchError("&rest must be followed by a name")
			}
			restName, ok := types.AsAtom(elems[i+1])
			if !ok {
				return nil, "", types.NewTypeMismatchError("&rest name must be a symbol")
			}
			rest = restName
			break
		}
		formals = append(formals, name)
	}
	return formals, rest, nil
}
