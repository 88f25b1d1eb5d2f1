package eval

import "github.com/koskinen/sexpr/pkg/types"

func boolValue(b bool) types.Value {
	if b {
		return types.Atom(":true")
	}
	return types.NilValue
}

func installPredicates(root types.Environment) {
	register(root, "cons?", 1, 1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		return boolValue(types.IsCons(args[0])), nil
	})
	register(root, "nil?", 1, 1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		return boolValue(types.IsNil(args[0])), nil
	})
	register(root, "type-of", 1, 1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		return types.Atom(":" + types.TypeName(args[0])), nil
	})
	register(root, "cons", 2, 2, func(_ types.Applier, args []types.Value) (types.Value, error) {
		return types.NewCons(args[0], args[1]), nil
	})
	register(root, "head", 1, 1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		return types.Head(args[0])
	})
	register(root, "tail", 1, 1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		return types.Tail(args[0])
	})
}
