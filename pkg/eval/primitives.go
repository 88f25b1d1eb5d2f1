package eval

import "github.com/koskinen/sexpr/pkg/types"

func register(root types.Environment, name string, min, max int, fn types.PrimitiveFunc) {
	root.DefineValue(name, &types.Primitive{Name: name, MinArity: min, MaxArity: max, Fn: fn})
}

// installPrimitives seeds the root frame with the minimum primitive set
// §4.5 names: cons/head/tail/cons?/nil?/=/</+/-/*/print/type-of, plus
// list/vector/hash-map helpers, read-file, and the ffi/* bridge. The
// embedded prelude (pkg/interp/prelude.lisp) uses only a few of these
// (list, cons, head, tail, nil?, cons?).
func installPrimitives(root types.Environment) {
	// "nil" is an ordinary symbol, bound here to the shared Nil value as a
	// convenience so library code can write nil as a literal-looking
	// constant; () reads to the same value directly.
	root.DefineValue("nil", types.NilValue)

	installArithmetic(root)
	installPredicates(root)
	installListPrimitives(root)
	installVectorPrimitives(root)
	installHashMapPrimitives(root)
	installIOPrimitives(root)
	installFFIPrimitives(root)
}
