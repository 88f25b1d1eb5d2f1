package eval

import (
	"github.com/koskinen/sexpr/pkg/ffi"
	"github.com/koskinen/sexpr/pkg/types"
)

func installFFIPrimitives(root types.Environment) {
	register(root, "ffi/open", 1, 1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		path, ok := types.AsStr(args[0])
		if !ok {
			return nil, types.NewTypeMismatchError("ffi/open expects a string path, got %s", types.TypeName(args[0]))
		}
		return ffi.Open(path)
	})

	register(root, "ffi/get", 3, 3, func(_ types.Applier, args []types.Value) (types.Value, error) {
		lib, ok := args[0].(*types.Foreign)
		if !ok {
			return nil, types.NewTypeMismatchError("ffi/get expects a library handle, got %s", types.TypeName(args[0]))
		}
		name, ok := types.AsStr(args[1])
		if !ok {
			if a, ok2 := types.AsAtom(args[1]); ok2 {
				name = a
			} else {
				return nil, types.NewTypeMismatchError("ffi/get expects a symbol name, got %s", types.TypeName(args[1]))
			}
		}
		typeForms, err := types.ToSlice(args[2])
		if err != nil {
			return nil, err
		}
		signature := make([]string, len(typeForms))
		for i, t := range typeForms {
			a, ok := types.AsAtom(t)
			if !ok {
				return nil, types.NewTypeMismatchError("ffi/get: signature entries must be symbols")
			}
			signature[i] = a
		}
		return ffi.Get(lib, name, signature)
	})

	register(root, "ffi/apply", 2, 2, func(_ types.Applier, args []types.Value) (types.Value, error) {
		fn, ok := args[0].(*types.Foreign)
		if !ok {
			return nil, types.NewTypeMismatchError("ffi/apply expects a function handle, got %s", types.TypeName(args[0]))
		}
		callArgs, err := types.ToSlice(args[1])
		if err != nil {
			return nil, err
		}
		return ffi.Apply(fn, callArgs)
	})
}
