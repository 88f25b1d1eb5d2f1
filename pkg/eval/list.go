package eval

import "github.com/koskinen/sexpr/pkg/types"

func installListPrimitives(root types.Environment) {
	register(root, "list", 0, -1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		return types.FromSlice(args), nil
	})

	register(root, "length", 1, 1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		n, err := types.ListLen(args[0])
		if err != nil {
			return nil, err
		}
		return types.Num(uint64(n)), nil
	})

	register(root, "reverse", 1, 1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		elems, err := types.ToSlice(args[0])
		if err != nil {
			return nil, err
		}
		reversed := make([]types.Value, len(elems))
		for i, v := range elems {
			reversed[len(elems)-1-i] = v
		}
		return types.FromSlice(reversed), nil
	})

	register(root, "apply", 2, 2, func(ap types.Applier, args []types.Value) (types.Value, error) {
		fnArgs, err := types.ToSlice(args[1])
		if err != nil {
			return nil, err
		}
		return ap.Apply(args[0], fnArgs)
	})

	register(root, "list/map", 2, 2, func(ap types.Applier, args []types.Value) (types.Value, error) {
		elems, err := types.ToSlice(args[1])
		if err != nil {
			return nil, err
		}
		out := make([]types.Value, len(elems))
		for i, v := range elems {
			out[i], err = ap.Apply(args[0], []types.Value{v})
			if err != nil {
				return nil, err
			}
		}
		return types.FromSlice(out), nil
	})

	register(root, "list/filter", 2, 2, func(ap types.Applier, args []types.Value) (types.Value, error) {
		elems, err := types.ToSlice(args[1])
		if err != nil {
			return nil, err
		}
		var out []types.Value
		for _, v := range elems {
			keep, err := ap.Apply(args[0], []types.Value{v})
			if err != nil {
				return nil, err
			}
			if types.IsTruthy(keep) {
				out = append(out, v)
			}
		}
		return types.FromSlice(out), nil
	})

	register(root, "list/reduce", 3, 3, func(ap types.Applier, args []types.Value) (types.Value, error) {
		elems, err := types.ToSlice(args[2])
		if err != nil {
			return nil, err
		}
		acc := args[1]
		for _, v := range elems {
			acc, err = ap.Apply(args[0], []types.Value{acc, v})
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	})

	register(root, "not", 1, 1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		return boolValue(types.IsNil(args[0])), nil
	})
}
