package eval

import "github.com/koskinen/sexpr/pkg/types"

func installArithmetic(root types.Environment) {
	register(root, "+", 0, -1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		var sum uint64
		for _, a := range args {
			n, err := requireNum(a)
			if err != nil {
				return nil, err
			}
			sum += n
		}
		return types.Num(sum), nil
	})

	register(root, "*", 0, -1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		product := uint64(1)
		for _, a := range args {
			n, err := requireNum(a)
			if err != nil {
				return nil, err
			}
			product *= n
		}
		return types.Num(product), nil
	})

	register(root, "-", 1, -1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		first, err := requireNum(args[0])
		if err != nil {
			return nil, err
		}
		if len(args) == 1 {
			if first != 0 {
				return nil, types.NewTypeMismatchError("- of a single unsigned argument would be negative")
			}
			return types.Num(0), nil
		}
		acc := first
		for _, a := range args[1:] {
			n, err := requireNum(a)
			if err != nil {
				return nil, err
			}
			if n > acc {
				return nil, types.NewTypeMismatchError("- result would be negative: %d - %d", acc, n)
			}
			acc -= n
		}
		return types.Num(acc), nil
	})

	register(root, "=", 2, -1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		for i := 1; i < len(args); i++ {
			if !types.Equal(args[0], args[i]) {
				return types.NilValue, nil
			}
		}
		return types.Atom(":true"), nil
	})

	register(root, "<", 2, -1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		for i := 1; i < len(args); i++ {
			a, err := requireNum(args[i-1])
			if err != nil {
				return nil, err
			}
			b, err := requireNum(args[i])
			if err != nil {
				return nil, err
			}
			if !(a < b) {
				return types.NilValue, nil
			}
		}
		return types.Atom(":true"), nil
	})
}

func requireNum(v types.Value) (uint64, error) {
	n, ok := types.AsNum(v)
	if !ok {
		return 0, types.NewTypeMismatchError("expected a number, got %s", types.TypeName(v))
	}
	return n, nil
}
