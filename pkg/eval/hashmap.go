package eval

import "github.com/koskinen/sexpr/pkg/types"

// Hash-maps, like vectors, have no dedicated §3 tag: they are represented
// as association lists of (key . value) conses. map/set! returns a new
// map for the same immutability reason vec/push! does.
func installHashMapPrimitives(root types.Environment) {
	register(root, "hash-map", 0, -1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		if len(args)%2 != 0 {
			return nil, types.NewArityError("hash-map expects an even number of key/value arguments")
		}
		var pairs []types.Value
		for i := 0; i < len(args); i += 2 {
			pairs = append(pairs, types.NewCons(args[i], args[i+1]))
		}
		return types.FromSlice(pairs), nil
	})

	register(root, "map/get", 2, 2, func(_ types.Applier, args []types.Value) (types.Value, error) {
		pairs, err := types.ToSlice(args[0])
		if err != nil {
			return nil, err
		}
		for _, p := range pairs {
			entry, ok := p.(*types.Cons)
			if !ok {
				continue
			}
			if types.Equal(entry.Head, args[1]) {
				return entry.Tail, nil
			}
		}
		return types.NilValue, nil
	})

	register(root, "map/set!", 3, 3, func(_ types.Applier, args []types.Value) (types.Value, error) {
		pairs, err := types.ToSlice(args[0])
		if err != nil {
			return nil, err
		}
		out := make([]types.Value, 0, len(pairs)+1)
		replaced := false
		for _, p := range pairs {
			entry, ok := p.(*types.Cons)
			if ok && types.Equal(entry.Head, args[1]) {
				out = append(out, types.NewCons(args[1], args[2]))
				replaced = true
				continue
			}
			out = append(out, p)
		}
		if !replaced {
			out = append(out, types.NewCons(args[1], args[2]))
		}
		return types.FromSlice(out), nil
	})
}
