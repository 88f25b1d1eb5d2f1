package eval

import "github.com/koskinen/sexpr/pkg/types"

// Vectors have no dedicated tag in §3's closed Value sum, so they are
// represented as ordinary lists. §3's invariant that values are immutable
// after construction (aside from closure-captured frames) means
// vec/push! cannot mutate in place; it returns a new vector, and callers
// rebind via set!/let the same way the rest of the language updates state.
func installVectorPrimitives(root types.Environment) {
	register(root, "vec", 0, -1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		return types.FromSlice(args), nil
	})

	register(root, "vec/push!", 2, 2, func(_ types.Applier, args []types.Value) (types.Value, error) {
		elems, err := types.ToSlice(args[0])
		if err != nil {
			return nil, err
		}
		return types.FromSlice(append(append([]types.Value{}, elems...), args[1])), nil
	})

	register(root, "vec/len", 1, 1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		n, err := types.ListLen(args[0])
		if err != nil {
			return nil, err
		}
		return types.Num(uint64(n)), nil
	})

	register(root, "vec/get", 2, 2, func(_ types.Applier, args []types.Value) (types.Value, error) {
		idx, err := requireNum(args[1])
		if err != nil {
			return nil, err
		}
		elems, err := types.ToSlice(args[0])
		if err != nil {
			return nil, err
		}
		if idx >= uint64(len(elems)) {
			return nil, types.NewTypeMismatchError("vec/get: index %d out of range (len %d)", idx, len(elems))
		}
		return elems[idx], nil
	})
}
