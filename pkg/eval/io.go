package eval

import (
	"fmt"
	"os"

	"github.com/koskinen/sexpr/pkg/types"
)

// installIOPrimitives wires print and read-file (§5: "I/O primitives
// (print, read-file) perform blocking OS calls and propagate OS errors as
// runtime errors").
func installIOPrimitives(root types.Environment) {
	register(root, "print", 1, -1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		strs := make([]any, len(args))
		for i, a := range args {
			if s, ok := types.AsStr(a); ok {
				strs[i] = s
			} else {
				strs[i] = a.String()
			}
		}
		fmt.Fprintln(os.Stdout, strs...)
		return types.NilValue, nil
	})

	register(root, "read-file", 1, 1, func(_ types.Applier, args []types.Value) (types.Value, error) {
		path, ok := types.AsStr(args[0])
		if !ok {
			return nil, types.NewTypeMismatchError("read-file expects a string path, got %s", types.TypeName(args[0]))
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, types.NewTypeMismatchError("read-file: %v", err)
		}
		return types.Str(content), nil
	})
}
