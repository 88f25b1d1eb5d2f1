// Package interp wires the reader, the macro expander, the evaluator, and
// the embedded library prelude together into a single entry point, the
// role the teacher's pkg/interpreter and pkg/executor packages played.
package interp

import (
	_ "embed"
	"os"

	"github.com/koskinen/sexpr/pkg/eval"
	"github.com/koskinen/sexpr/pkg/reader"
	"github.com/koskinen/sexpr/pkg/types"
)

//go:embed prelude.lisp
var preludeSource string

// Interp is one interpreter instance: a root environment plus the
// stateless evaluator that operates on it. Per §5, several Interp values
// may coexist without sharing any state.
type Interp struct {
	Eval *eval.Evaluator
	Root types.Environment
}

// New constructs a fresh interpreter with a root environment seeded with
// every primitive and the library prelude already loaded.
func New() (*Interp, error) {
	it := &Interp{Eval: eval.New(), Root: eval.NewRootEnv()}
	if _, err := it.evalSource(preludeSource, "<prelude>"); err != nil {
		return nil, err
	}
	return it, nil
}

// InterpretString reads and evaluates every top-level form in src against
// the shared root environment, returning the value of the last form (Nil
// if src contained none).
func (it *Interp) InterpretString(src string) (types.Value, error) {
	return it.evalSource(src, "<input>")
}

// InterpretFile reads filename, then evaluates its forms in order, per
// the CLI surface contract in §6.
func (it *Interp) InterpretFile(filename string) (types.Value, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return it.evalSource(string(content), filename)
}

func (it *Interp) evalSource(src string, filename string) (types.Value, error) {
	forms, err := reader.ReadForms(src, filename)
	if err != nil {
		return nil, err
	}
	var result types.Value = types.NilValue
	for _, form := range forms {
		result, err = it.Eval.Eval(it.Root, form)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
