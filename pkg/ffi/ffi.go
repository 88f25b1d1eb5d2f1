// Package ffi implements the §4.6 foreign-function bridge: dlopen a
// shared object, resolve a symbol against a declared argument/return
// signature, and invoke it.
//
// No example in the retrieved pack implements an actual dynamic loader
// call (see DESIGN.md), so this is built directly on cgo and libdl, the
// idiomatic mechanism for a C-ABI bridge from Go. To keep the Go side free
// of per-signature generated code, every native call is funneled through
// one of a handful of fixed-arity C trampolines that treat every argument
// and the return value as a 64-bit word — wide enough for a C int or a
// pointer — and the Go side marshals int/string values to and from that
// width according to the declared signature.
package ffi

/*
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>

static void *ffi_dlopen(const char *path) {
	return dlopen(path, RTLD_NOW | RTLD_GLOBAL);
}

static void *ffi_dlsym(void *handle, const char *name) {
	return dlsym(handle, name);
}

typedef long long (*ffi_fn0)(void);
typedef long long (*ffi_fn1)(long long);
typedef long long (*ffi_fn2)(long long, long long);
typedef long long (*ffi_fn3)(long long, long long, long long);
typedef long long (*ffi_fn4)(long long, long long, long long, long long);

static long long ffi_call(void *fn, long long *argv, int argc) {
	switch (argc) {
	case 0:
		return ((ffi_fn0)fn)();
	case 1:
		return ((ffi_fn1)fn)(argv[0]);
	case 2:
		return ((ffi_fn2)fn)(argv[0], argv[1]);
	case 3:
		return ((ffi_fn3)fn)(argv[0], argv[1], argv[2]);
	case 4:
		return ((ffi_fn4)fn)(argv[0], argv[1], argv[2], argv[3]);
	default:
		return 0;
	}
}
*/
import "C"

import (
	"unsafe"

	"github.com/koskinen/sexpr/pkg/types"
)

const maxArgs = 4

// ArgKind is a declared marshalling type from §4.6: int, string, or nil
// (return-only, meaning void).
type ArgKind int

const (
	KindInt ArgKind = iota
	KindString
	KindNil
)

func ParseKind(name string) (ArgKind, error) {
	switch name {
	case "int":
		return KindInt, nil
	case "string":
		return KindString, nil
	case "nil":
		return KindNil, nil
	default:
		return 0, types.NewFfiError("unsupported ffi type %q", name)
	}
}

// Library is the Payload behind a types.Foreign of kind ForeignLibrary.
type Library struct {
	handle unsafe.Pointer
	path   string
}

// Function is the Payload behind a types.Foreign of kind ForeignFunction.
type Function struct {
	ptr      unsafe.Pointer
	name     string
	argKinds []ArgKind
	retKind  ArgKind
}

// Open loads a shared object, returning a *types.Foreign wrapping a
// *Library, or a Ffi-kind error if the load fails.
func Open(path string) (*types.Foreign, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	handle := C.ffi_dlopen(cpath)
	if handle == nil {
		return nil, types.NewFfiError("ffi/open: could not load %q", path)
	}
	return &types.Foreign{
		Kind:  types.ForeignLibrary,
		Label: path,
		Payload: &Library{handle: handle, path: path},
	}, nil
}

// Get resolves name in lib with the declared signature (argument kinds,
// then the return kind), returning a *types.Foreign wrapping a *Function.
func Get(lib *types.Foreign, name string, signature []string) (*types.Foreign, error) {
	if lib.Kind != types.ForeignLibrary {
		return nil, types.NewFfiError("ffi/get: first argument is not a library handle")
	}
	library, ok := lib.Payload.(*Library)
	if !ok {
		return nil, types.NewFfiError("ffi/get: malformed library handle")
	}
	if len(signature) == 0 {
		return nil, types.NewFfiError("ffi/get: signature must include at least a return type")
	}
	argNames, retName := signature[:len(signature)-1], signature[len(signature)-1]
	if len(argNames) > maxArgs {
		return nil, types.NewFfiError("ffi/get: at most %d arguments are supported, got %d", maxArgs, len(argNames))
	}

	argKinds := make([]ArgKind, len(argNames))
	for i, n := range argNames {
		k, err := ParseKind(n)
		if err != nil {
			return nil, err
		}
		if k == KindNil {
			return nil, types.NewFfiError("ffi/get: nil is only valid as a return type")
		}
		argKinds[i] = k
	}
	retKind, err := ParseKind(retName)
	if err != nil {
		return nil, err
	}

	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	ptr := C.ffi_dlsym(library.handle, cname)
	if ptr == nil {
		return nil, types.NewFfiError("ffi/get: symbol %q not found in %q", name, library.path)
	}

	return &types.Foreign{
		Kind:  types.ForeignFunction,
		Label: name,
		Payload: &Function{ptr: ptr, name: name, argKinds: argKinds, retKind: retKind},
	}, nil
}

// Apply marshals args per fn's declared signature, invokes the native
// entry point, and converts the result back to a runtime Value.
func Apply(fn *types.Foreign, args []types.Value) (types.Value, error) {
	if fn.Kind != types.ForeignFunction {
		return nil, types.NewFfiError("ffi/apply: first argument is not a function handle")
	}
	native, ok := fn.Payload.(*Function)
	if !ok {
		return nil, types.NewFfiError("ffi/apply: malformed function handle")
	}
	if len(args) != len(native.argKinds) {
		return nil, types.NewFfiError("ffi/apply: %s expects %d argument(s), got %d", native.name, len(native.argKinds), len(args))
	}

	var words [maxArgs]C.longlong
	var toFree []unsafe.Pointer
	defer func() {
		for _, p := range toFree {
			C.free(p)
		}
	}()

	for i, kind := range native.argKinds {
		switch kind {
		case KindInt:
			n, ok := types.AsNum(args[i])
			if !ok {
				return nil, types.NewFfiError("ffi/apply: %s argument %d: expected int, got %s", native.name, i, types.TypeName(args[i]))
			}
			words[i] = C.longlong(n)
		case KindString:
			s, ok := types.AsStr(args[i])
			if !ok {
				return nil, types.NewFfiError("ffi/apply: %s argument %d: expected string, got %s", native.name, i, types.TypeName(args[i]))
			}
			cstr := C.CString(s)
			toFree = append(toFree, unsafe.Pointer(cstr))
			words[i] = C.longlong(uintptr(unsafe.Pointer(cstr)))
		default:
			return nil, types.NewFfiError("ffi/apply: %s argument %d has an unsupported declared type", native.name, i)
		}
	}

	result := C.ffi_call(native.ptr, (*C.longlong)(unsafe.Pointer(&words[0])), C.int(len(native.argKinds)))

	switch native.retKind {
	case KindNil:
		return types.NilValue, nil
	case KindInt:
		return types.Num(uint64(result)), nil
	case KindString:
		return types.Str(C.GoString((*C.char)(unsafe.Pointer(uintptr(result))))), nil
	default:
		return nil, types.NewFfiError("ffi/apply: %s has an unsupported declared return type", native.name)
	}
}
