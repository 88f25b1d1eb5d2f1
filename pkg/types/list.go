package types

// ToSlice walks a proper list into a Go slice, failing if any tail is not
// itself Nil or a Cons (a dotted pair).
func ToSlice(v Value) ([]Value, error) {
	var out []Value
	for {
		switch t := v.(type) {
		case Nil:
			return out, nil
		case *Cons:
			out = append(out, t.Head)
			v = t.Tail
		default:
			return nil, NewTypeMismatchError("expected a proper list, found dotted tail %s", v.String())
		}
	}
}

// FromSlice builds a right-nested cons chain terminated by Nil.
func FromSlice(vs []Value) Value {
	var acc Value = NilValue
	for i := len(vs) - 1; i >= 0; i-- {
		acc = NewCons(vs[i], acc)
	}
	return acc
}

// ListLen returns the length of a proper list.
func ListLen(v Value) (int, error) {
	n := 0
	for {
		switch t := v.(type) {
		case Nil:
			return n, nil
		case *Cons:
			n++
			v = t.Tail
		default:
			return 0, NewTypeMismatchError("expected a proper list, found dotted tail %s", v.String())
		}
	}
}

// IsNil reports whether v is the empty list / logical false.
func IsNil(v Value) bool {
	_, ok := v.(Nil)
	return ok
}

// IsCons reports whether v is a pair.
func IsCons(v Value) bool {
	_, ok := v.(*Cons)
	return ok
}

// IsTruthy implements the language's only truth test: everything except
// Nil is true.
func IsTruthy(v Value) bool { return !IsNil(v) }

// Head returns the head of a Cons, or a TypeMismatch error.
func Head(v Value) (Value, error) {
	c, ok := v.(*Cons)
	if !ok {
		return nil, NewTypeMismatchError("head: expected a cons, got %s", TypeName(v))
	}
	return c.Head, nil
}

// Tail returns the tail of a Cons, or a TypeMismatch error.
func Tail(v Value) (Value, error) {
	c, ok := v.(*Cons)
	if !ok {
		return nil, NewTypeMismatchError("tail: expected a cons, got %s", TypeName(v))
	}
	return c.Tail, nil
}

// AsAtom extracts the symbol name from an Atom, or returns ok=false.
func AsAtom(v Value) (string, bool) {
	a, ok := v.(Atom)
	return string(a), ok
}

// AsNum extracts the numeric payload of a Num, or returns ok=false.
func AsNum(v Value) (uint64, bool) {
	n, ok := v.(Num)
	return uint64(n), ok
}

// AsStr extracts the string payload of a Str, or returns ok=false.
func AsStr(v Value) (string, bool) {
	s, ok := v.(Str)
	return string(s), ok
}

// TypeName names the tag of v for diagnostics and the type-of primitive.
func TypeName(v Value) string {
	switch v.(type) {
	case Nil:
		return "nil"
	case Num:
		return "num"
	case Atom:
		return "atom"
	case Str:
		return "str"
	case *Cons:
		return "cons"
	case Quote:
		return "quote"
	case *Closure:
		return "closure"
	case *Macro:
		return "macro"
	case *Primitive:
		return "primitive"
	case *Foreign:
		return "foreign"
	default:
		return "unknown"
	}
}

// Equal implements the structural-equality predicate from §4.1: deep for
// atoms, numbers, strings and cons trees; identity for closures,
// primitives, macros and foreign handles.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Num:
		bv, ok := b.(Num)
		return ok && av == bv
	case Atom:
		bv, ok := b.(Atom)
		return ok && av == bv
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case *Cons:
		bv, ok := b.(*Cons)
		return ok && Equal(av.Head, bv.Head) && Equal(av.Tail, bv.Tail)
	case Quote:
		bv, ok := b.(Quote)
		return ok && Equal(av.Value, bv.Value)
	case *Closure:
		bv, ok := b.(*Closure)
		return ok && av == bv
	case *Macro:
		bv, ok := b.(*Macro)
		return ok && av == bv
	case *Primitive:
		bv, ok := b.(*Primitive)
		return ok && av == bv
	case *Foreign:
		bv, ok := b.(*Foreign)
		return ok && av == bv
	default:
		return false
	}
}
