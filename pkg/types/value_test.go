package types

import "testing"

func TestPrinterOutput(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want string
	}{
		{"nil", NilValue, "nil"},
		{"num", Num(42), "42"},
		{"atom", Atom("foo"), "foo"},
		{"keyword", Atom(":true"), ":true"},
		{"str", Str("hi"), `"hi"`},
		{"list", FromSlice([]Value{Num(1), Num(2), Num(3)}), "(1 2 3)"},
		{"nested", FromSlice([]Value{Atom("a"), FromSlice([]Value{Num(1)})}), "(a (1))"},
		{"quote-shorthand", NewCons(Atom("quote"), NewCons(Atom("x"), NilValue)), "'x"},
		{"dotted", NewCons(Num(1), Num(2)), "(1 . 2)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.String(); got != c.want {
				t.Errorf("String() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestAtomIsKeyword(t *testing.T) {
	if !Atom(":foo").IsKeyword() {
		t.Error(":foo should be a keyword")
	}
	if Atom("foo").IsKeyword() {
		t.Error("foo should not be a keyword")
	}
}

func TestEqualStructural(t *testing.T) {
	a := FromSlice([]Value{Num(1), Str("x"), Atom("y")})
	b := FromSlice([]Value{Num(1), Str("x"), Atom("y")})
	if !Equal(a, b) {
		t.Error("structurally identical lists should be Equal")
	}
	c := FromSlice([]Value{Num(1), Str("x"), Atom("z")})
	if Equal(a, c) {
		t.Error("differing lists should not be Equal")
	}
	if !Equal(NilValue, Nil{}) {
		t.Error("any Nil should equal any other Nil")
	}
}

func TestEqualIdentityForFunctionLike(t *testing.T) {
	cl1 := &Closure{Name: "f"}
	cl2 := &Closure{Name: "f"}
	if Equal(cl1, cl1) == false {
		t.Error("a closure should equal itself")
	}
	if Equal(cl1, cl2) {
		t.Error("distinct closures with the same shape should not be Equal")
	}
}

func TestListHelpers(t *testing.T) {
	l := FromSlice([]Value{Num(1), Num(2), Num(3)})
	slice, err := ToSlice(l)
	if err != nil {
		t.Fatalf("ToSlice: %v", err)
	}
	if len(slice) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(slice))
	}
	n, err := ListLen(l)
	if err != nil || n != 3 {
		t.Fatalf("ListLen = %d, %v", n, err)
	}
	if IsNil(l) {
		t.Error("non-empty list should not be Nil")
	}
	if !IsNil(NilValue) {
		t.Error("NilValue should be Nil")
	}
	if !IsCons(l) {
		t.Error("a populated list should be a Cons")
	}
}

func TestToSliceRejectsDottedTail(t *testing.T) {
	dotted := NewCons(Num(1), Num(2))
	if _, err := ToSlice(dotted); err == nil {
		t.Error("expected an error for a dotted tail")
	}
}

func TestHeadTail(t *testing.T) {
	l := FromSlice([]Value{Num(1), Num(2)})
	h, err := Head(l)
	if err != nil || !Equal(h, Num(1)) {
		t.Fatalf("Head = %v, %v", h, err)
	}
	tl, err := Tail(l)
	if err != nil || !Equal(tl, FromSlice([]Value{Num(2)})) {
		t.Fatalf("Tail = %v, %v", tl, err)
	}
	if _, err := Head(NilValue); err == nil {
		t.Error("Head of Nil should error")
	}
}

func TestIsTruthy(t *testing.T) {
	if IsTruthy(NilValue) {
		t.Error("Nil should not be truthy")
	}
	if !IsTruthy(Num(0)) {
		t.Error("Num(0) should be truthy, only Nil is false")
	}
}

func TestTypeName(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{NilValue, "nil"},
		{Num(1), "num"},
		{Atom("a"), "atom"},
		{Str("s"), "str"},
		{NewCons(Num(1), NilValue), "cons"},
		{&Closure{}, "closure"},
		{&Macro{}, "macro"},
		{&Primitive{}, "primitive"},
		{&Foreign{}, "foreign"},
	}
	for _, c := range cases {
		if got := TypeName(c.v); got != c.want {
			t.Errorf("TypeName(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}
