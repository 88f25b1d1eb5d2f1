package reader

import (
	"testing"

	"github.com/koskinen/sexpr/pkg/types"
)

func mustReadOne(t *testing.T, src string) types.Value {
	t.Helper()
	forms, err := ReadForms(src, "<test>")
	if err != nil {
		t.Fatalf("ReadForms(%q): %v", src, err)
	}
	if len(forms) != 1 {
		t.Fatalf("ReadForms(%q) produced %d forms, want 1", src, len(forms))
	}
	return forms[0]
}

func TestReadNumberAndAtom(t *testing.T) {
	if got := mustReadOne(t, "42"); got.String() != "42" {
		t.Errorf("got %v", got)
	}
	if got := mustReadOne(t, "foo-bar?"); got.String() != "foo-bar?" {
		t.Errorf("got %v", got)
	}
	if got := mustReadOne(t, ":keyword"); got.String() != ":keyword" {
		t.Errorf("got %v", got)
	}
}

func TestReadString(t *testing.T) {
	got := mustReadOne(t, `"hello\nworld\t\"quoted\"\\"`)
	s, ok := got.(types.Str)
	if !ok {
		t.Fatalf("expected a Str, got %T", got)
	}
	want := "hello\nworld\t\"quoted\"\\"
	if string(s) != want {
		t.Errorf("got %q, want %q", string(s), want)
	}
}

func TestReadList(t *testing.T) {
	got := mustReadOne(t, "(1 2 3)")
	elems, err := types.ToSlice(got)
	if err != nil {
		t.Fatalf("ToSlice: %v", err)
	}
	if len(elems) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(elems))
	}
}

func TestReadNestedList(t *testing.T) {
	got := mustReadOne(t, "(a (b c) d)")
	if got.String() != "(a (b c) d)" {
		t.Errorf("got %v", got)
	}
}

func TestReadQuoteShorthand(t *testing.T) {
	got := mustReadOne(t, "'(1 2)")
	q, ok := got.(types.Quote)
	if !ok {
		t.Fatalf("expected a Quote, got %T", got)
	}
	if q.Value.String() != "(1 2)" {
		t.Errorf("got %v", q.Value)
	}
}

func TestReadBackquoteAndComma(t *testing.T) {
	got := mustReadOne(t, "`(a ,x b)")
	if got.String() != "(quasi-quote (a (unquote x) b))" {
		t.Errorf("got %v", got)
	}
}

func TestReadMultipleTopLevelForms(t *testing.T) {
	forms, err := ReadForms("(+ 1 2) (+ 3 4)", "<test>")
	if err != nil {
		t.Fatalf("ReadForms: %v", err)
	}
	if len(forms) != 2 {
		t.Fatalf("expected 2 forms, got %d", len(forms))
	}
}

func TestReadSkipsComments(t *testing.T) {
	got := mustReadOne(t, "; a comment\n42 ; trailing\n")
	if got.String() != "42" {
		t.Errorf("got %v", got)
	}
}

func TestParseErrorReportsPosition(t *testing.T) {
	_, err := ReadForms("(foo\n  (bar", "<test>")
	if err == nil {
		t.Fatal("expected an unterminated-list error")
	}
	kind, ok := types.KindOf(err)
	if !ok || kind != types.KindParseError {
		t.Fatalf("expected a ParseError, got %v", err)
	}
	// The unterminated inner list opens at line 2, column 3.
	re := err.(*types.RuntimeError)
	if re.Line != 2 || re.Column != 3 {
		t.Errorf("position = %d:%d, want 2:3", re.Line, re.Column)
	}
}

func TestParseErrorOnUnterminatedString(t *testing.T) {
	_, err := ReadForms(`"unterminated`, "<test>")
	if err == nil {
		t.Fatal("expected a ParseError")
	}
	kind, ok := types.KindOf(err)
	if !ok || kind != types.KindParseError {
		t.Fatalf("expected a ParseError, got %v", err)
	}
}

func TestParseErrorOnStrayCloseParen(t *testing.T) {
	_, err := ReadForms(")", "<test>")
	if err == nil {
		t.Fatal("expected a ParseError for a stray )")
	}
}
