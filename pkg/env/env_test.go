package env

import (
	"testing"

	"github.com/koskinen/sexpr/pkg/types"
)

func TestLookupWalksParentChain(t *testing.T) {
	root := NewRoot()
	root.DefineValue("x", types.Num(1))
	child := root.Child()
	grandchild := child.Child()

	v, ok := grandchild.LookupValue("x")
	if !ok || !types.Equal(v, types.Num(1)) {
		t.Fatalf("expected to find x=1 through the chain, got %v, %v", v, ok)
	}
	if _, ok := grandchild.LookupValue("missing"); ok {
		t.Error("missing name should not be found")
	}
}

func TestDefineTargetsCurrentFrameOnly(t *testing.T) {
	root := NewRoot()
	child := root.Child()
	child.DefineValue("y", types.Num(2))

	if _, ok := root.LookupValue("y"); ok {
		t.Error("defining in a child frame should not leak into the parent")
	}
	if v, ok := child.LookupValue("y"); !ok || !types.Equal(v, types.Num(2)) {
		t.Error("child frame should see its own definition")
	}
}

func TestValueAndMacroNamespacesAreDisjoint(t *testing.T) {
	root := NewRoot()
	root.DefineValue("foo", types.Num(1))
	root.DefineMacro("foo", types.Num(2))

	v, ok := root.LookupValue("foo")
	if !ok || !types.Equal(v, types.Num(1)) {
		t.Fatalf("LookupValue should see the value binding, got %v", v)
	}
	m, ok := root.LookupMacro("foo")
	if !ok || !types.Equal(m, types.Num(2)) {
		t.Fatalf("LookupMacro should see the macro binding, got %v", m)
	}
}

func TestSetValueAssignsNearestExistingBinding(t *testing.T) {
	root := NewRoot()
	root.DefineValue("x", types.Num(1))
	child := root.Child()

	if err := child.SetValue("x", types.Num(99)); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	v, _ := root.LookupValue("x")
	if !types.Equal(v, types.Num(99)) {
		t.Errorf("expected root's x to be updated, got %v", v)
	}
	v, _ = child.LookupValue("x")
	if !types.Equal(v, types.Num(99)) {
		t.Errorf("child should see the updated value through the chain, got %v", v)
	}
}

func TestSetValueUnboundFailsRatherThanCreating(t *testing.T) {
	root := NewRoot()
	if err := root.SetValue("never-defined", types.Num(1)); err == nil {
		t.Fatal("expected an Unbound error")
	}
	if _, ok := root.LookupValue("never-defined"); ok {
		t.Error("a failed SetValue should not have created a binding")
	}
}

func TestRootWalksToOutermostFrame(t *testing.T) {
	root := NewRoot()
	child := root.Child()
	grandchild := AsFrame(child.Child())

	if grandchild.Root() != root {
		t.Error("Root() should walk all the way to the outermost frame")
	}
}

func TestChildSeesLiveParentUpdates(t *testing.T) {
	root := NewRoot()
	root.DefineValue("x", types.Num(1))
	closureEnv := root.Child()
	root.DefineValue("x", types.Num(2))

	v, ok := closureEnv.LookupValue("x")
	if !ok || !types.Equal(v, types.Num(2)) {
		t.Errorf("a child frame reads through to the parent's current binding, got %v", v)
	}
}
