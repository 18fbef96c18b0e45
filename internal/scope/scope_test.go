package scope

import (
	"testing"

	"github.com/mlang/ml-frontend/internal/types"
)

func TestGetVariableDelegatesToParent(t *testing.T) {
	parent := New(Global)
	parent.AddVariable(types.NewVar("x", types.I32Ty))

	child := Enter(parent, Block)
	v, ok := child.GetVariable("x")
	if !ok {
		t.Fatal("expected the child scope to find a variable declared in its parent")
	}
	if !v.DataType.Equal(types.I32Ty) {
		t.Fatalf("expected x's type to be i32, got %v", v.DataType)
	}
}

func TestShadowingPrefersInnermost(t *testing.T) {
	parent := New(Global)
	parent.AddVariable(types.NewVar("x", types.I32Ty))

	child := Enter(parent, Block)
	child.AddVariable(types.NewVar("x", types.StringTy))

	v, ok := child.GetVariable("x")
	if !ok {
		t.Fatal("expected to find x")
	}
	if !v.DataType.Equal(types.StringTy) {
		t.Fatalf("expected the inner declaration to shadow the outer one, got %v", v.DataType)
	}
}

func TestEnterComposesKindFlags(t *testing.T) {
	fnScope := New(Function)
	loopScope := Enter(fnScope, Loop)

	if !HasFlag(loopScope.Kind, Function) {
		t.Fatal("expected the loop scope to still carry the Function flag")
	}
	if !HasFlag(loopScope.Kind, Loop) {
		t.Fatal("expected the loop scope to carry the Loop flag")
	}
}

func TestGetTypeFindsPrimitivesWithoutDeclaration(t *testing.T) {
	s := New(Global)
	ty, ok := s.GetType("i32")
	if !ok || ty.Kind != types.I32 {
		t.Fatalf("expected i32 to resolve as a primitive, got %v ok=%v", ty, ok)
	}
}

func TestIsValidTypeAcceptsDeclaredClass(t *testing.T) {
	s := New(Global)
	s.AddClass(types.NewClass("Point", nil, nil))
	if !s.IsValidType("Point") {
		t.Fatal("expected a declared class to be a valid type")
	}
	if s.IsValidType("Nowhere") {
		t.Fatal("expected an undeclared name not to be a valid type")
	}
}

func TestHasVariableFalseWhenUndeclared(t *testing.T) {
	s := New(Global)
	if s.HasVariable("missing") {
		t.Fatal("expected HasVariable to report false for an undeclared name")
	}
}
