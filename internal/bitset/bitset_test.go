package bitset

import "testing"

type flag uint8

const (
	flagA flag = 1 << 0
	flagB flag = 1 << 1
	flagC flag = 1 << 2
)

func TestHasFlag(t *testing.T) {
	value := AddFlag(flagA, flagB)
	if !HasFlag(value, flagA) {
		t.Error("expected flagA to be set")
	}
	if !HasFlag(value, flagB) {
		t.Error("expected flagB to be set")
	}
	if HasFlag(value, flagC) {
		t.Error("expected flagC to be unset")
	}
	if HasFlag(value, flagA|flagC) {
		t.Error("HasFlag should require every bit in flag to be set, not just one")
	}
}

func TestAddFlagIsIdempotent(t *testing.T) {
	value := AddFlag(flagA, flagA)
	if value != flagA {
		t.Errorf("expected AddFlag to be idempotent, got %v", value)
	}
}

func TestRemoveFlag(t *testing.T) {
	value := AddFlag(AddFlag(flagA, flagB), flagC)
	value = RemoveFlag(value, flagB)
	if HasFlag(value, flagB) {
		t.Error("expected flagB to be cleared")
	}
	if !HasFlag(value, flagA) || !HasFlag(value, flagC) {
		t.Error("expected RemoveFlag to leave the other bits untouched")
	}
}

func TestRemoveFlagOnUnsetBitIsANoop(t *testing.T) {
	value := RemoveFlag(flagA, flagB)
	if value != flagA {
		t.Errorf("expected removing an unset flag to be a no-op, got %v", value)
	}
}

func TestBitsSignedIntUnderlyingType(t *testing.T) {
	type intFlag int
	const (
		x intFlag = 1 << 0
		y intFlag = 1 << 1
	)
	value := AddFlag(x, y)
	if !HasFlag(value, x) || !HasFlag(value, y) {
		t.Error("expected the generic helpers to work over an int-backed flag type too")
	}
}
