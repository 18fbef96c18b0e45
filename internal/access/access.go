// Package access holds the two small enums that describe visibility on
// class/record members: Accessor (a single value) and Modifier (a bit
// set). Grounded on ml/basic/accessor.h and ml/basic/modifier.h.
package access

import "github.com/mlang/ml-frontend/internal/bitset"

// Accessor is a member visibility qualifier.
type Accessor int

const (
	Public Accessor = iota
	Private
	Protected
)

func (a Accessor) String() string {
	switch a {
	case Public:
		return "public"
	case Private:
		return "private"
	case Protected:
		return "protected"
	default:
		return "private"
	}
}

// ParseAccessor maps the three accessor keywords to their Accessor
// value, defaulting to Private for anything else. It never signals
// failure; callers that need to distinguish "not a keyword" should
// check with a keyword predicate first.
func ParseAccessor(s string) Accessor {
	switch s {
	case "pub":
		return Public
	case "pri":
		return Private
	case "pro":
		return Protected
	default:
		return Private
	}
}

// CanAccess reports whether a requester with accessorAcc may see a
// member declared with memberAcc: Public is always visible, Private
// only to Private requesters, Protected to Private or Protected
// requesters.
func CanAccess(memberAcc, accessorAcc Accessor) bool {
	switch memberAcc {
	case Public:
		return true
	case Private:
		return accessorAcc == Private
	case Protected:
		return accessorAcc == Protected || accessorAcc == Private
	default:
		return false
	}
}

// Modifier is a bit set of declaration modifiers. Combine with
// bitset.AddFlag/HasFlag/RemoveFlag rather than raw operators, keeping
// the bit-twiddling in one explicit, well-tested place.
type Modifier uint8

const (
	None     Modifier = 0
	Static   Modifier = 1 << 1
	Constant Modifier = 1 << 2
	Array    Modifier = 1 << 3
	Init     Modifier = 1 << 4
	Nullable Modifier = 1 << 5
)

// IsModifierKeyword reports whether s spells a modifier keyword.
func IsModifierKeyword(s string) bool {
	return s == "static" || s == "const" || s == "init"
}

// ParseModifier maps a modifier keyword to its flag, or None if s isn't
// one.
func ParseModifier(s string) Modifier {
	switch s {
	case "static":
		return Static
	case "const":
		return Constant
	case "init":
		return Init
	default:
		return None
	}
}

// HasFlag, AddFlag, and RemoveFlag are thin instantiations of the
// generic bitset helpers, kept here so callers don't need to import
// both packages for one enum.
func HasFlag(m, flag Modifier) bool  { return bitset.HasFlag(m, flag) }
func AddFlag(m, flag Modifier) Modifier { return bitset.AddFlag(m, flag) }
func RemoveFlag(m, flag Modifier) Modifier { return bitset.RemoveFlag(m, flag) }
