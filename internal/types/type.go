// Package types is the front end's type model: primitive singleton
// types, the promotion and assignability rules the analyzer applies to
// arithmetic and initialization, and the composite Variable/Function/
// Record/Class entity types the scope chain stores. Grounded
// byte-for-byte on ml/sema/type.h and the Var/Func/Rec/Cls headers.
package types

// Kind classifies a Type. Types compare by Name (see Equal), not by
// Kind's declaration order, so this order carries no semantic weight.
type Kind int

const (
	None Kind = iota
	I8
	I16
	I32
	I64
	I128
	U8
	U16
	U32
	U64
	U128
	F16
	F32
	F64
	F128
	Bool
	Char
	String
	Array
	ClassKind
	RecordKind
	Function
	Variable
	Void
	Null
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case I128:
		return "i128"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case U128:
		return "u128"
	case F16:
		return "f16"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case F128:
		return "f128"
	case Bool:
		return "bool"
	case Char:
		return "char"
	case String:
		return "string"
	case Array:
		return "array"
	case ClassKind:
		return "class"
	case RecordKind:
		return "record"
	case Function:
		return "function"
	case Variable:
		return "variable"
	case Void:
		return "void"
	case Null:
		return "null"
	default:
		return "unknown"
	}
}

// Type is a nominal type value: two types are the same type iff their
// Name matches, not by Kind alone (every Class has Kind==Class but a
// distinct Name).
type Type struct {
	Kind Kind
	Name string
}

// IsValid reports whether t names an actual type — the zero Type is
// never valid.
func (t Type) IsValid() bool {
	return t.Name != "" && t.Kind != None
}

// Equal compares two types by name.
func (t Type) Equal(other Type) bool {
	return t.Name == other.Name
}

// Size returns the type's size in bytes, or 0 for types with no fixed
// representation size (string, array, class, record, function,
// variable, void, null, none).
func (t Type) Size() int {
	switch t.Kind {
	case I8, U8, Bool, Char:
		return 1
	case I16, U16, F16:
		return 2
	case I32, U32, F32:
		return 4
	case I64, U64, F64:
		return 8
	case I128, U128, F128:
		return 16
	default:
		return 0
	}
}

// IsSimilarTo reports whether two types share a Kind — weaker than
// Equal, since it ignores Name.
func (t Type) IsSimilarTo(other Type) bool {
	return t.Kind == other.Kind
}

// IsInteger reports whether t is one of the signed or unsigned integer
// kinds.
func (t Type) IsInteger() bool {
	switch t.Kind {
	case I8, I16, I32, I64, I128, U8, U16, U32, U64, U128:
		return true
	default:
		return false
	}
}

// IsFloatingPoint reports whether t is one of the float kinds.
func (t Type) IsFloatingPoint() bool {
	switch t.Kind {
	case F16, F32, F64, F128:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether t is an integer or floating-point kind.
func (t Type) IsNumeric() bool {
	return t.IsInteger() || t.IsFloatingPoint()
}

// IsPointer reports whether t is a reference-shaped kind: array,
// class, record, or string.
func (t Type) IsPointer() bool {
	switch t.Kind {
	case Array, ClassKind, RecordKind, String:
		return true
	default:
		return false
	}
}

// IsTruthy reports whether a value of t can be used as a condition —
// every kind except None, Void, and Null.
func (t Type) IsTruthy() bool {
	return t.Kind != None && t.Kind != Void && t.Kind != Null
}

func (t Type) IsNone() bool { return t.Kind == None }
func (t Type) IsVoid() bool { return t.Kind == Void }
func (t Type) IsNull() bool { return t.Kind == Null }

// IsPrimitive reports whether t is a numeric, bool, or char kind.
// String is deliberately excluded.
func (t Type) IsPrimitive() bool {
	return t.IsNumeric() || t.Kind == Bool || t.Kind == Char
}

// Singleton primitive type instances: NoneTy plus the 19 listed in
// Primitives (StringTy's Name is "str", not "string").
var (
	NoneTy   = Type{Kind: None, Name: "none"}
	I8Ty     = Type{Kind: I8, Name: "i8"}
	I16Ty    = Type{Kind: I16, Name: "i16"}
	I32Ty    = Type{Kind: I32, Name: "i32"}
	I64Ty    = Type{Kind: I64, Name: "i64"}
	I128Ty   = Type{Kind: I128, Name: "i128"}
	U8Ty     = Type{Kind: U8, Name: "u8"}
	U16Ty    = Type{Kind: U16, Name: "u16"}
	U32Ty    = Type{Kind: U32, Name: "u32"}
	U64Ty    = Type{Kind: U64, Name: "u64"}
	U128Ty   = Type{Kind: U128, Name: "u128"}
	F16Ty    = Type{Kind: F16, Name: "f16"}
	F32Ty    = Type{Kind: F32, Name: "f32"}
	F64Ty    = Type{Kind: F64, Name: "f64"}
	F128Ty   = Type{Kind: F128, Name: "f128"}
	BoolTy   = Type{Kind: Bool, Name: "bool"}
	CharTy   = Type{Kind: Char, Name: "char"}
	StringTy = Type{Kind: String, Name: "str"}
	VoidTy   = Type{Kind: Void, Name: "void"}
	NullTy   = Type{Kind: Null, Name: "null"}
)

// Primitives lists the singleton instances above except NoneTy (19
// types), in declaration order — the same list the scope chain seeds every new Scope with.
var Primitives = []Type{
	I8Ty, I16Ty, I32Ty, I64Ty, I128Ty,
	U8Ty, U16Ty, U32Ty, U64Ty, U128Ty,
	F16Ty, F32Ty, F64Ty, F128Ty,
	BoolTy, CharTy, StringTy, VoidTy, NullTy,
}

// Promote returns the common type two operand types should be widened
// to for a binary arithmetic operation: same-kind operands promote to
// a (either side, since they're similar); between two floats or two
// integers, the wider one wins; a float paired with an integer always
// promotes to the float; anything else has no common type.
func Promote(a, b Type) Type {
	if a.IsSimilarTo(b) {
		return a
	}
	if a.IsFloatingPoint() && b.IsFloatingPoint() {
		if a.Size() >= b.Size() {
			return a
		}
		return b
	}
	if a.IsInteger() && b.IsInteger() {
		if a.Size() >= b.Size() {
			return a
		}
		return b
	}
	if a.IsFloatingPoint() && b.IsInteger() {
		return a
	}
	if a.IsInteger() && b.IsFloatingPoint() {
		return b
	}
	return NoneTy
}

// CanAssign reports whether a value of type from may initialize or be
// assigned into a slot of type to. Similar kinds are always
// assignable; a float slot accepts any integer; an integer slot
// accepts a narrower-or-equal-sized integer. Everything else is
// rejected. Call sites must pass (to, from), not (from, to).
func CanAssign(to, from Type) bool {
	if to.IsSimilarTo(from) {
		return true
	}
	if to.IsFloatingPoint() && from.IsInteger() {
		return true
	}
	if to.IsInteger() && from.IsInteger() && from.Size() <= to.Size() {
		return true
	}
	return false
}
