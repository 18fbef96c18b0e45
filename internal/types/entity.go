package types

import "github.com/mlang/ml-frontend/internal/access"

// Var is a declared variable or parameter's type entry: a Type
// (Kind==Variable) plus its element type, accessor, and modifiers.
// Grounded on ml/sema/var.h.
type Var struct {
	Type     Type
	DataType Type
	Accessor access.Accessor
	Modifier access.Modifier
}

// NewVar builds a Var, defaulting Accessor to Public and Modifier to
// None.
func NewVar(name string, dataType Type) Var {
	return Var{
		Type:     Type{Kind: Variable, Name: name},
		DataType: dataType,
		Accessor: access.Public,
		Modifier: access.None,
	}
}

// IsValid reports whether v names an actual variable.
func (v Var) IsValid() bool {
	return v.Type.Name != ""
}

// Func is a declared function's type entry: a Type (Kind==Function)
// plus its return type, parameters, accessor, and modifiers. Grounded
// on ml/sema/func.h.
type Func struct {
	Type       Type
	ReturnType Type
	Parameters []Var
	Accessor   access.Accessor
	Modifier   access.Modifier
}

// NewFunc builds a Func, defaulting Accessor to Public and Modifier to
// None.
func NewFunc(name string, returnType Type, params []Var) Func {
	return Func{
		Type:       Type{Kind: Function, Name: name},
		ReturnType: returnType,
		Parameters: params,
		Accessor:   access.Public,
		Modifier:   access.None,
	}
}

func (f Func) IsValid() bool {
	return f.Type.Name != ""
}

// IsValidArguments reports whether a call site's argument types match
// this function's parameter list: arity must match exactly, and each
// argument must either share its parameter's kind exactly or both must
// be numeric (permitting int/float mixing at call sites, unlike
// CanAssign's stricter widening-only rule).
func (f Func) IsValidArguments(argTypes []Type) bool {
	if len(argTypes) != len(f.Parameters) {
		return false
	}
	for i, arg := range argTypes {
		param := f.Parameters[i].DataType
		if param.IsSimilarTo(arg) {
			continue
		}
		if param.IsNumeric() && arg.IsNumeric() {
			continue
		}
		return false
	}
	return true
}

// Record is a declared record's type entry: a Type (Kind==Record) plus
// its ordered field list. Grounded on ml/sema/rec.h.
type Record struct {
	Type   Type
	Fields []Var
}

func NewRecord(name string, fields []Var) Record {
	return Record{Type: Type{Kind: RecordKind, Name: name}, Fields: fields}
}

func (r Record) IsValid() bool {
	return r.Type.Name != ""
}

// HasField reports whether the record declares a field named name that
// is visible to a requester with the given accessor.
func (r Record) HasField(name string, requester access.Accessor) bool {
	_, ok := r.field(name, requester)
	return ok
}

// GetField returns the named field if it exists and is visible to
// requester, reporting ok via the second return rather than a panic.
func (r Record) GetField(name string, requester access.Accessor) (Var, bool) {
	return r.field(name, requester)
}

func (r Record) field(name string, requester access.Accessor) (Var, bool) {
	for _, f := range r.Fields {
		if f.Type.Name == name {
			if access.CanAccess(f.Accessor, requester) {
				return f, true
			}
			return Var{}, false
		}
	}
	return Var{}, false
}

// Class is a declared class's type entry: a Type (Kind==ClassKind)
// plus its ordered field and method lists. Grounded on ml/sema/cls.h.
type Class struct {
	Type    Type
	Fields  []Var
	Methods []Func
}

func NewClass(name string, fields []Var, methods []Func) Class {
	return Class{Type: Type{Kind: ClassKind, Name: name}, Fields: fields, Methods: methods}
}

func (c Class) IsValid() bool {
	return c.Type.Name != ""
}

func (c Class) HasField(name string, requester access.Accessor) bool {
	_, ok := c.field(name, requester)
	return ok
}

func (c Class) GetField(name string, requester access.Accessor) (Var, bool) {
	return c.field(name, requester)
}

func (c Class) field(name string, requester access.Accessor) (Var, bool) {
	for _, f := range c.Fields {
		if f.Type.Name == name {
			if access.CanAccess(f.Accessor, requester) {
				return f, true
			}
			return Var{}, false
		}
	}
	return Var{}, false
}

func (c Class) HasMethod(name string, requester access.Accessor) bool {
	_, ok := c.method(name, requester)
	return ok
}

func (c Class) GetMethod(name string, requester access.Accessor) (Func, bool) {
	return c.method(name, requester)
}

func (c Class) method(name string, requester access.Accessor) (Func, bool) {
	for _, m := range c.Methods {
		if m.Type.Name == name {
			if access.CanAccess(m.Accessor, requester) {
				return m, true
			}
			return Func{}, false
		}
	}
	return Func{}, false
}
