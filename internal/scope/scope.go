// Package scope implements the analyzer's nested lexical scope chain:
// an ordered set of entity lists (variables, functions, classes,
// records) plus the fixed primitive-type list, with parent-delegating
// lookups.
package scope

import (
	"github.com/mlang/ml-frontend/internal/bitset"
	"github.com/mlang/ml-frontend/internal/types"
)

// Kind is a bit set of scope roles a single Scope can carry
// simultaneously — a method body scope carries Class|Function (plus
// its ancestors' flags), a loop inside it adds Loop, and so on. Kept as
// plain integer flags with free-function helpers (bitset.HasFlag/
// AddFlag/RemoveFlag) rather than methods, so composition is explicit
// at call sites; it answers ancestor-kind queries (e.g. "am I inside a
// loop") in O(1) without walking the parent chain.
type Kind int

const (
	Global Kind = 1 << iota
	Block
	Function
	Loop
	Class
	RecordKind
)

func HasFlag(k, flag Kind) bool { return bitset.HasFlag(k, flag) }
func AddFlag(k, flag Kind) Kind { return bitset.AddFlag(k, flag) }
func RemoveFlag(k, flag Kind) Kind { return bitset.RemoveFlag(k, flag) }

// Scope holds one lexical level's declared entities plus a link to its
// parent. New scopes are seeded with the fixed primitive type list so
// primitive lookups never need to walk to the root.
type Scope struct {
	Kind Kind

	variables []types.Var
	functions []types.Func
	classes   []types.Class
	records   []types.Record
	primitives []types.Type

	parent *Scope
}

// New creates a root scope (no parent) of the given kind.
func New(kind Kind) *Scope {
	return &Scope{Kind: kind, primitives: types.Primitives}
}

// Enter creates a child scope whose Kind is the union of the parent's
// kind and the requested kind — entering a loop inside a function
// yields Function|Loop, so ancestor-kind queries stay O(1).
func Enter(parent *Scope, kind Kind) *Scope {
	combined := kind
	if parent != nil {
		combined = AddFlag(parent.Kind, kind)
	}
	return &Scope{Kind: combined, primitives: types.Primitives, parent: parent}
}

// Parent returns the enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }

// AddVariable, AddFunction, AddClass, and AddRecord register a new
// entity in this scope. No shadow check is performed: when a name is
// declared twice in the same scope, lookups find the first
// declaration, while a declaration in an inner scope hides one of the
// same name in an outer scope.
func (s *Scope) AddVariable(v types.Var) { s.variables = append(s.variables, v) }
func (s *Scope) AddFunction(f types.Func) { s.functions = append(s.functions, f) }
func (s *Scope) AddClass(c types.Class)   { s.classes = append(s.classes, c) }
func (s *Scope) AddRecord(r types.Record) { s.records = append(s.records, r) }

// HasVariable reports whether name is declared in this scope or an
// ancestor.
func (s *Scope) HasVariable(name string) bool {
	_, ok := s.GetVariable(name)
	return ok
}

// GetVariable looks up name in this scope's variable list, then
// recurses to the parent if not found here.
func (s *Scope) GetVariable(name string) (types.Var, bool) {
	for _, v := range s.variables {
		if v.Type.Name == name {
			return v, true
		}
	}
	if s.parent != nil {
		return s.parent.GetVariable(name)
	}
	return types.Var{}, false
}

func (s *Scope) HasFunction(name string) bool {
	_, ok := s.GetFunction(name)
	return ok
}

func (s *Scope) GetFunction(name string) (types.Func, bool) {
	for _, f := range s.functions {
		if f.Type.Name == name {
			return f, true
		}
	}
	if s.parent != nil {
		return s.parent.GetFunction(name)
	}
	return types.Func{}, false
}

func (s *Scope) HasClass(name string) bool {
	_, ok := s.GetClass(name)
	return ok
}

func (s *Scope) GetClass(name string) (types.Class, bool) {
	for _, c := range s.classes {
		if c.Type.Name == name {
			return c, true
		}
	}
	if s.parent != nil {
		return s.parent.GetClass(name)
	}
	return types.Class{}, false
}

func (s *Scope) HasRecord(name string) bool {
	_, ok := s.GetRecord(name)
	return ok
}

func (s *Scope) GetRecord(name string) (types.Record, bool) {
	for _, r := range s.records {
		if r.Type.Name == name {
			return r, true
		}
	}
	if s.parent != nil {
		return s.parent.GetRecord(name)
	}
	return types.Record{}, false
}

// HasType reports whether name resolves to any type: primitive, class,
// or record, checked in that order before delegating to the parent.
func (s *Scope) HasType(name string) bool {
	_, ok := s.GetType(name)
	return ok
}

// GetType resolves name to a Type, trying this scope's primitives,
// then classes, then records, before recursing to the parent —
// matching ml/sema/scope.h's getType order.
func (s *Scope) GetType(name string) (types.Type, bool) {
	for _, p := range s.primitives {
		if p.Name == name {
			return p, true
		}
	}
	if c, ok := s.GetClassLocal(name); ok {
		return c.Type, true
	}
	if r, ok := s.GetRecordLocal(name); ok {
		return r.Type, true
	}
	if s.parent != nil {
		return s.parent.GetType(name)
	}
	return types.Type{}, false
}

// GetClassLocal and GetRecordLocal look only in this scope's own
// lists, without delegating to the parent — GetType needs this to
// preserve the primitives-then-class-then-record-then-parent order
// exactly rather than a class/record lookup that already recurses.
func (s *Scope) GetClassLocal(name string) (types.Class, bool) {
	for _, c := range s.classes {
		if c.Type.Name == name {
			return c, true
		}
	}
	return types.Class{}, false
}

func (s *Scope) GetRecordLocal(name string) (types.Record, bool) {
	for _, r := range s.records {
		if r.Type.Name == name {
			return r, true
		}
	}
	return types.Record{}, false
}

// IsValidType reports whether name resolves to a usable type: a
// primitive, void, null, or a declared class/record — matching
// ml/sema/scope.h's isValidType.
func (s *Scope) IsValidType(name string) bool {
	if name == "void" || name == "null" {
		return true
	}
	if t, ok := s.GetType(name); ok {
		return t.Kind != types.None
	}
	return false
}
