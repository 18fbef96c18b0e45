// Package ast defines the tree-shaped, tagged-variant node types the
// parser builds and the analyzer and printer consume. Each concrete
// node type carries its own marker methods (expr/stmt/decl/cond), so
// dispatch is a type switch over the concrete node types rather than a
// chain of runtime casts through a class hierarchy.
package ast

import (
	"github.com/mlang/ml-frontend/internal/access"
	"github.com/mlang/ml-frontend/internal/diag"
)

// Node is any AST node: it carries a span and can be visited.
type Node interface {
	Span() diag.Span
	Accept(v Visitor)
	node()
}

// Expr is an expression node.
type Expr interface {
	Node
	expr()
}

// Stmt is a statement node — declarations and conditionals are also
// statements.
type Stmt interface {
	Node
	stmt()
}

// Decl is a declaration, which is itself a statement.
type Decl interface {
	Stmt
	decl()
}

// Cond is a conditional (if/switch/while/for), which is itself a
// statement.
type Cond interface {
	Stmt
	cond()
}

// base carries the span every node has; embedding it satisfies the
// Node.Span method without repeating the field on every struct.
type base struct {
	span diag.Span
}

func (b base) Span() diag.Span { return b.span }

// ---- Expressions ----

// BinaryExpr is `left op right`.
type BinaryExpr struct {
	base
	Left  Expr
	Op    string
	Right Expr
}

func NewBinaryExpr(span diag.Span, left Expr, op string, right Expr) *BinaryExpr {
	return &BinaryExpr{base: base{span}, Left: left, Op: op, Right: right}
}
func (*BinaryExpr) node()             {}
func (*BinaryExpr) expr()             {}
func (n *BinaryExpr) Accept(v Visitor) { v.VisitBinary(n) }

// UnaryExpr is `op operand` (Prefix true) or `operand op` (Prefix
// false, e.g. postfix `++`/`--`).
type UnaryExpr struct {
	base
	Op      string
	Operand Expr
	Prefix  bool
}

func NewUnaryExpr(span diag.Span, op string, operand Expr, prefix bool) *UnaryExpr {
	return &UnaryExpr{base: base{span}, Op: op, Operand: operand, Prefix: prefix}
}
func (*UnaryExpr) node()             {}
func (*UnaryExpr) expr()             {}
func (n *UnaryExpr) Accept(v Visitor) { v.VisitUnary(n) }

// LiteralKind tags a LiteralExpr's payload.
type LiteralKind int

const (
	LiteralInteger LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralCharacter
	LiteralBoolean
	LiteralNull
)

// LiteralExpr is a literal token's text plus its kind.
type LiteralExpr struct {
	base
	Value string
	Kind  LiteralKind
}

func NewLiteralExpr(span diag.Span, value string, kind LiteralKind) *LiteralExpr {
	return &LiteralExpr{base: base{span}, Value: value, Kind: kind}
}
func (*LiteralExpr) node()             {}
func (*LiteralExpr) expr()             {}
func (n *LiteralExpr) Accept(v Visitor) { v.VisitLiteral(n) }

// IdentifierExpr is a bare name reference.
type IdentifierExpr struct {
	base
	Name string
}

func NewIdentifierExpr(span diag.Span, name string) *IdentifierExpr {
	return &IdentifierExpr{base: base{span}, Name: name}
}
func (*IdentifierExpr) node()             {}
func (*IdentifierExpr) expr()             {}
func (n *IdentifierExpr) Accept(v Visitor) { v.VisitIdentifier(n) }

// ArrayIdentifierExpr is a type-position identifier followed by
// `[size]`; Size is nil when no brackets were written, and an Integer
// LiteralExpr of "-1" when brackets were written empty ("unsized").
type ArrayIdentifierExpr struct {
	base
	Name string
	Size Expr
}

func NewArrayIdentifierExpr(span diag.Span, name string, size Expr) *ArrayIdentifierExpr {
	return &ArrayIdentifierExpr{base: base{span}, Name: name, Size: size}
}
func (*ArrayIdentifierExpr) node()             {}
func (*ArrayIdentifierExpr) expr()             {}
func (n *ArrayIdentifierExpr) Accept(v Visitor) { v.VisitArrayIdentifier(n) }

// IndexExpr is `array[index]`.
type IndexExpr struct {
	base
	Array Expr
	Index Expr
}

func NewIndexExpr(span diag.Span, array, index Expr) *IndexExpr {
	return &IndexExpr{base: base{span}, Array: array, Index: index}
}
func (*IndexExpr) node()             {}
func (*IndexExpr) expr()             {}
func (n *IndexExpr) Accept(v Visitor) { v.VisitIndex(n) }

// ArrayExpr is an array literal `[e1, e2, ...]`.
type ArrayExpr struct {
	base
	Elements []Expr
}

func NewArrayExpr(span diag.Span, elements []Expr) *ArrayExpr {
	return &ArrayExpr{base: base{span}, Elements: elements}
}
func (*ArrayExpr) node()             {}
func (*ArrayExpr) expr()             {}
func (n *ArrayExpr) Accept(v Visitor) { v.VisitArray(n) }

// CallExpr is `callee(arg, ...)`.
type CallExpr struct {
	base
	Callee    Expr
	Arguments []Expr
}

func NewCallExpr(span diag.Span, callee Expr, args []Expr) *CallExpr {
	return &CallExpr{base: base{span}, Callee: callee, Arguments: args}
}
func (*CallExpr) node()             {}
func (*CallExpr) expr()             {}
func (n *CallExpr) Accept(v Visitor) { v.VisitCall(n) }

// AttributeExpr is `object.attribute`, where Attribute is itself an
// Expr — either an IdentifierExpr (field access) or a CallExpr (method
// call).
type AttributeExpr struct {
	base
	Object    Expr
	Attribute Expr
}

func NewAttributeExpr(span diag.Span, object, attribute Expr) *AttributeExpr {
	return &AttributeExpr{base: base{span}, Object: object, Attribute: attribute}
}
func (*AttributeExpr) node()             {}
func (*AttributeExpr) expr()             {}
func (n *AttributeExpr) Accept(v Visitor) { v.VisitAttribute(n) }

// ---- Statements ----

// ReturnStmt is `return [expr];`. Expression is nil for a bare return.
type ReturnStmt struct {
	base
	Expression Expr
}

func NewReturnStmt(span diag.Span, expr Expr) *ReturnStmt {
	return &ReturnStmt{base: base{span}, Expression: expr}
}
func (*ReturnStmt) node()             {}
func (*ReturnStmt) stmt()             {}
func (n *ReturnStmt) Accept(v Visitor) { v.VisitReturn(n) }

// BreakStmt is `break;`.
type BreakStmt struct{ base }

func NewBreakStmt(span diag.Span) *BreakStmt { return &BreakStmt{base{span}} }
func (*BreakStmt) node()                     {}
func (*BreakStmt) stmt()                     {}
func (n *BreakStmt) Accept(v Visitor)         { v.VisitBreak(n) }

// ContinueStmt is `continue;`.
type ContinueStmt struct{ base }

func NewContinueStmt(span diag.Span) *ContinueStmt { return &ContinueStmt{base{span}} }
func (*ContinueStmt) node()                        {}
func (*ContinueStmt) stmt()                        {}
func (n *ContinueStmt) Accept(v Visitor)            { v.VisitContinue(n) }

// ExpressionStmt is a bare expression used as a statement.
type ExpressionStmt struct {
	base
	Expression Expr
}

func NewExpressionStmt(span diag.Span, expr Expr) *ExpressionStmt {
	return &ExpressionStmt{base: base{span}, Expression: expr}
}
func (*ExpressionStmt) node()             {}
func (*ExpressionStmt) stmt()             {}
func (n *ExpressionStmt) Accept(v Visitor) { v.VisitExpressionStmt(n) }

// BlockStmt is `{ stmt... }`.
type BlockStmt struct {
	base
	Statements []Stmt
}

func NewBlockStmt(span diag.Span, statements []Stmt) *BlockStmt {
	return &BlockStmt{base: base{span}, Statements: statements}
}
func (*BlockStmt) node()             {}
func (*BlockStmt) stmt()             {}
func (n *BlockStmt) Accept(v Visitor) { v.VisitBlock(n) }

// ModifierStmt carries a declaration's accessor and modifier flags. It
// also appears as a bare statement, which is only legal inside a class
// scope.
type ModifierStmt struct {
	base
	Accessor access.Accessor
	Modifier access.Modifier
}

func NewModifierStmt(span diag.Span, acc access.Accessor, mod access.Modifier) *ModifierStmt {
	return &ModifierStmt{base: base{span}, Accessor: acc, Modifier: mod}
}
func (*ModifierStmt) node()             {}
func (*ModifierStmt) stmt()             {}
func (n *ModifierStmt) Accept(v Visitor) { v.VisitModifierStmt(n) }

// ---- Declarations ----

// declBase holds the fields every Declaration shares.
type declBase struct {
	base
	Identifier *IdentifierExpr
	Type       Expr
	Modifier   *ModifierStmt
}

func (*declBase) stmt() {}
func (*declBase) decl() {}

// VariableDecl is `let name: type = init;` (all pieces but the name
// are optional, depending on which of the parser's declaration shapes
// produced it).
type VariableDecl struct {
	declBase
	Initializer Expr
}

func NewVariableDecl(span diag.Span, id *IdentifierExpr, typ Expr, mod *ModifierStmt, init Expr) *VariableDecl {
	return &VariableDecl{
		declBase:    declBase{base: base{span}, Identifier: id, Type: typ, Modifier: mod},
		Initializer: init,
	}
}
func (*VariableDecl) node()             {}
func (n *VariableDecl) Accept(v Visitor) { v.VisitVariableDecl(n) }

// FunctionDecl is `fn name(params): type { body }`.
type FunctionDecl struct {
	declBase
	Parameters []*VariableDecl
	Body       *BlockStmt
}

func NewFunctionDecl(span diag.Span, id *IdentifierExpr, typ Expr, mod *ModifierStmt, params []*VariableDecl, body *BlockStmt) *FunctionDecl {
	return &FunctionDecl{
		declBase:   declBase{base: base{span}, Identifier: id, Type: typ, Modifier: mod},
		Parameters: params,
		Body:       body,
	}
}
func (*FunctionDecl) node()             {}
func (n *FunctionDecl) Accept(v Visitor) { v.VisitFunctionDecl(n) }

// RecordDecl is `rec Name { field...; }`.
type RecordDecl struct {
	declBase
	Fields []*VariableDecl
}

func NewRecordDecl(span diag.Span, id *IdentifierExpr, mod *ModifierStmt, fields []*VariableDecl) *RecordDecl {
	return &RecordDecl{
		declBase: declBase{base: base{span}, Identifier: id, Modifier: mod},
		Fields:   fields,
	}
}
func (*RecordDecl) node()             {}
func (n *RecordDecl) Accept(v Visitor) { v.VisitRecordDecl(n) }

// ClassDecl is `cls Name { field...; fn method...{} }`.
type ClassDecl struct {
	declBase
	Fields  []*VariableDecl
	Methods []*FunctionDecl
}

func NewClassDecl(span diag.Span, id *IdentifierExpr, mod *ModifierStmt, fields []*VariableDecl, methods []*FunctionDecl) *ClassDecl {
	return &ClassDecl{
		declBase: declBase{base: base{span}, Identifier: id, Modifier: mod},
		Fields:   fields,
		Methods:  methods,
	}
}
func (*ClassDecl) node()             {}
func (n *ClassDecl) Accept(v Visitor) { v.VisitClassDecl(n) }

// ---- Conditionals ----

// condBase holds the fields every Conditional shares. Not every
// variant uses Condition/Then meaningfully (SwitchCond leaves both
// nil).
type condBase struct {
	base
	Condition Expr
	Then      *BlockStmt
}

func (*condBase) stmt() {}
func (*condBase) cond() {}

// IfCond is `if cond {} elif cond {} ... else {}`. ElifBranches are
// flat siblings, not nested; Else is nil when absent. The parser stops
// collecting elif branches the moment it sees `else`, so a branch can
// never appear after the else clause.
type IfCond struct {
	condBase
	ElifBranches []*IfCond
	Else         *BlockStmt
}

func NewIfCond(span diag.Span, cond Expr, then *BlockStmt, elifs []*IfCond, els *BlockStmt) *IfCond {
	return &IfCond{
		condBase:     condBase{base: base{span}, Condition: cond, Then: then},
		ElifBranches: elifs,
		Else:         els,
	}
}
func (*IfCond) node()             {}
func (n *IfCond) Accept(v Visitor) { v.VisitIfCond(n) }

// CaseClause is one `case expr { ... }` or `default { ... }` arm of a
// switch. Expr is nil for the default arm.
type CaseClause struct {
	base
	Expr Expr
	Body *BlockStmt
}

func NewCaseClause(span diag.Span, expr Expr, body *BlockStmt) *CaseClause {
	return &CaseClause{base: base{span}, Expr: expr, Body: body}
}
func (*CaseClause) node()             {}
func (*CaseClause) stmt()             {}
func (n *CaseClause) Accept(v Visitor) { v.VisitCaseClause(n) }

// SwitchCond is `switch expr { case ... default ... }`.
type SwitchCond struct {
	condBase
	SwitchExpr Expr
	Cases      []*CaseClause
}

func NewSwitchCond(span diag.Span, switchExpr Expr, cases []*CaseClause) *SwitchCond {
	return &SwitchCond{
		condBase:   condBase{base: base{span}},
		SwitchExpr: switchExpr,
		Cases:      cases,
	}
}
func (*SwitchCond) node()             {}
func (n *SwitchCond) Accept(v Visitor) { v.VisitSwitchCond(n) }

// WhileCond is `while cond { body }`.
type WhileCond struct{ condBase }

func NewWhileCond(span diag.Span, cond Expr, then *BlockStmt) *WhileCond {
	return &WhileCond{condBase{base: base{span}, Condition: cond, Then: then}}
}
func (*WhileCond) node()             {}
func (n *WhileCond) Accept(v Visitor) { v.VisitWhileCond(n) }

// ForCond is one of three loop shapes: C-style (Initializer, Condition,
// Increment all set), for-each (Initializer is a Variable decl,
// Condition nil, Increment holds the iterable expression), or a bare
// condition loop (Initializer and Increment nil, Condition holds the
// loop's continuation test).
type ForCond struct {
	condBase
	Initializer Decl
	Increment   Expr
}

func NewForCond(span diag.Span, init Decl, cond Expr, inc Expr, then *BlockStmt) *ForCond {
	return &ForCond{
		condBase:    condBase{base: base{span}, Condition: cond, Then: then},
		Initializer: init,
		Increment:   inc,
	}
}
func (*ForCond) node()             {}
func (n *ForCond) Accept(v Visitor) { v.VisitForCond(n) }

// Program is the root node: a span covering the whole file and its
// top-level statements in source order.
type Program struct {
	base
	Statements []Stmt
}

func NewProgram(span diag.Span, statements []Stmt) *Program {
	return &Program{base: base{span}, Statements: statements}
}
func (*Program) node()             {}
func (n *Program) Accept(v Visitor) { v.VisitProgram(n) }
