// Package analyzer implements the semantic pass: it walks a parsed
// program, builds the scope chain, infers expression types, and
// accumulates diagnostics for every undeclared name, arity mismatch,
// and invalid-context statement it finds. Dispatch on node kind is a
// Go type switch throughout rather than any form of runtime casting.
package analyzer

import (
	"fmt"

	"github.com/mlang/ml-frontend/internal/access"
	"github.com/mlang/ml-frontend/internal/ast"
	"github.com/mlang/ml-frontend/internal/bitset"
	"github.com/mlang/ml-frontend/internal/diag"
	"github.com/mlang/ml-frontend/internal/scope"
	"github.com/mlang/ml-frontend/internal/types"
)

// Analyzer walks a Program, threading a current scope pointer that
// Enter/exit push and pop around blocks, functions, loops, classes.
type Analyzer struct {
	file    string
	source  string
	current *scope.Scope
	diags   []diag.Diagnostic
}

// New builds an Analyzer for a single source file. file and source are
// only used to label diagnostics.
func New(file, source string) *Analyzer {
	return &Analyzer{file: file, source: source}
}

// Diagnostics returns every diagnostic accumulated by Analyze.
func (a *Analyzer) Diagnostics() []diag.Diagnostic {
	return a.diags
}

func (a *Analyzer) errorAt(span diag.Span, desc, help string) {
	a.diags = append(a.diags, diag.New(diag.Error, desc, help, span, a.file, a.source))
}

func (a *Analyzer) enterScope(kind scope.Kind) {
	a.current = scope.Enter(a.current, kind)
}

func (a *Analyzer) exitScope() {
	if a.current != nil {
		a.current = a.current.Parent()
	}
}

// Analyze walks the whole program inside a fresh Global scope.
func (a *Analyzer) Analyze(program *ast.Program) {
	a.enterScope(scope.Global)
	for _, stmt := range program.Statements {
		a.analyzeStatement(stmt)
	}
	a.exitScope()
}

// ---- Statement dispatch ----

func (a *Analyzer) analyzeStatement(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VariableDecl:
		a.analyzeVariableDecl(s)
	case *ast.FunctionDecl:
		a.analyzeFunctionDecl(s)
	case *ast.ClassDecl:
		a.analyzeClassDecl(s)
	case *ast.RecordDecl:
		a.analyzeRecordDecl(s)
	case *ast.IfCond:
		a.analyzeIfCond(s)
	case *ast.SwitchCond:
		a.analyzeSwitchCond(s)
	case *ast.WhileCond:
		a.analyzeWhileCond(s)
	case *ast.ForCond:
		a.analyzeForCond(s)
	case *ast.BlockStmt:
		a.analyzeBlock(s)
	case *ast.ExpressionStmt:
		a.analyzeExpressionStmt(s)
	case *ast.ReturnStmt:
		a.analyzeReturnStmt(s)
	case *ast.BreakStmt:
		a.analyzeBreakStmt(s)
	case *ast.ContinueStmt:
		a.analyzeContinueStmt(s)
	case *ast.ModifierStmt:
		a.analyzeModifierStmt(s)
	default:
		a.errorAt(stmt.Span(), "Unknown statement kind", "This statement cannot be analyzed.")
	}
}

// ---- Declarations ----

// declareVariable resolves the declared type and registers the
// variable in the current scope regardless of whether resolution
// succeeded — an unresolved type still occupies the name (as
// types.NoneTy) so downstream references and the initializer check
// still run, rather than silently dropping the declaration.
func (a *Analyzer) declareVariable(id *ast.IdentifierExpr, typeExpr ast.Expr, mod *ast.ModifierStmt) (types.Var, bool) {
	dataType, ok := a.resolveTypeExpr(typeExpr)
	if !ok {
		dataType = types.NoneTy
	}
	v := types.NewVar(id.Name, dataType)
	if mod != nil {
		v.Accessor = mod.Accessor
		v.Modifier = mod.Modifier
	}
	a.current.AddVariable(v)
	return a.current.GetVariable(id.Name)
}

func (a *Analyzer) declareFunction(fn *ast.FunctionDecl) (types.Func, bool) {
	returnType := types.VoidTy
	if fn.Type != nil {
		rt, ok := a.resolveTypeExpr(fn.Type)
		if !ok {
			return types.Func{}, false
		}
		returnType = rt
	}
	params := make([]types.Var, 0, len(fn.Parameters))
	for _, p := range fn.Parameters {
		dataType, ok := a.resolveTypeExpr(p.Type)
		if !ok {
			continue
		}
		params = append(params, types.NewVar(p.Identifier.Name, dataType))
	}
	f := types.NewFunc(fn.Identifier.Name, returnType, params)
	if fn.Modifier != nil {
		f.Accessor = fn.Modifier.Accessor
		f.Modifier = fn.Modifier.Modifier
	}
	a.current.AddFunction(f)
	return a.current.GetFunction(fn.Identifier.Name)
}

func (a *Analyzer) declareRecord(rec *ast.RecordDecl) (types.Record, bool) {
	fields := make([]types.Var, 0, len(rec.Fields))
	for _, fld := range rec.Fields {
		dataType, ok := a.resolveTypeExpr(fld.Type)
		if !ok {
			continue
		}
		v := types.NewVar(fld.Identifier.Name, dataType)
		if fld.Modifier != nil {
			v.Accessor = fld.Modifier.Accessor
			v.Modifier = fld.Modifier.Modifier
		}
		fields = append(fields, v)
	}
	r := types.NewRecord(rec.Identifier.Name, fields)
	a.current.AddRecord(r)
	return a.current.GetRecord(rec.Identifier.Name)
}

func (a *Analyzer) declareClass(cls *ast.ClassDecl) (types.Class, bool) {
	fields := make([]types.Var, 0, len(cls.Fields))
	for _, fld := range cls.Fields {
		dataType, ok := a.resolveTypeExpr(fld.Type)
		if !ok {
			continue
		}
		v := types.NewVar(fld.Identifier.Name, dataType)
		if fld.Modifier != nil {
			v.Accessor = fld.Modifier.Accessor
			v.Modifier = fld.Modifier.Modifier
		}
		fields = append(fields, v)
	}
	methods := make([]types.Func, 0, len(cls.Methods))
	for _, m := range cls.Methods {
		returnType := types.VoidTy
		if m.Type != nil {
			if rt, ok := a.resolveTypeExpr(m.Type); ok {
				returnType = rt
			}
		}
		params := make([]types.Var, 0, len(m.Parameters))
		for _, p := range m.Parameters {
			if dataType, ok := a.resolveTypeExpr(p.Type); ok {
				params = append(params, types.NewVar(p.Identifier.Name, dataType))
			}
		}
		mf := types.NewFunc(m.Identifier.Name, returnType, params)
		if m.Modifier != nil {
			mf.Accessor = m.Modifier.Accessor
			mf.Modifier = m.Modifier.Modifier
		}
		methods = append(methods, mf)
	}
	c := types.NewClass(cls.Identifier.Name, fields, methods)
	a.current.AddClass(c)
	return a.current.GetClass(cls.Identifier.Name)
}

// resolveTypeExpr turns a type-position expression (Identifier or
// ArrayIdentifier) into a Type, reporting an "Invalid type" diagnostic
// if it doesn't resolve.
func (a *Analyzer) resolveTypeExpr(expr ast.Expr) (types.Type, bool) {
	if expr == nil {
		return types.VoidTy, true
	}
	switch e := expr.(type) {
	case *ast.IdentifierExpr:
		if t, ok := a.current.GetType(e.Name); ok {
			return t, true
		}
		a.errorAt(e.Span(), fmt.Sprintf("Invalid type '%s'", e.Name),
			"Use a primitive type, or a class/record declared earlier.")
		return types.Type{}, false
	case *ast.ArrayIdentifierExpr:
		elem, ok := a.current.GetType(e.Name)
		if !ok {
			a.errorAt(e.Span(), fmt.Sprintf("Invalid type '%s'", e.Name),
				"Use a primitive type, or a class/record declared earlier.")
			return types.Type{}, false
		}
		return types.Type{Kind: types.Array, Name: "array" + elem.Name}, true
	default:
		a.errorAt(expr.Span(), "Invalid type expression", "Use a type name here.")
		return types.Type{}, false
	}
}

// ---- Statement analysis ----

func (a *Analyzer) analyzeVariableDecl(decl *ast.VariableDecl) {
	v, ok := a.declareVariable(decl.Identifier, decl.Type, decl.Modifier)
	if !ok || decl.Initializer == nil {
		return
	}
	initType, ok := a.inferExpr(decl.Initializer)
	if !ok {
		return
	}
	// An integer literal is typed i64 but may initialize any integer
	// slot; every other initializer follows CanAssign's widening rule.
	if lit, isLit := decl.Initializer.(*ast.LiteralExpr); isLit && lit.Kind == ast.LiteralInteger && v.DataType.IsInteger() {
		return
	}
	if !types.CanAssign(v.DataType, initType) {
		a.errorAt(decl.Initializer.Span(),
			"Type mismatch in variable initializer",
			fmt.Sprintf("Cannot assign '%s' to variable of type '%s'; change one so they agree.", initType.Name, v.DataType.Name))
	}
}

func (a *Analyzer) analyzeFunctionDecl(fn *ast.FunctionDecl) {
	if _, ok := a.declareFunction(fn); !ok {
		return
	}
	a.enterScope(scope.Function)
	for _, p := range fn.Parameters {
		a.declareVariable(p.Identifier, p.Type, p.Modifier)
	}
	if fn.Body != nil {
		for _, s := range fn.Body.Statements {
			a.analyzeStatement(s)
		}
	}
	a.exitScope()
}

func (a *Analyzer) analyzeClassDecl(cls *ast.ClassDecl) {
	if _, ok := a.declareClass(cls); !ok {
		return
	}
	a.enterScope(scope.Class)
	for _, m := range cls.Methods {
		a.analyzeFunctionDecl(m)
	}
	a.exitScope()
}

func (a *Analyzer) analyzeRecordDecl(rec *ast.RecordDecl) {
	a.declareRecord(rec)
}

func (a *Analyzer) analyzeBlock(block *ast.BlockStmt) {
	a.enterScope(scope.Block)
	for _, s := range block.Statements {
		a.analyzeStatement(s)
	}
	a.exitScope()
}

func (a *Analyzer) analyzeExpressionStmt(stmt *ast.ExpressionStmt) {
	if _, ok := a.inferExpr(stmt.Expression); !ok {
		a.errorAt(stmt.Expression.Span(), "Invalid expression statement",
			"This expression cannot be evaluated.")
	}
}

func (a *Analyzer) analyzeIfCond(cond *ast.IfCond) {
	a.checkCondition(cond.Condition)
	if cond.Then != nil {
		a.analyzeBlock(cond.Then)
	}
	for _, elif := range cond.ElifBranches {
		a.analyzeIfCond(elif)
	}
	if cond.Else != nil {
		a.analyzeBlock(cond.Else)
	}
}

// analyzeSwitchCond infers the scrutinee's type but never checks each
// case expression against it — a known gap, preserved rather than
// silently fixed.
func (a *Analyzer) analyzeSwitchCond(sw *ast.SwitchCond) {
	a.inferExpr(sw.SwitchExpr)
	for _, c := range sw.Cases {
		if c.Expr != nil {
			a.inferExpr(c.Expr)
		}
		if c.Body != nil {
			a.analyzeBlock(c.Body)
		}
	}
}

func (a *Analyzer) analyzeWhileCond(w *ast.WhileCond) {
	a.enterScope(scope.Loop)
	a.checkCondition(w.Condition)
	if w.Then != nil {
		for _, s := range w.Then.Statements {
			a.analyzeStatement(s)
		}
	}
	a.exitScope()
}

func (a *Analyzer) analyzeForCond(f *ast.ForCond) {
	a.enterScope(scope.Loop)
	if f.Initializer != nil {
		a.analyzeStatement(f.Initializer)
	}
	if f.Condition != nil {
		a.checkCondition(f.Condition)
	}
	if f.Increment != nil {
		if _, ok := a.inferExpr(f.Increment); !ok {
			a.errorAt(f.Increment.Span(), "Invalid loop increment or iterable",
				"This expression cannot be evaluated.")
		}
	}
	if f.Then != nil {
		for _, s := range f.Then.Statements {
			a.analyzeStatement(s)
		}
	}
	a.exitScope()
}

func (a *Analyzer) checkCondition(cond ast.Expr) {
	t, ok := a.inferExpr(cond)
	if !ok {
		a.errorAt(cond.Span(), "Invalid condition", "This expression cannot be evaluated.")
		return
	}
	if !t.IsTruthy() {
		a.errorAt(cond.Span(), fmt.Sprintf("Type '%s' cannot be used as a condition", t.Name),
			"Use an expression whose type is not void, null, or none.")
	}
}

func (a *Analyzer) analyzeReturnStmt(ret *ast.ReturnStmt) {
	if !bitset.HasFlag(a.current.Kind, scope.Function) {
		a.errorAt(ret.Span(), "Return statement not within a function scope.", "Move this return inside a function body.")
		return
	}
	if ret.Expression != nil {
		a.inferExpr(ret.Expression)
	}
}

func (a *Analyzer) analyzeBreakStmt(brk *ast.BreakStmt) {
	if !bitset.HasFlag(a.current.Kind, scope.Loop) {
		a.errorAt(brk.Span(), "Break statement not within a loop scope.", "Move this break inside a loop body.")
	}
}

func (a *Analyzer) analyzeContinueStmt(cont *ast.ContinueStmt) {
	if !bitset.HasFlag(a.current.Kind, scope.Loop) {
		a.errorAt(cont.Span(), "Continue statement not within a loop scope.", "Move this continue inside a loop body.")
	}
}

func (a *Analyzer) analyzeModifierStmt(mod *ast.ModifierStmt) {
	if !bitset.HasFlag(a.current.Kind, scope.Class) {
		a.errorAt(mod.Span(), "Accessor/modifier statement outside a class",
			"Bare accessor and modifier statements are only legal inside a class body.")
	}
}

// ---- Expression inference ----

func (a *Analyzer) inferExpr(expr ast.Expr) (types.Type, bool) {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		return a.inferBinary(e)
	case *ast.UnaryExpr:
		return a.inferUnary(e)
	case *ast.LiteralExpr:
		return a.inferLiteral(e)
	case *ast.IdentifierExpr:
		return a.inferIdentifier(e)
	case *ast.ArrayIdentifierExpr:
		return a.inferArrayIdentifier(e)
	case *ast.IndexExpr:
		return a.inferIndex(e)
	case *ast.ArrayExpr:
		return a.inferArray(e)
	case *ast.CallExpr:
		return a.inferCall(e)
	case *ast.AttributeExpr:
		return a.inferAttribute(e)
	default:
		return types.Type{}, false
	}
}

func (a *Analyzer) inferBinary(bin *ast.BinaryExpr) (types.Type, bool) {
	left, ok := a.inferExpr(bin.Left)
	if !ok {
		return types.Type{}, false
	}
	right, ok := a.inferExpr(bin.Right)
	if !ok {
		return types.Type{}, false
	}
	result := types.Promote(left, right)
	if !result.IsValid() {
		a.errorAt(bin.Span(),
			fmt.Sprintf("No common type between '%s' and '%s'", left.Name, right.Name),
			"Convert one side so both operands share a compatible type.")
		return types.Type{}, false
	}
	return result, true
}

func (a *Analyzer) inferUnary(un *ast.UnaryExpr) (types.Type, bool) {
	return a.inferExpr(un.Operand)
}

func (a *Analyzer) inferLiteral(lit *ast.LiteralExpr) (types.Type, bool) {
	switch lit.Kind {
	case ast.LiteralInteger:
		return types.I64Ty, true
	case ast.LiteralFloat:
		return types.F64Ty, true
	case ast.LiteralString:
		return types.StringTy, true
	case ast.LiteralCharacter:
		return types.CharTy, true
	case ast.LiteralBoolean:
		return types.BoolTy, true
	case ast.LiteralNull:
		return types.NullTy, true
	default:
		return types.Type{}, false
	}
}

func (a *Analyzer) inferIdentifier(id *ast.IdentifierExpr) (types.Type, bool) {
	if v, ok := a.current.GetVariable(id.Name); ok {
		return v.DataType, true
	}
	if f, ok := a.current.GetFunction(id.Name); ok {
		return f.Type, true
	}
	if c, ok := a.current.GetClass(id.Name); ok {
		return c.Type, true
	}
	if r, ok := a.current.GetRecord(id.Name); ok {
		return r.Type, true
	}
	if t, ok := a.current.GetType(id.Name); ok {
		return t, true
	}
	a.errorAt(id.Span(), fmt.Sprintf("Undeclared identifier '%s'", id.Name),
		"Declare this name before using it, or check for a typo.")
	return types.Type{}, false
}

func (a *Analyzer) inferArrayIdentifier(id *ast.ArrayIdentifierExpr) (types.Type, bool) {
	elem, ok := a.current.GetType(id.Name)
	if !ok {
		a.errorAt(id.Span(), fmt.Sprintf("Undeclared identifier '%s'", id.Name),
			"Declare this name before using it, or check for a typo.")
		return types.Type{}, false
	}
	return types.Type{Kind: types.Array, Name: "array" + elem.Name}, true
}

// inferIndex returns the array's own type rather than its element
// type — a known conservative placeholder, left unfixed rather than
// guessed at.
func (a *Analyzer) inferIndex(idx *ast.IndexExpr) (types.Type, bool) {
	arrType, ok := a.inferExpr(idx.Array)
	if !ok {
		return types.Type{}, false
	}
	if arrType.Kind != types.Array {
		a.errorAt(idx.Array.Span(), fmt.Sprintf("Cannot index into '%s'", arrType.Name),
			"Only array values can be indexed.")
		return types.Type{}, false
	}
	indexType, ok := a.inferExpr(idx.Index)
	if !ok {
		return types.Type{}, false
	}
	if !indexType.IsInteger() {
		a.errorAt(idx.Index.Span(), fmt.Sprintf("Array index must be an integer, found '%s'", indexType.Name),
			"Use an integer expression as the index.")
		return types.Type{}, false
	}
	return arrType, true
}

func (a *Analyzer) inferArray(arr *ast.ArrayExpr) (types.Type, bool) {
	if len(arr.Elements) == 0 {
		return types.Type{Kind: types.Array, Name: "array" + types.NullTy.Name}, true
	}
	first, ok := a.inferExpr(arr.Elements[0])
	if !ok {
		return types.Type{}, false
	}
	for _, el := range arr.Elements[1:] {
		a.inferExpr(el)
	}
	return types.Type{Kind: types.Array, Name: "array" + first.Name}, true
}

func (a *Analyzer) inferCall(call *ast.CallExpr) (types.Type, bool) {
	name, ok := calleeName(call.Callee)
	if !ok {
		a.errorAt(call.Callee.Span(), "Invalid call target", "Only a plain name can be called.")
		return types.Type{}, false
	}

	argTypes := make([]types.Type, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		t, ok := a.inferExpr(arg)
		if !ok {
			return types.Type{}, false
		}
		argTypes = append(argTypes, t)
	}

	if fn, ok := a.current.GetFunction(name); ok {
		if !fn.IsValidArguments(argTypes) {
			a.errorAt(call.Span(), fmt.Sprintf("Invalid arguments to '%s'", name),
				"Check the number and types of the arguments against the function's declaration.")
			return types.Type{}, false
		}
		return fn.ReturnType, true
	}

	if cls, ok := a.current.GetClass(name); ok {
		init, ok := cls.GetMethod("init", access.Public)
		if !ok {
			a.errorAt(call.Span(), fmt.Sprintf("Class '%s' has no accessible constructor", name),
				"Declare a public 'init' method on this class.")
			return types.Type{}, false
		}
		if !init.IsValidArguments(argTypes) {
			a.errorAt(call.Span(), fmt.Sprintf("Invalid arguments to '%s.init'", name),
				"Check the number and types of the arguments against the constructor's declaration.")
			return types.Type{}, false
		}
		return cls.Type, true
	}

	a.errorAt(call.Span(), fmt.Sprintf("'%s' is not a function or class", name),
		"Declare a function or class with this name before calling it.")
	return types.Type{}, false
}

func calleeName(expr ast.Expr) (string, bool) {
	if id, ok := expr.(*ast.IdentifierExpr); ok {
		return id.Name, true
	}
	return "", false
}

func (a *Analyzer) inferAttribute(attr *ast.AttributeExpr) (types.Type, bool) {
	objType, ok := a.inferExpr(attr.Object)
	if !ok {
		return types.Type{}, false
	}

	switch member := attr.Attribute.(type) {
	case *ast.IdentifierExpr:
		return a.inferAttributeField(objType, member)
	case *ast.CallExpr:
		return a.inferAttributeCall(objType, member)
	default:
		a.errorAt(attr.Attribute.Span(), "Invalid attribute", "Use a field name or a method call here.")
		return types.Type{}, false
	}
}

func (a *Analyzer) inferAttributeField(objType types.Type, field *ast.IdentifierExpr) (types.Type, bool) {
	if objType.Kind == types.ClassKind {
		if cls, ok := a.current.GetClass(objType.Name); ok {
			if f, ok := cls.GetField(field.Name, access.Public); ok {
				return f.DataType, true
			}
		}
	}
	if objType.Kind == types.RecordKind {
		if rec, ok := a.current.GetRecord(objType.Name); ok {
			if f, ok := rec.GetField(field.Name, access.Public); ok {
				return f.DataType, true
			}
		}
	}
	a.errorAt(field.Span(), fmt.Sprintf("No accessible field '%s' on '%s'", field.Name, objType.Name),
		"Check the field name and its accessor.")
	return types.Type{}, false
}

func (a *Analyzer) inferAttributeCall(objType types.Type, call *ast.CallExpr) (types.Type, bool) {
	name, ok := calleeName(call.Callee)
	if !ok {
		a.errorAt(call.Callee.Span(), "Invalid method name", "Only a plain name can be called.")
		return types.Type{}, false
	}
	if objType.Kind != types.ClassKind {
		a.errorAt(call.Span(), fmt.Sprintf("'%s' has no methods", objType.Name),
			"Only class instances have methods.")
		return types.Type{}, false
	}
	cls, ok := a.current.GetClass(objType.Name)
	if !ok {
		return types.Type{}, false
	}
	method, ok := cls.GetMethod(name, access.Public)
	if !ok {
		a.errorAt(call.Span(), fmt.Sprintf("No accessible method '%s' on '%s'", name, objType.Name),
			"Check the method name and its accessor.")
		return types.Type{}, false
	}
	argTypes := make([]types.Type, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		t, ok := a.inferExpr(arg)
		if !ok {
			return types.Type{}, false
		}
		argTypes = append(argTypes, t)
	}
	if !method.IsValidArguments(argTypes) {
		a.errorAt(call.Span(), fmt.Sprintf("Invalid arguments to '%s.%s'", objType.Name, name),
			"Check the number and types of the arguments against the method's declaration.")
		return types.Type{}, false
	}
	return method.ReturnType, true
}
