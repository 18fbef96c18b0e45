package parser

import (
	"testing"

	"github.com/mlang/ml-frontend/internal/access"
	"github.com/mlang/ml-frontend/internal/ast"
	"github.com/mlang/ml-frontend/internal/diag"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, diags := Parse(source, "test.ml")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics parsing %q: %v", source, diags)
	}
	return program
}

func TestParseVariableDecl(t *testing.T) {
	program := mustParse(t, `let x: i32 = 5;`)
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	decl, ok := program.Statements[0].(*ast.VariableDecl)
	if !ok {
		t.Fatalf("expected a VariableDecl, got %T", program.Statements[0])
	}
	if decl.Identifier.Name != "x" {
		t.Fatalf("expected identifier 'x', got %q", decl.Identifier.Name)
	}
	typeID, ok := decl.Type.(*ast.IdentifierExpr)
	if !ok || typeID.Name != "i32" {
		t.Fatalf("expected type 'i32', got %#v", decl.Type)
	}
	lit, ok := decl.Initializer.(*ast.LiteralExpr)
	if !ok || lit.Value != "5" {
		t.Fatalf("expected initializer literal '5', got %#v", decl.Initializer)
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	program := mustParse(t, `let x: i32 = 1 + 2 * 3;`)
	decl := program.Statements[0].(*ast.VariableDecl)
	bin, ok := decl.Initializer.(*ast.BinaryExpr)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected top-level '+', got %#v", decl.Initializer)
	}
	right, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || right.Op != "*" {
		t.Fatalf("expected '*' to bind tighter than '+', got %#v", bin.Right)
	}
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	program := mustParse(t, `x = y = 3;`)
	stmt := program.Statements[0].(*ast.ExpressionStmt)
	outer, ok := stmt.Expression.(*ast.BinaryExpr)
	if !ok || outer.Op != "=" {
		t.Fatalf("expected an assignment expression, got %#v", stmt.Expression)
	}
	if _, ok := outer.Left.(*ast.IdentifierExpr); !ok {
		t.Fatalf("expected left of outer assignment to be an identifier, got %#v", outer.Left)
	}
	inner, ok := outer.Right.(*ast.BinaryExpr)
	if !ok || inner.Op != "=" {
		t.Fatalf("expected the right operand to itself be an assignment, got %#v", outer.Right)
	}
}

func TestParseFunctionDecl(t *testing.T) {
	program := mustParse(t, `fn add(a: i32, b: i32): i32 { return a + b; }`)
	fn, ok := program.Statements[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected a FunctionDecl, got %T", program.Statements[0])
	}
	if fn.Identifier.Name != "add" {
		t.Fatalf("expected function name 'add', got %q", fn.Identifier.Name)
	}
	if len(fn.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Parameters))
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(fn.Body.Statements))
	}
}

func TestParseIfElifElse(t *testing.T) {
	program := mustParse(t, `
		if (a) { x = 1; }
		elif (b) { x = 2; }
		elif (c) { x = 3; }
		else { x = 4; }
	`)
	ifCond, ok := program.Statements[0].(*ast.IfCond)
	if !ok {
		t.Fatalf("expected an IfCond, got %T", program.Statements[0])
	}
	if len(ifCond.ElifBranches) != 2 {
		t.Fatalf("expected 2 elif branches, got %d", len(ifCond.ElifBranches))
	}
	if ifCond.Else == nil {
		t.Fatal("expected an else branch")
	}
}

func TestParseWhileLoop(t *testing.T) {
	program := mustParse(t, `while (x < 10) { x = x + 1; }`)
	if _, ok := program.Statements[0].(*ast.WhileCond); !ok {
		t.Fatalf("expected a WhileCond, got %T", program.Statements[0])
	}
}

func TestParseCStyleForLoop(t *testing.T) {
	program := mustParse(t, `for (let i: i32 = 0; i < 10; i = i + 1) { }`)
	forCond, ok := program.Statements[0].(*ast.ForCond)
	if !ok {
		t.Fatalf("expected a ForCond, got %T", program.Statements[0])
	}
	if forCond.Initializer == nil || forCond.Condition == nil || forCond.Increment == nil {
		t.Fatal("expected a C-style for loop to populate initializer, condition, and increment")
	}
}

func TestParseForEachLoop(t *testing.T) {
	program := mustParse(t, `for (item: i32 in items) { }`)
	forCond, ok := program.Statements[0].(*ast.ForCond)
	if !ok {
		t.Fatalf("expected a ForCond, got %T", program.Statements[0])
	}
	if forCond.Initializer == nil || forCond.Condition != nil || forCond.Increment == nil {
		t.Fatal("expected a for-each loop to populate initializer and increment (iterable) but not condition")
	}
	decl, ok := forCond.Initializer.(*ast.VariableDecl)
	if !ok || decl.Identifier.Name != "item" {
		t.Fatalf("expected the initializer to declare the loop variable 'item', got %#v", forCond.Initializer)
	}
}

func TestParseForRangeLoop(t *testing.T) {
	program := mustParse(t, `for (x < 10) { }`)
	forCond, ok := program.Statements[0].(*ast.ForCond)
	if !ok {
		t.Fatalf("expected a ForCond, got %T", program.Statements[0])
	}
	if forCond.Initializer != nil || forCond.Condition == nil || forCond.Increment != nil {
		t.Fatal("expected a range loop to populate only the condition")
	}
}

func TestParseCStyleForLoopWithOmittedIncrement(t *testing.T) {
	program := mustParse(t, `for (let i: i32 = 0; i < 10;) { }`)
	forCond, ok := program.Statements[0].(*ast.ForCond)
	if !ok {
		t.Fatalf("expected a ForCond, got %T", program.Statements[0])
	}
	if forCond.Initializer == nil || forCond.Condition == nil || forCond.Increment != nil {
		t.Fatal("expected an omitted increment to leave Increment nil")
	}
}

func TestParseClassDecl(t *testing.T) {
	program := mustParse(t, `
		cls Point {
			pub let x: i32;
			pub let y: i32;
			pub fn init(x: i32, y: i32) { }
		}
	`)
	cls, ok := program.Statements[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected a ClassDecl, got %T", program.Statements[0])
	}
	if len(cls.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(cls.Fields))
	}
	if len(cls.Methods) != 1 || cls.Methods[0].Identifier.Name != "init" {
		t.Fatalf("expected a single 'init' method, got %#v", cls.Methods)
	}
}

func TestParseSwitchWithDefault(t *testing.T) {
	program := mustParse(t, `
		switch (x) {
			case 1: { y = 1; }
			default: { y = 0; }
		}
	`)
	sw, ok := program.Statements[0].(*ast.SwitchCond)
	if !ok {
		t.Fatalf("expected a SwitchCond, got %T", program.Statements[0])
	}
	if len(sw.Cases) != 2 {
		t.Fatalf("expected 2 case clauses, got %d", len(sw.Cases))
	}
	if sw.Cases[1].Expr != nil {
		t.Fatal("expected the default arm's Expr to be nil")
	}
}

func TestParseMissingTypeAnnotationRecordsDiagnostic(t *testing.T) {
	_, diags := Parse(`let x = 5;`, "test.ml")
	if len(diags) != 1 || diags[0].Desc != "Missing type annotation" {
		t.Fatalf("expected a missing-type-annotation diagnostic, got %v", diags)
	}
}

func TestParseUnparenthesizedConditionsProduceNoDiagnostics(t *testing.T) {
	_, diags := Parse(`while true { break; continue; }`, "test.ml")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics for an unparenthesized while condition, got %v", diags)
	}
}

func TestParseUnparenthesizedIfElifElse(t *testing.T) {
	program := mustParse(t, `
		if a { x = 1; }
		elif b { x = 2; }
		else { x = 4; }
	`)
	ifCond, ok := program.Statements[0].(*ast.IfCond)
	if !ok {
		t.Fatalf("expected an IfCond, got %T", program.Statements[0])
	}
	if len(ifCond.ElifBranches) != 1 || ifCond.Else == nil {
		t.Fatalf("expected 1 elif branch and an else branch, got %#v", ifCond)
	}
}

func TestParseUnparenthesizedSwitch(t *testing.T) {
	program := mustParse(t, `
		switch x {
			case 1: { y = 1; }
			default: { y = 0; }
		}
	`)
	if _, ok := program.Statements[0].(*ast.SwitchCond); !ok {
		t.Fatalf("expected a SwitchCond, got %T", program.Statements[0])
	}
}

func TestParseMissingColonBeforeTypeIsARecoverableWarning(t *testing.T) {
	program, diags := Parse(`let x i32 = 5;`, "test.ml")
	if len(diags) != 1 || diags[0].Level != diag.Warning {
		t.Fatalf("expected a single warning diagnostic, got %v", diags)
	}
	if diags[0].Desc != "Type annotation missing ':' in variable declaration" {
		t.Fatalf("unexpected diagnostic: %v", diags[0])
	}
	decl := program.Statements[0].(*ast.VariableDecl)
	typeID, ok := decl.Type.(*ast.IdentifierExpr)
	if !ok || typeID.Name != "i32" {
		t.Fatalf("expected the type to still be parsed as 'i32', got %#v", decl.Type)
	}
}

func TestParseNullableVariableDecl(t *testing.T) {
	program := mustParse(t, `let x: i32? = 5;`)
	decl := program.Statements[0].(*ast.VariableDecl)
	if decl.Modifier == nil || !access.HasFlag(decl.Modifier.Modifier, access.Nullable) {
		t.Fatalf("expected the Nullable modifier to be set, got %#v", decl.Modifier)
	}
}

func TestParseNullableFunctionDecl(t *testing.T) {
	program := mustParse(t, `fn find?(a: i32): i32 { return a; }`)
	fn := program.Statements[0].(*ast.FunctionDecl)
	if fn.Modifier == nil || !access.HasFlag(fn.Modifier.Modifier, access.Nullable) {
		t.Fatalf("expected the Nullable modifier to be set, got %#v", fn.Modifier)
	}
}

func TestParseRangeExpressionInForCond(t *testing.T) {
	program := mustParse(t, `for (a..b) { }`)
	forCond, ok := program.Statements[0].(*ast.ForCond)
	if !ok {
		t.Fatalf("expected a ForCond, got %T", program.Statements[0])
	}
	bin, ok := forCond.Condition.(*ast.BinaryExpr)
	if !ok || bin.Op != ".." {
		t.Fatalf("expected a '..' range expression as the condition, got %#v", forCond.Condition)
	}
}

func TestParseAttributeAccessAndMethodCall(t *testing.T) {
	program := mustParse(t, `p.x;`)
	stmt := program.Statements[0].(*ast.ExpressionStmt)
	attr, ok := stmt.Expression.(*ast.AttributeExpr)
	if !ok {
		t.Fatalf("expected an AttributeExpr, got %#v", stmt.Expression)
	}
	if _, ok := attr.Attribute.(*ast.IdentifierExpr); !ok {
		t.Fatalf("expected a field access, got %#v", attr.Attribute)
	}
}
