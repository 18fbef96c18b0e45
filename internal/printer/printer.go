// Package printer is a minimal debug consumer of the AST: an indented
// recursive walker (text mode) and a JSON tree dump (--json mode),
// invoked by the compiler driver only when Config.Debug is set.
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mlang/ml-frontend/internal/ast"
)

// Print writes an indented tree representation of program to w.
func Print(w io.Writer, program *ast.Program) {
	p := &textPrinter{w: w}
	p.printNode(program, 0)
}

type textPrinter struct {
	w io.Writer
}

func (p *textPrinter) line(depth int, format string, args ...any) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

// printNode dispatches on the node's dynamic type and prints one
// labeled line per node, recursing into children at depth+1. A plain
// type switch is simpler here than routing through ast.Visitor.
func (p *textPrinter) printNode(n ast.Node, depth int) {
	switch node := n.(type) {
	case *ast.Program:
		p.line(depth, "Program")
		for _, s := range node.Statements {
			p.printNode(s, depth+1)
		}
	case *ast.BinaryExpr:
		p.line(depth, "Binary %q", node.Op)
		p.printNode(node.Left, depth+1)
		p.printNode(node.Right, depth+1)
	case *ast.UnaryExpr:
		p.line(depth, "Unary %q prefix=%v", node.Op, node.Prefix)
		p.printNode(node.Operand, depth+1)
	case *ast.LiteralExpr:
		p.line(depth, "Literal %v %q", node.Kind, node.Value)
	case *ast.IdentifierExpr:
		p.line(depth, "Identifier %q", node.Name)
	case *ast.ArrayIdentifierExpr:
		p.line(depth, "ArrayIdentifier %q", node.Name)
		if node.Size != nil {
			p.printNode(node.Size, depth+1)
		}
	case *ast.IndexExpr:
		p.line(depth, "Index")
		p.printNode(node.Array, depth+1)
		p.printNode(node.Index, depth+1)
	case *ast.ArrayExpr:
		p.line(depth, "Array")
		for _, e := range node.Elements {
			p.printNode(e, depth+1)
		}
	case *ast.CallExpr:
		p.line(depth, "Call")
		p.printNode(node.Callee, depth+1)
		for _, a := range node.Arguments {
			p.printNode(a, depth+1)
		}
	case *ast.AttributeExpr:
		p.line(depth, "Attribute")
		p.printNode(node.Object, depth+1)
		p.printNode(node.Attribute, depth+1)

	case *ast.ReturnStmt:
		p.line(depth, "Return")
		if node.Expression != nil {
			p.printNode(node.Expression, depth+1)
		}
	case *ast.BreakStmt:
		p.line(depth, "Break")
	case *ast.ContinueStmt:
		p.line(depth, "Continue")
	case *ast.ExpressionStmt:
		p.line(depth, "ExpressionStmt")
		p.printNode(node.Expression, depth+1)
	case *ast.BlockStmt:
		p.line(depth, "Block")
		for _, s := range node.Statements {
			p.printNode(s, depth+1)
		}
	case *ast.ModifierStmt:
		p.line(depth, "Modifier accessor=%s modifier=%d", node.Accessor, node.Modifier)

	case *ast.VariableDecl:
		p.line(depth, "VariableDecl %q", node.Identifier.Name)
		if node.Type != nil {
			p.printNode(node.Type, depth+1)
		}
		if node.Initializer != nil {
			p.printNode(node.Initializer, depth+1)
		}
	case *ast.FunctionDecl:
		p.line(depth, "FunctionDecl %q", node.Identifier.Name)
		for _, param := range node.Parameters {
			p.printNode(param, depth+1)
		}
		p.printNode(node.Body, depth+1)
	case *ast.RecordDecl:
		p.line(depth, "RecordDecl %q", node.Identifier.Name)
		for _, f := range node.Fields {
			p.printNode(f, depth+1)
		}
	case *ast.ClassDecl:
		p.line(depth, "ClassDecl %q", node.Identifier.Name)
		for _, f := range node.Fields {
			p.printNode(f, depth+1)
		}
		for _, m := range node.Methods {
			p.printNode(m, depth+1)
		}

	case *ast.IfCond:
		p.line(depth, "If")
		p.printNode(node.Condition, depth+1)
		p.printNode(node.Then, depth+1)
		for _, elif := range node.ElifBranches {
			p.printNode(elif, depth+1)
		}
		if node.Else != nil {
			p.printNode(node.Else, depth+1)
		}
	case *ast.CaseClause:
		p.line(depth, "Case")
		if node.Expr != nil {
			p.printNode(node.Expr, depth+1)
		}
		p.printNode(node.Body, depth+1)
	case *ast.SwitchCond:
		p.line(depth, "Switch")
		p.printNode(node.SwitchExpr, depth+1)
		for _, c := range node.Cases {
			p.printNode(c, depth+1)
		}
	case *ast.WhileCond:
		p.line(depth, "While")
		p.printNode(node.Condition, depth+1)
		p.printNode(node.Then, depth+1)
	case *ast.ForCond:
		p.line(depth, "For")
		if node.Initializer != nil {
			p.printNode(node.Initializer, depth+1)
		}
		if node.Condition != nil {
			p.printNode(node.Condition, depth+1)
		}
		if node.Increment != nil {
			p.printNode(node.Increment, depth+1)
		}
		p.printNode(node.Then, depth+1)

	default:
		p.line(depth, "<unknown node %T>", node)
	}
}

// jsonNode is the machine-readable shape PrintJSON emits: a tag plus
// whatever fields and children apply to that node kind.
type jsonNode struct {
	Kind     string      `json:"kind"`
	Text     string      `json:"text,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

// PrintJSON writes program as a JSON tree to w, one object per node.
func PrintJSON(w io.Writer, program *ast.Program) error {
	tree := toJSON(program)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tree)
}

func toJSON(n ast.Node) *jsonNode {
	switch node := n.(type) {
	case *ast.Program:
		return &jsonNode{Kind: "Program", Children: toJSONAll(stmtsToNodes(node.Statements))}
	case *ast.BinaryExpr:
		return &jsonNode{Kind: "Binary", Text: node.Op, Children: []*jsonNode{toJSON(node.Left), toJSON(node.Right)}}
	case *ast.UnaryExpr:
		return &jsonNode{Kind: "Unary", Text: node.Op, Children: []*jsonNode{toJSON(node.Operand)}}
	case *ast.LiteralExpr:
		return &jsonNode{Kind: "Literal", Text: node.Value}
	case *ast.IdentifierExpr:
		return &jsonNode{Kind: "Identifier", Text: node.Name}
	case *ast.ArrayIdentifierExpr:
		n := &jsonNode{Kind: "ArrayIdentifier", Text: node.Name}
		if node.Size != nil {
			n.Children = []*jsonNode{toJSON(node.Size)}
		}
		return n
	case *ast.IndexExpr:
		return &jsonNode{Kind: "Index", Children: []*jsonNode{toJSON(node.Array), toJSON(node.Index)}}
	case *ast.ArrayExpr:
		return &jsonNode{Kind: "Array", Children: toJSONAll(exprsToNodes(node.Elements))}
	case *ast.CallExpr:
		children := []*jsonNode{toJSON(node.Callee)}
		children = append(children, toJSONAll(exprsToNodes(node.Arguments))...)
		return &jsonNode{Kind: "Call", Children: children}
	case *ast.AttributeExpr:
		return &jsonNode{Kind: "Attribute", Children: []*jsonNode{toJSON(node.Object), toJSON(node.Attribute)}}
	case *ast.ReturnStmt:
		var children []*jsonNode
		if node.Expression != nil {
			children = []*jsonNode{toJSON(node.Expression)}
		}
		return &jsonNode{Kind: "Return", Children: children}
	case *ast.BreakStmt:
		return &jsonNode{Kind: "Break"}
	case *ast.ContinueStmt:
		return &jsonNode{Kind: "Continue"}
	case *ast.ExpressionStmt:
		return &jsonNode{Kind: "ExpressionStmt", Children: []*jsonNode{toJSON(node.Expression)}}
	case *ast.BlockStmt:
		return &jsonNode{Kind: "Block", Children: toJSONAll(stmtsToNodes(node.Statements))}
	case *ast.ModifierStmt:
		return &jsonNode{Kind: "Modifier", Text: fmt.Sprintf("%s/%d", node.Accessor, node.Modifier)}
	case *ast.VariableDecl:
		n := &jsonNode{Kind: "VariableDecl", Text: node.Identifier.Name}
		if node.Initializer != nil {
			n.Children = []*jsonNode{toJSON(node.Initializer)}
		}
		return n
	case *ast.FunctionDecl:
		children := toJSONAll(varDeclsToNodes(node.Parameters))
		children = append(children, toJSON(node.Body))
		return &jsonNode{Kind: "FunctionDecl", Text: node.Identifier.Name, Children: children}
	case *ast.RecordDecl:
		return &jsonNode{Kind: "RecordDecl", Text: node.Identifier.Name, Children: toJSONAll(varDeclsToNodes(node.Fields))}
	case *ast.ClassDecl:
		children := toJSONAll(varDeclsToNodes(node.Fields))
		children = append(children, toJSONAll(funcDeclsToNodes(node.Methods))...)
		return &jsonNode{Kind: "ClassDecl", Text: node.Identifier.Name, Children: children}
	case *ast.IfCond:
		children := []*jsonNode{toJSON(node.Condition), toJSON(node.Then)}
		for _, elif := range node.ElifBranches {
			children = append(children, toJSON(elif))
		}
		if node.Else != nil {
			children = append(children, toJSON(node.Else))
		}
		return &jsonNode{Kind: "If", Children: children}
	case *ast.CaseClause:
		var children []*jsonNode
		if node.Expr != nil {
			children = append(children, toJSON(node.Expr))
		}
		children = append(children, toJSON(node.Body))
		return &jsonNode{Kind: "Case", Children: children}
	case *ast.SwitchCond:
		children := []*jsonNode{toJSON(node.SwitchExpr)}
		for _, c := range node.Cases {
			children = append(children, toJSON(c))
		}
		return &jsonNode{Kind: "Switch", Children: children}
	case *ast.WhileCond:
		return &jsonNode{Kind: "While", Children: []*jsonNode{toJSON(node.Condition), toJSON(node.Then)}}
	case *ast.ForCond:
		var children []*jsonNode
		if node.Initializer != nil {
			children = append(children, toJSON(node.Initializer))
		}
		if node.Condition != nil {
			children = append(children, toJSON(node.Condition))
		}
		if node.Increment != nil {
			children = append(children, toJSON(node.Increment))
		}
		children = append(children, toJSON(node.Then))
		return &jsonNode{Kind: "For", Children: children}
	default:
		return &jsonNode{Kind: fmt.Sprintf("%T", node)}
	}
}

func toJSONAll(nodes []ast.Node) []*jsonNode {
	out := make([]*jsonNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, toJSON(n))
	}
	return out
}

func stmtsToNodes(stmts []ast.Stmt) []ast.Node {
	out := make([]ast.Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}

func exprsToNodes(exprs []ast.Expr) []ast.Node {
	out := make([]ast.Node, len(exprs))
	for i, e := range exprs {
		out[i] = e
	}
	return out
}

func varDeclsToNodes(decls []*ast.VariableDecl) []ast.Node {
	out := make([]ast.Node, len(decls))
	for i, d := range decls {
		out[i] = d
	}
	return out
}

func funcDeclsToNodes(decls []*ast.FunctionDecl) []ast.Node {
	out := make([]ast.Node, len(decls))
	for i, d := range decls {
		out[i] = d
	}
	return out
}
