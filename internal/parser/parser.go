// Package parser turns a token stream into an AST. It is a recursive-
// descent parser with Pratt-style precedence climbing for expressions:
// ten expression precedence levels (assignment, right-associative,
// down to primary), declarations for variables/functions/classes/
// records, and conditionals for if/elif/else, switch, while, and the
// three shapes of for. Like the lexer, the parser never aborts on a
// malformed construct — it records a diagnostic and resynchronizes so
// the rest of the file still gets parsed.
package parser

import (
	"fmt"

	"github.com/mlang/ml-frontend/internal/access"
	"github.com/mlang/ml-frontend/internal/ast"
	"github.com/mlang/ml-frontend/internal/diag"
	"github.com/mlang/ml-frontend/internal/lexer"
)

// Parser consumes a fixed token slice produced by the lexer.
type Parser struct {
	file   string
	source string
	tokens []lexer.Token
	pos    int
	diags  []diag.Diagnostic
}

// New builds a Parser over source, lexing it eagerly and carrying
// forward any lexer diagnostics.
func New(source, file string) *Parser {
	tokens, lexDiags := lexer.Lex(source, file)
	return &Parser{
		file:   file,
		source: source,
		tokens: tokens,
		diags:  lexDiags,
	}
}

// Diagnostics returns every diagnostic accumulated by lexing and
// parsing, in the order they were produced.
func (p *Parser) Diagnostics() []diag.Diagnostic {
	return p.diags
}

// ---- token primitives ----

func (p *Parser) look(offset int) lexer.Token {
	idx := p.pos + offset
	if idx < 0 {
		return p.tokens[0]
	}
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) peek() lexer.Token { return p.look(0) }

func (p *Parser) isEof() bool { return p.peek().Kind == lexer.Eof }

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if !p.isEof() {
		p.pos++
	}
	return tok
}

func (p *Parser) checkKind(kind lexer.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) checkLexeme(kind lexer.Kind, lexeme string) bool {
	tok := p.peek()
	return tok.Kind == kind && tok.Lexeme == lexeme
}

func (p *Parser) checkKeyword(kw string) bool {
	return p.checkLexeme(lexer.Keyword, kw)
}

func (p *Parser) checkOperator(op string) bool {
	return p.checkLexeme(lexer.Operator, op)
}

func (p *Parser) checkDelimiter(d string) bool {
	return p.checkLexeme(lexer.Delimiter, d)
}

func (p *Parser) matchKeyword(kw string) bool {
	if p.checkKeyword(kw) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchOperator(op string) bool {
	if p.checkOperator(op) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchDelimiter(d string) bool {
	if p.checkDelimiter(d) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) errorAt(span diag.Span, desc, help string) {
	p.diags = append(p.diags, diag.New(diag.Error, desc, help, span, p.file, p.source))
}

func (p *Parser) errorHere(desc, help string) {
	p.errorAt(p.peek().Span, desc, help)
}

func (p *Parser) warnAt(span diag.Span, desc, help string) {
	p.diags = append(p.diags, diag.New(diag.Warning, desc, help, span, p.file, p.source))
}

// expectDelimiter consumes d if present, else records a diagnostic and
// leaves the cursor in place so the caller's own resync logic decides
// how to recover.
func (p *Parser) expectDelimiter(d, context string) bool {
	if p.matchDelimiter(d) {
		return true
	}
	p.errorHere(fmt.Sprintf("Expected '%s' %s", d, context),
		fmt.Sprintf("Insert '%s' here.", d))
	return false
}

// expectKeyword consumes kw if present, else records a diagnostic and
// leaves the cursor in place, matching expectDelimiter's recovery.
func (p *Parser) expectKeyword(kw, context string) bool {
	if p.matchKeyword(kw) {
		return true
	}
	p.errorHere(fmt.Sprintf("Expected '%s' %s", kw, context),
		fmt.Sprintf("Insert '%s' here.", kw))
	return false
}

func (p *Parser) expectIdentifier(context string) *ast.IdentifierExpr {
	tok := p.peek()
	if tok.Kind != lexer.Identifier {
		p.errorHere(fmt.Sprintf("Expected an identifier %s", context),
			"Use a plain name here.")
		return ast.NewIdentifierExpr(tok.Span, "")
	}
	p.advance()
	return ast.NewIdentifierExpr(tok.Span, tok.Lexeme)
}

// synchronize advances until a statement boundary (';', '}', or a
// keyword that starts a new statement) so a malformed construct
// doesn't cascade into an unbounded run of diagnostics.
func (p *Parser) synchronize() {
	for !p.isEof() {
		if p.checkDelimiter(";") {
			p.advance()
			return
		}
		if p.checkDelimiter("}") {
			return
		}
		switch p.peek().Lexeme {
		case "let", "fn", "cls", "rec", "if", "switch", "while", "for", "return", "break", "continue":
			if p.peek().Kind == lexer.Keyword {
				return
			}
		}
		p.advance()
	}
}

// Parse consumes the whole token stream and returns the Program node.
func Parse(source, file string) (*ast.Program, []diag.Diagnostic) {
	p := New(source, file)
	return p.ParseProgram(), p.Diagnostics()
}

// ParseProgram parses every top-level statement until Eof.
func (p *Parser) ParseProgram() *ast.Program {
	start := p.peek().Span.Start
	var stmts []ast.Stmt
	for !p.isEof() {
		stmts = append(stmts, p.parseStatement())
	}
	end := p.look(-1).Span.End
	if len(p.tokens) > 0 {
		end = p.tokens[len(p.tokens)-1].Span.End
	}
	return ast.NewProgram(diag.NewSpan(start, end), stmts)
}

// ---- statements ----

func (p *Parser) parseStatement() ast.Stmt {
	tok := p.peek()

	if tok.Kind == lexer.Keyword {
		switch tok.Lexeme {
		case "let":
			return p.parseVariableDecl(nil)
		case "fn":
			return p.parseFunctionDecl(nil)
		case "cls":
			return p.parseClassDecl(nil)
		case "rec":
			return p.parseRecordDecl(nil)
		case "if":
			return p.parseIfCond()
		case "switch":
			return p.parseSwitchCond()
		case "while":
			return p.parseWhileCond()
		case "for":
			return p.parseForCond()
		case "return":
			return p.parseReturnStmt()
		case "break":
			return p.parseBreakStmt()
		case "continue":
			return p.parseContinueStmt()
		case "pub", "pri", "pro", "static", "const", "init":
			return p.parseModifiedStatement()
		}
	}

	if p.checkDelimiter("{") {
		return p.parseBlock()
	}

	return p.parseExpressionStmt()
}

// parseModifiedStatement handles an accessor/modifier keyword run. If
// it's immediately followed by ';' it's a bare ModifierStmt (legal
// only inside a class body — the analyzer checks that). Otherwise the
// modifiers apply to the declaration that follows.
func (p *Parser) parseModifiedStatement() ast.Stmt {
	mod := p.parseModifiers()
	if p.checkDelimiter(";") {
		p.advance()
		return mod
	}
	switch {
	case p.checkKeyword("let"):
		return p.parseVariableDecl(mod)
	case p.checkKeyword("fn"):
		return p.parseFunctionDecl(mod)
	case p.checkKeyword("cls"):
		return p.parseClassDecl(mod)
	case p.checkKeyword("rec"):
		return p.parseRecordDecl(mod)
	default:
		p.errorHere("Expected a declaration after accessor/modifier keywords",
			"Follow accessor and modifier keywords with 'let', 'fn', 'cls', or 'rec'.")
		p.synchronize()
		return mod
	}
}

// parseModifiers consumes a run of accessor/modifier keywords and
// folds them into one ModifierStmt. The last accessor keyword wins if
// more than one is written; that is a caller error the analyzer
// doesn't currently flag.
func (p *Parser) parseModifiers() *ast.ModifierStmt {
	start := p.peek().Span.Start
	acc := access.Private
	var mod access.Modifier
	last := p.peek().Span
	for p.peek().Kind == lexer.Keyword {
		lexeme := p.peek().Lexeme
		if lexeme == "pub" || lexeme == "pri" || lexeme == "pro" {
			acc = access.ParseAccessor(lexeme)
			last = p.peek().Span
			p.advance()
			continue
		}
		if access.IsModifierKeyword(lexeme) {
			mod = access.AddFlag(mod, access.ParseModifier(lexeme))
			last = p.peek().Span
			p.advance()
			continue
		}
		break
	}
	return ast.NewModifierStmt(diag.NewSpan(start, last.End), acc, mod)
}

func (p *Parser) parseBlock() *ast.BlockStmt {
	start := p.peek().Span.Start
	p.expectDelimiter("{", "to start a block")
	var stmts []ast.Stmt
	for !p.checkDelimiter("}") && !p.isEof() {
		stmts = append(stmts, p.parseStatement())
	}
	end := p.peek().Span.End
	p.expectDelimiter("}", "to close the block")
	return ast.NewBlockStmt(diag.NewSpan(start, end), stmts)
}

func (p *Parser) parseExpressionStmt() ast.Stmt {
	start := p.peek().Span.Start
	expr := p.parseExpression()
	end := p.look(-1).Span.End
	p.expectDelimiter(";", "after an expression statement")
	return ast.NewExpressionStmt(diag.NewSpan(start, end), expr)
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.advance().Span.Start // 'return'
	var expr ast.Expr
	if !p.checkDelimiter(";") {
		expr = p.parseExpression()
	}
	end := p.peek().Span.End
	p.expectDelimiter(";", "after a return statement")
	return ast.NewReturnStmt(diag.NewSpan(start, end), expr)
}

func (p *Parser) parseBreakStmt() ast.Stmt {
	span := p.advance().Span
	p.expectDelimiter(";", "after 'break'")
	return ast.NewBreakStmt(span)
}

func (p *Parser) parseContinueStmt() ast.Stmt {
	span := p.advance().Span
	p.expectDelimiter(";", "after 'continue'")
	return ast.NewContinueStmt(span)
}

// ---- declarations ----

// parseTypeExpr parses a type-position expression: a bare identifier,
// or an identifier followed by '[' [size] ']' for an array type.
func (p *Parser) parseTypeExpr() ast.Expr {
	id := p.expectIdentifier("as a type name")
	if !p.checkDelimiter("[") {
		return id
	}
	start := p.advance().Span.Start // '['
	var size ast.Expr
	if !p.checkDelimiter("]") {
		size = p.parseExpression()
	}
	end := p.peek().Span.End
	p.expectDelimiter("]", "to close the array type")
	return ast.NewArrayIdentifierExpr(diag.NewSpan(start, end), id.Name, size)
}

// parseTypeAnnotation parses the ': type' suffix following a declared
// name. A missing ':' immediately before what looks like a type name
// is a recoverable warning — the colon is assumed to have been
// intended, and the identifier is still consumed as the type — rather
// than an error that drops the type entirely. missingDesc/missingHelp
// are only used when nothing type-like follows at all.
func (p *Parser) parseTypeAnnotation(id *ast.IdentifierExpr, missingDesc, missingHelp string) ast.Expr {
	if p.matchDelimiter(":") {
		return p.parseTypeExpr()
	}
	if p.checkKind(lexer.Identifier) {
		p.warnAt(p.peek().Span, "Type annotation missing ':' in variable declaration",
			"Assuming type annotation is present before type name.")
		return p.parseTypeExpr()
	}
	p.errorAt(id.Span(), missingDesc, missingHelp)
	return nil
}

// markNullable sets the Nullable flag on mod, creating a default
// (Private, no other flags) ModifierStmt spanning at first if the
// declaration had no explicit accessor/modifier prefix.
func markNullable(mod *ast.ModifierStmt, at diag.Span) *ast.ModifierStmt {
	if mod == nil {
		mod = ast.NewModifierStmt(at, access.Private, access.None)
	}
	mod.Modifier = access.AddFlag(mod.Modifier, access.Nullable)
	return mod
}

// parseVariableDecl parses `let name [: type] [?] [= init] ;`. mod may
// be nil when no accessor/modifier prefix preceded the declaration; a
// trailing '?' after the type sets the Nullable modifier, creating mod
// on demand if it was nil.
func (p *Parser) parseVariableDecl(mod *ast.ModifierStmt) *ast.VariableDecl {
	start := p.peek().Span.Start
	if mod != nil {
		start = mod.Span().Start
	}
	p.matchKeyword("let")
	id := p.expectIdentifier("in a variable declaration")

	typeExpr := p.parseTypeAnnotation(id, "Missing type annotation", "Add ': <type>' after the variable name.")
	if p.matchOperator("?") {
		mod = markNullable(mod, id.Span())
	}

	var init ast.Expr
	if p.matchOperator("=") {
		init = p.parseExpression()
	}

	end := p.peek().Span.End
	p.expectDelimiter(";", "after a variable declaration")
	return ast.NewVariableDecl(diag.NewSpan(start, end), id, typeExpr, mod, init)
}

// parseParam parses a single function parameter: `name : type`, with
// the same shape as a variable declaration but no trailing ';'.
func (p *Parser) parseParam() *ast.VariableDecl {
	start := p.peek().Span.Start
	id := p.expectIdentifier("in a parameter list")
	typeExpr := p.parseTypeAnnotation(id, "Missing parameter type", "Add ': <type>' after the parameter name.")
	end := p.look(-1).Span.End
	return ast.NewVariableDecl(diag.NewSpan(start, end), id, typeExpr, nil, nil)
}

func (p *Parser) parseFunctionDecl(mod *ast.ModifierStmt) *ast.FunctionDecl {
	start := p.peek().Span.Start
	if mod != nil {
		start = mod.Span().Start
	}
	p.matchKeyword("fn")
	var id *ast.IdentifierExpr
	if p.checkKeyword("init") {
		// 'init' is a keyword, but it is also the name a class gives its
		// constructor method.
		tok := p.advance()
		id = ast.NewIdentifierExpr(tok.Span, tok.Lexeme)
	} else {
		id = p.expectIdentifier("in a function declaration")
	}
	if p.matchOperator("?") {
		mod = markNullable(mod, id.Span())
	}

	p.expectDelimiter("(", "before a parameter list")
	var params []*ast.VariableDecl
	for !p.checkDelimiter(")") && !p.isEof() {
		params = append(params, p.parseParam())
		if !p.matchDelimiter(",") {
			break
		}
	}
	p.expectDelimiter(")", "to close a parameter list")

	var retType ast.Expr
	if p.matchDelimiter(":") {
		retType = p.parseTypeExpr()
	}

	body := p.parseBlock()
	return ast.NewFunctionDecl(diag.NewSpan(start, body.Span().End), id, retType, mod, params, body)
}

func (p *Parser) parseClassDecl(mod *ast.ModifierStmt) *ast.ClassDecl {
	start := p.peek().Span.Start
	if mod != nil {
		start = mod.Span().Start
	}
	p.matchKeyword("cls")
	id := p.expectIdentifier("in a class declaration")
	p.expectDelimiter("{", "to start the class body")

	var fields []*ast.VariableDecl
	var methods []*ast.FunctionDecl
	for !p.checkDelimiter("}") && !p.isEof() {
		var memberMod *ast.ModifierStmt
		if p.peek().Kind == lexer.Keyword && (p.checkKeyword("pub") || p.checkKeyword("pri") || p.checkKeyword("pro") ||
			p.checkKeyword("static") || p.checkKeyword("const") || p.checkKeyword("init")) {
			memberMod = p.parseModifiers()
		}
		switch {
		case p.checkKeyword("fn"):
			methods = append(methods, p.parseFunctionDecl(memberMod))
		case p.checkKeyword("let"):
			fields = append(fields, p.parseVariableDecl(memberMod))
		default:
			p.errorHere("Expected a field or method declaration in a class body",
				"Use 'let' for a field or 'fn' for a method.")
			p.synchronize()
		}
	}
	end := p.peek().Span.End
	p.expectDelimiter("}", "to close the class body")
	return ast.NewClassDecl(diag.NewSpan(start, end), id, mod, fields, methods)
}

func (p *Parser) parseRecordDecl(mod *ast.ModifierStmt) *ast.RecordDecl {
	start := p.peek().Span.Start
	if mod != nil {
		start = mod.Span().Start
	}
	p.matchKeyword("rec")
	id := p.expectIdentifier("in a record declaration")
	p.expectDelimiter("{", "to start the record body")

	var fields []*ast.VariableDecl
	for !p.checkDelimiter("}") && !p.isEof() {
		var fieldMod *ast.ModifierStmt
		if p.checkKeyword("pub") || p.checkKeyword("pri") || p.checkKeyword("pro") {
			fieldMod = p.parseModifiers()
		}
		if !p.checkKeyword("let") {
			p.errorHere("Expected a field declaration in a record body",
				"Use 'let name: type;' for each field.")
			p.synchronize()
			continue
		}
		fields = append(fields, p.parseVariableDecl(fieldMod))
	}
	end := p.peek().Span.End
	p.expectDelimiter("}", "to close the record body")
	return ast.NewRecordDecl(diag.NewSpan(start, end), id, mod, fields)
}

// ---- conditionals ----

func (p *Parser) parseIfCond() *ast.IfCond {
	start := p.advance().Span.Start // 'if'
	cond := p.parseExpression()
	then := p.parseBlock()

	var elifs []*ast.IfCond
	end := then.Span().End
	// Structurally, elif clauses can only be collected here, before an
	// else is seen: once the loop below hits 'else' it stops collecting
	// and there is no path back into it, so an elif can never trail an
	// else in the resulting tree.
	for p.checkKeyword("elif") {
		elifStart := p.advance().Span.Start
		elifCond := p.parseExpression()
		elifThen := p.parseBlock()
		elif := ast.NewIfCond(diag.NewSpan(elifStart, elifThen.Span().End), elifCond, elifThen, nil, nil)
		elifs = append(elifs, elif)
		end = elifThen.Span().End
	}

	var elseBlock *ast.BlockStmt
	if p.matchKeyword("else") {
		elseBlock = p.parseBlock()
		end = elseBlock.Span().End
	}

	return ast.NewIfCond(diag.NewSpan(start, end), cond, then, elifs, elseBlock)
}

func (p *Parser) parseSwitchCond() *ast.SwitchCond {
	start := p.advance().Span.Start // 'switch'
	scrutinee := p.parseExpression()
	p.expectDelimiter("{", "to start a switch body")

	var cases []*ast.CaseClause
	for !p.checkDelimiter("}") && !p.isEof() {
		caseStart := p.peek().Span.Start
		var caseExpr ast.Expr
		if p.matchKeyword("case") {
			caseExpr = p.parseExpression()
		} else if p.matchKeyword("default") {
			caseExpr = nil
		} else {
			p.errorHere("Expected 'case' or 'default' in a switch body",
				"Start each arm with 'case <expr>' or 'default'.")
			p.synchronize()
			continue
		}
		p.expectDelimiter(":", "after a case label")
		body := p.parseBlock()
		cases = append(cases, ast.NewCaseClause(diag.NewSpan(caseStart, body.Span().End), caseExpr, body))
	}
	end := p.peek().Span.End
	p.expectDelimiter("}", "to close a switch body")
	return ast.NewSwitchCond(diag.NewSpan(start, end), scrutinee, cases)
}

func (p *Parser) parseWhileCond() *ast.WhileCond {
	start := p.advance().Span.Start // 'while'
	cond := p.parseExpression()
	body := p.parseBlock()
	return ast.NewWhileCond(diag.NewSpan(start, body.Span().End), cond, body)
}

// parseForCond parses the three loop shapes the grammar supports:
//
//	for (let i: i32 = 0; i < n; i = i + 1) { }   // C-style
//	for (i: i32 in arr) { }                       // for-each
//	for (cond) { }                                 // range
//
// The for-each shape is disambiguated from the range shape by
// lookahead: an identifier immediately followed by ':' starts a
// variable declaration, never a condition expression.
func (p *Parser) parseForCond() *ast.ForCond {
	start := p.advance().Span.Start // 'for'
	p.expectDelimiter("(", "before a for-loop header")

	if p.checkKeyword("let") {
		declStart := p.peek().Span.Start
		p.advance() // 'let'
		id := p.expectIdentifier("in a for-loop header")
		var typeExpr ast.Expr
		if p.matchDelimiter(":") {
			typeExpr = p.parseTypeExpr()
		}
		var init ast.Expr
		if p.matchOperator("=") {
			init = p.parseExpression()
		}
		initDecl := ast.NewVariableDecl(diag.NewSpan(declStart, p.look(-1).Span.End), id, typeExpr, nil, init)
		p.expectDelimiter(";", "after a for-loop initializer")
		cond := p.parseExpression()
		p.expectDelimiter(";", "after a for-loop condition")
		var inc ast.Expr
		if !p.checkDelimiter(")") {
			inc = p.parseExpression()
		}
		p.expectDelimiter(")", "after a for-loop header")
		body := p.parseBlock()
		return ast.NewForCond(diag.NewSpan(start, body.Span().End), initDecl, cond, inc, body)
	}

	if p.checkKind(lexer.Identifier) && p.look(1).Kind == lexer.Delimiter && p.look(1).Lexeme == ":" {
		decl := p.parseParam()
		p.expectKeyword("in", "after a for-each variable declaration")
		iterable := p.parseExpression()
		p.expectDelimiter(")", "after a for-each iterable expression")
		body := p.parseBlock()
		return ast.NewForCond(diag.NewSpan(start, body.Span().End), decl, nil, iterable, body)
	}

	// Range shape: a bare condition (`for (cond) { }`).
	cond := p.parseExpression()
	p.expectDelimiter(")", "after a for-loop header")
	body := p.parseBlock()
	return ast.NewForCond(diag.NewSpan(start, body.Span().End), nil, cond, nil, body)
}
