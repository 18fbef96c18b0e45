package parser

import (
	"github.com/mlang/ml-frontend/internal/ast"
	"github.com/mlang/ml-frontend/internal/diag"
	"github.com/mlang/ml-frontend/internal/lexer"
)

// parseExpression is the entry point for the ten-level precedence
// ladder: assignment (right-associative) down through or, and,
// equality, comparison, term, factor, unary (prefix), postfix, to
// primary.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expr {
	left := p.parseOr()
	if p.checkOperator("=") {
		op := p.advance().Lexeme
		right := p.parseAssignment() // right-associative
		return ast.NewBinaryExpr(diag.Merge(left.Span(), right.Span()), left, op, right)
	}
	return left
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.checkOperator("||") {
		op := p.advance().Lexeme
		right := p.parseAnd()
		left = ast.NewBinaryExpr(diag.Merge(left.Span(), right.Span()), left, op, right)
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseEquality()
	for p.checkOperator("&&") {
		op := p.advance().Lexeme
		right := p.parseEquality()
		left = ast.NewBinaryExpr(diag.Merge(left.Span(), right.Span()), left, op, right)
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseComparison()
	for p.checkOperator("==") || p.checkOperator("!=") {
		op := p.advance().Lexeme
		right := p.parseComparison()
		left = ast.NewBinaryExpr(diag.Merge(left.Span(), right.Span()), left, op, right)
	}
	return left
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseTerm()
	for p.checkOperator("<") || p.checkOperator(">") || p.checkOperator("<=") || p.checkOperator(">=") ||
		p.checkOperator("..") || p.checkOperator("...") {
		op := p.advance().Lexeme
		right := p.parseTerm()
		left = ast.NewBinaryExpr(diag.Merge(left.Span(), right.Span()), left, op, right)
	}
	return left
}

func (p *Parser) parseTerm() ast.Expr {
	left := p.parseFactor()
	for p.checkOperator("+") || p.checkOperator("-") {
		op := p.advance().Lexeme
		right := p.parseFactor()
		left = ast.NewBinaryExpr(diag.Merge(left.Span(), right.Span()), left, op, right)
	}
	return left
}

func (p *Parser) parseFactor() ast.Expr {
	left := p.parseUnary()
	for p.checkOperator("*") || p.checkOperator("/") || p.checkOperator("%") {
		op := p.advance().Lexeme
		right := p.parseUnary()
		left = ast.NewBinaryExpr(diag.Merge(left.Span(), right.Span()), left, op, right)
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.checkOperator("!") || p.checkOperator("-") || p.checkOperator("++") || p.checkOperator("--") {
		tok := p.advance()
		operand := p.parseUnary()
		return ast.NewUnaryExpr(diag.Merge(tok.Span, operand.Span()), tok.Lexeme, operand, true)
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.checkOperator("++") || p.checkOperator("--"):
			tok := p.advance()
			expr = ast.NewUnaryExpr(diag.Merge(expr.Span(), tok.Span), tok.Lexeme, expr, false)
		case p.checkDelimiter("("):
			expr = p.finishCall(expr)
		case p.checkDelimiter("["):
			expr = p.finishIndex(expr)
		case p.checkOperator("."):
			expr = p.finishAttribute(expr)
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	p.advance() // '('
	var args []ast.Expr
	for !p.checkDelimiter(")") && !p.isEof() {
		args = append(args, p.parseExpression())
		if !p.matchDelimiter(",") {
			break
		}
	}
	end := p.peek().Span.End
	p.expectDelimiter(")", "to close a call's argument list")
	return ast.NewCallExpr(diag.NewSpan(callee.Span().Start, end), callee, args)
}

func (p *Parser) finishIndex(array ast.Expr) ast.Expr {
	p.advance() // '['
	index := p.parseExpression()
	end := p.peek().Span.End
	p.expectDelimiter("]", "to close an index expression")
	return ast.NewIndexExpr(diag.NewSpan(array.Span().Start, end), array, index)
}

func (p *Parser) finishAttribute(object ast.Expr) ast.Expr {
	p.advance() // '.'
	member := p.expectIdentifier("after '.'")
	var attribute ast.Expr = member
	if p.checkDelimiter("(") {
		attribute = p.finishCall(member)
	}
	return ast.NewAttributeExpr(diag.Merge(object.Span(), attribute.Span()), object, attribute)
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()

	switch tok.Kind {
	case lexer.Integer:
		p.advance()
		return ast.NewLiteralExpr(tok.Span, tok.Lexeme, ast.LiteralInteger)
	case lexer.Float:
		p.advance()
		return ast.NewLiteralExpr(tok.Span, tok.Lexeme, ast.LiteralFloat)
	case lexer.String:
		p.advance()
		return ast.NewLiteralExpr(tok.Span, tok.Lexeme, ast.LiteralString)
	case lexer.Character:
		p.advance()
		return ast.NewLiteralExpr(tok.Span, tok.Lexeme, ast.LiteralCharacter)
	case lexer.Identifier:
		p.advance()
		return ast.NewIdentifierExpr(tok.Span, tok.Lexeme)
	case lexer.Keyword:
		switch tok.Lexeme {
		case "true", "false":
			p.advance()
			return ast.NewLiteralExpr(tok.Span, tok.Lexeme, ast.LiteralBoolean)
		case "null":
			p.advance()
			return ast.NewLiteralExpr(tok.Span, tok.Lexeme, ast.LiteralNull)
		case "this":
			p.advance()
			return ast.NewIdentifierExpr(tok.Span, tok.Lexeme)
		}
	case lexer.Delimiter:
		switch tok.Lexeme {
		case "(":
			p.advance()
			inner := p.parseExpression()
			p.expectDelimiter(")", "to close a parenthesized expression")
			return inner
		case "[":
			return p.parseArrayLiteral()
		}
	}

	p.errorHere("Expected an expression", "This token cannot start an expression.")
	p.advance()
	return ast.NewLiteralExpr(tok.Span, "", ast.LiteralNull)
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	start := p.advance().Span.Start // '['
	var elements []ast.Expr
	for !p.checkDelimiter("]") && !p.isEof() {
		elements = append(elements, p.parseExpression())
		if !p.matchDelimiter(",") {
			break
		}
	}
	end := p.peek().Span.End
	p.expectDelimiter("]", "to close an array literal")
	return ast.NewArrayExpr(diag.NewSpan(start, end), elements)
}
