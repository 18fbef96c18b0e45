package lexer

import (
	"github.com/mlang/ml-frontend/internal/diag"
	"github.com/mlang/ml-frontend/internal/syntax"
)

// Lexer turns a source string into a token stream. It never aborts:
// malformed literals produce a diagnostic and a best-effort token, and
// an unrecognized character produces a None token plus a diagnostic
// rather than terminating the stream — only Eof ends it.
type Lexer struct {
	file   string
	source string
	start  diag.Position
	cur    diag.Position

	diags []diag.Diagnostic
}

// New builds a Lexer over source, labeling diagnostics with file.
func New(source, file string) *Lexer {
	return &Lexer{
		file:   file,
		source: source,
		start:  diag.Position{Line: 1, Column: 1, Index: 0},
		cur:    diag.Position{Line: 1, Column: 1, Index: 0},
	}
}

// Diagnostics returns every diagnostic accumulated so far.
func (l *Lexer) Diagnostics() []diag.Diagnostic {
	return l.diags
}

func (l *Lexer) isEof() bool {
	return l.cur.Index >= len(l.source)
}

func (l *Lexer) peek() byte {
	if l.isEof() {
		return 0
	}
	return l.source[l.cur.Index]
}

func (l *Lexer) peekAt(offset int) byte {
	idx := l.cur.Index + offset
	if idx < 0 || idx >= len(l.source) {
		return 0
	}
	return l.source[idx]
}

// value returns the raw text consumed since the last token boundary.
func (l *Lexer) value() string {
	return l.source[l.start.Index:l.cur.Index]
}

// advance consumes one byte and returns the new current byte (0 at
// EOF), updating line/column bookkeeping.
func (l *Lexer) advance() byte {
	if l.isEof() {
		return 0
	}
	c := l.source[l.cur.Index]
	l.cur.Index++
	if c == '\n' {
		l.cur.Line++
		l.cur.Column = 1
	} else {
		l.cur.Column++
	}
	return l.peek()
}

func (l *Lexer) take(pred func(byte) bool) {
	for pred(l.peek()) {
		if l.isEof() {
			break
		}
		l.advance()
	}
}

func (l *Lexer) ignore() {
	l.start = l.cur
}

func (l *Lexer) makeToken(kind Kind) Token {
	value := l.value()
	start := l.start
	l.ignore()
	return Token{Kind: kind, Lexeme: value, Span: diag.NewSpan(start, l.cur)}
}

func (l *Lexer) errorAt(desc, help string, at diag.Position) {
	span := diag.NewSpan(at, at)
	l.diags = append(l.diags, diag.New(diag.Error, desc, help, span, l.file, l.source))
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

func (l *Lexer) lexAlpha() (Token, bool) {
	if !isAlpha(l.peek()) {
		return Token{}, false
	}
	l.take(isAlnum)
	if syntax.IsKeyword(l.value()) {
		return l.makeToken(Keyword), true
	}
	return l.makeToken(Identifier), true
}

func (l *Lexer) lexNumeric() (Token, bool) {
	if !isDigit(l.peek()) {
		return Token{}, false
	}
	l.take(isDigit)
	if l.peek() == '.' {
		// A second '.' means this is the start of a range operator
		// (`..`/`...`), not a float literal — leave it for lexOperator.
		if l.peekAt(1) == '.' {
			return l.makeToken(Integer), true
		}
		l.advance()
		l.take(isDigit)
		return l.makeToken(Float), true
	}
	return l.makeToken(Integer), true
}

func (l *Lexer) lexCharacter() (Token, bool) {
	if l.peek() != '\'' {
		return Token{}, false
	}
	l.advance() // opening quote
	switch {
	case l.peek() == '\\':
		l.advance() // escape character
		l.advance() // escaped character
	case l.peek() != '\'':
		l.advance() // the single content character
	default:
		l.errorAt("Empty character literal",
			"Add a character between the single quotes (').", l.start)
	}

	if l.peek() != '\'' {
		l.errorAt("Unterminated character literal",
			"Add a closing single quote (') to terminate the character literal.", l.start)
	} else {
		l.advance() // closing quote
	}
	return l.makeToken(Character), true
}

func (l *Lexer) lexString() (Token, bool) {
	if l.peek() != '"' {
		return Token{}, false
	}
	l.advance() // opening quote
	for l.peek() != '"' {
		if l.isEof() {
			l.errorAt("Unterminated string literal",
				`Add a closing double quote (") to terminate the string literal.`, l.start)
			break
		}
		l.advance()
	}
	l.advance() // closing quote (no-op past EOF)
	return l.makeToken(String), true
}

func (l *Lexer) lexOperator() (Token, bool) {
	if !syntax.IsOperator(string(l.peek())) {
		return Token{}, false
	}
	l.advance()
	if syntax.IsOperator(l.value() + string(l.peek())) {
		l.advance()
	}
	return l.makeToken(Operator), true
}

func (l *Lexer) lexDelimiter() (Token, bool) {
	if !syntax.IsDelimiter(l.peek()) {
		return Token{}, false
	}
	l.advance()
	return l.makeToken(Delimiter), true
}

// Next produces the single next token, including a trailing Eof.
func (l *Lexer) Next() Token {
	l.take(func(c byte) bool { return syntax.IsWhitespace(c) })
	l.ignore()

	if l.isEof() {
		return Token{Kind: Eof, Lexeme: "", Span: diag.NewSpan(l.cur, l.cur)}
	}

	if tok, ok := l.lexAlpha(); ok {
		return tok
	}
	if tok, ok := l.lexNumeric(); ok {
		return tok
	}
	if tok, ok := l.lexCharacter(); ok {
		return tok
	}
	if tok, ok := l.lexString(); ok {
		return tok
	}
	if tok, ok := l.lexOperator(); ok {
		return tok
	}
	if tok, ok := l.lexDelimiter(); ok {
		return tok
	}

	bad := l.start
	l.advance()
	l.errorAt("Unrecognized character",
		"Remove or replace this character; it does not start any known token.", bad)
	return l.makeToken(None)
}

// Lex tokenizes the entire source, stopping only at a true Eof. A
// None token does not end the stream — it is reported as a diagnostic
// and lexing continues.
func Lex(source, file string) ([]Token, []diag.Diagnostic) {
	l := New(source, file)
	var tokens []Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Kind == Eof {
			break
		}
	}
	return tokens, l.diags
}
