package lexer

import (
	"fmt"

	"github.com/mlang/ml-frontend/internal/diag"
)

// Kind classifies a Token.
type Kind int

const (
	None Kind = iota
	Integer
	Float
	Boolean
	Character
	String
	Identifier
	Keyword
	Operator
	Delimiter
	Eof
)

func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Boolean:
		return "Boolean"
	case Character:
		return "Character"
	case String:
		return "String"
	case Identifier:
		return "Identifier"
	case Keyword:
		return "Keyword"
	case Operator:
		return "Operator"
	case Delimiter:
		return "Delimiter"
	case Eof:
		return "Eof"
	default:
		return "Unknown"
	}
}

// Token is a lexeme plus its kind and span. The lexeme (Lexeme) is the
// raw text as it appeared in source, quotes and all for strings and
// characters — the parser and analyzer are responsible for any
// unescaping they need.
type Token struct {
	Kind   Kind
	Lexeme string
	Span   diag.Span
}

// String renders "[start-end] Kind lexeme", handy for debug dumps.
func (t Token) String() string {
	return fmt.Sprintf("[%s-%s] %s %s", t.Span.Start, t.Span.End, t.Kind, t.Lexeme)
}

// IsEmpty reports whether the token carries no lexeme text, as the
// terminal Eof token does.
func (t Token) IsEmpty() bool {
	return t.Lexeme == ""
}
