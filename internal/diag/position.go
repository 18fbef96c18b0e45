// Package diag holds source positions and the diagnostic values every
// front-end stage accumulates instead of returning a Go error.
package diag

import "fmt"

// Position is a coordinate into a source string: a 1-based line, a
// 1-based column, and a 0-based byte index. All three advance together
// as a lexer or parser consumes source text.
type Position struct {
	Line   int
	Column int
	Index  int
}

// String renders "line:column"; the byte index carries no extra
// information a caller needs for display.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open [Start, End) range of source positions. End is
// exclusive: a single-character span has End.Index == Start.Index+1.
type Span struct {
	Start Position
	End   Position
}

// NewSpan builds a span, asserting nothing about ordering — callers are
// responsible for start <= end, which the parser and lexer guarantee by
// construction.
func NewSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}

// Merge returns the smallest span covering both a and b, used when a
// parent AST node's span must cover its first and last child.
func Merge(a, b Span) Span {
	start := a.Start
	if b.Start.Index < start.Index {
		start = b.Start
	}
	end := a.End
	if b.End.Index > end.Index {
		end = b.End
	}
	return Span{Start: start, End: end}
}
