package diag

import (
	"strings"
	"testing"
)

func TestFormatMinimumTwoCarets(t *testing.T) {
	source := "let x = y;"
	span := NewSpan(Position{Line: 1, Column: 9, Index: 8}, Position{Line: 1, Column: 9, Index: 8})
	d := New(Error, "Undeclared identifier 'y'", "Declare 'y' before using it.", span, "test.ml", source)

	f := NewFormatter(false)
	out := f.Format(d)

	if !strings.Contains(out, "^^") {
		t.Fatalf("expected at least two carets in output, got:\n%s", out)
	}
	if strings.Contains(out, "\033[") {
		t.Fatalf("expected no ANSI codes when UseColor is false, got:\n%s", out)
	}
}

func TestFormatIncludesPointerLine(t *testing.T) {
	source := "x"
	span := NewSpan(Position{Line: 3, Column: 5, Index: 0}, Position{Line: 3, Column: 6, Index: 1})
	d := New(Warning, "example", "fix it", span, "main.ml", source)

	out := NewFormatter(false).Format(d)
	if !strings.Contains(out, "--> main.ml:3:4") {
		t.Fatalf("expected a --> pointer with the off-by-one display column, got:\n%s", out)
	}
}

func TestFormatOmitsCodeWhenZero(t *testing.T) {
	d := New(Info, "hello", "help", Span{}, "f.ml", "")
	out := NewFormatter(false).Format(d)
	if strings.Contains(out, "[0000]") {
		t.Fatalf("expected no code segment for a zero code, got:\n%s", out)
	}
}

func TestFormatIncludesCodeWhenSet(t *testing.T) {
	d := New(Error, "hello", "help", Span{}, "f.ml", "").WithCode(42)
	out := NewFormatter(false).Format(d)
	if !strings.Contains(out, "[0042]") {
		t.Fatalf("expected a zero-padded code segment, got:\n%s", out)
	}
}
