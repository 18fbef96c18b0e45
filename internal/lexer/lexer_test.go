package lexer

import "testing"

func TestNextBasic(t *testing.T) {
	input := `let x: i32 = 10;`

	tests := []struct {
		kind   Kind
		lexeme string
	}{
		{Keyword, "let"},
		{Identifier, "x"},
		{Delimiter, ":"},
		{Identifier, "i32"},
		{Operator, "="},
		{Integer, "10"},
		{Delimiter, ";"},
		{Eof, ""},
	}

	l := New(input, "test.ml")
	for i, tt := range tests {
		tok := l.Next()
		if tok.Kind != tt.kind {
			t.Fatalf("tests[%d]: kind wrong, expected=%s got=%s (%q)", i, tt.kind, tok.Kind, tok.Lexeme)
		}
		if tok.Lexeme != tt.lexeme {
			t.Fatalf("tests[%d]: lexeme wrong, expected=%q got=%q", i, tt.lexeme, tok.Lexeme)
		}
	}
}

func TestNextOperators(t *testing.T) {
	input := "== != <= >= && || ++ --"
	expected := []string{"==", "!=", "<=", ">=", "&&", "||", "++", "--"}

	l := New(input, "test.ml")
	for i, want := range expected {
		tok := l.Next()
		if tok.Kind != Operator {
			t.Fatalf("tests[%d]: expected an operator, got %s", i, tok.Kind)
		}
		if tok.Lexeme != want {
			t.Fatalf("tests[%d]: expected %q, got %q", i, want, tok.Lexeme)
		}
	}
}

func TestLexFloat(t *testing.T) {
	tokens, diags := Lex("3.14", "test.ml")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(tokens) != 2 || tokens[0].Kind != Float || tokens[0].Lexeme != "3.14" {
		t.Fatalf("expected a single Float token, got %+v", tokens)
	}
}

func TestLexRangeDoesNotConsumeAsFloat(t *testing.T) {
	tokens, diags := Lex("1..5", "test.ml")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if tokens[0].Kind != Integer || tokens[0].Lexeme != "1" {
		t.Fatalf("expected the first token to be Integer '1', got %+v", tokens[0])
	}
	if tokens[1].Kind != Operator || tokens[1].Lexeme != ".." {
		t.Fatalf("expected the second token to be operator '..', got %+v", tokens[1])
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, diags := Lex(`"hello`, "test.ml")
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", len(diags))
	}
	if diags[0].Desc != "Unterminated string literal" {
		t.Fatalf("unexpected diagnostic: %q", diags[0].Desc)
	}
}

func TestLexEmptyCharacterLiteral(t *testing.T) {
	_, diags := Lex(`''`, "test.ml")
	if len(diags) != 1 || diags[0].Desc != "Empty character literal" {
		t.Fatalf("expected an empty-character-literal diagnostic, got %v", diags)
	}
}

func TestLexUnrecognizedCharacterDoesNotStopTheStream(t *testing.T) {
	// An unrecognized character must not stop the token stream: lexing
	// keeps going and reports every offender.
	tokens, diags := Lex("a @b #z", "test.ml")
	if len(diags) != 2 {
		t.Fatalf("expected two diagnostics, got %d: %v", len(diags), diags)
	}
	last := tokens[len(tokens)-1]
	if last.Kind != Eof {
		t.Fatalf("expected the stream to still terminate in Eof, got %s", last.Kind)
	}
}

func TestLexKeywordsVsIdentifiers(t *testing.T) {
	tokens, _ := Lex("let letter", "test.ml")
	if tokens[0].Kind != Keyword {
		t.Fatalf("expected 'let' to lex as a Keyword, got %s", tokens[0].Kind)
	}
	if tokens[1].Kind != Identifier {
		t.Fatalf("expected 'letter' to lex as an Identifier, got %s", tokens[1].Kind)
	}
}
