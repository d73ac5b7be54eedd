package query

import (
	"testing"
)

func TestLexSimple(t *testing.T) {
	tokens, err := Lex("q1 AND q2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Tokens: Ident("q1"), And, Ident("q2"), EOF
	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens (including EOF), got %d: %v", len(tokens), tokens)
	}
	if tokens[0].Kind != TokIdent || tokens[0].Value != "q1" {
		t.Errorf("expected Ident(q1), got %v", tokens[0])
	}
	if tokens[1].Kind != TokAnd {
		t.Errorf("expected And, got %v", tokens[1])
	}
	if tokens[2].Kind != TokIdent || tokens[2].Value != "q2" {
		t.Errorf("expected Ident(q2), got %v", tokens[2])
	}
	if tokens[3].Kind != TokEOF {
		t.Errorf("expected EOF, got %v", tokens[3])
	}
}

func TestLexNotIn(t *testing.T) {
	for _, input := range []string{"a NOT IN b", "a NOT\tIN b", "a NOT\n  IN b"} {
		tokens, err := Lex(input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", input, err)
		}
		if len(tokens) != 4 {
			t.Fatalf("%q: expected 4 tokens, got %d: %v", input, len(tokens), tokens)
		}
		if tokens[1].Kind != TokNotIn {
			t.Errorf("%q: expected NotIn, got %v", input, tokens[1])
		}
		if tokens[1].Pos != 2 {
			t.Errorf("%q: expected NotIn at 2, got %d", input, tokens[1].Pos)
		}
	}
}

func TestLexParens(t *testing.T) {
	tokens, err := Lex("(a OR b) AND c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Kind != TokLParen {
		t.Errorf("expected LParen, got %v", tokens[0])
	}
	if tokens[2].Kind != TokOr {
		t.Errorf("expected Or, got %v", tokens[2])
	}
	if tokens[4].Kind != TokRParen {
		t.Errorf("expected RParen, got %v", tokens[4])
	}
}

func TestLexWhitespaceInsensitive(t *testing.T) {
	tokens, err := Lex(" \t(a\nOR b)AND\r\nc ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kinds := []TokenKind{TokLParen, TokIdent, TokOr, TokIdent, TokRParen, TokAnd, TokIdent, TokEOF}
	if len(tokens) != len(kinds) {
		t.Fatalf("expected %d tokens, got %d: %v", len(kinds), len(tokens), tokens)
	}
	for i, k := range kinds {
		if tokens[i].Kind != k {
			t.Errorf("token %d: expected %v, got %v", i, k, tokens[i].Kind)
		}
	}
}

func TestLexIdentifiers(t *testing.T) {
	for _, input := range []string{"_", "_x", "q_1", "NOTIN", "ORDER", "and", "Not"} {
		tokens, err := Lex(input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", input, err)
		}
		if tokens[0].Kind != TokIdent || tokens[0].Value != input {
			t.Errorf("%q: expected Ident, got %v", input, tokens[0])
		}
	}
}

func TestLexErrors(t *testing.T) {
	cases := []string{
		"1abc",
		"a & b",
		"a NOT b",
		"a NOT",
		"a IN b",
		"a NOT INTO b",
		"a NOT(b)",
		"variant-1",
		"é",
	}
	for _, input := range cases {
		_, err := Lex(input)
		if err == nil {
			t.Errorf("%q: expected error", input)
			continue
		}
		if !IsSyntaxError(err) {
			t.Errorf("%q: expected SyntaxError, got %T", input, err)
		}
	}
}

func TestIsIdentifier(t *testing.T) {
	valid := []string{"q1", "_", "Variant_Set"}
	invalid := []string{"", "1q", "a-b", "a b", "AND", "OR", "NOT", "IN"}
	for _, s := range valid {
		if !IsIdentifier(s) {
			t.Errorf("%q: expected identifier", s)
		}
	}
	for _, s := range invalid {
		if IsIdentifier(s) {
			t.Errorf("%q: expected non-identifier", s)
		}
	}
}
