package parser

import (
	"testing"

	"github.com/nvitucci/parcygo/driver/lexer"
	"github.com/nvitucci/parcygo/grammar"
)

const exprGrammar = `
expr : expr "+" term | term ;
term : term "*" factor | factor ;
factor : "(" expr ")" | ID ;
`

func tok(kind, text string) lexer.Token {
	return lexer.Token{Kind: kind, Text: text, Line: 1}
}

func TestParseAcceptsValidInput(t *testing.T) {
	g, err := grammar.Compile(exprGrammar)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	toks := []lexer.Token{
		tok("ID", "a"), tok("+", "+"), tok("ID", "b"), tok("*", "*"), tok("ID", "c"),
		tok(lexer.EOFKind, ""),
	}
	root, err := Parse(g, toks)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if root.Rule != "expr" {
		t.Fatalf("expected root rule 'expr', got %v", root.Rule)
	}
}

func TestParseRejectsInvalidInput(t *testing.T) {
	g, err := grammar.Compile(exprGrammar)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	toks := []lexer.Token{
		tok("ID", "a"), tok("+", "+"), tok("+", "+"),
		tok(lexer.EOFKind, ""),
	}
	if _, err := Parse(g, toks); err == nil {
		t.Fatal("expected a syntax error")
	}
}
