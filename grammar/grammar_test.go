package grammar

import "testing"

const exprGrammar = `
expr : expr "+" term | term ;
term : term "*" factor | factor ;
factor : "(" expr ")" | ID ;
`

func TestCompile(t *testing.T) {
	g, err := Compile(exprGrammar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.Table.Conflicts) != 0 {
		t.Fatalf("unexpected conflicts: %v", g.Table.Conflicts)
	}
	if len(g.Productions) != 7 { // augmented + 6 alternatives
		t.Fatalf("unexpected production count: %v", len(g.Productions))
	}

	r := g.Symbols.Reader()
	id, ok := r.ToSymbol("ID")
	if !ok {
		t.Fatalf("ID was not registered as a terminal")
	}
	lparen, _ := r.ToSymbol("(")

	st := g.Table.StartState()
	if a := g.Table.Action(st, id); a.Type != ActionShift {
		t.Fatalf("expected a shift action on ID from the start state, got %v", a)
	}
	if a := g.Table.Action(st, lparen); a.Type != ActionShift {
		t.Fatalf("expected a shift action on '(' from the start state, got %v", a)
	}
}

func TestCompileEmptyGrammar(t *testing.T) {
	if _, err := Compile(""); err == nil {
		t.Fatal("expected an error for an empty grammar description")
	}
}

func TestCompileUndefinedSymbol(t *testing.T) {
	_, err := Compile(`start : undefined_rule_used_only_here ;`)
	if err != nil {
		t.Fatalf("a rule referenced only on a right-hand side should be registered implicitly, got: %v", err)
	}
}
