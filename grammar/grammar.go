// Package grammar compiles a small textual grammar notation into an
// LALR(1) parsing table. It has no knowledge of Cypher; the driver package
// drives a CompiledGrammar over a token stream, and the cypher package
// supplies the grammar text and binds the result to the Cypher AST.
package grammar

import (
	"fmt"

	cerr "github.com/nvitucci/parcygo/error"
	"github.com/nvitucci/parcygo/grammar/symbol"
)

// CompiledGrammar is the immutable result of compiling a grammar
// description: a symbol table, the production set, and the ACTION/GOTO
// table a driver walks. It is safe to share across concurrent parses.
type CompiledGrammar struct {
	Symbols     *symbol.SymbolTable
	Productions []*Production
	Table       *ParsingTable
	Start       symbol.Symbol
}

// LHSText returns the rule name a production reduces to, by looking it up
// in the grammar's symbol table; this is what an AST transformer
// dispatches on. RHSLen returns the number of symbols on the production's
// right-hand side.
func (g *CompiledGrammar) LHSText(p *Production) string {
	t, _ := g.Symbols.Reader().ToText(p.LHS)
	return t
}

func (g *CompiledGrammar) RHSLen(p *Production) int {
	return len(p.RHS)
}

// Compile reads a grammar description in this package's notation and
// builds an LALR(1) parsing table for it. The first rule encountered is
// taken as the start symbol.
func Compile(source string) (*CompiledGrammar, error) {
	alts, err := parseDescription(source)
	if err != nil {
		return nil, &cerr.SpecError{Cause: err}
	}
	if len(alts) == 0 {
		return nil, &cerr.SpecError{Cause: fmt.Errorf("grammar description has no productions")}
	}

	tab := symbol.NewSymbolTable()
	w := tab.Writer()

	startText := alts[0].lhs
	if _, err := w.RegisterStartSymbol(startText + "'"); err != nil {
		return nil, &cerr.SpecError{Cause: err}
	}
	if _, err := w.RegisterNonTerminalSymbol(startText); err != nil {
		return nil, &cerr.SpecError{Cause: err}
	}
	for _, a := range alts {
		if _, err := w.RegisterNonTerminalSymbol(a.lhs); err != nil {
			return nil, &cerr.SpecError{Cause: err}
		}
	}
	for _, a := range alts {
		for _, f := range a.rhs {
			if isQuoted(f) {
				if _, err := w.RegisterTerminalSymbol(unquote(f)); err != nil {
					return nil, &cerr.SpecError{Cause: err}
				}
				continue
			}
			if isBareTerminal(f) {
				if _, err := w.RegisterTerminalSymbol(f); err != nil {
					return nil, &cerr.SpecError{Cause: err}
				}
			}
			// Lower-case bare words name non-terminals; they are
			// registered implicitly below if not already a rule LHS.
		}
	}
	// Any non-terminal referenced only on a right-hand side (never as an
	// LHS) is still a valid symbol; register it now so lookups succeed,
	// though an unreferenced rule will simply never be reduced to.
	for _, a := range alts {
		for _, f := range a.rhs {
			if isQuoted(f) || isBareTerminal(f) {
				continue
			}
			if _, err := w.RegisterNonTerminalSymbol(f); err != nil {
				return nil, &cerr.SpecError{Cause: err}
			}
		}
	}

	r := tab.Reader()
	startSym, _ := r.ToSymbol(startText)

	ps := newProductionSet()
	augSym, _ := r.ToSymbol(startText + "'")
	ps.add(augSym, []symbol.Symbol{startSym})

	for _, a := range alts {
		lhsSym, ok := r.ToSymbol(a.lhs)
		if !ok {
			return nil, &cerr.SpecError{Cause: fmt.Errorf("undefined rule %q", a.lhs)}
		}
		rhs := make([]symbol.Symbol, 0, len(a.rhs))
		for _, f := range a.rhs {
			var text string
			if isQuoted(f) {
				text = unquote(f)
			} else {
				text = f
			}
			sym, ok := r.ToSymbol(text)
			if !ok {
				return nil, &cerr.SpecError{Cause: fmt.Errorf("undefined symbol %q in rule %q", f, a.lhs)}
			}
			rhs = append(rhs, sym)
		}
		ps.add(lhsSym, rhs)
	}

	nonTerms := r.NonTerminalSymbols()
	terms := r.TerminalSymbols()

	fs := computeFirstSets(ps, nonTerms, terms)
	states := buildAutomaton(augSym, ps, fs)
	table := buildParsingTable(augSym, states, ps, terms)

	return &CompiledGrammar{
		Symbols:     tab,
		Productions: ps.all,
		Table:       table,
		Start:       startSym,
	}, nil
}
