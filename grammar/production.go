package grammar

import (
	"fmt"
	"strings"

	"github.com/nvitucci/parcygo/grammar/symbol"
)

// A Production is one alternative of a rule: LHS derives the sequence RHS.
// Num is its position in the compiled grammar's production table; production
// 0 is always the augmented start production S' -> S.
type Production struct {
	Num int
	LHS symbol.Symbol
	RHS []symbol.Symbol
}

func newProduction(num int, lhs symbol.Symbol, rhs []symbol.Symbol) *Production {
	return &Production{Num: num, LHS: lhs, RHS: rhs}
}

func (p *Production) IsEmpty() bool {
	return len(p.RHS) == 0
}

func (p *Production) String() string {
	elems := make([]string, len(p.RHS))
	for i, s := range p.RHS {
		elems[i] = s.String()
	}
	return fmt.Sprintf("%v: %v", p.LHS, strings.Join(elems, " "))
}

// productionSet holds every production of a grammar, indexed by LHS for
// closure computation.
type productionSet struct {
	all   []*Production
	byLHS map[symbol.Symbol][]*Production
}

func newProductionSet() *productionSet {
	return &productionSet{
		byLHS: map[symbol.Symbol][]*Production{},
	}
}

func (ps *productionSet) add(lhs symbol.Symbol, rhs []symbol.Symbol) *Production {
	p := newProduction(len(ps.all), lhs, rhs)
	ps.all = append(ps.all, p)
	ps.byLHS[lhs] = append(ps.byLHS[lhs], p)
	return p
}

func (ps *productionSet) withLHS(lhs symbol.Symbol) []*Production {
	return ps.byLHS[lhs]
}
