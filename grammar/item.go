package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nvitucci/parcygo/grammar/symbol"
)

// lr1Item is a dotted production carrying a single lookahead terminal, the
// unit of the canonical LR(1) construction.
type lr1Item struct {
	prod      *Production
	dot       int
	lookahead symbol.Symbol
}

func (it *lr1Item) atDot() (symbol.Symbol, bool) {
	if it.dot >= len(it.prod.RHS) {
		return symbol.SymbolNil, false
	}
	return it.prod.RHS[it.dot], true
}

func (it *lr1Item) reducible() bool {
	return it.dot >= len(it.prod.RHS)
}

func (it *lr1Item) advance() *lr1Item {
	return &lr1Item{prod: it.prod, dot: it.dot + 1, lookahead: it.lookahead}
}

func (it *lr1Item) coreKey() string {
	return fmt.Sprintf("%v.%v", it.prod.Num, it.dot)
}

func (it *lr1Item) key() string {
	return fmt.Sprintf("%v.%v@%v", it.prod.Num, it.dot, it.lookahead)
}

// itemSet is a closed set of lr1Items sharing one automaton state. core is
// the sorted, lookahead-independent fingerprint used to merge LR(1) states
// into LALR(1) states.
type itemSet struct {
	items map[string]*lr1Item
	core  string
}

func newItemSet() *itemSet {
	return &itemSet{items: map[string]*lr1Item{}}
}

func (s *itemSet) add(it *lr1Item) bool {
	k := it.key()
	if _, ok := s.items[k]; ok {
		return false
	}
	s.items[k] = it
	return true
}

func (s *itemSet) computeCore() {
	cores := map[string]struct{}{}
	for _, it := range s.items {
		cores[it.coreKey()] = struct{}{}
	}
	keys := make([]string, 0, len(cores))
	for k := range cores {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s.core = strings.Join(keys, "|")
}

func (s *itemSet) sorted() []*lr1Item {
	its := make([]*lr1Item, 0, len(s.items))
	for _, it := range s.items {
		its = append(its, it)
	}
	sort.Slice(its, func(i, j int) bool { return its[i].key() < its[j].key() })
	return its
}

// closure expands a kernel item set to include every item reachable by
// repeatedly expanding non-terminals immediately after the dot, per the
// classic closure(I) construction.
func closure(kernel *itemSet, ps *productionSet, fs *firstSets) *itemSet {
	result := newItemSet()
	worklist := make([]*lr1Item, 0, len(kernel.items))
	for _, it := range kernel.sorted() {
		result.add(it)
		worklist = append(worklist, it)
	}
	for len(worklist) > 0 {
		it := worklist[0]
		worklist = worklist[1:]

		sym, ok := it.atDot()
		if !ok || sym.IsTerminal() {
			continue
		}
		tail := it.prod.RHS[it.dot+1:]
		lookaheads := fs.firstOfSequence(tail, it.lookahead)
		for _, p := range ps.withLHS(sym) {
			for la := range lookaheads {
				newIt := &lr1Item{prod: p, dot: 0, lookahead: la}
				if result.add(newIt) {
					worklist = append(worklist, newIt)
				}
			}
		}
	}
	result.computeCore()
	return result
}

func gotoSet(from *itemSet, sym symbol.Symbol, ps *productionSet, fs *firstSets) *itemSet {
	kernel := newItemSet()
	for _, it := range from.sorted() {
		s, ok := it.atDot()
		if !ok || s != sym {
			continue
		}
		kernel.add(it.advance())
	}
	if len(kernel.items) == 0 {
		return nil
	}
	return closure(kernel, ps, fs)
}

// automatonState is one LALR(1) state of the compiled parser: the merge of
// every canonical LR(1) state sharing its core, with lookaheads unioned.
type automatonState struct {
	num         int
	core        string
	items       *itemSet
	transitions map[symbol.Symbol]int
}

// buildAutomaton runs the canonical LR(1) construction and merges states
// with identical cores into LALR(1) states, exactly as a hand-verifiable
// alternative to propagating lookaheads through a DeRemer-Pennello pass.
func buildAutomaton(start symbol.Symbol, ps *productionSet, fs *firstSets) []*automatonState {
	augmented := ps.withLHS(start)[0]
	startKernel := newItemSet()
	startKernel.add(&lr1Item{prod: augmented, dot: 0, lookahead: symbol.SymbolEOF})
	startState := closure(startKernel, ps, fs)

	statesByCore := map[string]*itemSet{startState.core: startState}
	order := []string{startState.core}
	worklist := []*itemSet{startState}

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		nextSyms := map[symbol.Symbol]struct{}{}
		for _, it := range cur.sorted() {
			if s, ok := it.atDot(); ok {
				nextSyms[s] = struct{}{}
			}
		}
		syms := make([]symbol.Symbol, 0, len(nextSyms))
		for s := range nextSyms {
			syms = append(syms, s)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })

		for _, sym := range syms {
			to := gotoSet(cur, sym, ps, fs)
			if to == nil {
				continue
			}
			if existing, ok := statesByCore[to.core]; ok {
				merged := false
				for _, it := range to.items {
					if existing.add(it) {
						merged = true
					}
				}
				if merged {
					worklist = append(worklist, existing)
				}
				continue
			}
			statesByCore[to.core] = to
			order = append(order, to.core)
			worklist = append(worklist, to)
		}
	}

	states := make([]*automatonState, len(order))
	coreToNum := map[string]int{}
	for i, c := range order {
		coreToNum[c] = i
	}
	for i, c := range order {
		states[i] = &automatonState{
			num:         i,
			core:        c,
			items:       statesByCore[c],
			transitions: map[symbol.Symbol]int{},
		}
	}
	for i, c := range order {
		cur := statesByCore[c]
		nextSyms := map[symbol.Symbol]struct{}{}
		for _, it := range cur.sorted() {
			if s, ok := it.atDot(); ok {
				nextSyms[s] = struct{}{}
			}
		}
		for sym := range nextSyms {
			to := gotoSet(cur, sym, ps, fs)
			if to == nil {
				continue
			}
			states[i].transitions[sym] = coreToNum[to.core]
		}
	}
	return states
}
