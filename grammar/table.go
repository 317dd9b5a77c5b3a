package grammar

import (
	"fmt"

	"github.com/nvitucci/parcygo/grammar/symbol"
)

// ActionType distinguishes the three things a parser can do once it has
// looked at its current state and the next terminal.
type ActionType int

const (
	ActionError ActionType = iota
	ActionShift
	ActionReduce
	ActionAccept
)

type Action struct {
	Type   ActionType
	Target int // state to shift to, or production number to reduce by
}

// Conflict records a shift/reduce or reduce/reduce decision the table
// builder had to make. Grammars in this package are designed to avoid them,
// but the builder never refuses to produce a table over one; it resolves
// shift/reduce in favor of the shift and reduce/reduce in favor of the
// earlier-declared production, matching conventional yacc behavior.
type Conflict struct {
	State     int
	Symbol    symbol.Symbol
	Chose     Action
	Discarded Action
}

// ParsingTable is the compiled ACTION/GOTO automaton a driver walks to
// parse a token stream. It is immutable once built and safe to share
// across concurrent parses.
type ParsingTable struct {
	StateCount  int
	action      map[int]map[symbol.Symbol]Action
	goTo        map[int]map[symbol.Symbol]int
	Conflicts   []*Conflict
	startState  int
	startSymbol symbol.Symbol
}

func (t *ParsingTable) Action(state int, sym symbol.Symbol) Action {
	if row, ok := t.action[state]; ok {
		if a, ok := row[sym]; ok {
			return a
		}
	}
	return Action{Type: ActionError}
}

func (t *ParsingTable) GoTo(state int, sym symbol.Symbol) (int, bool) {
	if row, ok := t.goTo[state]; ok {
		if s, ok := row[sym]; ok {
			return s, true
		}
	}
	return 0, false
}

func (t *ParsingTable) StartState() int {
	return t.startState
}

func buildParsingTable(start symbol.Symbol, states []*automatonState, ps *productionSet, terms []symbol.Symbol) *ParsingTable {
	t := &ParsingTable{
		StateCount:  len(states),
		action:      map[int]map[symbol.Symbol]Action{},
		goTo:        map[int]map[symbol.Symbol]int{},
		startState:  0,
		startSymbol: start,
	}
	augmentedNum := ps.withLHS(start)[0].Num

	for _, st := range states {
		row := map[symbol.Symbol]Action{}
		t.action[st.num] = row
		gotoRow := map[symbol.Symbol]int{}
		t.goTo[st.num] = gotoRow

		for sym, to := range st.transitions {
			if sym.IsTerminal() {
				t.setAction(st.num, sym, Action{Type: ActionShift, Target: to})
			} else {
				gotoRow[sym] = to
			}
		}

		for _, it := range st.items.sorted() {
			if !it.reducible() {
				continue
			}
			if it.prod.Num == augmentedNum && it.lookahead == symbol.SymbolEOF {
				t.setAction(st.num, symbol.SymbolEOF, Action{Type: ActionAccept})
				continue
			}
			t.setAction(st.num, it.lookahead, Action{Type: ActionReduce, Target: it.prod.Num})
		}
	}
	return t
}

// setAction installs an action, recording and resolving any conflict with
// whatever is already installed for (state, sym).
func (t *ParsingTable) setAction(state int, sym symbol.Symbol, a Action) {
	row := t.action[state]
	existing, ok := row[sym]
	if !ok {
		row[sym] = a
		return
	}
	if existing.Type == a.Type && existing.Target == a.Target {
		return
	}

	var chosen, discarded Action
	switch {
	case existing.Type == ActionShift || a.Type == ActionShift:
		// Shift/reduce: prefer the shift.
		if existing.Type == ActionShift {
			chosen, discarded = existing, a
		} else {
			chosen, discarded = a, existing
		}
	default:
		// Reduce/reduce: prefer the production declared first.
		if existing.Target <= a.Target {
			chosen, discarded = existing, a
		} else {
			chosen, discarded = a, existing
		}
	}
	row[sym] = chosen
	t.Conflicts = append(t.Conflicts, &Conflict{State: state, Symbol: sym, Chose: chosen, Discarded: discarded})
}

func (a Action) String() string {
	switch a.Type {
	case ActionShift:
		return fmt.Sprintf("shift %v", a.Target)
	case ActionReduce:
		return fmt.Sprintf("reduce %v", a.Target)
	case ActionAccept:
		return "accept"
	default:
		return "error"
	}
}
