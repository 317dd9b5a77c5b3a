package grammar

import "github.com/nvitucci/parcygo/grammar/symbol"

// firstSets is the standard FIRST-set / nullability table used by closure
// and lookahead computation. It is built once per compiled grammar and
// never mutated afterward.
type firstSets struct {
	set      map[symbol.Symbol]map[symbol.Symbol]struct{}
	nullable map[symbol.Symbol]bool
}

func computeFirstSets(ps *productionSet, nonTerms, terms []symbol.Symbol) *firstSets {
	fs := &firstSets{
		set:      map[symbol.Symbol]map[symbol.Symbol]struct{}{},
		nullable: map[symbol.Symbol]bool{},
	}
	for _, t := range terms {
		fs.set[t] = map[symbol.Symbol]struct{}{t: {}}
	}
	for _, n := range nonTerms {
		fs.set[n] = map[symbol.Symbol]struct{}{}
	}

	changed := true
	for changed {
		changed = false
		for _, p := range ps.all {
			if p.IsEmpty() {
				if !fs.nullable[p.LHS] {
					fs.nullable[p.LHS] = true
					changed = true
				}
				continue
			}
			allNullable := true
			for _, s := range p.RHS {
				for t := range fs.set[s] {
					if _, ok := fs.set[p.LHS][t]; !ok {
						fs.set[p.LHS][t] = struct{}{}
						changed = true
					}
				}
				if !fs.nullable[s] {
					allNullable = false
					break
				}
			}
			if allNullable && !fs.nullable[p.LHS] {
				fs.nullable[p.LHS] = true
				changed = true
			}
		}
	}
	return fs
}

// firstOfSequence computes FIRST(tail · follow), where follow is a single
// terminal symbol representing the lookahead carried into the sequence.
// This is exactly the set a dotted item [A -> a.B tail, follow] spontaneously
// generates for the closure items it produces over B.
func (fs *firstSets) firstOfSequence(tail []symbol.Symbol, follow symbol.Symbol) map[symbol.Symbol]struct{} {
	result := map[symbol.Symbol]struct{}{}
	allNullable := true
	for _, s := range tail {
		for t := range fs.set[s] {
			result[t] = struct{}{}
		}
		if !fs.nullable[s] {
			allNullable = false
			break
		}
	}
	if allNullable {
		result[follow] = struct{}{}
	}
	return result
}
