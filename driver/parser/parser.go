package parser

import (
	cerr "github.com/nvitucci/parcygo/error"
	"github.com/nvitucci/parcygo/driver/lexer"
	"github.com/nvitucci/parcygo/grammar"
)

type stackEntry struct {
	state int
	node  *Node
}

// Parse runs the classic shift-reduce driver loop over toks using g's
// ACTION/GOTO table, returning the root of the resulting concrete parse
// tree. toks must end with a lexer.EOFKind token.
func Parse(g *grammar.CompiledGrammar, toks []lexer.Token) (*Node, error) {
	r := g.Symbols.Reader()
	stack := []stackEntry{{state: g.Table.StartState()}}
	pos := 0

	for {
		tok := toks[pos]
		sym, ok := r.ToSymbol(tok.Kind)
		if !ok {
			return nil, &cerr.SpecError{Row: tok.Line, Cause: &SyntaxError{Line: tok.Line, Token: tok.Text}}
		}

		cur := stack[len(stack)-1].state
		action := g.Table.Action(cur, sym)
		switch action.Type {
		case grammar.ActionShift:
			leaf := &Node{Kind: tok.Kind, Text: tok.Text, Line: tok.Line, Col: tok.Col}
			stack = append(stack, stackEntry{state: action.Target, node: leaf})
			pos++

		case grammar.ActionReduce:
			prod := g.Productions[action.Target]
			n := len(prod.RHS)
			children := make([]*Node, n)
			for i := 0; i < n; i++ {
				children[i] = stack[len(stack)-n+i].node
			}
			stack = stack[:len(stack)-n]

			lhsText := g.LHSText(prod)
			node := &Node{Rule: lhsText, Kind: lhsText, Children: children}

			from := stack[len(stack)-1].state
			to, ok := g.Table.GoTo(from, prod.LHS)
			if !ok {
				return nil, &cerr.SpecError{Row: tok.Line, Cause: &SyntaxError{Line: tok.Line, Token: tok.Text}}
			}
			stack = append(stack, stackEntry{state: to, node: node})

		case grammar.ActionAccept:
			return stack[len(stack)-1].node, nil

		default:
			return nil, &cerr.SpecError{Row: tok.Line, Cause: &SyntaxError{Line: tok.Line, Token: tok.Text}}
		}
	}
}
