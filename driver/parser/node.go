// Package parser drives a compiled LALR(1) grammar over a lexer token
// stream and builds a concrete parse tree. It has no notion of Cypher; the
// ast package turns its trees into typed queries.
package parser

// Node is one concrete parse tree node. A leaf (Rule == "") corresponds to
// one lexed token; an interior node corresponds to one grammar production
// reducing its Children, in right-hand-side order, to Rule. Kind names
// the node's grammar symbol either way: the rule name for an interior
// node (same as Rule), or the terminal's kind for a leaf (e.g. IDENT,
// STRING, MATCH) as distinct from its literal Text.
type Node struct {
	Rule     string
	Kind     string
	Text     string
	Line     int
	Col      int
	Children []*Node
}

func (n *Node) IsLeaf() bool {
	return n.Rule == ""
}
