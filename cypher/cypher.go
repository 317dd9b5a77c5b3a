// Package cypher is the public entry point: Parse turns Cypher query text
// into a *ast.Query. The grammar is compiled once, lazily, from an
// embedded resource, and the compiled table is safe to share across
// concurrent calls to Parse.
package cypher

import (
	_ "embed"
	"sync"

	"github.com/nvitucci/parcygo/ast"
	"github.com/nvitucci/parcygo/driver/lexer"
	"github.com/nvitucci/parcygo/driver/parser"
	cerr "github.com/nvitucci/parcygo/error"
	"github.com/nvitucci/parcygo/grammar"
)

//go:embed cypher.grammar
var grammarSource string

var (
	compileOnce sync.Once
	compiled    *grammar.CompiledGrammar
	compileErr  error
)

func compiledGrammar() (*grammar.CompiledGrammar, error) {
	compileOnce.Do(func() {
		compiled, compileErr = grammar.Compile(grammarSource)
	})
	return compiled, compileErr
}

// ParseError is returned by Parse for any lexical or syntactic error in
// the input query. It wraps the underlying cause and, when known, the
// 1-based source line it occurred at.
type ParseError struct {
	inner *cerr.SpecError
}

func (e *ParseError) Error() string {
	return e.inner.Error()
}

func (e *ParseError) Unwrap() error {
	return e.inner
}

// Parse compiles the grammar on first use and parses query into a typed
// Query. It is safe to call concurrently from multiple goroutines; each
// call gets its own parse tree and AST.
func Parse(query string) (*ast.Query, error) {
	tree, err := ParseTree(query)
	if err != nil {
		return nil, err
	}
	q, err := ast.Transform(tree)
	if err != nil {
		return nil, wrapParseError(err)
	}
	return q, nil
}

// ParseTree returns the concrete parse tree for query without transforming
// it to an AST. Parse builds on it; outside this package, cmd/cyphercheck's
// --tree flag is its only caller in this module.
func ParseTree(query string) (*parser.Node, error) {
	g, err := compiledGrammar()
	if err != nil {
		return nil, wrapParseError(err)
	}
	toks, err := lexer.Lex(query)
	if err != nil {
		return nil, wrapParseError(err)
	}
	tree, err := parser.Parse(g, toks)
	if err != nil {
		return nil, wrapParseError(err)
	}
	return tree, nil
}

func wrapParseError(err error) *ParseError {
	if se, ok := err.(*cerr.SpecError); ok {
		return &ParseError{inner: se}
	}
	return &ParseError{inner: &cerr.SpecError{Cause: err}}
}
