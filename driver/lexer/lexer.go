// Package lexer tokenizes Cypher query text for the parser driver. It knows
// nothing about grammar rules; it only turns characters into a flat token
// stream, including a trailing end-of-input token.
package lexer

import (
	"fmt"
	"strings"
	"unicode"

	cerr "github.com/nvitucci/parcygo/error"
)

// EOFKind is the token Kind emitted once at the end of the stream. It
// matches the symbol table's reserved end-of-file symbol text, so a driver
// can look a Token's Kind up in the grammar's symbol table uniformly,
// whether or not it happens to be EOF.
const EOFKind = "<eof>"

// Token is one lexeme. Kind is either a structural class (IDENT, STRING,
// INT), a keyword's canonical upper-case spelling (MATCH, WHERE, ...), or a
// punctuation lexeme verbatim ("(", "<=", ...). Line and Col are 1-based.
type Token struct {
	Kind string
	Text string
	Line int
	Col  int
}

var keywords = map[string]string{
	"MATCH": "MATCH", "WHERE": "WHERE", "RETURN": "RETURN",
	"ORDER": "ORDER", "BY": "BY", "SKIP": "SKIP", "LIMIT": "LIMIT",
	"DISTINCT": "DISTINCT", "AS": "AS",
	"AND": "AND", "OR": "OR", "XOR": "XOR", "NOT": "NOT",
	"ASC": "ASC", "DESC": "DESC",
	"TRUE": "TRUE", "FALSE": "FALSE", "NULL": "NULL",
}

// multiChar lists punctuation lexemes of more than one character, tried
// before single-character punctuation so that e.g. "<=" isn't lexed as
// "<" followed by "=".
var multiChar = []string{"<=", ">=", "<>", ".."}

const singleChar = "(){}[]:,|.*-<>="

// Lex tokenizes src and returns its tokens followed by one EOFKind token.
func Lex(src string) ([]Token, error) {
	var toks []Token
	line := 1
	lineStart := 0
	i := 0
	n := len(src)
	col := func(start int) int { return start - lineStart + 1 }

	for i < n {
		c := src[i]

		switch {
		case c == '\n':
			line++
			i++
			lineStart = i
			continue
		case c == ' ' || c == '\t' || c == '\r':
			i++
			continue
		case c == '/' && i+1 < n && src[i+1] == '/':
			for i < n && src[i] != '\n' {
				i++
			}
			continue
		}

		if c == '\'' || c == '"' {
			start := i
			quote := c
			i++
			for i < n && src[i] != quote {
				if src[i] == '\n' {
					return nil, &cerr.SpecError{Row: line, Cause: fmt.Errorf("unterminated string literal")}
				}
				i++
			}
			if i >= n {
				return nil, &cerr.SpecError{Row: line, Cause: fmt.Errorf("unterminated string literal")}
			}
			i++ // consume closing quote
			toks = append(toks, Token{Kind: "STRING", Text: src[start:i], Line: line, Col: col(start)})
			continue
		}

		if unicode.IsDigit(rune(c)) {
			start := i
			for i < n && unicode.IsDigit(rune(src[i])) {
				i++
			}
			toks = append(toks, Token{Kind: "INT", Text: src[start:i], Line: line, Col: col(start)})
			continue
		}

		if isIdentStart(rune(c)) {
			start := i
			for i < n && isIdentPart(rune(src[i])) {
				i++
			}
			text := src[start:i]
			if kind, ok := keywords[strings.ToUpper(text)]; ok {
				toks = append(toks, Token{Kind: kind, Text: text, Line: line, Col: col(start)})
			} else {
				toks = append(toks, Token{Kind: "IDENT", Text: text, Line: line, Col: col(start)})
			}
			continue
		}

		matched := false
		for _, m := range multiChar {
			if strings.HasPrefix(src[i:], m) {
				toks = append(toks, Token{Kind: m, Text: m, Line: line, Col: col(i)})
				i += len(m)
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		if strings.ContainsRune(singleChar, rune(c)) {
			toks = append(toks, Token{Kind: string(c), Text: string(c), Line: line, Col: col(i)})
			i++
			continue
		}

		return nil, &cerr.SpecError{Row: line, Cause: fmt.Errorf("unexpected character %q", c)}
	}

	toks = append(toks, Token{Kind: EOFKind, Text: "", Line: line, Col: col(i)})
	return toks, nil
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
