package parser

import "fmt"

// SyntaxError is raised when the token stream cannot be derived from the
// grammar: the driver's ACTION table has no entry for the current state
// and lookahead token.
type SyntaxError struct {
	Line  int
	Token string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("unexpected token %q", e.Token)
}
