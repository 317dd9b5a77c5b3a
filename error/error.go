// Package error defines the shared error shape used across the grammar
// compiler and the parser driver: a cause plus an optional source line.
package error

import "fmt"

// SpecError wraps a lower-level error with the line of the grammar
// description (or, from the driver, the input query) it occurred at. Row
// is 0 when no line is known, e.g. errors raised before any input is read.
type SpecError struct {
	Cause error
	Row   int
}

func (e *SpecError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("error: %v", e.Cause)
	}
	return fmt.Sprintf("%v: error: %v", e.Row, e.Cause)
}

func (e *SpecError) Unwrap() error {
	return e.Cause
}
