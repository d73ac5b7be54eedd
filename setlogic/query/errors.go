package query

import (
	"errors"
	"fmt"
)

// SyntaxError reports malformed expression text.
type SyntaxError struct {
	Expression string
	Pos        int // rune offset into Expression, -1 when unknown
	Msg        string
}

func (e *SyntaxError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("syntax error in %q: %s", e.Expression, e.Msg)
	}
	return fmt.Sprintf("syntax error at position %d in %q: %s", e.Pos, e.Expression, e.Msg)
}

// BindingError reports a leaf whose sub-query result was not supplied.
type BindingError struct {
	Name string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("no result bound for sub-query %q", e.Name)
}

// IsSyntaxError reports whether err is or wraps a *SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}

// IsBindingError reports whether err is or wraps a *BindingError.
func IsBindingError(err error) bool {
	var be *BindingError
	return errors.As(err, &be)
}
