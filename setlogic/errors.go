package setlogic

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrIO          ErrorKind = "io"
	ErrSQL         ErrorKind = "sql"
	ErrQueryParse  ErrorKind = "query_parse"
	ErrBinding     ErrorKind = "binding"
	ErrNotFound    ErrorKind = "not_found"
	ErrInvalidName ErrorKind = "invalid_name"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Name    string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	base := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Name != "" {
		base = fmt.Sprintf("%s (set=%s)", base, e.Name)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Wrap(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func New(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func NotFoundError(name string) *Error {
	return &Error{Kind: ErrNotFound, Message: "set not found", Name: name}
}

func InvalidNameError(name string) *Error {
	return &Error{Kind: ErrInvalidName, Message: "set name must be a valid expression identifier", Name: name}
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
