// Package argerr provides the structured error kind used at every
// library/CLI boundary in vlfchart.
package argerr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure the way spec.md §7 enumerates: every operation
// that can fail surfaces exactly one of these to its caller.
type Kind string

const (
	MissingInput     Kind = "missing_input"
	MissingTemplate  Kind = "missing_template"
	InvalidTemplate  Kind = "invalid_template"
	LegendExtraction Kind = "legend_extraction"
	BadUsage         Kind = "bad_usage"
	Unexpected       Kind = "unexpected"
)

// Error is the single structured object every kind surfaces as; none of the
// kinds are recovered internally.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an *Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an *Error carrying an underlying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// As reports whether err is (or wraps) an *Error, returning it if so.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
