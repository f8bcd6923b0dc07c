// Package apperr defines the error taxonomy shared by the orchestration core
// and the HTTP layer. Errors carry an explicit kind instead of relying on
// type hierarchies; handlers map the kind to an HTTP status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for propagation and HTTP rendering.
type Kind int

const (
	// KindInternal is the default for unexpected failures.
	KindInternal Kind = iota
	// KindBadRequest covers malformed input and wrapped domain failures.
	KindBadRequest
	// KindUnauthorized means no caller identity was established.
	KindUnauthorized
	// KindForbidden means the role is insufficient or ownership mismatched.
	KindForbidden
	// KindNotFound means an article, tag, or file ID did not resolve.
	KindNotFound
)

// Error is a kinded error with a message and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface. The wrapped cause's message is
// appended so domain failures surface their underlying reason.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error with the given kind and a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error with the given kind wrapping an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the outermost *Error in err's chain, or
// KindInternal for plain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err's outermost kind matches the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error to the HTTP status code it should render as.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
