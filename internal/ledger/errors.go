package ledger

import (
	"errors"
	"fmt"
)

// Kind classifies engine errors so callers can react without string matching.
// Business-rule failures travel through ordinary return values as *Error.
type Kind string

const (
	KindInvalidRequest    Kind = "INVALID_REQUEST"
	KindNotFound          Kind = "NOT_FOUND"
	KindInsufficientFunds Kind = "INSUFFICIENT_FUNDS"
	KindInternal          Kind = "INTERNAL"
)

// Error is the structured error returned by the engine. Message is safe to
// show to callers; wrapped storage errors stay internal.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewInvalidRequest builds an InvalidRequest error
func NewInvalidRequest(message string) *Error {
	return &Error{Kind: KindInvalidRequest, Message: message}
}

// NewNotFound builds a NotFound error
func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NewInsufficientFunds builds an InsufficientFunds error
func NewInsufficientFunds(message string) *Error {
	return &Error{Kind: KindInsufficientFunds, Message: message}
}

// NewInternal builds an Internal error wrapping the underlying cause
func NewInternal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, cause: cause}
}

// KindOf returns the Kind of err, or KindInternal when err is not an engine error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err is an engine error of the given kind
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
