// Package errors defines the coded errors shared by the layout core, the
// session stores, the CLI and the HTTP service.
//
// Every failure carries a Code so callers can branch on it and the HTTP
// service can map it to a status:
//
//	err := errors.IndexOutOfRange(i, n)
//	if errors.Is(err, errors.ErrCodeIndexOutOfRange) {
//		// the supplier was asked for an item it does not have
//	}
//
// Wrap keeps the cause reachable through the standard errors.Is and
// errors.As:
//
//	errors.Wrap(errors.ErrCodeStoreUnavailable, err, "load snapshot %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Rejected input.
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidRange  Code = "INVALID_RANGE"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Broken host or supplier contracts, detected during a layout pass.
	ErrCodeIndexOutOfRange   Code = "INDEX_OUT_OF_RANGE"
	ErrCodeInconsistentState Code = "INCONSISTENT_STATE"

	// Session storage.
	ErrCodeSessionNotFound  Code = "SESSION_NOT_FOUND"
	ErrCodeStoreUnavailable Code = "STORE_UNAVAILABLE"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := as(err)
	return ok && e.Code == code
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix. Errors without
// a code are returned verbatim.
func UserMessage(err error) string {
	if e, ok := as(err); ok {
		return e.Message
	}
	return err.Error()
}

// IndexOutOfRange reports a request for an index outside [0, count).
func IndexOutOfRange(index, count int) *Error {
	return New(ErrCodeIndexOutOfRange, "index %d outside [0, %d)", index, count)
}
