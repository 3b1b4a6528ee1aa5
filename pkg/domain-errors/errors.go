// Package domainerrors provides coded errors for business outcomes.
//
// Services return these so transport layers can map a failure to a
// response without string matching. Infrastructure layers return
// pkg/platform/sentinel errors instead; services translate at the
// boundary. CodeInternal errors carry internal detail for logs but
// must never surface that detail to callers.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for transport mapping.
type Code string

const (
	// CodeConflict marks violations of uniqueness or state invariants:
	// an already-classified profile, a duplicate registration number.
	CodeConflict Code = "conflict"
	// CodeValidation marks references to lookup rows that do not exist.
	CodeValidation Code = "validation_error"
	// CodeBadRequest marks malformed or incomplete caller input.
	CodeBadRequest Code = "bad_request"
	// CodeInvalidInput marks values that fail trust-boundary parsing.
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound marks a missing entity.
	CodeNotFound Code = "not_found"
	// CodeUnauthorized marks missing or invalid authentication.
	CodeUnauthorized Code = "unauthorized"
	// CodeInternal marks unexpected failures; detail stays internal.
	CodeInternal Code = "internal_error"
	// CodeTimeout marks context cancellation or deadline expiry.
	CodeTimeout Code = "timeout"
)

// Error is a coded domain error. Message is safe to return to callers
// for every code except CodeInternal.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New constructs a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf constructs a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error, preserving
// the cause for errors.Is/As chains and logging.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code carried by err, or CodeInternal when err is
// not a domain error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the caller-safe message for err. Internal errors
// collapse to a stable generic message so storage detail never leaks.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Code != CodeInternal {
		return de.Message
	}
	return "an internal error occurred"
}
