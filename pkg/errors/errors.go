// Package errors provides structured error types for the gridboard application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Every code belongs to a [Kind] that tells a caller how to react without
// enumerating codes:
//   - [KindInvalid]: the request itself is wrong (INVALID_*)
//   - [KindNotFound]: a board or widget does not exist (*_NOT_FOUND)
//   - [KindConflict]: the request is well-formed but the board's state
//     refuses it (INFEASIBLE, SESSION_ACTIVE, NO_SESSION)
//   - [KindUnsupported], [KindInternal]: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "invalid widget size: %dx%d", w, h)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStore, origErr, "load board %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidLayout    Code = "INVALID_LAYOUT"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidBoardName Code = "INVALID_BOARD_NAME"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeBoardNotFound  Code = "BOARD_NOT_FOUND"
	ErrCodeWidgetNotFound Code = "WIDGET_NOT_FOUND"

	// Placement and interaction outcomes
	ErrCodeInfeasible    Code = "INFEASIBLE"
	ErrCodeSessionActive Code = "SESSION_ACTIVE"
	ErrCodeNoSession     Code = "NO_SESSION"

	// Backend and internal errors
	ErrCodeStore       Code = "STORE"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Kind groups error codes by how a caller should react to them.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindNotFound
	KindConflict
	KindUnsupported
)

// Kind returns the group c belongs to. Unknown codes are internal.
func (c Code) Kind() Kind {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidLayout, ErrCodeInvalidConfig, ErrCodeInvalidBoardName:
		return KindInvalid
	case ErrCodeNotFound, ErrCodeBoardNotFound, ErrCodeWidgetNotFound:
		return KindNotFound
	case ErrCodeInfeasible, ErrCodeSessionActive, ErrCodeNoSession:
		return KindConflict
	case ErrCodeUnsupported:
		return KindUnsupported
	default:
		return KindInternal
	}
}

// Error carries a code, a message meant for users, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error with code and a formatted message that wraps cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Annotate prefixes the message of err's outermost *Error with context,
// keeping its code and cause. Errors without a code are wrapped with
// fallback instead.
func Annotate(err error, fallback Code, format string, args ...any) error {
	e, ok := As(err)
	if !ok {
		return Wrap(fallback, err, format, args...)
	}
	return &Error{
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...) + ": " + e.Message,
		Cause:   e.Cause,
	}
}

// As returns the outermost *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e, ok := As(err); ok {
		return e.Code
	}
	return ""
}

// KindOf returns the kind of err's code. Errors without a code are internal.
func KindOf(err error) Kind {
	return GetCode(err).Kind()
}

// UserMessage returns the message of the outermost *Error without its code
// or cause, or err's text for other errors.
func UserMessage(err error) string {
	if e, ok := As(err); ok {
		return e.Message
	}
	return err.Error()
}
