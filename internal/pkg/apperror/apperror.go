// Package apperror defines the operational error type returned to clients.
// Operational errors are anticipated failures (bad input, auth failures,
// missing documents) that are safe to describe in a response. Anything else
// is treated as a programming or unknown error and never leaks details.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the JSend status word for the error: "fail" for client
// errors, "error" for server errors.
func (e *Error) Status() string {
	if e.Code >= 400 && e.Code < 500 {
		return "fail"
	}
	return "error"
}

func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func Newf(code int, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Common constructors, one per status the API uses.

func BadRequest(message string) *Error   { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }
func Forbidden(message string) *Error    { return New(http.StatusForbidden, message) }
func NotFound(message string) *Error     { return New(http.StatusNotFound, message) }
func Internal(message string) *Error     { return New(http.StatusInternalServerError, message) }

// IsOperational reports whether err is (or wraps) an operational *Error.
func IsOperational(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
