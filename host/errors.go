package host

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the failure classes the platform distinguishes. Host
// services wrap these so addons can match with errors.Is regardless of the
// message.
var (
	ErrBadRequest     = errors.New("bad request")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrNotImplemented = errors.New("not implemented")
)

// Error carries an HTTP status alongside a message. It wraps the matching
// sentinel so both errors.Is and status mapping work.
type Error struct {
	Status   int
	Message  string
	sentinel error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.sentinel }

func newError(status int, sentinel error, format string, args ...any) *Error {
	return &Error{
		Status:   status,
		Message:  fmt.Sprintf(format, args...),
		sentinel: sentinel,
	}
}

// BadRequest returns a 400 error.
func BadRequest(format string, args ...any) *Error {
	return newError(http.StatusBadRequest, ErrBadRequest, format, args...)
}

// Unauthorized returns a 401 error.
func Unauthorized(format string, args ...any) *Error {
	return newError(http.StatusUnauthorized, ErrUnauthorized, format, args...)
}

// Forbidden returns a 403 error.
func Forbidden(format string, args ...any) *Error {
	return newError(http.StatusForbidden, ErrForbidden, format, args...)
}

// NotFound returns a 404 error.
func NotFound(format string, args ...any) *Error {
	return newError(http.StatusNotFound, ErrNotFound, format, args...)
}

// NotImplemented returns a 501 error.
func NotImplemented(format string, args ...any) *Error {
	return newError(http.StatusNotImplemented, ErrNotImplemented, format, args...)
}

// StatusOf returns the HTTP status for an error: the embedded status for
// *Error values, otherwise 500.
func StatusOf(err error) int {
	var he *Error
	if errors.As(err, &he) {
		return he.Status
	}
	return http.StatusInternalServerError
}
