// Package apperr carries domain failures with an HTTP status and a message
// safe to return to clients. Anything that is not an *Error surfaces as a
// generic internal error at the transport boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status  int
	Message string
	// Err is the underlying cause, if any. It is logged, never serialized.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Wrap attaches a cause to a status-coded error.
func Wrap(status int, message string, err error) *Error {
	return &Error{Status: status, Message: message, Err: err}
}

func InvalidInput(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// InsufficientBalance rejects an expense that would drive a wallet negative.
func InsufficientBalance() *Error {
	return New(http.StatusBadRequest, "insufficient balance")
}

// InvalidIdentity rejects an identity token that cannot be verified or lacks
// required claims.
func InvalidIdentity(err error) *Error {
	return Wrap(http.StatusUnauthorized, "invalid identity token", err)
}

// StatusOf extracts the HTTP status from err, defaulting to 500 for
// unclassified failures.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// MessageOf extracts the client-safe message from err. Unclassified failures
// collapse to a generic message so internals never leak.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal server error"
}

// Is reports whether err is an *Error with the given status.
func Is(err error, status int) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == status
}
