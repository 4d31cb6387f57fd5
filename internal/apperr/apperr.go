// Package apperr defines the API error taxonomy. Every user-visible failure
// carries a stable machine-readable code alongside the human message so
// clients can branch without string matching.
package apperr

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int    `json:"status_code"`
	Code    string `json:"error_code"`
	Message string `json:"error"`
}

func (e *Error) Error() string { return e.Message }

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func Validation(code, message string) *Error {
	return New(http.StatusBadRequest, code, message)
}

func NotFound(code, message string) *Error {
	return New(http.StatusNotFound, code, message)
}

func Conflict(code, message string) *Error {
	return New(http.StatusConflict, code, message)
}

func Forbidden(code, message string) *Error {
	return New(http.StatusForbidden, code, message)
}

func Unauthenticated(message string) *Error {
	return New(http.StatusUnauthorized, "AUTH_REQUIRED", message)
}

// Database wraps an unexpected persistence failure as a generic 500.
// The driver error is not exposed to the client.
func Database(err error) *Error {
	return New(http.StatusInternalServerError, "DATABASE_ERROR",
		"A database error occurred. Please try again.")
}

// From extracts an *Error from err, collapsing anything unrecognized into
// the generic database error.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Database(err)
}
