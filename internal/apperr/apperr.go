// Package apperr defines the error taxonomy shared by services and handlers.
// Services return (wrapped) sentinels; the HTTP layer maps them to statuses
// with Status and never retries.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrValidation         = errors.New("invalid input")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUsername  = errors.New("username already taken for this role")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrWeakPassword       = errors.New("password does not meet strength requirements")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrAlreadyReserved    = errors.New("ticket is already reserved")
)

// Status maps a taxonomy error to its HTTP status code. Anything outside the
// taxonomy is treated as an internal error.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrDuplicateUsername),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrWeakPassword),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrAlreadyReserved):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
