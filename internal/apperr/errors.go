// Package apperr defines the error kinds the service layer reports and the
// HTTP status each kind maps to at the Fiber boundary.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrConflict    = errors.New("already exists")
	ErrNotFound    = errors.New("not found")
	ErrStatus      = errors.New("wrong status")
	ErrCredential  = errors.New("wrong credentials")
	ErrCodeInvalid = errors.New("confirmation code invalid")
	ErrCodeExpired = errors.New("confirmation code expired")
	ErrToken       = errors.New("token invalid or expired")
	ErrForbidden   = errors.New("forbidden")
	ErrInternal    = errors.New("internal error")
)

// Error carries an error kind plus the localized message shown to the caller.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

// New wraps a kind with a user-facing message. errors.Is against the kind
// still works through Unwrap.
func New(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Message returns the user-facing text or a fallback for unclassified errors.
func Message(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Msg
	}
	return fallback
}

// StatusOf maps an error kind to its HTTP status. Unclassified errors are
// internal by definition.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrCodeInvalid), errors.Is(err, ErrCodeExpired), errors.Is(err, ErrToken):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrCredential):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrStatus):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
