package apperr

import "errors"

// Account lifecycle errors
var (
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("already in use")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountNotVerified   = errors.New("account not verified")
	ErrExpired              = errors.New("verification code has expired")
	ErrInvalidCode          = errors.New("invalid verification code")
	ErrAlreadyVerified      = errors.New("account is already verified")
	ErrSameAsOld            = errors.New("new password must be different from the current password")
	ErrConfirmationMismatch = errors.New("confirmation does not match")
)

// Request errors
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Notification errors
var (
	ErrInvalidRecipient = errors.New("invalid recipient")
	ErrInvalidContent   = errors.New("invalid content")
)

// ErrTransient marks storage or mail transport failures.
var ErrTransient = errors.New("temporarily unavailable")

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// FieldErrors carries per-field validation messages. It matches ErrValidation.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return ErrValidation.Error()
}

func (e FieldErrors) Is(target error) bool {
	return target == ErrValidation
}
