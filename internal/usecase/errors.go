package usecase

import "errors"

// Sentinel errors returned by the services. Handlers map these onto HTTP
// status codes with errors.Is.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrForbidden         = errors.New("operation not allowed for this user")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrCodesNotReady     = errors.New("verification codes not generated yet")
	ErrCodeMismatch      = errors.New("verification code does not match")
	ErrConflict          = errors.New("booking was modified concurrently")
	ErrNotAvailable      = errors.New("provider is not available for the requested window")
	ErrValidation        = errors.New("validation failed")
	ErrEmailTaken        = errors.New("email is already registered")
	ErrInvalidCredential = errors.New("invalid email or password")
)
