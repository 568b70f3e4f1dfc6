package domain

import (
	"errors"
	"fmt"
)

// Account errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateAccount   = errors.New("user already exists with this email/mobile")
	ErrAccountNotFound    = errors.New("account not found")
)

// Document errors
var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Signup errors
var (
	ErrSignupNotFound = errors.New("signup not found, please start again")
	ErrOTPInvalid     = errors.New("invalid OTP")
	ErrOTPExpired     = errors.New("OTP expired, please request a new one")
	ErrOTPAttempts    = errors.New("too many OTP attempts, please request a new one")
	ErrOTPNotVerified = errors.New("OTP not verified")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrForbidden       = errors.New("forbidden")
)

// Catch-all errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrSystem           = errors.New("system error")
)

// ValidationError reports the field a format check rejected
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a validation error for field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidationFailed) match any ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
