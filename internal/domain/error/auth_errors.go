// Package error defines domain-specific errors for the Budgetwise application.
package error

import "errors"

// Auth domain errors. Token issuance belongs to the external auth service;
// this API only validates bearer tokens, so the surface here is small.
var (
	// ErrMissingToken is returned when no bearer token is provided.
	ErrMissingToken = errors.New("missing token")

	// ErrInvalidToken is returned when the bearer token fails validation.
	ErrInvalidToken = errors.New("invalid token")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUT-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	ErrCodeMissingToken AuthErrorCode = "AUT-010001"
	ErrCodeInvalidToken AuthErrorCode = "AUT-010002"
	ErrCodeRateLimited  AuthErrorCode = "AUT-010003"
)

// AuthError represents an authentication error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
