package auth

import (
	"errors"
	"net/http"
)

// Domain errors for authentication operations.
var (
	ErrInvalidPhone    = errors.New("phone number is not valid")
	ErrCodeMismatch    = errors.New("verification code does not match")
	ErrCodeExpired     = errors.New("verification code expired or already used")
	ErrTooManyAttempts = errors.New("too many verification attempts")
	ErrInvalidToken    = errors.New("token is not valid")
)

// MapHTTPStatus maps authentication errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidPhone) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrCodeMismatch) ||
		errors.Is(err, ErrCodeExpired) ||
		errors.Is(err, ErrInvalidToken) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrTooManyAttempts) {
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}
