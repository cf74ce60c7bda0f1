package conflicts

import (
	"errors"
	"net/http"

	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

// Domain errors for conflict operations.
var (
	ErrNotFound          = errors.New("conflict not found")
	ErrDuplicate         = errors.New("conflict already exists")
	ErrInvalidTitle      = errors.New("title must not be empty")
	ErrInvalidLanguage   = errors.New("unsupported language")
	ErrInvalidRole       = errors.New("creator role must be a party")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// MapHTTPStatus maps conflict domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidTransition) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidTitle) ||
		errors.Is(err, ErrInvalidLanguage) ||
		errors.Is(err, ErrInvalidRole) ||
		errors.Is(err, repository.ErrConstraint) {
		return http.StatusBadRequest
	}
	if errors.Is(err, authz.ErrDenied) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
