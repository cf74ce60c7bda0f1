package users

import (
	"errors"
	"net/http"

	"github.com/arbiterhq/arbiter/pkg/repository"
)

// Domain errors for user operations.
var (
	ErrNotFound    = errors.New("user not found")
	ErrDuplicate   = errors.New("user already exists")
	ErrInvalidLang = errors.New("unsupported language")
)

// MapHTTPStatus maps user domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidLang) || errors.Is(err, repository.ErrConstraint) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
