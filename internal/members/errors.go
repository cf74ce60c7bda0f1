package members

import (
	"errors"
	"net/http"

	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

// Domain errors for membership operations.
var (
	ErrNotFound    = errors.New("membership not found")
	ErrDuplicate   = errors.New("role or membership already taken")
	ErrInvalidRole = errors.New("invalid role")
	ErrAppealSpent = errors.New("appeal already used")
)

// MapHTTPStatus maps membership domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	// A foreign key violation means the referenced conflict does not exist,
	// which reads the same as a missing resource to the caller.
	if errors.Is(err, ErrNotFound) || errors.Is(err, repository.ErrConstraint) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrAppealSpent) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidRole) {
		return http.StatusBadRequest
	}
	if errors.Is(err, authz.ErrDenied) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
