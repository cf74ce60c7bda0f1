package questions

import (
	"errors"
	"net/http"

	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

// Domain errors for question operations.
var (
	ErrNotFound        = errors.New("question not found")
	ErrDuplicate       = errors.New("question already exists")
	ErrEmptyText       = errors.New("text must not be empty")
	ErrNotMember       = errors.New("addressee is not a member of the conflict")
	ErrAlreadyAnswered = errors.New("question already answered")
)

// MapHTTPStatus maps question domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, repository.ErrConstraint) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrAlreadyAnswered) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrEmptyText) || errors.Is(err, ErrNotMember) {
		return http.StatusBadRequest
	}
	if errors.Is(err, authz.ErrDenied) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
