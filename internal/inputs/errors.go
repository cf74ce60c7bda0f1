package inputs

import (
	"errors"
	"net/http"

	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

// Domain errors for input operations.
var (
	ErrNotFound       = errors.New("input not found")
	ErrDuplicate      = errors.New("input already exists")
	ErrEmptyContent   = errors.New("content must not be empty")
	ErrContentTooLong = errors.New("content exceeds maximum length")
	ErrStageClosed    = errors.New("conflict is no longer collecting inputs")
)

// MapHTTPStatus maps input domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, repository.ErrConstraint) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrStageClosed) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrEmptyContent) || errors.Is(err, ErrContentTooLong) {
		return http.StatusBadRequest
	}
	if errors.Is(err, authz.ErrDenied) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
