package evidence

import (
	"errors"
	"net/http"

	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

// Domain errors for evidence operations.
var (
	ErrNotFound     = errors.New("evidence not found")
	ErrDuplicate    = errors.New("evidence already exists")
	ErrInvalidFile  = errors.New("invalid or missing file")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrStageClosed  = errors.New("conflict is no longer collecting")
)

// MapHTTPStatus maps evidence domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, repository.ErrConstraint) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidFile) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrStageClosed) {
		return http.StatusConflict
	}
	if errors.Is(err, authz.ErrDenied) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
