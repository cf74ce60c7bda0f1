package arbiter

import (
	"errors"
	"net/http"

	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/internal/decisions"
)

// Domain errors for the decision engine.
var (
	ErrNotFound   = errors.New("conflict not found")
	ErrWrongStage = errors.New("conflict is not awaiting a decision")
	ErrNoVerdict  = errors.New("model returned no usable verdict")
)

// MapHTTPStatus maps engine errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrWrongStage) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNoVerdict) {
		return http.StatusBadGateway
	}
	if errors.Is(err, authz.ErrDenied) {
		return http.StatusForbidden
	}
	if status := decisions.MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	return http.StatusInternalServerError
}
