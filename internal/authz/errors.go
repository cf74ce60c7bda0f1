package authz

import (
	"errors"
	"net/http"
)

// ErrDenied is the generic permission failure for rejected writes. It carries
// no row-level detail so callers cannot distinguish a denied row from a
// missing one.
var ErrDenied = errors.New("permission denied")

// MapHTTPStatus maps authorization errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrDenied) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
