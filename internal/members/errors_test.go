package members_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/internal/members"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", members.ErrNotFound, http.StatusNotFound},
		{"missing conflict reference", repository.ErrConstraint, http.StatusNotFound},
		{"duplicate", members.ErrDuplicate, http.StatusConflict},
		{"appeal spent", members.ErrAppealSpent, http.StatusConflict},
		{"invalid role", members.ErrInvalidRole, http.StatusBadRequest},
		{"denied", authz.ErrDenied, http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := members.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v): got %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
