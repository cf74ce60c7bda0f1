package inputs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/internal/inputs"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

type mockSystem struct {
	createFn func(ctx context.Context, p authz.Principal, conflictID uuid.UUID, cmd inputs.CreateCommand) (*inputs.Input, error)
	updateFn func(ctx context.Context, p authz.Principal, id uuid.UUID, cmd inputs.UpdateCommand) (*inputs.Input, error)
}

func (m *mockSystem) Handler() *inputs.Handler { return nil }

func (m *mockSystem) ListForConflict(ctx context.Context, p authz.Principal, conflictID uuid.UUID) ([]inputs.Input, error) {
	return nil, nil
}

func (m *mockSystem) Find(ctx context.Context, p authz.Principal, id uuid.UUID) (*inputs.Input, error) {
	return nil, inputs.ErrNotFound
}

func (m *mockSystem) Create(ctx context.Context, p authz.Principal, conflictID uuid.UUID, cmd inputs.CreateCommand) (*inputs.Input, error) {
	return m.createFn(ctx, p, conflictID, cmd)
}

func (m *mockSystem) Update(ctx context.Context, p authz.Principal, id uuid.UUID, cmd inputs.UpdateCommand) (*inputs.Input, error) {
	return m.updateFn(ctx, p, id, cmd)
}

func (m *mockSystem) AllForConflict(ctx context.Context, conflictID uuid.UUID) ([]inputs.Input, error) {
	return nil, nil
}

func serve(sys inputs.System, req *http.Request) *httptest.ResponseRecorder {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := inputs.NewHandler(sys, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /conflicts/{id}/inputs", h.Create)
	mux.HandleFunc("PATCH /inputs/{id}", h.Update)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func withPrincipal(req *http.Request) *http.Request {
	p := authz.Principal{UserID: uuid.New(), Lang: "en"}
	return req.WithContext(authz.WithPrincipal(req.Context(), p))
}

func TestCreateAfterCollecting(t *testing.T) {
	sys := &mockSystem{
		createFn: func(context.Context, authz.Principal, uuid.UUID, inputs.CreateCommand) (*inputs.Input, error) {
			return nil, inputs.ErrStageClosed
		},
	}

	req := httptest.NewRequest(
		"POST", "/conflicts/"+uuid.NewString()+"/inputs",
		strings.NewReader(`{"content":"my side of the story"}`),
	)
	rec := serve(sys, withPrincipal(req))

	if rec.Code != http.StatusConflict {
		t.Errorf("status: got %d, want 409", rec.Code)
	}
}

func TestUpdateAfterCollecting(t *testing.T) {
	sys := &mockSystem{
		updateFn: func(context.Context, authz.Principal, uuid.UUID, inputs.UpdateCommand) (*inputs.Input, error) {
			return nil, inputs.ErrStageClosed
		},
	}

	req := httptest.NewRequest(
		"PATCH", "/inputs/"+uuid.NewString(),
		strings.NewReader(`{"content":"a correction"}`),
	)
	rec := serve(sys, withPrincipal(req))

	if rec.Code != http.StatusConflict {
		t.Errorf("status: got %d, want 409", rec.Code)
	}
}

func TestCreateRequiresPrincipal(t *testing.T) {
	sys := &mockSystem{}

	req := httptest.NewRequest(
		"POST", "/conflicts/"+uuid.NewString()+"/inputs",
		strings.NewReader(`{"content":"anonymous"}`),
	)
	rec := serve(sys, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", inputs.ErrNotFound, http.StatusNotFound},
		{"missing conflict reference", repository.ErrConstraint, http.StatusNotFound},
		{"duplicate", inputs.ErrDuplicate, http.StatusConflict},
		{"stage closed", inputs.ErrStageClosed, http.StatusConflict},
		{"empty content", inputs.ErrEmptyContent, http.StatusBadRequest},
		{"content too long", inputs.ErrContentTooLong, http.StatusBadRequest},
		{"denied", authz.ErrDenied, http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inputs.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v): got %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
