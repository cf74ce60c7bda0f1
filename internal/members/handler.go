package members

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/pkg/handlers"
	"github.com/arbiterhq/arbiter/pkg/routes"
)

var errBadRequest = errors.New("invalid request")

// Handler provides HTTP endpoints for membership operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "members"),
	}
}

// Routes returns the route group definition for membership endpoints,
// nested under the conflict path.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/conflicts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}/members", Handler: h.List},
			{Method: "POST", Pattern: "/{id}/members", Handler: h.Join},
			{Method: "PATCH", Pattern: "/{id}/members/me", Handler: h.SetReady},
			{Method: "POST", Pattern: "/{id}/appeal", Handler: h.UseAppeal},
		},
	}
}

// List returns all members of a conflict the caller belongs to.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p, conflictID, ok := h.request(w, r)
	if !ok {
		return
	}

	items, err := h.sys.List(r.Context(), p, conflictID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Join adds the caller to a conflict under a vacant role.
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	p, conflictID, ok := h.request(w, r)
	if !ok {
		return
	}

	var cmd JoinCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errBadRequest)
		return
	}

	m, err := h.sys.Join(r.Context(), p, conflictID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, m)
}

// SetReady updates the caller's own ready-for-decision flag.
func (h *Handler) SetReady(w http.ResponseWriter, r *http.Request) {
	p, conflictID, ok := h.request(w, r)
	if !ok {
		return
	}

	var cmd ReadyCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errBadRequest)
		return
	}

	m, err := h.sys.SetReady(r.Context(), p, conflictID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, m)
}

// UseAppeal consumes the caller's one appeal on a decided conflict.
func (h *Handler) UseAppeal(w http.ResponseWriter, r *http.Request) {
	p, conflictID, ok := h.request(w, r)
	if !ok {
		return
	}

	m, err := h.sys.UseAppeal(r.Context(), p, conflictID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, m)
}

func (h *Handler) request(w http.ResponseWriter, r *http.Request) (authz.Principal, uuid.UUID, bool) {
	p, ok := authz.PrincipalFrom(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, authz.ErrDenied)
		return authz.Principal{}, uuid.Nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errBadRequest)
		return authz.Principal{}, uuid.Nil, false
	}

	return p, id, true
}
