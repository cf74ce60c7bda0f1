package inputs

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

// Handler provides HTTP endpoints for input operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "inputs"),
	}
}

// Routes returns the route group definition for input endpoints.
// Collection routes nest under the conflict path; row routes are flat.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/conflicts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}/inputs", Handler: h.List},
			{Method: "POST", Pattern: "/{id}/inputs", Handler: h.Create},
		},
	}
}

// RowRoutes returns the flat per-input route group.
func (h *Handler) RowRoutes() routes.Group {
	return routes.Group{
		Prefix: "/inputs",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "PATCH", Pattern: "/{id}", Handler: h.Update},
		},
	}
}

// List returns the inputs visible to the caller within a conflict.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p, id, ok := h.request(w, r)
	if !ok {
		return
	}

	items, err := h.sys.ListForConflict(r.Context(), p, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Create submits a new input authored by the caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, id, ok := h.request(w, r)
	if !ok {
		return
	}

	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errBadRequest)
		return
	}

	in, err := h.sys.Create(r.Context(), p, id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, in)
}

// Find returns a single input if the caller may see it.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	p, id, ok := h.request(w, r)
	if !ok {
		return
	}

	in, err := h.sys.Find(r.Context(), p, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, in)
}

// Update edits an input while its conflict is still collecting.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	p, id, ok := h.request(w, r)
	if !ok {
		return
	}

	var cmd UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errBadRequest)
		return
	}

	in, err := h.sys.Update(r.Context(), p, id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, in)
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
