package questions

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

// Handler provides HTTP endpoints for question operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "questions"),
	}
}

// Routes returns the conflict-scoped question routes.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/conflicts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}/questions", Handler: h.List},
			{Method: "POST", Pattern: "/{id}/questions", Handler: h.Ask},
		},
	}
}

// RowRoutes returns the flat per-question route group.
func (h *Handler) RowRoutes() routes.Group {
	return routes.Group{
		Prefix: "/questions",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{id}/answer", Handler: h.Answer},
		},
	}
}

// List returns the questions visible to the caller within a conflict.
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

// Ask issues a question to a member of the conflict.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	p, id, ok := h.request(w, r)
	if !ok {
		return
	}

	var cmd AskCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errBadRequest)
		return
	}

	q, err := h.sys.Ask(r.Context(), p, id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, q)
}

// Answer records the addressee's answer to a question.
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	p, id, ok := h.request(w, r)
	if !ok {
		return
	}

	var cmd AnswerCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errBadRequest)
		return
	}

	q, err := h.sys.Answer(r.Context(), p, id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, q)
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
