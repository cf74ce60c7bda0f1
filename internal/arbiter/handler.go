package arbiter

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

// Handler provides the HTTP endpoint that triggers a verdict.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "arbiter"),
	}
}

// Routes returns the route group definition for the decision endpoint.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/conflicts",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{id}/decide", Handler: h.Decide},
		},
	}
}

// Decide produces and records a verdict for the conflict.
func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	p, ok := authz.PrincipalFrom(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, authz.ErrDenied)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errBadRequest)
		return
	}

	var cmd DecideCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errBadRequest)
		return
	}

	decision, err := h.sys.Decide(r.Context(), p, id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, decision)
}
