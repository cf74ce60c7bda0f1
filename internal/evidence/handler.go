package evidence

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/pkg/handlers"
	"github.com/arbiterhq/arbiter/pkg/routes"
)

// Handler provides HTTP endpoints for evidence operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler with the given system, logger, and upload size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "evidence"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the input-scoped evidence routes.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/inputs",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}/evidence", Handler: h.List},
			{Method: "POST", Pattern: "/{id}/evidence", Handler: h.Upload},
		},
	}
}

// RowRoutes returns the flat per-attachment route group.
func (h *Handler) RowRoutes() routes.Group {
	return routes.Group{
		Prefix: "/evidence",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "GET", Pattern: "/{id}/download", Handler: h.Download},
		},
	}
}

// List returns the attachments on an input the caller may see.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p, id, ok := h.request(w, r)
	if !ok {
		return
	}

	items, err := h.sys.ListForInput(r.Context(), p, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Find returns attachment metadata by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	p, id, ok := h.request(w, r)
	if !ok {
		return
	}

	ev, err := h.sys.Find(r.Context(), p, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ev)
}

// Upload processes a multipart form upload attaching a file to an input.
// Extracts PDF page count automatically for PDF files using pdfcpu.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	p, id, ok := h.request(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	contentType := detectContentType(header.Header.Get("Content-Type"), data)
	pageCount := extractPDFPageCount(h.logger, data, contentType)

	cmd := UploadCommand{
		Data:        data,
		Filename:    header.Filename,
		ContentType: contentType,
		PageCount:   pageCount,
	}

	ev, err := h.sys.Upload(r.Context(), p, id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, ev)
}

// Download streams the attachment blob to the caller.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	p, id, ok := h.request(w, r)
	if !ok {
		return
	}

	ev, body, err := h.sys.Open(r.Context(), p, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", ev.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(ev.SizeBytes, 10))
	w.Header().Set("Content-Disposition", `attachment; filename="`+ev.Filename+`"`)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("evidence stream interrupted", "id", ev.ID, "error", err)
	}
}

func (h *Handler) request(w http.ResponseWriter, r *http.Request) (authz.Principal, uuid.UUID, bool) {
	p, ok := authz.PrincipalFrom(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, authz.ErrDenied)
		return authz.Principal{}, uuid.Nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return authz.Principal{}, uuid.Nil, false
	}

	return p, id, true
}

func detectContentType(header string, data []byte) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}

func extractPDFPageCount(logger *slog.Logger, data []byte, contentType string) *int {
	if contentType != "application/pdf" {
		return nil
	}

	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		logger.Warn("failed to extract PDF page count", "error", err)
		return nil
	}

	return &count
}
