package contents

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/meridianlegal/dossier/pkg/handlers"
	"github.com/meridianlegal/dossier/pkg/pagination"
	"github.com/meridianlegal/dossier/pkg/routes"
)

// Handler provides HTTP endpoints for content block operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// ContextResponse wraps the assembled context blob.
type ContextResponse struct {
	Context string `json:"context"`
}

// NewHandler creates a Handler with the given system, logger, and
// pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "contents"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for content block endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/projects/{projectId}",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/content-blocks", Handler: h.List},
			{Method: "GET", Pattern: "/context", Handler: h.Context},
			{Method: "POST", Pattern: "/extract", Handler: h.Extract},
			{Method: "POST", Pattern: "/extraction/clear", Handler: h.Clear},
		},
	}
}

// List returns a paginated list of a project's content blocks with optional
// query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(r.PathValue("projectId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidProjectID)
		return
	}

	page := pagination.FromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), projectID, page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Context returns the project's assembled evidentiary context. The
// with_sources query parameter enables citation annotations.
func (h *Handler) Context(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(r.PathValue("projectId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidProjectID)
		return
	}

	withSources := r.URL.Query().Get("with_sources") == "true"

	blob, err := h.sys.Context(r.Context(), projectID, withSources)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ContextResponse{Context: blob})
}

// Extract triggers extraction for the project's source files and persists
// the resulting content blocks.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(r.PathValue("projectId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidProjectID)
		return
	}

	result, err := h.sys.Extract(r.Context(), projectID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Clear deletes the project's extraction data.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(r.PathValue("projectId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidProjectID)
		return
	}

	result, err := h.sys.Clear(r.Context(), projectID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
