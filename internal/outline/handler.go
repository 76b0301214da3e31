package outline

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/meridianlegal/dossier/pkg/handlers"
	"github.com/meridianlegal/dossier/pkg/routes"
)

// Handler provides HTTP endpoints for outline operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "outline"),
	}
}

// Routes returns the route group definition for outline endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/projects/{projectId}/outline",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Get},
			{Method: "POST", Pattern: "/generate", Handler: h.Generate},
		},
	}
}

// Get returns the stored outline for the project.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(r.PathValue("projectId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidProjectID)
		return
	}

	o, err := h.sys.Get(r.Context(), projectID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, o)
}

// Generate rebuilds the project's outline synchronously and returns it.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(r.PathValue("projectId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidProjectID)
		return
	}

	o, err := h.sys.Generate(r.Context(), projectID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, o)
}
