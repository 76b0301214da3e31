package classifications

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/meridianlegal/dossier/pkg/handlers"
	"github.com/meridianlegal/dossier/pkg/pagination"
	"github.com/meridianlegal/dossier/pkg/routes"
)

// Handler provides HTTP endpoints for classification operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and
// pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "classifications"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for classification endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/projects/{projectId}",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/classify", Handler: h.Classify},
			{Method: "GET", Pattern: "/classification-progress", Handler: h.Progress},
			{Method: "GET", Pattern: "/classifications", Handler: h.List},
			{Method: "POST", Pattern: "/classifications", Handler: h.Create},
			{Method: "GET", Pattern: "/classifications/{id}", Handler: h.Find},
			{Method: "PUT", Pattern: "/classifications/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/classifications/{id}", Handler: h.Delete},
		},
	}
}

func (h *Handler) parseProject(r *http.Request) (uuid.UUID, error) {
	projectID, err := uuid.Parse(r.PathValue("projectId"))
	if err != nil {
		return uuid.Nil, ErrInvalidProjectID
	}
	return projectID, nil
}

// Classify starts a background classification run and returns the initial
// progress snapshot.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	projectID, err := h.parseProject(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	p, err := h.sys.StartRun(r.Context(), projectID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusAccepted, p)
}

// Progress returns the project's classification run snapshot.
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	projectID, err := h.parseProject(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	p, err := h.sys.Progress(r.Context(), projectID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

// List returns a paginated list of the project's classification items with
// optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	projectID, err := h.parseProject(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
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

// Find returns a single classification item.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	projectID, err := h.parseProject(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	it, err := h.sys.Find(r.Context(), projectID, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, it)
}

// Create inserts a manual classification item.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, err := h.parseProject(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	it, err := h.sys.Create(r.Context(), projectID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, it)
}

// Update edits a classification item's assignment and scoring.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	projectID, err := h.parseProject(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	var cmd UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	it, err := h.sys.Update(r.Context(), projectID, id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, it)
}

// Delete removes a classification item.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID, err := h.parseProject(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	if err := h.sys.Delete(r.Context(), projectID, id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
