package packages

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/meridianlegal/dossier/pkg/handlers"
	"github.com/meridianlegal/dossier/pkg/routes"
)

// Handler provides HTTP endpoints for package version operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "packages"),
	}
}

// Routes returns the route group definition for package endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/projects/{projectId}/packages/{type}",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Current},
			{Method: "POST", Pattern: "", Handler: h.Save},
			{Method: "GET", Pattern: "/versions", Handler: h.ListVersions},
			{Method: "GET", Pattern: "/versions/{version}", Handler: h.GetVersion},
			{Method: "POST", Pattern: "/rollback", Handler: h.Rollback},
			{Method: "POST", Pattern: "/generate", Handler: h.Generate},
			{Method: "GET", Pattern: "/agent-config", Handler: h.GetAgentConfig},
			{Method: "PUT", Pattern: "/agent-config", Handler: h.PutAgentConfig},
		},
	}
}

func (h *Handler) parseKey(r *http.Request) (uuid.UUID, PackageType, error) {
	projectID, err := uuid.Parse(r.PathValue("projectId"))
	if err != nil {
		return uuid.Nil, "", ErrInvalidProjectID
	}

	pt, err := ParsePackageType(r.PathValue("type"))
	if err != nil {
		return uuid.Nil, "", err
	}

	return projectID, pt, nil
}

// Current returns the latest version of the package.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	projectID, pt, err := h.parseKey(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	v, err := h.sys.Current(r.Context(), projectID, pt)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, v)
}

// Save appends a new version from the request body.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	projectID, pt, err := h.parseKey(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	var cmd SaveCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	v, err := h.sys.Save(r.Context(), projectID, pt, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, v)
}

// ListVersions returns the package's version history, newest first.
func (h *Handler) ListVersions(w http.ResponseWriter, r *http.Request) {
	projectID, pt, err := h.parseKey(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	versions, err := h.sys.ListVersions(r.Context(), projectID, pt)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, versions)
}

// GetVersion returns a single version by number.
func (h *Handler) GetVersion(w http.ResponseWriter, r *http.Request) {
	projectID, pt, err := h.parseKey(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	version, err := strconv.Atoi(r.PathValue("version"))
	if err != nil || version < 1 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrVersionNotFound)
		return
	}

	v, err := h.sys.GetVersion(r.Context(), projectID, pt, version)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, v)
}

// Rollback appends a new version carrying a prior version's content.
func (h *Handler) Rollback(w http.ResponseWriter, r *http.Request) {
	projectID, pt, err := h.parseKey(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	var cmd RollbackCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	v, err := h.sys.Rollback(r.Context(), projectID, pt, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, v)
}

// Generate produces a new AI version of the package.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	projectID, pt, err := h.parseKey(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	var cmd GenerateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	v, err := h.sys.Generate(r.Context(), projectID, pt, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, v)
}

// GetAgentConfig returns the stored or default generation configuration.
func (h *Handler) GetAgentConfig(w http.ResponseWriter, r *http.Request) {
	projectID, pt, err := h.parseKey(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	cfg, err := h.sys.GetAgentConfig(r.Context(), projectID, pt)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, cfg)
}

// PutAgentConfig stores the generation configuration for the package.
func (h *Handler) PutAgentConfig(w http.ResponseWriter, r *http.Request) {
	projectID, pt, err := h.parseKey(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	var cmd AgentConfigCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	cfg, err := h.sys.PutAgentConfig(r.Context(), projectID, pt, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, cfg)
}
