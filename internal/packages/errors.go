package packages

import (
	"errors"
	"net/http"

	"github.com/meridianlegal/dossier/internal/workflow"
)

// Domain errors for package version operations.
var (
	ErrInvalidProjectID   = errors.New("invalid project id")
	ErrInvalidPackageType = errors.New("invalid package type")
	ErrEmptyContent       = errors.New("content must not be empty")
	ErrInvalidEditType    = errors.New("invalid edit type")
	ErrInvalidPrompt      = errors.New("system prompt and user template must not be empty")
	ErrNoVersions         = errors.New("no versions exist for package")
	ErrVersionNotFound    = errors.New("version not found")
	ErrDuplicateVersion   = errors.New("version already exists")
	ErrGenerationFailed   = errors.New("generation failed")
)

// MapHTTPStatus maps package domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidProjectID),
		errors.Is(err, ErrInvalidPackageType),
		errors.Is(err, ErrEmptyContent),
		errors.Is(err, ErrInvalidEditType),
		errors.Is(err, ErrInvalidPrompt),
		errors.Is(err, workflow.ErrNoContext):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoVersions), errors.Is(err, ErrVersionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateVersion):
		return http.StatusConflict
	case errors.Is(err, ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
