package outline

import (
	"errors"
	"net/http"

	"github.com/meridianlegal/dossier/internal/workflow"
)

// Domain errors for outline operations.
var (
	ErrInvalidProjectID = errors.New("invalid project id")
	ErrNotFound         = errors.New("outline not found")
	ErrDuplicate        = errors.New("outline already exists")
	ErrSynthesisFailed  = errors.New("outline synthesis failed")
)

// MapHTTPStatus maps outline domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidProjectID), errors.Is(err, workflow.ErrNoContext):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSynthesisFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
