package classifications

import (
	"errors"
	"net/http"
)

// Domain errors for classification operations.
var (
	ErrInvalidProjectID = errors.New("invalid project id")
	ErrNotFound         = errors.New("classification item not found")
	ErrDuplicate        = errors.New("classification item already exists")
	ErrNoContent        = errors.New("no content blocks to classify")
	ErrRunActive        = errors.New("classification run already in progress")
	ErrInvalidTaxonomy  = errors.New("invalid taxonomy assignment")
	ErrInvalidScore     = errors.New("relevance score must be within [0,1]")
)

// MapHTTPStatus maps classification domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidProjectID),
		errors.Is(err, ErrNoContent),
		errors.Is(err, ErrInvalidTaxonomy),
		errors.Is(err, ErrInvalidScore):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrRunActive), errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
