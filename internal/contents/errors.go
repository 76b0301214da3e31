package contents

import (
	"errors"
	"net/http"
)

// Domain errors for content block operations.
var (
	ErrInvalidProjectID      = errors.New("invalid project id")
	ErrNotFound              = errors.New("content block not found")
	ErrDuplicate             = errors.New("content block already exists")
	ErrNoBlocks              = errors.New("no content blocks extracted for project")
	ErrExtractionUnavailable = errors.New("extraction service unavailable")
)

// MapHTTPStatus maps content domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidProjectID) || errors.Is(err, ErrNoBlocks) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrExtractionUnavailable) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
