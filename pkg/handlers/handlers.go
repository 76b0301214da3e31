// Package handlers provides the uniform JSON response envelope used by
// every API endpoint. Successful responses carry {"success": true, "data": …};
// failures carry {"success": false, "error": "…"}.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the wire shape of every JSON API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RespondJSON writes data wrapped in a success envelope with the given status.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{Success: true, Data: data})
}

// RespondError logs err and writes a failure envelope with the given status.
// The error message is surfaced verbatim; callers are responsible for mapping
// domain errors to appropriate status codes first.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logger.Error("request failed", "status", status, "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{Success: false, Error: err.Error()})
}
