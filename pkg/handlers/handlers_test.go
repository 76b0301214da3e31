package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meridianlegal/dossier/pkg/handlers"
)

func TestRespondJSON(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		data       any
		wantStatus int
	}{
		{
			name:       "200 with map",
			status:     http.StatusOK,
			data:       map[string]string{"key": "value"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "201 with struct",
			status:     http.StatusCreated,
			data:       struct{ ID int }{ID: 42},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handlers.RespondJSON(rec, tt.status, tt.data)

			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.wantStatus {
				t.Errorf("status: got %d, want %d", res.StatusCode, tt.wantStatus)
			}
			if ct := res.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("content-type: got %s", ct)
			}

			body, _ := io.ReadAll(res.Body)
			var env handlers.Envelope
			if err := json.Unmarshal(body, &env); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if !env.Success {
				t.Error("success: got false, want true")
			}
			if env.Error != "" {
				t.Errorf("error: got %q, want empty", env.Error)
			}
			if env.Data == nil {
				t.Error("data: got nil")
			}
		})
	}
}

func TestRespondError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rec := httptest.NewRecorder()
	handlers.RespondError(rec, logger, http.StatusConflict, errors.New("run already in progress"))

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusConflict {
		t.Errorf("status: got %d, want %d", res.StatusCode, http.StatusConflict)
	}

	body, _ := io.ReadAll(res.Body)
	var env handlers.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if env.Success {
		t.Error("success: got true, want false")
	}
	if env.Error != "run already in progress" {
		t.Errorf("error: got %q", env.Error)
	}
	if env.Data != nil {
		t.Errorf("data: got %v, want nil", env.Data)
	}
}
