package contents_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/meridianlegal/dossier/internal/contents"
	"github.com/meridianlegal/dossier/pkg/handlers"
	"github.com/meridianlegal/dossier/pkg/pagination"
	"github.com/meridianlegal/dossier/pkg/routes"
)

type stubSystem struct {
	listResult    *pagination.PageResult[contents.ContentBlock]
	contextResult string
	contextErr    error
	extractResult *contents.ExtractResult
	extractErr    error
	clearResult   *contents.ClearResult
}

func (s *stubSystem) Handler() *contents.Handler { return nil }

func (s *stubSystem) List(
	_ context.Context,
	_ uuid.UUID,
	_ pagination.PageRequest,
	_ contents.Filters,
) (*pagination.PageResult[contents.ContentBlock], error) {
	return s.listResult, nil
}

func (s *stubSystem) ListAll(_ context.Context, _ uuid.UUID) ([]contents.ContentBlock, error) {
	return nil, nil
}

func (s *stubSystem) Context(_ context.Context, _ uuid.UUID, _ bool) (string, error) {
	return s.contextResult, s.contextErr
}

func (s *stubSystem) Extract(_ context.Context, _ uuid.UUID) (*contents.ExtractResult, error) {
	return s.extractResult, s.extractErr
}

func (s *stubSystem) Clear(_ context.Context, _ uuid.UUID) (*contents.ClearResult, error) {
	return s.clearResult, nil
}

func newServer(t *testing.T, sys contents.System) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := contents.NewHandler(sys, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})

	mux := http.NewServeMux()
	routes.Register(mux, handler.Routes())

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func decode(t *testing.T, body io.Reader) handlers.Envelope {
	t.Helper()

	var env handlers.Envelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestHandlerList(t *testing.T) {
	listed := pagination.NewPageResult(
		[]contents.ContentBlock{{SourceFile: "cv.pdf", Content: "text"}},
		1, 1, 20,
	)
	sys := &stubSystem{listResult: &listed}
	srv := newServer(t, sys)

	resp, err := http.Get(srv.URL + "/projects/" + uuid.NewString() + "/content-blocks")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}

	env := decode(t, resp.Body)
	if !env.Success {
		t.Errorf("success: got false, want true")
	}
}

func TestHandlerListBadProjectID(t *testing.T) {
	srv := newServer(t, &stubSystem{})

	resp, err := http.Get(srv.URL + "/projects/not-a-uuid/content-blocks")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", resp.StatusCode)
	}

	env := decode(t, resp.Body)
	if env.Success {
		t.Errorf("success: got true, want false")
	}
	if env.Error == "" {
		t.Errorf("error message: got empty")
	}
}

func TestHandlerContext(t *testing.T) {
	sys := &stubSystem{contextResult: "[cv.pdf]\nLed the platform team."}
	srv := newServer(t, sys)

	resp, err := http.Get(srv.URL + "/projects/" + uuid.NewString() + "/context?with_sources=true")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}

	env := decode(t, resp.Body)
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("data shape: got %T", env.Data)
	}
	if data["context"] != sys.contextResult {
		t.Errorf("context: got %v", data["context"])
	}
}

func TestHandlerContextNoBlocks(t *testing.T) {
	srv := newServer(t, &stubSystem{contextErr: contents.ErrNoBlocks})

	resp, err := http.Get(srv.URL + "/projects/" + uuid.NewString() + "/context")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", resp.StatusCode)
	}
}

func TestHandlerExtract(t *testing.T) {
	sys := &stubSystem{extractResult: &contents.ExtractResult{FilesProcessed: 2, BlocksCreated: 7}}
	srv := newServer(t, sys)

	resp, err := http.Post(srv.URL+"/projects/"+uuid.NewString()+"/extract", "application/json", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}

	env := decode(t, resp.Body)
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("data shape: got %T", env.Data)
	}
	if data["blocks_created"] != float64(7) {
		t.Errorf("blocks created: got %v, want 7", data["blocks_created"])
	}
}

func TestHandlerExtractUnavailable(t *testing.T) {
	srv := newServer(t, &stubSystem{extractErr: contents.ErrExtractionUnavailable})

	resp, err := http.Post(srv.URL+"/projects/"+uuid.NewString()+"/extract", "application/json", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status: got %d, want 502", resp.StatusCode)
	}
}

func TestHandlerClear(t *testing.T) {
	sys := &stubSystem{clearResult: &contents.ClearResult{BlocksDeleted: 5, ClassificationsDeleted: 3}}
	srv := newServer(t, sys)

	resp, err := http.Post(srv.URL+"/projects/"+uuid.NewString()+"/extraction/clear", "application/json", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}

	env := decode(t, resp.Body)
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("data shape: got %T", env.Data)
	}
	if data["blocks_deleted"] != float64(5) {
		t.Errorf("blocks deleted: got %v, want 5", data["blocks_deleted"])
	}
}
