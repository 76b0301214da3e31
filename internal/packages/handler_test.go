package packages_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/meridianlegal/dossier/internal/packages"
	"github.com/meridianlegal/dossier/pkg/handlers"
	"github.com/meridianlegal/dossier/pkg/routes"
)

func projectID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.MustParse("7d3f8c1a-9b2e-4d5f-8a6b-1c2d3e4f5a6b")
}

type stubSystem struct {
	saveFn     func(packages.SaveCommand) (*packages.PackageVersion, error)
	currentErr error
	current    *packages.PackageVersion
	versions   []packages.VersionSummary
	getVersion *packages.PackageVersion
	getErr     error
	rollback   *packages.PackageVersion
	generate   *packages.PackageVersion
	genErr     error
	agentCfg   *packages.AgentConfig
	putErr     error
}

func (s *stubSystem) Handler() *packages.Handler { return nil }

func (s *stubSystem) Save(_ context.Context, _ uuid.UUID, _ packages.PackageType, cmd packages.SaveCommand) (*packages.PackageVersion, error) {
	return s.saveFn(cmd)
}

func (s *stubSystem) Current(_ context.Context, _ uuid.UUID, _ packages.PackageType) (*packages.PackageVersion, error) {
	return s.current, s.currentErr
}

func (s *stubSystem) ListVersions(_ context.Context, _ uuid.UUID, _ packages.PackageType) ([]packages.VersionSummary, error) {
	return s.versions, nil
}

func (s *stubSystem) GetVersion(_ context.Context, _ uuid.UUID, _ packages.PackageType, _ int) (*packages.PackageVersion, error) {
	return s.getVersion, s.getErr
}

func (s *stubSystem) Rollback(_ context.Context, _ uuid.UUID, _ packages.PackageType, _ packages.RollbackCommand) (*packages.PackageVersion, error) {
	return s.rollback, nil
}

func (s *stubSystem) Generate(_ context.Context, _ uuid.UUID, _ packages.PackageType, _ packages.GenerateCommand) (*packages.PackageVersion, error) {
	return s.generate, s.genErr
}

func (s *stubSystem) GetAgentConfig(_ context.Context, _ uuid.UUID, _ packages.PackageType) (*packages.AgentConfig, error) {
	return s.agentCfg, nil
}

func (s *stubSystem) PutAgentConfig(_ context.Context, _ uuid.UUID, _ packages.PackageType, _ packages.AgentConfigCommand) (*packages.AgentConfig, error) {
	return s.agentCfg, s.putErr
}

func newServer(t *testing.T, sys packages.System) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := packages.NewHandler(sys, logger)

	mux := http.NewServeMux()
	routes.Register(mux, handler.Routes())

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func packageURL(srv *httptest.Server, t *testing.T, pt string, suffix string) string {
	return fmt.Sprintf("%s/projects/%s/packages/%s%s", srv.URL, projectID(t), pt, suffix)
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, body io.Reader) handlers.Envelope {
	t.Helper()

	var env handlers.Envelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestHandlerSave(t *testing.T) {
	sys := &stubSystem{
		saveFn: func(cmd packages.SaveCommand) (*packages.PackageVersion, error) {
			if strings.TrimSpace(cmd.Content) == "" {
				return nil, packages.ErrEmptyContent
			}
			return &packages.PackageVersion{
				ProjectID:   projectID(t),
				PackageType: packages.PersonalStatement,
				Version:     1,
				Content:     cmd.Content,
				EditType:    packages.EditManual,
			}, nil
		},
	}
	srv := newServer(t, sys)

	t.Run("created", func(t *testing.T) {
		resp := postJSON(t, packageURL(srv, t, "personal_statement", ""), packages.SaveCommand{
			Content: "My statement.",
			Editor:  "preparer",
		})

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status: got %d, want 201", resp.StatusCode)
		}

		env := decode(t, resp.Body)
		data, ok := env.Data.(map[string]any)
		if !ok {
			t.Fatalf("data shape: got %T", env.Data)
		}
		if data["version"] != float64(1) {
			t.Errorf("version: got %v, want 1", data["version"])
		}
	})

	t.Run("empty content rejected", func(t *testing.T) {
		resp := postJSON(t, packageURL(srv, t, "personal_statement", ""), packages.SaveCommand{
			Content: "   ",
		})

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status: got %d, want 400", resp.StatusCode)
		}
	})

	t.Run("invalid package type in path", func(t *testing.T) {
		resp := postJSON(t, packageURL(srv, t, "memoir", ""), packages.SaveCommand{
			Content: "text",
		})

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status: got %d, want 400", resp.StatusCode)
		}
	})
}

func TestHandlerCurrentNoVersions(t *testing.T) {
	srv := newServer(t, &stubSystem{currentErr: packages.ErrNoVersions})

	resp, err := http.Get(packageURL(srv, t, "cv_resume", ""))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", resp.StatusCode)
	}
}

func TestHandlerGetVersionBadNumber(t *testing.T) {
	srv := newServer(t, &stubSystem{})

	for _, raw := range []string{"0", "-2", "abc"} {
		t.Run(raw, func(t *testing.T) {
			resp, err := http.Get(packageURL(srv, t, "cv_resume", "/versions/"+raw))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestHandlerRollback(t *testing.T) {
	sys := &stubSystem{
		rollback: &packages.PackageVersion{
			ProjectID:   projectID(t),
			PackageType: packages.CoverLetter,
			Version:     4,
			Content:     "restored text",
			EditType:    packages.EditManual,
			EditSummary: "rolled back to v2",
		},
	}
	srv := newServer(t, sys)

	resp := postJSON(t, packageURL(srv, t, "cover_letter", "/rollback"), packages.RollbackCommand{
		TargetVersion: 2,
		Editor:        "preparer",
	})

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", resp.StatusCode)
	}

	env := decode(t, resp.Body)
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("data shape: got %T", env.Data)
	}
	if data["edit_summary"] != "rolled back to v2" {
		t.Errorf("edit summary: got %v", data["edit_summary"])
	}
	if data["version"] != float64(4) {
		t.Errorf("version: got %v, want 4", data["version"])
	}
}

func TestHandlerGenerateFailure(t *testing.T) {
	srv := newServer(t, &stubSystem{genErr: packages.ErrGenerationFailed})

	resp := postJSON(t, packageURL(srv, t, "recommendation_letter", "/generate"), packages.GenerateCommand{})

	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status: got %d, want 502", resp.StatusCode)
	}

	env := decode(t, resp.Body)
	if env.Success {
		t.Error("success: got true, want false")
	}
}

func TestHandlerAgentConfig(t *testing.T) {
	cfg := packages.DefaultAgentConfig(projectID(t), packages.PersonalStatement)
	srv := newServer(t, &stubSystem{agentCfg: &cfg})

	resp, err := http.Get(packageURL(srv, t, "personal_statement", "/agent-config"))
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
	if data["default"] != true {
		t.Errorf("default flag: got %v, want true", data["default"])
	}
}
