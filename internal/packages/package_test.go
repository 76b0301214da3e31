package packages_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/meridianlegal/dossier/internal/packages"
	"github.com/meridianlegal/dossier/internal/workflow"
)

func TestParsePackageType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    packages.PackageType
		wantErr bool
	}{
		{"personal statement", "personal_statement", packages.PersonalStatement, false},
		{"cv resume", "cv_resume", packages.CVResume, false},
		{"recommendation letter", "recommendation_letter", packages.RecommendationLetter, false},
		{"cover letter", "cover_letter", packages.CoverLetter, false},
		{"unknown", "thesis", "", true},
		{"empty", "", "", true},
		{"case sensitive", "Personal_Statement", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := packages.ParsePackageType(tt.input)
			if tt.wantErr {
				if !errors.Is(err, packages.ErrInvalidPackageType) {
					t.Fatalf("error: got %v, want ErrInvalidPackageType", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPackageTypeUnmarshalJSON(t *testing.T) {
	var pt packages.PackageType

	if err := json.Unmarshal([]byte(`"cv_resume"`), &pt); err != nil {
		t.Fatalf("valid type: %v", err)
	}
	if pt != packages.CVResume {
		t.Errorf("got %q, want cv_resume", pt)
	}

	if err := json.Unmarshal([]byte(`"memoir"`), &pt); !errors.Is(err, packages.ErrInvalidPackageType) {
		t.Errorf("invalid type: got %v, want ErrInvalidPackageType", err)
	}
}

func TestPackageTypes(t *testing.T) {
	got := packages.PackageTypes()
	if len(got) != 4 {
		t.Fatalf("length: got %d, want 4", len(got))
	}
	for _, pt := range got {
		if _, err := packages.ParsePackageType(pt.String()); err != nil {
			t.Errorf("type %q does not round-trip: %v", pt, err)
		}
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid project", packages.ErrInvalidProjectID, http.StatusBadRequest},
		{"invalid package type", packages.ErrInvalidPackageType, http.StatusBadRequest},
		{"empty content", packages.ErrEmptyContent, http.StatusBadRequest},
		{"invalid edit type", packages.ErrInvalidEditType, http.StatusBadRequest},
		{"invalid prompt", packages.ErrInvalidPrompt, http.StatusBadRequest},
		{"no context", workflow.ErrNoContext, http.StatusBadRequest},
		{"no versions", packages.ErrNoVersions, http.StatusNotFound},
		{"version not found", packages.ErrVersionNotFound, http.StatusNotFound},
		{"duplicate version", packages.ErrDuplicateVersion, http.StatusConflict},
		{"generation failed", packages.ErrGenerationFailed, http.StatusBadGateway},
		{"wrapped generation failure", fmt.Errorf("workflow: %w", packages.ErrGenerationFailed), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := packages.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestDefaultAgentConfig(t *testing.T) {
	for _, pt := range packages.PackageTypes() {
		t.Run(pt.String(), func(t *testing.T) {
			cfg := packages.DefaultAgentConfig(projectID(t), pt)

			if !cfg.Default {
				t.Error("default flag: got false, want true")
			}
			if cfg.SystemPrompt == "" {
				t.Error("system prompt: got empty")
			}
			if cfg.UserTemplate == "" {
				t.Error("user template: got empty")
			}
			if cfg.UpdatedAt != nil {
				t.Errorf("updated at: got %v, want nil", cfg.UpdatedAt)
			}
		})
	}
}
