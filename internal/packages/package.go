// Package packages implements the document package version ledger: an
// append-only, gapless version history per (project, package type), the
// generation flow that appends AI-drafted versions, and the per-package
// agent configuration that steers generation.
package packages

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PackageType identifies one of the document packages a case produces.
type PackageType string

// Supported package types.
const (
	PersonalStatement    PackageType = "personal_statement"
	CVResume             PackageType = "cv_resume"
	RecommendationLetter PackageType = "recommendation_letter"
	CoverLetter          PackageType = "cover_letter"
)

var packageTypes = map[PackageType]struct{}{
	PersonalStatement:    {},
	CVResume:             {},
	RecommendationLetter: {},
	CoverLetter:          {},
}

// ParsePackageType validates a raw string against the closed package type
// set.
func ParsePackageType(s string) (PackageType, error) {
	pt := PackageType(s)
	if _, ok := packageTypes[pt]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPackageType, s)
	}
	return pt, nil
}

// PackageTypes returns the closed set of supported package types.
func PackageTypes() []PackageType {
	return []PackageType{PersonalStatement, CVResume, RecommendationLetter, CoverLetter}
}

func (p PackageType) String() string { return string(p) }

// UnmarshalJSON validates package types arriving in request bodies.
func (p *PackageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	pt, err := ParsePackageType(s)
	if err != nil {
		return err
	}
	*p = pt
	return nil
}

// EditType records how a version came to exist.
type EditType string

// Supported edit types.
const (
	EditManual EditType = "manual"
	EditAI     EditType = "ai"
)

// PackageVersion is one immutable row in the version ledger. For a given
// (project, package type) the version numbers form a dense sequence 1..N;
// the current version is the row with the highest number.
type PackageVersion struct {
	ProjectID   uuid.UUID   `json:"project_id"`
	PackageType PackageType `json:"package_type"`
	Version     int         `json:"version"`
	Content     string      `json:"content"`
	EditType    EditType    `json:"edit_type"`
	EditSummary string      `json:"edit_summary"`
	Editor      string      `json:"editor"`
	WordCount   int         `json:"word_count"`
	CreatedAt   time.Time   `json:"created_at"`
}

// VersionSummary is the content-free listing shape: full metadata plus a
// short preview of the content.
type VersionSummary struct {
	ProjectID   uuid.UUID   `json:"project_id"`
	PackageType PackageType `json:"package_type"`
	Version     int         `json:"version"`
	Preview     string      `json:"preview"`
	EditType    EditType    `json:"edit_type"`
	EditSummary string      `json:"edit_summary"`
	Editor      string      `json:"editor"`
	WordCount   int         `json:"word_count"`
	CreatedAt   time.Time   `json:"created_at"`
}

// SaveCommand carries the input for a version append. EditType defaults to
// manual when omitted.
type SaveCommand struct {
	Content     string   `json:"content"`
	EditType    EditType `json:"edit_type"`
	EditSummary string   `json:"edit_summary"`
	Editor      string   `json:"editor"`
}

// GenerateCommand carries the input for an AI-generated version append.
type GenerateCommand struct {
	CustomInstructions string     `json:"custom_instructions"`
	ReferenceProjectID *uuid.UUID `json:"reference_project_id,omitempty"`
	Editor             string     `json:"editor"`
}

// RollbackCommand names the version whose content should be re-appended.
type RollbackCommand struct {
	TargetVersion int    `json:"target_version"`
	Editor        string `json:"editor"`
}

// AgentConfig is the generation configuration for one (project, package
// type). Default marks a compiled-in fallback that has not been stored.
type AgentConfig struct {
	ProjectID    uuid.UUID   `json:"project_id"`
	PackageType  PackageType `json:"package_type"`
	SystemPrompt string      `json:"system_prompt"`
	UserTemplate string      `json:"user_template"`
	Default      bool        `json:"default"`
	UpdatedAt    *time.Time  `json:"updated_at,omitempty"`
}

// AgentConfigCommand carries the input for an agent config upsert.
type AgentConfigCommand struct {
	SystemPrompt string `json:"system_prompt"`
	UserTemplate string `json:"user_template"`
}
