// Package outline implements the derived case outline: a per-project
// structured summary (profile, keywords, timeline, file summaries) built by
// the outline workflow, plus taxonomy coverage computed from persisted
// classification items. One row per project, replaced on regenerate.
package outline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/meridianlegal/dossier/internal/classifications"
	"github.com/meridianlegal/dossier/internal/workflow"
)

// CoverageEntry reports how well one taxonomy leaf is evidenced.
type CoverageEntry struct {
	Category    classifications.Category `json:"category"`
	Subcategory string                   `json:"subcategory"`
	ItemCount   int                      `json:"item_count"`
	TopScore    float64                  `json:"top_score"`
}

// Outline is the stored per-project case outline.
type Outline struct {
	ProjectID    uuid.UUID                `json:"project_id"`
	Profile      workflow.Profile         `json:"profile"`
	Keywords     []string                 `json:"keywords"`
	Timeline     []workflow.TimelineEntry `json:"timeline"`
	Summaries    []workflow.FileSummary   `json:"summaries"`
	Coverage     []CoverageEntry          `json:"coverage"`
	MaterialGaps []string                 `json:"material_gaps"`
	Assessment   string                   `json:"overall_assessment"`
	AIGenerated  bool                     `json:"ai_generated"`
	GeneratedAt  time.Time                `json:"generated_at"`
}

// System defines the public contract for outline operations.
type System interface {
	Handler() *Handler

	// Get returns the stored outline for the project.
	Get(ctx context.Context, projectID uuid.UUID) (*Outline, error)

	// Generate runs the outline workflow synchronously, computes taxonomy
	// coverage from the project's classification items, and replaces the
	// stored outline.
	Generate(ctx context.Context, projectID uuid.UUID) (*Outline, error)
}
