package outline

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/meridianlegal/dossier/internal/contents"
	"github.com/meridianlegal/dossier/internal/workflow"
	"github.com/meridianlegal/dossier/pkg/repository"
)

type repo struct {
	db     *sql.DB
	rt     *workflow.Runtime
	logger *slog.Logger
}

// New creates an outline repository implementing the System interface. It
// internally constructs the workflow runtime from the provided
// dependencies.
func New(
	db *sql.DB,
	agent gaconfig.AgentConfig,
	logger *slog.Logger,
	blocks contents.System,
) System {
	rt := &workflow.Runtime{
		Agent:    agent,
		Contents: blocks,
		Logger:   logger.With("workflow", "outline"),
	}
	return &repo{
		db:     db,
		rt:     rt,
		logger: logger.With("system", "outline"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

const outlineColumns = "project_id, profile, keywords, timeline, summaries, coverage, material_gaps, assessment, ai_generated, generated_at"

func scanOutline(s repository.Scanner) (Outline, error) {
	var o Outline
	var profile, keywords, timeline, summaries, coverage, gaps []byte

	err := s.Scan(
		&o.ProjectID,
		&profile,
		&keywords,
		&timeline,
		&summaries,
		&coverage,
		&gaps,
		&o.Assessment,
		&o.AIGenerated,
		&o.GeneratedAt,
	)
	if err != nil {
		return o, err
	}

	for _, field := range []struct {
		data []byte
		dst  any
	}{
		{profile, &o.Profile},
		{keywords, &o.Keywords},
		{timeline, &o.Timeline},
		{summaries, &o.Summaries},
		{coverage, &o.Coverage},
		{gaps, &o.MaterialGaps},
	} {
		if len(field.data) == 0 {
			continue
		}
		if err := json.Unmarshal(field.data, field.dst); err != nil {
			return o, fmt.Errorf("unmarshal outline column: %w", err)
		}
	}

	return o, nil
}

func (r *repo) Get(ctx context.Context, projectID uuid.UUID) (*Outline, error) {
	q := fmt.Sprintf("SELECT %s FROM outlines WHERE project_id = $1", outlineColumns)

	o, err := repository.QueryOne(ctx, r.db, q, []any{projectID}, scanOutline)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &o, nil
}

func (r *repo) Generate(ctx context.Context, projectID uuid.UUID) (*Outline, error) {
	draft, err := workflow.BuildOutline(ctx, r.rt, projectID)
	if err != nil {
		if errors.Is(err, workflow.ErrNoContext) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}

	coverage, err := computeCoverage(ctx, r.db, projectID)
	if err != nil {
		return nil, err
	}

	return r.upsert(ctx, projectID, draft, coverage)
}

func (r *repo) upsert(
	ctx context.Context,
	projectID uuid.UUID,
	draft *workflow.OutlineDraft,
	coverage []CoverageEntry,
) (*Outline, error) {
	profile, err := json.Marshal(draft.Profile)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	keywords, err := json.Marshal(draft.Keywords)
	if err != nil {
		return nil, fmt.Errorf("marshal keywords: %w", err)
	}
	timeline, err := json.Marshal(draft.Timeline)
	if err != nil {
		return nil, fmt.Errorf("marshal timeline: %w", err)
	}
	summaries, err := json.Marshal(draft.Summaries)
	if err != nil {
		return nil, fmt.Errorf("marshal summaries: %w", err)
	}
	coverageJSON, err := json.Marshal(coverage)
	if err != nil {
		return nil, fmt.Errorf("marshal coverage: %w", err)
	}
	gaps, err := json.Marshal(draft.MaterialGaps)
	if err != nil {
		return nil, fmt.Errorf("marshal material gaps: %w", err)
	}

	q := fmt.Sprintf(`
		INSERT INTO outlines(%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, now())
		ON CONFLICT (project_id) DO UPDATE SET
			profile = EXCLUDED.profile,
			keywords = EXCLUDED.keywords,
			timeline = EXCLUDED.timeline,
			summaries = EXCLUDED.summaries,
			coverage = EXCLUDED.coverage,
			material_gaps = EXCLUDED.material_gaps,
			assessment = EXCLUDED.assessment,
			ai_generated = EXCLUDED.ai_generated,
			generated_at = now()
		RETURNING %s`, outlineColumns, outlineColumns)

	args := []any{projectID, profile, keywords, timeline, summaries, coverageJSON, gaps, draft.Assessment}

	o, err := repository.QueryOne(ctx, r.db, q, args, scanOutline)
	if err != nil {
		return nil, fmt.Errorf("upsert outline: %w", err)
	}

	r.logger.Info(
		"outline generated",
		"project_id", projectID,
		"keywords", len(o.Keywords),
		"timeline_entries", len(o.Timeline),
	)
	return &o, nil
}
