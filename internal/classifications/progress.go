package classifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meridianlegal/dossier/pkg/repository"
)

// Status is the lifecycle state of a project's classification run.
type Status string

// Run statuses. A project's progress row moves idle → processing and from
// processing to exactly one of completed or failed per run.
const (
	StatusIdle       Status = "idle"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether the status ends a run.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Progress is the singleton per-project snapshot of the classification run.
// Percent is derived, never stored.
type Progress struct {
	ProjectID       uuid.UUID  `json:"project_id"`
	Status          Status     `json:"status"`
	TotalBlocks     int        `json:"total_blocks"`
	ProcessedBlocks int        `json:"processed_blocks"`
	CurrentBatch    int        `json:"current_batch"`
	TotalBatches    int        `json:"total_batches"`
	TotalClassified int        `json:"total_classified"`
	Percent         int        `json:"percent"`
	Error           *string    `json:"error"`
	StartedAt       *time.Time `json:"started_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

// ProgressPercent computes the integer-rounded completion percentage.
func ProgressPercent(processed, total int) int {
	if total <= 0 {
		return 0
	}
	return (processed*100 + total/2) / total
}

const progressColumns = "project_id, status, total_blocks, processed_blocks, current_batch, total_batches, total_classified, error, started_at, updated_at"

func scanProgress(s repository.Scanner) (Progress, error) {
	var p Progress
	err := s.Scan(
		&p.ProjectID,
		&p.Status,
		&p.TotalBlocks,
		&p.ProcessedBlocks,
		&p.CurrentBatch,
		&p.TotalBatches,
		&p.TotalClassified,
		&p.Error,
		&p.StartedAt,
		&p.UpdatedAt,
	)
	p.Percent = ProgressPercent(p.ProcessedBlocks, p.TotalBlocks)
	return p, err
}

// startProgress claims the project's run slot with a conditional upsert.
// The claim succeeds when no row exists, the row is not processing, or a
// processing row has gone stale (its run died without finishing). A fresh
// processing row makes the update a no-op, which surfaces as ErrRunActive.
func (r *repo) startProgress(
	ctx context.Context,
	projectID uuid.UUID,
	totalBlocks, totalBatches int,
) (*Progress, error) {
	q := fmt.Sprintf(`
		INSERT INTO classification_progress(%s)
		VALUES ($1, 'processing', $2, 0, 0, $3, 0, NULL, now(), now())
		ON CONFLICT (project_id) DO UPDATE SET
			status = 'processing',
			total_blocks = EXCLUDED.total_blocks,
			processed_blocks = 0,
			current_batch = 0,
			total_batches = EXCLUDED.total_batches,
			total_classified = 0,
			error = NULL,
			started_at = now(),
			updated_at = now()
		WHERE classification_progress.status <> 'processing'
		   OR classification_progress.updated_at < now() - make_interval(secs => $4)
		RETURNING %s`, progressColumns, progressColumns)

	args := []any{projectID, totalBlocks, totalBatches, r.staleTimeout.Seconds()}

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProgress)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunActive
		}
		return nil, fmt.Errorf("start classification progress: %w", err)
	}

	return &p, nil
}

// advanceProgress records a completed batch. Guarded on processing so a
// takeover or clear cannot be overwritten by a zombie run.
func (r *repo) advanceProgress(
	ctx context.Context,
	projectID uuid.UUID,
	processed, currentBatch, totalClassified int,
) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		`UPDATE classification_progress
		 SET processed_blocks = $2, current_batch = $3, total_classified = $4, updated_at = now()
		 WHERE project_id = $1 AND status = 'processing'`,
		projectID, processed, currentBatch, totalClassified,
	)
	if err != nil {
		return fmt.Errorf("advance classification progress: %w", err)
	}
	return nil
}

// finishProgress records the run's single terminal transition.
func (r *repo) finishProgress(
	ctx context.Context,
	projectID uuid.UUID,
	status Status,
	runErr *string,
) error {
	if !status.Terminal() {
		return fmt.Errorf("finish classification progress: %s is not terminal", status)
	}

	err := repository.ExecExpectOne(
		ctx, r.db,
		`UPDATE classification_progress
		 SET status = $2, error = $3, updated_at = now()
		 WHERE project_id = $1 AND status = 'processing'`,
		projectID, status, runErr,
	)
	if err != nil {
		return fmt.Errorf("finish classification progress: %w", err)
	}
	return nil
}

func (r *repo) Progress(ctx context.Context, projectID uuid.UUID) (*Progress, error) {
	q := fmt.Sprintf(
		"SELECT %s FROM classification_progress WHERE project_id = $1",
		progressColumns,
	)

	p, err := repository.QueryOne(ctx, r.db, q, []any{projectID}, scanProgress)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Never classified: synthesize idle rather than 404 so
			// clients can poll unconditionally.
			return &Progress{ProjectID: projectID, Status: StatusIdle}, nil
		}
		return nil, fmt.Errorf("query classification progress: %w", err)
	}

	return &p, nil
}
