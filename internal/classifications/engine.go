package classifications

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/meridianlegal/dossier/internal/contents"
	"github.com/meridianlegal/dossier/internal/workflow"
	"github.com/meridianlegal/dossier/pkg/repository"
)

// batchCount returns the number of fixed-size batches covering total
// blocks.
func batchCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

func (r *repo) StartRun(ctx context.Context, projectID uuid.UUID) (*Progress, error) {
	blocks, err := r.rt.Contents.ListAll(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load content blocks: %w", err)
	}
	if len(blocks) == 0 {
		return nil, ErrNoContent
	}

	p, err := r.startProgress(ctx, projectID, len(blocks), batchCount(len(blocks), r.batchSize))
	if err != nil {
		return nil, err
	}

	// Fire and forget on the lifecycle context. Clients observe the run
	// through Progress polling; failures land on the progress row.
	go r.run(projectID)

	r.logger.Info(
		"classification run started",
		"project_id", projectID,
		"total_blocks", p.TotalBlocks,
		"total_batches", p.TotalBatches,
	)
	return p, nil
}

// runSink receives the persistence side effects of a classification run.
// *repo implements it over postgres.
type runSink interface {
	insertCandidates(ctx context.Context, projectID uuid.UUID, batch []contents.ContentBlock, candidates []workflow.Candidate) (int, error)
	advanceProgress(ctx context.Context, projectID uuid.UUID, processed, currentBatch, totalClassified int) error
	finishProgress(ctx context.Context, projectID uuid.UUID, status Status, runErr *string) error
}

func (r *repo) run(projectID uuid.UUID) {
	ctx := r.runCtx
	logger := r.logger.With("project_id", projectID)

	blocks, err := r.rt.Contents.ListAll(ctx, projectID)
	if err != nil {
		failRun(ctx, r, logger, projectID, fmt.Errorf("load content blocks: %w", err))
		return
	}

	executeRun(ctx, r.rt, r, logger, projectID, blocks, r.batchSize)
}

// executeRun drives the claimed classification run: strictly sequential
// batches, progress advanced after each one. A batch error finishes the run
// as failed; items from earlier batches are kept.
func executeRun(
	ctx context.Context,
	rt *workflow.Runtime,
	sink runSink,
	logger *slog.Logger,
	projectID uuid.UUID,
	blocks []contents.ContentBlock,
	batchSize int,
) {
	classify := rt.Classifier()
	catalog := PromptCatalog()
	processed := 0
	classified := 0
	batchNum := 0

	for start := 0; start < len(blocks); start += batchSize {
		end := min(start+batchSize, len(blocks))
		batch := blocks[start:end]
		batchNum++

		candidates, err := classify(ctx, rt, batch, catalog)
		if err != nil {
			failRun(ctx, sink, logger, projectID, fmt.Errorf("batch %d: %w", batchNum, err))
			return
		}

		inserted, err := sink.insertCandidates(ctx, projectID, batch, candidates)
		if err != nil {
			failRun(ctx, sink, logger, projectID, fmt.Errorf("batch %d: %w", batchNum, err))
			return
		}

		processed += len(batch)
		classified += inserted

		if err := sink.advanceProgress(ctx, projectID, processed, batchNum, classified); err != nil {
			// The run slot was taken over or cleared; this run no longer
			// owns the progress row.
			logger.Warn("classification run superseded", "batch", batchNum, "error", err)
			return
		}

		logger.Info(
			"classification batch complete",
			"batch", batchNum,
			"processed", processed,
			"classified", classified,
		)
	}

	if err := sink.finishProgress(ctx, projectID, StatusCompleted, nil); err != nil {
		logger.Warn("classification run superseded at completion", "error", err)
		return
	}

	logger.Info(
		"classification run completed",
		"processed", processed,
		"classified", classified,
	)
}

func failRun(ctx context.Context, sink runSink, logger *slog.Logger, projectID uuid.UUID, runErr error) {
	logger.Error("classification run failed", "error", runErr)

	msg := runErr.Error()
	if err := sink.finishProgress(ctx, projectID, StatusFailed, &msg); err != nil {
		logger.Warn("failed to record run failure", "error", err)
	}
}

// insertCandidates validates and persists a batch's findings. Invalid
// model output is dropped with a warning rather than failing the run;
// duplicates are suppressed by the dedup index. Returns the number of rows
// actually inserted.
func (r *repo) insertCandidates(
	ctx context.Context,
	projectID uuid.UUID,
	batch []contents.ContentBlock,
	candidates []workflow.Candidate,
) (int, error) {
	q := `
		INSERT INTO classification_items(id, project_id, category, subcategory, content, source_file, source_page, relevance_score, evidence_type, key_points, subject_person, content_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT DO NOTHING`

	inserted := 0
	for _, c := range candidates {
		if err := validateLeafAndScore(c.Category, c.Subcategory, c.RelevanceScore); err != nil {
			r.logger.Warn("discarding invalid candidate", "error", err)
			continue
		}
		subject, err := ParseSubjectPerson(c.SubjectPerson)
		if err != nil {
			r.logger.Warn("discarding invalid candidate", "error", err)
			continue
		}

		block := batch[c.BlockIndex]

		keyPoints, err := marshalKeyPoints(c.KeyPoints)
		if err != nil {
			return inserted, err
		}

		rows, err := repository.ExecCount(
			ctx, r.db, q,
			uuid.New(),
			projectID,
			c.Category,
			c.Subcategory,
			block.Content,
			block.SourceFile,
			block.SourcePage,
			c.RelevanceScore,
			c.EvidenceType,
			keyPoints,
			subject,
			ContentHash(block.Content),
		)
		if err != nil {
			return inserted, fmt.Errorf("insert classification item: %w", err)
		}

		inserted += int(rows)
	}

	return inserted, nil
}
