package contents

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/meridianlegal/dossier/pkg/pagination"
	"github.com/meridianlegal/dossier/pkg/query"
	"github.com/meridianlegal/dossier/pkg/repository"
)

type repo struct {
	db         *sql.DB
	extractor  Extractor
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a content block repository implementing the System interface.
func New(
	db *sql.DB,
	extractor Extractor,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		extractor:  extractor,
		logger:     logger.With("system", "contents"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	projectID uuid.UUID,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[ContentBlock], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("ProjectID", projectID).
		WhereSearch(page.Search, "Content", "SourceFile")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count content blocks: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	blocks, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanBlock)
	if err != nil {
		return nil, fmt.Errorf("query content blocks: %w", err)
	}

	result := pagination.NewPageResult(blocks, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) ListAll(ctx context.Context, projectID uuid.UUID) ([]ContentBlock, error) {
	q, args := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("ProjectID", projectID).
		Build()

	blocks, err := repository.QueryMany(ctx, r.db, q, args, scanBlock)
	if err != nil {
		return nil, fmt.Errorf("query content blocks: %w", err)
	}
	return blocks, nil
}

func (r *repo) Context(ctx context.Context, projectID uuid.UUID, withSources bool) (string, error) {
	blocks, err := r.ListAll(ctx, projectID)
	if err != nil {
		return "", err
	}
	if len(blocks) == 0 {
		return "", ErrNoBlocks
	}
	return AssembleContext(blocks, withSources), nil
}

func (r *repo) Extract(ctx context.Context, projectID uuid.UUID) (*ExtractResult, error) {
	resp, err := r.extractor.Extract(ctx, projectID)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO content_blocks(id, project_id, content, source_file, source_type, source_page, source_section, content_type, word_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	created, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int, error) {
		count := 0
		for _, b := range resp.Blocks {
			contentType := b.ContentType
			if contentType == "" {
				contentType = "narrative"
			}
			if _, err := tx.ExecContext(
				ctx, q,
				uuid.New(),
				projectID,
				b.Content,
				b.SourceFile,
				b.SourceType,
				b.SourcePage,
				b.SourceSection,
				contentType,
				CountWords(b.Content),
			); err != nil {
				return 0, err
			}
			count++
		}
		return count, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"extraction completed",
		"project_id", projectID,
		"files", resp.FilesProcessed,
		"blocks", created,
	)

	return &ExtractResult{
		FilesProcessed: resp.FilesProcessed,
		BlocksCreated:  created,
	}, nil
}

// resetProgressSQL returns the progress row to the never-classified shape:
// idle status with every counter zeroed and the error cleared.
const resetProgressSQL = `
	UPDATE classification_progress
	SET status = 'idle', total_blocks = 0, processed_blocks = 0, current_batch = 0, total_batches = 0, total_classified = 0, error = NULL, updated_at = now()
	WHERE project_id = $1`

func (r *repo) Clear(ctx context.Context, projectID uuid.UUID) (*ClearResult, error) {
	result, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (ClearResult, error) {
		classifications, err := repository.ExecCount(
			ctx, tx,
			"DELETE FROM classification_items WHERE project_id = $1",
			projectID,
		)
		if err != nil {
			return ClearResult{}, fmt.Errorf("delete classification items: %w", err)
		}

		blocks, err := repository.ExecCount(
			ctx, tx,
			"DELETE FROM content_blocks WHERE project_id = $1",
			projectID,
		)
		if err != nil {
			return ClearResult{}, fmt.Errorf("delete content blocks: %w", err)
		}

		// A run in flight would otherwise report progress against blocks
		// that no longer exist.
		if _, err := repository.ExecCount(
			ctx, tx,
			resetProgressSQL,
			projectID,
		); err != nil {
			return ClearResult{}, fmt.Errorf("reset classification progress: %w", err)
		}

		return ClearResult{
			BlocksDeleted:          int(blocks),
			ClassificationsDeleted: int(classifications),
		}, nil
	})

	if err != nil {
		return nil, err
	}

	r.logger.Info(
		"extraction data cleared",
		"project_id", projectID,
		"blocks", result.BlocksDeleted,
		"classifications", result.ClassificationsDeleted,
	)

	return &result, nil
}
