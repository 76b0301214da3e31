package classifications

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/meridianlegal/dossier/internal/contents"
	"github.com/meridianlegal/dossier/internal/workflow"
	"github.com/meridianlegal/dossier/pkg/pagination"
	"github.com/meridianlegal/dossier/pkg/query"
	"github.com/meridianlegal/dossier/pkg/repository"
)

type repo struct {
	db           *sql.DB
	rt           *workflow.Runtime
	runCtx       context.Context
	logger       *slog.Logger
	pagination   pagination.Config
	batchSize    int
	staleTimeout time.Duration
}

// New creates a classification repository implementing the System
// interface. It internally constructs the workflow runtime from the
// provided dependencies. runCtx bounds background runs; it should be the
// lifecycle context so runs die with the process.
func New(
	db *sql.DB,
	agent gaconfig.AgentConfig,
	runCtx context.Context,
	logger *slog.Logger,
	pagination pagination.Config,
	blocks contents.System,
	batchSize int,
	staleTimeout time.Duration,
) System {
	rt := &workflow.Runtime{
		Agent:    agent,
		Contents: blocks,
		Logger:   logger.With("workflow", "classify"),
	}
	return &repo{
		db:           db,
		rt:           rt,
		runCtx:       runCtx,
		logger:       logger.With("system", "classifications"),
		pagination:   pagination,
		batchSize:    batchSize,
		staleTimeout: staleTimeout,
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
) (*pagination.PageResult[ClassificationItem], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("ProjectID", projectID).
		WhereSearch(page.Search, "Content", "EvidenceType")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count classification items: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanItem)
	if err != nil {
		return nil, fmt.Errorf("query classification items: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, projectID, id uuid.UUID) (*ClassificationItem, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("ProjectID", projectID).
		WhereEquals("ID", id).
		BuildFirst()

	it, err := repository.QueryOne(ctx, r.db, q, args, scanItem)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &it, nil
}

func (r *repo) Create(
	ctx context.Context,
	projectID uuid.UUID,
	cmd CreateCommand,
) (*ClassificationItem, error) {
	if err := validateLeafAndScore(cmd.Category, cmd.Subcategory, cmd.RelevanceScore); err != nil {
		return nil, err
	}
	if _, err := ParseSubjectPerson(string(cmd.SubjectPerson)); err != nil {
		return nil, err
	}

	keyPoints, err := marshalKeyPoints(cmd.KeyPoints)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		INSERT INTO classification_items(id, project_id, category, subcategory, content, source_file, source_page, relevance_score, evidence_type, key_points, subject_person, content_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING %s`, itemColumns)

	args := []any{
		uuid.New(),
		projectID,
		cmd.Category,
		cmd.Subcategory,
		cmd.Content,
		cmd.SourceFile,
		cmd.SourcePage,
		cmd.RelevanceScore,
		cmd.EvidenceType,
		keyPoints,
		cmd.SubjectPerson,
		ContentHash(cmd.Content),
	}

	it, err := repository.QueryOne(ctx, r.db, q, args, scanItem)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"classification item created",
		"id", it.ID,
		"project_id", projectID,
		"subcategory", it.Subcategory,
	)
	return &it, nil
}

func (r *repo) Update(
	ctx context.Context,
	projectID, id uuid.UUID,
	cmd UpdateCommand,
) (*ClassificationItem, error) {
	if err := validateLeafAndScore(cmd.Category, cmd.Subcategory, cmd.RelevanceScore); err != nil {
		return nil, err
	}
	if _, err := ParseSubjectPerson(string(cmd.SubjectPerson)); err != nil {
		return nil, err
	}

	keyPoints, err := marshalKeyPoints(cmd.KeyPoints)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		UPDATE classification_items
		SET category = $3, subcategory = $4, relevance_score = $5, evidence_type = $6, key_points = $7, subject_person = $8
		WHERE project_id = $1 AND id = $2
		RETURNING %s`, itemColumns)

	args := []any{
		projectID,
		id,
		cmd.Category,
		cmd.Subcategory,
		cmd.RelevanceScore,
		cmd.EvidenceType,
		keyPoints,
		cmd.SubjectPerson,
	}

	it, err := repository.QueryOne(ctx, r.db, q, args, scanItem)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("classification item updated", "id", id, "project_id", projectID)
	return &it, nil
}

func (r *repo) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		"DELETE FROM classification_items WHERE project_id = $1 AND id = $2",
		projectID, id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("classification item deleted", "id", id, "project_id", projectID)
	return nil
}

func marshalKeyPoints(points []string) ([]byte, error) {
	if points == nil {
		points = []string{}
	}
	data, err := json.Marshal(points)
	if err != nil {
		return nil, fmt.Errorf("marshal key points: %w", err)
	}
	return data, nil
}
