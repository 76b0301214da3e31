package packages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/meridianlegal/dossier/internal/contents"
	"github.com/meridianlegal/dossier/internal/workflow"
	"github.com/meridianlegal/dossier/pkg/query"
	"github.com/meridianlegal/dossier/pkg/repository"
)

type repo struct {
	db      *sql.DB
	runtime *workflow.Runtime
	logger  *slog.Logger
}

// New creates a package version repository implementing the System
// interface.
func New(db *sql.DB, rt *workflow.Runtime, logger *slog.Logger) System {
	return &repo{
		db:      db,
		runtime: rt,
		logger:  logger.With("system", "packages"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

// advisoryKey derives the advisory lock key serializing version allocation
// for one (project, package type).
func advisoryKey(projectID uuid.UUID, pt PackageType) int64 {
	h := fnv.New64a()
	h.Write(projectID[:])
	h.Write([]byte(pt))
	return int64(h.Sum64())
}

func (r *repo) Save(
	ctx context.Context,
	projectID uuid.UUID,
	pt PackageType,
	cmd SaveCommand,
) (*PackageVersion, error) {
	if strings.TrimSpace(cmd.Content) == "" {
		return nil, ErrEmptyContent
	}
	if cmd.EditType == "" {
		cmd.EditType = EditManual
	}
	if cmd.EditType != EditManual && cmd.EditType != EditAI {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEditType, cmd.EditType)
	}

	q := fmt.Sprintf(`
		INSERT INTO package_versions(%s)
		SELECT $1, $2, COALESCE(MAX(version), 0) + 1, $3, $4, $5, $6, $7, now()
		FROM package_versions
		WHERE project_id = $1 AND package_type = $2
		RETURNING %s`, versionColumns, versionColumns)

	args := []any{
		projectID,
		pt,
		cmd.Content,
		cmd.EditType,
		cmd.EditSummary,
		cmd.Editor,
		contents.CountWords(cmd.Content),
	}

	v, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (PackageVersion, error) {
		// Serializes MAX+1 allocation per key so concurrent saves never
		// collide or leave gaps. The primary key is the backstop.
		if _, err := tx.ExecContext(
			ctx,
			"SELECT pg_advisory_xact_lock($1)",
			advisoryKey(projectID, pt),
		); err != nil {
			return PackageVersion{}, fmt.Errorf("acquire version lock: %w", err)
		}

		return repository.QueryOne(ctx, tx, q, args, scanVersion)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrVersionNotFound, ErrDuplicateVersion)
	}

	r.logger.Info(
		"version saved",
		"project_id", projectID,
		"package_type", pt,
		"version", v.Version,
		"edit_type", v.EditType,
	)

	return &v, nil
}

func (r *repo) Current(
	ctx context.Context,
	projectID uuid.UUID,
	pt PackageType,
) (*PackageVersion, error) {
	q, args := query.
		NewBuilder(projection, versionSort...).
		WhereEquals("ProjectID", projectID).
		WhereEquals("PackageType", pt).
		BuildFirst()

	v, err := repository.QueryOne(ctx, r.db, q, args, scanVersion)
	if err != nil {
		return nil, repository.MapError(err, ErrNoVersions, ErrDuplicateVersion)
	}
	return &v, nil
}

func (r *repo) ListVersions(
	ctx context.Context,
	projectID uuid.UUID,
	pt PackageType,
) ([]VersionSummary, error) {
	q, args := query.
		NewBuilder(summaryProjection, versionSort...).
		WhereEquals("ProjectID", projectID).
		WhereEquals("PackageType", pt).
		Build()

	versions, err := repository.QueryMany(ctx, r.db, q, args, scanSummary)
	if err != nil {
		return nil, fmt.Errorf("query versions: %w", err)
	}
	return versions, nil
}

func (r *repo) GetVersion(
	ctx context.Context,
	projectID uuid.UUID,
	pt PackageType,
	version int,
) (*PackageVersion, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("ProjectID", projectID).
		WhereEquals("PackageType", pt).
		WhereEquals("Version", version).
		BuildFirst()

	v, err := repository.QueryOne(ctx, r.db, q, args, scanVersion)
	if err != nil {
		return nil, repository.MapError(err, ErrVersionNotFound, ErrDuplicateVersion)
	}
	return &v, nil
}

func (r *repo) Rollback(
	ctx context.Context,
	projectID uuid.UUID,
	pt PackageType,
	cmd RollbackCommand,
) (*PackageVersion, error) {
	target, err := r.GetVersion(ctx, projectID, pt, cmd.TargetVersion)
	if err != nil {
		return nil, err
	}

	return r.Save(ctx, projectID, pt, SaveCommand{
		Content:     target.Content,
		EditSummary: fmt.Sprintf("rolled back to v%d", target.Version),
		Editor:      cmd.Editor,
	})
}

func (r *repo) Generate(
	ctx context.Context,
	projectID uuid.UUID,
	pt PackageType,
	cmd GenerateCommand,
) (*PackageVersion, error) {
	cfg, err := r.GetAgentConfig(ctx, projectID, pt)
	if err != nil {
		return nil, err
	}

	reference := ""
	if cmd.ReferenceProjectID != nil {
		ref, err := r.Current(ctx, *cmd.ReferenceProjectID, pt)
		if err != nil {
			return nil, fmt.Errorf("resolve reference document: %w", err)
		}
		reference = ref.Content
	}

	result, err := workflow.Generate(ctx, r.runtime, workflow.GenerateInput{
		ProjectID:          projectID,
		PackageType:        pt.String(),
		SystemPrompt:       cfg.SystemPrompt,
		UserTemplate:       cfg.UserTemplate,
		CustomInstructions: cmd.CustomInstructions,
		ReferenceContent:   reference,
	})
	if err != nil {
		if errors.Is(err, workflow.ErrNoContext) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	return r.saveGenerated(ctx, projectID, pt, result, cmd.Editor)
}

// saveGenerated appends the draft as an ai version. Nothing touches the
// ledger before this point, so a failed generation leaves no trace.
func (r *repo) saveGenerated(
	ctx context.Context,
	projectID uuid.UUID,
	pt PackageType,
	result *workflow.GenerateResult,
	editor string,
) (*PackageVersion, error) {
	if editor == "" {
		editor = "ai"
	}

	return r.Save(ctx, projectID, pt, SaveCommand{
		Content:     result.Content,
		EditType:    EditAI,
		EditSummary: "generated from case evidence",
		Editor:      editor,
	})
}

func (r *repo) GetAgentConfig(
	ctx context.Context,
	projectID uuid.UUID,
	pt PackageType,
) (*AgentConfig, error) {
	q := `
		SELECT project_id, package_type, system_prompt, user_template, updated_at
		FROM package_agent_configs
		WHERE project_id = $1 AND package_type = $2`

	cfg, err := repository.QueryOne(ctx, r.db, q, []any{projectID, pt}, scanAgentConfig)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			def := DefaultAgentConfig(projectID, pt)
			return &def, nil
		}
		return nil, fmt.Errorf("query agent config: %w", err)
	}

	return &cfg, nil
}

func (r *repo) PutAgentConfig(
	ctx context.Context,
	projectID uuid.UUID,
	pt PackageType,
	cmd AgentConfigCommand,
) (*AgentConfig, error) {
	if strings.TrimSpace(cmd.SystemPrompt) == "" || strings.TrimSpace(cmd.UserTemplate) == "" {
		return nil, ErrInvalidPrompt
	}

	q := `
		INSERT INTO package_agent_configs(project_id, package_type, system_prompt, user_template, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (project_id, package_type)
		DO UPDATE SET system_prompt = EXCLUDED.system_prompt, user_template = EXCLUDED.user_template, updated_at = now()
		RETURNING project_id, package_type, system_prompt, user_template, updated_at`

	cfg, err := repository.QueryOne(
		ctx, r.db, q,
		[]any{projectID, pt, cmd.SystemPrompt, cmd.UserTemplate},
		scanAgentConfig,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert agent config: %w", err)
	}

	r.logger.Info("agent config stored", "project_id", projectID, "package_type", pt)
	return &cfg, nil
}
