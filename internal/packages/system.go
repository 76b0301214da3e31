package packages

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for package version operations.
type System interface {
	Handler() *Handler

	// Save appends a new version with the next dense version number for
	// the key. Concurrent saves for the same key serialize; the ledger
	// never gaps.
	Save(ctx context.Context, projectID uuid.UUID, pt PackageType, cmd SaveCommand) (*PackageVersion, error)

	// Current returns the highest-numbered version for the key.
	Current(ctx context.Context, projectID uuid.UUID, pt PackageType) (*PackageVersion, error)

	// ListVersions returns version metadata newest-first, with content
	// replaced by a short preview.
	ListVersions(ctx context.Context, projectID uuid.UUID, pt PackageType) ([]VersionSummary, error)

	GetVersion(ctx context.Context, projectID uuid.UUID, pt PackageType, version int) (*PackageVersion, error)

	// Rollback appends a new version carrying the target version's
	// content. Rolling back to the current version still appends, so the
	// ledger records the action.
	Rollback(ctx context.Context, projectID uuid.UUID, pt PackageType, cmd RollbackCommand) (*PackageVersion, error)

	// Generate produces a new AI version: resolve agent config, assemble
	// the project context, run the generation workflow, append on
	// success. Failures leave the ledger untouched.
	Generate(ctx context.Context, projectID uuid.UUID, pt PackageType, cmd GenerateCommand) (*PackageVersion, error)

	// GetAgentConfig returns the stored config for the key, or the
	// compiled-in default when none is stored.
	GetAgentConfig(ctx context.Context, projectID uuid.UUID, pt PackageType) (*AgentConfig, error)

	PutAgentConfig(ctx context.Context, projectID uuid.UUID, pt PackageType, cmd AgentConfigCommand) (*AgentConfig, error)
}
