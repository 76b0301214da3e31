package classifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/meridianlegal/dossier/pkg/pagination"
)

// System defines the public contract for classification operations.
type System interface {
	Handler() *Handler

	// StartRun claims the project's run slot and launches the
	// classification run in the background. Returns the initial progress
	// snapshot immediately; clients observe the run by polling Progress.
	StartRun(ctx context.Context, projectID uuid.UUID) (*Progress, error)

	// Progress returns the project's current run snapshot, synthesizing
	// idle when the project has never been classified.
	Progress(ctx context.Context, projectID uuid.UUID) (*Progress, error)

	List(
		ctx context.Context,
		projectID uuid.UUID,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[ClassificationItem], error)

	Find(ctx context.Context, projectID, id uuid.UUID) (*ClassificationItem, error)
	Create(ctx context.Context, projectID uuid.UUID, cmd CreateCommand) (*ClassificationItem, error)
	Update(ctx context.Context, projectID, id uuid.UUID, cmd UpdateCommand) (*ClassificationItem, error)
	Delete(ctx context.Context, projectID, id uuid.UUID) error
}
