package contents

import (
	"context"

	"github.com/google/uuid"

	"github.com/meridianlegal/dossier/pkg/pagination"
)

// System defines the public contract for content block operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		projectID uuid.UUID,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[ContentBlock], error)

	// ListAll returns every block for a project in extraction order,
	// unpaginated. The classification engine and outline builder consume
	// this as their working set.
	ListAll(ctx context.Context, projectID uuid.UUID) ([]ContentBlock, error)

	// Context assembles the project's blocks into a single
	// citation-annotated text blob for prompt construction.
	Context(ctx context.Context, projectID uuid.UUID, withSources bool) (string, error)

	// Extract invokes the external extraction service and persists the
	// blocks it returns.
	Extract(ctx context.Context, projectID uuid.UUID) (*ExtractResult, error)

	// Clear deletes the project's extraction data: content blocks and
	// classification items, and resets classification progress to idle.
	Clear(ctx context.Context, projectID uuid.UUID) (*ClearResult, error)
}
