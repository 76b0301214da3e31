package outline

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/meridianlegal/dossier/internal/classifications"
)

// computeCoverage aggregates the project's classification items per
// taxonomy leaf. Every registry leaf appears in the result, including
// unevidenced ones, in registry order.
func computeCoverage(ctx context.Context, db *sql.DB, projectID uuid.UUID) ([]CoverageEntry, error) {
	q := `
		SELECT subcategory, COUNT(*), MAX(relevance_score)
		FROM classification_items
		WHERE project_id = $1
		GROUP BY subcategory`

	rows, err := db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, fmt.Errorf("aggregate classification coverage: %w", err)
	}
	defer rows.Close()

	type stats struct {
		count    int
		topScore float64
	}
	bySubcategory := make(map[string]stats)

	for rows.Next() {
		var sub string
		var s stats
		if err := rows.Scan(&sub, &s.count, &s.topScore); err != nil {
			return nil, fmt.Errorf("scan coverage row: %w", err)
		}
		bySubcategory[sub] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("aggregate classification coverage: %w", err)
	}

	leaves := classifications.Taxonomy()
	coverage := make([]CoverageEntry, len(leaves))
	for i, leaf := range leaves {
		s := bySubcategory[leaf.Subcategory]
		coverage[i] = CoverageEntry{
			Category:    leaf.Category,
			Subcategory: leaf.Subcategory,
			ItemCount:   s.count,
			TopScore:    s.topScore,
		}
	}

	return coverage, nil
}
