// Package classifications implements the evidence classification domain:
// the batched background run that assigns content blocks to taxonomy
// leaves, the persisted per-project progress state machine it reports
// through, and manual CRUD over the resulting items.
package classifications

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SubjectPerson identifies whose evidence a classification item describes.
type SubjectPerson string

// Subject persons.
const (
	SubjectApplicant   SubjectPerson = "applicant"
	SubjectRecommender SubjectPerson = "recommender"
	SubjectOther       SubjectPerson = "other"
)

// ParseSubjectPerson validates a raw string against the closed subject set.
func ParseSubjectPerson(s string) (SubjectPerson, error) {
	switch SubjectPerson(s) {
	case SubjectApplicant, SubjectRecommender, SubjectOther:
		return SubjectPerson(s), nil
	default:
		return "", fmt.Errorf("%w: subject person %q", ErrInvalidTaxonomy, s)
	}
}

// UnmarshalJSON validates subject persons arriving in request bodies.
func (p *SubjectPerson) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	sp, err := ParseSubjectPerson(s)
	if err != nil {
		return err
	}
	*p = sp
	return nil
}

// ClassificationItem is one scored excerpt of evidence assigned to a
// taxonomy leaf. Items are produced by the classification run or inserted
// manually; engine-produced items are de-duplicated by
// (source_file, source_page, content hash).
type ClassificationItem struct {
	ID             uuid.UUID     `json:"id"`
	ProjectID      uuid.UUID     `json:"project_id"`
	Category       Category      `json:"category"`
	Subcategory    string        `json:"subcategory"`
	Content        string        `json:"content"`
	SourceFile     string        `json:"source_file"`
	SourcePage     *int          `json:"source_page"`
	RelevanceScore float64       `json:"relevance_score"`
	EvidenceType   string        `json:"evidence_type"`
	KeyPoints      []string      `json:"key_points"`
	SubjectPerson  SubjectPerson `json:"subject_person"`
	CreatedAt      time.Time     `json:"created_at"`
}

// CreateCommand carries the input for a manual item insert.
type CreateCommand struct {
	Category       string        `json:"category"`
	Subcategory    string        `json:"subcategory"`
	Content        string        `json:"content"`
	SourceFile     string        `json:"source_file"`
	SourcePage     *int          `json:"source_page"`
	RelevanceScore float64       `json:"relevance_score"`
	EvidenceType   string        `json:"evidence_type"`
	KeyPoints      []string      `json:"key_points"`
	SubjectPerson  SubjectPerson `json:"subject_person"`
}

// UpdateCommand carries the mutable fields of a manual item edit.
type UpdateCommand struct {
	Category       string        `json:"category"`
	Subcategory    string        `json:"subcategory"`
	RelevanceScore float64       `json:"relevance_score"`
	EvidenceType   string        `json:"evidence_type"`
	KeyPoints      []string      `json:"key_points"`
	SubjectPerson  SubjectPerson `json:"subject_person"`
}

func validateLeafAndScore(category, subcategory string, score float64) error {
	if !ValidLeaf(category, subcategory) {
		return fmt.Errorf("%w: %s/%s", ErrInvalidTaxonomy, category, subcategory)
	}
	if score < 0 || score > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidScore, score)
	}
	return nil
}
