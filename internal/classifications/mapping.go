package classifications

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/meridianlegal/dossier/pkg/query"
	"github.com/meridianlegal/dossier/pkg/repository"
)

const itemColumns = "id, project_id, category, subcategory, content, source_file, source_page, relevance_score, evidence_type, key_points, subject_person, created_at"

var projection = query.
	NewProjectionMap("public", "classification_items", "ci").
	Project("id", "ID").
	Project("project_id", "ProjectID").
	Project("category", "Category").
	Project("subcategory", "Subcategory").
	Project("content", "Content").
	Project("source_file", "SourceFile").
	Project("source_page", "SourcePage").
	Project("relevance_score", "RelevanceScore").
	Project("evidence_type", "EvidenceType").
	Project("key_points", "KeyPoints").
	Project("subject_person", "SubjectPerson").
	Project("created_at", "CreatedAt")

var defaultSort = []query.SortField{
	{Field: "RelevanceScore", Descending: true},
	{Field: "CreatedAt", Descending: true},
}

// Filters contains optional filtering criteria for classification item
// queries. Nil fields are ignored.
type Filters struct {
	Category      *string  `json:"category,omitempty"`
	Subcategory   *string  `json:"subcategory,omitempty"`
	SourceFile    *string  `json:"source_file,omitempty"`
	SubjectPerson *string  `json:"subject_person,omitempty"`
	MinScore      *float64 `json:"min_score,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Category", f.Category).
		WhereEquals("Subcategory", f.Subcategory).
		WhereContains("SourceFile", f.SourceFile).
		WhereEquals("SubjectPerson", f.SubjectPerson).
		WhereAtLeast("RelevanceScore", f.MinScore)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}
	if sc := values.Get("subcategory"); sc != "" {
		f.Subcategory = &sc
	}
	if sf := values.Get("source_file"); sf != "" {
		f.SourceFile = &sf
	}
	if sp := values.Get("subject_person"); sp != "" {
		f.SubjectPerson = &sp
	}
	if ms := values.Get("min_score"); ms != "" {
		if score, err := strconv.ParseFloat(ms, 64); err == nil {
			f.MinScore = &score
		}
	}

	return f
}

func scanItem(s repository.Scanner) (ClassificationItem, error) {
	var it ClassificationItem
	var keyPoints []byte

	err := s.Scan(
		&it.ID,
		&it.ProjectID,
		&it.Category,
		&it.Subcategory,
		&it.Content,
		&it.SourceFile,
		&it.SourcePage,
		&it.RelevanceScore,
		&it.EvidenceType,
		&keyPoints,
		&it.SubjectPerson,
		&it.CreatedAt,
	)
	if err != nil {
		return it, err
	}

	if len(keyPoints) > 0 {
		if err := json.Unmarshal(keyPoints, &it.KeyPoints); err != nil {
			return it, err
		}
	}
	if it.KeyPoints == nil {
		it.KeyPoints = []string{}
	}

	return it, nil
}
