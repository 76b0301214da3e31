package contents

import (
	"net/url"

	"github.com/meridianlegal/dossier/pkg/query"
	"github.com/meridianlegal/dossier/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "content_blocks", "cb").
	Project("id", "ID").
	Project("project_id", "ProjectID").
	Project("content", "Content").
	Project("source_file", "SourceFile").
	Project("source_type", "SourceType").
	Project("source_page", "SourcePage").
	Project("source_section", "SourceSection").
	Project("content_type", "ContentType").
	Project("word_count", "WordCount").
	Project("extracted_at", "ExtractedAt")

var defaultSort = []query.SortField{
	{Field: "SourceFile"},
	{Field: "SourcePage"},
	{Field: "ExtractedAt"},
}

// Filters contains optional filtering criteria for content block queries.
// Nil fields are ignored.
type Filters struct {
	ContentType *string `json:"content_type,omitempty"`
	SourceFile  *string `json:"source_file,omitempty"`
	SourceType  *string `json:"source_type,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("ContentType", f.ContentType).
		WhereContains("SourceFile", f.SourceFile).
		WhereEquals("SourceType", f.SourceType)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}
	if sf := values.Get("source_file"); sf != "" {
		f.SourceFile = &sf
	}
	if st := values.Get("source_type"); st != "" {
		f.SourceType = &st
	}

	return f
}

func scanBlock(s repository.Scanner) (ContentBlock, error) {
	var b ContentBlock
	err := s.Scan(
		&b.ID,
		&b.ProjectID,
		&b.Content,
		&b.SourceFile,
		&b.SourceType,
		&b.SourcePage,
		&b.SourceSection,
		&b.ContentType,
		&b.WordCount,
		&b.ExtractedAt,
	)
	return b, err
}
