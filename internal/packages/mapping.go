package packages

import (
	"github.com/meridianlegal/dossier/pkg/query"
	"github.com/meridianlegal/dossier/pkg/repository"
)

const versionColumns = "project_id, package_type, version, content, edit_type, edit_summary, editor, word_count, created_at"

var projection = query.
	NewProjectionMap("public", "package_versions", "pv").
	Project("project_id", "ProjectID").
	Project("package_type", "PackageType").
	Project("version", "Version").
	Project("content", "Content").
	Project("edit_type", "EditType").
	Project("edit_summary", "EditSummary").
	Project("editor", "Editor").
	Project("word_count", "WordCount").
	Project("created_at", "CreatedAt")

// summaryProjection excludes content from the select list, exposing a
// 160-character preview instead.
var summaryProjection = query.
	NewProjectionMap("public", "package_versions", "pv").
	Project("project_id", "ProjectID").
	Project("package_type", "PackageType").
	Project("version", "Version").
	ProjectExpr("left(pv.content, 160)", "Preview").
	Project("edit_type", "EditType").
	Project("edit_summary", "EditSummary").
	Project("editor", "Editor").
	Project("word_count", "WordCount").
	Project("created_at", "CreatedAt")

var versionSort = []query.SortField{{Field: "Version", Descending: true}}

func scanVersion(s repository.Scanner) (PackageVersion, error) {
	var v PackageVersion
	err := s.Scan(
		&v.ProjectID,
		&v.PackageType,
		&v.Version,
		&v.Content,
		&v.EditType,
		&v.EditSummary,
		&v.Editor,
		&v.WordCount,
		&v.CreatedAt,
	)
	return v, err
}

func scanSummary(s repository.Scanner) (VersionSummary, error) {
	var v VersionSummary
	err := s.Scan(
		&v.ProjectID,
		&v.PackageType,
		&v.Version,
		&v.Preview,
		&v.EditType,
		&v.EditSummary,
		&v.Editor,
		&v.WordCount,
		&v.CreatedAt,
	)
	return v, err
}

func scanAgentConfig(s repository.Scanner) (AgentConfig, error) {
	var c AgentConfig
	err := s.Scan(
		&c.ProjectID,
		&c.PackageType,
		&c.SystemPrompt,
		&c.UserTemplate,
		&c.UpdatedAt,
	)
	return c, err
}
