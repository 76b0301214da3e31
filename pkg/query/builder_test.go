package query_test

import (
	"reflect"
	"testing"

	"github.com/meridianlegal/dossier/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "package_versions", "pv").
		Project("project_id", "ProjectID").
		Project("version", "Version").
		Project("content", "Content")
}

func ptr(s string) *string { return &s }

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty", "", nil},
		{"single ascending", "Version", []query.SortField{{Field: "Version"}}},
		{"single descending", "-Version", []query.SortField{{Field: "Version", Descending: true}}},
		{
			"mixed with whitespace",
			"ProjectID, -Version",
			[]query.SortField{{Field: "ProjectID"}, {Field: "Version", Descending: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSortFields(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuilderBuild(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection(), query.SortField{Field: "Version", Descending: true}).
		WhereEquals("ProjectID", "p1").
		Build()

	want := "SELECT pv.project_id, pv.version, pv.content FROM public.package_versions pv WHERE pv.project_id = $1 ORDER BY pv.version DESC"
	if sql != want {
		t.Errorf("sql:\ngot  %q\nwant %q", sql, want)
	}
	if len(args) != 1 || args[0] != "p1" {
		t.Errorf("args = %v, want [p1]", args)
	}
}

func TestBuilderParamRenumbering(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection()).
		WhereEquals("ProjectID", "p1").
		WhereContains("Content", ptr("visa")).
		WhereAtLeast("Version", 3).
		Build()

	want := "SELECT pv.project_id, pv.version, pv.content FROM public.package_versions pv WHERE pv.project_id = $1 AND pv.content ILIKE $2 AND pv.version >= $3"
	if sql != want {
		t.Errorf("sql:\ngot  %q\nwant %q", sql, want)
	}
	if len(args) != 3 {
		t.Fatalf("args length = %d, want 3", len(args))
	}
	if args[1] != "%visa%" {
		t.Errorf("args[1] = %v, want %%visa%%", args[1])
	}
}

func TestBuilderNilConditionsSkipped(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection()).
		WhereEquals("ProjectID", nil).
		WhereContains("Content", nil).
		WhereAtLeast("Version", (*int)(nil)).
		Build()

	want := "SELECT pv.project_id, pv.version, pv.content FROM public.package_versions pv"
	if sql != want {
		t.Errorf("sql: got %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderBuildPage(t *testing.T) {
	sql, _ := query.
		NewBuilder(testProjection(), query.SortField{Field: "Version"}).
		WhereEquals("ProjectID", "p1").
		BuildPage(3, 20)

	want := "SELECT pv.project_id, pv.version, pv.content FROM public.package_versions pv WHERE pv.project_id = $1 ORDER BY pv.version ASC LIMIT 20 OFFSET 40"
	if sql != want {
		t.Errorf("sql:\ngot  %q\nwant %q", sql, want)
	}
}

func TestBuilderBuildCount(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection()).
		WhereEquals("ProjectID", "p1").
		BuildCount()

	want := "SELECT COUNT(*) FROM public.package_versions pv WHERE pv.project_id = $1"
	if sql != want {
		t.Errorf("sql: got %q, want %q", sql, want)
	}
	if len(args) != 1 {
		t.Errorf("args length = %d, want 1", len(args))
	}
}

func TestBuilderBuildFirst(t *testing.T) {
	sql, _ := query.
		NewBuilder(testProjection(), query.SortField{Field: "Version", Descending: true}).
		WhereEquals("ProjectID", "p1").
		BuildFirst()

	want := "SELECT pv.project_id, pv.version, pv.content FROM public.package_versions pv WHERE pv.project_id = $1 ORDER BY pv.version DESC LIMIT 1"
	if sql != want {
		t.Errorf("sql: got %q, want %q", sql, want)
	}
}

func TestBuilderOrderByOverridesDefault(t *testing.T) {
	sql, _ := query.
		NewBuilder(testProjection(), query.SortField{Field: "Version", Descending: true}).
		OrderByFields([]query.SortField{{Field: "ProjectID"}}).
		Build()

	want := "SELECT pv.project_id, pv.version, pv.content FROM public.package_versions pv ORDER BY pv.project_id ASC"
	if sql != want {
		t.Errorf("sql: got %q, want %q", sql, want)
	}
}

func TestProjectExpr(t *testing.T) {
	p := query.NewProjectionMap("public", "package_versions", "pv").
		Project("version", "Version").
		ProjectExpr("left(pv.content, 160)", "Preview")

	want := "pv.version, left(pv.content, 160)"
	if got := p.Columns(); got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
	if got := p.Column("Preview"); got != "left(pv.content, 160)" {
		t.Errorf("Column(Preview) = %q", got)
	}
}
