package contents_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/meridianlegal/dossier/internal/contents"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestAssembleContext(t *testing.T) {
	blocks := []contents.ContentBlock{
		{
			Content:       "Led the platform team.",
			SourceFile:    "cv.pdf",
			SourcePage:    intPtr(2),
			SourceSection: strPtr("Experience"),
		},
		{
			Content:    "Awarded industry prize.",
			SourceFile: "press.pdf",
		},
	}

	t.Run("with sources", func(t *testing.T) {
		got := contents.AssembleContext(blocks, true)

		if !strings.Contains(got, "[cv.pdf, p.2 — Experience]") {
			t.Errorf("missing first citation:\n%s", got)
		}
		if !strings.Contains(got, "[press.pdf]") {
			t.Errorf("missing second citation:\n%s", got)
		}
		if !strings.Contains(got, "Led the platform team.") {
			t.Errorf("missing content:\n%s", got)
		}

		parts := strings.Split(got, "\n\n")
		if len(parts) != 2 {
			t.Errorf("block separation: got %d parts, want 2", len(parts))
		}
	})

	t.Run("without sources", func(t *testing.T) {
		got := contents.AssembleContext(blocks, false)

		if strings.Contains(got, "[cv.pdf") {
			t.Errorf("unexpected citation:\n%s", got)
		}
		if !strings.Contains(got, "Awarded industry prize.") {
			t.Errorf("missing content:\n%s", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := contents.AssembleContext(nil, true); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"whitespace only", "  \n\t ", 0},
		{"simple", "three word sentence", 3},
		{"collapsed whitespace", "a  b\n\nc\td", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := contents.CountWords(tt.content); got != tt.want {
				t.Errorf("CountWords(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("content_type", "narrative")
	values.Set("source_file", "cv.pdf")

	f := contents.FiltersFromQuery(values)

	if f.ContentType == nil || *f.ContentType != "narrative" {
		t.Errorf("content type: got %v", f.ContentType)
	}
	if f.SourceFile == nil || *f.SourceFile != "cv.pdf" {
		t.Errorf("source file: got %v", f.SourceFile)
	}
	if f.SourceType != nil {
		t.Errorf("source type: got %v, want nil", f.SourceType)
	}
}
