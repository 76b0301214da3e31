package classifications_test

import (
	"strings"
	"testing"

	"github.com/meridianlegal/dossier/internal/classifications"
)

func TestTaxonomyRegistry(t *testing.T) {
	leaves := classifications.Taxonomy()
	if len(leaves) != 10 {
		t.Fatalf("leaf count: got %d, want 10", len(leaves))
	}

	counts := map[classifications.Category]int{}
	for _, l := range leaves {
		counts[l.Category]++
		if l.Subcategory == "" || l.Description == "" {
			t.Errorf("leaf %+v has empty fields", l)
		}
	}

	if counts[classifications.CategoryMC] != 4 {
		t.Errorf("MC leaves: got %d, want 4", counts[classifications.CategoryMC])
	}
	if counts[classifications.CategoryOC] != 4 {
		t.Errorf("OC leaves: got %d, want 4", counts[classifications.CategoryOC])
	}
	if counts[classifications.CategoryRecommender] != 2 {
		t.Errorf("RECOMMENDER leaves: got %d, want 2", counts[classifications.CategoryRecommender])
	}
}

func TestTaxonomyIsCopy(t *testing.T) {
	leaves := classifications.Taxonomy()
	leaves[0].Subcategory = "mutated"

	if classifications.Taxonomy()[0].Subcategory == "mutated" {
		t.Error("Taxonomy() exposes internal registry")
	}
}

func TestValidLeaf(t *testing.T) {
	tests := []struct {
		name        string
		category    string
		subcategory string
		want        bool
	}{
		{"valid MC leaf", "MC", "mc1_product_leadership", true},
		{"valid OC leaf", "OC", "oc2_awards", true},
		{"valid recommender leaf", "RECOMMENDER", "rec2_relationship_evidence", true},
		{"wrong category for leaf", "OC", "mc1_product_leadership", false},
		{"unknown subcategory", "MC", "mc9_unknown", false},
		{"unknown category", "XX", "oc2_awards", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifications.ValidLeaf(tt.category, tt.subcategory); got != tt.want {
				t.Errorf("ValidLeaf(%q, %q) = %v, want %v", tt.category, tt.subcategory, got, tt.want)
			}
		})
	}
}

func TestPromptCatalog(t *testing.T) {
	catalog := classifications.PromptCatalog()

	for _, heading := range []string{"Category MC:", "Category OC:", "Category RECOMMENDER:"} {
		if !strings.Contains(catalog, heading) {
			t.Errorf("missing heading %q", heading)
		}
	}
	for _, l := range classifications.Taxonomy() {
		if !strings.Contains(catalog, l.Subcategory+": "+l.Description) {
			t.Errorf("missing leaf %q", l.Subcategory)
		}
	}
}

func TestParseSubjectPerson(t *testing.T) {
	for _, valid := range []string{"applicant", "recommender", "other"} {
		if _, err := classifications.ParseSubjectPerson(valid); err != nil {
			t.Errorf("ParseSubjectPerson(%q): %v", valid, err)
		}
	}

	if _, err := classifications.ParseSubjectPerson("attorney"); err == nil {
		t.Error("ParseSubjectPerson(attorney): got nil error")
	}
}
