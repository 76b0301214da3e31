package classifications

import (
	"fmt"
	"strings"
)

// Category is a top-level branch of the evidentiary taxonomy.
type Category string

// Taxonomy categories.
const (
	CategoryMC          Category = "MC"
	CategoryOC          Category = "OC"
	CategoryRecommender Category = "RECOMMENDER"
)

// Leaf is one assignable node of the taxonomy.
type Leaf struct {
	Category    Category `json:"category"`
	Subcategory string   `json:"subcategory"`
	Description string   `json:"description"`
}

// The taxonomy is a closed registry. Batching, validation, dedup, and
// coverage all iterate this slice; nothing branches on leaf names.
var taxonomy = []Leaf{
	{CategoryMC, "mc1_product_leadership", "Leading or critical role in products, projects, or organizations of distinguished reputation."},
	{CategoryMC, "mc2_business_development", "Commercial impact: revenue growth, market expansion, funding raised, partnerships closed."},
	{CategoryMC, "mc3_nonprofit", "Leadership or substantial service in nonprofit, standards, or community organizations."},
	{CategoryMC, "mc4_expert_review", "Judging the work of others: peer review, grant panels, competition juries, editorial boards."},
	{CategoryOC, "oc1_media_coverage", "Published material about the applicant in professional or major trade media."},
	{CategoryOC, "oc2_awards", "Nationally or internationally recognized prizes or awards for excellence."},
	{CategoryOC, "oc3_original_contribution", "Original contributions of major significance: patents, inventions, influential publications or methods."},
	{CategoryOC, "oc4_high_remuneration", "Evidence of commanding a high salary or other significantly high remuneration."},
	{CategoryRecommender, "rec1_recommender_profile", "The recommender's own standing: titles, affiliations, achievements establishing their authority."},
	{CategoryRecommender, "rec2_relationship_evidence", "The recommender's relationship to the applicant and first-hand basis for their assessment."},
}

var leafIndex = buildLeafIndex()

func buildLeafIndex() map[string]Leaf {
	idx := make(map[string]Leaf, len(taxonomy))
	for _, l := range taxonomy {
		idx[l.Subcategory] = l
	}
	return idx
}

// Taxonomy returns the closed leaf registry.
func Taxonomy() []Leaf {
	out := make([]Leaf, len(taxonomy))
	copy(out, taxonomy)
	return out
}

// ValidLeaf reports whether the category and subcategory name an existing
// taxonomy leaf.
func ValidLeaf(category, subcategory string) bool {
	leaf, ok := leafIndex[subcategory]
	return ok && string(leaf.Category) == category
}

// PromptCatalog renders the taxonomy as prompt text for classification
// calls.
func PromptCatalog() string {
	var sb strings.Builder
	current := Category("")
	for _, l := range taxonomy {
		if l.Category != current {
			if current != "" {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "Category %s:\n", l.Category)
			current = l.Category
		}
		fmt.Fprintf(&sb, "  %s: %s\n", l.Subcategory, l.Description)
	}
	return sb.String()
}
