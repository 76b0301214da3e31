package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"

	"github.com/meridianlegal/dossier/internal/contents"
	"github.com/meridianlegal/dossier/pkg/formatting"
)

// Candidate is one taxonomy finding proposed by the model for a batch.
// BlockIndex points into the submitted batch; the caller resolves it back
// to a content block and validates category and subcategory against the
// taxonomy registry.
type Candidate struct {
	BlockIndex     int      `json:"block_index"`
	Category       string   `json:"category"`
	Subcategory    string   `json:"subcategory"`
	RelevanceScore float64  `json:"relevance_score"`
	EvidenceType   string   `json:"evidence_type"`
	KeyPoints      []string `json:"key_points"`
	SubjectPerson  string   `json:"subject_person"`
}

// ClassifyBatch classifies one batch of content blocks with a single chat
// inference. catalog is the taxonomy description rendered by the caller;
// the returned candidates are unvalidated model output.
func ClassifyBatch(
	ctx context.Context,
	rt *Runtime,
	blocks []contents.ContentBlock,
	catalog string,
) ([]Candidate, error) {
	if len(blocks) == 0 {
		return nil, nil
	}

	a, err := agent.New(&rt.Agent)
	if err != nil {
		return nil, fmt.Errorf("%w: create agent: %w", ErrClassifyFailed, err)
	}

	prompt := composeClassify(blocks, catalog)

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: chat call: %w", ErrClassifyFailed, err)
	}

	candidates, err := formatting.Parse[[]Candidate](resp.Content())
	if err != nil {
		return nil, fmt.Errorf("%w: parse response: %w", ErrClassifyFailed, err)
	}

	valid := candidates[:0]
	for _, c := range candidates {
		if c.BlockIndex < 0 || c.BlockIndex >= len(blocks) {
			rt.Logger.Warn(
				"discarding candidate with out-of-range block index",
				"block_index", c.BlockIndex,
				"batch_size", len(blocks),
			)
			continue
		}
		valid = append(valid, c)
	}

	return valid, nil
}

func composeClassify(blocks []contents.ContentBlock, catalog string) string {
	var sb strings.Builder
	sb.WriteString(classifySystemPrompt)
	sb.WriteString("\n\nTaxonomy:\n\n")
	sb.WriteString(catalog)
	sb.WriteString("\n\nBatch:\n")

	for i, b := range blocks {
		fmt.Fprintf(&sb, "\n--- block %d", i)
		fmt.Fprintf(&sb, " (%s", b.SourceFile)
		if b.SourcePage != nil {
			fmt.Fprintf(&sb, ", p.%d", *b.SourcePage)
		}
		sb.WriteString(") ---\n")
		sb.WriteString(strings.TrimSpace(b.Content))
		sb.WriteString("\n")
	}

	return sb.String()
}
