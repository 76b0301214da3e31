package contents

import (
	"fmt"
	"strings"
)

// AssembleContext joins a project's content blocks into a single text blob
// for prompt construction. With sources enabled, each block is preceded by
// a citation line so generated documents can reference their evidence.
// Blocks are expected in the store's canonical order (source file, page,
// extraction time).
func AssembleContext(blocks []ContentBlock, withSources bool) string {
	if len(blocks) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, b := range blocks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if withSources {
			sb.WriteString(citation(b))
			sb.WriteString("\n")
		}
		sb.WriteString(strings.TrimSpace(b.Content))
	}

	return sb.String()
}

func citation(b ContentBlock) string {
	var sb strings.Builder
	sb.WriteString("[" + b.SourceFile)
	if b.SourcePage != nil {
		fmt.Fprintf(&sb, ", p.%d", *b.SourcePage)
	}
	if b.SourceSection != nil && *b.SourceSection != "" {
		sb.WriteString(" — " + *b.SourceSection)
	}
	sb.WriteString("]")
	return sb.String()
}

// CountWords returns the whitespace-delimited word count of content.
func CountWords(content string) int {
	return len(strings.Fields(content))
}
