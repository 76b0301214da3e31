// Package workflow implements the LLM-backed flows behind the domain
// systems: package generation, batch evidence classification, and outline
// synthesis. Domain packages own persistence and orchestration; this
// package owns prompt assembly, inference calls, and response parsing.
package workflow

import (
	"context"
	"log/slog"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/meridianlegal/dossier/internal/contents"
)

// ClassifyFunc classifies one batch of content blocks against a rendered
// taxonomy catalog.
type ClassifyFunc func(ctx context.Context, rt *Runtime, blocks []contents.ContentBlock, catalog string) ([]Candidate, error)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure
// and Domain systems.
type Runtime struct {
	Agent    gaconfig.AgentConfig
	Contents contents.System
	Logger   *slog.Logger

	// Classify replaces the chat-backed batch classification when set.
	// Nil means ClassifyBatch.
	Classify ClassifyFunc
}

// Classifier resolves the batch classification call for this runtime.
func (rt *Runtime) Classifier() ClassifyFunc {
	if rt.Classify != nil {
		return rt.Classify
	}
	return ClassifyBatch
}
