package api

import (
	"time"

	"github.com/meridianlegal/dossier/internal/config"
	"github.com/meridianlegal/dossier/internal/infrastructure"
	"github.com/meridianlegal/dossier/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination        pagination.Config
	ExtractionBaseURL string
	ExtractionTimeout time.Duration
	BatchSize         int
	StaleTimeout      time.Duration
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Agent:     cfg.Agent,
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
		},
		Pagination:        cfg.API.Pagination,
		ExtractionBaseURL: cfg.Extraction.BaseURL,
		ExtractionTimeout: cfg.Extraction.TimeoutDuration(),
		BatchSize:         cfg.Classification.BatchSize,
		StaleTimeout:      cfg.Classification.StaleTimeoutDuration(),
	}
}
