package api

import (
	"github.com/meridianlegal/dossier/internal/classifications"
	"github.com/meridianlegal/dossier/internal/contents"
	"github.com/meridianlegal/dossier/internal/outline"
	"github.com/meridianlegal/dossier/internal/packages"
	"github.com/meridianlegal/dossier/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Contents        contents.System
	Packages        packages.System
	Classifications classifications.System
	Outline         outline.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	contentsSystem := contents.New(
		db,
		contents.NewHTTPExtractor(runtime.ExtractionBaseURL, runtime.ExtractionTimeout),
		runtime.Logger,
		runtime.Pagination,
	)

	packagesSystem := packages.New(
		db,
		&workflow.Runtime{
			Agent:    runtime.Agent.AgentConfig,
			Contents: contentsSystem,
			Logger:   runtime.Logger.With("workflow", "generate"),
		},
		runtime.Logger,
	)

	classificationsSystem := classifications.New(
		db,
		runtime.Agent.AgentConfig,
		runtime.Lifecycle.Context(),
		runtime.Logger,
		runtime.Pagination,
		contentsSystem,
		runtime.BatchSize,
		runtime.StaleTimeout,
	)

	outlineSystem := outline.New(
		db,
		runtime.Agent.AgentConfig,
		runtime.Logger,
		contentsSystem,
	)

	return &Domain{
		Contents:        contentsSystem,
		Packages:        packagesSystem,
		Classifications: classificationsSystem,
		Outline:         outlineSystem,
	}
}
