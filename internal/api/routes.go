package api

import (
	"net/http"

	"github.com/meridianlegal/dossier/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Contents.Handler().Routes(),
		domain.Packages.Handler().Routes(),
		domain.Classifications.Handler().Routes(),
		domain.Outline.Handler().Routes(),
	)
}
