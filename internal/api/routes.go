package api

import (
	"net/http"

	"github.com/arbiterhq/arbiter/internal/config"
	"github.com/arbiterhq/arbiter/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, cfg *config.Config) {
	maxUpload := cfg.API.MaxUploadSizeBytes()

	inputHandler := domain.Inputs.Handler()
	evidenceHandler := domain.Evidence.Handler(maxUpload)
	questionHandler := domain.Questions.Handler()

	routes.Register(
		mux,
		domain.Auth.Handler().Routes(),
		domain.Users.Handler().Routes(),
		domain.Conflicts.Handler().Routes(),
		domain.Members.Handler().Routes(),
		inputHandler.Routes(),
		inputHandler.RowRoutes(),
		evidenceHandler.Routes(),
		evidenceHandler.RowRoutes(),
		questionHandler.Routes(),
		questionHandler.RowRoutes(),
		domain.Decisions.Handler().Routes(),
		domain.Arbiter.Handler().Routes(),
	)
}
