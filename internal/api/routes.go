package api

import (
	"net/http"

	"github.com/JaimeStill/stipend/internal/config"
	"github.com/JaimeStill/stipend/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Payslips.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
	)
}
