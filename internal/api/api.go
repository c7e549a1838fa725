// Package api assembles the payslip API module with its domain system,
// route registration, and middleware.
package api

import (
	"net/http"

	"github.com/JaimeStill/stipend/internal/config"
	"github.com/JaimeStill/stipend/internal/infrastructure"
	"github.com/JaimeStill/stipend/pkg/middleware"
	"github.com/JaimeStill/stipend/pkg/module"
)

// NewModule creates the payslip API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, nil
}
