package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/JaimeStill/stipend/internal/api"
	"github.com/JaimeStill/stipend/internal/config"
	"github.com/JaimeStill/stipend/internal/infrastructure"
	"github.com/JaimeStill/stipend/pkg/middleware"
	"github.com/JaimeStill/stipend/pkg/module"
	"github.com/JaimeStill/stipend/pkg/openapi"
	"github.com/JaimeStill/stipend/pkg/storage"
	"github.com/JaimeStill/stipend/web/scalar"
)

const serviceName = "stipend"

type Modules struct {
	API    *module.Module
	Files  *module.Module
	Scalar *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	scalarModule := scalar.NewModule("/scalar", "/openapi.json")
	scalarModule.Use(middleware.Logger(infra.Logger))

	modules := &Modules{
		API:    apiModule,
		Scalar: scalarModule,
	}

	// Azure blobs are addressed by their own URLs; only the local driver
	// serves blob content through the service.
	if cfg.Storage.Driver == storage.DriverLocal {
		modules.Files = api.NewFilesModule(infra.Storage, infra.Logger)
	}

	return modules, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)

	if m.Files != nil {
		router.Mount(m.Files)
	}
}

func buildRouter(
	infra *infrastructure.Infrastructure,
	cfg *config.Config,
	spec []byte,
) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Payslip Management API",
			"version": cfg.Version,
		})
	})

	router.HandleNative("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		status := "healthy"
		if !infra.Lifecycle.Ready() {
			status = "starting"
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   serviceName,
		})
	})

	router.HandleNative("GET /openapi.json", openapi.ServeSpec(spec))

	return router
}
