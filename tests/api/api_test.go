package api_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/stipend/internal/api"
	"github.com/JaimeStill/stipend/internal/config"
	"github.com/JaimeStill/stipend/internal/infrastructure"
	"github.com/JaimeStill/stipend/pkg/database"
	"github.com/JaimeStill/stipend/pkg/middleware"
	"github.com/JaimeStill/stipend/pkg/pagination"
	"github.com/JaimeStill/stipend/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=stipendstore;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/stipendstore;"

func validConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     "1m",
			WriteTimeout:    "15m",
			ShutdownTimeout: "30s",
		},
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "stipend",
			User:            "stipend",
			Password:        "stipend",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			Driver:           storage.DriverAzure,
			ContainerName:    "payslips",
			ConnectionString: azuriteConnString,
		},
		API: config.APIConfig{
			BasePath:      "/payslips",
			MaxUploadSize: "10MB",
			CORS: middleware.CORSConfig{
				Enabled: false,
			},
			Window: pagination.Config{
				DefaultLimit: 100,
				MaxLimit:     1000,
			},
		},
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
	}
}

func setupInfra(t *testing.T) *infrastructure.Infrastructure {
	t.Helper()
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	return infra
}

func TestNewModule(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	if m.Prefix() != "/payslips" {
		t.Errorf("prefix: got %s, want /payslips", m.Prefix())
	}
}

func TestNewRuntime(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)

	runtime := api.NewRuntime(cfg, infra)

	if runtime.Window.DefaultLimit != 100 {
		t.Errorf("window default limit: got %d, want 100", runtime.Window.DefaultLimit)
	}
	if runtime.Window.MaxLimit != 1000 {
		t.Errorf("window max limit: got %d, want 1000", runtime.Window.MaxLimit)
	}
	if runtime.Logger == nil {
		t.Error("runtime logger is nil")
	}
	if runtime.Database == nil {
		t.Error("runtime database is nil")
	}
	if runtime.Storage == nil {
		t.Error("runtime storage is nil")
	}
	if runtime.Lifecycle == nil {
		t.Error("runtime lifecycle is nil")
	}
}

func TestNewDomain(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)
	runtime := api.NewRuntime(cfg, infra)

	domain := api.NewDomain(runtime)
	if domain == nil {
		t.Fatal("NewDomain() returned nil")
	}
	if domain.Payslips == nil {
		t.Fatal("domain payslip system is nil")
	}
}

func TestBuildSpec(t *testing.T) {
	cfg := validConfig()

	data, err := api.BuildSpec(cfg)
	if err != nil {
		t.Fatalf("BuildSpec() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("BuildSpec() returned empty document")
	}
}

func TestFilesModuleServesBlob(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = storage.DriverLocal
	cfg.Storage.Root = t.TempDir()
	cfg.Storage.BaseURL = "http://localhost:8080"

	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}

	ctx := t.Context()
	if _, err := infra.Storage.Upload(ctx, "payslips/101/2025/6/slip.pdf",
		strings.NewReader("pdf bytes"), "application/pdf"); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	m := api.NewFilesModule(infra.Storage, infra.Logger)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/files/payslips/101/2025/6/slip.pdf", nil)
	m.Serve(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", res.StatusCode)
	}

	body, _ := io.ReadAll(res.Body)
	if string(body) != "pdf bytes" {
		t.Errorf("body = %q, want %q", body, "pdf bytes")
	}
}

func TestFilesModuleMissingBlob(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = storage.DriverLocal
	cfg.Storage.Root = t.TempDir()
	cfg.Storage.BaseURL = "http://localhost:8080"

	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}

	m := api.NewFilesModule(infra.Storage, infra.Logger)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/files/payslips/missing.pdf", nil)
	m.Serve(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}
