package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/stipend/pkg/formatting"
	"github.com/JaimeStill/stipend/pkg/middleware"
	"github.com/JaimeStill/stipend/pkg/openapi"
	"github.com/JaimeStill/stipend/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "STIPEND_CORS_ENABLED",
	Origins:          "STIPEND_CORS_ORIGINS",
	AllowedMethods:   "STIPEND_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "STIPEND_CORS_ALLOWED_HEADERS",
	AllowCredentials: "STIPEND_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "STIPEND_CORS_MAX_AGE",
}

var windowEnv = &pagination.ConfigEnv{
	DefaultLimit: "STIPEND_LIST_DEFAULT_LIMIT",
	MaxLimit:     "STIPEND_LIST_MAX_LIMIT",
}

var docsEnv = &openapi.ConfigEnv{
	Title:       "STIPEND_DOCS_TITLE",
	Description: "STIPEND_DOCS_DESCRIPTION",
}

// APIConfig holds API routing, upload, CORS, and list windowing settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Window        pagination.Config     `toml:"window"`
	Docs          openapi.Config        `toml:"docs"`
}

func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 10 * 1024 * 1024 // 10MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS, window, and docs configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Window.Finalize(windowEnv); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	if err := c.Docs.Finalize(docsEnv); err != nil {
		return fmt.Errorf("docs: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Window.Merge(&overlay.Window)
	c.Docs.Merge(&overlay.Docs)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/payslips"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("STIPEND_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("STIPEND_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
}
