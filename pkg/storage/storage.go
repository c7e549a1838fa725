// Package storage provides blob storage operations behind a driver-neutral
// interface, with Azure Blob Storage and local filesystem implementations.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/stipend/pkg/lifecycle"
)

// System manages blob storage operations and lifecycle coordination.
// Blobs are written by key and addressed afterwards by the URL the write
// returned; each driver owns the translation between the two.
type System interface {
	// Start registers a startup hook that initializes the storage backend.
	Start(lc *lifecycle.Coordinator) error
	// Upload streams data to a blob at the given key with the specified
	// content type and returns the blob's URL.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
	// Download returns a stream for the blob at the given key. The caller must
	// close the reader. Returns ErrNotFound if the blob does not exist.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the blob addressed by the given URL.
	// Returns ErrNotFound if the blob does not exist.
	Delete(ctx context.Context, url string) error
	// List returns all stored blobs under the given prefix.
	List(ctx context.Context, prefix string) ([]Blob, error)
	// URL returns the URL a blob at the given key is addressed by.
	URL(key string) string
	// Key translates a URL produced by this store back into its key.
	Key(url string) (string, error)
}

// Blob describes a stored blob returned by List.
type Blob struct {
	Key      string
	Modified time.Time
}

// New creates a storage system for the configured driver.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Driver {
	case DriverLocal:
		return newLocal(cfg, logger)
	case DriverAzure:
		return newAzure(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.Driver)
	}
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
