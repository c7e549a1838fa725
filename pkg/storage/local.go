package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/stipend/pkg/lifecycle"
)

type local struct {
	root    string
	baseURL string
	logger  *slog.Logger
}

// newLocal creates a filesystem-backed storage system rooted at cfg.Root.
// Blob URLs are served under {base_url}/files/{key}; this driver backs the
// demo mode where the service itself hosts the stored files.
func newLocal(cfg *Config, logger *slog.Logger) (System, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}

	return &local{
		root:    root,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:  logger.With("system", "storage", "driver", DriverLocal),
	}, nil
}

func (l *local) Start(lc *lifecycle.Coordinator) error {
	l.logger.Info("starting storage system")

	lc.OnStartup(func() {
		if err := os.MkdirAll(l.root, 0o755); err != nil {
			l.logger.Error("storage root initialization failed", "error", err)
			return
		}

		l.logger.Info("storage root ready", "root", l.root)
	})

	return nil
}

func (l *local) Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	path, err := l.resolve(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create blob directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create blob %s: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		return "", fmt.Errorf("write blob %s: %w", key, err)
	}

	return l.URL(key), nil
}

func (l *local) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := l.resolve(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open blob %s: %w", key, err)
	}

	return f, nil
}

func (l *local) Delete(ctx context.Context, url string) error {
	key, err := l.Key(url)
	if err != nil {
		return err
	}

	path, err := l.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete blob %s: %w", key, err)
	}

	return nil
}

func (l *local) List(ctx context.Context, prefix string) ([]Blob, error) {
	blobs := make([]Blob, 0)

	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}

		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		blobs = append(blobs, Blob{Key: key, Modified: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list blobs %s: %w", prefix, err)
	}

	return blobs, nil
}

func (l *local) URL(key string) string {
	return l.baseURL + "/files/" + key
}

func (l *local) Key(url string) (string, error) {
	key, ok := strings.CutPrefix(url, l.baseURL+"/files/")
	if !ok || key == "" {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, url)
	}
	return key, nil
}

// resolve joins a key onto the storage root, rejecting any key whose
// cleaned path would land outside it.
func (l *local) resolve(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	path := filepath.Join(l.root, filepath.FromSlash(key))
	if path != l.root && !strings.HasPrefix(path, l.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrForbidden, key)
	}

	return path, nil
}
