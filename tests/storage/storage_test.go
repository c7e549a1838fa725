package storage_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"testing"

	"github.com/JaimeStill/stipend/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=stipendstore;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/stipendstore;"

func localSystem(t *testing.T) storage.System {
	t.Helper()

	cfg := &storage.Config{
		Driver:  storage.DriverLocal,
		Root:    t.TempDir(),
		BaseURL: "http://localhost:8080",
	}

	sys, err := storage.New(cfg, slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return sys
}

func TestNewAzureReturnsSystem(t *testing.T) {
	cfg := &storage.Config{
		Driver:           storage.DriverAzure,
		ContainerName:    "payslips",
		ConnectionString: azuriteConnString,
	}

	sys, err := storage.New(cfg, slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if sys == nil {
		t.Fatal("New() returned nil system")
	}
}

func TestNewUnknownDriver(t *testing.T) {
	cfg := &storage.Config{Driver: "s3"}

	_, err := storage.New(cfg, slog.Default())
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestLocalUploadDownload(t *testing.T) {
	sys := localSystem(t)
	ctx := context.Background()

	content := []byte("%PDF-1.4 payslip content")
	url, err := sys.Upload(ctx, "payslips/101/2025/6/test.pdf", bytes.NewReader(content), "application/pdf")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	want := "http://localhost:8080/files/payslips/101/2025/6/test.pdf"
	if url != want {
		t.Errorf("Upload() url = %q, want %q", url, want)
	}

	body, err := sys.Download(ctx, "payslips/101/2025/6/test.pdf")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	defer body.Close()

	got, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read download: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("downloaded content = %q, want %q", got, content)
	}
}

func TestLocalDownloadNotFound(t *testing.T) {
	sys := localSystem(t)

	_, err := sys.Download(context.Background(), "payslips/missing.pdf")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestLocalDelete(t *testing.T) {
	sys := localSystem(t)
	ctx := context.Background()

	url, err := sys.Upload(ctx, "payslips/101/2025/6/test.pdf", bytes.NewReader([]byte("data")), "application/pdf")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if err := sys.Delete(ctx, url); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err = sys.Download(ctx, "payslips/101/2025/6/test.pdf")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Download() after delete error = %v, want ErrNotFound", err)
	}
}

func TestLocalDeleteNotFound(t *testing.T) {
	sys := localSystem(t)

	err := sys.Delete(context.Background(), "http://localhost:8080/files/payslips/missing.pdf")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestLocalDeleteForeignURL(t *testing.T) {
	sys := localSystem(t)

	err := sys.Delete(context.Background(), "https://elsewhere.example.com/blob.pdf")
	if !errors.Is(err, storage.ErrForeignURL) {
		t.Errorf("error = %v, want ErrForeignURL", err)
	}
}

func TestLocalList(t *testing.T) {
	sys := localSystem(t)
	ctx := context.Background()

	keys := []string{
		"payslips/101/2025/6/a.pdf",
		"payslips/101/2025/7/b.pdf",
		"payslips/102/2025/6/c.pdf",
	}
	for _, key := range keys {
		if _, err := sys.Upload(ctx, key, bytes.NewReader([]byte("data")), "application/pdf"); err != nil {
			t.Fatalf("Upload(%s) error = %v", key, err)
		}
	}

	got, err := sys.List(ctx, "payslips/101/")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("List() returned %d blobs, want 2", len(got))
	}

	gotKeys := make([]string, 0, len(got))
	for _, blob := range got {
		gotKeys = append(gotKeys, blob.Key)
		if blob.Modified.IsZero() {
			t.Errorf("List() blob %s has zero modification time", blob.Key)
		}
	}
	for _, key := range []string{"payslips/101/2025/6/a.pdf", "payslips/101/2025/7/b.pdf"} {
		if !slices.Contains(gotKeys, key) {
			t.Errorf("List() missing key %s", key)
		}
	}
}

func TestLocalListEmpty(t *testing.T) {
	sys := localSystem(t)

	got, err := sys.List(context.Background(), "payslips/")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List() returned %d keys, want 0", len(got))
	}
}

func TestLocalRejectsTraversal(t *testing.T) {
	sys := localSystem(t)
	ctx := context.Background()

	tests := []struct {
		name string
		key  string
		want error
	}{
		{"empty key", "", storage.ErrEmptyKey},
		{"parent traversal", "../escape.pdf", storage.ErrInvalidKey},
		{"embedded traversal", "payslips/../../escape.pdf", storage.ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sys.Upload(ctx, tt.key, bytes.NewReader([]byte("data")), "application/pdf")
			if !errors.Is(err, tt.want) {
				t.Errorf("Upload(%q) error = %v, want %v", tt.key, err, tt.want)
			}

			if _, err := sys.Download(ctx, tt.key); !errors.Is(err, tt.want) {
				t.Errorf("Download(%q) error = %v, want %v", tt.key, err, tt.want)
			}
		})
	}
}

func TestLocalKeyRoundTrip(t *testing.T) {
	sys := localSystem(t)

	key := "payslips/101/2025/6/test.pdf"
	url := sys.URL(key)

	got, err := sys.Key(url)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	if got != key {
		t.Errorf("Key(%q) = %q, want %q", url, got, key)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", storage.ErrNotFound, http.StatusNotFound},
		{"forbidden", storage.ErrForbidden, http.StatusForbidden},
		{"empty key", storage.ErrEmptyKey, http.StatusBadRequest},
		{"traversal key", storage.ErrInvalidKey, http.StatusForbidden},
		{"wrapped traversal key", fmt.Errorf("download: %w", storage.ErrInvalidKey), http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := storage.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
