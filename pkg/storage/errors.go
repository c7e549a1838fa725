package storage

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound indicates the requested blob does not exist.
	ErrNotFound = errors.New("blob not found")
	// ErrEmptyKey indicates an empty storage key was provided.
	ErrEmptyKey = errors.New("storage key must not be empty")
	// ErrInvalidKey indicates the storage key contains a path traversal segment.
	ErrInvalidKey = errors.New("storage key contains invalid path segment")
	// ErrForbidden indicates a resolved path escapes the storage root.
	ErrForbidden = errors.New("path escapes storage root")
	// ErrForeignURL indicates a URL that this store did not produce.
	ErrForeignURL = errors.New("url does not belong to this store")
)

// MapHTTPStatus maps storage errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	// Traversal keys are escape attempts, same as resolved paths that
	// land outside the root.
	if errors.Is(err, ErrForbidden) || errors.Is(err, ErrInvalidKey) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrEmptyKey) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
