package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrInvalidPath = errors.New("invalid file path")
)

// FileStorage stores uploaded objects under slash-separated keys.
type FileStorage interface {
	// Upload writes file under key and returns the cleaned key.
	Upload(ctx context.Context, file io.Reader, key string, contentType string) (string, error)

	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public address of key.
	URL(key string) string
}
