package storage

import (
	"context"
	"errors"
	"io"
)

var ErrFileNotFound = errors.New("file not found")

// FileStorage keeps generated documents.
type FileStorage interface {
	// Upload writes the content under path and returns the cleaned key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download opens a stored file. Missing files yield ErrFileNotFound.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}
