package storage

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("file not found")

// FileStorage keeps whole files addressed by a relative path.
type FileStorage interface {
	// Write replaces the file at path; readers never see a partial file
	Write(ctx context.Context, path string, content io.Reader) error

	// Read returns ErrNotFound when nothing was written at path
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}
