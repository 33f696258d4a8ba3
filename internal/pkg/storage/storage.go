package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned by Get when nothing is stored under the path.
var ErrObjectNotFound = errors.New("storage: object not found")

// Storage persists photo bytes under relative, slash-separated paths.
type Storage interface {
	// Save writes content to path, replacing anything already there.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the object at path. The caller must close the reader.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the object at path. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error
}
