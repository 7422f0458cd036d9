package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Get when no object exists at path.
var ErrNotFound = errors.New("stored object not found")

// Storage is the blob store used for payment proofs.
// Paths are slash-separated and relative to the store root.
type Storage interface {
	// Save writes content at path, replacing any existing object.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the object at path. The caller closes the reader.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the object at path. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error

	// PublicURL returns the URL under which the object is served.
	PublicURL(path string) string
}
