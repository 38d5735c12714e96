package storage

import (
	"context"
	"io"
)

// Storage is an object store addressed by slash-separated paths.
type Storage interface {
	// Upload writes data from reader to the given path, replacing any object
	// already there.
	Upload(ctx context.Context, path string, reader io.Reader) error

	// Download returns a reader for the object at the given path.
	// The caller is responsible for closing the returned ReadCloser.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists checks whether an object exists at the given path.
	Exists(ctx context.Context, path string) (bool, error)

	// URL returns a URL locating the object at the given path.
	URL(ctx context.Context, path string) (string, error)
}
