// Package storage provides blob storage for uploaded files.
package storage

import "context"

// BlobStore abstracts the file storage backend. Paths are relative
// references (e.g. "posts/abc.jpg") suitable for persisting on entities.
type BlobStore interface {
	// Save writes content under the given relative path, creating parent
	// directories as needed, and returns the stored path reference.
	Save(ctx context.Context, path string, content []byte) (string, error)
	// Delete removes the blob at the given path. Deleting a blob that no
	// longer exists is not an error.
	Delete(ctx context.Context, path string) error
}
