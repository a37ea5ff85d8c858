// Package storage is the image storage collaborator. The core hands it an
// uploaded payload and receives back an opaque reference; it deletes the
// referenced files synchronously when a pin or avatar is replaced or its
// owning entity is deleted, so no orphan files accumulate.
package storage

import (
	"context"
)

// Store persists images and resolves references to files.
type Store interface {
	// Save validates and persists an uploaded image, returning an opaque
	// reference.
	Save(ctx context.Context, content []byte, contentType string) (string, error)
	// Delete removes every file behind the reference. Deleting an unknown
	// reference is a no-op.
	Delete(ctx context.Context, ref string) error
	// Path resolves a reference to a servable file path.
	Path(ref string) string
}
