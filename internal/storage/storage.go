package storage

import (
	"context"
	"io"
)

// BlobStore persists uploaded file bytes under a collision-safe name and
// returns the path the record will carry. Deleting a record never deletes
// its blobs.
type BlobStore interface {
	Save(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error)
}
