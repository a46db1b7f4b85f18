package service

import (
	"context"
)

// Blob is a stored binary plus its content type.
type Blob struct {
	Data        []byte
	ContentType string
}

// BlobService stores the binary content (covers, files, profile images)
// associated with table objects, keyed by the object's uuid.
type BlobService interface {
	Put(ctx context.Context, key string, blob *Blob) error
	Get(ctx context.Context, key string) (*Blob, error)
	Delete(ctx context.Context, key string) error
}
