package ports

import (
	"context"
	"io"
)

// ProgressFunc receives transfer progress in percent, 0 to 100.
type ProgressFunc func(percent float64)

type BlobStore interface {
	PutResumable(ctx context.Context, path string, r io.Reader, size int64, contentType string, onProgress ProgressFunc) error
	ContentRef(path string) string
	Delete(ctx context.Context, ref string) error
}
