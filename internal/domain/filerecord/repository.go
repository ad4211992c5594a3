package filerecord

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("file not found")

// Repository is the owner-partitioned metadata store. Fetch methods return
// nil without error when nothing matches. SaveFile is an upsert: the last
// writer wins.
type Repository interface {
	FetchFile(ctx context.Context, ownerID uuid.UUID, id ID) (*FileRecord, error)
	FetchFiles(ctx context.Context, ownerID uuid.UUID) (FileRecords, error)
	SaveFile(ctx context.Context, rec *FileRecord) error
	DeleteFile(ctx context.Context, ownerID uuid.UUID, id ID) (bool, error)
}
