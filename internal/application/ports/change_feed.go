package ports

import (
	"context"

	"academic-hub/internal/domain/filerecord"
	"academic-hub/internal/domain/user"
)

// ChangeFeed pushes the owner's full record set every time it changes.
// The channel returned by Subscribe is closed once ctx is done.
type ChangeFeed interface {
	Subscribe(ctx context.Context, owner user.UUID) (<-chan filerecord.FileRecords, error)
	Snapshot(ctx context.Context, owner user.UUID) (filerecord.FileRecords, error)
	Notify(ctx context.Context, owner user.UUID)
}
