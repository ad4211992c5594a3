package ports

import (
	"context"
	"io"

	"academic-hub/internal/application/projection"
	"academic-hub/internal/domain/filerecord"
	"academic-hub/internal/domain/user"
	"academic-hub/internal/domain/userconfig"
)

type (
	Payload struct {
		FileName string
		MimeType string
		Size     int64
		Content  io.Reader
	}
	UploadRequest struct {
		Payload   Payload
		SubjectID string
		Category  filerecord.Category
		Tags      []string
	}
)

type UploadService interface {
	Upload(ctx context.Context, owner user.UUID, req UploadRequest, onProgress ProgressFunc) (*filerecord.FileRecord, error)
}

type FileService interface {
	ListFiles(ctx context.Context, owner user.UUID, scope projection.Scope, query string) (filerecord.FileRecords, error)
	Dashboard(ctx context.Context, owner user.UUID) (projection.Dashboard, error)
	ToggleFavorite(ctx context.Context, owner user.UUID, id filerecord.ID) (*filerecord.FileRecord, error)
	Edit(ctx context.Context, owner user.UUID, id filerecord.ID, patch filerecord.Patch) (*filerecord.FileRecord, error)
	SoftDelete(ctx context.Context, owner user.UUID, id filerecord.ID) (*filerecord.FileRecord, error)
	Restore(ctx context.Context, owner user.UUID, id filerecord.ID) (*filerecord.FileRecord, error)
	PermanentDelete(ctx context.Context, owner user.UUID, id filerecord.ID, force bool) error
	EmptyTrash(ctx context.Context, owner user.UUID) (int, error)
}

type ConfigService interface {
	Load(ctx context.Context, owner user.UUID) (*userconfig.Config, error)
	Save(ctx context.Context, owner user.UUID, cfg userconfig.Config) (*userconfig.Config, error)
	AddSubject(ctx context.Context, owner user.UUID, name, iconKey string) (*userconfig.Config, error)
	RemoveSubject(ctx context.Context, owner user.UUID, subjectID string) (*userconfig.Config, error)
}
