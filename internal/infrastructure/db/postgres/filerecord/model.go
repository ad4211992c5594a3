package filerecord

import (
	"time"

	"github.com/google/uuid"
)

type (
	FileRecord struct {
		OwnerID   uuid.UUID
		ID        uuid.UUID
		SubjectID string
		Category  string

		Name        string
		SizeBytes   int64
		MimeType    string
		Tags        []string
		Notes       string
		ContentRef  string
		StoragePath string

		UploadedAt time.Time
		IsFavorite bool
		DeletedAt  *time.Time
	}
	FileRecords []*FileRecord
)
