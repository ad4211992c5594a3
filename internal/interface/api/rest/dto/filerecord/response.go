package filerecord

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID         uuid.UUID  `json:"id"`
		SubjectID  string     `json:"subject_id"`
		Category   string     `json:"category"`
		Name       string     `json:"name"`
		SizeBytes  int64      `json:"size_bytes"`
		SizeHuman  string     `json:"size_human"`
		MimeType   string     `json:"mime_type"`
		Tags       []string   `json:"tags"`
		Notes      string     `json:"notes"`
		ContentRef string     `json:"content_ref"`
		UploadedAt time.Time  `json:"uploaded_at"`
		IsFavorite bool       `json:"is_favorite"`
		DeletedAt  *time.Time `json:"deleted_at"`
	}
	Files        []File
	ResponseData struct {
		Data  Files `json:"data"`
		Total int   `json:"total"`
	}

	SubjectCount struct {
		SubjectID string `json:"subject_id"`
		Name      string `json:"name"`
		Files     int    `json:"files"`
	}
	Dashboard struct {
		Recent           Files          `json:"recent"`
		PendingTasks     int            `json:"pending_tasks"`
		Favorites        int            `json:"favorites"`
		Trashed          int            `json:"trashed"`
		ActiveFiles      int            `json:"active_files"`
		ActiveBytes      int64          `json:"active_bytes"`
		ActiveBytesHuman string         `json:"active_bytes_human"`
		BySubject        []SubjectCount `json:"by_subject"`
	}

	EmptyTrashResponse struct {
		Removed int `json:"removed"`
	}
)
