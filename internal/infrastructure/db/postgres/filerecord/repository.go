package filerecord

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"academic-hub/internal/domain/filerecord"
	"academic-hub/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) filerecord.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchFiles(ctx context.Context, ownerID uuid.UUID) (filerecord.FileRecords, error) {
	rows, err := r.db.Query(ctx, SelectFiles, ownerID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs FileRecords
	for rows.Next() {
		f := new(FileRecord)

		if err = rows.Scan(scanDest(f)...); err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}

func (r *Repository) FetchFile(ctx context.Context, ownerID uuid.UUID, id filerecord.ID) (*filerecord.FileRecord, error) {
	f := new(FileRecord)
	err := r.db.QueryRow(ctx, SelectFileByID, ownerID.String(), id.String()).Scan(scanDest(f)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) SaveFile(ctx context.Context, f *filerecord.FileRecord) error {
	_, err := r.db.Exec(ctx, UpsertFile, toArgs(f)...)
	return err
}

func (r *Repository) DeleteFile(ctx context.Context, ownerID uuid.UUID, id filerecord.ID) (bool, error) {
	tag, err := r.db.Exec(ctx, DeleteFileByID, ownerID.String(), id.String())
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func scanDest(f *FileRecord) []any {
	return []any{
		&f.OwnerID,
		&f.ID,
		&f.SubjectID,
		&f.Category,

		&f.Name,
		&f.SizeBytes,
		&f.MimeType,
		&f.Tags,
		&f.Notes,
		&f.ContentRef,
		&f.StoragePath,

		&f.UploadedAt,
		&f.IsFavorite,
		&f.DeletedAt,
	}
}
