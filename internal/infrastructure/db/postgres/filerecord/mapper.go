package filerecord

import (
	domain "academic-hub/internal/domain/filerecord"
)

func fromDBModel(model *FileRecord) *domain.FileRecord {
	tags := model.Tags
	if tags == nil {
		tags = []string{}
	}

	var f = &domain.FileRecord{
		ID:        model.ID,
		OwnerID:   model.OwnerID,
		SubjectID: model.SubjectID,
		Category:  model.Category,

		Name:        model.Name,
		SizeBytes:   model.SizeBytes,
		MimeType:    model.MimeType,
		Tags:        tags,
		Notes:       model.Notes,
		ContentRef:  model.ContentRef,
		StoragePath: model.StoragePath,

		UploadedAt: model.UploadedAt,
		IsFavorite: model.IsFavorite,
		DeletedAt:  model.DeletedAt,
	}

	return f
}

func fromDBModels(models *FileRecords) domain.FileRecords {
	fs := make(domain.FileRecords, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}

func toArgs(f *domain.FileRecord) []any {
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}

	return []any{
		f.OwnerID.String(), f.ID.String(), f.SubjectID, f.Category,
		f.Name, f.SizeBytes, f.MimeType, tags, f.Notes, f.ContentRef, f.StoragePath,
		f.UploadedAt, f.IsFavorite, f.DeletedAt,
	}
}
