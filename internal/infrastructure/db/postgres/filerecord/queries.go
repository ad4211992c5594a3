package filerecord

const (
	SelectFiles = `
		SELECT owner_id, id, subject_id, category, name, size_bytes, mime_type, tags, notes, content_ref, storage_path, uploaded_at, is_favorite, deleted_at
		FROM file_records
		WHERE owner_id = $1
		ORDER BY uploaded_at DESC
	`
	SelectFileByID = `
		SELECT owner_id, id, subject_id, category, name, size_bytes, mime_type, tags, notes, content_ref, storage_path, uploaded_at, is_favorite, deleted_at
		FROM file_records
		WHERE owner_id = $1 AND id = $2
	`
	// UpsertFile never rewrites the fields fixed at upload time.
	UpsertFile = `
		INSERT INTO file_records (owner_id, id, subject_id, category, name, size_bytes, mime_type, tags, notes, content_ref, storage_path, uploaded_at, is_favorite, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (owner_id, id) DO UPDATE
		SET subject_id = EXCLUDED.subject_id,
		    category = EXCLUDED.category,
		    name = EXCLUDED.name,
		    tags = EXCLUDED.tags,
		    notes = EXCLUDED.notes,
		    is_favorite = EXCLUDED.is_favorite,
		    deleted_at = EXCLUDED.deleted_at
	`
	DeleteFileByID = `DELETE FROM file_records WHERE owner_id = $1 AND id = $2`
)
