package filerecord

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type Category = string

// Built-in category keys. The archives category is browsed across subjects.
const (
	CategoryTasks        Category = "tasks"
	CategorySolutions    Category = "solutions"
	CategoryControlExams Category = "controlExams"
	CategoryEtsExams     Category = "etsExams"
	CategoryReferences   Category = "references"
	CategoryArchives     Category = "archives"
)

type (
	ID         = uuid.UUID
	FileRecord struct {
		ID        ID
		OwnerID   uuid.UUID
		SubjectID string
		Category  Category

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

	// Patch is a partial edit; nil fields are left unchanged.
	Patch struct {
		Name      *string
		SubjectID *string
		Category  *Category
		Notes     *string
		Tags      *[]string
	}
)

func (f *FileRecord) IsTrashed() bool { return f.DeletedAt != nil }

// ToggleFavorite flips the flag in any state. Trashed records keep it hidden until restored.
func (f *FileRecord) ToggleFavorite() { f.IsFavorite = !f.IsFavorite }

// Trash moves an active record to the trash. It reports false if the record
// was already trashed, in which case the original deletion time is kept.
func (f *FileRecord) Trash(now time.Time) bool {
	if f.IsTrashed() {
		return false
	}
	t := now
	f.DeletedAt = &t
	return true
}

// Restore reports false if the record was already active.
func (f *FileRecord) Restore() bool {
	if !f.IsTrashed() {
		return false
	}
	f.DeletedAt = nil
	return true
}

func (f *FileRecord) Apply(p Patch) {
	if p.Name != nil {
		if name := strings.TrimSpace(*p.Name); name != "" {
			f.Name = name
		}
	}
	if p.SubjectID != nil {
		f.SubjectID = *p.SubjectID
	}
	if p.Category != nil {
		f.Category = *p.Category
	}
	if p.Notes != nil {
		f.Notes = *p.Notes
	}
	if p.Tags != nil {
		f.Tags = CleanTags(*p.Tags)
	}
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.SubjectID == nil && p.Category == nil && p.Notes == nil && p.Tags == nil
}

// CleanTags trims tags, drops blanks and duplicates, keeps first-seen order.
func CleanTags(tags []string) []string {
	trimmed := lo.Map(tags, func(t string, _ int) string { return strings.TrimSpace(t) })
	out := lo.Uniq(lo.Compact(trimmed))
	if out == nil {
		return []string{}
	}
	return out
}
