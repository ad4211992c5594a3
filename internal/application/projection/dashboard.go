package projection

import (
	"github.com/samber/lo"

	"academic-hub/internal/domain/filerecord"
	"academic-hub/internal/domain/userconfig"
)

const DefaultRecentLimit = 10

type (
	SubjectCount struct {
		SubjectID string
		Name      string
		Files     int
	}
	Dashboard struct {
		Recent       filerecord.FileRecords
		PendingTasks int
		Favorites    int
		Trashed      int
		ActiveFiles  int
		ActiveBytes  int64
		BySubject    []SubjectCount
	}
)

// Summarize builds the landing view. Subjects keep the order of the config;
// records filed under unknown subjects only count towards the totals.
func Summarize(records filerecord.FileRecords, subjects []userconfig.Subject, recentLimit int) Dashboard {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}

	active := Project(records, AllActive(), "")
	perSubject := lo.CountValuesBy(active, func(f *filerecord.FileRecord) string { return f.SubjectID })

	return Dashboard{
		Recent: active[:min(recentLimit, len(active))],
		PendingTasks: lo.CountBy(active, func(f *filerecord.FileRecord) bool {
			return f.Category == filerecord.CategoryTasks
		}),
		Favorites:   lo.CountBy(active, func(f *filerecord.FileRecord) bool { return f.IsFavorite }),
		Trashed:     lo.CountBy(records, func(f *filerecord.FileRecord) bool { return f != nil && f.IsTrashed() }),
		ActiveFiles: len(active),
		ActiveBytes: lo.SumBy(active, func(f *filerecord.FileRecord) int64 { return f.SizeBytes }),
		BySubject: lo.Map(subjects, func(s userconfig.Subject, _ int) SubjectCount {
			return SubjectCount{SubjectID: s.ID, Name: s.Name, Files: perSubject[s.ID]}
		}),
	}
}
