package filerecord

import (
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"academic-hub/internal/application/projection"
	"academic-hub/internal/domain/filerecord"
)

func ToResponseFile(fDomain filerecord.FileRecord) File {
	var f = File{
		ID:         fDomain.ID,
		SubjectID:  fDomain.SubjectID,
		Category:   fDomain.Category,
		Name:       fDomain.Name,
		SizeBytes:  fDomain.SizeBytes,
		SizeHuman:  humanSize(fDomain.SizeBytes),
		MimeType:   fDomain.MimeType,
		Tags:       fDomain.Tags,
		Notes:      fDomain.Notes,
		ContentRef: fDomain.ContentRef,
		UploadedAt: fDomain.UploadedAt,
		IsFavorite: fDomain.IsFavorite,
		DeletedAt:  fDomain.DeletedAt,
	}
	if f.Tags == nil {
		f.Tags = []string{}
	}

	return f
}

func ToResponseFiles(fsDomain filerecord.FileRecords) Files {
	fs := make(Files, len(fsDomain))
	for idx, f := range fsDomain {
		fs[idx] = ToResponseFile(*f)
	}

	return fs
}

func ToResponseData(fsDomain filerecord.FileRecords) ResponseData {
	return ResponseData{Data: ToResponseFiles(fsDomain), Total: len(fsDomain)}
}

func ToResponseDashboard(d projection.Dashboard) Dashboard {
	return Dashboard{
		Recent:           ToResponseFiles(d.Recent),
		PendingTasks:     d.PendingTasks,
		Favorites:        d.Favorites,
		Trashed:          d.Trashed,
		ActiveFiles:      d.ActiveFiles,
		ActiveBytes:      d.ActiveBytes,
		ActiveBytesHuman: humanSize(d.ActiveBytes),
		BySubject: lo.Map(d.BySubject, func(s projection.SubjectCount, _ int) SubjectCount {
			return SubjectCount{SubjectID: s.SubjectID, Name: s.Name, Files: s.Files}
		}),
	}
}

func ToDomainPatch(req EditRequest) filerecord.Patch {
	return filerecord.Patch{
		Name:      req.Name,
		SubjectID: req.SubjectID,
		Category:  req.Category,
		Notes:     req.Notes,
		Tags:      req.Tags,
	}
}

func humanSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
