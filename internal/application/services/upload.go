package services

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"academic-hub/internal/application/ports"
	"academic-hub/internal/domain/filerecord"
	"academic-hub/internal/domain/user"
	"academic-hub/internal/domain/userconfig"
	"academic-hub/internal/infrastructure/mq"
)

const (
	maxBaseNameLen  = 100
	defaultMimeType = "application/octet-stream"
	unsortedSegment = "unsorted"
)

// reservedDeviceRe matches names Windows refuses to create when downloaded.
var reservedDeviceRe = regexp.MustCompile(`^(con|prn|aux|nul|com[1-9]|lpt[1-9])$`)

type UploadService struct {
	blob     ports.BlobStore
	repo     filerecord.Repository
	mq       ports.RabbitMQ
	logger   *zap.Logger
	mCounter *prometheus.CounterVec
	now      func() time.Time
}

func NewUploadService(
	blob ports.BlobStore,
	repo filerecord.Repository,
	mq ports.RabbitMQ,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) *UploadService {
	return &UploadService{
		blob:     blob,
		repo:     repo,
		mq:       mq,
		logger:   logger,
		mCounter: mCounter,
		now:      time.Now,
	}
}

// Upload streams the payload to the blob store and, only once the transfer
// has completed, writes the metadata record. A failed metadata write leaves
// the blob behind; it is logged and counted but not removed.
func (us *UploadService) Upload(
	ctx context.Context,
	owner user.UUID,
	req ports.UploadRequest,
	onProgress ports.ProgressFunc,
) (*filerecord.FileRecord, error) {
	p := req.Payload
	if p.Content == nil || p.Size <= 0 {
		return nil, ErrEmptyPayload
	}

	now := us.now().UTC()
	mimeType := strings.TrimSpace(p.MimeType)
	if mimeType == "" {
		mimeType = defaultMimeType
	}
	storagePath := StoragePath(owner, req.SubjectID, req.Category, p.FileName, now)

	if err := us.blob.PutResumable(ctx, storagePath, p.Content, p.Size, mimeType, onProgress); err != nil {
		us.mCounter.WithLabelValues("uploads_failed_total").Inc()
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	ref := us.blob.ContentRef(storagePath)
	if ref == "" {
		us.mCounter.WithLabelValues("uploads_failed_total").Inc()
		return nil, fmt.Errorf("%w: no content ref issued for %s", ErrUploadFailed, storagePath)
	}

	rec := &filerecord.FileRecord{
		ID:          uuid.New(),
		OwnerID:     owner,
		SubjectID:   req.SubjectID,
		Category:    req.Category,
		Name:        displayName(p.FileName),
		SizeBytes:   p.Size,
		MimeType:    mimeType,
		Tags:        filerecord.CleanTags(req.Tags),
		Notes:       "",
		ContentRef:  ref,
		StoragePath: storagePath,
		UploadedAt:  now,
		IsFavorite:  false,
		DeletedAt:   nil,
	}

	if err := us.repo.SaveFile(ctx, rec); err != nil {
		us.logger.Error("metadata write failed, blob orphaned",
			zap.String("storage_path", storagePath),
			zap.String("content_ref", ref),
			zap.Stringer("owner", owner),
			zap.Error(err),
		)
		us.mCounter.WithLabelValues("orphaned_blobs_total").Inc()
		return nil, fmt.Errorf("%w: %w", ErrMetadataWriteFailed, err)
	}

	publishFileEvent(ctx, us.mq, mq.ActionFileCreated, owner, rec.ID)
	us.mCounter.WithLabelValues("files_uploaded_total").Inc()

	return rec, nil
}

// StoragePath: "<owner>/<subject>/<category>/<unix-millis>_<ascii-name>".
// The timestamp keeps repeated uploads of the same name apart.
func StoragePath(owner user.UUID, subjectID, category, fileName string, at time.Time) string {
	return path.Join(
		owner.String(),
		pathSegment(subjectID),
		pathSegment(category),
		strconv.FormatInt(at.UnixMilli(), 10)+"_"+sanitizeFileName(fileName),
	)
}

func pathSegment(s string) string {
	if seg := userconfig.Slug(s); seg != "" {
		return seg
	}
	return unsortedSegment
}

func displayName(original string) string {
	s := path.Base(strings.ReplaceAll(strings.TrimSpace(original), "\\", "/"))
	if s == "." || s == "/" || s == "" {
		return "file"
	}
	return s
}

// sanitizeFileName reduces an uploaded name to a safe ASCII object key
// leaf: "C:\\Users\\ana\\Tarea 1.docx" -> "tarea-1.docx".
func sanitizeFileName(original string) string {
	name := displayName(original)
	if name == ".." {
		return "file"
	}

	rawExt := path.Ext(name)
	base := userconfig.Slug(strings.TrimSuffix(name, rawExt))
	ext := ""
	if e := userconfig.Slug(rawExt); e != "" {
		ext = "." + e
	}

	switch {
	case base == "":
		base = "file"
	case reservedDeviceRe.MatchString(base):
		base = "_" + base
	}

	// Slug output is ASCII, so byte length equals rune count.
	if keep := maxBaseNameLen - len(ext); len(base) > keep {
		base = strings.TrimRight(base[:max(keep, 1)], "-")
	}
	return base + ext
}
