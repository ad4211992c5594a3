package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"academic-hub/internal/application/ports"
	"academic-hub/internal/application/projection"
	"academic-hub/internal/domain/filerecord"
	"academic-hub/internal/domain/user"
	"academic-hub/internal/infrastructure/mq"
)

const blobDeleteAttempts = 3

type FileService struct {
	repo          filerecord.Repository
	blob          ports.BlobStore
	configService ports.ConfigService
	mq            ports.RabbitMQ
	logger        *zap.Logger
	mCounter      *prometheus.CounterVec
	now           func() time.Time
	retryDelay    time.Duration
}

func NewFileService(
	repo filerecord.Repository,
	blob ports.BlobStore,
	configService ports.ConfigService,
	mq ports.RabbitMQ,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) *FileService {
	return &FileService{
		repo:          repo,
		blob:          blob,
		configService: configService,
		mq:            mq,
		logger:        logger,
		mCounter:      mCounter,
		now:           time.Now,
		retryDelay:    200 * time.Millisecond,
	}
}

func (fs *FileService) ListFiles(
	ctx context.Context,
	owner user.UUID,
	scope projection.Scope,
	query string,
) (filerecord.FileRecords, error) {
	records, err := fs.repo.FetchFiles(ctx, owner)
	if err != nil {
		return nil, err
	}

	return projection.Project(records, scope, query), nil
}

func (fs *FileService) Dashboard(ctx context.Context, owner user.UUID) (projection.Dashboard, error) {
	records, err := fs.repo.FetchFiles(ctx, owner)
	if err != nil {
		return projection.Dashboard{}, err
	}
	cfg, err := fs.configService.Load(ctx, owner)
	if err != nil {
		return projection.Dashboard{}, err
	}

	return projection.Summarize(records, cfg.Subjects, projection.DefaultRecentLimit), nil
}

func (fs *FileService) ToggleFavorite(ctx context.Context, owner user.UUID, id filerecord.ID) (*filerecord.FileRecord, error) {
	return fs.mutate(ctx, owner, id, mq.ActionFileUpdated, func(f *filerecord.FileRecord) bool {
		f.ToggleFavorite()
		return true
	})
}

func (fs *FileService) Edit(
	ctx context.Context,
	owner user.UUID,
	id filerecord.ID,
	patch filerecord.Patch,
) (*filerecord.FileRecord, error) {
	return fs.mutate(ctx, owner, id, mq.ActionFileUpdated, func(f *filerecord.FileRecord) bool {
		if patch.IsEmpty() {
			return false
		}
		f.Apply(patch)
		return true
	})
}

// SoftDelete leaves the blob untouched. Trashing a trashed record changes nothing.
func (fs *FileService) SoftDelete(ctx context.Context, owner user.UUID, id filerecord.ID) (*filerecord.FileRecord, error) {
	return fs.mutate(ctx, owner, id, mq.ActionFileTrashed, func(f *filerecord.FileRecord) bool {
		return f.Trash(fs.now().UTC())
	})
}

func (fs *FileService) Restore(ctx context.Context, owner user.UUID, id filerecord.ID) (*filerecord.FileRecord, error) {
	return fs.mutate(ctx, owner, id, mq.ActionFileRestored, func(f *filerecord.FileRecord) bool {
		return f.Restore()
	})
}

// PermanentDelete removes the metadata record, then tries to remove the blob.
// Active records are only removed with force. A failing blob removal is
// logged and does not fail the call.
func (fs *FileService) PermanentDelete(ctx context.Context, owner user.UUID, id filerecord.ID, force bool) error {
	rec, err := fs.repo.FetchFile(ctx, owner, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return filerecord.ErrNotFound
	}
	if !rec.IsTrashed() && !force {
		return ErrNotTrashed
	}

	return fs.remove(ctx, owner, rec)
}

// EmptyTrash permanently deletes every trashed record of the owner.
func (fs *FileService) EmptyTrash(ctx context.Context, owner user.UUID) (int, error) {
	records, err := fs.repo.FetchFiles(ctx, owner)
	if err != nil {
		return 0, err
	}

	var (
		removed int
		errs    []error
	)
	for _, rec := range projection.Project(records, projection.Trash(), "") {
		if err = fs.remove(ctx, owner, rec); err != nil {
			if errors.Is(err, filerecord.ErrNotFound) {
				continue
			}
			errs = append(errs, err)
			continue
		}
		removed++
	}

	return removed, errors.Join(errs...)
}

func (fs *FileService) remove(ctx context.Context, owner user.UUID, rec *filerecord.FileRecord) error {
	deleted, err := fs.repo.DeleteFile(ctx, owner, rec.ID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMetadataWriteFailed, err)
	}
	if !deleted {
		return filerecord.ErrNotFound
	}

	fs.deleteBlob(ctx, rec)

	publishFileEvent(ctx, fs.mq, mq.ActionFileDeleted, owner, rec.ID)
	fs.mCounter.WithLabelValues("file_deleted_total").Inc()

	return nil
}

func (fs *FileService) deleteBlob(ctx context.Context, rec *filerecord.FileRecord) {
	if rec.ContentRef == "" {
		return
	}
	// the metadata is already gone, a cancelled request must not skip the cleanup
	ctx = context.WithoutCancel(ctx)

	err := retry.Do(
		func() error { return fs.blob.Delete(ctx, rec.ContentRef) },
		retry.Attempts(blobDeleteAttempts),
		retry.Delay(fs.retryDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		fs.logger.Warn("blob left behind after permanent delete",
			zap.Stringer("file_id", rec.ID),
			zap.String("content_ref", rec.ContentRef),
			zap.Error(fmt.Errorf("%w: %w", ErrBlobDeleteFailed, err)),
		)
		fs.mCounter.WithLabelValues("blob_delete_failed_total").Inc()
	}
}

// mutate applies change to the stored record and writes it back when change
// reports a difference. Concurrent writers are not detected: the last save wins.
func (fs *FileService) mutate(
	ctx context.Context,
	owner user.UUID,
	id filerecord.ID,
	action string,
	change func(f *filerecord.FileRecord) bool,
) (*filerecord.FileRecord, error) {
	rec, err := fs.repo.FetchFile(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, filerecord.ErrNotFound
	}

	if !change(rec) {
		return rec, nil
	}

	if err = fs.repo.SaveFile(ctx, rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMetadataWriteFailed, err)
	}

	publishFileEvent(ctx, fs.mq, action, owner, rec.ID)
	fs.mCounter.WithLabelValues(strings.ReplaceAll(action, ".", "_") + "_total").Inc()

	return rec, nil
}
