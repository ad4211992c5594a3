package rest

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"academic-hub/internal/application/ports"
	"academic-hub/internal/application/projection"
	"academic-hub/internal/application/services"
	domainFile "academic-hub/internal/domain/filerecord"
	"academic-hub/internal/infrastructure/jwt"
	"academic-hub/internal/interface/api/rest/dto/filerecord"
	"academic-hub/internal/interface/api/rest/middleware"
	"academic-hub/internal/interface/api/rest/validator"
)

const (
	// 100MB
	defaultMaxUpload = int64(100 << 20)

	streamHeartbeat = 25 * time.Second
)

type lifecycleFunc func(ctx context.Context, owner uuid.UUID, id domainFile.ID) (*domainFile.FileRecord, error)

type FileController struct {
	uploadService ports.UploadService
	fileService   ports.FileService
	feed          ports.ChangeFeed
	logger        *zap.Logger
	maxUpload     int64
}

func NewFileController(
	r *gin.Engine,
	uploadService ports.UploadService,
	fileService ports.FileService,
	feed ports.ChangeFeed,
	logger *zap.Logger,
	jwtService *jwt.Service,
	maxUpload int64,
) *FileController {
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	fc := &FileController{
		uploadService: uploadService,
		fileService:   fileService,
		feed:          feed,
		logger:        logger,
		maxUpload:     maxUpload,
	}

	g := r.Group("", middleware.AuthMiddleware(jwtService))
	g.GET(RouteFiles, fc.ListFilesHandler)
	g.GET(RouteFilesStream, fc.StreamFilesHandler)
	g.GET(RouteFilesDash, fc.DashboardHandler)
	g.POST(RouteFiles, fc.UploadFileHandler)
	g.PATCH(RouteFile, fc.EditFileHandler)
	g.POST(RouteFileFavorite, fc.ToggleFavoriteHandler)
	g.POST(RouteFileTrash, fc.TrashFileHandler)
	g.POST(RouteFileRestore, fc.RestoreFileHandler)
	g.DELETE(RouteFile, fc.DeleteFileHandler)
	g.DELETE(RouteTrash, fc.EmptyTrashHandler)

	return fc
}

func (fc *FileController) ListFilesHandler(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}
	scope, query, ok := parseView(c)
	if !ok {
		return
	}

	files, err := fc.fileService.ListFiles(c.Request.Context(), owner, scope, query)
	if err != nil {
		respondError(c, fc.logger, "ListFiles()", err)
		return
	}

	c.JSON(http.StatusOK, filerecord.ToResponseData(files))
}

// StreamFilesHandler pushes the projected list as server-sent events: one
// "files" event on connect and one after every change. The subscription ends
// with the request.
func (fc *FileController) StreamFilesHandler(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}
	scope, query, ok := parseView(c)
	if !ok {
		return
	}

	snapshots, err := fc.feed.Subscribe(c.Request.Context(), owner)
	if err != nil {
		respondError(c, fc.logger, "Subscribe()", err)
		return
	}

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case snap, open := <-snapshots:
			if !open {
				return false
			}
			c.SSEvent("files", filerecord.ToResponseData(projection.Project(snap, scope, query)))
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		}
	})
}

func (fc *FileController) DashboardHandler(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}

	d, err := fc.fileService.Dashboard(c.Request.Context(), owner)
	if err != nil {
		respondError(c, fc.logger, "Dashboard()", err)
		return
	}

	c.JSON(http.StatusOK, filerecord.ToResponseDashboard(d))
}

func (fc *FileController) UploadFileHandler(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, fc.maxUpload+(1<<20))

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrEmptyPayload.Error()})
		return
	}
	if fh.Size > fc.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	subjectID := c.PostForm("subject_id")
	category := c.PostForm("category")
	tags := validator.ParseTags(c.PostForm("tags"))
	if errs := validator.ValidateUpload(subjectID, category, tags); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is unreadable"})
		return
	}
	defer f.Close()

	req := ports.UploadRequest{
		Payload: ports.Payload{
			FileName: fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Size:     fh.Size,
			Content:  f,
		},
		SubjectID: subjectID,
		Category:  category,
		Tags:      tags,
	}

	rec, err := fc.uploadService.Upload(c.Request.Context(), owner, req, fc.progressLogger(fh.Filename))
	if err != nil {
		respondError(c, fc.logger, "Upload()", err)
		return
	}

	c.JSON(http.StatusCreated, filerecord.ToResponseFile(*rec))
}

func (fc *FileController) EditFileHandler(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}
	id, ok := fileIDOrAbort(c)
	if !ok {
		return
	}

	var req filerecord.EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateEdit(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	rec, err := fc.fileService.Edit(c.Request.Context(), owner, id, filerecord.ToDomainPatch(req))
	if err != nil {
		respondError(c, fc.logger, "Edit()", err)
		return
	}

	c.JSON(http.StatusOK, filerecord.ToResponseFile(*rec))
}

func (fc *FileController) ToggleFavoriteHandler(c *gin.Context) {
	fc.lifecycle(c, "ToggleFavorite()", fc.fileService.ToggleFavorite)
}

func (fc *FileController) TrashFileHandler(c *gin.Context) {
	fc.lifecycle(c, "SoftDelete()", fc.fileService.SoftDelete)
}

func (fc *FileController) RestoreFileHandler(c *gin.Context) {
	fc.lifecycle(c, "Restore()", fc.fileService.Restore)
}

func (fc *FileController) DeleteFileHandler(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}
	id, ok := fileIDOrAbort(c)
	if !ok {
		return
	}
	force, err := validator.ParseForce(c.Query("force"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err = fc.fileService.PermanentDelete(c.Request.Context(), owner, id, force); err != nil {
		respondError(c, fc.logger, "PermanentDelete()", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (fc *FileController) EmptyTrashHandler(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}

	n, err := fc.fileService.EmptyTrash(c.Request.Context(), owner)
	if err != nil {
		respondError(c, fc.logger, "EmptyTrash()", err)
		return
	}

	c.JSON(http.StatusOK, filerecord.EmptyTrashResponse{Removed: n})
}

func (fc *FileController) lifecycle(c *gin.Context, op string, fn lifecycleFunc) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}
	id, ok := fileIDOrAbort(c)
	if !ok {
		return
	}

	rec, err := fn(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, fc.logger, op, err)
		return
	}

	c.JSON(http.StatusOK, filerecord.ToResponseFile(*rec))
}

// progressLogger reports upload progress at debug level in quarter steps.
func (fc *FileController) progressLogger(name string) ports.ProgressFunc {
	next := 25.0
	return func(percent float64) {
		if percent < next {
			return
		}
		fc.logger.Debug("upload progress", zap.String("file", name), zap.Float64("percent", percent))
		for next <= percent {
			next += 25
		}
	}
}

func parseView(c *gin.Context) (projection.Scope, string, bool) {
	scope, err := projection.ParseScope(c.Query("scope"), c.Query("subject"), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return projection.Scope{}, "", false
	}
	query := c.Query("q")
	if err = validator.ValidateQuery(query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return projection.Scope{}, "", false
	}
	return scope, query, true
}

func fileIDOrAbort(c *gin.Context) (uuid.UUID, bool) {
	ok, id := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a valid UUID"},
		)
		return uuid.Nil, false
	}
	return id, true
}
