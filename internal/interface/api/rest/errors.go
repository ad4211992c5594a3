package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"academic-hub/internal/application/projection"
	"academic-hub/internal/application/services"
	"academic-hub/internal/domain/filerecord"
	"academic-hub/internal/interface/api/rest/middleware"
)

// statusFor maps service errors to HTTP codes. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, filerecord.ErrNotFound),
		errors.Is(err, services.ErrSubjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmptyPayload),
		errors.Is(err, services.ErrInvalidConfig),
		errors.Is(err, projection.ErrInvalidScope):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotTrashed),
		errors.Is(err, services.ErrSubjectExists):
		return http.StatusConflict
	case errors.Is(err, services.ErrUploadFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status. Only server side failures are logged.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		logger.Error(op+" error", zap.Error(err))
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

func ownerOrAbort(c *gin.Context) (uuid.UUID, bool) {
	owner, ok := middleware.OwnerID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return uuid.Nil, false
	}
	return owner, true
}
