package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"academic-hub/internal/application/ports"
	"academic-hub/internal/infrastructure/jwt"
	"academic-hub/internal/interface/api/rest/dto/userconfig"
	"academic-hub/internal/interface/api/rest/middleware"
)

type ConfigController struct {
	configService ports.ConfigService
	logger        *zap.Logger
}

func NewConfigController(
	r *gin.Engine,
	configService ports.ConfigService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *ConfigController {
	cc := &ConfigController{
		configService: configService,
		logger:        logger,
	}

	g := r.Group("", middleware.AuthMiddleware(jwtService))
	g.GET(RouteConfig, cc.GetConfigHandler)
	g.PUT(RouteConfig, cc.SaveConfigHandler)
	g.POST(RouteConfigSubjects, cc.AddSubjectHandler)
	g.DELETE(RouteConfigSubject, cc.RemoveSubjectHandler)

	return cc
}

func (cc *ConfigController) GetConfigHandler(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}

	cfg, err := cc.configService.Load(c.Request.Context(), owner)
	if err != nil {
		respondError(c, cc.logger, "Load()", err)
		return
	}

	c.JSON(http.StatusOK, userconfig.ToResponseConfig(*cfg))
}

func (cc *ConfigController) SaveConfigHandler(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}

	var req userconfig.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	current, err := cc.configService.Load(c.Request.Context(), owner)
	if err != nil {
		respondError(c, cc.logger, "Load()", err)
		return
	}

	cfg, err := cc.configService.Save(c.Request.Context(), owner, userconfig.MergeInto(*current, req))
	if err != nil {
		respondError(c, cc.logger, "Save()", err)
		return
	}

	c.JSON(http.StatusOK, userconfig.ToResponseConfig(*cfg))
}

func (cc *ConfigController) AddSubjectHandler(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}

	var req userconfig.SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	cfg, err := cc.configService.AddSubject(c.Request.Context(), owner, req.Name, req.IconKey)
	if err != nil {
		respondError(c, cc.logger, "AddSubject()", err)
		return
	}

	c.JSON(http.StatusCreated, userconfig.ToResponseConfig(*cfg))
}

func (cc *ConfigController) RemoveSubjectHandler(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}

	cfg, err := cc.configService.RemoveSubject(c.Request.Context(), owner, c.Param("subject_id"))
	if err != nil {
		respondError(c, cc.logger, "RemoveSubject()", err)
		return
	}

	c.JSON(http.StatusOK, userconfig.ToResponseConfig(*cfg))
}
