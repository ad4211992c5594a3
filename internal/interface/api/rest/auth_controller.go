package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"academic-hub/internal/application/ports"
	"academic-hub/internal/application/services"
	"academic-hub/internal/domain/user"
	"academic-hub/internal/interface/api/rest/dto/auth"
	"academic-hub/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	userService ports.UserService
	authService ports.Auth
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	userService ports.UserService,
	authService ports.Auth,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		userService: userService,
		authService: authService,
	}

	r.POST(RouteLogin, ac.LoginHandler)
	r.POST(RouteRegister, ac.RegisterHandler)

	return ac
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateLogin(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, err := ac.userService.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		ac.logger.Error("FindByEmail() error", zap.Error(err))
		return
	}

	// unknown email and wrong password look the same to the caller
	token, err := ac.authService.GenerateToken(u, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		ac.logger.Error("GenerateToken() error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue a token"})
		return
	}

	c.JSON(http.StatusOK, auth.NewTokenResponse(token))
}

func (ac *AuthController) RegisterHandler(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateRegister(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	hash, err := ac.authService.HashPassword(req.Password)
	if err != nil {
		ac.logger.Error("HashPassword() error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create a user"})
		return
	}

	u, err := ac.userService.Register(c.Request.Context(), req.Email, hash)
	if err != nil {
		if errors.Is(err, user.ErrEmailAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		ac.logger.Error("Register() error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create a user"})
		return
	}

	token, err := ac.authService.GenerateToken(u, req.Password)
	if err != nil {
		ac.logger.Error("GenerateToken() error", zap.Error(err), zap.Stringer("user_uuid", u.UUID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue a token"})
		return
	}

	c.JSON(http.StatusCreated, auth.NewTokenResponse(token))
}
