package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"academic-hub/internal/application/ports"
	domainUser "academic-hub/internal/domain/user"
	"academic-hub/internal/domain/userconfig"
	"academic-hub/internal/infrastructure/jwt"
	"academic-hub/internal/interface/api/rest/dto/user"
	"academic-hub/internal/interface/api/rest/middleware"
)

// UserController serves the signed-in owner's profile together with a
// summary of their workspace configuration.
type UserController struct {
	users   ports.UserService
	configs ports.ConfigService
	logger  *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	users ports.UserService,
	configs ports.ConfigService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *UserController {
	uc := &UserController{users: users, configs: configs, logger: logger}

	r.GET(RouteMe, middleware.AuthMiddleware(jwtService), uc.GetMeHandler)

	return uc
}

// GetMeHandler loads the account and its configuration concurrently. A
// configuration failure only drops the workspace block from the response.
func (uc *UserController) GetMeHandler(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}

	var (
		account *domainUser.User
		cfg     *userconfig.Config
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		account, err = uc.users.FindUserByID(ctx, owner)
		return err
	})
	g.Go(func() error {
		var err error
		if cfg, err = uc.configs.Load(ctx, owner); err != nil {
			uc.logger.Warn("config unavailable for profile", zap.Stringer("owner", owner), zap.Error(err))
			cfg = nil
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		uc.logger.Error("FindUserByID() error", zap.Stringer("owner", owner), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get a user"})
		return
	}
	if account == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user.ToMe(*account, cfg))
}
