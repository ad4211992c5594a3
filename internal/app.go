package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"academic-hub/config"
	"academic-hub/internal/application/ports"
	"academic-hub/internal/application/services"
	domainFile "academic-hub/internal/domain/filerecord"
	"academic-hub/internal/infrastructure/blob"
	"academic-hub/internal/infrastructure/db/postgres"
	"academic-hub/internal/infrastructure/db/postgres/filerecord"
	"academic-hub/internal/infrastructure/db/postgres/user"
	"academic-hub/internal/infrastructure/db/postgres/userconfig"
	"academic-hub/internal/infrastructure/feed"
	"academic-hub/internal/infrastructure/jwt"
	"academic-hub/internal/infrastructure/metrics"
	"academic-hub/internal/infrastructure/mq"
	"academic-hub/internal/interface/api/rest"
	"academic-hub/internal/interface/api/rest/middleware"
	"academic-hub/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	blob       ports.BlobStore
	fileRepo   domainFile.Repository
	feed       *feed.Hub
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	// config; a missing .env is fine when the environment is already set
	if err = godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Fatal("error loading .env file", zap.Error(err))
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.App.JWTSecret == "" {
		return nil, errors.New("SERVICE_JWT_SECRET is required")
	}

	// metrics
	mCounter := metrics.NewCounter(prometheus.DefaultRegisterer)

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.App.CORSOrigins)))
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := newHTTPServer(cfg.App, r)

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	migrateDsn, err := cfg.MigrateDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	if err = postgres.Migrate(logger, migrateDsn); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// blob store
	blobStore, err := blob.New(ctx, logger, cfg.S3, cfg.S3PublicBaseURL())
	if err != nil {
		logger.Fatal("failed to connect to blob store", zap.Error(err))
	}

	// live feed
	fileRepo := filerecord.NewRepository(dbPool)
	hub := feed.NewHub(fileRepo, logger, cfg.Feed.CacheSize, cfg.Feed.CacheTTL)

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		logger.Fatal("failed init rabbitMQ", zap.Error(err))
	}
	// rmqConsumer turns file events into feed refreshes
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger, hub)
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = rmqConsumer.Init(); err != nil {
		logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}

	return &App{
		logger:     logger,
		cfg:        cfg,
		db:         dbPool,
		blob:       blobStore,
		fileRepo:   fileRepo,
		feed:       hub,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		mq:         rbMQ,
		mqConsumer: rmqConsumer,
	}, nil
}

func newHTTPServer(cfg config.APP, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// serveUntilDone ties every request context to ctx, so open event streams
// end before Shutdown waits on their connections.
func serveUntilDone(ctx context.Context, srv *http.Server, serve func() error) error {
	srv.BaseContext = func(net.Listener) context.Context { return ctx }
	if err := serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	c.AllowMethods = append(c.AllowMethods, http.MethodPatch)
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	return c
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	// errgroup ties the http server and both MQ workers to one context
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := serveUntilDone(ctx, a.httpSrv, a.httpSrv.ListenAndServe); err != nil {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.mq.PublisherWorker(ctx)
		return nil
	})

	g.Go(func() error {
		a.mqConsumer.DeliveryWorker(ctx)
		return nil
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// repos
	userRepo := user.NewRepository(a.db)
	configRepo := userconfig.NewRepository(a.db)

	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	authService := services.NewAuthService(jwtService)
	userService := services.NewUserService(userRepo, a.mCounter)
	configService := services.NewConfigService(configRepo, a.logger, a.mCounter)
	uploadService := services.NewUploadService(a.blob, a.fileRepo, a.mq, a.logger, a.mCounter)
	fileService := services.NewFileService(a.fileRepo, a.blob, configService, a.mq, a.logger, a.mCounter)

	// controllers
	rest.NewAuthController(a.router, a.logger, userService, authService)
	rest.NewUserController(a.router, userService, configService, a.logger, jwtService)
	rest.NewConfigController(a.router, configService, a.logger, jwtService)
	rest.NewFileController(a.router, uploadService, fileService, a.feed, a.logger, jwtService, a.cfg.App.MaxUploadBytes)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
