package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/cache"
	"portfolio_backend/internal/config"
	"portfolio_backend/internal/database"
	"portfolio_backend/internal/email"
	"portfolio_backend/internal/handlers"
	"portfolio_backend/internal/imageconfig"
	"portfolio_backend/internal/imagestorage"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/middleware"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/validator"
	"portfolio_backend/internal/workers"
)

type App struct {
	cfg    *config.Config
	db     *gorm.DB
	server *http.Server
	sweep  *workers.CleanupWorker
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger.Init(cfg.Server.Env)

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := database.SeedAdmin(db, cfg.Admin); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	registry := imageconfig.NewRegistry()
	images, err := imagestorage.NewService(cfg.Storage.BasePath, registry)
	if err != nil {
		return nil, fmt.Errorf("init image storage: %w", err)
	}

	c, err := cache.New(cache.Config{
		Type:     cfg.Cache.Type,
		Addr:     cfg.Cache.Addr,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	sender := email.NewSender(cfg.Email)
	validate := validator.New()

	userRepo := repositories.NewUserRepository()
	appRepo := repositories.NewApplicationRepository()
	techRepo := repositories.NewTechnologyRepository()
	msgRepo := repositories.NewMessageRepository()
	expRepo := repositories.NewExperienceRepository()

	appService := services.NewApplicationService(appRepo, techRepo, userRepo, images, c)
	techService := services.NewTechnologyService(techRepo, userRepo, images, c)
	msgService := services.NewMessageService(msgRepo, sender, c)
	userService := services.NewUserService(userRepo, images, c)
	expService := services.NewExperienceService(expRepo, userRepo, images, registry)
	dashService := services.NewDashboardService(appRepo, techRepo, msgRepo, c)
	authService := services.NewAuthService(userRepo, tokens)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.MaxMultipartMemory = 32 << 20

	api := router.Group("/api/v1")
	public := api.Group("")
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(tokens))

	handlers.NewAuthHandler(db, authService, validate).RegisterRoutes(public)
	handlers.NewApplicationHandler(db, appService, validate).RegisterRoutes(public, admin)
	handlers.NewTechnologyHandler(db, techService, validate).RegisterRoutes(public, admin)
	handlers.NewMessageHandler(db, msgService, validate).RegisterRoutes(public, admin)
	handlers.NewUserHandler(db, userService, validate).RegisterRoutes(public, admin)
	handlers.NewExperienceHandler(db, expService, userService, validate).RegisterRoutes(public, admin)
	handlers.NewDashboardHandler(db, dashService).RegisterRoutes(admin)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &App{
		cfg: cfg,
		db:  db,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		sweep: workers.NewCleanupWorker(db, cfg.Storage.BasePath, 6*time.Hour),
	}, nil
}

// Run serves until ctx is canceled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	a.sweep.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", a.server.Addr, "env", a.cfg.Server.Env)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return a.server.Shutdown(shutdownCtx)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
