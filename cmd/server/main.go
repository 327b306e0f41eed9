package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/SaniTheWay/TaskManagmentSystem/internal/config"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/constants"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/database"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/handlers"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/logger"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/middleware"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/repository"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logr, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logr.Sync() }()

	if err := run(cfg, logr); err != nil {
		logr.Errorw("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.SugaredLogger) error {
	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg, log)
	if err != nil {
		return err
	}

	// Run migrations
	if err := database.Migrate(db, log); err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize AI service
	var drafter services.TaskDrafter
	if cfg.OpenAIAPIKey != "" {
		drafter = services.NewAIService(cfg.OpenAIAPIKey)
	}

	authService := services.NewAuthService(userRepo, log)
	teamService := services.NewTeamService(teamRepo, userRepo, log)
	taskService := services.NewTaskService(taskRepo, userRepo, teamRepo, drafter, log)

	if cfg.AdminUsername != "" {
		if _, err := authService.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return err
		}
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		return err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(gzip.Gzip(
		gzip.DefaultCompression,
		// Attachments are served as stored
		gzip.WithExcludedPathsRegexs([]string{"^/api/attachments/"}),
	))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", constants.HeaderRequestID},
			ExposeHeaders:    []string{constants.HeaderRequestID},
			AllowCredentials: true,
		}))
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	limiter := middleware.NewIPRateLimiter(cfg.LoginRatePerMinute, cfg.LoginBurst)
	handlers.NewRoutes(authService, teamService, taskService, limiter).Register(r)

	return serve(cfg, log, r)
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store

	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		s, err := redisStore.NewStore(
			10,              // Redis pool size
			"tcp",           // network type
			cfg.RedisAddr(), // Redis address from config
			cfg.RedisPassword,
			[]byte(cfg.SessionSecret), // authentication key
		)
		if err != nil {
			return nil, err
		}
		store = s
	case config.SessionStoreCookie:
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	// Configure session options based on environment
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(), // true in production (HTTPS), false in development
		SameSite: http.SameSiteLaxMode,
	})

	return store, nil
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains in-flight
// requests for at most cfg.ShutdownTimeout.
func serve(cfg *config.Config, log *zap.SugaredLogger, handler http.Handler) error {
	srv := &http.Server{
		Addr:    cfg.ServerAddr(),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Infow("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}
