package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/meetscribe/docs"
	"github.com/johnquangdev/meetscribe/internal/adapter/handler"
	"github.com/johnquangdev/meetscribe/internal/adapter/repository"
	"github.com/johnquangdev/meetscribe/internal/domain/repositories"
	"github.com/johnquangdev/meetscribe/internal/infrastructure/cache"
	"github.com/johnquangdev/meetscribe/internal/infrastructure/database"
	"github.com/johnquangdev/meetscribe/internal/infrastructure/storage"
	"github.com/johnquangdev/meetscribe/internal/usecase/summary"
	"github.com/johnquangdev/meetscribe/internal/usecase/workflow"
	pkgai "github.com/johnquangdev/meetscribe/pkg/ai"
	"github.com/johnquangdev/meetscribe/pkg/config"
	pkglogger "github.com/johnquangdev/meetscribe/pkg/logger"
	"github.com/johnquangdev/meetscribe/pkg/mailer"
	pkgvalidator "github.com/johnquangdev/meetscribe/pkg/validator"
)

// @title           MeetScribe API
// @version         1.0
// @description     Upload meeting transcripts, generate AI summaries, edit them and share by email.

// @BasePath  /api

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := pkglogger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), time.Minute)
	defer cancelStartup()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("http.request",
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	logger.Info("🔧 Initializing dependencies...", zap.String("store_backend", cfg.Store.Backend))

	checks := map[string]handler.HealthCheck{}

	summaryRepo, closeStore, err := newSummaryRepository(startupCtx, cfg, logger, checks)
	if err != nil {
		logger.Fatal("Failed to initialize summary store", zap.Error(err))
	}
	defer closeStore()

	var archive summary.Archive
	if cfg.Storage.Enabled {
		minioClient, err := storage.NewMinIOClient(startupCtx, &cfg.Storage, logger)
		if err != nil {
			logger.Fatal("Failed to initialize transcript archive", zap.Error(err))
		}
		archive = minioClient
		checks["storage"] = minioClient.Ping
	}

	textGenerator, err := pkgai.NewTextGenerator(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize AI provider", zap.Error(err))
	}
	logger.Info("🤖 AI provider ready", zap.String("provider", cfg.AI.Provider))

	sender := mailer.NewSMTPSender(&cfg.SMTP)
	dispatcher := summary.NewDispatcher(sender, cfg.SMTP.BccRecipients, logger)

	summaryService := summary.NewService(
		summaryRepo,
		summary.NewGenerator(textGenerator, logger),
		dispatcher,
		archive,
		logger,
	)

	sessionStore := workflow.NewSessionStore(cfg.Session.TTL)
	controller := workflow.NewController(summaryService, logger)

	router := handler.NewRouter(
		cfg,
		handler.NewSummaryHandler(summaryService, logger),
		handler.NewSessionHandler(sessionStore, controller, logger),
		checks,
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment))

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("✅ Server stopped gracefully")
}

// newSummaryRepository builds the store selected by STORE_BACKEND and
// registers its health check.
func newSummaryRepository(
	ctx context.Context,
	cfg *config.Config,
	logger *zap.Logger,
	checks map[string]handler.HealthCheck,
) (repositories.SummaryRepository, func(), error) {
	switch cfg.Store.Backend {
	case "postgres":
		db, err := database.NewPostgresDB(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}

		if cfg.Database.AutoMigrate {
			if cfg.IsProduction() {
				return nil, nil, fmt.Errorf("DB_AUTO_MIGRATE is enabled in production; run cmd/migrate instead")
			}
			if _, err := database.Migrate(db, database.MigrationsDir, logger); err != nil {
				return nil, nil, err
			}
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		checks["postgres"] = sqlDB.PingContext

		closeFn := func() {
			if err := database.CloseDB(db); err != nil {
				logger.Warn("failed to close database", zap.Error(err))
			}
		}
		return repository.NewSummaryRepository(db), closeFn, nil

	case "redis":
		client, err := cache.NewRedisClient(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }

		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.Warn("failed to close redis", zap.Error(err))
			}
		}
		return repository.NewRedisSummaryRepository(client, cfg.Redis.TTL), closeFn, nil

	default:
		logger.Warn("using in-memory summary store; records are lost on restart")
		return repository.NewMemorySummaryRepository(), func() {}, nil
	}
}
