package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meetscribe/internal/infrastructure/database"
	"github.com/johnquangdev/meetscribe/pkg/config"
	pkglogger "github.com/johnquangdev/meetscribe/pkg/logger"
)

func main() {
	dir := flag.String("dir", database.MigrationsDir, "directory holding sql-migrate files")
	flag.Parse()

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

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.NewPostgresDB(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	n, err := database.Migrate(db, *dir, logger)
	if err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	logger.Info("✅ Migrations complete", zap.Int("applied", n))
}
