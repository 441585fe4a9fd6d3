package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fixora/insights/infrastructure/service/logger"
	"github.com/fixora/insights/internal/adapter/loader"
	"github.com/fixora/insights/internal/adapter/persistence"
	"github.com/fixora/insights/internal/config"
)

// importer loads a workbook through the normalising loader and replaces the
// service_requests table with its rows
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var (
		path  = flag.String("file", cfg.Data.Path, "workbook to import")
		sheet = flag.String("sheet", cfg.Data.Sheet, "sheet name (default: first sheet)")
	)
	flag.Parse()

	appLogger := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "fixora-insights-import",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, err := loader.NewXLSXSource(*path, *sheet, appLogger).Load(ctx)
	if err != nil {
		log.Fatalf("Failed to read workbook: %v", err)
	}

	db, err := persistence.OpenPostgres(ctx, cfg.GetDatabaseURL(), persistence.PoolConfig{
		MaxConnections: cfg.Database.MaxConnections,
		MaxIdleTime:    cfg.Database.MaxIdleTime,
	})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repo := persistence.NewPostgresRequestRepository(db, appLogger)
	if err := repo.SaveAll(ctx, records); err != nil {
		log.Fatalf("Failed to import requests: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to verify import: %v", err)
	}
	fmt.Printf("Imported %d requests from %s\n", count, *path)
}
