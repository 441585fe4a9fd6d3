package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fixora/insights/infrastructure/service/logger"
	"github.com/fixora/insights/internal/adapter/cache"
	httpadapter "github.com/fixora/insights/internal/adapter/http"
	"github.com/fixora/insights/internal/adapter/loader"
	"github.com/fixora/insights/internal/adapter/persistence"
	"github.com/fixora/insights/internal/config"
	"github.com/fixora/insights/internal/ports"
	"github.com/fixora/insights/internal/usecase"
)

// Version and build information
var (
	Version   = "development"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	version := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *version {
		fmt.Printf("Fixora Insights\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLogger := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "fixora-insights",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLogger.Info(ctx, "Starting Fixora Insights", map[string]interface{}{
		"version":     Version,
		"environment": cfg.Server.Environment,
		"data_source": cfg.Data.Source,
	})

	source, cleanup, err := initSource(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize data source: %v", err)
	}
	defer cleanup()

	// A failed load is logged inside and leaves an empty dataset
	dashboard := usecase.NewDashboardUseCase(source, appLogger)
	_ = dashboard.Load(ctx)

	sessions := usecase.NewSessionUseCase(dashboard, cfg.Session.TTL, appLogger)
	sessions.StartJanitor(ctx, cfg.Session.CleanupInterval)

	server := httpadapter.NewServer(httpadapter.ServerConfig{
		Host:                 cfg.Server.Host,
		Port:                 cfg.Server.Port,
		ReadTimeout:          cfg.Server.ReadTimeout,
		WriteTimeout:         cfg.Server.WriteTimeout,
		IdleTimeout:          cfg.Server.IdleTimeout,
		CORSOrigins:          cfg.Security.CORSOrigins,
		CORSAllowCredentials: cfg.Security.CORSAllowCredentials,
	}, dashboard, sessions, appLogger)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			appLogger.Error(ctx, "HTTP server failed", err, nil)
			cancel()
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
	case <-ctx.Done():
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, "Error during server shutdown", err, nil)
	}
	appLogger.Info(shutdownCtx, "Server stopped", nil)
}

// initSource builds the configured request source, wrapped in the snapshot
// cache when Redis is enabled
func initSource(ctx context.Context, cfg *config.Config, log logger.Logger) (ports.RequestSource, func(), error) {
	var (
		source  ports.RequestSource
		closers []func() error
	)

	switch cfg.Data.Source {
	case config.SourcePostgres:
		db, err := persistence.OpenPostgres(ctx, cfg.GetDatabaseURL(), persistence.PoolConfig{
			MaxConnections: cfg.Database.MaxConnections,
			MaxIdleTime:    cfg.Database.MaxIdleTime,
		})
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, db.Close)
		source = persistence.NewPostgresRequestRepository(db, log)
	default:
		source = loader.NewXLSXSource(cfg.Data.Path, cfg.Data.Sheet, log)
	}

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if !cfg.Redis.Enabled {
		return source, cleanup, nil
	}

	snapshots, closeCache, err := cache.NewSnapshotCache(cache.RedisConfig{
		Enabled:   true,
		URL:       cfg.GetRedisURL(),
		KeyPrefix: cfg.Redis.KeyPrefix,
	}, log)
	if err != nil {
		// the cache is optional; serve straight from the source
		log.Warn(ctx, "Snapshot cache unavailable", map[string]interface{}{"error": err.Error()})
		return source, cleanup, nil
	}
	closers = append(closers, closeCache)

	return cache.NewCachedSource(source, snapshots, cfg.Redis.TTL, log), cleanup, nil
}
