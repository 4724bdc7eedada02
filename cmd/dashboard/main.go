package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory-dashboard/internal/config"
	"inventory-dashboard/internal/database"
	"inventory-dashboard/internal/export"
	"inventory-dashboard/internal/handler"
	"inventory-dashboard/internal/repository"
	"inventory-dashboard/internal/router"
	"inventory-dashboard/internal/service"
	"inventory-dashboard/internal/view"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting inventory dashboard")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize store connection pool
	pool, err := database.NewPool(ctx, cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer pool.Close()

	if cfg.Store.Migrate {
		if err := database.Migrate(pool, logger); err != nil {
			return fmt.Errorf("failed to migrate store: %w", err)
		}
	}

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)

	// Initialize snapshot sink with S3 and local fallback
	sink := newSnapshotSink(ctx, cfg.Export, logger)

	// Initialize services
	categoryService := service.NewCategoryService(categoryRepo, logger)
	productService := service.NewProductService(productRepo, logger)
	dashboardService := service.NewDashboardService(categoryService, productService, sink, logger)

	// Initialize HTTP handlers
	renderer, err := view.New(cfg.Display)
	if err != nil {
		return fmt.Errorf("failed to initialize view: %w", err)
	}

	handlers := router.Handlers{
		Dashboard: handler.NewDashboardHandler(dashboardService, renderer, sink != nil, logger),
		Category:  handler.NewCategoryHandler(categoryService, logger),
		Product:   handler.NewProductHandler(productService, logger),
	}

	// Initialize router
	mux := router.New(handlers, pool, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Bool("api_key_required", cfg.Auth.APIKey != "").
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newSnapshotSink returns nil when no export directory is configured, which
// turns snapshots off.
func newSnapshotSink(ctx context.Context, cfg config.ExportConfig, logger zerolog.Logger) export.Sink {
	if cfg.Dir == "" {
		logger.Info().Msg("snapshot export disabled (EXPORT_DIR is empty)")
		return nil
	}

	fileSink := export.NewFileSink(cfg.Dir, logger)
	if !cfg.S3Enabled {
		logger.Info().Str("dir", cfg.Dir).Msg("using local file system for snapshots (S3 disabled)")
		return fileSink
	}

	s3Sink, err := export.NewS3Sink(ctx, cfg.S3Bucket, cfg.S3Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 sink, falling back to local file system only")
		return fileSink
	}

	return export.NewFallbackSink(s3Sink, fileSink, cfg.S3Prefix, true, logger)
}
