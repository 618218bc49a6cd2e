package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"adarchive/internal/config"
	"adarchive/internal/http"
	"adarchive/internal/service"
	"adarchive/internal/storage"
	"adarchive/internal/thumbs"
	"adarchive/internal/vault"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	assetRepo := storage.NewAssetRepo(db)

	// Initialize the vault directory for imported files
	vaultManager, err := vault.NewManager(cfg.VaultDir, cfg.MaxImportSize)
	if err != nil {
		log.Fatalf("Failed to initialize vault: %v", err)
	}
	slog.Info("Vault initialized", "root", vaultManager.Root())

	// Initialize the thumbnail cache and its background worker
	thumbService, err := thumbs.NewService(cfg.CacheDir, cfg.FFmpegPath, cfg.PdftoppmPath, cfg.ThumbTimeout)
	if err != nil {
		log.Fatalf("Failed to initialize thumbnail cache: %v", err)
	}
	thumbCtx, cancelThumbs := context.WithCancel(context.Background())
	thumbQueue := thumbs.NewQueue(thumbService, cfg.ThumbQueueSize)
	thumbQueue.Start(thumbCtx)
	slog.Info("Thumbnail worker started", "cache_dir", cfg.CacheDir, "queue_size", cfg.ThumbQueueSize)

	assetService := service.NewAssetService(assetRepo, vaultManager, thumbService, thumbQueue)

	// Create router with dependencies
	deps := &http.Deps{
		AssetService: assetService,
		DB:           db,
		CacheDir:     cfg.CacheDir,
	}
	router := http.NewRouter(deps)

	// Serve until interrupted, then drain the thumbnail queue
	addr := ":" + cfg.APIPort
	server := &nethttp.Server{Addr: addr, Handler: router}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-shutdown
		slog.Info("Shutting down")
		_ = server.Shutdown(context.Background())
	}()

	slog.Info("Starting API server", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
		log.Fatalf("API server failed: %v", err)
	}

	thumbQueue.Close()
	cancelThumbs()
	slog.Info("Shutdown complete")
}
