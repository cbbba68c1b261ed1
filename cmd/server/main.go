package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/vakeel-gateway/internal/backend"
	"github.com/BerylCAtieno/vakeel-gateway/internal/config"
	"github.com/BerylCAtieno/vakeel-gateway/internal/router"
	"github.com/BerylCAtieno/vakeel-gateway/internal/services"
	"github.com/BerylCAtieno/vakeel-gateway/internal/storage"
	"github.com/BerylCAtieno/vakeel-gateway/internal/utils"
)

func main() {
	configPath := flag.String("config", "", "optional config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	// Upload archive is optional
	var archive storage.Storage
	if cfg.ArchiveUploads {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		archive, err = storage.NewS3Storage(ctx, cfg)
		cancel()
		if err != nil {
			logger.Fatal("Failed to initialize upload archive", "error", err)
		}
		logger.Info("Archiving uploads", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3BucketName)
	}

	// Initialize proxy service
	forwarder := backend.NewForwarder(cfg.BackendURL, nil, logger)
	proxyService := services.NewProxyService(forwarder, archive, logger)

	// Setup HTTP router
	handler := router.NewRouter(proxyService, cfg.MaxUploadSize, logger)

	// Analysis can take minutes, so the write timeout is generous
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 11 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "backend_url", cfg.BackendURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
