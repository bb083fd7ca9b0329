package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Austin-TB/RxU-backend/internal/config"
	"github.com/Austin-TB/RxU-backend/internal/database"
	"github.com/Austin-TB/RxU-backend/internal/drugs"
	"github.com/Austin-TB/RxU-backend/internal/logging"
	"github.com/Austin-TB/RxU-backend/internal/s3"
	"github.com/Austin-TB/RxU-backend/internal/sentiment"
	"github.com/Austin-TB/RxU-backend/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupCatalog(cfg *config.Config) *drugs.Service {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx)
	if err != nil {
		slog.Error("Failed to open drug catalog", "error", err)
		os.Exit(1)
	}

	repo := database.NewDrugRepo(db)
	loaded, err := repo.LoadCSV(ctx, cfg.DrugDataCSV)
	if err != nil {
		slog.Error("Failed to load drug dataset", "path", cfg.DrugDataCSV, "error", err)
		os.Exit(1)
	}
	slog.Info("Drug catalog loaded", "records", loaded, "path", cfg.DrugDataCSV)

	return drugs.NewService(repo)
}

// setupRemoteTier decides the remote tier state once, at startup. Missing
// credentials disable the tier; a client that cannot be constructed marks it
// broken so requests skip straight to the fallback.
func setupRemoteTier(ctx context.Context, cfg *config.Config) sentiment.RemoteTier {
	if !cfg.HasAWSCredentials() {
		slog.Info("Remote sentiment store not configured, serving from cache and fallback only")
		return sentiment.RemoteDisabled()
	}

	client, err := s3.NewClient(ctx, s3.Options{
		Region:          cfg.AWSRegion,
		Bucket:          cfg.S3Bucket,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
	})
	if err != nil {
		slog.Error("Failed to configure remote sentiment store", "error", err)
		return sentiment.RemoteBroken()
	}

	slog.Info("Remote sentiment store configured", "bucket", cfg.S3Bucket, "region", cfg.AWSRegion)
	return sentiment.RemoteEnabled(client)
}

func setupSentiment(ctx context.Context, cfg *config.Config) *sentiment.Service {
	svc, err := sentiment.NewService(sentiment.ServiceConfig{
		CacheDir:      cfg.CacheDir,
		FallbackDir:   cfg.FallbackDir,
		Remote:        setupRemoteTier(ctx, cfg),
		KeyPrefix:     cfg.S3KeyPrefix,
		RemoteTimeout: cfg.S3RequestTimeout,
	})
	if err != nil {
		slog.Error("Failed to create sentiment service", "error", err)
		os.Exit(1)
	}
	return svc
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	ctx := context.Background()

	drugSvc := setupCatalog(cfg)
	sentimentSvc := setupSentiment(ctx, cfg)

	srv := server.NewServer(cfg, sentimentSvc, drugSvc)

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
