package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adudhe01/runroom/internal/auth"
	"github.com/adudhe01/runroom/internal/bootstrap"
	"github.com/adudhe01/runroom/internal/catalog"
	"github.com/adudhe01/runroom/internal/config"
	"github.com/adudhe01/runroom/internal/database"
	"github.com/adudhe01/runroom/internal/database/postgres"
	"github.com/adudhe01/runroom/internal/ledger"
	"github.com/adudhe01/runroom/internal/server"
	"github.com/adudhe01/runroom/internal/snapshot"
	"github.com/adudhe01/runroom/internal/strava"
	"github.com/adudhe01/runroom/internal/upload"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}
	for _, warning := range warnings {
		slog.Warn(warning)
	}

	connString := cfg.GetDBConnString()

	if err := database.Migrate(connString); err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}

	pool, err := database.NewPool(connString,
		database.DefaultMaxConnections,
		database.DefaultMaxIdleTime,
		database.DefaultMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)

	catalogService := catalog.NewService(itemRepo, userRepo)
	snapshotBuilder := snapshot.NewBuilder(catalogService)
	ledgerService := ledger.NewService(userRepo, catalogService, snapshotBuilder)

	stravaClient := strava.NewClient(cfg.StravaClientID, cfg.StravaClientSecret, cfg.StravaRedirectURI)
	syncService := strava.NewSyncService(userRepo, stravaClient)

	tokens := auth.NewTokenManager(cfg.JWTSecret)
	avatars := upload.NewAvatarStore(cfg.UploadDir)

	// Provision the catalog eagerly so the first shop request is not the
	// one paying for it.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := catalogService.EnsureBaseCatalog(ctx); err != nil {
		slog.Warn("Initial catalog provisioning failed, will retry on demand", "error", err)
	}
	cancel()

	srv := server.NewServer(cfg.Port, server.Deps{
		DBPool:      pool,
		Users:       userRepo,
		Catalog:     catalogService,
		Ledger:      ledgerService,
		Snapshots:   snapshotBuilder,
		StravaClient: stravaClient,
		StravaSync:  syncService,
		Tokens:      tokens,
		Avatars:     avatars,
		FrontendURL: cfg.FrontendURL,
		UploadDir:   cfg.UploadDir,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server stopped unexpectedly", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Server forced shutdown", "error", err)
	}
	slog.Info("Server stopped")
}
