package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodbank/internal/auth"
	"foodbank/internal/config"
	"foodbank/internal/db"
	"foodbank/internal/distribution"
	"foodbank/internal/inventory"
	"foodbank/internal/logging"
	"foodbank/internal/nutrition"
	"foodbank/internal/router"
	"foodbank/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// ───────────────────────── ENV ─────────────────────────
	config.LoadDotEnv()

	cfg, err := config.LoadOrEnv()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Logging, os.Stdout)
	slog.SetDefault(logger)

	// Validate JWT_SECRET early (fail fast)
	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("JWT_SECRET is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── DB ─────────────────────────
	pgDB, err := db.ConnectPostgres(ctx, cfg.Database.URL, logger)
	if err != nil {
		return err
	}
	defer pgDB.Close()

	if cfg.MigrateOnStart() {
		if err := db.Migrate(ctx, pgDB, logger); err != nil {
			return err
		}
	}

	// ───────────────────────── NUTRITION ─────────────────────────
	nutritionix := nutrition.NewClient(
		cfg.Nutritionix.AppID,
		cfg.Nutritionix.APIKey,
		cfg.Nutritionix.BaseURL,
		logger,
	)

	cache, err := nutrition.OpenCache(cfg.Nutritionix.CachePath)
	if err != nil {
		return err
	}
	defer cache.Close()

	lookup := nutrition.NewCachedLookup(nutritionix, cache, logger)

	// ───────────────────────── STORAGE ─────────────────────────
	var uploader distribution.Uploader
	r2Client, err := storage.NewR2Client(ctx, cfg.Storage)
	switch {
	case err == nil:
		uploader = r2Client
	case errors.Is(err, storage.ErrStorageDisabled):
		logger.Warn("R2 storage not configured, plan export disabled")
	default:
		return err
	}

	// ───────────────────────── SERVICES ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo)

	inventoryRepo := inventory.NewPostgresRepository(pgDB)
	inventoryService := inventory.NewService(inventoryRepo, lookup, logger)

	planService := distribution.NewService(inventoryService, uploader, logger)

	// ───────────────────────── HTTP ─────────────────────────
	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.NewRouter(router.Deps{
		Logger:       logger,
		CORSOrigins:  cfg.Server.CORSOrigins,
		Auth:         auth.NewHandler(authService, logger),
		Search:       nutrition.NewHandler(nutritionix),
		Inventory:    inventory.NewHandler(inventoryService),
		Distribution: distribution.NewHandler(planService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// ───────────────────────── SHUTDOWN ─────────────────────────
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
