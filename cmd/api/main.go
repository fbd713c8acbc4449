// @title        Messaging System API
// @version      1.0
// @description  Multi-user messaging backend: accounts, profile pictures, and direct messages.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pingado/messaging-system/internal/api"
	"github.com/pingado/messaging-system/internal/core/ports"
	"github.com/pingado/messaging-system/internal/infrastructure/db/postgres"
	"github.com/pingado/messaging-system/internal/infrastructure/db/redis"
	"github.com/pingado/messaging-system/internal/infrastructure/storage"
	"github.com/pingado/messaging-system/internal/pkg/config"
	"github.com/pingado/messaging-system/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// The JWT secret is deliberately absent from this event.
	log.Info().
		Str("env", cfg.Env).
		Dur("jwt_ttl", cfg.JWT.TTL).
		Dur("jwt_refresh_ttl", cfg.JWT.RefreshTTL).
		Str("jwt_audience", cfg.JWT.Audience).
		Str("jwt_issuer", cfg.JWT.Issuer).
		Msg("configuration loaded")

	pool, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	pictures, picturesDir, err := newPictureStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("picture store initialisation failed")
	}

	e := api.NewRouter(api.RouterDeps{
		Pool:        pool,
		Redis:       rdb,
		Pictures:    pictures,
		PicturesDir: picturesDir,
		Config:      cfg,
		Log:         log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced shutdown")
	}
	log.Info().Msg("server stopped")
}

// newPictureStore builds the configured picture backend. The returned dir is
// non-empty only for the local driver, where it is served at /pictures.
func newPictureStore(ctx context.Context, cfg config.StorageConfig) (ports.FileStore, string, error) {
	if cfg.Driver == "s3" {
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
			User:     cfg.S3User,
			Password: cfg.S3Password,
		})
		return store, "", err
	}

	store, err := storage.NewLocalStore(cfg.PicturesDir)
	if err != nil {
		return nil, "", err
	}
	return store, store.Dir(), nil
}
