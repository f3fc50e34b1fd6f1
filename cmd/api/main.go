package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"streamfront/internal/api"
	"streamfront/internal/config"
	"streamfront/internal/db"
	"streamfront/internal/discord"
	"streamfront/internal/logging"
	"streamfront/internal/redis"
	"streamfront/internal/settings"
	"streamfront/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(cfg.LogLevel, "streamfront-api")
	logger.Info("starting_api", "http_addr", cfg.HTTPAddr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Postgres é opcional em runtime: sem ele as leituras caem nos defaults
	// e as escritas respondem 503.
	var dbConn *db.DB
	if cfg.DBDSN != "" {
		dbConn, err = db.New(ctx, cfg.DBDSN)
		if err != nil {
			logger.Error("db_connect_failed", "error", err)
			dbConn = nil
		}
	} else {
		logger.Warn("db_dsn_not_configured")
	}

	store := settings.NewPostgres(dbConn)
	if dbConn != nil {
		if err := store.Init(ctx); err != nil {
			logger.Error("settings_init_failed", "error", err)
		}
	}

	// Redis só alimenta o rate limiting; sem ele o serviço roda sem limite.
	var redisClient *redis.Client
	if rc, err := redis.New(cfg.RedisDSN); err != nil {
		logger.Warn("redis_connect_failed", "error", err)
	} else {
		redisClient = rc
	}

	var storageClient storage.Client
	if cfg.R2Bucket != "" {
		s3c, err := storage.NewS3Client(storage.S3Config{
			Endpoint:  cfg.R2Endpoint,
			Bucket:    cfg.R2Bucket,
			PublicURL: cfg.R2PublicURL,
			Region:    cfg.R2Region,
		})
		if err != nil {
			logger.Error("storage_init_failed", "error", err)
		} else {
			storageClient = s3c
		}
	} else {
		logger.Info("storage_simulator_enabled")
		storageClient = storage.NewSimulator(cfg.R2Bucket, cfg.R2Endpoint)
	}

	var discordClient *discord.Client
	if cfg.BotToken != "" {
		discordClient = discord.NewClient(logger, cfg.BotToken)
		logger.Info("bot_token_configured", "token", logging.MaskToken(cfg.BotToken))
	} else {
		logger.Warn("bot_token_not_configured")
	}

	srv := api.NewServer(logger, cfg, store, discordClient, storageClient, redisClient, dbConn)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_listen_failed", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("api_started", "addr", cfg.HTTPAddr)

	// graceful shutdown
	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_shutdown_failed", "error", err)
	} else {
		logger.Info("http_server_stopped")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis_close_error", "error", err)
		}
	}

	if dbConn != nil {
		dbConn.Close()
		logger.Info("db_closed")
	}

	logger.Info("api_stopped")
}
