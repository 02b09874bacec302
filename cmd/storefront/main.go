package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/rajneeshshukla1608/yaxis-immigration/internal/cart"
	cartstore "github.com/rajneeshshukla1608/yaxis-immigration/internal/cart/store"
	"github.com/rajneeshshukla1608/yaxis-immigration/internal/checkout"
	"github.com/rajneeshshukla1608/yaxis-immigration/internal/httpapi"
	"github.com/rajneeshshukla1608/yaxis-immigration/internal/pricing"
	"github.com/rajneeshshukla1608/yaxis-immigration/internal/remote"
	"github.com/rajneeshshukla1608/yaxis-immigration/pkg/logger"
)

type Config struct {
	HTTPPort        string
	RemoteBaseURL   string
	RedisAddr       string // empty means in-memory snapshots
	LogLevel        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RemoteBaseURL:   getEnv("REMOTE_API_URL", "http://localhost:8000/api"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	_ = godotenv.Load()

	cfg := loadConfig()
	log := logger.New(cfg.LogLevel)

	var snapshots cartstore.SnapshotStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.WithError(err).Fatal("failed to connect to redis")
		}
		snapshots = cartstore.NewRedisStore(client)
		log.WithField("addr", cfg.RedisAddr).Info("using redis snapshot store")
	} else {
		snapshots = cartstore.NewLocalStore()
		log.Info("using in-memory snapshot store")
	}

	client := remote.NewClient(remote.Config{
		BaseURL: cfg.RemoteBaseURL,
		Timeout: cfg.RequestTimeout,
		Log:     log,
	})

	synchronizer := cart.NewSynchronizer(client, snapshots, pricing.DefaultBundleDiscount(), log)
	summarizer := checkout.NewSummarizer(client, synchronizer, log)

	router := httpapi.NewRouter(synchronizer, summarizer, client, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.HTTPPort).Info("storefront gateway starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}
