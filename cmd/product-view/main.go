package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"product-detail-bff/internal/api"
	"product-detail-bff/internal/auth"
	"product-detail-bff/internal/cache"
	"product-detail-bff/internal/catalog"
	"product-detail-bff/internal/config"
	"product-detail-bff/internal/telemetry"
	"product-detail-bff/internal/view"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	slog.Info("Starting product detail view", "port", cfg.HTTPPort)

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := cache.NewClient(cfg.RedisAddr)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.Info("Connected to Redis", "addr", cfg.RedisAddr)

	catalogClient := catalog.NewClient(cfg.CatalogBaseURL)
	fetcher := api.NewCachedFetcher(catalogClient, redisClient, cfg.CacheTTL)

	views := view.NewRegistry(fetcher, cfg.BackLink, cfg.SessionIdleTTL)
	go views.Run(ctx)

	handler := api.NewHandler(views, redisClient)
	sessionMiddleware := auth.NewMiddleware(cfg.JWTSecret, cfg.SessionTTL)

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())

	handler.Register(mux, func(next http.HandlerFunc) http.HandlerFunc {
		return telemetry.Middleware(sessionMiddleware.Session(next))
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: mux,
	}

	go func() {
		slog.Info("Server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server shutdown error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Failed to shutdown gracefully", "error", err)
	}
}

func logLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}
