package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"registry-service/internal/app"
	"registry-service/internal/config"
	"registry-service/internal/logger"
)

func main() {
	cfg := InitConfig()
	zlog := InitLogger(cfg)
	defer zlog.Sync()

	registry := prometheus.NewRegistry()
	a, err := app.New(cfg, zlog, registry)
	if err != nil {
		zlog.Fatal("application initialization failed", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.Warmup(ctx); err != nil {
		zlog.Fatal("backend warmup failed", zap.Error(err))
	}
	go a.RunSnapshotLoop(ctx)

	fiberApp := fiber.New()

	// Register Prometheus metrics endpoint
	fiberApp.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Add Health check endpoint
	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	port := cfg.AppPort
	if port == "" {
		port = "8080"
		zlog.Info("defaulting port", zap.String("port", port))
	}
	zlog.Info("registry core ready",
		zap.String("backend", cfg.Backend),
		zap.String("port", port),
	)
	zlog.Fatal("server stopped", zap.Error(fiberApp.Listen(":"+port)))
}

func InitConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	return cfg
}

func InitLogger(cfg *config.Config) *zap.Logger {
	zlog, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Logger error: %v", err)
	}
	return zlog
}
