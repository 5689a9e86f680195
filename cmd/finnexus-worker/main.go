package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"finnexus/internal/amqp"
	"finnexus/internal/backend"
	"finnexus/internal/config"
	"finnexus/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting finnexus-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.MirrorBackend == "" {
		logger.Error("MIRROR_BACKEND is required for the mirror worker")
		os.Exit(1)
	}

	factory := backend.NewFactory(logger)

	primaryCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid primary backend configuration", "error", err)
		os.Exit(1)
	}
	primary, err := factory.CreateBackend(context.Background(), primaryCfg)
	if err != nil {
		logger.Error("Failed to initialize primary backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if primary.Cleanup != nil {
		defer primary.Cleanup()
	}

	mirrorCfg, err := backend.MirrorFromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid mirror backend configuration", "error", err)
		os.Exit(1)
	}
	mirror, err := factory.CreateBackend(context.Background(), mirrorCfg)
	if err != nil {
		logger.Error("Failed to initialize mirror backend", "error", err, "backend", cfg.MirrorBackend)
		os.Exit(1)
	}
	if mirror.Cleanup != nil {
		defer mirror.Cleanup()
	}

	// Event source (optional): without AMQP the worker relies on the
	// periodic reconcile alone.
	var source worker.EventSource
	if cfg.AMQPURL != "" {
		url, exchange, queue := cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue
		source = func(ctx context.Context, handler func(*amqp.TransactionEventMessage) error) error {
			return amqp.ConsumeWithReconnect(ctx, url, exchange, queue, handler)
		}
		logger.Info("Consuming change events", "exchange", exchange, "queue", queue)
	} else {
		logger.Info("No AMQP URL configured, relying on periodic reconcile only")
	}

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	w := worker.NewMirrorWorker(primary.Backend, mirror.Backend, source, cfg.ReconcileInterval)

	logger.Info("Mirror worker running",
		"primary", cfg.DataBackend,
		"mirror", cfg.MirrorBackend,
		"reconcile_interval", cfg.ReconcileInterval.String())

	if err := w.Run(ctx); err != nil {
		logger.Error("Mirror worker failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Mirror worker stopped gracefully")
}
