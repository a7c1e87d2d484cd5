package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"caslkey/internal/platform/config"
	"caslkey/internal/platform/logger"
)

// main loads configuration and hands off to run. Wiring lives in wire.go.
func main() {
	cfg, err := config.Load(os.Getenv("CASL_CONFIG"))
	if err != nil {
		logger.New("info").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("initializing caslkey",
		"addr", cfg.Server.Addr,
		"environment", cfg.Server.Environment,
		"storage", cfg.Storage.Backend,
		"kafka", cfg.Kafka.Brokers != "",
	)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
