package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ostlund/vanir/internal"
	"github.com/ostlund/vanir/internal/worker"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	if cfg.NATS.URL == "" {
		return fmt.Errorf("NATS_URL is required for the worker")
	}

	w, err := worker.NewWorker(worker.Config{
		NATSURL:   cfg.NATS.URL,
		Durable:   cfg.Worker.Durable,
		FetchWait: cfg.Worker.FetchWait,
	}, logger)
	if err != nil {
		return fmt.Errorf("worker initialization failed: %w", err)
	}
	defer w.Close()

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("worker failed: %w", err)
	}

	logger.Info("Worker stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
