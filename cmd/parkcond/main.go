// Command parkcond runs the park conditions service: it records daily
// environmental observations submitted over HTTP, classifies them against
// fixed risk thresholds, persists the observation table to CSV, and publishes
// high-risk alerts to Kafka when configured.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/couchcryptid/park-conditions/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/park-conditions/internal/adapter/kafka"
	"github.com/couchcryptid/park-conditions/internal/config"
	"github.com/couchcryptid/park-conditions/internal/observability"
	"github.com/couchcryptid/park-conditions/internal/recorder"
	"github.com/couchcryptid/park-conditions/internal/store"
)

func main() {
	_ = godotenv.Load() // optional .env for local development

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize the alert publisher (feature-flagged via KAFKA_BROKERS /
	// ALERTS_ENABLED).
	var publisher recorder.AlertPublisher
	var publisherClose func() error
	if cfg.AlertsEnabled {
		p := kafkaadapter.NewPublisher(cfg, logger)
		publisher = p
		publisherClose = p.Close
		metrics.AlertsEnabled.Set(1)
		logger.Info("kafka alert publishing enabled", "topic", cfg.AlertsTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka alert publishing disabled")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.StorePath), 0o755); err != nil {
		logger.Error("failed to create store directory", "error", err)
		os.Exit(1)
	}
	st := store.New(cfg.StorePath, logger)

	// A malformed table on disk is fatal: silently discarding history is
	// worse than refusing to start.
	rec, err := recorder.New(st, publisher, logger, metrics)
	if err != nil {
		logger.Error("failed to load observation table", "error", err)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, rec, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisherClose != nil {
		if err := publisherClose(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
