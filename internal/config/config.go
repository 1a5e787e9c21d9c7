// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	StorePath       string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka alert publishing configuration.
	KafkaBrokers  []string
	AlertsTopic   string
	AlertsEnabled bool
}

// Load reads configuration from environment variables, applying defaults
// where unset. Alert publishing defaults to enabled when KAFKA_BROKERS is
// set and can be forced either way with ALERTS_ENABLED.
func Load() (*Config, error) {
	shutdownTimeout, err := parseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	alertsEnabled := len(brokers) > 0
	if v := os.Getenv("ALERTS_ENABLED"); v != "" {
		alertsEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		StorePath:       envOrDefault("STORE_PATH", "data/observations.csv"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers:  brokers,
		AlertsTopic:   envOrDefault("ALERTS_TOPIC", "park-risk-alerts"),
		AlertsEnabled: alertsEnabled,
	}

	if cfg.StorePath == "" {
		return nil, errors.New("STORE_PATH is required")
	}
	if cfg.AlertsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("ALERTS_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.AlertsEnabled && cfg.AlertsTopic == "" {
		return nil, errors.New("ALERTS_ENABLED is true but ALERTS_TOPIC is empty")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseShutdownTimeout() (time.Duration, error) {
	s := envOrDefault("SHUTDOWN_TIMEOUT", "10s")
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	return d, nil
}

// parseBrokers splits a comma-separated broker list, dropping empty entries.
func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
