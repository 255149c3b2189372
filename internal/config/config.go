package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	PollInterval    time.Duration
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Event store.
	DBPath        string
	DBBusyTimeout time.Duration

	// Feed endpoints and fetch timeouts.
	EONETURL             string
	USGSURL              string
	FetchConnectTimeout  time.Duration
	FetchResponseTimeout time.Duration

	// Email notifications (Resend). Enabled when an API key is present.
	ResendAPIKey string
	EmailFrom    string
	EmailTo      []string
	EmailEnabled bool

	// Kafka alert topic. Enabled when brokers are set.
	KafkaBrokers    []string
	KafkaAlertTopic string

	// Desktop notifications on the host running the service.
	DesktopNotify bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	pollInterval, err := parseDuration("POLL_INTERVAL", "60s")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	busyTimeout, err := parseDuration("DB_BUSY_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	connectTimeout, err := parseDuration("FETCH_CONNECT_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	responseTimeout, err := parseDuration("FETCH_RESPONSE_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}

	resendKey := os.Getenv("RESEND_API_KEY")

	cfg := &Config{
		PollInterval:    pollInterval,
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":4567"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DBPath:        envOrDefault("DB_PATH", "data/alerts.db"),
		DBBusyTimeout: busyTimeout,

		EONETURL:             envOrDefault("EONET_URL", "https://eonet.gsfc.nasa.gov/api/v3/events?status=open"),
		USGSURL:              envOrDefault("USGS_URL", "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson"),
		FetchConnectTimeout:  connectTimeout,
		FetchResponseTimeout: responseTimeout,

		ResendAPIKey: resendKey,
		EmailFrom:    os.Getenv("EMAIL_FROM"),
		EmailTo:      splitList(os.Getenv("EMAIL_TO")),
		EmailEnabled: resendKey != "",

		KafkaBrokers:    splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaAlertTopic: envOrDefault("KAFKA_ALERT_TOPIC", "disaster-alerts"),

		DesktopNotify: os.Getenv("DESKTOP_NOTIFY") == "true",
	}

	if cfg.EONETURL == "" {
		return nil, errors.New("EONET_URL is required")
	}
	if cfg.USGSURL == "" {
		return nil, errors.New("USGS_URL is required")
	}
	if cfg.DBPath == "" {
		return nil, errors.New("DB_PATH is required")
	}
	if cfg.EmailEnabled {
		if cfg.EmailFrom == "" {
			return nil, errors.New("RESEND_API_KEY is set but EMAIL_FROM is not")
		}
		if len(cfg.EmailTo) == 0 {
			return nil, errors.New("RESEND_API_KEY is set but EMAIL_TO is not")
		}
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaAlertTopic == "" {
		return nil, errors.New("KAFKA_BROKERS is set but KAFKA_ALERT_TOPIC is empty")
	}

	return cfg, nil
}

// envOrDefault returns the environment value for key, or def when unset.
func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseDuration reads a positive duration from the environment.
func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
