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

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/disaster-alerts-service/internal/adapter/httpapi"
	"github.com/couchcryptid/disaster-alerts-service/internal/adapter/kafka"
	"github.com/couchcryptid/disaster-alerts-service/internal/config"
	"github.com/couchcryptid/disaster-alerts-service/internal/notify"
	"github.com/couchcryptid/disaster-alerts-service/internal/observability"
	"github.com/couchcryptid/disaster-alerts-service/internal/poller"
	"github.com/couchcryptid/disaster-alerts-service/internal/source"
	"github.com/couchcryptid/disaster-alerts-service/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("failed to create data directory", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	st, err := store.Open(ctx, cfg.DBPath, cfg.DBBusyTimeout)
	if err != nil {
		logger.Error("failed to open event store", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}

	client := source.NewHTTPClient(cfg.FetchConnectTimeout, cfg.FetchResponseTimeout)
	sources := []source.Source{
		source.NewEONET(cfg.EONETURL, client, logger),
		source.NewUSGS(cfg.USGSURL, client, logger),
	}

	// Notification sinks are feature-flagged via config.
	var sinks []notify.Sink
	if cfg.EmailEnabled {
		sinks = append(sinks, notify.NewEmail(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailTo, logger))
		logger.Info("email notifications enabled", "recipients", len(cfg.EmailTo))
	}
	if cfg.DesktopNotify {
		sinks = append(sinks, notify.NewDesktop())
		logger.Info("desktop notifications enabled")
	}
	var alertWriter *kafka.Writer
	if len(cfg.KafkaBrokers) > 0 {
		alertWriter = kafka.NewWriter(cfg.KafkaBrokers, cfg.KafkaAlertTopic, logger)
		sinks = append(sinks, alertWriter)
		logger.Info("kafka alert topic enabled", "topic", cfg.KafkaAlertTopic)
	}
	if len(sinks) == 0 {
		logger.Info("no notification sinks configured")
	}

	fanout := notify.NewFanout(logger, metrics, sinks...)
	p := poller.New(sources, st, notify.NewGate(), fanout,
		cfg.PollInterval, clockwork.NewRealClock(), logger, metrics)

	srv := httpapi.NewServer(cfg.HTTPAddr, st, p, p, logger)

	// Start HTTP server. A failed bind aborts the process via stop().
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Start poll loop.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("poller error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if alertWriter != nil {
		if err := alertWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	if err := st.Close(); err != nil {
		logger.Error("event store close error", "error", err)
	}

	logger.Info("shutdown complete")
}
