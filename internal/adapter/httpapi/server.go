// Package httpapi exposes the query surface over the event store plus
// health, readiness, and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/disaster-alerts-service/internal/domain"
)

// EventLister is the read-only slice of the store the API serves from.
type EventLister interface {
	ListFiltered(ctx context.Context, category, source string) ([]domain.DisasterEvent, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// CycleTrigger starts an on-demand poll cycle.
type CycleTrigger interface {
	TriggerCycle(ctx context.Context)
}

// Server exposes the events API and operational HTTP endpoints.
type Server struct {
	httpServer *http.Server
	lister     EventLister
	trigger    CycleTrigger
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /events, /health, /readyz, /metrics,
// and /poll routes.
func NewServer(addr string, lister EventLister, ready ReadinessChecker, trigger CycleTrigger, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		lister:  lister,
		trigger: trigger,
		logger:  logger,
	}

	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /poll", s.handlePoll)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleEvents serves the stored record set, optionally filtered by category
// and source equality. A struggling feed degrades to "no new data" upstream,
// so only storage faults surface as errors here.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	src := r.URL.Query().Get("source")

	events, err := s.lister.ListFiltered(r.Context(), category, src)
	if err != nil {
		s.logger.Error("list events failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list events"})
		return
	}
	if events == nil {
		events = []domain.DisasterEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handlePoll starts an on-demand cycle. The cycle runs detached from the
// request so a slow feed cannot hold the admin call open.
func (s *Server) handlePoll(w http.ResponseWriter, _ *http.Request) {
	go s.trigger.TriggerCycle(context.Background())
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "cycle triggered"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
