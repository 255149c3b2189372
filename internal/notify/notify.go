// Package notify decides which events are new and fans alert deliveries out
// to the configured sinks.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/couchcryptid/disaster-alerts-service/internal/domain"
	"github.com/couchcryptid/disaster-alerts-service/internal/observability"
)

// Sink delivers an alert for one event. Delivery is at-least-attempted: a
// returned error is recorded but the event is never re-queued.
type Sink interface {
	Name() string
	Notify(ctx context.Context, event domain.DisasterEvent) error
}

// Fanout dispatches one event to every configured sink concurrently. A sink
// failure is logged and counted but never blocks or fails the other sinks.
type Fanout struct {
	sinks   []Sink
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewFanout creates a fanout over the given sinks.
func NewFanout(logger *slog.Logger, metrics *observability.Metrics, sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks, logger: logger, metrics: metrics}
}

// Notify delivers the event to all sinks and returns once every sink has
// finished or failed.
func (f *Fanout) Notify(ctx context.Context, event domain.DisasterEvent) {
	var wg sync.WaitGroup
	for _, sink := range f.sinks {
		wg.Add(1)
		go func(s Sink) {
			defer wg.Done()
			if err := s.Notify(ctx, event); err != nil {
				f.logger.Warn("notification failed",
					"sink", s.Name(), "source", event.Source, "id", event.ID, "error", err)
				f.metrics.NotificationErrors.WithLabelValues(s.Name()).Inc()
				return
			}
			f.metrics.NotificationsSent.WithLabelValues(s.Name()).Inc()
		}(sink)
	}
	wg.Wait()
}

// formatLocation renders coordinates with hemisphere suffixes,
// e.g. "54.600°N, 115.200°W".
func formatLocation(lat, lon float64) string {
	ns, ew := "N", "E"
	if lat < 0 {
		ns = "S"
	}
	if lon < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%.3f°%s, %.3f°%s", math.Abs(lat), ns, math.Abs(lon), ew)
}
