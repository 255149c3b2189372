// Package poller drives the periodic fetch-normalize-upsert-notify cycle
// over all configured sources.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/disaster-alerts-service/internal/domain"
	"github.com/couchcryptid/disaster-alerts-service/internal/notify"
	"github.com/couchcryptid/disaster-alerts-service/internal/observability"
	"github.com/couchcryptid/disaster-alerts-service/internal/source"
)

// EventStore is the slice of the store the poller writes through.
type EventStore interface {
	Upsert(ctx context.Context, event domain.DisasterEvent) error
}

// Notifier receives events that passed the gate. Delivery outcomes are the
// notifier's concern; the poller never retries.
type Notifier interface {
	Notify(ctx context.Context, event domain.DisasterEvent)
}

// Poller runs one poll cycle immediately at start, then one per interval.
// Cycles never overlap: the periodic loop and on-demand triggers share a
// cycle mutex.
type Poller struct {
	sources  []source.Source
	store    EventStore
	gate     *notify.Gate
	notifier Notifier
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *observability.Metrics

	cycleMu sync.Mutex
	ready   atomic.Bool
}

// New creates a Poller over the given sources.
func New(
	sources []source.Source,
	store EventStore,
	gate *notify.Gate,
	notifier Notifier,
	interval time.Duration,
	clock clockwork.Clock,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Poller {
	return &Poller{
		sources:  sources,
		store:    store,
		gate:     gate,
		notifier: notifier,
		interval: interval,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness returns nil once at least one cycle has completed.
func (p *Poller) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no poll cycle has completed yet")
	}
	return nil
}

// Run executes the poll loop until the context is cancelled. The first cycle
// runs immediately; subsequent cycles follow the configured interval.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("poller started", "sources", len(p.sources), "interval", p.interval)
	p.metrics.PollerRunning.Set(1)
	defer p.metrics.PollerRunning.Set(0)

	p.runCycle(ctx)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			p.runCycle(ctx)
		}
	}
}

// TriggerCycle runs one on-demand cycle, serialized with the periodic loop.
func (p *Poller) TriggerCycle(ctx context.Context) {
	p.runCycle(ctx)
}

// runCycle polls every source in registration order. A source or per-event
// failure is logged and isolated; the next scheduled cycle is the retry
// mechanism.
func (p *Poller) runCycle(ctx context.Context) {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	start := p.clock.Now()

	for _, src := range p.sources {
		if ctx.Err() != nil {
			return
		}

		events, err := src.Fetch(ctx)
		if err != nil {
			p.logger.Warn("source fetch failed", "source", src.Name(), "error", err)
			p.metrics.FetchErrors.WithLabelValues(src.Name()).Inc()
			continue
		}
		p.metrics.EventsFetched.WithLabelValues(src.Name()).Add(float64(len(events)))

		for _, event := range events {
			p.processEvent(ctx, event)
		}
		p.logger.Debug("source polled", "source", src.Name(), "events", len(events))
	}

	p.metrics.CyclesTotal.Inc()
	p.metrics.CycleDuration.Observe(p.clock.Since(start).Seconds())
	p.ready.Store(true)
}

// processEvent upserts one event and, when its key has never been seen,
// forwards it to the notifier. A failed upsert drops the event for this
// cycle without marking the gate.
func (p *Poller) processEvent(ctx context.Context, event domain.DisasterEvent) {
	if err := p.store.Upsert(ctx, event); err != nil {
		p.logger.Warn("upsert failed", "source", event.Source, "id", event.ID, "error", err)
		p.metrics.UpsertErrors.Inc()
		return
	}
	p.metrics.EventsUpserted.Inc()

	if p.gate.FirstSeen(event.Key()) {
		p.notifier.Notify(ctx, event)
	}
}
