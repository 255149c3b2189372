package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/disaster-alerts-service/internal/domain"
)

// EONET adapts NASA's Earth Observatory Natural Event Tracker feed.
type EONET struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewEONET creates an EONET adapter against the given endpoint.
func NewEONET(url string, client *http.Client, logger *slog.Logger) *EONET {
	return &EONET{url: url, client: client, logger: logger}
}

func (s *EONET) Name() string { return "EONET" }

// eonetResponse mirrors the subset of the EONET v3 payload the adapter reads.
type eonetResponse struct {
	Events []eonetEvent `json:"events"`
}

type eonetEvent struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Categories []eonetCategory `json:"categories"`
	Sources    []eonetLink     `json:"sources"`
	Geometry   []eonetGeometry `json:"geometry"`
}

type eonetCategory struct {
	Title string `json:"title"`
}

type eonetLink struct {
	URL string `json:"url"`
}

type eonetGeometry struct {
	Date string `json:"date"`
	// Coordinates is [lon, lat] for point geometries but a nested array for
	// polygons, so it is decoded lazily.
	Coordinates json.RawMessage `json:"coordinates"`
}

// Fetch retrieves the current open-event snapshot. Non-2xx responses degrade
// to an empty slice with a warning so one bad poll never aborts the cycle.
func (s *EONET) Fetch(ctx context.Context) ([]domain.DisasterEvent, error) {
	body, status, err := get(ctx, s.client, s.url)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		s.logger.Warn("eonet fetch failed", "status", status)
		return nil, nil
	}

	var payload eonetResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode eonet payload: %w", err)
	}

	out := make([]domain.DisasterEvent, 0, len(payload.Events))
	for _, ev := range payload.Events {
		out = append(out, s.normalize(ev))
	}
	return out, nil
}

// normalize maps one EONET event into the canonical model.
func (s *EONET) normalize(ev eonetEvent) domain.DisasterEvent {
	d := domain.DisasterEvent{
		ID:       ev.ID,
		Title:    domain.DefaultTitle,
		Category: domain.DefaultCategory,
		Source:   s.Name(),
		URL:      s.url,
		Date:     time.Now().UTC().Format(time.RFC3339),
	}
	if ev.Title != "" {
		d.Title = ev.Title
	}
	if len(ev.Categories) > 0 && ev.Categories[0].Title != "" {
		d.Category = ev.Categories[0].Title
	}
	if len(ev.Sources) > 0 && ev.Sources[0].URL != "" {
		d.URL = ev.Sources[0].URL
	}

	// The last geometry is the most recent observation and is authoritative.
	if len(ev.Geometry) > 0 {
		g := ev.Geometry[len(ev.Geometry)-1]
		if lat, lon, ok := parsePoint(g.Coordinates); ok {
			d.Latitude = lat
			d.Longitude = lon
		}
		if g.Date != "" {
			d.Date = g.Date
		}
	}
	return d
}

// parsePoint decodes a GeoJSON [lon, lat] pair, reversing into (lat, lon).
// Nested polygon coordinates do not decode as a flat pair and report !ok.
func parsePoint(raw json.RawMessage) (lat, lon float64, ok bool) {
	var coords []float64
	if err := json.Unmarshal(raw, &coords); err != nil || len(coords) < 2 {
		return 0, 0, false
	}
	return coords[1], coords[0], true
}
