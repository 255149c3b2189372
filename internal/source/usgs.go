package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/couchcryptid/disaster-alerts-service/internal/domain"
)

// USGS adapts the United States Geological Survey earthquake summary feed.
type USGS struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewUSGS creates a USGS adapter against the given GeoJSON endpoint.
func NewUSGS(url string, client *http.Client, logger *slog.Logger) *USGS {
	return &USGS{url: url, client: client, logger: logger}
}

func (s *USGS) Name() string { return "USGS" }

// usgsResponse mirrors the subset of the USGS GeoJSON summary the adapter reads.
type usgsResponse struct {
	Features []usgsFeature `json:"features"`
}

type usgsFeature struct {
	ID         string         `json:"id"`
	Properties usgsProperties `json:"properties"`
	Geometry   usgsGeometry   `json:"geometry"`
}

type usgsProperties struct {
	Title string   `json:"title"`
	Time  *int64   `json:"time"` // epoch milliseconds
	URL   string   `json:"url"`
	Mag   *float64 `json:"mag"` // null for unmeasured quakes
}

type usgsGeometry struct {
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
}

// Fetch retrieves the current seismic snapshot. Non-2xx responses degrade to
// an empty slice with a warning so one bad poll never aborts the cycle.
func (s *USGS) Fetch(ctx context.Context) ([]domain.DisasterEvent, error) {
	body, status, err := get(ctx, s.client, s.url)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		s.logger.Warn("usgs fetch failed", "status", status)
		return nil, nil
	}

	var payload usgsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode usgs payload: %w", err)
	}

	out := make([]domain.DisasterEvent, 0, len(payload.Features))
	for _, feat := range payload.Features {
		out = append(out, s.normalize(feat))
	}
	return out, nil
}

// normalize maps one GeoJSON feature into the canonical model. Seismic events
// are always category "earthquake" and the date stays in the feed's native
// epoch-millisecond encoding.
func (s *USGS) normalize(feat usgsFeature) domain.DisasterEvent {
	d := domain.DisasterEvent{
		ID:       feat.ID,
		Title:    domain.DefaultTitle,
		Category: "earthquake",
		Source:   s.Name(),
		URL:      s.url,
	}
	if feat.Properties.Title != "" {
		d.Title = feat.Properties.Title
	}
	if feat.Properties.URL != "" {
		d.URL = feat.Properties.URL
	}
	if feat.Properties.Time != nil {
		d.Date = strconv.FormatInt(*feat.Properties.Time, 10)
	}
	if feat.Properties.Mag != nil {
		d.Magnitude = *feat.Properties.Mag
	}
	if c := feat.Geometry.Coordinates; len(c) >= 2 {
		d.Longitude = c[0]
		d.Latitude = c[1]
	}
	return d
}
