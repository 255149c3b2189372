package domain

// Default values applied during normalization when a feed omits a field.
const (
	DefaultTitle    = "n/a"
	DefaultCategory = "unknown"
)

// DisasterEvent is the canonical normalized record shared by all sources.
// Instances are built fresh on every poll cycle and never mutated afterwards;
// the store row is the durable representation.
type DisasterEvent struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Source    string  `json:"source"`
	URL       string  `json:"url"`
	Date      string  `json:"date"`      // feed-native: RFC 3339 or epoch-millis string
	Magnitude float64 `json:"magnitude"` // seismic events only; 0 otherwise
}

// EventKey is the composite identity of an event: unique per (id, source).
type EventKey struct {
	ID     string
	Source string
}

// Key returns the event's composite identity.
func (e DisasterEvent) Key() EventKey {
	return EventKey{ID: e.ID, Source: e.Source}
}
