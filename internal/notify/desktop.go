package notify

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/couchcryptid/disaster-alerts-service/internal/domain"
)

// Desktop shows an alert notification on the host running the service.
type Desktop struct{}

// NewDesktop creates a desktop notification sink.
func NewDesktop() *Desktop {
	return &Desktop{}
}

func (s *Desktop) Name() string { return "desktop" }

// Notify raises a desktop notification. Headless hosts report an error that
// the fanout logs and ignores.
func (s *Desktop) Notify(_ context.Context, e domain.DisasterEvent) error {
	text := fmt.Sprintf("%s\nCategory: %s\nLocation: %s",
		e.Title, e.Category, formatLocation(e.Latitude, e.Longitude))
	return beeep.Notify("New Disaster Alert", text, "")
}
