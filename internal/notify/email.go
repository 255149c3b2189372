package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/couchcryptid/disaster-alerts-service/internal/domain"
)

// Email delivers alerts over the Resend email API.
type Email struct {
	client *resend.Client
	from   string
	to     []string
	logger *slog.Logger
}

// NewEmail creates an email sink. Credentials and recipients come from
// configuration, never from compiled-in constants.
func NewEmail(apiKey, from string, to []string, logger *slog.Logger) *Email {
	return &Email{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
		logger: logger,
	}
}

func (s *Email) Name() string { return "email" }

// Notify sends a multipart alert email for the event.
func (s *Email) Notify(ctx context.Context, e domain.DisasterEvent) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      s.to,
		Subject: "New Disaster Alert: " + e.Title,
		Text:    plainBody(e),
		Html:    htmlBody(e),
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send alert email: %w", err)
	}
	s.logger.Debug("alert email sent", "email_id", sent.Id, "source", e.Source, "id", e.ID)
	return nil
}

func plainBody(e domain.DisasterEvent) string {
	var b strings.Builder
	b.WriteString("New disaster event detected:\n\n")
	fmt.Fprintf(&b, "Title: %s\n", e.Title)
	fmt.Fprintf(&b, "Category: %s\n", e.Category)
	fmt.Fprintf(&b, "Location: %s\n", formatLocation(e.Latitude, e.Longitude))
	fmt.Fprintf(&b, "Source: %s\n", e.Source)
	fmt.Fprintf(&b, "Date: %s\n", e.Date)
	if e.Magnitude != 0 {
		fmt.Fprintf(&b, "Magnitude: %.1f\n", e.Magnitude)
	}
	fmt.Fprintf(&b, "\nView more details at: %s\n", e.URL)
	return b.String()
}

func htmlBody(e domain.DisasterEvent) string {
	var rows strings.Builder
	row := func(label, value string) {
		fmt.Fprintf(&rows, "<tr><td><strong>%s</strong></td><td>%s</td></tr>",
			label, html.EscapeString(value))
	}
	row("Title", e.Title)
	row("Category", e.Category)
	row("Location", formatLocation(e.Latitude, e.Longitude))
	row("Source", e.Source)
	row("Date", e.Date)
	if e.Magnitude != 0 {
		row("Magnitude", fmt.Sprintf("%.1f", e.Magnitude))
	}

	return fmt.Sprintf(
		`<h2>New Disaster Alert</h2><table>%s</table><p><a href="%s">View more details</a></p>`,
		rows.String(), html.EscapeString(e.URL))
}
