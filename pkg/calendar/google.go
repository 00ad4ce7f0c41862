// Package calendar wraps the Google Calendar integration: OAuth code
// exchange for provider accounts and event push/delete for bookings.
package calendar

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type Client struct {
	conf *oauth2.Config
	log  *zap.Logger
}

func NewClient(clientID, clientSecret, redirectURL string, log *zap.Logger) *Client {
	return &Client{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{gcal.CalendarEventsScope},
			Endpoint:     google.Endpoint,
		},
		log: log.With(zap.String("gateway", "google_calendar")),
	}
}

// Exchange trades an OAuth authorization code for a token pair.
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange oauth code: %w", err)
	}
	return token, nil
}

func (c *Client) service(ctx context.Context, token *oauth2.Token) (*gcal.Service, error) {
	src := c.conf.TokenSource(ctx, token)
	svc, err := gcal.NewService(ctx, option.WithTokenSource(src))
	if err != nil {
		return nil, fmt.Errorf("init calendar service: %w", err)
	}
	return svc, nil
}

// InsertEvent pushes a booking window to the provider's calendar and
// returns the created event id.
func (c *Client) InsertEvent(ctx context.Context, token *oauth2.Token, calendarID, summary string, start, end time.Time) (string, error) {
	svc, err := c.service(ctx, token)
	if err != nil {
		return "", err
	}

	if calendarID == "" {
		calendarID = "primary"
	}

	event := &gcal.Event{
		Summary: summary,
		Start:   &gcal.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:     &gcal.EventDateTime{DateTime: end.Format(time.RFC3339)},
	}

	created, err := svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		c.log.Error("Failed to insert calendar event",
			zap.Error(err),
			zap.String("calendar_id", calendarID),
		)
		return "", fmt.Errorf("insert calendar event: %w", err)
	}

	return created.Id, nil
}

// DeleteEvent removes a previously pushed event. Callers treat failures as
// best-effort.
func (c *Client) DeleteEvent(ctx context.Context, token *oauth2.Token, calendarID, eventID string) error {
	svc, err := c.service(ctx, token)
	if err != nil {
		return err
	}

	if calendarID == "" {
		calendarID = "primary"
	}

	if err := svc.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete calendar event %s: %w", eventID, err)
	}
	return nil
}
