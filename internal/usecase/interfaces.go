package usecase

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/stripe/stripe-go/v82"
)

// RefundProcessor is the slice of the payment gateway the booking flows
// need. Amounts are in minor units of the configured currency.
type RefundProcessor interface {
	CreateIntent(ctx context.Context, amountMinor int64, bookingID string) (string, error)
	CreateRefund(ctx context.Context, paymentIntentID string, amountMinor int64) (string, error)
	VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error)
}

// CalendarClient pushes booking windows to an external calendar. All calls
// are best effort from the caller's point of view.
type CalendarClient interface {
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	InsertEvent(ctx context.Context, token *oauth2.Token, calendarID, summary string, start, end time.Time) (string, error)
	DeleteEvent(ctx context.Context, token *oauth2.Token, calendarID, eventID string) error
}

// Mailer sends transactional email.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}
