// Package payment wraps the Stripe API surface the booking flow needs:
// payment intents at checkout, refunds at cancellation, and webhook
// signature verification.
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/refund"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/zap"
)

type Client struct {
	currency      string
	webhookSecret string
	log           *zap.Logger
}

func NewClient(apiKey, currency, webhookSecret string, log *zap.Logger) *Client {
	stripe.Key = apiKey
	return &Client{
		currency:      currency,
		webhookSecret: webhookSecret,
		log:           log.With(zap.String("gateway", "stripe")),
	}
}

// CreateIntent creates a payment intent for amountMinor (centavos) and
// returns its id.
func (c *Client) CreateIntent(ctx context.Context, amountMinor int64, bookingID string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(c.currency),
	}
	params.Context = ctx
	params.AddMetadata("booking_id", bookingID)

	pi, err := paymentintent.New(params)
	if err != nil {
		c.log.Error("Failed to create payment intent",
			zap.Error(err),
			zap.Int64("amount_minor", amountMinor),
			zap.String("booking_id", bookingID),
		)
		return "", fmt.Errorf("create payment intent: %w", err)
	}

	return pi.ID, nil
}

// CreateRefund refunds amountMinor against the original payment intent and
// returns the processor's refund id.
func (c *Client) CreateRefund(ctx context.Context, paymentIntentID string, amountMinor int64) (string, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
		Amount:        stripe.Int64(amountMinor),
	}
	params.Context = ctx

	re, err := refund.New(params)
	if err != nil {
		c.log.Error("Failed to create refund",
			zap.Error(err),
			zap.String("payment_intent_id", paymentIntentID),
			zap.Int64("amount_minor", amountMinor),
		)
		return "", fmt.Errorf("create refund for %s: %w", paymentIntentID, err)
	}

	c.log.Info("Refund created",
		zap.String("refund_id", re.ID),
		zap.String("payment_intent_id", paymentIntentID),
		zap.Int64("amount_minor", amountMinor),
	)
	return re.ID, nil
}

// VerifyWebhook checks the Stripe-Signature header against the payload and
// returns the parsed event.
func (c *Client) VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, c.webhookSecret)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("verify webhook signature: %w", err)
	}
	return event, nil
}
