package usecase

import (
	"context"
	"fmt"

	"vivelo/internal/data/entity"
	"vivelo/internal/data/repository"

	"go.uber.org/zap"
)

type WebhookService interface {
	// HandleStripeEvent verifies and applies a Stripe webhook delivery.
	// Unknown event types are acknowledged and ignored.
	HandleStripeEvent(ctx context.Context, payload []byte, sigHeader string) error
}

type webhookService struct {
	repo     *repository.Repository
	payments RefundProcessor
	log      *zap.Logger
}

func NewWebhookService(repo *repository.Repository, payments RefundProcessor, log *zap.Logger) WebhookService {
	return &webhookService{
		repo:     repo,
		payments: payments,
		log:      log.With(zap.String("service", "webhook")),
	}
}

func (s *webhookService) HandleStripeEvent(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.payments.VerifyWebhook(payload, sigHeader)
	if err != nil {
		return fmt.Errorf("%w: webhook signature verification failed", ErrValidation)
	}

	switch event.Type {
	case "payment_intent.succeeded":
		return s.applyIntentStatus(ctx, event.Data.Object, entity.PaymentStatusSucceeded)
	case "payment_intent.payment_failed":
		return s.applyIntentStatus(ctx, event.Data.Object, entity.PaymentStatusFailed)
	default:
		s.log.Debug("Ignoring stripe event", zap.String("type", string(event.Type)))
		return nil
	}
}

func (s *webhookService) applyIntentStatus(ctx context.Context, object map[string]interface{}, status entity.PaymentStatus) error {
	intentID, ok := object["id"].(string)
	if !ok || intentID == "" {
		return fmt.Errorf("%w: event object has no intent ID", ErrValidation)
	}

	payment, err := s.repo.Payment.FindByIntentID(ctx, intentID)
	if err != nil {
		return err
	}
	if payment == nil {
		// Deliveries can arrive before our own write commits; Stripe retries.
		s.log.Warn("Webhook for unknown payment intent", zap.String("payment_intent_id", intentID))
		return ErrNotFound
	}

	if err := s.repo.Payment.UpdateStatus(ctx, payment.ID, status); err != nil {
		return err
	}

	s.log.Info("Payment status updated from webhook",
		zap.String("payment_intent_id", intentID),
		zap.String("status", string(status)),
	)
	return nil
}
