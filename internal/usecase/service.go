package usecase

import (
	"vivelo/internal/data/repository"
	"vivelo/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Catalog      CatalogService
	Availability AvailabilityService
	Booking      BookingService
	Cancellation CancellationService
	Verification VerificationService
	Sweep        SweepService
	Notification NotificationService
	Calendar     CalendarService
	Webhook      WebhookService
}

func NewService(
	repo *repository.Repository,
	cfg *utils.Config,
	payments RefundProcessor,
	calendar CalendarClient,
	mailer Mailer,
	log *zap.Logger,
) *Service {
	availability := NewAvailabilityService(repo, log)

	return &Service{
		Auth:         NewAuthService(repo, cfg.Session.ExpiryHours, log),
		Catalog:      NewCatalogService(repo, log),
		Availability: availability,
		Booking:      NewBookingService(repo, availability, payments, calendar, cfg.Commission.Rate, cfg.Stripe.Currency, log),
		Cancellation: NewCancellationService(repo, payments, calendar, log),
		Verification: NewVerificationService(repo, log),
		Sweep:        NewSweepService(repo, mailer, log),
		Notification: NewNotificationService(repo, log),
		Calendar:     NewCalendarService(repo, calendar, log),
		Webhook:      NewWebhookService(repo, payments, log),
	}
}
