package adaptor

import (
	"vivelo/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Booking      *BookingHandler
	Catalog      *CatalogHandler
	Notification *NotificationHandler
	Calendar     *CalendarHandler
	Webhook      *WebhookHandler
}

func NewHandler(svc *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth, log),
		Booking:      NewBookingHandler(svc.Booking, svc.Cancellation, svc.Verification, log),
		Catalog:      NewCatalogHandler(svc.Catalog, svc.Availability, log),
		Notification: NewNotificationHandler(svc.Notification, log),
		Calendar:     NewCalendarHandler(svc.Calendar, log),
		Webhook:      NewWebhookHandler(svc.Webhook, log),
	}
}
