package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vivelo/internal/data/entity"
	"vivelo/internal/data/repository"
	"vivelo/internal/dto/response"
	"vivelo/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CancellationService interface {
	Cancel(ctx context.Context, actorID uuid.UUID, role entity.UserRole, bookingID uuid.UUID) (*response.CancelBookingResponse, error)
}

type cancellationService struct {
	repo     *repository.Repository
	payments RefundProcessor
	calendar CalendarClient
	now      func() time.Time
	log      *zap.Logger
}

func NewCancellationService(
	repo *repository.Repository,
	payments RefundProcessor,
	calendar CalendarClient,
	log *zap.Logger,
) CancellationService {
	return &cancellationService{
		repo:     repo,
		payments: payments,
		calendar: calendar,
		now:      time.Now,
		log:      log.With(zap.String("service", "cancellation")),
	}
}

func (s *cancellationService) Cancel(ctx context.Context, actorID uuid.UUID, role entity.UserRole, bookingID uuid.UUID) (*response.CancelBookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNotFound
	}

	if role != entity.RoleAdmin && booking.ClientID != actorID && booking.ProviderID != actorID {
		return nil, ErrForbidden
	}

	if booking.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: booking is already %s", ErrInvalidTransition, booking.Status)
	}

	rules, err := s.resolveRules(ctx, booking)
	if err != nil {
		return nil, err
	}

	now := s.now()
	refundPercent, refundAmount := EvaluateRefund(rules, booking.StartDatetime, booking.Total, now)

	// A provider cancelling forfeits the policy: the client is made whole.
	if role == entity.RoleProvider && booking.ProviderID == actorID {
		refundPercent = 100
		refundAmount = booking.Total
	}

	snapshot, err := json.Marshal(rules)
	if err != nil {
		return nil, fmt.Errorf("marshal policy snapshot: %w", err)
	}

	// The external refund is issued before the status write. If the write
	// then loses the race, the money has moved but the booking stays as the
	// winner left it; that gap is logged for manual follow-up.
	var refundID *string
	if refundAmount.IsPositive() && booking.PaymentIntentID != nil {
		id, err := s.payments.CreateRefund(ctx, *booking.PaymentIntentID, toMinorUnits(refundAmount))
		if err != nil {
			s.log.Error("Failed to create refund",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
				zap.String("payment_intent_id", *booking.PaymentIntentID),
			)
			return nil, fmt.Errorf("create refund: %w", err)
		}
		refundID = &id
	}

	updated, err := s.repo.Booking.MarkCancelled(ctx, repository.CancelParams{
		ID:            booking.ID,
		CancelledBy:   actorID,
		CancelledAt:   now,
		RefundAmount:  refundAmount,
		RefundPercent: refundPercent,
		Snapshot:      snapshot,
	})
	if err != nil {
		return nil, err
	}
	if !updated {
		if refundID != nil {
			s.log.Error("Refund issued but booking was cancelled or completed concurrently",
				zap.String("booking_id", booking.ID.String()),
				zap.String("refund_id", *refundID),
			)
		}
		return nil, ErrConflict
	}

	if refundID != nil {
		s.recordRefund(ctx, booking.ID, *refundID)
	}

	s.removeCalendarEvent(ctx, booking)
	s.notifyParties(ctx, booking, actorID)

	return &response.CancelBookingResponse{
		Success:          true,
		RefundAmount:     refundAmount.StringFixed(2),
		RefundPercent:    int(refundPercent),
		ExternalRefundID: refundID,
	}, nil
}

// resolveRules walks the policy fallback chain: an existing snapshot on the
// booking wins, then the service's assigned policy, then the marketplace
// default. No default configured means no refund tiers at all.
func (s *cancellationService) resolveRules(ctx context.Context, booking *entity.Booking) ([]entity.CancellationRule, error) {
	if len(booking.PolicySnapshot) > 0 {
		var rules []entity.CancellationRule
		if err := json.Unmarshal(booking.PolicySnapshot, &rules); err != nil {
			return nil, fmt.Errorf("unmarshal policy snapshot for booking %s: %w", booking.ID.String(), err)
		}
		return rules, nil
	}

	service, err := s.repo.Service.FindByID(ctx, booking.ServiceID)
	if err != nil {
		return nil, err
	}
	if service != nil && service.CancellationPolicyID != nil {
		policy, err := s.repo.Policy.FindByID(ctx, *service.CancellationPolicyID)
		if err != nil {
			return nil, err
		}
		if policy != nil {
			return policy.Rules, nil
		}
	}

	policy, err := s.repo.Policy.FindDefault(ctx)
	if err != nil {
		return nil, err
	}
	if policy != nil {
		return policy.Rules, nil
	}

	return nil, nil
}

func (s *cancellationService) recordRefund(ctx context.Context, bookingID uuid.UUID, refundID string) {
	payment, err := s.repo.Payment.FindByBookingID(ctx, bookingID)
	if err != nil || payment == nil {
		return
	}
	if err := s.repo.Payment.SetRefundID(ctx, payment.ID, refundID); err != nil {
		s.log.Warn("Failed to record refund on payment",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
	}
}

func (s *cancellationService) removeCalendarEvent(ctx context.Context, booking *entity.Booking) {
	if booking.CalendarEventID == nil {
		return
	}

	profile, err := s.repo.Profile.FindByID(ctx, booking.ProviderID)
	if err != nil || profile == nil || profile.GoogleAccessToken == nil {
		return
	}

	calendarID := "primary"
	if profile.GoogleCalendarID != nil {
		calendarID = *profile.GoogleCalendarID
	}

	if err := s.calendar.DeleteEvent(ctx, googleToken(profile), calendarID, *booking.CalendarEventID); err != nil {
		s.log.Warn("Failed to remove calendar event for cancelled booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}
}

func (s *cancellationService) notifyParties(ctx context.Context, booking *entity.Booking, actorID uuid.UUID) {
	link := fmt.Sprintf("/bookings/%s", booking.ID.String())
	date := booking.EventDate.Format("2006-01-02")

	for _, userID := range []uuid.UUID{booking.ClientID, booking.ProviderID} {
		message := fmt.Sprintf("The booking for %s was cancelled.", date)
		if userID == actorID {
			message = fmt.Sprintf("You cancelled the booking for %s.", date)
		}

		n := &entity.Notification{
			BaseSimple: entity.BaseSimple{
				ID:        utils.GenerateUUID(),
				CreatedAt: s.now(),
			},
			UserID:  userID,
			Type:    entity.NotificationBookingCancelled,
			Title:   "Booking cancelled",
			Message: message,
			Link:    &link,
		}
		if err := s.repo.Notification.Create(ctx, n); err != nil {
			s.log.Warn("Failed to create cancellation notification",
				zap.Error(err),
				zap.String("user_id", userID.String()),
			)
		}
	}
}
