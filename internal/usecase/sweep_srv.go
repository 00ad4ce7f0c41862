package usecase

import (
	"context"
	"fmt"
	"time"

	"vivelo/internal/data/entity"
	"vivelo/internal/data/repository"
	"vivelo/pkg/utils"

	"go.uber.org/zap"
)

type SweepService interface {
	// AutoCompleteOverdue completes every in_progress booking whose end-code
	// deadline has passed. Returns how many bookings were completed.
	AutoCompleteOverdue(ctx context.Context) (int, error)

	// GenerateDailyCodes assigns verification codes to confirmed bookings
	// whose event is today and which have no codes yet. Returns how many
	// bookings received codes.
	GenerateDailyCodes(ctx context.Context) (int, error)
}

type sweepService struct {
	repo   *repository.Repository
	mailer Mailer
	now    func() time.Time
	log    *zap.Logger
}

func NewSweepService(repo *repository.Repository, mailer Mailer, log *zap.Logger) SweepService {
	return &sweepService{
		repo:   repo,
		mailer: mailer,
		now:    time.Now,
		log:    log.With(zap.String("service", "sweep")),
	}
}

func (s *sweepService) AutoCompleteOverdue(ctx context.Context) (int, error) {
	now := s.now()
	overdue, err := s.repo.Booking.FindInProgressPastDeadline(ctx, now)
	if err != nil {
		return 0, err
	}

	// One bad row must not stop the rest of the sweep.
	completed := 0
	for _, booking := range overdue {
		updated, err := s.repo.Booking.MarkAutoCompleted(ctx, booking.ID, now)
		if err != nil {
			s.log.Error("Failed to auto-complete booking",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
			continue
		}
		if !updated {
			continue
		}
		completed++

		s.log.Info("Booking auto-completed past end-code deadline",
			zap.String("booking_id", booking.ID.String()),
			zap.Timep("deadline", booking.EndCodeDeadline),
		)

		// Same review invitation the client would get after verifying the
		// end code themselves. Best effort.
		s.inviteReview(ctx, booking)
	}

	return completed, nil
}

func (s *sweepService) inviteReview(ctx context.Context, booking *entity.Booking) {
	link := fmt.Sprintf("/bookings/%s/review", booking.ID.String())
	n := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: s.now(),
		},
		UserID:  booking.ClientID,
		Type:    entity.NotificationLeaveReview,
		Title:   "How was your event?",
		Message: "Your booking is complete. Leave a review for the provider.",
		Link:    &link,
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.log.Warn("Failed to create review invitation",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}
}

func (s *sweepService) GenerateDailyCodes(ctx context.Context) (int, error) {
	today := s.now().Truncate(24 * time.Hour)
	bookings, err := s.repo.Booking.FindConfirmedWithoutCodes(ctx, today)
	if err != nil {
		return 0, err
	}

	generated := 0
	for _, booking := range bookings {
		startCode := utils.GenerateVerificationCode()
		endCode := utils.GenerateVerificationCode()

		updated, err := s.repo.Booking.SetVerificationCodes(ctx, booking.ID, startCode, endCode)
		if err != nil {
			s.log.Error("Failed to set verification codes",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
			continue
		}
		if !updated {
			// Another sweep run already assigned codes.
			continue
		}
		generated++

		s.deliverCodes(ctx, booking, startCode, endCode)
	}

	return generated, nil
}

// deliverCodes mails each party the code the other will ask them for: the
// client holds the start code, the provider holds the end code. Delivery is
// best effort.
func (s *sweepService) deliverCodes(ctx context.Context, booking *entity.Booking, startCode, endCode string) {
	date := booking.EventDate.Format("2006-01-02")

	if client, err := s.repo.User.FindByID(ctx, booking.ClientID); err == nil && client != nil {
		body := fmt.Sprintf(
			"<p>Your event on %s is today.</p><p>Give this start code to your provider when the event begins: <strong>%s</strong></p>",
			date, startCode,
		)
		if err := s.mailer.Send(client.Email, "Your event start code", body); err != nil {
			s.log.Warn("Failed to email start code",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
		}
	}

	if provider, err := s.repo.User.FindByID(ctx, booking.ProviderID); err == nil && provider != nil {
		body := fmt.Sprintf(
			"<p>You have an event on %s.</p><p>Give this end code to your client when the service is done: <strong>%s</strong></p>",
			date, endCode,
		)
		if err := s.mailer.Send(provider.Email, "Your event end code", body); err != nil {
			s.log.Warn("Failed to email end code",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
		}
	}
}
