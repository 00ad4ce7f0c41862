package usecase

import (
	"context"
	"fmt"
	"time"

	"vivelo/internal/data/entity"
	"vivelo/internal/data/repository"
	"vivelo/internal/dto/request"
	"vivelo/internal/dto/response"
	"vivelo/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// endCodeGraceDays is how many business days after the event date the client
// has to confirm completion before the auto-complete sweep takes over.
const endCodeGraceDays = 3

type VerificationService interface {
	// VerifyStart moves a confirmed booking to in_progress. The start code
	// is held by the client and entered by the provider (or an admin).
	VerifyStart(ctx context.Context, actorID uuid.UUID, role entity.UserRole, bookingID uuid.UUID, req *request.VerifyCodeRequest) (*response.VerifyCodeResponse, error)

	// VerifyEnd moves an in_progress booking to completed. The end code is
	// held by the provider and entered by the client (or an admin).
	VerifyEnd(ctx context.Context, actorID uuid.UUID, role entity.UserRole, bookingID uuid.UUID, req *request.VerifyCodeRequest) (*response.VerifyCodeResponse, error)
}

type verificationService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewVerificationService(repo *repository.Repository, log *zap.Logger) VerificationService {
	return &verificationService{
		repo: repo,
		now:  time.Now,
		log:  log.With(zap.String("service", "verification")),
	}
}

func (s *verificationService) VerifyStart(ctx context.Context, actorID uuid.UUID, role entity.UserRole, bookingID uuid.UUID, req *request.VerifyCodeRequest) (*response.VerifyCodeResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNotFound
	}

	if role != entity.RoleAdmin && !(role == entity.RoleProvider && booking.ProviderID == actorID) {
		return nil, ErrForbidden
	}

	if booking.Status != entity.BookingStatusConfirmed {
		return nil, fmt.Errorf("%w: booking is %s, expected confirmed", ErrInvalidTransition, booking.Status)
	}
	if booking.StartCode == nil {
		return nil, ErrCodesNotReady
	}
	if *booking.StartCode != req.Code {
		return nil, ErrCodeMismatch
	}

	usedAt := s.now()
	// The deadline counts from the civil event date, not from the clock time
	// the event started at.
	deadline := AddBusinessDays(booking.EventDate, endCodeGraceDays)

	updated, err := s.repo.Booking.MarkStartVerified(ctx, booking.ID, usedAt, deadline)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrConflict
	}

	s.log.Info("Booking start verified",
		zap.String("booking_id", booking.ID.String()),
		zap.Time("end_code_deadline", deadline),
	)

	return &response.VerifyCodeResponse{
		Success:   true,
		Message:   "Event start verified",
		NewStatus: string(entity.BookingStatusInProgress),
	}, nil
}

func (s *verificationService) VerifyEnd(ctx context.Context, actorID uuid.UUID, role entity.UserRole, bookingID uuid.UUID, req *request.VerifyCodeRequest) (*response.VerifyCodeResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNotFound
	}

	if role != entity.RoleAdmin && !(role == entity.RoleClient && booking.ClientID == actorID) {
		return nil, ErrForbidden
	}

	if booking.Status != entity.BookingStatusInProgress {
		return nil, fmt.Errorf("%w: booking is %s, expected in_progress", ErrInvalidTransition, booking.Status)
	}
	if booking.EndCode == nil {
		return nil, ErrCodesNotReady
	}
	if *booking.EndCode != req.Code {
		return nil, ErrCodeMismatch
	}

	updated, err := s.repo.Booking.MarkEndVerified(ctx, booking.ID, s.now())
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrConflict
	}

	s.log.Info("Booking end verified", zap.String("booking_id", booking.ID.String()))

	s.inviteReview(ctx, booking)

	return &response.VerifyCodeResponse{
		Success:   true,
		Message:   "Event completion verified",
		NewStatus: string(entity.BookingStatusCompleted),
	}, nil
}

func (s *verificationService) inviteReview(ctx context.Context, booking *entity.Booking) {
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
