package usecase

import (
	"context"
	"fmt"

	"vivelo/internal/data/repository"
	"vivelo/internal/dto/request"
	"vivelo/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CalendarService interface {
	// Connect exchanges an OAuth authorization code and stores the resulting
	// tokens on the provider's profile.
	Connect(ctx context.Context, userID uuid.UUID, req *request.ConnectCalendarRequest) error
}

type calendarService struct {
	repo     *repository.Repository
	calendar CalendarClient
	log      *zap.Logger
}

func NewCalendarService(repo *repository.Repository, calendar CalendarClient, log *zap.Logger) CalendarService {
	return &calendarService{
		repo:     repo,
		calendar: calendar,
		log:      log.With(zap.String("service", "calendar")),
	}
}

func (s *calendarService) Connect(ctx context.Context, userID uuid.UUID, req *request.ConnectCalendarRequest) error {
	if errs := utils.ValidateStruct(req); errs != nil {
		return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	profile, err := s.repo.Profile.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNotFound
	}

	token, err := s.calendar.Exchange(ctx, req.Code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}

	if err := s.repo.Profile.UpdateCalendarTokens(ctx, profile.ID, token.AccessToken, token.RefreshToken, token.Expiry); err != nil {
		return err
	}

	s.log.Info("Calendar connected", zap.String("user_id", userID.String()))
	return nil
}
