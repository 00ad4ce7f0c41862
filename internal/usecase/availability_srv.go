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

type AvailabilityService interface {
	Check(ctx context.Context, query *request.AvailabilityQuery) (*response.AvailabilityResponse, error)

	// ResolveWindow computes the buffer-padded window for a booking request
	// against a concrete service and its provider profile.
	ResolveWindow(ctx context.Context, service *entity.Service, eventDate time.Time, startTime, endTime string) (EventWindow, *entity.Profile, error)

	// WindowConflict checks the resolved window against calendar blocks and
	// the provider's concurrency cap. An empty reason means the window is
	// free.
	WindowConflict(ctx context.Context, providerID uuid.UUID, profile *entity.Profile, window EventWindow) (string, error)
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) Check(ctx context.Context, query *request.AvailabilityQuery) (*response.AvailabilityResponse, error) {
	if errs := utils.ValidateStruct(query); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	serviceID, err := utils.ParseUUID(query.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid service ID", ErrValidation)
	}

	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service == nil || !service.IsActive {
		return nil, ErrNotFound
	}

	eventDate, err := time.Parse("2006-01-02", query.EventDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event date", ErrValidation)
	}

	window, profile, err := s.ResolveWindow(ctx, service, eventDate, query.StartTime, query.EndTime)
	if err != nil {
		return nil, err
	}

	reason, err := s.WindowConflict(ctx, service.ProviderID, profile, window)
	if err != nil {
		return nil, err
	}

	return &response.AvailabilityResponse{
		Available:      reason == "",
		Reason:         reason,
		EffectiveStart: window.EffectiveStart,
		EffectiveEnd:   window.EffectiveEnd,
	}, nil
}

func (s *availabilityService) ResolveWindow(ctx context.Context, service *entity.Service, eventDate time.Time, startTime, endTime string) (EventWindow, *entity.Profile, error) {
	profile, err := s.repo.Profile.FindByID(ctx, service.ProviderID)
	if err != nil {
		return EventWindow{}, nil, err
	}

	buffers := ResolveBuffers(service, profile)
	window, err := ResolveServiceWindow(service, eventDate, startTime, endTime, buffers)
	if err != nil {
		return EventWindow{}, nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return window, profile, nil
}

func (s *availabilityService) WindowConflict(ctx context.Context, providerID uuid.UUID, profile *entity.Profile, window EventWindow) (string, error) {
	blocked, err := s.repo.CalendarBlock.AnyOverlapping(ctx, providerID, window.EffectiveStart, window.EffectiveEnd)
	if err != nil {
		return "", err
	}
	if blocked {
		return "provider calendar is blocked for this window", nil
	}

	overlapping, err := s.repo.Booking.CountOverlapping(ctx, providerID, window.EffectiveStart, window.EffectiveEnd)
	if err != nil {
		return "", err
	}

	maxConcurrent := 1
	if profile != nil && profile.MaxConcurrentServices > 0 {
		maxConcurrent = profile.MaxConcurrentServices
	}
	if overlapping >= maxConcurrent {
		return "provider has reached the concurrent booking limit for this window", nil
	}

	return "", nil
}
