package usecase

import (
	"context"

	"vivelo/internal/data/repository"
	"vivelo/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, page, limit int) (*response.PaginatedResponse, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
}

type notificationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewNotificationService(repo *repository.Repository, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		log:  log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, page, limit int) (*response.PaginatedResponse, error) {
	offset := (page - 1) * limit

	notifications, err := s.repo.Notification.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	return &response.PaginatedResponse{
		Items: response.ToNotificationResponses(notifications),
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if err := s.repo.Notification.MarkRead(ctx, notificationID, userID); err != nil {
		return ErrNotFound
	}
	return nil
}
