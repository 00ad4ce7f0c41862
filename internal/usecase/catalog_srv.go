package usecase

import (
	"context"

	"vivelo/internal/data/repository"
	"vivelo/internal/dto/response"
	"vivelo/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	ListServices(ctx context.Context, category string, page, limit int) (*response.PaginatedResponse, error)
	GetService(ctx context.Context, id uuid.UUID) (*response.ServiceResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListServices(ctx context.Context, category string, page, limit int) (*response.PaginatedResponse, error) {
	offset := utils.CalculateOffset(page, limit)

	services, err := s.repo.Service.FindActive(ctx, category, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Service.CountActive(ctx, category)
	if err != nil {
		return nil, err
	}

	return &response.PaginatedResponse{
		Items:      response.ToServiceResponses(services),
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: utils.CalculateTotalPages(total, limit),
	}, nil
}

func (s *catalogService) GetService(ctx context.Context, id uuid.UUID) (*response.ServiceResponse, error) {
	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, ErrNotFound
	}
	return response.ToServiceResponse(service), nil
}
