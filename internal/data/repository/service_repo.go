package repository

import (
	"context"
	"fmt"

	"vivelo/internal/data/entity"
	"vivelo/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	FindActive(ctx context.Context, category string, limit, offset int) ([]*entity.Service, error)
	CountActive(ctx context.Context, category string) (int64, error)
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

const serviceColumns = `id, provider_id, name, category, description,
	base_price, price_unit, base_event_hours,
	buffer_before_minutes, buffer_before_days, buffer_after_minutes, buffer_after_days,
	cancellation_policy_id, is_active, created_at, updated_at`

func scanService(row pgx.Row) (*entity.Service, error) {
	var s entity.Service
	err := row.Scan(
		&s.ID, &s.ProviderID, &s.Name, &s.Category, &s.Description,
		&s.BasePrice, &s.PriceUnit, &s.BaseEventHours,
		&s.BufferBeforeMinutes, &s.BufferBeforeDays, &s.BufferAfterMinutes, &s.BufferAfterDays,
		&s.CancellationPolicyID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1 AND deleted_at IS NULL`

	service, err := scanService(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("find service by ID %s: %w", id.String(), err)
	}

	return service, nil
}

func (r *serviceRepository) FindActive(ctx context.Context, category string, limit, offset int) ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + `
		FROM services
		WHERE is_active = true AND deleted_at IS NULL
		  AND ($1 = '' OR category = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, category, limit, offset)
	if err != nil {
		r.log.Error("Failed to find active services",
			zap.Error(err),
			zap.String("category", category),
		)
		return nil, fmt.Errorf("find active services: %w", err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, service)
	}

	return services, nil
}

func (r *serviceRepository) CountActive(ctx context.Context, category string) (int64, error) {
	query := `SELECT COUNT(*) FROM services
		WHERE is_active = true AND deleted_at IS NULL
		  AND ($1 = '' OR category = $1)`

	var count int64
	err := r.db.QueryRow(ctx, query, category).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active services: %w", err)
	}
	return count, nil
}
