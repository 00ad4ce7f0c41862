package repository

import (
	"context"
	"fmt"
	"time"

	"vivelo/internal/data/entity"
	"vivelo/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CalendarBlockRepository interface {
	Create(ctx context.Context, block *entity.CalendarBlock) error
	// AnyOverlapping reports whether any block intersects the half-open
	// window [start, end). Blocks are hard exclusions.
	AnyOverlapping(ctx context.Context, providerID uuid.UUID, start, end time.Time) (bool, error)
}

type calendarBlockRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCalendarBlockRepository(db database.PgxIface, log *zap.Logger) CalendarBlockRepository {
	return &calendarBlockRepository{
		db:  db,
		log: log.With(zap.String("repository", "calendar_block")),
	}
}

func (r *calendarBlockRepository) Create(ctx context.Context, block *entity.CalendarBlock) error {
	query := `
		INSERT INTO calendar_blocks (id, provider_id, starts_at, ends_at, source, external_event_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		block.ID, block.ProviderID, block.StartsAt, block.EndsAt,
		block.Source, block.ExternalEventID, block.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create calendar block",
			zap.Error(err),
			zap.String("provider_id", block.ProviderID.String()),
		)
		return fmt.Errorf("create calendar block: %w", err)
	}

	return nil
}

func (r *calendarBlockRepository) AnyOverlapping(ctx context.Context, providerID uuid.UUID, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM calendar_blocks
			WHERE provider_id = $1 AND starts_at < $3 AND ends_at > $2
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, providerID, start, end).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check calendar blocks",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return false, fmt.Errorf("check calendar blocks for provider %s: %w", providerID.String(), err)
	}

	return exists, nil
}
