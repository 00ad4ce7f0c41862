package repository

import (
	"context"
	"fmt"
	"time"

	"vivelo/internal/data/entity"
	"vivelo/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	UpdateCalendarTokens(ctx context.Context, id uuid.UUID, accessToken, refreshToken string, expiry time.Time) error
}

type profileRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProfileRepository(db database.PgxIface, log *zap.Logger) ProfileRepository {
	return &profileRepository{
		db:  db,
		log: log.With(zap.String("repository", "profile")),
	}
}

const profileColumns = `id, user_id, display_name, phone, city,
	apply_buffers_to_all, global_buffer_before_minutes, global_buffer_after_minutes,
	max_concurrent_services,
	google_access_token, google_refresh_token, google_token_expiry, google_calendar_id,
	created_at, updated_at`

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	var p entity.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.DisplayName, &p.Phone, &p.City,
		&p.ApplyBuffersToAll, &p.GlobalBufferBeforeMinutes, &p.GlobalBufferAfterMinutes,
		&p.MaxConcurrentServices,
		&p.GoogleAccessToken, &p.GoogleRefreshToken, &p.GoogleTokenExpiry, &p.GoogleCalendarID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, user_id, display_name, phone, city,
			apply_buffers_to_all, global_buffer_before_minutes, global_buffer_after_minutes,
			max_concurrent_services, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		profile.ID, profile.UserID, profile.DisplayName, profile.Phone, profile.City,
		profile.ApplyBuffersToAll, profile.GlobalBufferBeforeMinutes, profile.GlobalBufferAfterMinutes,
		profile.MaxConcurrentServices, profile.CreatedAt, profile.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create profile",
			zap.Error(err),
			zap.String("user_id", profile.UserID.String()),
		)
		return fmt.Errorf("create profile for user %s: %w", profile.UserID.String(), err)
	}

	return nil
}

func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1 AND deleted_at IS NULL`

	profile, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find profile by ID",
			zap.Error(err),
			zap.String("profile_id", id.String()),
		)
		return nil, fmt.Errorf("find profile by ID %s: %w", id.String(), err)
	}

	return profile, nil
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1 AND deleted_at IS NULL`

	profile, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find profile by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find profile by user ID %s: %w", userID.String(), err)
	}

	return profile, nil
}

func (r *profileRepository) UpdateCalendarTokens(ctx context.Context, id uuid.UUID, accessToken, refreshToken string, expiry time.Time) error {
	query := `
		UPDATE profiles
		SET google_access_token = $2, google_refresh_token = $3,
		    google_token_expiry = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, accessToken, refreshToken, expiry)
	if err != nil {
		r.log.Error("Failed to update calendar tokens",
			zap.Error(err),
			zap.String("profile_id", id.String()),
		)
		return fmt.Errorf("update calendar tokens for profile %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile %s not found", id.String())
	}

	return nil
}
