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

type CancellationPolicyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CancellationPolicy, error)
	FindDefault(ctx context.Context) (*entity.CancellationPolicy, error)
}

type cancellationPolicyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCancellationPolicyRepository(db database.PgxIface, log *zap.Logger) CancellationPolicyRepository {
	return &cancellationPolicyRepository{
		db:  db,
		log: log.With(zap.String("repository", "cancellation_policy")),
	}
}

func (r *cancellationPolicyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CancellationPolicy, error) {
	query := `SELECT id, name, is_default, created_at, updated_at
		FROM cancellation_policies WHERE id = $1`

	var policy entity.CancellationPolicy
	err := r.db.QueryRow(ctx, query, id).Scan(
		&policy.ID, &policy.Name, &policy.IsDefault, &policy.CreatedAt, &policy.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cancellation policy",
			zap.Error(err),
			zap.String("policy_id", id.String()),
		)
		return nil, fmt.Errorf("find cancellation policy %s: %w", id.String(), err)
	}

	if err := r.loadRules(ctx, &policy); err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *cancellationPolicyRepository) FindDefault(ctx context.Context) (*entity.CancellationPolicy, error) {
	query := `SELECT id, name, is_default, created_at, updated_at
		FROM cancellation_policies WHERE is_default = true LIMIT 1`

	var policy entity.CancellationPolicy
	err := r.db.QueryRow(ctx, query).Scan(
		&policy.ID, &policy.Name, &policy.IsDefault, &policy.CreatedAt, &policy.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find default cancellation policy", zap.Error(err))
		return nil, fmt.Errorf("find default cancellation policy: %w", err)
	}

	if err := r.loadRules(ctx, &policy); err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *cancellationPolicyRepository) loadRules(ctx context.Context, policy *entity.CancellationPolicy) error {
	query := `SELECT min_hours, max_hours, refund_percent
		FROM cancellation_rules
		WHERE policy_id = $1
		ORDER BY min_hours DESC`

	rows, err := r.db.Query(ctx, query, policy.ID)
	if err != nil {
		r.log.Error("Failed to load cancellation rules",
			zap.Error(err),
			zap.String("policy_id", policy.ID.String()),
		)
		return fmt.Errorf("load rules for policy %s: %w", policy.ID.String(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var rule entity.CancellationRule
		if err := rows.Scan(&rule.MinHours, &rule.MaxHours, &rule.RefundPercent); err != nil {
			return fmt.Errorf("scan cancellation rule: %w", err)
		}
		policy.Rules = append(policy.Rules, rule)
	}

	return nil
}
