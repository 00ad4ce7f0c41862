package repository

import (
	"context"
	"fmt"

	"vivelo/internal/data/entity"
	"vivelo/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}

type notificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewNotificationRepository(db database.PgxIface, log *zap.Logger) NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "notification")),
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, title, message, link, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		notification.ID, notification.UserID, notification.Type,
		notification.Title, notification.Message, notification.Link,
		notification.IsRead, notification.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create notification",
			zap.Error(err),
			zap.String("user_id", notification.UserID.String()),
			zap.String("type", string(notification.Type)),
		)
		return fmt.Errorf("create notification for user %s: %w", notification.UserID.String(), err)
	}

	return nil
}

func (r *notificationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, link, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find notifications",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find notifications for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Link, &n.IsRead, &n.CreatedAt)
		if err != nil {
			r.log.Error("Failed to scan notification row", zap.Error(err))
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		notifications = append(notifications, &n)
	}

	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.log.Error("Failed to mark notification read",
			zap.Error(err),
			zap.String("notification_id", id.String()),
		)
		return fmt.Errorf("mark notification %s read: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("notification %s not found", id.String())
	}

	return nil
}
