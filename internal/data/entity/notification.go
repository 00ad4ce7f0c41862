package entity

import (
	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationBookingCreated   NotificationType = "booking_created"
	NotificationBookingConfirmed NotificationType = "booking_confirmed"
	NotificationBookingCancelled NotificationType = "booking_cancelled"
	NotificationLeaveReview      NotificationType = "leave_review"
)

type Notification struct {
	BaseSimple
	UserID  uuid.UUID        `db:"user_id"`
	Type    NotificationType `db:"type"`
	Title   string           `db:"title"`
	Message string           `db:"message"`
	Link    *string          `db:"link"`
	IsRead  bool             `db:"is_read"`
}
