package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInReview   BookingStatus = "in_review"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusRejected   BookingStatus = "rejected"
)

// IsTerminal reports whether no further transition is possible from s.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled || s == BookingStatusRejected
}

type Booking struct {
	Base
	ServiceID  uuid.UUID `db:"service_id"`
	ClientID   uuid.UUID `db:"client_id"`
	ProviderID uuid.UUID `db:"provider_id"`

	// Civil event timing as entered by the client.
	EventDate time.Time `db:"event_date"` // date only, midnight UTC
	StartTime string    `db:"start_time"` // "15:04"
	EndTime   string    `db:"end_time"`

	// Absolute instants derived at creation. The effective window is the
	// event window padded outward by the resolved buffers and is used only
	// for conflict detection.
	StartDatetime  time.Time `db:"start_datetime"`
	EndDatetime    time.Time `db:"end_datetime"`
	EffectiveStart time.Time `db:"effective_start"`
	EffectiveEnd   time.Time `db:"effective_end"`

	GuestCount int `db:"guest_count"`

	// total = base_total + extras_total + commission, 2 decimal places.
	BaseTotal   decimal.Decimal `db:"base_total"`
	ExtrasTotal decimal.Decimal `db:"extras_total"`
	Commission  decimal.Decimal `db:"commission"`
	Total       decimal.Decimal `db:"total"`

	Status BookingStatus `db:"status"`

	// Event verification codes. Single-use: once *_used_at is set the code
	// is no longer accepted.
	StartCode       *string    `db:"start_code"`
	EndCode         *string    `db:"end_code"`
	StartCodeUsedAt *time.Time `db:"start_code_used_at"`
	EndCodeUsedAt   *time.Time `db:"end_code_used_at"`
	EndCodeDeadline *time.Time `db:"end_code_deadline"`
	AutoCompleted   bool       `db:"auto_completed"`

	CancelledAt   *time.Time      `db:"cancelled_at"`
	CancelledBy   *uuid.UUID      `db:"cancelled_by"`
	RefundAmount  decimal.Decimal `db:"refund_amount"`
	RefundPercent RefundPercent   `db:"refund_percent"`
	// PolicySnapshot holds the cancellation rules applied at cancellation
	// time as JSON. Written once, never mutated afterwards.
	PolicySnapshot []byte `db:"cancellation_policy_snapshot"`

	PaymentIntentID *string `db:"payment_intent_id"`
	CalendarEventID *string `db:"calendar_event_id"`
}
