package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	Base
	BookingID       uuid.UUID       `db:"booking_id"`
	PaymentIntentID string          `db:"payment_intent_id"`
	Amount          decimal.Decimal `db:"amount"`
	Currency        string          `db:"currency"`
	Status          PaymentStatus   `db:"status"`
	RefundID        *string         `db:"refund_id"`
}
