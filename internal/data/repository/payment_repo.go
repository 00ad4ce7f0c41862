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

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)
	FindByIntentID(ctx context.Context, paymentIntentID string) (*entity.Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error
	SetRefundID(ctx context.Context, id uuid.UUID, refundID string) error
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, booking_id, payment_intent_id, amount, currency, status, refund_id, created_at, updated_at`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(
		&p.ID, &p.BookingID, &p.PaymentIntentID, &p.Amount, &p.Currency,
		&p.Status, &p.RefundID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, payment_intent_id, amount, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID, payment.BookingID, payment.PaymentIntentID,
		payment.Amount, payment.Currency, payment.Status,
		payment.CreatedAt, payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
		)
		return fmt.Errorf("create payment for booking %s: %w", payment.BookingID.String(), err)
	}

	return nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 ORDER BY created_at DESC LIMIT 1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, bookingID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payment by booking ID %s: %w", bookingID.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByIntentID(ctx context.Context, paymentIntentID string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_intent_id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, paymentIntentID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by intent ID",
			zap.Error(err),
			zap.String("payment_intent_id", paymentIntentID),
		)
		return nil, fmt.Errorf("find payment by intent ID %s: %w", paymentIntentID, err)
	}

	return payment, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	query := `UPDATE payments SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update payment status",
			zap.Error(err),
			zap.String("payment_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update payment %s status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s not found", id.String())
	}

	return nil
}

func (r *paymentRepository) SetRefundID(ctx context.Context, id uuid.UUID, refundID string) error {
	query := `UPDATE payments SET refund_id = $2, status = 'refunded', updated_at = NOW() WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, refundID)
	if err != nil {
		r.log.Error("Failed to set refund ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return fmt.Errorf("set refund ID for payment %s: %w", id.String(), err)
	}

	return nil
}
