package repository

import (
	"context"
	"fmt"
	"time"

	"vivelo/internal/data/entity"
	"vivelo/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error)
	FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error)

	// Guarded status writes. Each issues a conditional UPDATE and reports
	// whether a row was actually updated; false means a concurrent writer
	// got there first (or the precondition no longer holds).
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error)
	MarkCancelled(ctx context.Context, p CancelParams) (bool, error)
	MarkStartVerified(ctx context.Context, id uuid.UUID, usedAt time.Time, deadline time.Time) (bool, error)
	MarkEndVerified(ctx context.Context, id uuid.UUID, usedAt time.Time) (bool, error)
	MarkAutoCompleted(ctx context.Context, id uuid.UUID, completedAt time.Time) (bool, error)
	SetVerificationCodes(ctx context.Context, id uuid.UUID, startCode, endCode string) (bool, error)
	SetCalendarEventID(ctx context.Context, id uuid.UUID, eventID string) error

	// Availability / sweep queries
	CountOverlapping(ctx context.Context, providerID uuid.UUID, effectiveStart, effectiveEnd time.Time) (int, error)
	FindInProgressPastDeadline(ctx context.Context, now time.Time) ([]*entity.Booking, error)
	FindConfirmedWithoutCodes(ctx context.Context, eventDate time.Time) ([]*entity.Booking, error)
}

// CancelParams carries the field set written by the cancellation
// orchestrator. Snapshot is only persisted when the booking does not
// already carry one (write-once, enforced with COALESCE).
type CancelParams struct {
	ID            uuid.UUID
	CancelledBy   uuid.UUID
	CancelledAt   time.Time
	RefundAmount  decimal.Decimal
	RefundPercent entity.RefundPercent
	Snapshot      []byte
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, service_id, client_id, provider_id,
	event_date, start_time, end_time,
	start_datetime, end_datetime, effective_start, effective_end,
	guest_count, base_total, extras_total, commission, total, status,
	start_code, end_code, start_code_used_at, end_code_used_at,
	end_code_deadline, auto_completed,
	cancelled_at, cancelled_by, refund_amount, refund_percent,
	cancellation_policy_snapshot, payment_intent_id, calendar_event_id,
	created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID, &b.ServiceID, &b.ClientID, &b.ProviderID,
		&b.EventDate, &b.StartTime, &b.EndTime,
		&b.StartDatetime, &b.EndDatetime, &b.EffectiveStart, &b.EffectiveEnd,
		&b.GuestCount, &b.BaseTotal, &b.ExtrasTotal, &b.Commission, &b.Total, &b.Status,
		&b.StartCode, &b.EndCode, &b.StartCodeUsedAt, &b.EndCodeUsedAt,
		&b.EndCodeDeadline, &b.AutoCompleted,
		&b.CancelledAt, &b.CancelledBy, &b.RefundAmount, &b.RefundPercent,
		&b.PolicySnapshot, &b.PaymentIntentID, &b.CalendarEventID,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, service_id, client_id, provider_id,
			event_date, start_time, end_time,
			start_datetime, end_datetime, effective_start, effective_end,
			guest_count, base_total, extras_total, commission, total, status,
			payment_intent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ServiceID,
		booking.ClientID,
		booking.ProviderID,
		booking.EventDate,
		booking.StartTime,
		booking.EndTime,
		booking.StartDatetime,
		booking.EndDatetime,
		booking.EffectiveStart,
		booking.EffectiveEnd,
		booking.GuestCount,
		booking.BaseTotal,
		booking.ExtrasTotal,
		booking.Commission,
		booking.Total,
		booking.Status,
		booking.PaymentIntentID,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("client_id", booking.ClientID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) FindByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	bookings, err := r.findMany(ctx, query, clientID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by client ID",
			zap.Error(err),
			zap.String("client_id", clientID.String()),
		)
		return nil, fmt.Errorf("find bookings by client ID %s: %w", clientID.String(), err)
	}
	return bookings, nil
}

func (r *bookingRepository) CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE client_id = $1`, clientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bookings by client ID %s: %w", clientID.String(), err)
	}
	return count, nil
}

func (r *bookingRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE provider_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	bookings, err := r.findMany(ctx, query, providerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by provider ID",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return nil, fmt.Errorf("find bookings by provider ID %s: %w", providerID.String(), err)
	}
	return bookings, nil
}

func (r *bookingRepository) CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE provider_id = $1`, providerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bookings by provider ID %s: %w", providerID.String(), err)
	}
	return count, nil
}

func (r *bookingRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error) {
	query := `UPDATE bookings SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`

	result, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update booking %s status %s -> %s: %w", id.String(), from, to, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) MarkCancelled(ctx context.Context, p CancelParams) (bool, error) {
	// COALESCE keeps an existing snapshot untouched: once written it is
	// immutable.
	query := `
		UPDATE bookings
		SET status = 'cancelled',
		    cancelled_at = $2,
		    cancelled_by = $3,
		    refund_amount = $4,
		    refund_percent = $5,
		    cancellation_policy_snapshot = COALESCE(cancellation_policy_snapshot, $6),
		    updated_at = NOW()
		WHERE id = $1 AND status NOT IN ('cancelled', 'completed')
	`

	result, err := r.db.Exec(ctx, query,
		p.ID, p.CancelledAt, p.CancelledBy, p.RefundAmount, p.RefundPercent, p.Snapshot,
	)
	if err != nil {
		r.log.Error("Failed to mark booking cancelled",
			zap.Error(err),
			zap.String("booking_id", p.ID.String()),
		)
		return false, fmt.Errorf("mark booking %s cancelled: %w", p.ID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) MarkStartVerified(ctx context.Context, id uuid.UUID, usedAt time.Time, deadline time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'in_progress',
		    start_code_used_at = $2,
		    end_code_deadline = $3,
		    updated_at = NOW()
		WHERE id = $1 AND status = 'confirmed' AND start_code_used_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, usedAt, deadline)
	if err != nil {
		r.log.Error("Failed to mark start code verified",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("mark start verified for booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) MarkEndVerified(ctx context.Context, id uuid.UUID, usedAt time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'completed',
		    end_code_used_at = $2,
		    updated_at = NOW()
		WHERE id = $1 AND status = 'in_progress' AND end_code_used_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, usedAt)
	if err != nil {
		r.log.Error("Failed to mark end code verified",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("mark end verified for booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) MarkAutoCompleted(ctx context.Context, id uuid.UUID, completedAt time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'completed',
		    auto_completed = true,
		    updated_at = $2
		WHERE id = $1 AND status = 'in_progress'
	`

	result, err := r.db.Exec(ctx, query, id, completedAt)
	if err != nil {
		r.log.Error("Failed to auto-complete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("auto-complete booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) SetVerificationCodes(ctx context.Context, id uuid.UUID, startCode, endCode string) (bool, error) {
	// Only rows without codes are targeted, which makes the daily sweep
	// idempotent per booking.
	query := `
		UPDATE bookings
		SET start_code = $2, end_code = $3, updated_at = NOW()
		WHERE id = $1 AND start_code IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, startCode, endCode)
	if err != nil {
		r.log.Error("Failed to set verification codes",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("set verification codes for booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) SetCalendarEventID(ctx context.Context, id uuid.UUID, eventID string) error {
	query := `UPDATE bookings SET calendar_event_id = $2, updated_at = NOW() WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, eventID)
	if err != nil {
		r.log.Error("Failed to set calendar event ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("set calendar event ID for booking %s: %w", id.String(), err)
	}
	return nil
}

func (r *bookingRepository) CountOverlapping(ctx context.Context, providerID uuid.UUID, effectiveStart, effectiveEnd time.Time) (int, error) {
	// Half-open interval intersection over effective windows. Cancelled,
	// rejected and completed bookings no longer occupy the provider.
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE provider_id = $1
		  AND status IN ('pending', 'confirmed', 'in_review', 'in_progress')
		  AND effective_start < $3
		  AND effective_end > $2
	`

	var count int
	err := r.db.QueryRow(ctx, query, providerID, effectiveStart, effectiveEnd).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count overlapping bookings",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return 0, fmt.Errorf("count overlapping bookings for provider %s: %w", providerID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindInProgressPastDeadline(ctx context.Context, now time.Time) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'in_progress' AND end_code_deadline < $1
		ORDER BY end_code_deadline`

	bookings, err := r.findMany(ctx, query, now)
	if err != nil {
		r.log.Error("Failed to find overdue in-progress bookings", zap.Error(err))
		return nil, fmt.Errorf("find overdue in-progress bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) FindConfirmedWithoutCodes(ctx context.Context, eventDate time.Time) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'confirmed' AND event_date = $1 AND start_code IS NULL
		ORDER BY start_datetime`

	bookings, err := r.findMany(ctx, query, eventDate)
	if err != nil {
		r.log.Error("Failed to find bookings needing codes",
			zap.Error(err),
			zap.Time("event_date", eventDate),
		)
		return nil, fmt.Errorf("find bookings needing codes: %w", err)
	}
	return bookings, nil
}
