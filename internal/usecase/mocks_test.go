package usecase

import (
	"context"
	"time"

	"vivelo/internal/data/entity"
	"vivelo/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v82"
	"golang.org/x/oauth2"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

func (m *mockBookingRepo) CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, providerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

func (m *mockBookingRepo) CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, providerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) MarkCancelled(ctx context.Context, p repository.CancelParams) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) MarkStartVerified(ctx context.Context, id uuid.UUID, usedAt, deadline time.Time) (bool, error) {
	args := m.Called(ctx, id, usedAt, deadline)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) MarkEndVerified(ctx context.Context, id uuid.UUID, usedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, usedAt)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) MarkAutoCompleted(ctx context.Context, id uuid.UUID, completedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, completedAt)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) SetVerificationCodes(ctx context.Context, id uuid.UUID, startCode, endCode string) (bool, error) {
	args := m.Called(ctx, id, startCode, endCode)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) SetCalendarEventID(ctx context.Context, id uuid.UUID, eventID string) error {
	return m.Called(ctx, id, eventID).Error(0)
}

func (m *mockBookingRepo) CountOverlapping(ctx context.Context, providerID uuid.UUID, effectiveStart, effectiveEnd time.Time) (int, error) {
	args := m.Called(ctx, providerID, effectiveStart, effectiveEnd)
	return args.Int(0), args.Error(1)
}

func (m *mockBookingRepo) FindInProgressPastDeadline(ctx context.Context, now time.Time) ([]*entity.Booking, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindConfirmedWithoutCodes(ctx context.Context, eventDate time.Time) ([]*entity.Booking, error) {
	args := m.Called(ctx, eventDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

type mockServiceRepo struct{ mock.Mock }

func (m *mockServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Service), args.Error(1)
}

func (m *mockServiceRepo) FindActive(ctx context.Context, category string, limit, offset int) ([]*entity.Service, error) {
	args := m.Called(ctx, category, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Service), args.Error(1)
}

func (m *mockServiceRepo) CountActive(ctx context.Context, category string) (int64, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(int64), args.Error(1)
}

type mockPolicyRepo struct{ mock.Mock }

func (m *mockPolicyRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.CancellationPolicy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CancellationPolicy), args.Error(1)
}

func (m *mockPolicyRepo) FindDefault(ctx context.Context) (*entity.CancellationPolicy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CancellationPolicy), args.Error(1)
}

type mockProfileRepo struct{ mock.Mock }

func (m *mockProfileRepo) Create(ctx context.Context, profile *entity.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *mockProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *mockProfileRepo) UpdateCalendarTokens(ctx context.Context, id uuid.UUID, accessToken, refreshToken string, expiry time.Time) error {
	return m.Called(ctx, id, accessToken, refreshToken, expiry).Error(0)
}

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *mockPaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *mockPaymentRepo) FindByIntentID(ctx context.Context, paymentIntentID string) (*entity.Payment, error) {
	args := m.Called(ctx, paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *mockPaymentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockPaymentRepo) SetRefundID(ctx context.Context, id uuid.UUID, refundID string) error {
	return m.Called(ctx, id, refundID).Error(0)
}

type mockNotificationRepo struct{ mock.Mock }

func (m *mockNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *mockNotificationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Notification), args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type mockCalendarBlockRepo struct{ mock.Mock }

func (m *mockCalendarBlockRepo) Create(ctx context.Context, block *entity.CalendarBlock) error {
	return m.Called(ctx, block).Error(0)
}

func (m *mockCalendarBlockRepo) AnyOverlapping(ctx context.Context, providerID uuid.UUID, start, end time.Time) (bool, error) {
	args := m.Called(ctx, providerID, start, end)
	return args.Bool(0), args.Error(1)
}

type mockRefundProcessor struct{ mock.Mock }

func (m *mockRefundProcessor) CreateIntent(ctx context.Context, amountMinor int64, bookingID string) (string, error) {
	args := m.Called(ctx, amountMinor, bookingID)
	return args.String(0), args.Error(1)
}

func (m *mockRefundProcessor) CreateRefund(ctx context.Context, paymentIntentID string, amountMinor int64) (string, error) {
	args := m.Called(ctx, paymentIntentID, amountMinor)
	return args.String(0), args.Error(1)
}

func (m *mockRefundProcessor) VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error) {
	args := m.Called(payload, sigHeader)
	return args.Get(0).(stripe.Event), args.Error(1)
}

type mockCalendarClient struct{ mock.Mock }

func (m *mockCalendarClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *mockCalendarClient) InsertEvent(ctx context.Context, token *oauth2.Token, calendarID, summary string, start, end time.Time) (string, error) {
	args := m.Called(ctx, token, calendarID, summary, start, end)
	return args.String(0), args.Error(1)
}

func (m *mockCalendarClient) DeleteEvent(ctx context.Context, token *oauth2.Token, calendarID, eventID string) error {
	return m.Called(ctx, token, calendarID, eventID).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(to, subject, htmlBody string) error {
	return m.Called(to, subject, htmlBody).Error(0)
}
