package usecase

import (
	"context"
	"testing"
	"time"

	"vivelo/internal/data/entity"
	"vivelo/internal/data/repository"
	"vivelo/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type verificationFixture struct {
	bookings *mockBookingRepo
	notifs   *mockNotificationRepo
	svc      *verificationService
	now      time.Time
}

func newVerificationFixture() *verificationFixture {
	f := &verificationFixture{
		bookings: &mockBookingRepo{},
		notifs:   &mockNotificationRepo{},
		now:      time.Date(2026, 9, 18, 18, 30, 0, 0, time.UTC), // Friday evening
	}
	f.svc = &verificationService{
		repo: &repository.Repository{
			Booking:      f.bookings,
			Notification: f.notifs,
		},
		now: func() time.Time { return f.now },
		log: zap.NewNop(),
	}
	return f
}

func verifiableBooking(status entity.BookingStatus) *entity.Booking {
	startCode := "482913"
	endCode := "750264"
	return &entity.Booking{
		Base:          entity.Base{ID: uuid.New()},
		ClientID:      uuid.New(),
		ProviderID:    uuid.New(),
		EventDate:     time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		StartDatetime: time.Date(2026, 9, 18, 18, 0, 0, 0, time.UTC),
		Status:        status,
		StartCode:     &startCode,
		EndCode:       &endCode,
	}
}

func TestVerifyStart(t *testing.T) {
	f := newVerificationFixture()
	booking := verifiableBooking(entity.BookingStatusConfirmed)

	// Friday event date + 3 business days lands on Wednesday. The deadline
	// counts from the civil date, not from the 18:00 start instant.
	wantDeadline := time.Date(2026, 9, 23, 0, 0, 0, 0, time.UTC)

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	f.bookings.On("MarkStartVerified", mock.Anything, booking.ID, f.now, wantDeadline).Return(true, nil)

	resp, err := f.svc.VerifyStart(context.Background(), booking.ProviderID, entity.RoleProvider,
		booking.ID, &request.VerifyCodeRequest{Code: "482913"})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "in_progress", resp.NewStatus)
	f.bookings.AssertExpectations(t)
}

func TestVerifyStartWrongCode(t *testing.T) {
	f := newVerificationFixture()
	booking := verifiableBooking(entity.BookingStatusConfirmed)

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

	_, err := f.svc.VerifyStart(context.Background(), booking.ProviderID, entity.RoleProvider,
		booking.ID, &request.VerifyCodeRequest{Code: "000000"})

	assert.ErrorIs(t, err, ErrCodeMismatch)
	f.bookings.AssertNotCalled(t, "MarkStartVerified", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyStartCodesNotReady(t *testing.T) {
	f := newVerificationFixture()
	booking := verifiableBooking(entity.BookingStatusConfirmed)
	booking.StartCode = nil

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

	_, err := f.svc.VerifyStart(context.Background(), booking.ProviderID, entity.RoleProvider,
		booking.ID, &request.VerifyCodeRequest{Code: "482913"})

	assert.ErrorIs(t, err, ErrCodesNotReady)
}

func TestVerifyStartWrongStatus(t *testing.T) {
	f := newVerificationFixture()
	booking := verifiableBooking(entity.BookingStatusPending)

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

	_, err := f.svc.VerifyStart(context.Background(), booking.ProviderID, entity.RoleProvider,
		booking.ID, &request.VerifyCodeRequest{Code: "482913"})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestVerifyStartClientForbidden(t *testing.T) {
	f := newVerificationFixture()
	booking := verifiableBooking(entity.BookingStatusConfirmed)

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

	// The client holds the start code but cannot redeem it themselves.
	_, err := f.svc.VerifyStart(context.Background(), booking.ClientID, entity.RoleClient,
		booking.ID, &request.VerifyCodeRequest{Code: "482913"})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestVerifyStartAdminAllowed(t *testing.T) {
	f := newVerificationFixture()
	booking := verifiableBooking(entity.BookingStatusConfirmed)

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	f.bookings.On("MarkStartVerified", mock.Anything, booking.ID, mock.Anything, mock.Anything).Return(true, nil)

	resp, err := f.svc.VerifyStart(context.Background(), uuid.New(), entity.RoleAdmin,
		booking.ID, &request.VerifyCodeRequest{Code: "482913"})

	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestVerifyStartSingleUse(t *testing.T) {
	f := newVerificationFixture()
	booking := verifiableBooking(entity.BookingStatusConfirmed)

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	// The conditional write finds start_code_used_at already set.
	f.bookings.On("MarkStartVerified", mock.Anything, booking.ID, mock.Anything, mock.Anything).Return(false, nil)

	_, err := f.svc.VerifyStart(context.Background(), booking.ProviderID, entity.RoleProvider,
		booking.ID, &request.VerifyCodeRequest{Code: "482913"})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestVerifyEnd(t *testing.T) {
	f := newVerificationFixture()
	booking := verifiableBooking(entity.BookingStatusInProgress)

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	f.bookings.On("MarkEndVerified", mock.Anything, booking.ID, f.now).Return(true, nil)
	f.notifs.On("Create", mock.Anything, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.Type == entity.NotificationLeaveReview && n.UserID == booking.ClientID
	})).Return(nil)

	resp, err := f.svc.VerifyEnd(context.Background(), booking.ClientID, entity.RoleClient,
		booking.ID, &request.VerifyCodeRequest{Code: "750264"})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "completed", resp.NewStatus)
	f.notifs.AssertExpectations(t)
}

func TestVerifyEndProviderForbidden(t *testing.T) {
	f := newVerificationFixture()
	booking := verifiableBooking(entity.BookingStatusInProgress)

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

	_, err := f.svc.VerifyEnd(context.Background(), booking.ProviderID, entity.RoleProvider,
		booking.ID, &request.VerifyCodeRequest{Code: "750264"})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestVerifyEndRequiresInProgress(t *testing.T) {
	f := newVerificationFixture()
	booking := verifiableBooking(entity.BookingStatusConfirmed)

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

	_, err := f.svc.VerifyEnd(context.Background(), booking.ClientID, entity.RoleClient,
		booking.ID, &request.VerifyCodeRequest{Code: "750264"})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}
