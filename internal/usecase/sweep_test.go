package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"vivelo/internal/data/entity"
	"vivelo/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sweepFixture struct {
	bookings *mockBookingRepo
	users    *mockUserRepo
	notifs   *mockNotificationRepo
	mail     *mockMailer
	svc      *sweepService
	now      time.Time
}

func newSweepFixture() *sweepFixture {
	f := &sweepFixture{
		bookings: &mockBookingRepo{},
		users:    &mockUserRepo{},
		notifs:   &mockNotificationRepo{},
		mail:     &mockMailer{},
		now:      time.Date(2026, 9, 18, 7, 0, 0, 0, time.UTC),
	}
	f.svc = &sweepService{
		repo: &repository.Repository{
			Booking:      f.bookings,
			User:         f.users,
			Notification: f.notifs,
		},
		mailer: f.mail,
		now:    func() time.Time { return f.now },
		log:    zap.NewNop(),
	}
	return f
}

func overdueBooking() *entity.Booking {
	deadline := time.Date(2026, 9, 16, 18, 0, 0, 0, time.UTC)
	return &entity.Booking{
		Base:            entity.Base{ID: uuid.New()},
		ClientID:        uuid.New(),
		ProviderID:      uuid.New(),
		Status:          entity.BookingStatusInProgress,
		EndCodeDeadline: &deadline,
	}
}

func TestAutoCompleteOverdue(t *testing.T) {
	f := newSweepFixture()
	first := overdueBooking()
	second := overdueBooking()

	f.bookings.On("FindInProgressPastDeadline", mock.Anything, f.now).
		Return([]*entity.Booking{first, second}, nil)
	f.bookings.On("MarkAutoCompleted", mock.Anything, first.ID, f.now).Return(true, nil)
	f.bookings.On("MarkAutoCompleted", mock.Anything, second.ID, f.now).Return(true, nil)
	f.notifs.On("Create", mock.Anything, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.Type == entity.NotificationLeaveReview &&
			(n.UserID == first.ClientID || n.UserID == second.ClientID)
	})).Return(nil).Twice()

	completed, err := f.svc.AutoCompleteOverdue(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, completed)
	f.bookings.AssertExpectations(t)
	// Each auto-completed booking invites the client to review, exactly as
	// a verified completion would.
	f.notifs.AssertExpectations(t)
}

func TestAutoCompleteOverdueIsolatesFailures(t *testing.T) {
	f := newSweepFixture()
	bad := overdueBooking()
	good := overdueBooking()

	f.bookings.On("FindInProgressPastDeadline", mock.Anything, f.now).
		Return([]*entity.Booking{bad, good}, nil)
	f.bookings.On("MarkAutoCompleted", mock.Anything, bad.ID, f.now).
		Return(false, errors.New("deadlock detected"))
	f.bookings.On("MarkAutoCompleted", mock.Anything, good.ID, f.now).Return(true, nil)
	f.notifs.On("Create", mock.Anything, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == good.ClientID
	})).Return(nil).Once()

	completed, err := f.svc.AutoCompleteOverdue(context.Background())

	// One bad row must not fail the sweep or block the others.
	require.NoError(t, err)
	assert.Equal(t, 1, completed)
}

func TestAutoCompleteOverdueSkipsConcurrentlyResolved(t *testing.T) {
	f := newSweepFixture()
	booking := overdueBooking()

	f.bookings.On("FindInProgressPastDeadline", mock.Anything, f.now).
		Return([]*entity.Booking{booking}, nil)
	// Client verified the end code between the scan and the write.
	f.bookings.On("MarkAutoCompleted", mock.Anything, booking.ID, f.now).Return(false, nil)

	completed, err := f.svc.AutoCompleteOverdue(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, completed)
	f.notifs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAutoCompleteOverdueNotificationFailureIsNotFatal(t *testing.T) {
	f := newSweepFixture()
	booking := overdueBooking()

	f.bookings.On("FindInProgressPastDeadline", mock.Anything, f.now).
		Return([]*entity.Booking{booking}, nil)
	f.bookings.On("MarkAutoCompleted", mock.Anything, booking.ID, f.now).Return(true, nil)
	f.notifs.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	completed, err := f.svc.AutoCompleteOverdue(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, completed)
}

func TestGenerateDailyCodes(t *testing.T) {
	f := newSweepFixture()
	booking := overdueBooking()
	booking.Status = entity.BookingStatusConfirmed
	booking.EventDate = f.now.Truncate(24 * time.Hour)

	client := &entity.User{BaseNoDelete: entity.BaseNoDelete{ID: booking.ClientID}, Email: "client@example.com"}
	provider := &entity.User{BaseNoDelete: entity.BaseNoDelete{ID: booking.ProviderID}, Email: "provider@example.com"}

	var startCode, endCode string
	f.bookings.On("FindConfirmedWithoutCodes", mock.Anything, booking.EventDate).
		Return([]*entity.Booking{booking}, nil)
	f.bookings.On("SetVerificationCodes", mock.Anything, booking.ID,
		mock.MatchedBy(func(code string) bool { startCode = code; return len(code) == 6 }),
		mock.MatchedBy(func(code string) bool { endCode = code; return len(code) == 6 }),
	).Return(true, nil)
	f.users.On("FindByID", mock.Anything, booking.ClientID).Return(client, nil)
	f.users.On("FindByID", mock.Anything, booking.ProviderID).Return(provider, nil)
	f.mail.On("Send", "client@example.com", mock.Anything, mock.MatchedBy(func(body string) bool {
		return startCode != "" && strings.Contains(body, startCode)
	})).Return(nil)
	f.mail.On("Send", "provider@example.com", mock.Anything, mock.MatchedBy(func(body string) bool {
		return endCode != "" && strings.Contains(body, endCode)
	})).Return(nil)

	generated, err := f.svc.GenerateDailyCodes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, generated)
	f.mail.AssertExpectations(t)
}

func TestGenerateDailyCodesIdempotent(t *testing.T) {
	f := newSweepFixture()
	booking := overdueBooking()
	booking.Status = entity.BookingStatusConfirmed

	f.bookings.On("FindConfirmedWithoutCodes", mock.Anything, mock.Anything).
		Return([]*entity.Booking{booking}, nil)
	// Another run already claimed this booking.
	f.bookings.On("SetVerificationCodes", mock.Anything, booking.ID, mock.Anything, mock.Anything).
		Return(false, nil)

	generated, err := f.svc.GenerateDailyCodes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, generated)
	f.mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateDailyCodesMailFailureIsNotFatal(t *testing.T) {
	f := newSweepFixture()
	booking := overdueBooking()
	booking.Status = entity.BookingStatusConfirmed

	f.bookings.On("FindConfirmedWithoutCodes", mock.Anything, mock.Anything).
		Return([]*entity.Booking{booking}, nil)
	f.bookings.On("SetVerificationCodes", mock.Anything, booking.ID, mock.Anything, mock.Anything).
		Return(true, nil)
	f.users.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	generated, err := f.svc.GenerateDailyCodes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, generated)
}
