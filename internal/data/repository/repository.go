package repository

import (
	"vivelo/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User          UserRepository
	Session       SessionRepository
	Profile       ProfileRepository
	Service       ServiceRepository
	Policy        CancellationPolicyRepository
	Booking       BookingRepository
	CalendarBlock CalendarBlockRepository
	Notification  NotificationRepository
	Payment       PaymentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		Session:       NewSessionRepository(db, log),
		Profile:       NewProfileRepository(db, log),
		Service:       NewServiceRepository(db, log),
		Policy:        NewCancellationPolicyRepository(db, log),
		Booking:       NewBookingRepository(db, log),
		CalendarBlock: NewCalendarBlockRepository(db, log),
		Notification:  NewNotificationRepository(db, log),
		Payment:       NewPaymentRepository(db, log),
	}
}
