package usecase

import (
	"context"
	"fmt"
	"time"

	"vivelo/internal/data/entity"
	"vivelo/internal/data/repository"
	"vivelo/internal/dto/request"
	"vivelo/internal/dto/response"
	"vivelo/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

type BookingService interface {
	Create(ctx context.Context, clientID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	ListForUser(ctx context.Context, userID uuid.UUID, role entity.UserRole, page, limit int) (*response.PaginatedResponse, error)
	Get(ctx context.Context, userID uuid.UUID, role entity.UserRole, id uuid.UUID) (*response.BookingResponse, error)
	UpdateStatus(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID, newStatus entity.BookingStatus) (*response.BookingResponse, error)
}

type bookingService struct {
	repo           *repository.Repository
	availability   AvailabilityService
	payments       RefundProcessor
	calendar       CalendarClient
	commissionRate float64
	currency       string
	now            func() time.Time
	log            *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	availability AvailabilityService,
	payments RefundProcessor,
	calendar CalendarClient,
	commissionRate float64,
	currency string,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:           repo,
		availability:   availability,
		payments:       payments,
		calendar:       calendar,
		commissionRate: commissionRate,
		currency:       currency,
		now:            time.Now,
		log:            log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Create(ctx context.Context, clientID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	serviceID, err := utils.ParseUUID(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid service ID", ErrValidation)
	}

	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service == nil || !service.IsActive {
		return nil, ErrNotFound
	}

	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event date", ErrValidation)
	}

	window, profile, err := s.availability.ResolveWindow(ctx, service, eventDate, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if !window.Start.After(s.now()) {
		return nil, fmt.Errorf("%w: event must be in the future", ErrValidation)
	}

	reason, err := s.availability.WindowConflict(ctx, service.ProviderID, profile, window)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		return nil, fmt.Errorf("%w: %s", ErrNotAvailable, reason)
	}

	baseTotal := s.priceBase(service, req.GuestCount, window)
	extrasTotal := decimal.NewFromFloat(req.ExtrasTotal).Round(2)
	commission := baseTotal.Add(extrasTotal).Mul(decimal.NewFromFloat(s.commissionRate)).Round(2)
	total := baseTotal.Add(extrasTotal).Add(commission)

	now := s.now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ServiceID:      service.ID,
		ClientID:       clientID,
		ProviderID:     service.ProviderID,
		EventDate:      eventDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		StartDatetime:  window.Start,
		EndDatetime:    window.End,
		EffectiveStart: window.EffectiveStart,
		EffectiveEnd:   window.EffectiveEnd,
		GuestCount:     req.GuestCount,
		BaseTotal:      baseTotal,
		ExtrasTotal:    extrasTotal,
		Commission:     commission,
		Total:          total,
		Status:         entity.BookingStatusPending,
		RefundAmount:   decimal.Zero,
	}

	intentID, err := s.payments.CreateIntent(ctx, toMinorUnits(total), booking.ID.String())
	if err != nil {
		s.log.Error("Failed to create payment intent",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	booking.PaymentIntentID = &intentID

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:       booking.ID,
		PaymentIntentID: intentID,
		Amount:          total,
		Currency:        s.currency,
		Status:          entity.PaymentStatusPending,
	}
	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.notify(ctx, service.ProviderID, entity.NotificationBookingCreated,
		"New booking request",
		fmt.Sprintf("You received a booking request for %s on %s.", service.Name, req.EventDate),
		booking.ID,
	)

	return response.ToBookingResponse(booking, AvailableTransitions(booking.Status)), nil
}

func (s *bookingService) priceBase(service *entity.Service, guests int, window EventWindow) decimal.Decimal {
	switch service.PriceUnit {
	case entity.PriceUnitPerPerson:
		return service.BasePrice.Mul(decimal.NewFromInt(int64(guests))).Round(2)
	case entity.PriceUnitPerHour:
		return service.BasePrice.Mul(decimal.NewFromFloat(ResolveEventHours(service, window))).Round(2)
	default:
		return service.BasePrice.Round(2)
	}
}

func (s *bookingService) ListForUser(ctx context.Context, userID uuid.UUID, role entity.UserRole, page, limit int) (*response.PaginatedResponse, error) {
	offset := utils.CalculateOffset(page, limit)

	var (
		bookings []*entity.Booking
		total    int64
		err      error
	)
	if role == entity.RoleProvider {
		bookings, err = s.repo.Booking.FindByProviderID(ctx, userID, limit, offset)
		if err == nil {
			total, err = s.repo.Booking.CountByProviderID(ctx, userID)
		}
	} else {
		bookings, err = s.repo.Booking.FindByClientID(ctx, userID, limit, offset)
		if err == nil {
			total, err = s.repo.Booking.CountByClientID(ctx, userID)
		}
	}
	if err != nil {
		return nil, err
	}

	items := make([]*response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, response.ToBookingResponse(b, AvailableTransitions(b.Status)))
	}

	return &response.PaginatedResponse{
		Items:      items,
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: utils.CalculateTotalPages(total, limit),
	}, nil
}

func (s *bookingService) Get(ctx context.Context, userID uuid.UUID, role entity.UserRole, id uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.loadAuthorized(ctx, userID, role, id)
	if err != nil {
		return nil, err
	}
	return response.ToBookingResponse(booking, AvailableTransitions(booking.Status)), nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID, newStatus entity.BookingStatus) (*response.BookingResponse, error) {
	if newStatus == entity.BookingStatusCancelled {
		return nil, fmt.Errorf("%w: cancellations go through the cancel endpoint", ErrValidation)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNotFound
	}

	// Only the booking's provider or an admin may move status directly.
	if role != entity.RoleAdmin && !(role == entity.RoleProvider && booking.ProviderID == actorID) {
		return nil, ErrForbidden
	}

	// Start and end verification have their own code-gated paths.
	if role != entity.RoleAdmin {
		if newStatus == entity.BookingStatusInProgress || newStatus == entity.BookingStatusCompleted {
			return nil, fmt.Errorf("%w: this transition requires a verification code", ErrValidation)
		}
	}

	if !IsValidTransition(booking.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	updated, err := s.repo.Booking.UpdateStatusIf(ctx, id, booking.Status, newStatus)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrConflict
	}
	booking.Status = newStatus

	switch newStatus {
	case entity.BookingStatusConfirmed:
		s.pushCalendarEvent(ctx, booking)
		s.notify(ctx, booking.ClientID, entity.NotificationBookingConfirmed,
			"Booking confirmed",
			fmt.Sprintf("Your booking for %s was confirmed by the provider.", booking.EventDate.Format("2006-01-02")),
			booking.ID,
		)
	case entity.BookingStatusRejected:
		s.notify(ctx, booking.ClientID, entity.NotificationBookingCancelled,
			"Booking rejected",
			fmt.Sprintf("Your booking request for %s was rejected.", booking.EventDate.Format("2006-01-02")),
			booking.ID,
		)
	}

	return response.ToBookingResponse(booking, AvailableTransitions(booking.Status)), nil
}

func (s *bookingService) loadAuthorized(ctx context.Context, userID uuid.UUID, role entity.UserRole, id uuid.UUID) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNotFound
	}
	if role != entity.RoleAdmin && booking.ClientID != userID && booking.ProviderID != userID {
		return nil, ErrForbidden
	}
	return booking, nil
}

// pushCalendarEvent mirrors a confirmed booking into the provider's Google
// calendar. Failures are logged, never surfaced: the booking stands either
// way.
func (s *bookingService) pushCalendarEvent(ctx context.Context, booking *entity.Booking) {
	profile, err := s.repo.Profile.FindByID(ctx, booking.ProviderID)
	if err != nil || profile == nil || profile.GoogleAccessToken == nil {
		return
	}

	token := googleToken(profile)
	calendarID := "primary"
	if profile.GoogleCalendarID != nil {
		calendarID = *profile.GoogleCalendarID
	}

	summary := fmt.Sprintf("Vivelo booking %s", booking.EventDate.Format("2006-01-02"))
	eventID, err := s.calendar.InsertEvent(ctx, token, calendarID, summary, booking.StartDatetime, booking.EndDatetime)
	if err != nil {
		s.log.Warn("Failed to push booking to provider calendar",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return
	}

	if err := s.repo.Booking.SetCalendarEventID(ctx, booking.ID, eventID); err != nil {
		s.log.Warn("Failed to persist calendar event ID",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}
}

func (s *bookingService) notify(ctx context.Context, userID uuid.UUID, typ entity.NotificationType, title, message string, bookingID uuid.UUID) {
	link := fmt.Sprintf("/bookings/%s", bookingID.String())
	n := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: s.now(),
		},
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		Link:    &link,
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.log.Warn("Failed to create notification",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
	}
}

func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func googleToken(profile *entity.Profile) *oauth2.Token {
	token := &oauth2.Token{}
	if profile.GoogleAccessToken != nil {
		token.AccessToken = *profile.GoogleAccessToken
	}
	if profile.GoogleRefreshToken != nil {
		token.RefreshToken = *profile.GoogleRefreshToken
	}
	if profile.GoogleTokenExpiry != nil {
		token.Expiry = *profile.GoogleTokenExpiry
	}
	return token
}
