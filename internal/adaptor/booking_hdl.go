package adaptor

import (
	"context"
	"encoding/json"
	"net/http"

	"vivelo/internal/data/entity"
	"vivelo/internal/dto/request"
	"vivelo/internal/dto/response"
	"vivelo/internal/usecase"
	"vivelo/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingHandler struct {
	bookings     usecase.BookingService
	cancellation usecase.CancellationService
	verification usecase.VerificationService
	log          *zap.Logger
}

func NewBookingHandler(
	bookings usecase.BookingService,
	cancellation usecase.CancellationService,
	verification usecase.VerificationService,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		bookings:     bookings,
		cancellation: cancellation,
		verification: verification,
		log:          log.With(zap.String("handler", "booking")),
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requestActor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	if role != entity.RoleClient {
		utils.ResponseForbidden(w, "Only clients can create bookings")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.bookings.Create(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseCreated(w, "Booking created", resp)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requestActor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	page := utils.ParseInt(r.URL.Query().Get("page"), 1)
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 20)

	resp, err := h.bookings.ListForUser(r.Context(), userID, role, page, limit)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved", resp)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requestActor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	resp, err := h.bookings.Get(r.Context(), userID, role, bookingID)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Booking retrieved", resp)
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requestActor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	var req request.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if errs := utils.ValidateStruct(&req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	resp, err := h.bookings.UpdateStatus(r.Context(), userID, role, bookingID, entity.BookingStatus(req.Status))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Booking status updated", resp)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requestActor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	resp, err := h.cancellation.Cancel(r.Context(), userID, role, bookingID)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", resp)
}

type verifyFunc func(ctx context.Context, actorID uuid.UUID, role entity.UserRole, bookingID uuid.UUID, req *request.VerifyCodeRequest) (*response.VerifyCodeResponse, error)

func (h *BookingHandler) VerifyStart(w http.ResponseWriter, r *http.Request) {
	h.verify(w, r, h.verification.VerifyStart, "Event start verified")
}

func (h *BookingHandler) VerifyEnd(w http.ResponseWriter, r *http.Request) {
	h.verify(w, r, h.verification.VerifyEnd, "Event completion verified")
}

func (h *BookingHandler) verify(w http.ResponseWriter, r *http.Request, fn verifyFunc, message string) {
	userID, role, ok := requestActor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	var req request.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := fn(r.Context(), userID, role, bookingID, &req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, message, resp)
}

// requestActor pulls the authenticated user and role out of the request
// context set by the session middleware.
func requestActor(r *http.Request) (uuid.UUID, entity.UserRole, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, "", false
	}
	role, ok := utils.GetRoleFromContext(r.Context())
	if !ok {
		return uuid.Nil, "", false
	}
	return userID, entity.UserRole(role), true
}
