package adaptor

import (
	"encoding/json"
	"net/http"

	"vivelo/internal/dto/request"
	"vivelo/internal/usecase"
	"vivelo/pkg/utils"

	"go.uber.org/zap"
)

type CalendarHandler struct {
	calendar usecase.CalendarService
	log      *zap.Logger
}

func NewCalendarHandler(calendar usecase.CalendarService, log *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendar: calendar,
		log:      log.With(zap.String("handler", "calendar")),
	}
}

func (h *CalendarHandler) Connect(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requestActor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ConnectCalendarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.calendar.Connect(r.Context(), userID, &req); err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Calendar connected", nil)
}
