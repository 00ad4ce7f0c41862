package adaptor

import (
	"net/http"

	"vivelo/internal/usecase"
	"vivelo/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	notifications usecase.NotificationService
	log           *zap.Logger
}

func NewNotificationHandler(notifications usecase.NotificationService, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		log:           log.With(zap.String("handler", "notification")),
	}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requestActor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	page := utils.ParseInt(r.URL.Query().Get("page"), 1)
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 20)

	resp, err := h.notifications.List(r.Context(), userID, page, limit)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Notifications retrieved", resp)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requestActor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	notificationID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid notification ID", nil)
		return
	}

	if err := h.notifications.MarkRead(r.Context(), userID, notificationID); err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Notification marked as read", nil)
}
