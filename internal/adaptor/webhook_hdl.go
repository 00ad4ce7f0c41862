package adaptor

import (
	"io"
	"net/http"

	"vivelo/internal/usecase"
	"vivelo/pkg/utils"

	"go.uber.org/zap"
)

// Stripe caps webhook payloads well under this.
const maxWebhookBody = 1 << 16

type WebhookHandler struct {
	webhooks usecase.WebhookService
	log      *zap.Logger
}

func NewWebhookHandler(webhooks usecase.WebhookService, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhooks: webhooks,
		log:      log.With(zap.String("handler", "webhook")),
	}
}

func (h *WebhookHandler) Stripe(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		utils.ResponseBadRequest(w, "Failed to read request body", nil)
		return
	}

	if err := h.webhooks.HandleStripeEvent(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Event processed", nil)
}
