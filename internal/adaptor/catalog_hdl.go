package adaptor

import (
	"net/http"

	"vivelo/internal/dto/request"
	"vivelo/internal/usecase"
	"vivelo/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog      usecase.CatalogService
	availability usecase.AvailabilityService
	log          *zap.Logger
}

func NewCatalogHandler(catalog usecase.CatalogService, availability usecase.AvailabilityService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:      catalog,
		availability: availability,
		log:          log.With(zap.String("handler", "catalog")),
	}
}

func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	page := utils.ParseInt(r.URL.Query().Get("page"), 1)
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 20)
	category := r.URL.Query().Get("category")

	resp, err := h.catalog.ListServices(r.Context(), category, page, limit)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Services retrieved", resp)
}

func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	serviceID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid service ID", nil)
		return
	}

	resp, err := h.catalog.GetService(r.Context(), serviceID)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Service retrieved", resp)
}

func (h *CatalogHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	query := &request.AvailabilityQuery{
		ServiceID: chi.URLParam(r, "id"),
		EventDate: r.URL.Query().Get("event_date"),
		StartTime: r.URL.Query().Get("start_time"),
		EndTime:   r.URL.Query().Get("end_time"),
	}

	resp, err := h.availability.Check(r.Context(), query)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Availability checked", resp)
}
