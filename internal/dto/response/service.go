package response

import (
	"vivelo/internal/data/entity"
)

type ServiceResponse struct {
	ID             string  `json:"id"`
	ProviderID     string  `json:"provider_id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Description    string  `json:"description"`
	BasePrice      string  `json:"base_price"`
	PriceUnit      string  `json:"price_unit"`
	BaseEventHours float64 `json:"base_event_hours"`
	IsActive       bool    `json:"is_active"`
}

func ToServiceResponse(s *entity.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:             s.ID.String(),
		ProviderID:     s.ProviderID.String(),
		Name:           s.Name,
		Category:       string(s.Category),
		Description:    s.Description,
		BasePrice:      s.BasePrice.StringFixed(2),
		PriceUnit:      string(s.PriceUnit),
		BaseEventHours: s.BaseEventHours,
		IsActive:       s.IsActive,
	}
}

func ToServiceResponses(services []*entity.Service) []*ServiceResponse {
	out := make([]*ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, ToServiceResponse(s))
	}
	return out
}
