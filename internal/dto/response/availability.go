package response

import "time"

type AvailabilityResponse struct {
	Available      bool      `json:"available"`
	Reason         string    `json:"reason,omitempty"`
	EffectiveStart time.Time `json:"effective_start"`
	EffectiveEnd   time.Time `json:"effective_end"`
}
