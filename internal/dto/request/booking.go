package request

type CreateBookingRequest struct {
	ServiceID   string  `json:"service_id" validate:"required,uuid"`
	EventDate   string  `json:"event_date" validate:"required,datetime=2006-01-02"`
	StartTime   string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string  `json:"end_time" validate:"required,datetime=15:04"`
	GuestCount  int     `json:"guest_count" validate:"required,gte=1"`
	ExtrasTotal float64 `json:"extras_total" validate:"gte=0"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type VerifyCodeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed in_review in_progress completed cancelled rejected"`
}
