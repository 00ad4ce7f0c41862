package response

import (
	"time"

	"vivelo/internal/data/entity"
)

type BookingResponse struct {
	ID         string `json:"id"`
	ServiceID  string `json:"service_id"`
	ClientID   string `json:"client_id"`
	ProviderID string `json:"provider_id"`

	EventDate  string `json:"event_date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	GuestCount int    `json:"guest_count"`

	BaseTotal   string `json:"base_total"`
	ExtrasTotal string `json:"extras_total"`
	Commission  string `json:"commission"`
	Total       string `json:"total"`

	Status               string   `json:"status"`
	AvailableTransitions []string `json:"available_transitions"`

	EndCodeDeadline *time.Time `json:"end_code_deadline,omitempty"`
	AutoCompleted   bool       `json:"auto_completed"`

	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	RefundAmount  string     `json:"refund_amount"`
	RefundPercent int        `json:"refund_percent"`

	CreatedAt time.Time `json:"created_at"`
}

func ToBookingResponse(b *entity.Booking, availableTransitions []entity.BookingStatus) *BookingResponse {
	transitions := make([]string, 0, len(availableTransitions))
	for _, t := range availableTransitions {
		transitions = append(transitions, string(t))
	}

	return &BookingResponse{
		ID:                   b.ID.String(),
		ServiceID:            b.ServiceID.String(),
		ClientID:             b.ClientID.String(),
		ProviderID:           b.ProviderID.String(),
		EventDate:            b.EventDate.Format("2006-01-02"),
		StartTime:            b.StartTime,
		EndTime:              b.EndTime,
		GuestCount:           b.GuestCount,
		BaseTotal:            b.BaseTotal.StringFixed(2),
		ExtrasTotal:          b.ExtrasTotal.StringFixed(2),
		Commission:           b.Commission.StringFixed(2),
		Total:                b.Total.StringFixed(2),
		Status:               string(b.Status),
		AvailableTransitions: transitions,
		EndCodeDeadline:      b.EndCodeDeadline,
		AutoCompleted:        b.AutoCompleted,
		CancelledAt:          b.CancelledAt,
		RefundAmount:         b.RefundAmount.StringFixed(2),
		RefundPercent:        int(b.RefundPercent),
		CreatedAt:            b.CreatedAt,
	}
}

type CancelBookingResponse struct {
	Success          bool    `json:"success"`
	RefundAmount     string  `json:"refund_amount"`
	RefundPercent    int     `json:"refund_percent"`
	ExternalRefundID *string `json:"external_refund_id"`
}

type VerifyCodeResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	NewStatus string `json:"new_status"`
}
