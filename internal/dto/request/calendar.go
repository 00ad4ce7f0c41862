package request

type ConnectCalendarRequest struct {
	Code string `json:"code" validate:"required"`
}
