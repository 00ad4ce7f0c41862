package request

// AvailabilityQuery arrives as query parameters on the availability endpoint.
type AvailabilityQuery struct {
	ServiceID string `validate:"required,uuid"`
	EventDate string `validate:"required,datetime=2006-01-02"`
	StartTime string `validate:"required,datetime=15:04"`
	EndTime   string `validate:"required,datetime=15:04"`
}
