package entity

import (
	"time"

	"github.com/google/uuid"
)

type CalendarBlockSource string

const (
	BlockSourceManual CalendarBlockSource = "manual"
	BlockSourceGoogle CalendarBlockSource = "google"
)

// CalendarBlock is a hard exclusion window for a provider: any intersection
// with a requested booking window makes the provider unavailable, regardless
// of the concurrency cap.
type CalendarBlock struct {
	BaseSimple
	ProviderID      uuid.UUID           `db:"provider_id"`
	StartsAt        time.Time           `db:"starts_at"`
	EndsAt          time.Time           `db:"ends_at"`
	Source          CalendarBlockSource `db:"source"`
	ExternalEventID *string             `db:"external_event_id"`
}
