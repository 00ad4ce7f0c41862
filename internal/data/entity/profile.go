package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile carries the marketplace-facing data of a user. Provider profiles
// additionally hold global buffer overrides and the concurrency cap used by
// the availability resolver.
type Profile struct {
	Base
	UserID      uuid.UUID `db:"user_id"`
	DisplayName string    `db:"display_name"`
	Phone       string    `db:"phone"`
	City        string    `db:"city"`

	// When ApplyBuffersToAll is set, the global buffers replace the
	// service-level buffers entirely (no merging).
	ApplyBuffersToAll         bool `db:"apply_buffers_to_all"`
	GlobalBufferBeforeMinutes int  `db:"global_buffer_before_minutes"`
	GlobalBufferAfterMinutes  int  `db:"global_buffer_after_minutes"`

	// MaxConcurrentServices is how many overlapping bookings the provider
	// may hold at once.
	MaxConcurrentServices int `db:"max_concurrent_services"`

	GoogleAccessToken  *string    `db:"google_access_token"`
	GoogleRefreshToken *string    `db:"google_refresh_token"`
	GoogleTokenExpiry  *time.Time `db:"google_token_expiry"`
	GoogleCalendarID   *string    `db:"google_calendar_id"`
}
