package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PriceUnit string

const (
	PriceUnitPerEvent  PriceUnit = "por_evento"
	PriceUnitPerPerson PriceUnit = "por_persona"
	PriceUnitPerHour   PriceUnit = "por_hora"
)

type ServiceCategory string

const (
	CategoryCatering    ServiceCategory = "catering"
	CategoryAudio       ServiceCategory = "audio"
	CategoryDecoration  ServiceCategory = "decoracion"
	CategoryPhotography ServiceCategory = "fotografia"
	CategoryStaffing    ServiceCategory = "personal"
	CategoryFurniture   ServiceCategory = "mobiliario"
)

type Service struct {
	Base
	ProviderID  uuid.UUID       `db:"provider_id"`
	Name        string          `db:"name"`
	Category    ServiceCategory `db:"category"`
	Description string          `db:"description"`

	BasePrice      decimal.Decimal `db:"base_price"`
	PriceUnit      PriceUnit       `db:"price_unit"`
	BaseEventHours float64         `db:"base_event_hours"`

	// Buffers pad a booking's window outward for conflict detection.
	BufferBeforeMinutes int `db:"buffer_before_minutes"`
	BufferBeforeDays    int `db:"buffer_before_days"`
	BufferAfterMinutes  int `db:"buffer_after_minutes"`
	BufferAfterDays     int `db:"buffer_after_days"`

	CancellationPolicyID *uuid.UUID `db:"cancellation_policy_id"`
	IsActive             bool       `db:"is_active"`
}
