package entity

// RefundPercent is a whole-number percentage in [0, 100]. It is deliberately
// a distinct type from the 0-1 rates used elsewhere (commission) so the two
// scales cannot be mixed up silently.
type RefundPercent int

// CancellationRule is one refund tier. MinHours is the inclusive minimum
// lead time (hours until the event) the tier requires; MaxHours, when set,
// is an exclusive upper bound.
type CancellationRule struct {
	MinHours      float64       `json:"min_hours" db:"min_hours"`
	MaxHours      *float64      `json:"max_hours,omitempty" db:"max_hours"`
	RefundPercent RefundPercent `json:"refund_percent" db:"refund_percent"`
}

// CancellationPolicy is a named, ordered set of refund tiers. Policies are
// resolved, never mutated, at cancellation time; the resolved rules are
// snapshotted onto the booking.
type CancellationPolicy struct {
	BaseNoDelete
	Name      string             `db:"name"`
	IsDefault bool               `db:"is_default"`
	Rules     []CancellationRule `db:"-"`
}
