package usecase

import "vivelo/internal/data/entity"

// transitions is the exhaustive booking state machine. A status absent from
// the map (or mapped to an empty set) is terminal.
var transitions = map[entity.BookingStatus][]entity.BookingStatus{
	entity.BookingStatusPending: {
		entity.BookingStatusConfirmed,
		entity.BookingStatusCancelled,
		entity.BookingStatusRejected,
	},
	entity.BookingStatusConfirmed: {
		entity.BookingStatusInReview,
		entity.BookingStatusInProgress,
		entity.BookingStatusCompleted,
		entity.BookingStatusCancelled,
	},
	entity.BookingStatusInReview: {
		entity.BookingStatusCompleted,
		entity.BookingStatusCancelled,
	},
	entity.BookingStatusInProgress: {
		entity.BookingStatusCompleted,
		entity.BookingStatusCancelled,
	},
	entity.BookingStatusCompleted: {},
	entity.BookingStatusCancelled: {},
	entity.BookingStatusRejected:  {},
}

// IsValidTransition reports whether from -> to is permitted. Unknown
// statuses admit no transitions.
func IsValidTransition(from, to entity.BookingStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AvailableTransitions returns the statuses reachable from the given one.
func AvailableTransitions(from entity.BookingStatus) []entity.BookingStatus {
	return transitions[from]
}
