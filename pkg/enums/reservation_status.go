package enums

import "fmt"

// ReservationStatus tracks the lifecycle of a room or hall reservation.
type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "pending"
	ReservationStatusConfirmed  ReservationStatus = "confirmed"
	ReservationStatusCheckedIn  ReservationStatus = "checked_in"
	ReservationStatusInProgress ReservationStatus = "in_progress"
	ReservationStatusCheckedOut ReservationStatus = "checked_out"
	ReservationStatusCompleted  ReservationStatus = "completed"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
)

var validReservationStatuses = []ReservationStatus{
	ReservationStatusPending,
	ReservationStatusConfirmed,
	ReservationStatusCheckedIn,
	ReservationStatusInProgress,
	ReservationStatusCheckedOut,
	ReservationStatusCompleted,
	ReservationStatusCancelled,
}

// OccupyingReservationStatuses are the statuses that hold the resource's
// calendar. Two reservations in this set may never overlap on one resource.
var OccupyingReservationStatuses = []ReservationStatus{
	ReservationStatusPending,
	ReservationStatusConfirmed,
	ReservationStatusCheckedIn,
	ReservationStatusInProgress,
}

// String implements fmt.Stringer.
func (s ReservationStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ReservationStatus.
func (s ReservationStatus) IsValid() bool {
	for _, candidate := range validReservationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:    {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed:  {ReservationStatusCheckedIn, ReservationStatusInProgress, ReservationStatusCancelled},
	ReservationStatusCheckedIn:  {ReservationStatusCheckedOut},
	ReservationStatusInProgress: {ReservationStatusCompleted},
	ReservationStatusCheckedOut: {},
	ReservationStatusCompleted:  {},
	ReservationStatusCancelled:  {},
}

// CanTransitionTo reports whether the lifecycle allows moving to target.
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	for _, candidate := range reservationTransitions[s] {
		if candidate == target {
			return true
		}
	}
	return false
}

// Terminal reports whether no further lifecycle moves exist.
func (s ReservationStatus) Terminal() bool {
	return len(reservationTransitions[s]) == 0
}

// Occupying reports whether the status holds the resource's calendar.
func (s ReservationStatus) Occupying() bool {
	for _, candidate := range OccupyingReservationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseReservationStatus converts raw input into a ReservationStatus.
func ParseReservationStatus(value string) (ReservationStatus, error) {
	for _, candidate := range validReservationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid reservation status %q", value)
}
