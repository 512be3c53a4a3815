package booking

import (
	"time"

	"github.com/avendra/hotelops-backend/pkg/db/models"
	"github.com/avendra/hotelops-backend/pkg/enums"
	"github.com/google/uuid"
)

// CreateBookingInput describes a requested hold on a room or hall. The window
// is half-open: [StartAt, EndAt), so back-to-back bookings sharing a boundary
// instant do not conflict.
type CreateBookingInput struct {
	HotelID    uuid.UUID
	ResourceID uuid.UUID
	StartAt    time.Time
	EndAt      time.Time
	GuestName  string
	Notes      *string
	ActorID    uuid.UUID
}

// RescheduleInput moves an existing reservation to a new window.
type RescheduleInput struct {
	HotelID       uuid.UUID
	ReservationID uuid.UUID
	StartAt       time.Time
	EndAt         time.Time
	ActorID       uuid.UUID
}

// UpdateStatusInput advances a reservation along its lifecycle.
type UpdateStatusInput struct {
	HotelID       uuid.UUID
	ReservationID uuid.UUID
	Status        enums.ReservationStatus
	ActorID       uuid.UUID
}

// AvailabilityQuery asks whether a window is free. The answer is advisory;
// only the locked create/reschedule path is authoritative.
type AvailabilityQuery struct {
	HotelID    uuid.UUID
	ResourceID uuid.UUID
	StartAt    time.Time
	EndAt      time.Time
}

// AvailabilityResult lists the occupying reservations that intersect the
// queried window.
type AvailabilityResult struct {
	Available bool
	Conflicts []models.Reservation
}
