package models

import (
	"time"

	"github.com/avendra/hotelops-backend/pkg/enums"
	"github.com/google/uuid"
)

// Reservation is a half-open [StartAt, EndAt) hold on a bookable resource.
// Rows are never hard-deleted; cancellation and completion are status moves.
type Reservation struct {
	ID         uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	ResourceID uuid.UUID               `gorm:"column:resource_id;type:uuid;not null;index"`
	HotelID    uuid.UUID               `gorm:"column:hotel_id;type:uuid;not null;index"`
	StartAt    time.Time               `gorm:"column:start_at;not null"`
	EndAt      time.Time               `gorm:"column:end_at;not null"`
	Status     enums.ReservationStatus `gorm:"column:status;not null"`
	GuestName  string                  `gorm:"column:guest_name;not null"`
	Notes      *string                 `gorm:"column:notes"`
	CreatedBy  uuid.UUID               `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt  time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
