package models

import (
	"time"

	"github.com/avendra/hotelops-backend/pkg/enums"
	"github.com/google/uuid"
)

// BookableResource is a room or hall whose row serializes all booking
// attempts against it: the scheduler locks this row before checking overlap.
type BookableResource struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	HotelID   uuid.UUID          `gorm:"column:hotel_id;type:uuid;not null;index"`
	Type      enums.ResourceType `gorm:"column:type;not null"`
	Label     string             `gorm:"column:label;not null"`
	Capacity  int                `gorm:"column:capacity;not null;default:1"`
	IsActive  bool               `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
