package models

import (
	"time"

	"github.com/avendra/hotelops-backend/pkg/enums"
	"github.com/google/uuid"
)

// MealVoucher is a single-use credential that moves unused -> used exactly once.
type MealVoucher struct {
	ID        uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	HotelID   uuid.UUID               `gorm:"column:hotel_id;type:uuid;not null;index"`
	Code      string                  `gorm:"column:code;not null;uniqueIndex"`
	Status    enums.MealVoucherStatus `gorm:"column:status;not null"`
	UsedBy    *uuid.UUID              `gorm:"column:used_by;type:uuid"`
	UsedAt    *time.Time              `gorm:"column:used_at"`
	CreatedAt time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
