package models

import (
	"time"

	"github.com/avendra/hotelops-backend/pkg/enums"
	"github.com/google/uuid"
)

// KotOrder is a kitchen order ticket. Status is derived from the item set
// after every item mutation; no transition history is stored on the order.
type KotOrder struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	HotelID   uuid.UUID            `gorm:"column:hotel_id;type:uuid;not null;index"`
	TableNo   string               `gorm:"column:table_no;not null"`
	Status    enums.KotOrderStatus `gorm:"column:status;not null"`
	Items     []KotItem            `gorm:"foreignKey:OrderID"`
	CreatedBy uuid.UUID            `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
