package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem is a sellable dish or drink. Its recipe rows drive the
// approval-time stock deduction.
type MenuItem struct {
	ID         uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	HotelID    uuid.UUID          `gorm:"column:hotel_id;type:uuid;not null;index"`
	Name       string             `gorm:"column:name;not null"`
	Station    string             `gorm:"column:station;not null;default:'kitchen'"`
	Recipe     []RecipeIngredient `gorm:"foreignKey:MenuItemID"`
	PriceCents int                `gorm:"column:price_cents;not null"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
