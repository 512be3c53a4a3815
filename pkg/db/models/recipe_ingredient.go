package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecipeIngredient maps one menu item to the inventory it consumes per
// serving, expressed in the item's base unit. Read-only for the kitchen flow.
type RecipeIngredient struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	MenuItemID uuid.UUID       `gorm:"column:menu_item_id;type:uuid;not null;index"`
	ItemID     uuid.UUID       `gorm:"column:item_id;type:uuid;not null"`
	QtyBase    decimal.Decimal `gorm:"column:qty_base;type:numeric(14,3);not null"`
}
