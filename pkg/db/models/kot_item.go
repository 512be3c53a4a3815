package models

import (
	"time"

	"github.com/avendra/hotelops-backend/pkg/enums"
	"github.com/google/uuid"
)

// KotItem is one line on a kitchen order ticket. StockDeducted marks that the
// approval-time recipe deduction already ran, so a repeated approval attempt
// never deducts twice.
type KotItem struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	OrderID       uuid.UUID           `gorm:"column:order_id;type:uuid;not null;index"`
	MenuItemID    uuid.UUID           `gorm:"column:menu_item_id;type:uuid;not null"`
	Qty           int                 `gorm:"column:qty;not null;default:1"`
	Status        enums.KotItemStatus `gorm:"column:status;not null"`
	StockDeducted bool                `gorm:"column:stock_deducted;not null;default:false"`
	Reason        *string             `gorm:"column:reason"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
