package models

import (
	"time"

	"github.com/avendra/hotelops-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is a tracked stock item. BaseStockQty is mutated only through
// the stock ledger; it is never written directly by callers and never drops
// below zero at any committed state.
type InventoryItem struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	HotelID       uuid.UUID       `gorm:"column:hotel_id;type:uuid;not null;index"`
	Name          string          `gorm:"column:name;not null"`
	BaseUnit      enums.StockUnit `gorm:"column:base_unit;not null"`
	BaseStockQty  decimal.Decimal `gorm:"column:base_stock_qty;type:numeric(14,3);not null"`
	ReorderLevel  decimal.Decimal `gorm:"column:reorder_level;type:numeric(14,3);not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
