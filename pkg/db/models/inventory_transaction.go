package models

import (
	"time"

	"github.com/avendra/hotelops-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryTransaction is one append-only ledger entry. QtyBase is the signed
// delta actually applied; the sum of all committed entries for an item equals
// its current base stock minus the initial value.
type InventoryTransaction struct {
	ID        uuid.UUID                  `gorm:"column:id;type:uuid;primaryKey"`
	ItemID    uuid.UUID                  `gorm:"column:item_id;type:uuid;not null;index"`
	HotelID   uuid.UUID                  `gorm:"column:hotel_id;type:uuid;not null;index"`
	Type      enums.StockTransactionType `gorm:"column:type;not null"`
	QtyBase   decimal.Decimal            `gorm:"column:qty_base;type:numeric(14,3);not null"`
	ActorID   uuid.UUID                  `gorm:"column:actor_id;type:uuid;not null"`
	Notes     *string                    `gorm:"column:notes"`
	CreatedAt time.Time                  `gorm:"column:created_at;autoCreateTime"`
}
