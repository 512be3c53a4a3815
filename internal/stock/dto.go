package stock

import (
	"github.com/avendra/hotelops-backend/pkg/db/models"
	"github.com/avendra/hotelops-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApplyTransactionInput carries one requested stock movement. Qty is always
// expressed in the item's base unit; for receive/issue/return/wastage it is
// the positive magnitude, for adjustment it is the signed delta itself.
type ApplyTransactionInput struct {
	HotelID uuid.UUID
	ItemID  uuid.UUID
	Type    enums.StockTransactionType
	Qty     decimal.Decimal
	ActorID uuid.UUID
	Notes   *string
}

// ApplyTransactionResult reports the committed ledger entry plus the derived
// data the route layer surfaces (new quantity, low-stock flag).
type ApplyTransactionResult struct {
	Transaction *models.InventoryTransaction
	NewQty      decimal.Decimal
	LowStock    bool
}

// TransactionPage is one cursor page of ledger history for an item.
type TransactionPage struct {
	Transactions []models.InventoryTransaction
	NextCursor   string
}
