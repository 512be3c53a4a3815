package kot

import (
	"github.com/avendra/hotelops-backend/pkg/enums"
	"github.com/google/uuid"
)

// OrderLine is one requested ticket line at creation time.
type OrderLine struct {
	MenuItemID uuid.UUID
	Qty        int
}

// CreateOrderInput opens a new kitchen order ticket with its initial lines.
type CreateOrderInput struct {
	HotelID uuid.UUID
	TableNo string
	Lines   []OrderLine
	ActorID uuid.UUID
}

// TransitionItemInput moves one ticket line to its next status. Reason is
// required when the target is declined or cancelled.
type TransitionItemInput struct {
	HotelID uuid.UUID
	OrderID uuid.UUID
	ItemID  uuid.UUID
	Status  enums.KotItemStatus
	Reason  *string
	ActorID uuid.UUID
}
