package vouchers

import (
	"time"

	"github.com/google/uuid"
)

// RedeemInput requests one redemption of a counted voucher by code. At is the
// instant validity is judged against; callers pass the request time.
type RedeemInput struct {
	HotelID uuid.UUID
	Code    string
	ActorID uuid.UUID
	At      time.Time
}

// RedeemResult reports the post-redemption counter state.
type RedeemResult struct {
	VoucherID     uuid.UUID
	UsedCount     int
	RemainingUses *int // nil when the voucher is unlimited
}

// RedeemMealVoucherInput consumes a single-use meal voucher by code.
type RedeemMealVoucherInput struct {
	HotelID uuid.UUID
	Code    string
	ActorID uuid.UUID
	At      time.Time
}
