package kot

import (
	"github.com/avendra/hotelops-backend/pkg/db/models"
	"github.com/avendra/hotelops-backend/pkg/enums"
)

// DeriveOrderStatus recomputes the ticket status from the full item set. The
// rules apply in order; the first match wins, so the result is deterministic
// for any item arrangement:
//
//  1. any declined item pins the ticket open until staff resolves it
//  2. every item served -> completed
//  3. every item ready -> ready
//  4. every item in {approved, ready, served} -> in_progress
//  5. otherwise open
//
// A cancelled item matches none of the all-of sets, so a ticket holding one
// resolves to open until staff re-raise the remaining lines on a fresh ticket.
func DeriveOrderStatus(items []models.KotItem) enums.KotOrderStatus {
	if len(items) == 0 {
		return enums.KotOrderStatusOpen
	}

	allServed := true
	allReady := true
	allPastApproval := true
	for _, item := range items {
		if item.Status == enums.KotItemStatusDeclined {
			return enums.KotOrderStatusOpen
		}
		if item.Status != enums.KotItemStatusServed {
			allServed = false
		}
		if item.Status != enums.KotItemStatusReady {
			allReady = false
		}
		switch item.Status {
		case enums.KotItemStatusApproved, enums.KotItemStatusReady, enums.KotItemStatusServed:
		default:
			allPastApproval = false
		}
	}

	switch {
	case allServed:
		return enums.KotOrderStatusCompleted
	case allReady:
		return enums.KotOrderStatusReady
	case allPastApproval:
		return enums.KotOrderStatusInProgress
	default:
		return enums.KotOrderStatusOpen
	}
}
