package middleware

import (
	"net/http"

	"github.com/avendra/hotelops-backend/api/responses"
	"github.com/avendra/hotelops-backend/pkg/enums"
	pkgerrors "github.com/avendra/hotelops-backend/pkg/errors"
	"github.com/avendra/hotelops-backend/pkg/logger"
)

// Action names one guarded operation on the ledger surface.
type Action string

const (
	ActionStockApply    Action = "stock.apply"
	ActionStockRead     Action = "stock.read"
	ActionBookingWrite  Action = "booking.write"
	ActionBookingRead   Action = "booking.read"
	ActionVoucherRedeem Action = "voucher.redeem"
	ActionKotCreate     Action = "kot.create"
	ActionKotTransition Action = "kot.transition"
	ActionKotRead       Action = "kot.read"
)

// policyTable is the single place permissions live. Services stay
// permission-agnostic; controllers never check roles themselves.
var policyTable = map[Action][]enums.StaffRole{
	ActionStockApply:    {enums.StaffRoleAdmin, enums.StaffRoleManager, enums.StaffRoleStorekeeper},
	ActionStockRead:     {enums.StaffRoleAdmin, enums.StaffRoleManager, enums.StaffRoleStorekeeper, enums.StaffRoleKitchen},
	ActionBookingWrite:  {enums.StaffRoleAdmin, enums.StaffRoleManager, enums.StaffRoleFrontDesk},
	ActionBookingRead:   {enums.StaffRoleAdmin, enums.StaffRoleManager, enums.StaffRoleFrontDesk},
	ActionVoucherRedeem: {enums.StaffRoleAdmin, enums.StaffRoleManager, enums.StaffRoleFrontDesk, enums.StaffRoleWaiter},
	ActionKotCreate:     {enums.StaffRoleAdmin, enums.StaffRoleManager, enums.StaffRoleWaiter},
	ActionKotTransition: {enums.StaffRoleAdmin, enums.StaffRoleManager, enums.StaffRoleKitchen, enums.StaffRoleWaiter},
	ActionKotRead:       {enums.StaffRoleAdmin, enums.StaffRoleManager, enums.StaffRoleKitchen, enums.StaffRoleWaiter},
}

// Allowed reports whether the role may perform the action.
func Allowed(role enums.StaffRole, action Action) bool {
	for _, candidate := range policyTable[action] {
		if candidate == role {
			return true
		}
	}
	return false
}

// RequirePermission gates a route on the policy table.
func RequirePermission(action Action, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := enums.StaffRole(RoleFromContext(r.Context()))
			if !Allowed(role, action) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "not permitted"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
