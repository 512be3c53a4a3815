package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avendra/hotelops-backend/pkg/enums"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		role   enums.StaffRole
		action Action
		want   bool
	}{
		{enums.StaffRoleStorekeeper, ActionStockApply, true},
		{enums.StaffRoleWaiter, ActionStockApply, false},
		{enums.StaffRoleKitchen, ActionStockRead, true},
		{enums.StaffRoleFrontDesk, ActionBookingWrite, true},
		{enums.StaffRoleKitchen, ActionBookingWrite, false},
		{enums.StaffRoleWaiter, ActionVoucherRedeem, true},
		{enums.StaffRoleStorekeeper, ActionVoucherRedeem, false},
		{enums.StaffRoleKitchen, ActionKotTransition, true},
		{enums.StaffRoleFrontDesk, ActionKotTransition, false},
		{enums.StaffRoleAdmin, ActionKotCreate, true},
		{enums.StaffRole("ghost"), ActionStockRead, false},
		{"", ActionStockRead, false},
	}

	for _, tt := range tests {
		if got := Allowed(tt.role, tt.action); got != tt.want {
			t.Fatalf("Allowed(%q, %q) = %v, want %v", tt.role, tt.action, got, tt.want)
		}
	}
}

func TestRequirePermission(t *testing.T) {
	handler := RequirePermission(ActionStockApply, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	allowed := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/x/transactions", nil)
	allowed = allowed.WithContext(WithRole(allowed.Context(), string(enums.StaffRoleStorekeeper)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, allowed)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected storekeeper allowed, got %d", rec.Code)
	}

	denied := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/x/transactions", nil)
	denied = denied.WithContext(WithRole(denied.Context(), string(enums.StaffRoleWaiter)))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, denied)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected waiter forbidden, got %d", rec.Code)
	}

	anonymous := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/x/transactions", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, anonymous)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected missing role forbidden, got %d", rec.Code)
	}
}
