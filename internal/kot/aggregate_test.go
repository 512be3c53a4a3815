package kot

import (
	"testing"

	"github.com/avendra/hotelops-backend/pkg/db/models"
	"github.com/avendra/hotelops-backend/pkg/enums"
)

func itemsWith(statuses ...enums.KotItemStatus) []models.KotItem {
	items := make([]models.KotItem, 0, len(statuses))
	for _, status := range statuses {
		items = append(items, models.KotItem{Status: status})
	}
	return items
}

func TestDeriveOrderStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		statuses []enums.KotItemStatus
		want     enums.KotOrderStatus
	}{
		{
			name:     "all pending stays open",
			statuses: []enums.KotItemStatus{enums.KotItemStatusPending, enums.KotItemStatusPending},
			want:     enums.KotOrderStatusOpen,
		},
		{
			name:     "declined pins order open regardless of the rest",
			statuses: []enums.KotItemStatus{enums.KotItemStatusServed, enums.KotItemStatusDeclined, enums.KotItemStatusReady},
			want:     enums.KotOrderStatusOpen,
		},
		{
			name:     "all served completes",
			statuses: []enums.KotItemStatus{enums.KotItemStatusServed, enums.KotItemStatusServed},
			want:     enums.KotOrderStatusCompleted,
		},
		{
			name:     "all ready",
			statuses: []enums.KotItemStatus{enums.KotItemStatusReady, enums.KotItemStatusReady},
			want:     enums.KotOrderStatusReady,
		},
		{
			name:     "mixed ready and served is in progress",
			statuses: []enums.KotItemStatus{enums.KotItemStatusReady, enums.KotItemStatusServed},
			want:     enums.KotOrderStatusInProgress,
		},
		{
			name:     "approved plus ready is in progress",
			statuses: []enums.KotItemStatus{enums.KotItemStatusApproved, enums.KotItemStatusReady},
			want:     enums.KotOrderStatusInProgress,
		},
		{
			name:     "pending plus approved stays open",
			statuses: []enums.KotItemStatus{enums.KotItemStatusPending, enums.KotItemStatusApproved},
			want:     enums.KotOrderStatusOpen,
		},
		{
			name:     "cancelled line keeps the ticket open even when the rest is served",
			statuses: []enums.KotItemStatus{enums.KotItemStatusCancelled, enums.KotItemStatusServed},
			want:     enums.KotOrderStatusOpen,
		},
		{
			name:     "cancelled line keeps an approved ticket open",
			statuses: []enums.KotItemStatus{enums.KotItemStatusApproved, enums.KotItemStatusCancelled},
			want:     enums.KotOrderStatusOpen,
		},
		{
			name:     "all cancelled stays open",
			statuses: []enums.KotItemStatus{enums.KotItemStatusCancelled, enums.KotItemStatusCancelled},
			want:     enums.KotOrderStatusOpen,
		},
		{
			name:     "no items stays open",
			statuses: nil,
			want:     enums.KotOrderStatusOpen,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := DeriveOrderStatus(itemsWith(tc.statuses...))
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestDeriveOrderStatusOrderIndependent(t *testing.T) {
	t.Parallel()

	forward := itemsWith(enums.KotItemStatusReady, enums.KotItemStatusServed, enums.KotItemStatusApproved)
	reversed := itemsWith(enums.KotItemStatusApproved, enums.KotItemStatusServed, enums.KotItemStatusReady)
	if DeriveOrderStatus(forward) != DeriveOrderStatus(reversed) {
		t.Fatalf("derived status depends on item order")
	}
}
