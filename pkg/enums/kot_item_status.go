package enums

import "fmt"

// KotItemStatus tracks the fulfillment state of one kitchen order ticket line.
type KotItemStatus string

const (
	KotItemStatusPending   KotItemStatus = "pending"
	KotItemStatusApproved  KotItemStatus = "approved"
	KotItemStatusDeclined  KotItemStatus = "declined"
	KotItemStatusCancelled KotItemStatus = "cancelled"
	KotItemStatusReady     KotItemStatus = "ready"
	KotItemStatusServed    KotItemStatus = "served"
)

var validKotItemStatuses = []KotItemStatus{
	KotItemStatusPending,
	KotItemStatusApproved,
	KotItemStatusDeclined,
	KotItemStatusCancelled,
	KotItemStatusReady,
	KotItemStatusServed,
}

// kotItemTransitions is the full forward-only transition table. Declined,
// cancelled and served are terminal.
var kotItemTransitions = map[KotItemStatus][]KotItemStatus{
	KotItemStatusPending:  {KotItemStatusApproved, KotItemStatusDeclined, KotItemStatusCancelled},
	KotItemStatusApproved: {KotItemStatusReady, KotItemStatusCancelled},
	KotItemStatusReady:    {KotItemStatusServed},
}

// String implements fmt.Stringer.
func (s KotItemStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known KotItemStatus.
func (s KotItemStatus) IsValid() bool {
	for _, candidate := range validKotItemStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the transition table allows moving to next.
func (s KotItemStatus) CanTransitionTo(next KotItemStatus) bool {
	for _, candidate := range kotItemTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are allowed.
func (s KotItemStatus) Terminal() bool {
	return len(kotItemTransitions[s]) == 0
}

// ParseKotItemStatus converts raw input into a KotItemStatus.
func ParseKotItemStatus(value string) (KotItemStatus, error) {
	for _, candidate := range validKotItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid kot item status %q", value)
}
