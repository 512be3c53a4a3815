package enums

import "fmt"

// KotOrderStatus is the derived status of a kitchen order ticket, recomputed
// from the full item set after every item mutation.
type KotOrderStatus string

const (
	KotOrderStatusOpen       KotOrderStatus = "open"
	KotOrderStatusInProgress KotOrderStatus = "in_progress"
	KotOrderStatusReady      KotOrderStatus = "ready"
	KotOrderStatusCompleted  KotOrderStatus = "completed"
)

var validKotOrderStatuses = []KotOrderStatus{
	KotOrderStatusOpen,
	KotOrderStatusInProgress,
	KotOrderStatusReady,
	KotOrderStatusCompleted,
}

// String implements fmt.Stringer.
func (s KotOrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known KotOrderStatus.
func (s KotOrderStatus) IsValid() bool {
	for _, candidate := range validKotOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseKotOrderStatus converts raw input into a KotOrderStatus.
func ParseKotOrderStatus(value string) (KotOrderStatus, error) {
	for _, candidate := range validKotOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid kot order status %q", value)
}
