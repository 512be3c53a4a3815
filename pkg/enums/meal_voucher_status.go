package enums

import "fmt"

// MealVoucherStatus is the binary single-use state of a meal voucher.
type MealVoucherStatus string

const (
	MealVoucherStatusUnused MealVoucherStatus = "unused"
	MealVoucherStatusUsed   MealVoucherStatus = "used"
)

var validMealVoucherStatuses = []MealVoucherStatus{
	MealVoucherStatusUnused,
	MealVoucherStatusUsed,
}

// String implements fmt.Stringer.
func (s MealVoucherStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known MealVoucherStatus.
func (s MealVoucherStatus) IsValid() bool {
	for _, candidate := range validMealVoucherStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseMealVoucherStatus converts raw input into a MealVoucherStatus.
func ParseMealVoucherStatus(value string) (MealVoucherStatus, error) {
	for _, candidate := range validMealVoucherStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid meal voucher status %q", value)
}
