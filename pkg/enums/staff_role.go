package enums

import "fmt"

// StaffRole is the role a hotel staff member acts under.
type StaffRole string

const (
	StaffRoleAdmin       StaffRole = "admin"
	StaffRoleManager     StaffRole = "manager"
	StaffRoleFrontDesk   StaffRole = "front_desk"
	StaffRoleStorekeeper StaffRole = "storekeeper"
	StaffRoleKitchen     StaffRole = "kitchen"
	StaffRoleWaiter      StaffRole = "waiter"
)

var validStaffRoles = []StaffRole{
	StaffRoleAdmin,
	StaffRoleManager,
	StaffRoleFrontDesk,
	StaffRoleStorekeeper,
	StaffRoleKitchen,
	StaffRoleWaiter,
}

// String implements fmt.Stringer.
func (r StaffRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known StaffRole.
func (r StaffRole) IsValid() bool {
	for _, candidate := range validStaffRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseStaffRole converts raw input into a StaffRole.
func ParseStaffRole(value string) (StaffRole, error) {
	for _, candidate := range validStaffRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid staff role %q", value)
}
