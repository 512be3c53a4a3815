package enums

import "fmt"

// ResourceType distinguishes the bookable resource families.
type ResourceType string

const (
	ResourceTypeRoom ResourceType = "room"
	ResourceTypeHall ResourceType = "hall"
)

var validResourceTypes = []ResourceType{
	ResourceTypeRoom,
	ResourceTypeHall,
}

// String implements fmt.Stringer.
func (t ResourceType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known ResourceType.
func (t ResourceType) IsValid() bool {
	for _, candidate := range validResourceTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseResourceType converts raw input into a ResourceType.
func ParseResourceType(value string) (ResourceType, error) {
	for _, candidate := range validResourceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid resource type %q", value)
}
