package domain

import (
	"regexp"
	"strings"
)

// Matches both the legacy LLL-NNNN shape and the Mercosul LLLNLNN shape.
var platePattern = regexp.MustCompile(`^[A-Z]{3}-?\d[A-Z0-9]\d{2}$`)

// VehiclePlate is an upper-cased vehicle plate. The zero value means
// "no plate".
type VehiclePlate struct {
	value string
}

func NewVehiclePlate(raw string) (VehiclePlate, error) {
	if strings.TrimSpace(raw) == "" {
		return VehiclePlate{}, NewValidationError("vehicle plate is required")
	}

	clean := strings.ToUpper(strings.TrimSpace(raw))
	if !platePattern.MatchString(clean) {
		return VehiclePlate{}, NewValidationError("invalid vehicle plate format")
	}

	return VehiclePlate{value: clean}, nil
}

// NewOptionalVehiclePlate returns the zero plate for empty input instead
// of failing.
func NewOptionalVehiclePlate(raw string) (VehiclePlate, error) {
	if strings.TrimSpace(raw) == "" {
		return VehiclePlate{}, nil
	}
	return NewVehiclePlate(raw)
}

func (p VehiclePlate) IsZero() bool {
	return p.value == ""
}

func (p VehiclePlate) String() string {
	return p.value
}

// Format inserts the dash of the legacy rendering for 7-character plates.
func (p VehiclePlate) Format() string {
	if len(p.value) != 7 {
		return p.value
	}
	return p.value[:3] + "-" + p.value[3:]
}
