package models

import "github.com/oklog/ulid/v2"

// NewID returns a lexically sortable id for document-style entities.
func NewID() string {
	return ulid.Make().String()
}

// VehicleTypes is the closed set offered by every vehicle-type picker.
var VehicleTypes = []string{"CAR", "TRUCK", "BUS", "TAMPO"}

// VehicleTypeLabel returns the display label of a vehicle type.
func VehicleTypeLabel(t string) string {
	if t == "TAMPO" {
		return "TEMPO TRAVELLER"
	}
	return t
}

// IsVehicleType reports whether t is one of VehicleTypes.
func IsVehicleType(t string) bool {
	for _, v := range VehicleTypes {
		if v == t {
			return true
		}
	}
	return false
}
