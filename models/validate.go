package models

import (
	"fmt"
	"math"
	"strings"
)

// Validation is the outcome of checking a submission before any domain
// logic runs. Reason is only set when Valid is false.
type Validation struct {
	Valid  bool
	Reason string
}

func valid() Validation {
	return Validation{Valid: true}
}

func invalid(reason string) Validation {
	return Validation{Reason: reason}
}

func IsValidTrashType(t string) bool {
	for _, v := range TrashTypes {
		if t == v {
			return true
		}
	}
	return false
}

func IsValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

func IsValidLongitude(lng float64) bool {
	return !math.IsNaN(lng) && lng >= -180 && lng <= 180
}

// ValidateEntryInput checks a submission against the entry constraints:
// required trash type from the known set, latitude in [-90, 90] and
// longitude in [-180, 180].
func ValidateEntryInput(in *CreateEntryInput) Validation {
	if in.TrashType == "" {
		return invalid("trash_type is required")
	}
	if !IsValidTrashType(in.TrashType) {
		return invalid(fmt.Sprintf("invalid trash_type, must be one of: %s", strings.Join(TrashTypes, ", ")))
	}
	if !IsValidLatitude(in.Latitude) {
		return invalid("latitude must be between -90 and 90")
	}
	if !IsValidLongitude(in.Longitude) {
		return invalid("longitude must be between -180 and 180")
	}
	return valid()
}
