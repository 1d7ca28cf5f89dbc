package models

import (
	"math"
	"testing"
)

func TestValidateEntryInput(t *testing.T) {
	testCases := []struct {
		name  string
		input CreateEntryInput
		valid bool
	}{
		{"valid", CreateEntryInput{TrashType: "plastic", Latitude: 12.9, Longitude: 74.8}, true},
		{"valid at bounds", CreateEntryInput{TrashType: "glass", Latitude: -90, Longitude: 180}, true},
		{"missing type", CreateEntryInput{Latitude: 12.9, Longitude: 74.8}, false},
		{"unknown type", CreateEntryInput{TrashType: "styrofoam", Latitude: 12.9, Longitude: 74.8}, false},
		{"latitude too high", CreateEntryInput{TrashType: "plastic", Latitude: 95, Longitude: 74.8}, false},
		{"latitude too low", CreateEntryInput{TrashType: "plastic", Latitude: -90.1, Longitude: 74.8}, false},
		{"longitude too high", CreateEntryInput{TrashType: "plastic", Latitude: 12.9, Longitude: 180.5}, false},
		{"longitude NaN", CreateEntryInput{TrashType: "plastic", Latitude: 12.9, Longitude: math.NaN()}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := ValidateEntryInput(&tc.input)
			if v.Valid != tc.valid {
				t.Errorf("Valid = %v, want %v (reason %q)", v.Valid, tc.valid, v.Reason)
			}
			if !v.Valid && v.Reason == "" {
				t.Error("invalid result carries no reason")
			}
		})
	}
}

func TestIsValidTrashType(t *testing.T) {
	for _, typ := range TrashTypes {
		if !IsValidTrashType(typ) {
			t.Errorf("IsValidTrashType(%q) = false", typ)
		}
	}
	if IsValidTrashType("Plastic") {
		t.Error("trash types are case sensitive")
	}
}
