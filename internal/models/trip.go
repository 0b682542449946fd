package models

import "time"

// TripStatus represents the lifecycle state of a trip.
//
// Trips move strictly forward: Draft -> Dispatched -> Completed or
// Cancelled. Completed and Cancelled are terminal.
type TripStatus string

const (
	TripDraft      TripStatus = "Draft"
	TripDispatched TripStatus = "Dispatched"
	TripCompleted  TripStatus = "Completed"
	TripCancelled  TripStatus = "Cancelled"
)

// Trip represents a cargo trip assigned to a vehicle and driver.
//
// VehicleID and DriverID are weak references resolved against the current
// snapshot; a dangling reference is tolerated, never an error.
type Trip struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	VehicleID     string     `bson:"vehicle_id" json:"vehicleId"`
	DriverID      string     `bson:"driver_id" json:"driverId"`
	Origin        string     `bson:"origin" json:"origin"`
	Destination   string     `bson:"destination" json:"destination"`
	CargoType     string     `bson:"cargo_type" json:"cargoType"`
	CargoWeight   float64    `bson:"cargo_weight" json:"cargoWeight"` // in kg
	EstimatedKm   float64    `bson:"estimated_km" json:"estimatedKm"`
	Revenue       float64    `bson:"revenue" json:"revenue"`
	Date          time.Time  `bson:"date" json:"date"`
	Notes         string     `bson:"notes" json:"notes"`
	Status        TripStatus `bson:"status" json:"status"`
	FinalOdometer float64    `bson:"final_odometer,omitempty" json:"finalOdometer,omitempty"` // set on completion only
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updated_at"`
}

// IsValidTripStatus checks if a trip status is valid.
func IsValidTripStatus(s TripStatus) bool {
	switch s {
	case TripDraft, TripDispatched, TripCompleted, TripCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether the trip has reached a terminal state.
func (t *Trip) Terminal() bool {
	return t.Status == TripCompleted || t.Status == TripCancelled
}
