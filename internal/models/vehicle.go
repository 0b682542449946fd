package models

import "time"

// VehicleStatus represents the operational state of a vehicle.
type VehicleStatus string

const (
	VehicleAvailable VehicleStatus = "Available"
	VehicleOnTrip    VehicleStatus = "On Trip"
	VehicleInShop    VehicleStatus = "In Shop"
	VehicleRetired   VehicleStatus = "Retired"
)

// Vehicle represents a fleet vehicle.
//
// Status is derived while the vehicle has a dispatched trip or an active
// maintenance log; it is only directly editable while the vehicle is idle.
type Vehicle struct {
	ID              string        `bson:"_id,omitempty" json:"id"`
	Name            string        `bson:"name" json:"name"`
	Plate           string        `bson:"plate" json:"plate"`
	Type            string        `bson:"type" json:"type"`         // "Truck", "Van", "Bike", "Trailer", "Pickup"
	Capacity        float64       `bson:"capacity" json:"capacity"` // in kg
	Odometer        float64       `bson:"odometer" json:"odometer"` // in km
	AcquisitionCost float64       `bson:"acquisition_cost" json:"acquisitionCost"`
	Year            int           `bson:"year" json:"year"`
	Fuel            string        `bson:"fuel" json:"fuel"` // "Diesel", "Petrol", "CNG", "Electric", "Hybrid"
	Region          string        `bson:"region" json:"region"`
	Status          VehicleStatus `bson:"status" json:"status"`
	CreatedAt       time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `bson:"updated_at" json:"updated_at"`
}

// IsValidVehicleStatus checks if a vehicle status is valid.
func IsValidVehicleStatus(s VehicleStatus) bool {
	switch s {
	case VehicleAvailable, VehicleOnTrip, VehicleInShop, VehicleRetired:
		return true
	default:
		return false
	}
}

// Active reports whether the vehicle counts toward the active fleet.
func (v *Vehicle) Active() bool {
	return v.Status == VehicleAvailable || v.Status == VehicleOnTrip
}
