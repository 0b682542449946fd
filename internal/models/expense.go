package models

import "time"

// Expense represents a fleet expense record. Expenses are immutable once
// created: they can only be added or deleted, never updated.
type Expense struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	VehicleID string    `bson:"vehicle_id" json:"vehicleId"`
	Type      string    `bson:"type" json:"type"` // "Fuel", "Toll", "Parking", "Charging", "Insurance", ...
	Cost      float64   `bson:"cost" json:"cost"`
	Date      time.Time `bson:"date" json:"date"`
	Liters    *float64  `bson:"liters,omitempty" json:"liters,omitempty"` // fuel/charging only
	TripID    string    `bson:"trip_id,omitempty" json:"tripId,omitempty"`
	Odometer  *float64  `bson:"odometer,omitempty" json:"odometer,omitempty"`
	Notes     string    `bson:"notes" json:"notes"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// FuelExpense reports whether the expense counts toward fuel spend
// (fuel or charging).
func (e *Expense) FuelExpense() bool {
	return e.Type == "Fuel" || e.Type == "Charging"
}
