package models

import "time"

// MaintenanceLog represents a vehicle maintenance record.
//
// A log is active while Completed is false; an active log forces its
// vehicle into the "In Shop" status. Completion is one-way.
type MaintenanceLog struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	VehicleID   string    `bson:"vehicle_id" json:"vehicleId"`
	ServiceType string    `bson:"service_type" json:"serviceType"` // "Oil Change", "Brake Service", "Full Inspection", ...
	Cost        float64   `bson:"cost" json:"cost"`
	Date        time.Time `bson:"date" json:"date"`
	Mechanic    string    `bson:"mechanic" json:"mechanic"`
	Notes       string    `bson:"notes" json:"notes"`
	Completed   bool      `bson:"completed" json:"completed"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
