package models

import "time"

// DriverStatus represents the duty state of a driver.
type DriverStatus string

const (
	DriverOnDuty    DriverStatus = "On Duty"
	DriverOffDuty   DriverStatus = "Off Duty"
	DriverSuspended DriverStatus = "Suspended"
)

// Driver represents a fleet driver.
type Driver struct {
	ID            string       `bson:"_id,omitempty" json:"id"`
	Name          string       `bson:"name" json:"name"`
	LicenseNo     string       `bson:"license_no" json:"licenseNo"`
	Category      string       `bson:"category" json:"category"` // "Light", "Medium", "Heavy", "Hazardous"
	LicenseExpiry time.Time    `bson:"license_expiry" json:"licenseExpiry"`
	Status        DriverStatus `bson:"status" json:"status"`
	SafetyScore   int          `bson:"safety_score" json:"safetyScore"` // 0-100
	Phone         string       `bson:"phone" json:"phone"`
	Joined        time.Time    `bson:"joined" json:"joined"`
	TripCount     int          `bson:"trip_count" json:"tripCount"`
	CreatedAt     time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time    `bson:"updated_at" json:"updated_at"`
}

// IsValidDriverStatus checks if a driver status is valid.
func IsValidDriverStatus(s DriverStatus) bool {
	switch s {
	case DriverOnDuty, DriverOffDuty, DriverSuspended:
		return true
	default:
		return false
	}
}

// LicenseValid reports whether the driver's license is valid on the given
// day. Expiry is compared at day resolution: a license expiring today is
// still valid.
func (d *Driver) LicenseValid(today time.Time) bool {
	y, m, day := today.Date()
	start := time.Date(y, m, day, 0, 0, 0, 0, today.Location())
	return !d.LicenseExpiry.Before(start)
}
