package fleet

import "github.com/lakshya2505/LogiCore/internal/models"

// Snapshot is the full current set of fleet records at a point in time.
//
// Readers must treat a snapshot as immutable; all mutation goes through
// the Engine, which returns a fresh snapshot plus the write intents that
// produced it.
type Snapshot struct {
	Vehicles        []models.Vehicle
	Drivers         []models.Driver
	Trips           []models.Trip
	MaintenanceLogs []models.MaintenanceLog
	Expenses        []models.Expense
}

// Clone returns a snapshot whose slices are independent copies, so a
// transition can mutate the clone without touching the original.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Vehicles:        make([]models.Vehicle, len(s.Vehicles)),
		Drivers:         make([]models.Driver, len(s.Drivers)),
		Trips:           make([]models.Trip, len(s.Trips)),
		MaintenanceLogs: make([]models.MaintenanceLog, len(s.MaintenanceLogs)),
		Expenses:        make([]models.Expense, len(s.Expenses)),
	}
	copy(out.Vehicles, s.Vehicles)
	copy(out.Drivers, s.Drivers)
	copy(out.Trips, s.Trips)
	copy(out.MaintenanceLogs, s.MaintenanceLogs)
	copy(out.Expenses, s.Expenses)
	return out
}

// vehicleIndex returns the index of the vehicle with the given id, or -1.
func (s Snapshot) vehicleIndex(id string) int {
	for i := range s.Vehicles {
		if s.Vehicles[i].ID == id {
			return i
		}
	}
	return -1
}

func (s Snapshot) driverIndex(id string) int {
	for i := range s.Drivers {
		if s.Drivers[i].ID == id {
			return i
		}
	}
	return -1
}

func (s Snapshot) tripIndex(id string) int {
	for i := range s.Trips {
		if s.Trips[i].ID == id {
			return i
		}
	}
	return -1
}

func (s Snapshot) maintenanceIndex(id string) int {
	for i := range s.MaintenanceLogs {
		if s.MaintenanceLogs[i].ID == id {
			return i
		}
	}
	return -1
}

func (s Snapshot) expenseIndex(id string) int {
	for i := range s.Expenses {
		if s.Expenses[i].ID == id {
			return i
		}
	}
	return -1
}

// Vehicle looks up a vehicle by id.
func (s Snapshot) Vehicle(id string) (models.Vehicle, bool) {
	if i := s.vehicleIndex(id); i >= 0 {
		return s.Vehicles[i], true
	}
	return models.Vehicle{}, false
}

// Driver looks up a driver by id.
func (s Snapshot) Driver(id string) (models.Driver, bool) {
	if i := s.driverIndex(id); i >= 0 {
		return s.Drivers[i], true
	}
	return models.Driver{}, false
}

// Trip looks up a trip by id.
func (s Snapshot) Trip(id string) (models.Trip, bool) {
	if i := s.tripIndex(id); i >= 0 {
		return s.Trips[i], true
	}
	return models.Trip{}, false
}

// MaintenanceLog looks up a maintenance log by id.
func (s Snapshot) MaintenanceLog(id string) (models.MaintenanceLog, bool) {
	if i := s.maintenanceIndex(id); i >= 0 {
		return s.MaintenanceLogs[i], true
	}
	return models.MaintenanceLog{}, false
}

// DriverDispatched reports whether the driver is linked to any trip
// currently in the Dispatched state, excluding the given trip id.
// Drivers on Draft trips are deliberately not excluded from new
// assignments.
func (s Snapshot) DriverDispatched(driverID, excludeTripID string) bool {
	for i := range s.Trips {
		t := &s.Trips[i]
		if t.ID != excludeTripID && t.DriverID == driverID && t.Status == models.TripDispatched {
			return true
		}
	}
	return false
}

// VehicleStatusLocked reports whether the vehicle's status is currently
// derived from an in-flight operation: a dispatched trip or an active
// maintenance log. A locked status may not be edited directly.
func (s Snapshot) VehicleStatusLocked(vehicleID string) bool {
	for i := range s.Trips {
		if s.Trips[i].VehicleID == vehicleID && s.Trips[i].Status == models.TripDispatched {
			return true
		}
	}
	for i := range s.MaintenanceLogs {
		if s.MaintenanceLogs[i].VehicleID == vehicleID && !s.MaintenanceLogs[i].Completed {
			return true
		}
	}
	return false
}
