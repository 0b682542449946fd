package fleet

import (
	"time"

	"github.com/google/uuid"

	"github.com/lakshya2505/LogiCore/internal/models"
)

// Engine is the fleet operations state machine. Every operation takes the
// current snapshot and returns the next one together with the write
// intents that produced it; the input snapshot is never mutated.
//
// All validation happens before any change is recorded, so a rejected
// operation is never partially applied. Lifecycle transitions addressed
// at an unknown id (dispatch, complete, cancel, complete-maintenance)
// return an unchanged snapshot with no changes instead of an error, which
// keeps retries and stale clients harmless.
type Engine struct {
	now   func() time.Time
	newID func() string
}

// NewEngine creates an engine using the wall clock and random ids.
func NewEngine() *Engine {
	return &Engine{now: time.Now, newID: uuid.NewString}
}

func noop(snap Snapshot) (Result, error) {
	return Result{Snapshot: snap}, nil
}

// --- Vehicles ---

// CreateVehicle adds a vehicle to the fleet. New vehicles default to
// Available; a vehicle can never be created directly on a trip.
func (e *Engine) CreateVehicle(snap Snapshot, in models.Vehicle) (Result, error) {
	if in.Name == "" {
		return Result{}, invalid("name", "name is required")
	}
	if in.Plate == "" {
		return Result{}, invalid("plate", "plate is required")
	}
	if in.Capacity <= 0 {
		return Result{}, invalid("capacity", "capacity must be positive")
	}
	if in.Odometer < 0 {
		return Result{}, invalid("odometer", "odometer cannot be negative")
	}
	if in.Status == "" {
		in.Status = models.VehicleAvailable
	}
	if !models.IsValidVehicleStatus(in.Status) {
		return Result{}, invalid("status", "unknown vehicle status")
	}
	if in.Status == models.VehicleOnTrip {
		return Result{}, invalid("status", "on-trip status is derived from dispatch, not settable")
	}

	in.ID = e.newID()
	in.CreatedAt = e.now()
	in.UpdatedAt = in.CreatedAt

	next := snap.Clone()
	next.Vehicles = append(next.Vehicles, in)
	return Result{Snapshot: next, Changes: []Change{created(CollVehicles, in.ID, in)}}, nil
}

// UpdateVehicle applies an administrative edit. The status field is only
// editable while the vehicle is idle: while a dispatched trip or an
// active maintenance log exists for it, status is derived and locked.
func (e *Engine) UpdateVehicle(snap Snapshot, id string, in models.Vehicle) (Result, error) {
	i := snap.vehicleIndex(id)
	if i < 0 {
		return Result{}, ErrNotFound
	}
	cur := snap.Vehicles[i]

	if in.Name == "" {
		return Result{}, invalid("name", "name is required")
	}
	if in.Plate == "" {
		return Result{}, invalid("plate", "plate is required")
	}
	if in.Capacity <= 0 {
		return Result{}, invalid("capacity", "capacity must be positive")
	}
	if in.Odometer < 0 {
		return Result{}, invalid("odometer", "odometer cannot be negative")
	}
	if in.Status == "" {
		in.Status = cur.Status
	}
	if !models.IsValidVehicleStatus(in.Status) {
		return Result{}, invalid("status", "unknown vehicle status")
	}
	if in.Status != cur.Status {
		if in.Status == models.VehicleOnTrip {
			return Result{}, invalid("status", "on-trip status is derived from dispatch, not settable")
		}
		if snap.VehicleStatusLocked(id) {
			return Result{}, ErrStatusLocked
		}
	}

	in.ID = cur.ID
	in.CreatedAt = cur.CreatedAt
	in.UpdatedAt = e.now()

	next := snap.Clone()
	next.Vehicles[i] = in
	return Result{Snapshot: next, Changes: []Change{updated(CollVehicles, id, in)}}, nil
}

// DeleteVehicle removes a vehicle. References from trips, logs and
// expenses are weak, so deletion leaves them dangling rather than
// cascading; readers resolve dangling ids to "Unknown".
func (e *Engine) DeleteVehicle(snap Snapshot, id string) (Result, error) {
	i := snap.vehicleIndex(id)
	if i < 0 {
		return Result{}, ErrNotFound
	}
	next := snap.Clone()
	next.Vehicles = append(next.Vehicles[:i], next.Vehicles[i+1:]...)
	return Result{Snapshot: next, Changes: []Change{deleted(CollVehicles, id)}}, nil
}

// --- Drivers ---

// CreateDriver adds a driver to the roster. New drivers default to On Duty.
func (e *Engine) CreateDriver(snap Snapshot, in models.Driver) (Result, error) {
	if in.Name == "" {
		return Result{}, invalid("name", "name is required")
	}
	if in.LicenseNo == "" {
		return Result{}, invalid("licenseNo", "license number is required")
	}
	if in.LicenseExpiry.IsZero() {
		return Result{}, invalid("licenseExpiry", "license expiry date is required")
	}
	if in.Phone == "" {
		return Result{}, invalid("phone", "phone is required")
	}
	if in.SafetyScore < 0 || in.SafetyScore > 100 {
		return Result{}, invalid("safetyScore", "safety score must be between 0 and 100")
	}
	if in.Status == "" {
		in.Status = models.DriverOnDuty
	}
	if !models.IsValidDriverStatus(in.Status) {
		return Result{}, invalid("status", "unknown driver status")
	}

	in.ID = e.newID()
	in.CreatedAt = e.now()
	in.UpdatedAt = in.CreatedAt

	next := snap.Clone()
	next.Drivers = append(next.Drivers, in)
	return Result{Snapshot: next, Changes: []Change{created(CollDrivers, in.ID, in)}}, nil
}

// UpdateDriver applies an administrative edit to a driver.
func (e *Engine) UpdateDriver(snap Snapshot, id string, in models.Driver) (Result, error) {
	i := snap.driverIndex(id)
	if i < 0 {
		return Result{}, ErrNotFound
	}
	cur := snap.Drivers[i]

	if in.Name == "" {
		return Result{}, invalid("name", "name is required")
	}
	if in.LicenseNo == "" {
		return Result{}, invalid("licenseNo", "license number is required")
	}
	if in.LicenseExpiry.IsZero() {
		return Result{}, invalid("licenseExpiry", "license expiry date is required")
	}
	if in.SafetyScore < 0 || in.SafetyScore > 100 {
		return Result{}, invalid("safetyScore", "safety score must be between 0 and 100")
	}
	if in.Status == "" {
		in.Status = cur.Status
	}
	if !models.IsValidDriverStatus(in.Status) {
		return Result{}, invalid("status", "unknown driver status")
	}

	in.ID = cur.ID
	in.TripCount = cur.TripCount
	in.CreatedAt = cur.CreatedAt
	in.UpdatedAt = e.now()

	next := snap.Clone()
	next.Drivers[i] = in
	return Result{Snapshot: next, Changes: []Change{updated(CollDrivers, id, in)}}, nil
}

// DeleteDriver removes a driver, leaving any trip references dangling.
func (e *Engine) DeleteDriver(snap Snapshot, id string) (Result, error) {
	i := snap.driverIndex(id)
	if i < 0 {
		return Result{}, ErrNotFound
	}
	next := snap.Clone()
	next.Drivers = append(next.Drivers[:i], next.Drivers[i+1:]...)
	return Result{Snapshot: next, Changes: []Change{deleted(CollDrivers, id)}}, nil
}

// --- Trips ---

// CreateTrip validates a new trip against the assigned vehicle and driver
// and records it in Draft. Creation has no side effects on the vehicle or
// driver; only dispatch locks them.
func (e *Engine) CreateTrip(snap Snapshot, in models.Trip) (Result, error) {
	if in.VehicleID == "" {
		return Result{}, invalid("vehicleId", "select a vehicle")
	}
	if in.DriverID == "" {
		return Result{}, invalid("driverId", "select a driver")
	}
	if in.Origin == "" {
		return Result{}, invalid("origin", "origin is required")
	}
	if in.Destination == "" {
		return Result{}, invalid("destination", "destination is required")
	}
	if in.CargoWeight <= 0 {
		return Result{}, invalid("cargoWeight", "cargo weight must be positive")
	}
	if in.EstimatedKm <= 0 {
		return Result{}, invalid("estimatedKm", "estimated distance must be positive")
	}
	if in.Revenue < 0 {
		return Result{}, invalid("revenue", "revenue cannot be negative")
	}
	if in.Date.IsZero() {
		return Result{}, invalid("date", "date is required")
	}

	vehicle, ok := snap.Vehicle(in.VehicleID)
	if !ok {
		return Result{}, invalid("vehicleId", "vehicle not found")
	}
	if vehicle.Status != models.VehicleAvailable {
		return Result{}, invalid("vehicleId", "vehicle is not available")
	}
	// Capacity bound is inclusive: a cargo exactly at capacity is fine.
	if in.CargoWeight > vehicle.Capacity {
		return Result{}, invalid("cargoWeight", "cargo weight exceeds vehicle capacity")
	}

	driver, ok := snap.Driver(in.DriverID)
	if !ok {
		return Result{}, invalid("driverId", "driver not found")
	}
	if driver.Status == models.DriverSuspended {
		return Result{}, invalid("driverId", "driver is suspended")
	}
	if !driver.LicenseValid(e.now()) {
		return Result{}, invalid("driverId", "driver license has expired")
	}
	if snap.DriverDispatched(in.DriverID, "") {
		return Result{}, invalid("driverId", "driver already has a dispatched trip")
	}

	in.ID = e.newID()
	in.Status = models.TripDraft
	in.FinalOdometer = 0
	in.CreatedAt = e.now()
	in.UpdatedAt = in.CreatedAt

	next := snap.Clone()
	next.Trips = append(next.Trips, in)
	return Result{Snapshot: next, Changes: []Change{created(CollTrips, in.ID, in)}}, nil
}

// DispatchTrip commits a Draft trip to execution, locking its vehicle and
// driver. An unknown trip id is a silent no-op.
func (e *Engine) DispatchTrip(snap Snapshot, tripID string) (Result, error) {
	ti := snap.tripIndex(tripID)
	if ti < 0 {
		return noop(snap)
	}
	if snap.Trips[ti].Status != models.TripDraft {
		return Result{}, ErrTripNotDraft
	}

	next := snap.Clone()
	now := e.now()
	var changes []Change

	trip := &next.Trips[ti]
	trip.Status = models.TripDispatched
	trip.UpdatedAt = now
	changes = append(changes, updated(CollTrips, trip.ID, *trip))

	if vi := next.vehicleIndex(trip.VehicleID); vi >= 0 {
		v := &next.Vehicles[vi]
		v.Status = models.VehicleOnTrip
		v.UpdatedAt = now
		changes = append(changes, updated(CollVehicles, v.ID, *v))
	}
	if di := next.driverIndex(trip.DriverID); di >= 0 {
		d := &next.Drivers[di]
		if d.Status != models.DriverOnDuty {
			d.Status = models.DriverOnDuty
			d.UpdatedAt = now
			changes = append(changes, updated(CollDrivers, d.ID, *d))
		}
	}

	return Result{Snapshot: next, Changes: changes}, nil
}

// CompleteTrip closes a dispatched trip. The final odometer must be
// strictly greater than the vehicle's current reading; on success the
// vehicle returns to Available with its odometer advanced, and the driver
// returns to On Duty with one more trip on the record.
func (e *Engine) CompleteTrip(snap Snapshot, tripID string, finalOdometer float64) (Result, error) {
	ti := snap.tripIndex(tripID)
	if ti < 0 {
		return noop(snap)
	}
	if snap.Trips[ti].Status != models.TripDispatched {
		return Result{}, ErrTripNotDispatched
	}
	if finalOdometer <= 0 {
		return Result{}, invalid("finalOdometer", "final odometer must be positive")
	}
	if vehicle, ok := snap.Vehicle(snap.Trips[ti].VehicleID); ok && finalOdometer <= vehicle.Odometer {
		return Result{}, invalid("finalOdometer", "final odometer must exceed current vehicle odometer")
	}

	next := snap.Clone()
	now := e.now()
	var changes []Change

	trip := &next.Trips[ti]
	trip.Status = models.TripCompleted
	trip.FinalOdometer = finalOdometer
	trip.UpdatedAt = now
	changes = append(changes, updated(CollTrips, trip.ID, *trip))

	if vi := next.vehicleIndex(trip.VehicleID); vi >= 0 {
		v := &next.Vehicles[vi]
		v.Status = models.VehicleAvailable
		v.Odometer = finalOdometer
		v.UpdatedAt = now
		changes = append(changes, updated(CollVehicles, v.ID, *v))
	}
	if di := next.driverIndex(trip.DriverID); di >= 0 {
		d := &next.Drivers[di]
		d.Status = models.DriverOnDuty
		d.TripCount++
		d.UpdatedAt = now
		changes = append(changes, updated(CollDrivers, d.ID, *d))
	}

	return Result{Snapshot: next, Changes: changes}, nil
}

// CancelTrip cancels a Draft or Dispatched trip. Cancelling a Draft
// leaves the vehicle and driver untouched; cancelling a Dispatched trip
// releases them.
func (e *Engine) CancelTrip(snap Snapshot, tripID string) (Result, error) {
	ti := snap.tripIndex(tripID)
	if ti < 0 {
		return noop(snap)
	}
	if snap.Trips[ti].Terminal() {
		return Result{}, ErrTripFinished
	}
	wasDispatched := snap.Trips[ti].Status == models.TripDispatched

	next := snap.Clone()
	now := e.now()
	var changes []Change

	trip := &next.Trips[ti]
	trip.Status = models.TripCancelled
	trip.UpdatedAt = now
	changes = append(changes, updated(CollTrips, trip.ID, *trip))

	if wasDispatched {
		if vi := next.vehicleIndex(trip.VehicleID); vi >= 0 {
			v := &next.Vehicles[vi]
			v.Status = models.VehicleAvailable
			v.UpdatedAt = now
			changes = append(changes, updated(CollVehicles, v.ID, *v))
		}
		if di := next.driverIndex(trip.DriverID); di >= 0 {
			d := &next.Drivers[di]
			if d.Status != models.DriverOnDuty {
				d.Status = models.DriverOnDuty
				d.UpdatedAt = now
				changes = append(changes, updated(CollDrivers, d.ID, *d))
			}
		}
	}

	return Result{Snapshot: next, Changes: changes}, nil
}

// --- Maintenance ---

// AddMaintenanceLog records a maintenance log. An active (incomplete) log
// forces the vehicle into In Shop; a log created already completed has no
// vehicle effect.
func (e *Engine) AddMaintenanceLog(snap Snapshot, in models.MaintenanceLog) (Result, error) {
	if in.VehicleID == "" {
		return Result{}, invalid("vehicleId", "select a vehicle")
	}
	if in.ServiceType == "" {
		return Result{}, invalid("serviceType", "service type is required")
	}
	if in.Cost <= 0 {
		return Result{}, invalid("cost", "cost must be positive")
	}
	if in.Date.IsZero() {
		return Result{}, invalid("date", "date is required")
	}

	in.ID = e.newID()
	in.CreatedAt = e.now()
	in.UpdatedAt = in.CreatedAt

	next := snap.Clone()
	next.MaintenanceLogs = append(next.MaintenanceLogs, in)
	changes := []Change{created(CollMaintenance, in.ID, in)}

	if !in.Completed {
		if vi := next.vehicleIndex(in.VehicleID); vi >= 0 {
			v := &next.Vehicles[vi]
			if v.Status != models.VehicleInShop {
				v.Status = models.VehicleInShop
				v.UpdatedAt = in.CreatedAt
				changes = append(changes, updated(CollVehicles, v.ID, *v))
			}
		}
	}

	return Result{Snapshot: next, Changes: changes}, nil
}

// CompleteMaintenanceLog marks a log completed and returns the vehicle to
// Available. Unknown ids and already-completed logs are no-ops, so the
// operation is idempotent.
func (e *Engine) CompleteMaintenanceLog(snap Snapshot, logID string) (Result, error) {
	mi := snap.maintenanceIndex(logID)
	if mi < 0 {
		return noop(snap)
	}
	if snap.MaintenanceLogs[mi].Completed {
		return noop(snap)
	}

	next := snap.Clone()
	now := e.now()
	var changes []Change

	logRec := &next.MaintenanceLogs[mi]
	logRec.Completed = true
	logRec.UpdatedAt = now
	changes = append(changes, updated(CollMaintenance, logRec.ID, *logRec))

	if vi := next.vehicleIndex(logRec.VehicleID); vi >= 0 {
		v := &next.Vehicles[vi]
		if v.Status != models.VehicleAvailable {
			v.Status = models.VehicleAvailable
			v.UpdatedAt = now
			changes = append(changes, updated(CollVehicles, v.ID, *v))
		}
	}

	return Result{Snapshot: next, Changes: changes}, nil
}

// DeleteMaintenanceLog removes a log. Deleting an active log does not
// restore the vehicle's status; the vehicle stays In Shop until edited or
// another log completes.
func (e *Engine) DeleteMaintenanceLog(snap Snapshot, logID string) (Result, error) {
	mi := snap.maintenanceIndex(logID)
	if mi < 0 {
		return Result{}, ErrNotFound
	}
	next := snap.Clone()
	next.MaintenanceLogs = append(next.MaintenanceLogs[:mi], next.MaintenanceLogs[mi+1:]...)
	return Result{Snapshot: next, Changes: []Change{deleted(CollMaintenance, logID)}}, nil
}

// --- Expenses ---

// AddExpense records an expense. Expenses are immutable after creation.
func (e *Engine) AddExpense(snap Snapshot, in models.Expense) (Result, error) {
	if in.VehicleID == "" {
		return Result{}, invalid("vehicleId", "select a vehicle")
	}
	if in.Type == "" {
		return Result{}, invalid("type", "expense type is required")
	}
	if in.Cost <= 0 {
		return Result{}, invalid("cost", "cost must be positive")
	}
	if in.Date.IsZero() {
		return Result{}, invalid("date", "date is required")
	}
	if in.Liters != nil && !in.FuelExpense() {
		return Result{}, invalid("liters", "liters apply to fuel and charging expenses only")
	}
	if in.Liters != nil && *in.Liters <= 0 {
		return Result{}, invalid("liters", "liters must be positive")
	}

	in.ID = e.newID()
	in.CreatedAt = e.now()

	next := snap.Clone()
	next.Expenses = append(next.Expenses, in)
	return Result{Snapshot: next, Changes: []Change{created(CollExpenses, in.ID, in)}}, nil
}

// DeleteExpense removes an expense record.
func (e *Engine) DeleteExpense(snap Snapshot, id string) (Result, error) {
	i := snap.expenseIndex(id)
	if i < 0 {
		return Result{}, ErrNotFound
	}
	next := snap.Clone()
	next.Expenses = append(next.Expenses[:i], next.Expenses[i+1:]...)
	return Result{Snapshot: next, Changes: []Change{deleted(CollExpenses, id)}}, nil
}
