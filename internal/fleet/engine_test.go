package fleet

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lakshya2505/LogiCore/internal/models"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// testEngine returns an engine with a fixed clock and deterministic ids.
func testEngine() *Engine {
	n := 0
	return &Engine{
		now: func() time.Time { return testNow },
		newID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	}
}

// baseSnapshot is one available vehicle (5000 kg capacity, 10000 km) and
// one on-duty driver with a far-future license.
func baseSnapshot() Snapshot {
	return Snapshot{
		Vehicles: []models.Vehicle{{
			ID:       "v1",
			Name:     "Tata LPT 1613",
			Plate:    "MH12AB1234",
			Type:     "Truck",
			Capacity: 5000,
			Odometer: 10000,
			Status:   models.VehicleAvailable,
		}},
		Drivers: []models.Driver{{
			ID:            "d1",
			Name:          "Ramesh Kumar",
			LicenseNo:     "MH-2019-110045",
			LicenseExpiry: testNow.AddDate(3, 0, 0),
			Status:        models.DriverOnDuty,
			Phone:         "+91 98200 11223",
		}},
	}
}

func draftTrip() models.Trip {
	return models.Trip{
		VehicleID:   "v1",
		DriverID:    "d1",
		Origin:      "Mumbai",
		Destination: "Pune",
		CargoType:   "FMCG",
		CargoWeight: 4000,
		EstimatedKm: 150,
		Revenue:     28000,
		Date:        testNow,
	}
}

func mustCreateTrip(t *testing.T, e *Engine, snap Snapshot, in models.Trip) (Snapshot, models.Trip) {
	t.Helper()
	res, err := e.CreateTrip(snap, in)
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	return res.Snapshot, res.Changes[0].Doc.(models.Trip)
}

func wantValidation(t *testing.T, err error, field string) {
	t.Helper()
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != field {
		t.Errorf("validation field = %q, want %q", ve.Field, field)
	}
}

func TestCreateTrip_StartsInDraft(t *testing.T) {
	e := testEngine()
	snap, trip := mustCreateTrip(t, e, baseSnapshot(), draftTrip())

	if trip.Status != models.TripDraft {
		t.Errorf("trip status = %q, want Draft", trip.Status)
	}
	if trip.ID == "" {
		t.Error("expected a generated trip id")
	}
	// Creation has no side effects on vehicle or driver.
	if v, _ := snap.Vehicle("v1"); v.Status != models.VehicleAvailable {
		t.Errorf("vehicle status = %q, want Available", v.Status)
	}
	if d, _ := snap.Driver("d1"); d.Status != models.DriverOnDuty {
		t.Errorf("driver status = %q, want On Duty", d.Status)
	}
}

func TestCreateTrip_CapacityBoundary(t *testing.T) {
	e := testEngine()

	// Exactly at capacity is accepted.
	in := draftTrip()
	in.CargoWeight = 5000
	if _, err := e.CreateTrip(baseSnapshot(), in); err != nil {
		t.Errorf("cargo at exact capacity rejected: %v", err)
	}

	// Over capacity is rejected, naming the cargo weight field.
	in.CargoWeight = 6000
	_, err := e.CreateTrip(baseSnapshot(), in)
	wantValidation(t, err, "cargoWeight")
}

func TestCreateTrip_LicenseExpiry(t *testing.T) {
	e := testEngine()

	snap := baseSnapshot()
	snap.Drivers[0].LicenseExpiry = testNow.AddDate(0, 0, -1)
	_, err := e.CreateTrip(snap, draftTrip())
	wantValidation(t, err, "driverId")

	// A license expiring today is still valid.
	snap.Drivers[0].LicenseExpiry = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if _, err := e.CreateTrip(snap, draftTrip()); err != nil {
		t.Errorf("license expiring today rejected: %v", err)
	}
}

func TestCreateTrip_SuspendedDriver(t *testing.T) {
	e := testEngine()
	snap := baseSnapshot()
	snap.Drivers[0].Status = models.DriverSuspended
	_, err := e.CreateTrip(snap, draftTrip())
	wantValidation(t, err, "driverId")
}

func TestCreateTrip_VehicleNotAvailable(t *testing.T) {
	e := testEngine()
	for _, status := range []models.VehicleStatus{models.VehicleOnTrip, models.VehicleInShop, models.VehicleRetired} {
		snap := baseSnapshot()
		snap.Vehicles[0].Status = status
		_, err := e.CreateTrip(snap, draftTrip())
		wantValidation(t, err, "vehicleId")
	}
}

func TestCreateTrip_DriverConcurrency(t *testing.T) {
	e := testEngine()
	snap := baseSnapshot()
	snap.Vehicles = append(snap.Vehicles, models.Vehicle{
		ID: "v2", Name: "Second", Plate: "KA05CD5678", Capacity: 5000, Odometer: 500,
		Status: models.VehicleAvailable,
	})

	// A driver on a Draft trip may still be attached to another trip.
	snap, _ = mustCreateTrip(t, e, snap, draftTrip())
	in := draftTrip()
	in.VehicleID = "v2"
	snap, second := mustCreateTrip(t, e, snap, in)

	// Once one trip is dispatched the driver is excluded.
	res, err := e.DispatchTrip(snap, second.ID)
	if err != nil {
		t.Fatalf("DispatchTrip failed: %v", err)
	}
	snap = res.Snapshot

	third := draftTrip()
	third.VehicleID = "v1"
	_, err = e.CreateTrip(snap, third)
	wantValidation(t, err, "driverId")
}

func TestTripLifecycle_DispatchComplete(t *testing.T) {
	e := testEngine()
	snap, trip := mustCreateTrip(t, e, baseSnapshot(), draftTrip())

	res, err := e.DispatchTrip(snap, trip.ID)
	if err != nil {
		t.Fatalf("DispatchTrip failed: %v", err)
	}
	snap = res.Snapshot
	if got, _ := snap.Trip(trip.ID); got.Status != models.TripDispatched {
		t.Errorf("trip status = %q, want Dispatched", got.Status)
	}
	if v, _ := snap.Vehicle("v1"); v.Status != models.VehicleOnTrip {
		t.Errorf("vehicle status = %q, want On Trip", v.Status)
	}
	if d, _ := snap.Driver("d1"); d.Status != models.DriverOnDuty {
		t.Errorf("driver status = %q, want On Duty", d.Status)
	}

	res, err = e.CompleteTrip(snap, trip.ID, 10500)
	if err != nil {
		t.Fatalf("CompleteTrip failed: %v", err)
	}
	snap = res.Snapshot
	got, _ := snap.Trip(trip.ID)
	if got.Status != models.TripCompleted {
		t.Errorf("trip status = %q, want Completed", got.Status)
	}
	if got.FinalOdometer != 10500 {
		t.Errorf("final odometer = %v, want 10500", got.FinalOdometer)
	}
	v, _ := snap.Vehicle("v1")
	if v.Status != models.VehicleAvailable {
		t.Errorf("vehicle status = %q, want Available", v.Status)
	}
	if v.Odometer != 10500 {
		t.Errorf("vehicle odometer = %v, want 10500", v.Odometer)
	}
	d, _ := snap.Driver("d1")
	if d.Status != models.DriverOnDuty {
		t.Errorf("driver status = %q, want On Duty", d.Status)
	}
	if d.TripCount != 1 {
		t.Errorf("driver trip count = %d, want 1", d.TripCount)
	}
}

func TestCompleteTrip_OdometerMustAdvance(t *testing.T) {
	e := testEngine()
	snap, trip := mustCreateTrip(t, e, baseSnapshot(), draftTrip())
	res, err := e.DispatchTrip(snap, trip.ID)
	if err != nil {
		t.Fatalf("DispatchTrip failed: %v", err)
	}
	snap = res.Snapshot

	// Equal to the current reading is rejected.
	_, err = e.CompleteTrip(snap, trip.ID, 10000)
	wantValidation(t, err, "finalOdometer")

	_, err = e.CompleteTrip(snap, trip.ID, 9000)
	wantValidation(t, err, "finalOdometer")

	if _, err := e.CompleteTrip(snap, trip.ID, 10001); err != nil {
		t.Errorf("finalOdometer just above current rejected: %v", err)
	}
}

func TestCancelTrip_Draft(t *testing.T) {
	e := testEngine()
	snap, trip := mustCreateTrip(t, e, baseSnapshot(), draftTrip())

	res, err := e.CancelTrip(snap, trip.ID)
	if err != nil {
		t.Fatalf("CancelTrip failed: %v", err)
	}
	snap = res.Snapshot
	if got, _ := snap.Trip(trip.ID); got.Status != models.TripCancelled {
		t.Errorf("trip status = %q, want Cancelled", got.Status)
	}
	// Cancelling a draft touches neither vehicle nor driver.
	if v, _ := snap.Vehicle("v1"); v.Status != models.VehicleAvailable {
		t.Errorf("vehicle status = %q, want Available", v.Status)
	}
	for _, ch := range res.Changes {
		if ch.Collection != CollTrips {
			t.Errorf("unexpected %s change on draft cancel", ch.Collection)
		}
	}
}

func TestCancelTrip_Dispatched(t *testing.T) {
	e := testEngine()
	snap, trip := mustCreateTrip(t, e, baseSnapshot(), draftTrip())
	res, err := e.DispatchTrip(snap, trip.ID)
	if err != nil {
		t.Fatalf("DispatchTrip failed: %v", err)
	}
	snap = res.Snapshot
	snap.Drivers[0].Status = models.DriverOffDuty

	res, err = e.CancelTrip(snap, trip.ID)
	if err != nil {
		t.Fatalf("CancelTrip failed: %v", err)
	}
	snap = res.Snapshot
	if got, _ := snap.Trip(trip.ID); got.Status != models.TripCancelled {
		t.Errorf("trip status = %q, want Cancelled", got.Status)
	}
	if v, _ := snap.Vehicle("v1"); v.Status != models.VehicleAvailable {
		t.Errorf("vehicle status = %q, want Available after cancel", v.Status)
	}
	if d, _ := snap.Driver("d1"); d.Status != models.DriverOnDuty {
		t.Errorf("driver status = %q, want On Duty after cancel", d.Status)
	}
}

func TestTripLifecycle_ForwardOnly(t *testing.T) {
	e := testEngine()
	snap, trip := mustCreateTrip(t, e, baseSnapshot(), draftTrip())

	// Draft cannot be completed.
	if _, err := e.CompleteTrip(snap, trip.ID, 10500); !errors.Is(err, ErrTripNotDispatched) {
		t.Errorf("completing a draft: err = %v, want ErrTripNotDispatched", err)
	}

	res, _ := e.DispatchTrip(snap, trip.ID)
	snap = res.Snapshot

	// Dispatched cannot be dispatched again.
	if _, err := e.DispatchTrip(snap, trip.ID); !errors.Is(err, ErrTripNotDraft) {
		t.Errorf("double dispatch: err = %v, want ErrTripNotDraft", err)
	}

	res, _ = e.CompleteTrip(snap, trip.ID, 10500)
	snap = res.Snapshot

	// Terminal states admit nothing.
	if _, err := e.DispatchTrip(snap, trip.ID); !errors.Is(err, ErrTripNotDraft) {
		t.Errorf("dispatch after complete: err = %v, want ErrTripNotDraft", err)
	}
	if _, err := e.CompleteTrip(snap, trip.ID, 11000); !errors.Is(err, ErrTripNotDispatched) {
		t.Errorf("double complete: err = %v, want ErrTripNotDispatched", err)
	}
	if _, err := e.CancelTrip(snap, trip.ID); !errors.Is(err, ErrTripFinished) {
		t.Errorf("cancel after complete: err = %v, want ErrTripFinished", err)
	}
}

func TestLifecycle_UnknownIDIsNoop(t *testing.T) {
	e := testEngine()
	snap := baseSnapshot()

	for name, op := range map[string]func() (Result, error){
		"dispatch": func() (Result, error) { return e.DispatchTrip(snap, "missing") },
		"complete": func() (Result, error) { return e.CompleteTrip(snap, "missing", 10500) },
		"cancel":   func() (Result, error) { return e.CancelTrip(snap, "missing") },
		"complete maintenance": func() (Result, error) {
			return e.CompleteMaintenanceLog(snap, "missing")
		},
	} {
		res, err := op()
		if err != nil {
			t.Errorf("%s on unknown id: unexpected error %v", name, err)
		}
		if len(res.Changes) != 0 {
			t.Errorf("%s on unknown id produced %d changes", name, len(res.Changes))
		}
	}
}

func TestDispatch_DanglingReferences(t *testing.T) {
	e := testEngine()
	snap, trip := mustCreateTrip(t, e, baseSnapshot(), draftTrip())

	// Delete vehicle and driver after the draft exists.
	snap.Vehicles = nil
	snap.Drivers = nil

	res, err := e.DispatchTrip(snap, trip.ID)
	if err != nil {
		t.Fatalf("dispatch with dangling refs: %v", err)
	}
	if got, _ := res.Snapshot.Trip(trip.ID); got.Status != models.TripDispatched {
		t.Errorf("trip status = %q, want Dispatched", got.Status)
	}
	for _, ch := range res.Changes {
		if ch.Collection != CollTrips {
			t.Errorf("unexpected %s change with dangling references", ch.Collection)
		}
	}
}

func TestEngine_InputSnapshotNotMutated(t *testing.T) {
	e := testEngine()
	snap, trip := mustCreateTrip(t, e, baseSnapshot(), draftTrip())

	if _, err := e.DispatchTrip(snap, trip.ID); err != nil {
		t.Fatalf("DispatchTrip failed: %v", err)
	}
	if got, _ := snap.Trip(trip.ID); got.Status != models.TripDraft {
		t.Errorf("input snapshot mutated: trip status = %q", got.Status)
	}
	if v, _ := snap.Vehicle("v1"); v.Status != models.VehicleAvailable {
		t.Errorf("input snapshot mutated: vehicle status = %q", v.Status)
	}
}

func TestOnTripInvariant(t *testing.T) {
	// v.status == On Trip iff exactly one dispatched trip references v.
	e := testEngine()
	snap, trip := mustCreateTrip(t, e, baseSnapshot(), draftTrip())
	res, err := e.DispatchTrip(snap, trip.ID)
	if err != nil {
		t.Fatalf("DispatchTrip failed: %v", err)
	}
	snap = res.Snapshot

	for i := range snap.Vehicles {
		v := &snap.Vehicles[i]
		dispatched := 0
		for j := range snap.Trips {
			if snap.Trips[j].VehicleID == v.ID && snap.Trips[j].Status == models.TripDispatched {
				dispatched++
			}
		}
		if (v.Status == models.VehicleOnTrip) != (dispatched == 1) {
			t.Errorf("vehicle %s: status %q with %d dispatched trips", v.ID, v.Status, dispatched)
		}
	}
}

func TestMaintenanceLifecycle(t *testing.T) {
	e := testEngine()
	snap := baseSnapshot()

	res, err := e.AddMaintenanceLog(snap, models.MaintenanceLog{
		VehicleID:   "v1",
		ServiceType: "Brake Service",
		Cost:        4200,
		Date:        testNow,
	})
	if err != nil {
		t.Fatalf("AddMaintenanceLog failed: %v", err)
	}
	snap = res.Snapshot
	logID := res.Changes[0].ID
	if v, _ := snap.Vehicle("v1"); v.Status != models.VehicleInShop {
		t.Errorf("vehicle status = %q, want In Shop", v.Status)
	}

	res, err = e.CompleteMaintenanceLog(snap, logID)
	if err != nil {
		t.Fatalf("CompleteMaintenanceLog failed: %v", err)
	}
	snap = res.Snapshot
	if logRec, _ := snap.MaintenanceLog(logID); !logRec.Completed {
		t.Error("log not marked completed")
	}
	if v, _ := snap.Vehicle("v1"); v.Status != models.VehicleAvailable {
		t.Errorf("vehicle status = %q, want Available", v.Status)
	}

	// Second completion is a no-op.
	res, err = e.CompleteMaintenanceLog(snap, logID)
	if err != nil {
		t.Fatalf("second CompleteMaintenanceLog failed: %v", err)
	}
	if len(res.Changes) != 0 {
		t.Errorf("second completion produced %d changes, want 0", len(res.Changes))
	}
}

func TestAddMaintenanceLog_AlreadyCompleted(t *testing.T) {
	e := testEngine()
	res, err := e.AddMaintenanceLog(baseSnapshot(), models.MaintenanceLog{
		VehicleID:   "v1",
		ServiceType: "Full Inspection",
		Cost:        900,
		Date:        testNow,
		Completed:   true,
	})
	if err != nil {
		t.Fatalf("AddMaintenanceLog failed: %v", err)
	}
	if v, _ := res.Snapshot.Vehicle("v1"); v.Status != models.VehicleAvailable {
		t.Errorf("completed log changed vehicle status to %q", v.Status)
	}
}

func TestDeleteMaintenanceLog_DoesNotRestoreVehicle(t *testing.T) {
	e := testEngine()
	res, err := e.AddMaintenanceLog(baseSnapshot(), models.MaintenanceLog{
		VehicleID:   "v1",
		ServiceType: "Engine Overhaul",
		Cost:        15000,
		Date:        testNow,
	})
	if err != nil {
		t.Fatalf("AddMaintenanceLog failed: %v", err)
	}
	snap := res.Snapshot
	logID := res.Changes[0].ID

	res, err = e.DeleteMaintenanceLog(snap, logID)
	if err != nil {
		t.Fatalf("DeleteMaintenanceLog failed: %v", err)
	}
	if _, ok := res.Snapshot.MaintenanceLog(logID); ok {
		t.Error("log still present after delete")
	}
	// The vehicle stays In Shop until edited or another log completes.
	if v, _ := res.Snapshot.Vehicle("v1"); v.Status != models.VehicleInShop {
		t.Errorf("vehicle status = %q, want In Shop", v.Status)
	}
}

func TestUpdateVehicle_StatusLock(t *testing.T) {
	e := testEngine()
	snap, trip := mustCreateTrip(t, e, baseSnapshot(), draftTrip())
	res, err := e.DispatchTrip(snap, trip.ID)
	if err != nil {
		t.Fatalf("DispatchTrip failed: %v", err)
	}
	snap = res.Snapshot

	edit, _ := snap.Vehicle("v1")
	edit.Status = models.VehicleRetired
	if _, err := e.UpdateVehicle(snap, "v1", edit); !errors.Is(err, ErrStatusLocked) {
		t.Errorf("retiring an on-trip vehicle: err = %v, want ErrStatusLocked", err)
	}

	// Non-status edits are fine while locked.
	edit, _ = snap.Vehicle("v1")
	edit.Region = "South"
	if _, err := e.UpdateVehicle(snap, "v1", edit); err != nil {
		t.Errorf("non-status edit rejected while on trip: %v", err)
	}

	// Idle vehicles can be retired directly.
	idle := baseSnapshot()
	edit, _ = idle.Vehicle("v1")
	edit.Status = models.VehicleRetired
	if _, err := e.UpdateVehicle(idle, "v1", edit); err != nil {
		t.Errorf("retiring an idle vehicle rejected: %v", err)
	}
}

func TestCreateVehicle_Validation(t *testing.T) {
	e := testEngine()
	tests := []struct {
		name  string
		mut   func(*models.Vehicle)
		field string
	}{
		{"missing name", func(v *models.Vehicle) { v.Name = "" }, "name"},
		{"missing plate", func(v *models.Vehicle) { v.Plate = "" }, "plate"},
		{"zero capacity", func(v *models.Vehicle) { v.Capacity = 0 }, "capacity"},
		{"negative odometer", func(v *models.Vehicle) { v.Odometer = -1 }, "odometer"},
		{"on trip status", func(v *models.Vehicle) { v.Status = models.VehicleOnTrip }, "status"},
		{"unknown status", func(v *models.Vehicle) { v.Status = "Broken" }, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := models.Vehicle{Name: "Test", Plate: "MH01XX0001", Capacity: 1000}
			tt.mut(&in)
			_, err := e.CreateVehicle(Snapshot{}, in)
			wantValidation(t, err, tt.field)
		})
	}
}

func TestCreateDriver_Validation(t *testing.T) {
	e := testEngine()
	valid := models.Driver{
		Name:          "Test Driver",
		LicenseNo:     "XX-0000",
		LicenseExpiry: testNow.AddDate(1, 0, 0),
		Phone:         "+91 90000 00000",
		SafetyScore:   85,
	}

	res, err := e.CreateDriver(Snapshot{}, valid)
	if err != nil {
		t.Fatalf("CreateDriver failed: %v", err)
	}
	if d := res.Changes[0].Doc.(models.Driver); d.Status != models.DriverOnDuty {
		t.Errorf("default driver status = %q, want On Duty", d.Status)
	}

	bad := valid
	bad.SafetyScore = 101
	_, err = e.CreateDriver(Snapshot{}, bad)
	wantValidation(t, err, "safetyScore")
}

func TestAddExpense_Validation(t *testing.T) {
	e := testEngine()
	liters := 40.0

	res, err := e.AddExpense(baseSnapshot(), models.Expense{
		VehicleID: "v1", Type: "Fuel", Cost: 3600, Date: testNow, Liters: &liters,
	})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	expenseID := res.Changes[0].ID

	// Liters only apply to fuel and charging.
	_, err = e.AddExpense(baseSnapshot(), models.Expense{
		VehicleID: "v1", Type: "Toll", Cost: 250, Date: testNow, Liters: &liters,
	})
	wantValidation(t, err, "liters")

	_, err = e.AddExpense(baseSnapshot(), models.Expense{
		VehicleID: "v1", Type: "Toll", Cost: 0, Date: testNow,
	})
	wantValidation(t, err, "cost")

	// Expenses are delete-only after creation.
	res2, err := e.DeleteExpense(res.Snapshot, expenseID)
	if err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}
	if len(res2.Snapshot.Expenses) != 0 {
		t.Error("expense still present after delete")
	}
}

func TestDirectOps_UnknownID(t *testing.T) {
	e := testEngine()
	snap := Snapshot{}

	if _, err := e.UpdateVehicle(snap, "missing", models.Vehicle{Name: "x", Plate: "y", Capacity: 1}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateVehicle: err = %v, want ErrNotFound", err)
	}
	if _, err := e.DeleteVehicle(snap, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteVehicle: err = %v, want ErrNotFound", err)
	}
	if _, err := e.DeleteDriver(snap, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteDriver: err = %v, want ErrNotFound", err)
	}
	if _, err := e.DeleteMaintenanceLog(snap, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteMaintenanceLog: err = %v, want ErrNotFound", err)
	}
	if _, err := e.DeleteExpense(snap, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteExpense: err = %v, want ErrNotFound", err)
	}
}
