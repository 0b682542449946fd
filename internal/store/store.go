package store

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/lakshya2505/LogiCore/internal/fleet"
	"github.com/lakshya2505/LogiCore/internal/models"
)

// Writer carries an operation's write intents to durable storage. It must
// either apply the whole change set or report an error; the store only
// advances its in-memory snapshot after the writer succeeds.
type Writer interface {
	Apply(ctx context.Context, changes []fleet.Change) error
}

// Listener is notified with the committed change set after each
// successful operation. Listeners run synchronously under the store lock
// and must not call back into the store.
type Listener func(changes []fleet.Change)

// Store owns the fleet snapshot and serializes every operation through
// the state machine: a single logical writer doing read-modify-write over
// the full snapshot. Remote updates arriving through the change feed
// replace whole collections between operations, so precondition checks
// always run against the latest snapshot the store has seen.
type Store struct {
	mu        sync.Mutex
	snap      fleet.Snapshot
	engine    *fleet.Engine
	writer    Writer
	listeners []Listener
}

// New creates a store over an initial snapshot.
func New(initial fleet.Snapshot, writer Writer) *Store {
	return &Store{
		snap:   initial,
		engine: fleet.NewEngine(),
		writer: writer,
	}
}

// AddListener registers a committed-change listener.
func (s *Store) AddListener(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() fleet.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Metrics computes the dashboard aggregates over the current snapshot.
func (s *Store) Metrics() fleet.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fleet.ComputeMetrics(s.snap)
}

// apply runs one transition under the lock: compute, persist, then and
// only then advance the snapshot and notify listeners.
func (s *Store) apply(ctx context.Context, op func(fleet.Snapshot) (fleet.Result, error)) (fleet.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := op(s.snap)
	if err != nil {
		return fleet.Result{}, err
	}
	if len(res.Changes) == 0 {
		// No-op transition (unknown id); nothing to persist.
		return res, nil
	}
	if err := s.writer.Apply(ctx, res.Changes); err != nil {
		log.WithError(err).Error("failed to persist fleet changes, snapshot unchanged")
		return fleet.Result{}, err
	}
	s.snap = res.Snapshot
	for _, l := range s.listeners {
		l(res.Changes)
	}
	return res, nil
}

// --- Vehicles ---

// CreateVehicle validates and records a new vehicle.
func (s *Store) CreateVehicle(ctx context.Context, in models.Vehicle) (models.Vehicle, error) {
	res, err := s.apply(ctx, func(snap fleet.Snapshot) (fleet.Result, error) {
		return s.engine.CreateVehicle(snap, in)
	})
	if err != nil {
		return models.Vehicle{}, err
	}
	return res.Changes[0].Doc.(models.Vehicle), nil
}

// UpdateVehicle applies an administrative vehicle edit.
func (s *Store) UpdateVehicle(ctx context.Context, id string, in models.Vehicle) (models.Vehicle, error) {
	res, err := s.apply(ctx, func(snap fleet.Snapshot) (fleet.Result, error) {
		return s.engine.UpdateVehicle(snap, id, in)
	})
	if err != nil {
		return models.Vehicle{}, err
	}
	return res.Changes[0].Doc.(models.Vehicle), nil
}

// DeleteVehicle removes a vehicle.
func (s *Store) DeleteVehicle(ctx context.Context, id string) error {
	_, err := s.apply(ctx, func(snap fleet.Snapshot) (fleet.Result, error) {
		return s.engine.DeleteVehicle(snap, id)
	})
	return err
}

// --- Drivers ---

// CreateDriver validates and records a new driver.
func (s *Store) CreateDriver(ctx context.Context, in models.Driver) (models.Driver, error) {
	res, err := s.apply(ctx, func(snap fleet.Snapshot) (fleet.Result, error) {
		return s.engine.CreateDriver(snap, in)
	})
	if err != nil {
		return models.Driver{}, err
	}
	return res.Changes[0].Doc.(models.Driver), nil
}

// UpdateDriver applies an administrative driver edit.
func (s *Store) UpdateDriver(ctx context.Context, id string, in models.Driver) (models.Driver, error) {
	res, err := s.apply(ctx, func(snap fleet.Snapshot) (fleet.Result, error) {
		return s.engine.UpdateDriver(snap, id, in)
	})
	if err != nil {
		return models.Driver{}, err
	}
	return res.Changes[0].Doc.(models.Driver), nil
}

// DeleteDriver removes a driver.
func (s *Store) DeleteDriver(ctx context.Context, id string) error {
	_, err := s.apply(ctx, func(snap fleet.Snapshot) (fleet.Result, error) {
		return s.engine.DeleteDriver(snap, id)
	})
	return err
}

// --- Trips ---

// CreateTrip validates and records a new Draft trip.
func (s *Store) CreateTrip(ctx context.Context, in models.Trip) (models.Trip, error) {
	res, err := s.apply(ctx, func(snap fleet.Snapshot) (fleet.Result, error) {
		return s.engine.CreateTrip(snap, in)
	})
	if err != nil {
		return models.Trip{}, err
	}
	return res.Changes[0].Doc.(models.Trip), nil
}

// DispatchTrip moves a Draft trip to Dispatched, locking vehicle and
// driver. Returns the trip state after the operation; ok is false when
// the id matched nothing (a no-op).
func (s *Store) DispatchTrip(ctx context.Context, tripID string) (models.Trip, bool, error) {
	res, err := s.apply(ctx, func(snap fleet.Snapshot) (fleet.Result, error) {
		return s.engine.DispatchTrip(snap, tripID)
	})
	if err != nil {
		return models.Trip{}, false, err
	}
	trip, ok := res.Snapshot.Trip(tripID)
	return trip, ok, nil
}

// CompleteTrip completes a dispatched trip with its final odometer.
func (s *Store) CompleteTrip(ctx context.Context, tripID string, finalOdometer float64) (models.Trip, bool, error) {
	res, err := s.apply(ctx, func(snap fleet.Snapshot) (fleet.Result, error) {
		return s.engine.CompleteTrip(snap, tripID, finalOdometer)
	})
	if err != nil {
		return models.Trip{}, false, err
	}
	trip, ok := res.Snapshot.Trip(tripID)
	return trip, ok, nil
}

// CancelTrip cancels a Draft or Dispatched trip.
func (s *Store) CancelTrip(ctx context.Context, tripID string) (models.Trip, bool, error) {
	res, err := s.apply(ctx, func(snap fleet.Snapshot) (fleet.Result, error) {
		return s.engine.CancelTrip(snap, tripID)
	})
	if err != nil {
		return models.Trip{}, false, err
	}
	trip, ok := res.Snapshot.Trip(tripID)
	return trip, ok, nil
}

// --- Maintenance ---

// AddMaintenanceLog records a maintenance log, forcing the vehicle into
// In Shop while the log is active.
func (s *Store) AddMaintenanceLog(ctx context.Context, in models.MaintenanceLog) (models.MaintenanceLog, error) {
	res, err := s.apply(ctx, func(snap fleet.Snapshot) (fleet.Result, error) {
		return s.engine.AddMaintenanceLog(snap, in)
	})
	if err != nil {
		return models.MaintenanceLog{}, err
	}
	return res.Changes[0].Doc.(models.MaintenanceLog), nil
}

// CompleteMaintenanceLog marks a log completed and frees the vehicle.
func (s *Store) CompleteMaintenanceLog(ctx context.Context, logID string) (models.MaintenanceLog, bool, error) {
	res, err := s.apply(ctx, func(snap fleet.Snapshot) (fleet.Result, error) {
		return s.engine.CompleteMaintenanceLog(snap, logID)
	})
	if err != nil {
		return models.MaintenanceLog{}, false, err
	}
	logRec, ok := res.Snapshot.MaintenanceLog(logID)
	return logRec, ok, nil
}

// DeleteMaintenanceLog removes a maintenance log.
func (s *Store) DeleteMaintenanceLog(ctx context.Context, logID string) error {
	_, err := s.apply(ctx, func(snap fleet.Snapshot) (fleet.Result, error) {
		return s.engine.DeleteMaintenanceLog(snap, logID)
	})
	return err
}

// --- Expenses ---

// AddExpense records an expense.
func (s *Store) AddExpense(ctx context.Context, in models.Expense) (models.Expense, error) {
	res, err := s.apply(ctx, func(snap fleet.Snapshot) (fleet.Result, error) {
		return s.engine.AddExpense(snap, in)
	})
	if err != nil {
		return models.Expense{}, err
	}
	return res.Changes[0].Doc.(models.Expense), nil
}

// DeleteExpense removes an expense.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	_, err := s.apply(ctx, func(snap fleet.Snapshot) (fleet.Result, error) {
		return s.engine.DeleteExpense(snap, id)
	})
	return err
}

// --- Remote change ingestion ---

// ReplaceVehicles swaps in the latest full vehicles collection delivered
// by the change feed. Last write wins at collection granularity.
func (s *Store) ReplaceVehicles(vehicles []models.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Vehicles = vehicles
}

// ReplaceDrivers swaps in the latest full drivers collection.
func (s *Store) ReplaceDrivers(drivers []models.Driver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Drivers = drivers
}

// ReplaceTrips swaps in the latest full trips collection.
func (s *Store) ReplaceTrips(trips []models.Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Trips = trips
}

// ReplaceMaintenanceLogs swaps in the latest full maintenance collection.
func (s *Store) ReplaceMaintenanceLogs(logs []models.MaintenanceLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.MaintenanceLogs = logs
}

// ReplaceExpenses swaps in the latest full expenses collection.
func (s *Store) ReplaceExpenses(expenses []models.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Expenses = expenses
}
