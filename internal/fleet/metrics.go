package fleet

import (
	"math"

	"github.com/lakshya2505/LogiCore/internal/models"
)

// Metrics are the derived aggregates shown on the dashboard. They are
// pure functions of the snapshot, recomputed on demand, never persisted.
type Metrics struct {
	ActiveFleet       int     `json:"activeFleet"`
	MaintenanceAlerts int     `json:"maintenanceAlerts"`
	UtilizationRate   int     `json:"utilizationRate"`
	PendingCargo      int     `json:"pendingCargo"`
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalExpenses     float64 `json:"totalExpenses"`
}

// ComputeMetrics derives the dashboard aggregates from a snapshot.
func ComputeMetrics(snap Snapshot) Metrics {
	var m Metrics
	var onTrip, nonRetired int
	for i := range snap.Vehicles {
		v := &snap.Vehicles[i]
		if v.Active() {
			m.ActiveFleet++
		}
		switch v.Status {
		case models.VehicleInShop:
			m.MaintenanceAlerts++
		case models.VehicleOnTrip:
			onTrip++
		}
		if v.Status != models.VehicleRetired {
			nonRetired++
		}
	}
	if nonRetired < 1 {
		nonRetired = 1
	}
	m.UtilizationRate = int(math.Round(float64(onTrip) / float64(nonRetired) * 100))

	for i := range snap.Trips {
		switch snap.Trips[i].Status {
		case models.TripDraft:
			m.PendingCargo++
		case models.TripCompleted:
			m.TotalRevenue += snap.Trips[i].Revenue
		}
	}
	for i := range snap.Expenses {
		m.TotalExpenses += snap.Expenses[i].Cost
	}
	for i := range snap.MaintenanceLogs {
		m.TotalExpenses += snap.MaintenanceLogs[i].Cost
	}
	return m
}

// DriverStats summarizes a single driver's trip record.
type DriverStats struct {
	DriverID  string  `json:"driverId"`
	Name      string  `json:"name"`
	Completed int     `json:"completed"`
	Settled   int     `json:"settled"` // completed + cancelled
	Revenue   float64 `json:"revenue"`
}

// ComputeDriverStats derives per-driver trip counts and revenue from the
// trips collection. Stats are keyed off the live driver roster; trips
// referencing deleted drivers are not reported.
func ComputeDriverStats(snap Snapshot) []DriverStats {
	stats := make([]DriverStats, len(snap.Drivers))
	index := make(map[string]int, len(snap.Drivers))
	for i := range snap.Drivers {
		stats[i] = DriverStats{DriverID: snap.Drivers[i].ID, Name: snap.Drivers[i].Name}
		index[snap.Drivers[i].ID] = i
	}
	for i := range snap.Trips {
		t := &snap.Trips[i]
		si, ok := index[t.DriverID]
		if !ok {
			continue
		}
		switch t.Status {
		case models.TripCompleted:
			stats[si].Completed++
			stats[si].Settled++
			stats[si].Revenue += t.Revenue
		case models.TripCancelled:
			stats[si].Settled++
		}
	}
	return stats
}

// ExpenseBreakdown splits expense spend into fuel (fuel + charging) and
// everything else.
type ExpenseBreakdown struct {
	Fuel  float64 `json:"fuel"`
	Other float64 `json:"other"`
}

// ComputeExpenseBreakdown derives the fuel/other expense split.
func ComputeExpenseBreakdown(snap Snapshot) ExpenseBreakdown {
	var b ExpenseBreakdown
	for i := range snap.Expenses {
		if snap.Expenses[i].FuelExpense() {
			b.Fuel += snap.Expenses[i].Cost
		} else {
			b.Other += snap.Expenses[i].Cost
		}
	}
	return b
}
