package store

import (
	"context"
	"errors"
	"time"

	"github.com/lakshya2505/LogiCore/internal/models"
)

// ErrNotEmpty is returned when seeding a store that already has data.
var ErrNotEmpty = errors.New("fleet collections are not empty")

// Seed loads a small starter fleet through the normal operations so every
// record passes validation. It refuses to run over existing data.
func (s *Store) Seed(ctx context.Context) error {
	snap := s.Snapshot()
	if len(snap.Vehicles) > 0 || len(snap.Drivers) > 0 || len(snap.Trips) > 0 ||
		len(snap.MaintenanceLogs) > 0 || len(snap.Expenses) > 0 {
		return ErrNotEmpty
	}

	today := time.Now().Truncate(24 * time.Hour)

	vehicles := []models.Vehicle{
		{Name: "Tata LPT 1613", Plate: "MH12AB1234", Type: "Truck", Capacity: 9000, Odometer: 84500, AcquisitionCost: 1850000, Year: 2021, Fuel: "Diesel", Region: "West"},
		{Name: "Ashok Leyland Dost", Plate: "KA05CD5678", Type: "Van", Capacity: 1250, Odometer: 43200, AcquisitionCost: 780000, Year: 2022, Fuel: "Diesel", Region: "South"},
		{Name: "Mahindra Treo", Plate: "DL08EF9012", Type: "Pickup", Capacity: 550, Odometer: 12800, AcquisitionCost: 360000, Year: 2023, Fuel: "Electric", Region: "North"},
	}
	var vehicleIDs []string
	for _, v := range vehicles {
		created, err := s.CreateVehicle(ctx, v)
		if err != nil {
			return err
		}
		vehicleIDs = append(vehicleIDs, created.ID)
	}

	drivers := []models.Driver{
		{Name: "Ramesh Kumar", LicenseNo: "MH-2019-110045", Category: "Heavy", LicenseExpiry: today.AddDate(2, 0, 0), SafetyScore: 92, Phone: "+91 98200 11223", Joined: today.AddDate(-3, 0, 0)},
		{Name: "Suresh Patil", LicenseNo: "KA-2020-220871", Category: "Medium", LicenseExpiry: today.AddDate(1, 3, 0), SafetyScore: 86, Phone: "+91 99450 44556", Joined: today.AddDate(-2, -4, 0)},
		{Name: "Amit Verma", LicenseNo: "DL-2021-330912", Category: "Light", LicenseExpiry: today.AddDate(0, 8, 0), SafetyScore: 78, Phone: "+91 98110 77889", Joined: today.AddDate(-1, 0, 0)},
	}
	var driverIDs []string
	for _, d := range drivers {
		created, err := s.CreateDriver(ctx, d)
		if err != nil {
			return err
		}
		driverIDs = append(driverIDs, created.ID)
	}

	_, err := s.CreateTrip(ctx, models.Trip{
		VehicleID:   vehicleIDs[0],
		DriverID:    driverIDs[0],
		Origin:      "Mumbai",
		Destination: "Pune",
		CargoType:   "FMCG",
		CargoWeight: 6500,
		EstimatedKm: 150,
		Revenue:     28000,
		Date:        today,
	})
	if err != nil {
		return err
	}

	liters := 38.5
	if _, err := s.AddExpense(ctx, models.Expense{
		VehicleID: vehicleIDs[1],
		Type:      "Fuel",
		Cost:      3600,
		Date:      today,
		Liters:    &liters,
	}); err != nil {
		return err
	}

	_, err = s.AddMaintenanceLog(ctx, models.MaintenanceLog{
		VehicleID:   vehicleIDs[2],
		ServiceType: "Full Inspection",
		Cost:        4200,
		Date:        today,
		Mechanic:    "City Motors",
		Completed:   true,
	})
	return err
}
