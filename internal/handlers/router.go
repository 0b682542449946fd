package handlers

import (
	"net/http"

	"github.com/lakshya2505/LogiCore/internal/middleware"
	"github.com/lakshya2505/LogiCore/internal/models"
)

// Router bundles everything the HTTP surface needs.
type Router struct {
	Auth        *AuthHandler
	Vehicles    *VehicleHandler
	Drivers     *DriverHandler
	Trips       *TripHandler
	Maintenance *MaintenanceHandler
	Expenses    *ExpenseHandler
	Dashboard   *DashboardHandler
	AuthMW      *middleware.AuthMiddleware
}

// Mux builds the route table. Role gates follow the operational split:
// managers own the roster and deletions, dispatchers run the daily
// workflow, reads are open to any authenticated user.
func (rt *Router) Mux() *http.ServeMux {
	mux := http.NewServeMux()

	manager := rt.AuthMW.RequireRole(models.RoleManager)
	dispatcher := rt.AuthMW.RequireRole(models.RoleDispatcher)

	// Auth
	mux.HandleFunc("POST /api/auth/login", rt.Auth.Login)
	mux.HandleFunc("POST /api/auth/register", rt.Auth.Register)
	mux.HandleFunc("GET /api/auth/profile", rt.Auth.GetProfile)
	mux.HandleFunc("PUT /api/auth/profile", rt.Auth.UpdateProfile)
	mux.HandleFunc("POST /api/auth/password", rt.Auth.ChangePassword)

	// Vehicles
	mux.HandleFunc("GET /api/vehicles", rt.Vehicles.List)
	mux.Handle("POST /api/vehicles", manager(http.HandlerFunc(rt.Vehicles.Create)))
	mux.Handle("PUT /api/vehicles/{id}", manager(http.HandlerFunc(rt.Vehicles.Update)))
	mux.Handle("DELETE /api/vehicles/{id}", manager(http.HandlerFunc(rt.Vehicles.Delete)))

	// Drivers
	mux.HandleFunc("GET /api/drivers", rt.Drivers.List)
	mux.Handle("POST /api/drivers", manager(http.HandlerFunc(rt.Drivers.Create)))
	mux.Handle("PUT /api/drivers/{id}", manager(http.HandlerFunc(rt.Drivers.Update)))
	mux.Handle("DELETE /api/drivers/{id}", manager(http.HandlerFunc(rt.Drivers.Delete)))

	// Trips
	mux.HandleFunc("GET /api/trips", rt.Trips.List)
	mux.Handle("POST /api/trips", dispatcher(http.HandlerFunc(rt.Trips.Create)))
	mux.Handle("POST /api/trips/{id}/dispatch", dispatcher(http.HandlerFunc(rt.Trips.Dispatch)))
	mux.Handle("POST /api/trips/{id}/complete", dispatcher(http.HandlerFunc(rt.Trips.Complete)))
	mux.Handle("POST /api/trips/{id}/cancel", dispatcher(http.HandlerFunc(rt.Trips.Cancel)))

	// Maintenance
	mux.HandleFunc("GET /api/maintenance", rt.Maintenance.List)
	mux.Handle("POST /api/maintenance", dispatcher(http.HandlerFunc(rt.Maintenance.Create)))
	mux.Handle("POST /api/maintenance/{id}/complete", dispatcher(http.HandlerFunc(rt.Maintenance.Complete)))
	mux.Handle("DELETE /api/maintenance/{id}", manager(http.HandlerFunc(rt.Maintenance.Delete)))

	// Expenses
	mux.HandleFunc("GET /api/expenses", rt.Expenses.List)
	mux.Handle("POST /api/expenses", dispatcher(http.HandlerFunc(rt.Expenses.Create)))
	mux.Handle("DELETE /api/expenses/{id}", manager(http.HandlerFunc(rt.Expenses.Delete)))

	// Dashboard and setup
	mux.HandleFunc("GET /api/dashboard", rt.Dashboard.Get)
	mux.Handle("POST /api/setup/seed", manager(http.HandlerFunc(rt.Dashboard.Seed)))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}
