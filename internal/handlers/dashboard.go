package handlers

import (
	"errors"
	"net/http"

	"github.com/lakshya2505/LogiCore/internal/fleet"
	"github.com/lakshya2505/LogiCore/internal/store"
)

// DashboardHandler serves the derived KPI aggregates.
type DashboardHandler struct {
	store *store.Store
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(s *store.Store) *DashboardHandler {
	return &DashboardHandler{store: s}
}

// dashboardResponse bundles every derived aggregate the dashboard shows.
type dashboardResponse struct {
	Metrics  fleet.Metrics          `json:"metrics"`
	Drivers  []fleet.DriverStats    `json:"drivers"`
	Expenses fleet.ExpenseBreakdown `json:"expenses"`
}

// Get recomputes the aggregates over the current snapshot.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	writeJSON(w, http.StatusOK, dashboardResponse{
		Metrics:  fleet.ComputeMetrics(snap),
		Drivers:  fleet.ComputeDriverStats(snap),
		Expenses: fleet.ComputeExpenseBreakdown(snap),
	})
}

// Seed loads the starter fleet into an empty database.
func (h *DashboardHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Seed(r.Context()); err != nil {
		if errors.Is(err, store.ErrNotEmpty) {
			writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
			return
		}
		writeFleetError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "seed data loaded"})
}
