package handlers

import (
	"net/http"

	"github.com/lakshya2505/LogiCore/internal/models"
	"github.com/lakshya2505/LogiCore/internal/store"
)

// MaintenanceHandler serves the maintenance log endpoints.
type MaintenanceHandler struct {
	store *store.Store
}

// NewMaintenanceHandler creates a new maintenance handler.
func NewMaintenanceHandler(s *store.Store) *MaintenanceHandler {
	return &MaintenanceHandler{store: s}
}

// List returns all maintenance logs.
func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	writeJSON(w, http.StatusOK, snap.MaintenanceLogs)
}

// Create records a maintenance log; an active log pulls the vehicle into
// the shop.
func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.MaintenanceLog
	if !decodeBody(w, r, &in) {
		return
	}
	logRec, err := h.store.AddMaintenanceLog(r.Context(), in)
	if err != nil {
		writeFleetError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, logRec)
}

// Complete marks a log as done and frees the vehicle. Idempotent: an
// already-completed log or unknown id returns a no-op.
func (h *MaintenanceHandler) Complete(w http.ResponseWriter, r *http.Request) {
	logRec, ok, err := h.store.CompleteMaintenanceLog(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFleetError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, map[string]bool{"noop": true})
		return
	}
	writeJSON(w, http.StatusOK, logRec)
}

// Delete removes a maintenance log. The vehicle's status is deliberately
// not reverted when an active log is deleted.
func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteMaintenanceLog(r.Context(), r.PathValue("id")); err != nil {
		writeFleetError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
