package handlers

import (
	"net/http"

	"github.com/lakshya2505/LogiCore/internal/models"
	"github.com/lakshya2505/LogiCore/internal/store"
)

// DriverHandler serves the driver roster endpoints.
type DriverHandler struct {
	store *store.Store
}

// NewDriverHandler creates a new driver handler.
func NewDriverHandler(s *store.Store) *DriverHandler {
	return &DriverHandler{store: s}
}

// List returns all drivers.
func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	writeJSON(w, http.StatusOK, snap.Drivers)
}

// Create adds a driver to the roster.
func (h *DriverHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.Driver
	if !decodeBody(w, r, &in) {
		return
	}
	driver, err := h.store.CreateDriver(r.Context(), in)
	if err != nil {
		writeFleetError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, driver)
}

// Update applies an administrative edit to a driver.
func (h *DriverHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in models.Driver
	if !decodeBody(w, r, &in) {
		return
	}
	driver, err := h.store.UpdateDriver(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeFleetError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, driver)
}

// Delete removes a driver.
func (h *DriverHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteDriver(r.Context(), r.PathValue("id")); err != nil {
		writeFleetError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
