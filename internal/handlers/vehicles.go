package handlers

import (
	"net/http"

	"github.com/lakshya2505/LogiCore/internal/models"
	"github.com/lakshya2505/LogiCore/internal/store"
)

// VehicleHandler serves the vehicle roster endpoints.
type VehicleHandler struct {
	store *store.Store
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(s *store.Store) *VehicleHandler {
	return &VehicleHandler{store: s}
}

// List returns all vehicles.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	writeJSON(w, http.StatusOK, snap.Vehicles)
}

// Create adds a vehicle to the fleet.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.Vehicle
	if !decodeBody(w, r, &in) {
		return
	}
	vehicle, err := h.store.CreateVehicle(r.Context(), in)
	if err != nil {
		writeFleetError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

// Update applies an administrative edit to a vehicle.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in models.Vehicle
	if !decodeBody(w, r, &in) {
		return
	}
	vehicle, err := h.store.UpdateVehicle(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeFleetError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// Delete removes a vehicle.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteVehicle(r.Context(), r.PathValue("id")); err != nil {
		writeFleetError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
