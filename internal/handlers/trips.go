package handlers

import (
	"net/http"

	"github.com/lakshya2505/LogiCore/internal/models"
	"github.com/lakshya2505/LogiCore/internal/store"
)

// TripHandler serves trip creation and the trip lifecycle transitions.
type TripHandler struct {
	store *store.Store
}

// NewTripHandler creates a new trip handler.
func NewTripHandler(s *store.Store) *TripHandler {
	return &TripHandler{store: s}
}

// lifecycleResponse reports the outcome of a lifecycle transition. Noop
// is true when the trip id matched nothing and the snapshot is unchanged.
type lifecycleResponse struct {
	Trip *models.Trip `json:"trip,omitempty"`
	Noop bool         `json:"noop,omitempty"`
}

// List returns all trips.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	writeJSON(w, http.StatusOK, snap.Trips)
}

// Create validates and records a new Draft trip.
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.Trip
	if !decodeBody(w, r, &in) {
		return
	}
	trip, err := h.store.CreateTrip(r.Context(), in)
	if err != nil {
		writeFleetError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// Dispatch commits a Draft trip to execution.
func (h *TripHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	trip, ok, err := h.store.DispatchTrip(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFleetError(w, err)
		return
	}
	h.writeLifecycle(w, trip, ok)
}

// Complete closes a dispatched trip with its final odometer reading.
func (h *TripHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FinalOdometer float64 `json:"finalOdometer"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	trip, ok, err := h.store.CompleteTrip(r.Context(), r.PathValue("id"), body.FinalOdometer)
	if err != nil {
		writeFleetError(w, err)
		return
	}
	h.writeLifecycle(w, trip, ok)
}

// Cancel cancels a Draft or Dispatched trip.
func (h *TripHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	trip, ok, err := h.store.CancelTrip(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFleetError(w, err)
		return
	}
	h.writeLifecycle(w, trip, ok)
}

func (h *TripHandler) writeLifecycle(w http.ResponseWriter, trip models.Trip, ok bool) {
	if !ok {
		// Unknown trip id: deliberate no-op, not an error.
		writeJSON(w, http.StatusOK, lifecycleResponse{Noop: true})
		return
	}
	writeJSON(w, http.StatusOK, lifecycleResponse{Trip: &trip})
}
