package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/lakshya2505/LogiCore/internal/fleet"
)

// errorResponse is the JSON error body. Field is set for validation
// failures so clients can attach the reason to the offending input.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.WithError(err).Error("failed to encode response")
		}
	}
}

// writeFleetError maps state machine errors onto HTTP statuses:
// validation failures are 400 with a field-level reason, stale-state
// transitions are 409, unknown directly-addressed entities are 404, and
// anything else is a backend failure.
func writeFleetError(w http.ResponseWriter, err error) {
	if ve, ok := fleet.AsValidation(err); ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Reason, Field: ve.Field})
		return
	}
	if fleet.IsStateConflict(err) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	}
	if errors.Is(err, fleet.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	log.WithError(err).Error("fleet operation failed")
	writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to persist operation"})
}

// decodeBody unmarshals a JSON request body into v, reporting a 400 on
// malformed input. Returns false when the request was already answered.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return false
	}
	return true
}
