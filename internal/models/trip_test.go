package models

import "testing"

func TestIsValidTripStatus(t *testing.T) {
	tests := []struct {
		status TripStatus
		want   bool
	}{
		{TripDraft, true},
		{TripDispatched, true},
		{TripCompleted, true},
		{TripCancelled, true},
		{TripStatus("Pending"), false},
		{TripStatus(""), false},
	}
	for _, tt := range tests {
		if got := IsValidTripStatus(tt.status); got != tt.want {
			t.Errorf("IsValidTripStatus(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestTripTerminal(t *testing.T) {
	tests := []struct {
		status TripStatus
		want   bool
	}{
		{TripDraft, false},
		{TripDispatched, false},
		{TripCompleted, true},
		{TripCancelled, true},
	}
	for _, tt := range tests {
		trip := &Trip{Status: tt.status}
		if got := trip.Terminal(); got != tt.want {
			t.Errorf("Terminal() with status %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestExpenseFuelExpense(t *testing.T) {
	tests := []struct {
		expenseType string
		want        bool
	}{
		{"Fuel", true},
		{"Charging", true},
		{"Toll", false},
		{"Insurance", false},
		{"Repair", false},
	}
	for _, tt := range tests {
		e := &Expense{Type: tt.expenseType}
		if got := e.FuelExpense(); got != tt.want {
			t.Errorf("FuelExpense() with type %q = %v, want %v", tt.expenseType, got, tt.want)
		}
	}
}
