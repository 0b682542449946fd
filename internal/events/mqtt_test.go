package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lakshya2505/LogiCore/internal/fleet"
)

func TestTopic(t *testing.T) {
	p := &Publisher{topicPrefix: "fleet"}

	tests := []struct {
		change fleet.Change
		want   string
	}{
		{fleet.Change{Collection: fleet.CollTrips, Op: fleet.OpUpdate, ID: "t1"}, "fleet/trips/update"},
		{fleet.Change{Collection: fleet.CollVehicles, Op: fleet.OpCreate, ID: "v1"}, "fleet/vehicles/create"},
		{fleet.Change{Collection: fleet.CollExpenses, Op: fleet.OpDelete, ID: "e1"}, "fleet/expenses/delete"},
	}
	for _, tt := range tests {
		if got := p.Topic(tt.change); got != tt.want {
			t.Errorf("Topic(%s %s) = %q, want %q", tt.change.Collection, tt.change.Op, got, tt.want)
		}
	}
}

func TestChangeEventEncoding(t *testing.T) {
	ev := changeEvent{
		Collection: fleet.CollTrips,
		Op:         string(fleet.OpUpdate),
		ID:         "t1",
		At:         time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["collection"] != "trips" || decoded["op"] != "update" || decoded["id"] != "t1" {
		t.Errorf("unexpected event shape: %s", payload)
	}
	// Doc is omitted when empty so delete events stay small.
	if _, present := decoded["doc"]; present {
		t.Error("empty doc should be omitted")
	}
}

func TestNewPublisher_BadBroker(t *testing.T) {
	if _, err := NewPublisher("tcp://127.0.0.1:1", "test-client", ""); err == nil {
		t.Error("expected error for unreachable broker, got nil")
	}
}
