package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/services/item/domain/events"
)

func TestItemQtyChangedEvent_JSONRoundTrip(t *testing.T) {
	original := events.ItemQtyChangedEvent{
		EventID:    uuid.MustParse("550e8400-e29b-41d4-a716-446655440001"),
		Version:    1,
		ItemID:     uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		OwnerID:    uuid.MustParse("660e8400-e29b-41d4-a716-446655440000"),
		Delta:      -2,
		Qty:        3,
		OccurredAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var decoded events.ItemQtyChangedEvent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}

	if decoded.EventID != original.EventID {
		t.Errorf("EventID: got %v, want %v", decoded.EventID, original.EventID)
	}
	if decoded.ItemID != original.ItemID {
		t.Errorf("ItemID: got %v, want %v", decoded.ItemID, original.ItemID)
	}
	if decoded.OwnerID != original.OwnerID {
		t.Errorf("OwnerID: got %v, want %v", decoded.OwnerID, original.OwnerID)
	}
	if decoded.Delta != original.Delta {
		t.Errorf("Delta: got %d, want %d", decoded.Delta, original.Delta)
	}
	if decoded.Qty != original.Qty {
		t.Errorf("Qty: got %d, want %d", decoded.Qty, original.Qty)
	}
	if !decoded.OccurredAt.Equal(original.OccurredAt) {
		t.Errorf("OccurredAt: got %v, want %v", decoded.OccurredAt, original.OccurredAt)
	}
}

func TestItemCreatedEvent_JSONFieldNames(t *testing.T) {
	evt := events.ItemCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ItemID:     uuid.New(),
		OwnerID:    uuid.New(),
		Name:       "milk",
		Qty:        2,
		OccurredAt: time.Now().UTC(),
	}

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}

	for _, field := range []string{"event_id", "version", "item_id", "owner_id", "name", "qty", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
}

func TestTopics(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{events.TopicItemCreated, "item.created"},
		{events.TopicItemQtyChanged, "item.qty_changed"},
		{events.TopicItemDeleted, "item.deleted"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("expected topic %q, got %q", tt.want, tt.got)
		}
	}
}
