package events_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/recipelog/services/recipe/domain/events"
)

func TestNewRecipeChangedEvent(t *testing.T) {
	evt := events.NewRecipeChangedEvent("1700000000000", "味噌湯", true)
	if evt.EventID == uuid.Nil {
		t.Fatal("expected non-nil EventID")
	}
	if evt.Version != 1 {
		t.Errorf("Version: got %d, want 1", evt.Version)
	}
	if evt.OccurredAt.IsZero() || evt.OccurredAt.Location().String() != "UTC" {
		t.Errorf("OccurredAt should be set in UTC, got %v", evt.OccurredAt)
	}
}

func TestRecipeChangedEvent_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(events.NewRecipeChangedEvent("1", "x", false))
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}
	for _, field := range []string{"event_id", "version", "recipe_id", "dish_name", "confirmed", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
}

func TestTopics_Distinct(t *testing.T) {
	seen := map[string]bool{}
	for _, topic := range []string{events.TopicRecipeCreated, events.TopicRecipeUpdated, events.TopicRecipeDeleted} {
		if topic == "" || seen[topic] {
			t.Fatalf("topic %q empty or duplicated", topic)
		}
		seen[topic] = true
	}
}
