package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TopicRecipeCreated = "recipe.created"
	TopicRecipeUpdated = "recipe.updated"
	TopicRecipeDeleted = "recipe.deleted"
)

// RecipeChangedEvent is published after a write the store accepted.
// Confirmed is false when the store could not report the outcome.
type RecipeChangedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	RecipeID   string    `json:"recipe_id,omitempty"`
	DishName   string    `json:"dish_name,omitempty"`
	Confirmed  bool      `json:"confirmed"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewRecipeChangedEvent stamps a fresh event ID and the current time.
func NewRecipeChangedEvent(id, dishName string, confirmed bool) RecipeChangedEvent {
	return RecipeChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		RecipeID:   id,
		DishName:   dishName,
		Confirmed:  confirmed,
		OccurredAt: time.Now().UTC(),
	}
}
