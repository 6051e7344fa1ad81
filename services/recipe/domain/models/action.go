package models

import "fmt"

// ActionKind is the verb of a RecordAction.
type ActionKind string

const (
	ActionEdit   ActionKind = "edit"
	ActionDelete ActionKind = "delete"
)

// RecordAction is a button press on a rendered record card.
type RecordAction struct {
	Kind ActionKind
	ID   RecipeID
}

// ParseRecordAction validates the action and id fields posted by a card.
func ParseRecordAction(kind, id string) (RecordAction, error) {
	rid := ParseRecipeID(id)
	if rid.IsZero() {
		return RecordAction{}, fmt.Errorf("record action: missing id")
	}
	switch k := ActionKind(kind); k {
	case ActionEdit, ActionDelete:
		return RecordAction{Kind: k, ID: rid}, nil
	default:
		return RecordAction{}, fmt.Errorf("record action: unknown action %q", kind)
	}
}
