package models

// EditMode selects what a form submit does.
type EditMode int

const (
	ModeCreate EditMode = iota
	ModeEdit
)

// EditState is the form's edit target: either a new record or an existing ID.
type EditState struct {
	Mode EditMode
	ID   RecipeID
}

// CreateState is the state of a blank form.
func CreateState() EditState {
	return EditState{Mode: ModeCreate}
}

// EditStateFor targets the record with the given ID.
func EditStateFor(id RecipeID) EditState {
	return EditState{Mode: ModeEdit, ID: id}
}

// EditStateFromField derives the state from the hidden id form field.
func EditStateFromField(raw string) EditState {
	id := ParseRecipeID(raw)
	if id.IsZero() {
		return CreateState()
	}
	return EditStateFor(id)
}

// IsEdit reports whether the state targets an existing record.
func (s EditState) IsEdit() bool {
	return s.Mode == ModeEdit && !s.ID.IsZero()
}
