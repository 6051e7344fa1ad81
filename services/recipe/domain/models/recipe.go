package models

import (
	"strings"
	"time"
)

// RecipeID is the store-assigned identifier of a Recipe. It is opaque: the
// local store uses millisecond timestamps, the remote store whatever the
// spreadsheet assigns.
type RecipeID string

// ParseRecipeID trims s; the empty ID means "no record".
func ParseRecipeID(s string) RecipeID {
	return RecipeID(strings.TrimSpace(s))
}

// String returns the underlying string value.
func (id RecipeID) String() string {
	return string(id)
}

// IsZero reports whether id is empty.
func (id RecipeID) IsZero() bool {
	return id == ""
}

// Recipe is one logged cooking entry.
type Recipe struct {
	ID               RecipeID
	DishName         string
	CookingDate      string
	DishImage        string
	TasteRating      Rating
	DifficultyRating Rating
	Ingredients      Ingredients
	Steps            string
	Notes            string
	CreatedAt        time.Time
}

// RecipeDraft is validated user data without store-owned fields.
type RecipeDraft struct {
	DishName         string
	CookingDate      string
	DishImage        string
	TasteRating      Rating
	DifficultyRating Rating
	Ingredients      Ingredients
	Steps            string
	Notes            string
}

// NewRecipe builds a Recipe from a draft. createdAt is normalised to UTC.
func NewRecipe(id RecipeID, d RecipeDraft, createdAt time.Time) *Recipe {
	return &Recipe{
		ID:               id,
		DishName:         d.DishName,
		CookingDate:      d.CookingDate,
		DishImage:        d.DishImage,
		TasteRating:      d.TasteRating,
		DifficultyRating: d.DifficultyRating,
		Ingredients:      d.Ingredients.Clone(),
		Steps:            d.Steps,
		Notes:            d.Notes,
		CreatedAt:        createdAt.UTC(),
	}
}

// Draft returns the user-editable part of r.
func (r *Recipe) Draft() RecipeDraft {
	return RecipeDraft{
		DishName:         r.DishName,
		CookingDate:      r.CookingDate,
		DishImage:        r.DishImage,
		TasteRating:      r.TasteRating,
		DifficultyRating: r.DifficultyRating,
		Ingredients:      r.Ingredients.Clone(),
		Steps:            r.Steps,
		Notes:            r.Notes,
	}
}

// Clone returns a deep copy of r.
func (r *Recipe) Clone() *Recipe {
	c := *r
	c.Ingredients = r.Ingredients.Clone()
	return &c
}

// RecipePatch is an update payload. Nil fields are not supplied and leave the
// stored value untouched.
type RecipePatch struct {
	DishName         *string
	CookingDate      *string
	DishImage        *string
	TasteRating      *Rating
	DifficultyRating *Rating
	Ingredients      *Ingredients
	Steps            *string
	Notes            *string
}

// PatchFromDraft supplies every field of d.
func PatchFromDraft(d RecipeDraft) RecipePatch {
	ing := d.Ingredients.Clone()
	return RecipePatch{
		DishName:         &d.DishName,
		CookingDate:      &d.CookingDate,
		DishImage:        &d.DishImage,
		TasteRating:      &d.TasteRating,
		DifficultyRating: &d.DifficultyRating,
		Ingredients:      &ing,
		Steps:            &d.Steps,
		Notes:            &d.Notes,
	}
}

// IsEmpty reports whether p supplies no field.
func (p RecipePatch) IsEmpty() bool {
	return p.DishName == nil && p.CookingDate == nil && p.DishImage == nil &&
		p.TasteRating == nil && p.DifficultyRating == nil && p.Ingredients == nil &&
		p.Steps == nil && p.Notes == nil
}

// Apply returns a copy of r with the supplied fields overwritten. ID and
// CreatedAt never change.
func (p RecipePatch) Apply(r *Recipe) *Recipe {
	out := r.Clone()
	if p.DishName != nil {
		out.DishName = *p.DishName
	}
	if p.CookingDate != nil {
		out.CookingDate = *p.CookingDate
	}
	if p.DishImage != nil {
		out.DishImage = *p.DishImage
	}
	if p.TasteRating != nil {
		out.TasteRating = *p.TasteRating
	}
	if p.DifficultyRating != nil {
		out.DifficultyRating = *p.DifficultyRating
	}
	if p.Ingredients != nil {
		out.Ingredients = p.Ingredients.Clone()
	}
	if p.Steps != nil {
		out.Steps = *p.Steps
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	return out
}
