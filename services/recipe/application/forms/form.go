// Package forms decodes and validates the recipe form.
package forms

import (
	"net/url"
	"strconv"
	"strings"

	pkgvalidator "github.com/ghuser/recipelog/pkg/validator"
	recipedomain "github.com/ghuser/recipelog/services/recipe/domain"
	"github.com/ghuser/recipelog/services/recipe/domain/models"
)

// Form field names, shared with the page template.
const (
	FieldID               = "id"
	FieldDishName         = "dishName"
	FieldCookingDate      = "cookingDate"
	FieldDishImage        = "dishImage"
	FieldTasteRating      = "tasteRating"
	FieldDifficultyRating = "difficultyRating"
	FieldIngredients      = "ingredients"
	FieldSteps            = "steps"
	FieldNotes            = "notes"
)

// FormInput is the raw text of every form field, as typed.
type FormInput struct {
	ID               string
	DishName         string
	CookingDate      string
	DishImage        string
	TasteRating      string
	DifficultyRating string
	Ingredients      string
	Steps            string
	Notes            string
}

// Decode reads a posted form.
func Decode(v url.Values) FormInput {
	return FormInput{
		ID:               v.Get(FieldID),
		DishName:         v.Get(FieldDishName),
		CookingDate:      v.Get(FieldCookingDate),
		DishImage:        v.Get(FieldDishImage),
		TasteRating:      v.Get(FieldTasteRating),
		DifficultyRating: v.Get(FieldDifficultyRating),
		Ingredients:      v.Get(FieldIngredients),
		Steps:            v.Get(FieldSteps),
		Notes:            v.Get(FieldNotes),
	}
}

// FromRecipe fills the form for editing r.
func FromRecipe(r *models.Recipe) FormInput {
	return FormInput{
		ID:               r.ID.String(),
		DishName:         r.DishName,
		CookingDate:      r.CookingDate,
		DishImage:        r.DishImage,
		TasteRating:      strconv.Itoa(r.TasteRating.Int()),
		DifficultyRating: strconv.Itoa(r.DifficultyRating.Int()),
		Ingredients:      r.Ingredients.Join(", "),
		Steps:            r.Steps,
		Notes:            r.Notes,
	}
}

// Blank is the form in create mode.
func Blank() FormInput {
	return FormInput{TasteRating: "0", DifficultyRating: "0"}
}

// EditState derives the edit target from the hidden id field.
func (in FormInput) EditState() models.EditState {
	return models.EditStateFromField(in.ID)
}

// RatingValue parses a rating field for display; anything invalid shows as 0.
func RatingValue(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 || v > models.MaxRating {
		return 0
	}
	return v
}

type candidate struct {
	DishName         string   `json:"dishName"         validate:"notblank"`
	CookingDate      string   `json:"cookingDate"      validate:"notblank"`
	DishImage        string   `json:"dishImage"        validate:"omitempty,http_url"`
	TasteRating      int      `json:"tasteRating"      validate:"gte=0,lte=5"`
	DifficultyRating int      `json:"difficultyRating" validate:"gte=0,lte=5"`
	Ingredients      []string `json:"ingredients"      validate:"min=1"`
	Steps            string   `json:"steps"            validate:"notblank"`
}

// Message order follows the form layout.
var fieldOrder = []string{
	FieldDishName, FieldCookingDate, FieldDishImage,
	FieldTasteRating, FieldDifficultyRating, FieldIngredients, FieldSteps,
}

var ruleMessages = map[string]string{
	FieldDishName:         "dish name is required",
	FieldCookingDate:      "cooking date is required",
	FieldDishImage:        "dish image must be an http or https URL",
	FieldTasteRating:      "taste rating must be between 0 and 5",
	FieldDifficultyRating: "difficulty rating must be between 0 and 5",
	FieldIngredients:      "at least one ingredient is required",
	FieldSteps:            "steps are required",
}

var parseMessages = map[string]string{
	FieldTasteRating:      "taste rating must be a whole number",
	FieldDifficultyRating: "difficulty rating must be a whole number",
}

// Validate checks every field and returns either a draft or a
// *domain.ValidationError listing all failures in form order.
func Validate(in FormInput) (models.RecipeDraft, error) {
	failed := map[string]string{}

	taste, ok := parseRating(in.TasteRating)
	if !ok {
		failed[FieldTasteRating] = parseMessages[FieldTasteRating]
	}
	difficulty, ok := parseRating(in.DifficultyRating)
	if !ok {
		failed[FieldDifficultyRating] = parseMessages[FieldDifficultyRating]
	}

	c := candidate{
		DishName:         strings.TrimSpace(in.DishName),
		CookingDate:      strings.TrimSpace(in.CookingDate),
		DishImage:        strings.TrimSpace(in.DishImage),
		TasteRating:      taste,
		DifficultyRating: difficulty,
		Ingredients:      models.ParseIngredients(in.Ingredients),
		Steps:            strings.TrimSpace(in.Steps),
	}
	for _, fe := range pkgvalidator.FieldErrors(pkgvalidator.Validate(&c)) {
		if _, seen := failed[fe.Field]; !seen {
			failed[fe.Field] = ruleMessages[fe.Field]
		}
	}

	if len(failed) > 0 {
		msgs := make([]string, 0, len(failed))
		for _, f := range fieldOrder {
			if m, ok := failed[f]; ok {
				msgs = append(msgs, m)
			}
		}
		return models.RecipeDraft{}, recipedomain.NewValidationError(msgs)
	}

	return models.RecipeDraft{
		DishName:         c.DishName,
		CookingDate:      c.CookingDate,
		DishImage:        c.DishImage,
		TasteRating:      models.Rating(c.TasteRating),
		DifficultyRating: models.Rating(c.DifficultyRating),
		Ingredients:      c.Ingredients,
		Steps:            c.Steps,
		Notes:            strings.TrimSpace(in.Notes),
	}, nil
}

// parseRating treats a blank field as 0.
func parseRating(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}
