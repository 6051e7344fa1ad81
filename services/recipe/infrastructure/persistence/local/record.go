package local

import (
	"time"

	"github.com/ghuser/recipelog/services/recipe/domain/models"
	"github.com/ghuser/recipelog/services/recipe/infrastructure/persistence/fields"
)

// On-disk field names.
const (
	keyID               = "id"
	keyDishName         = "dishName"
	keyCookingDate      = "cookingDate"
	keyDishImage        = "dishImage"
	keyTasteRating      = "tasteRating"
	keyDifficultyRating = "difficultyRating"
	keyIngredients      = "ingredients"
	keySteps            = "steps"
	keyNotes            = "notes"
	keyCreatedAt        = "createdAt"
)

// rawRecord is one stored object. Keys this package does not know about are
// carried through untouched.
type rawRecord = fields.Object

func toRecipe(r rawRecord, id models.RecipeID) *models.Recipe {
	return &models.Recipe{
		ID:               id,
		DishName:         r.String(keyDishName),
		CookingDate:      r.String(keyCookingDate),
		DishImage:        r.String(keyDishImage),
		TasteRating:      r.Rating(keyTasteRating),
		DifficultyRating: r.Rating(keyDifficultyRating),
		Ingredients:      r.Ingredients(keyIngredients),
		Steps:            r.String(keySteps),
		Notes:            r.String(keyNotes),
		CreatedAt:        r.Time(keyCreatedAt),
	}
}

func recordID(r rawRecord) (models.RecipeID, bool) {
	return r.ID(keyID)
}

func newRawRecord(r *models.Recipe) rawRecord {
	rec := rawRecord{keyID: fields.NumericOrString(r.ID)}
	rec.Set(keyCreatedAt, r.CreatedAt.UTC().Format(time.RFC3339Nano))
	merge(rec, models.PatchFromDraft(r.Draft()))
	return rec
}

// merge overwrites only the keys p supplies.
func merge(r rawRecord, p models.RecipePatch) {
	if p.DishName != nil {
		r.Set(keyDishName, *p.DishName)
	}
	if p.CookingDate != nil {
		r.Set(keyCookingDate, *p.CookingDate)
	}
	if p.DishImage != nil {
		r.Set(keyDishImage, *p.DishImage)
	}
	if p.TasteRating != nil {
		r.Set(keyTasteRating, p.TasteRating.Int())
	}
	if p.DifficultyRating != nil {
		r.Set(keyDifficultyRating, p.DifficultyRating.Int())
	}
	if p.Ingredients != nil {
		ing := *p.Ingredients
		if ing == nil {
			ing = models.Ingredients{}
		}
		r.Set(keyIngredients, []string(ing))
	}
	if p.Steps != nil {
		r.Set(keySteps, *p.Steps)
	}
	if p.Notes != nil {
		r.Set(keyNotes, *p.Notes)
	}
}
