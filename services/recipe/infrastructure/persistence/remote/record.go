package remote

import (
	"github.com/ghuser/recipelog/services/recipe/domain/models"
	"github.com/ghuser/recipelog/services/recipe/infrastructure/persistence/fields"
)

// Column names used by the spreadsheet service.
const (
	keyAction           = "action"
	keyID               = "ID"
	keyDishName         = "料理名稱"
	keyCookingDate      = "烹飪日期"
	keyDishImage        = "圖片URL"
	keyTasteRating      = "美味度"
	keyDifficultyRating = "難易度"
	keyIngredients      = "食材"
	keySteps            = "步驟"
	keyNotes            = "備註"
	keyCreatedAt        = "建立時間"
)

const (
	actionAdd    = "add"
	actionUpdate = "update"
	actionDelete = "delete"
)

func toRecipe(o fields.Object, id models.RecipeID) *models.Recipe {
	return &models.Recipe{
		ID:               id,
		DishName:         o.String(keyDishName),
		CookingDate:      o.String(keyCookingDate),
		DishImage:        o.String(keyDishImage),
		TasteRating:      o.Rating(keyTasteRating),
		DifficultyRating: o.Rating(keyDifficultyRating),
		Ingredients:      o.Ingredients(keyIngredients),
		Steps:            o.String(keySteps),
		Notes:            o.String(keyNotes),
		CreatedAt:        o.Time(keyCreatedAt),
	}
}

// writePayload is the body of a POST. The service expects every column, so
// updates send the full merged record.
func writePayload(action string, id models.RecipeID, d *models.RecipeDraft) fields.Object {
	o := fields.Object{}
	o.Set(keyAction, action)
	if !id.IsZero() {
		o.Set(keyID, id.String())
	}
	if d == nil {
		return o
	}
	o.Set(keyDishName, d.DishName)
	o.Set(keyCookingDate, d.CookingDate)
	o.Set(keyDishImage, d.DishImage)
	o.Set(keyTasteRating, d.TasteRating.Int())
	o.Set(keyDifficultyRating, d.DifficultyRating.Int())
	o.Set(keyIngredients, d.Ingredients.Join(","))
	o.Set(keySteps, d.Steps)
	o.Set(keyNotes, d.Notes)
	return o
}
