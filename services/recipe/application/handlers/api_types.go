package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ghuser/recipelog/services/recipe/application/forms"
	"github.com/ghuser/recipelog/services/recipe/domain/models"
)

// RecipeResponse is one record.
type RecipeResponse struct {
	ID               string     `json:"id"                  example:"1704067200000"`
	DishName         string     `json:"dishName"            example:"味噌湯"`
	CookingDate      string     `json:"cookingDate"         example:"2024-01-01"`
	DishImage        string     `json:"dishImage,omitempty" example:"https://example.com/miso.jpg"`
	TasteRating      int        `json:"tasteRating"         example:"4"`
	DifficultyRating int        `json:"difficultyRating"    example:"1"`
	Ingredients      []string   `json:"ingredients"`
	Steps            string     `json:"steps"               example:"煮水, 下料"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        *time.Time `json:"createdAt,omitempty" example:"2024-01-01T12:00:00Z"`
} // @name RecipeResponse

// RecipeListResponse is returned by GET /recipes.
type RecipeListResponse struct {
	Recipes []RecipeResponse `json:"recipes"`
	Count   int              `json:"count" example:"1"`
} // @name RecipeListResponse

// CreateRecipeRequest is the request body for POST /recipes. Only size caps
// are checked on decode; the recipe rules run in the form validator so every
// failure is reported together.
type CreateRecipeRequest struct {
	DishName         string   `json:"dishName"         validate:"max=200"  example:"味噌湯"`
	CookingDate      string   `json:"cookingDate"      validate:"max=40"   example:"2024-01-01"`
	DishImage        string   `json:"dishImage"        validate:"max=2048" example:"https://example.com/miso.jpg"`
	TasteRating      int      `json:"tasteRating"                          example:"4"`
	DifficultyRating int      `json:"difficultyRating"                     example:"1"`
	Ingredients      []string `json:"ingredients"      validate:"max=100"`
	Steps            string   `json:"steps"                                example:"煮水, 下料"`
	Notes            string   `json:"notes"`
} // @name CreateRecipeRequest

// UpdateRecipeRequest is the request body for PUT /recipes/{id}. Omitted
// fields keep their stored value.
type UpdateRecipeRequest struct {
	DishName         *string   `json:"dishName"         validate:"omitempty,max=200"  example:"豚汁"`
	CookingDate      *string   `json:"cookingDate"      validate:"omitempty,max=40"`
	DishImage        *string   `json:"dishImage"        validate:"omitempty,max=2048"`
	TasteRating      *int      `json:"tasteRating"`
	DifficultyRating *int      `json:"difficultyRating"`
	Ingredients      *[]string `json:"ingredients"      validate:"omitempty,max=100"`
	Steps            *string   `json:"steps"`
	Notes            *string   `json:"notes"`
} // @name UpdateRecipeRequest

// WriteResponse reports a write. Outcome is "success" when the store
// confirmed it and "unknown" when the request was delivered but the store
// could not report back.
type WriteResponse struct {
	Outcome string          `json:"outcome"           example:"success"`
	Message string          `json:"message,omitempty"`
	Recipe  *RecipeResponse `json:"recipe,omitempty"`
} // @name WriteResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"recipe not found"`
} // @name ErrorResponse

// ValidationErrorResponse lists every validation failure in form order.
type ValidationErrorResponse struct {
	Error    string   `json:"error"    example:"Validation failed"`
	Messages []string `json:"messages" example:"dish name is required"`
} // @name ValidationErrorResponse

func toRecipeResponse(r *models.Recipe) RecipeResponse {
	out := RecipeResponse{
		ID:               r.ID.String(),
		DishName:         r.DishName,
		CookingDate:      r.CookingDate,
		DishImage:        r.DishImage,
		TasteRating:      r.TasteRating.Int(),
		DifficultyRating: r.DifficultyRating.Int(),
		Ingredients:      r.Ingredients.Clone(),
		Steps:            r.Steps,
		Notes:            r.Notes,
	}
	if out.Ingredients == nil {
		out.Ingredients = []string{}
	}
	if !r.CreatedAt.IsZero() {
		t := r.CreatedAt
		out.CreatedAt = &t
	}
	return out
}

func toWriteResponse(res models.WriteResult) WriteResponse {
	out := WriteResponse{Outcome: res.Outcome.String(), Message: res.Message}
	if res.Recipe != nil {
		rr := toRecipeResponse(res.Recipe)
		out.Recipe = &rr
	}
	return out
}

// writeStatus is 202 for writes the store could not confirm.
func writeStatus(res models.WriteResult, confirmed int) int {
	if res.Outcome == models.WriteUnknown {
		return http.StatusAccepted
	}
	return confirmed
}

func (req *CreateRecipeRequest) formInput() forms.FormInput {
	return forms.FormInput{
		DishName:         req.DishName,
		CookingDate:      req.CookingDate,
		DishImage:        req.DishImage,
		TasteRating:      strconv.Itoa(req.TasteRating),
		DifficultyRating: strconv.Itoa(req.DifficultyRating),
		Ingredients:      strings.Join(req.Ingredients, ","),
		Steps:            req.Steps,
		Notes:            req.Notes,
	}
}

// applyTo overlays the supplied fields on in.
func (req *UpdateRecipeRequest) applyTo(in *forms.FormInput) {
	if req.DishName != nil {
		in.DishName = *req.DishName
	}
	if req.CookingDate != nil {
		in.CookingDate = *req.CookingDate
	}
	if req.DishImage != nil {
		in.DishImage = *req.DishImage
	}
	if req.TasteRating != nil {
		in.TasteRating = strconv.Itoa(*req.TasteRating)
	}
	if req.DifficultyRating != nil {
		in.DifficultyRating = strconv.Itoa(*req.DifficultyRating)
	}
	if req.Ingredients != nil {
		in.Ingredients = strings.Join(*req.Ingredients, ",")
	}
	if req.Steps != nil {
		in.Steps = *req.Steps
	}
	if req.Notes != nil {
		in.Notes = *req.Notes
	}
}
