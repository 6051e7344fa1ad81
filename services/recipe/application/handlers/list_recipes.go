package handlers

import (
	"net/http"

	"github.com/ghuser/recipelog/pkg/httpx"
	appsvcs "github.com/ghuser/recipelog/services/recipe/application/services"
)

// ListRecipesHandler handles GET /recipes requests.
type ListRecipesHandler struct {
	svc *appsvcs.Services
}

// NewListRecipesHandler returns a ListRecipesHandler backed by the given services.
func NewListRecipesHandler(svc *appsvcs.Services) *ListRecipesHandler {
	return &ListRecipesHandler{svc: svc}
}

// Execute lists recipes, optionally filtered by keyword.
//
//	@Summary		List recipes
//	@Description	Returns every recipe, or those whose dish name or an ingredient contains q (case-insensitive)
//	@Tags			recipes
//	@Produce		json
//	@Param			q	query		string	false	"Search keyword"
//	@Success		200	{object}	RecipeListResponse
//	@Failure		502	{object}	ErrorResponse
//	@Router			/recipes [get]
func (h *ListRecipesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.Recipe.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.svc.Errors.WriteError(w, err)
		return
	}
	out := RecipeListResponse{Recipes: make([]RecipeResponse, 0, len(records)), Count: len(records)}
	for _, rec := range records {
		out.Recipes = append(out.Recipes, toRecipeResponse(rec))
	}
	httpx.JSON(w, http.StatusOK, out)
}
