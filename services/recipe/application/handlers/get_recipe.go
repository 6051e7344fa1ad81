package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/recipelog/pkg/httpx"
	appsvcs "github.com/ghuser/recipelog/services/recipe/application/services"
	"github.com/ghuser/recipelog/services/recipe/domain/models"
)

// GetRecipeHandler handles GET /recipes/{id} requests.
type GetRecipeHandler struct {
	svc *appsvcs.Services
}

// NewGetRecipeHandler returns a GetRecipeHandler backed by the given services.
func NewGetRecipeHandler(svc *appsvcs.Services) *GetRecipeHandler {
	return &GetRecipeHandler{svc: svc}
}

// Execute returns one recipe.
//
//	@Summary	Get recipe
//	@Tags		recipes
//	@Produce	json
//	@Param		id	path		string	true	"Recipe ID"
//	@Success	200	{object}	RecipeResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	502	{object}	ErrorResponse
//	@Router		/recipes/{id} [get]
func (h *GetRecipeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Recipe.Get(r.Context(), models.ParseRecipeID(chi.URLParam(r, "id")))
	if err != nil {
		h.svc.Errors.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toRecipeResponse(rec))
}
