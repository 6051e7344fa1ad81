package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/recipelog/pkg/httpx"
	appsvcs "github.com/ghuser/recipelog/services/recipe/application/services"
	"github.com/ghuser/recipelog/services/recipe/domain/models"
)

// DeleteRecipeHandler handles DELETE /recipes/{id} requests.
type DeleteRecipeHandler struct {
	svc *appsvcs.Services
}

// NewDeleteRecipeHandler returns a DeleteRecipeHandler backed by the given services.
func NewDeleteRecipeHandler(svc *appsvcs.Services) *DeleteRecipeHandler {
	return &DeleteRecipeHandler{svc: svc}
}

// Execute deletes a recipe.
//
//	@Summary	Delete recipe
//	@Tags		recipes
//	@Produce	json
//	@Param		id	path		string	true	"Recipe ID"
//	@Success	200	{object}	WriteResponse
//	@Success	202	{object}	WriteResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	502	{object}	ErrorResponse
//	@Router		/recipes/{id} [delete]
func (h *DeleteRecipeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Recipe.Delete(r.Context(), models.ParseRecipeID(chi.URLParam(r, "id")))
	if err != nil {
		h.svc.Errors.WriteError(w, err)
		return
	}
	httpx.JSON(w, writeStatus(res.Result, http.StatusOK), toWriteResponse(res.Result))
}
