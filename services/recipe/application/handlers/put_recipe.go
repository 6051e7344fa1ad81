package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/recipelog/pkg/httpx"
	pkgvalidator "github.com/ghuser/recipelog/pkg/validator"
	"github.com/ghuser/recipelog/services/recipe/application/forms"
	appsvcs "github.com/ghuser/recipelog/services/recipe/application/services"
	"github.com/ghuser/recipelog/services/recipe/domain/models"
)

// PutRecipeHandler handles PUT /recipes/{id} requests.
type PutRecipeHandler struct {
	svc *appsvcs.Services
}

// NewPutRecipeHandler returns a PutRecipeHandler backed by the given services.
func NewPutRecipeHandler(svc *appsvcs.Services) *PutRecipeHandler {
	return &PutRecipeHandler{svc: svc}
}

// Execute updates the supplied fields of a recipe. The merged record is
// validated as a whole.
//
//	@Summary	Update recipe
//	@Tags		recipes
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Recipe ID"
//	@Param		request	body		UpdateRecipeRequest	true	"Fields to change"
//	@Success	200		{object}	WriteResponse
//	@Success	202		{object}	WriteResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Failure	422		{object}	ValidationErrorResponse
//	@Failure	502		{object}	ErrorResponse
//	@Router		/recipes/{id} [put]
func (h *PutRecipeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id := models.ParseRecipeID(chi.URLParam(r, "id"))
	req, ok := pkgvalidator.ValidateRequest[UpdateRecipeRequest](w, r)
	if !ok {
		return
	}

	current, err := h.svc.Recipe.Get(r.Context(), id)
	if err != nil {
		h.svc.Errors.WriteError(w, err)
		return
	}
	in := forms.FromRecipe(current)
	req.applyTo(&in)

	res, err := h.svc.Recipe.Submit(r.Context(), models.EditStateFor(current.ID), in)
	if err != nil {
		h.svc.Errors.WriteError(w, err)
		return
	}
	httpx.JSON(w, writeStatus(res.Result, http.StatusOK), toWriteResponse(res.Result))
}
