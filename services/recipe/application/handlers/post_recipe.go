package handlers

import (
	"net/http"

	"github.com/ghuser/recipelog/pkg/httpx"
	pkgvalidator "github.com/ghuser/recipelog/pkg/validator"
	appsvcs "github.com/ghuser/recipelog/services/recipe/application/services"
	"github.com/ghuser/recipelog/services/recipe/domain/models"
)

// PostRecipeHandler handles POST /recipes requests.
type PostRecipeHandler struct {
	svc *appsvcs.Services
}

// NewPostRecipeHandler returns a PostRecipeHandler backed by the given services.
func NewPostRecipeHandler(svc *appsvcs.Services) *PostRecipeHandler {
	return &PostRecipeHandler{svc: svc}
}

// Execute creates a recipe.
//
//	@Summary		Create recipe
//	@Description	Creates a recipe. 202 means the store accepted the request but could not confirm the write.
//	@Tags			recipes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateRecipeRequest	true	"Recipe"
//	@Success		201		{object}	WriteResponse
//	@Success		202		{object}	WriteResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ValidationErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Router			/recipes [post]
func (h *PostRecipeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateRecipeRequest](w, r)
	if !ok {
		return
	}

	res, err := h.svc.Recipe.Submit(r.Context(), models.CreateState(), req.formInput())
	if err != nil {
		h.svc.Errors.WriteError(w, err)
		return
	}
	httpx.JSON(w, writeStatus(res.Result, http.StatusCreated), toWriteResponse(res.Result))
}
