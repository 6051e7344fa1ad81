package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/recipelog/pkg/errhttp"
	"github.com/ghuser/recipelog/services/recipe/application/forms"
	appsvcs "github.com/ghuser/recipelog/services/recipe/application/services"
	"github.com/ghuser/recipelog/services/recipe/application/views"
	recipedomain "github.com/ghuser/recipelog/services/recipe/domain"
	"github.com/ghuser/recipelog/services/recipe/domain/models"
)

// GetEditHandler handles GET /recipes/{id}/edit: the page with the form
// loaded in edit mode.
type GetEditHandler struct {
	pages *Pages
}

// NewGetEditHandler returns a GetEditHandler rendering through pages.
func NewGetEditHandler(pages *Pages) *GetEditHandler {
	return &GetEditHandler{pages: pages}
}

// Execute renders the page with the form loaded for the record in the URL.
func (h *GetEditHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id := models.ParseRecipeID(chi.URLParam(r, "id"))
	form, err := h.pages.svc.Recipe.LoadForEdit(r.Context(), id)
	if err != nil {
		if errors.Is(err, recipedomain.ErrRecipeNotFound) {
			h.pages.redirectHome(w, r, "", appsvcs.NoticeFor(err))
			return
		}
		h.pages.report(r, "load recipe for edit", err)
		h.pages.render(w, r, errhttp.Status(err), views.NewFormView(forms.Blank(), nil), "", appsvcs.NoticeFor(err))
		return
	}
	h.pages.render(w, r, http.StatusOK, views.NewFormView(form.Input, nil), "", form.Notice)
}
