package handlers

import (
	"errors"
	"net/http"

	"github.com/ghuser/recipelog/pkg/errhttp"
	"github.com/ghuser/recipelog/pkg/notify"
	"github.com/ghuser/recipelog/services/recipe/application/forms"
	appsvcs "github.com/ghuser/recipelog/services/recipe/application/services"
	"github.com/ghuser/recipelog/services/recipe/application/views"
	recipedomain "github.com/ghuser/recipelog/services/recipe/domain"
)

// PostRecipeFormHandler handles POST /recipes. The hidden id field decides
// between create and update.
type PostRecipeFormHandler struct {
	pages *Pages
}

// NewPostRecipeFormHandler returns a PostRecipeFormHandler rendering through pages.
func NewPostRecipeFormHandler(pages *Pages) *PostRecipeFormHandler {
	return &PostRecipeFormHandler{pages: pages}
}

// Execute submits the form and redirects home, or re-renders it with errors.
func (h *PostRecipeFormHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.pages.redirectHome(w, r, "", notify.Error("無法讀取表單內容"))
		return
	}
	in := forms.Decode(r.PostForm)

	res, err := h.pages.svc.Recipe.Submit(r.Context(), in.EditState(), in)
	switch {
	case err == nil:
		h.pages.redirectHome(w, r, "", res.Notice)
	case errors.Is(err, recipedomain.ErrInvalidRecipe):
		h.pages.render(w, r, http.StatusUnprocessableEntity,
			views.NewFormView(in, recipedomain.ValidationMessages(err)), "", appsvcs.NoticeFor(err))
	case errors.Is(err, recipedomain.ErrRecipeNotFound):
		h.pages.redirectHome(w, r, "", appsvcs.NoticeFor(err))
	default:
		// Keep what was typed so nothing is lost.
		h.pages.report(r, "submit recipe", err)
		h.pages.render(w, r, errhttp.Status(err), views.NewFormView(in, nil), "", appsvcs.NoticeFor(err))
	}
}
