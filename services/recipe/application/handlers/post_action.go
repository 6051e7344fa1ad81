package handlers

import (
	"net/http"
	"net/url"

	"github.com/ghuser/recipelog/pkg/httpx"
	"github.com/ghuser/recipelog/pkg/notify"
	appsvcs "github.com/ghuser/recipelog/services/recipe/application/services"
	"github.com/ghuser/recipelog/services/recipe/application/views"
	"github.com/ghuser/recipelog/services/recipe/domain/models"
)

// PostActionHandler handles POST /recipes/actions, the edit and delete buttons
// on a record card. A delete runs only with confirmed=yes; otherwise a
// confirmation page is shown.
type PostActionHandler struct {
	pages *Pages
}

// NewPostActionHandler returns a PostActionHandler rendering through pages.
func NewPostActionHandler(pages *Pages) *PostActionHandler {
	return &PostActionHandler{pages: pages}
}

// Execute dispatches an edit or delete pressed on a record card.
func (h *PostActionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.pages.redirectHome(w, r, "", notify.Error("無法讀取表單內容"))
		return
	}
	keyword := r.PostForm.Get("q")

	action, err := models.ParseRecordAction(r.PostForm.Get("action"), r.PostForm.Get("id"))
	if err != nil {
		h.pages.log.InfoContext(r.Context(), "reject record action", "error", err)
		h.pages.redirectHome(w, r, keyword, notify.Error("無效的操作"))
		return
	}

	switch action.Kind {
	case models.ActionEdit:
		httpx.SeeOther(w, r, "/recipes/"+url.PathEscape(action.ID.String())+"/edit")

	case models.ActionDelete:
		if r.PostForm.Get("confirmed") != "yes" {
			h.confirm(w, r, action.ID, keyword)
			return
		}
		res, err := h.pages.svc.Recipe.Delete(r.Context(), action.ID)
		if err != nil {
			h.pages.report(r, "delete recipe", err)
			h.pages.redirectHome(w, r, keyword, appsvcs.NoticeFor(err))
			return
		}
		h.pages.redirectHome(w, r, keyword, res.Notice)
	}
}

func (h *PostActionHandler) confirm(w http.ResponseWriter, r *http.Request, id models.RecipeID, keyword string) {
	rec, err := h.pages.svc.Recipe.Get(r.Context(), id)
	if err != nil {
		h.pages.report(r, "load recipe for delete", err)
		h.pages.redirectHome(w, r, keyword, appsvcs.NoticeFor(err))
		return
	}
	body, err := h.pages.renderer.ConfirmDelete(views.ConfirmDelete{
		ID:       rec.ID.String(),
		DishName: rec.DishName,
		Keyword:  keyword,
	})
	if err != nil {
		h.pages.fail(w, r, err)
		return
	}
	httpx.HTML(w, http.StatusOK, body)
}
