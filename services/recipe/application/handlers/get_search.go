package handlers

import (
	"net/http"

	"github.com/ghuser/recipelog/pkg/httpx"
	"github.com/ghuser/recipelog/services/recipe/application/views"
)

// GetSearchHandler handles GET /recipes/search?q= and returns only the
// records container, for the live search box.
type GetSearchHandler struct {
	pages *Pages
}

// NewGetSearchHandler returns a GetSearchHandler rendering through pages.
func NewGetSearchHandler(pages *Pages) *GetSearchHandler {
	return &GetSearchHandler{pages: pages}
}

// Execute renders the records fragment for ?q=. A store failure still
// returns the fragment, with the error in place of the records.
func (h *GetSearchHandler) Execute(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")
	status := http.StatusOK

	var list views.ListView
	records, err := h.pages.svc.Recipe.Search(r.Context(), keyword)
	if err != nil {
		h.pages.report(r, "search recipes", err)
		status = http.StatusBadGateway
		list = views.ListView{Keyword: keyword, Empty: &views.EmptyState{
			Message: loadFailed(err).Text,
			Image:   views.PlaceholderImage,
			Alt:     views.PlaceholderAlt,
		}}
	} else {
		list = h.pages.renderer.Project(records, keyword)
	}

	body, err := h.pages.renderer.Records(list)
	if err != nil {
		h.pages.fail(w, r, err)
		return
	}
	httpx.HTML(w, status, body)
}
