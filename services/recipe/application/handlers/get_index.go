package handlers

import (
	"net/http"

	"github.com/ghuser/recipelog/services/recipe/application/forms"
	"github.com/ghuser/recipelog/services/recipe/application/views"
)

// GetIndexHandler handles GET / : a blank form and the list, filtered by ?q=.
type GetIndexHandler struct {
	pages *Pages
}

// NewGetIndexHandler returns a GetIndexHandler rendering through pages.
func NewGetIndexHandler(pages *Pages) *GetIndexHandler {
	return &GetIndexHandler{pages: pages}
}

// Execute renders the page in create mode, filtered by ?q=.
func (h *GetIndexHandler) Execute(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, r, http.StatusOK, views.NewFormView(forms.Blank(), nil), r.URL.Query().Get("q"))
}
