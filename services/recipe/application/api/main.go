package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/recipelog/pkg/app"
	"github.com/ghuser/recipelog/pkg/httpx"
	"github.com/ghuser/recipelog/pkg/session"
	"github.com/ghuser/recipelog/services/recipe/application/handlers"
	appsvcs "github.com/ghuser/recipelog/services/recipe/application/services"
	"github.com/ghuser/recipelog/services/recipe/application/views"
)

const formBodyLimit = 1 << 20 // 1 MB

// RecipeRoutes registers the JSON recipe endpoints on the provided chi router.
func RecipeRoutes(r chi.Router, svcs *appsvcs.Services) {
	r.Group(func(r chi.Router) {
		r.Use(httpx.RequestBodyLimit(formBodyLimit))
		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", handlers.NewListRecipesHandler(svcs).Execute)
			r.Post("/", handlers.NewPostRecipeHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetRecipeHandler(svcs).Execute)
			r.Put("/{id}", handlers.NewPutRecipeHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteRecipeHandler(svcs).Execute)
		})
	})
}

// PageRoutes registers the HTML pages and their static assets.
func PageRoutes(r chi.Router, svcs *appsvcs.Services, a *app.Application) error {
	renderer, err := views.NewRenderer(svcs.Location)
	if err != nil {
		return fmt.Errorf("page routes: %w", err)
	}
	pages := handlers.NewPages(svcs, renderer, session.NewFlash(a.SessionStore), a.Logger)

	r.Handle("/static/*", http.StripPrefix("/static/", views.Static()))
	r.Get("/", handlers.NewGetIndexHandler(pages).Execute)
	r.Group(func(r chi.Router) {
		r.Use(httpx.RequestBodyLimit(formBodyLimit))
		r.Route("/recipes", func(r chi.Router) {
			r.Post("/", handlers.NewPostRecipeFormHandler(pages).Execute)
			r.Get("/search", handlers.NewGetSearchHandler(pages).Execute)
			r.Post("/actions", handlers.NewPostActionHandler(pages).Execute)
			r.Get("/{id}/edit", handlers.NewGetEditHandler(pages).Execute)
		})
	})
	return nil
}
