package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/ghuser/recipelog/services/recipe/domain/models"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

//go:embed static/*
var embeddedStatic embed.FS

// Renderer executes the embedded templates.
type Renderer struct {
	tmpl *template.Template
	loc  *time.Location
}

// NewRenderer parses the templates. Dates are shown in loc.
func NewRenderer(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.Local
	}
	tmpl, err := template.New("views").Funcs(template.FuncMap{
		"ratings": func() []int { return []int{0, 1, 2, 3, 4, 5} },
		"glyphs": func(n int, glyph string) string {
			return Stars(models.Rating(n), glyph)
		},
		"resetLabel":      func() string { return ResetLabel },
		"confirmQuestion": func() string { return ConfirmQuestion },
		"tasteGlyph":      func() string { return TasteGlyph },
		"difficultyGlyph": func() string { return DifficultyGlyph },
	}).ParseFS(embeddedTemplates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, loc: loc}, nil
}

// Location is the display time zone.
func (r *Renderer) Location() *time.Location {
	return r.loc
}

// Project is the package-level Project in the renderer's time zone.
func (r *Renderer) Project(records []*models.Recipe, keyword string) ListView {
	return Project(records, keyword, r.loc)
}

// Page renders the full page.
func (r *Renderer) Page(data PageData) ([]byte, error) {
	return r.execute("page", data)
}

// Records renders only the records container, for live search.
func (r *Renderer) Records(list ListView) ([]byte, error) {
	return r.execute("records", list)
}

// ConfirmDelete renders the delete confirmation page.
func (r *Renderer) ConfirmDelete(data ConfirmDelete) ([]byte, error) {
	return r.execute("confirm_delete", data)
}

func (r *Renderer) execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Static serves the embedded stylesheet and script. Mount it under a prefix
// with http.StripPrefix.
func Static() http.Handler {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		return http.NotFoundHandler()
	}
	return http.FileServerFS(sub)
}
