package views

import (
	"html/template"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ghuser/recipelog/services/recipe/domain/models"
)

// Rating glyphs.
const (
	TasteGlyph      = "⭐"
	DifficultyGlyph = "✨"
	EmptyGlyph      = "☆"
)

// Stars renders r filled glyphs followed by empty ones, always MaxRating in
// total. Out-of-range ratings are clamped.
func Stars(r models.Rating, filled string) string {
	n := models.ClampRating(r.Int()).Int()
	return strings.Repeat(filled, n) + strings.Repeat(EmptyGlyph, models.MaxRating-n)
}

func TasteStars(r models.Rating) string      { return Stars(r, TasteGlyph) }
func DifficultyStars(r models.Rating) string { return Stars(r, DifficultyGlyph) }

var dateOnlyLayouts = []string{"2006-01-02", "2006/01/02", "2006-1-2", "2006/1/2"}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04"}

// FormatDate renders a stored date as 2006年1月2日. Calendar dates are shown as
// written; timestamps are converted to loc first. Anything else comes back
// unchanged.
func FormatDate(raw string, loc *time.Location) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return raw
	}
	for _, layout := range dateOnlyLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return calendar(t)
		}
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return calendar(t.In(loc))
		}
	}
	return raw
}

func calendar(t time.Time) string {
	return t.Format("2006") + "年" + t.Format("1") + "月" + t.Format("2") + "日"
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// MultilineHTML strips all markup from s and turns line breaks into <br>.
func MultilineHTML(s string) template.HTML {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	cleaned := textSanitizer().Sanitize(s)
	return template.HTML(strings.ReplaceAll(cleaned, "\n", "<br>")) //nolint:gosec // sanitized above
}
