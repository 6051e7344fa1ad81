// Package services contains stateless domain services for the recipe bounded
// context.
package services

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/ghuser/recipelog/services/recipe/domain/models"
)

// Matches reports whether r's dish name or any ingredient contains keyword,
// compared under Unicode case folding. A blank keyword matches everything.
func Matches(r *models.Recipe, keyword string) bool {
	kw := fold(strings.TrimSpace(keyword))
	if kw == "" {
		return true
	}
	if strings.Contains(fold(r.DishName), kw) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(fold(ing), kw) {
			return true
		}
	}
	return false
}

// Filter returns the records that match keyword, preserving order.
func Filter(records []*models.Recipe, keyword string) []*models.Recipe {
	if strings.TrimSpace(keyword) == "" {
		return records
	}
	out := make([]*models.Recipe, 0, len(records))
	for _, r := range records {
		if Matches(r, keyword) {
			out = append(out, r)
		}
	}
	return out
}

// cases.Caser is stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
