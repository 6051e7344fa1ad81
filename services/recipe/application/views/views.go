// Package views projects recipes into display models and renders the HTML
// pages and fragments.
package views

import (
	"html/template"
	"strings"
	"time"

	"github.com/ghuser/recipelog/pkg/notify"
	"github.com/ghuser/recipelog/services/recipe/application/forms"
	"github.com/ghuser/recipelog/services/recipe/domain/models"
)

// Empty-state content.
const (
	EmptyMessage     = "還沒有任何記錄喔～"
	NoMatchMessage   = "沒有找到匹配的料理"
	PlaceholderImage = "https://i.ibb.co/qL40sXF3/Chat-GPT-Image-2025-4-5-06-00-55.png"
	PlaceholderAlt   = "龍貓"
)

// Submit button labels.
const (
	CreateLabel = "✏️ 保存記錄"
	UpdateLabel = "💾 更新記錄"
	ResetLabel  = "🌀 重新開始"
)

// Card is one record ready for display.
type Card struct {
	ID              string
	DishName        string
	Date            string
	Image           string
	TasteStars      string
	DifficultyStars string
	Ingredients     []string
	Steps           template.HTML
	Notes           template.HTML
}

// EmptyState replaces the list when there is nothing to show.
type EmptyState struct {
	Message string
	Image   string
	Alt     string
}

// ListView is either a set of cards or one empty state.
type ListView struct {
	Keyword string
	Cards   []Card
	Empty   *EmptyState
}

// Project maps records to cards. With no records it yields an empty state
// whose message depends on whether keyword is set.
func Project(records []*models.Recipe, keyword string, loc *time.Location) ListView {
	keyword = strings.TrimSpace(keyword)
	if len(records) == 0 {
		msg := EmptyMessage
		if keyword != "" {
			msg = NoMatchMessage
		}
		return ListView{
			Keyword: keyword,
			Empty:   &EmptyState{Message: msg, Image: PlaceholderImage, Alt: PlaceholderAlt},
		}
	}
	cards := make([]Card, 0, len(records))
	for _, r := range records {
		cards = append(cards, NewCard(r, loc))
	}
	return ListView{Keyword: keyword, Cards: cards}
}

// NewCard formats one record.
func NewCard(r *models.Recipe, loc *time.Location) Card {
	c := Card{
		ID:              r.ID.String(),
		DishName:        r.DishName,
		Date:            FormatDate(r.CookingDate, loc),
		Image:           strings.TrimSpace(r.DishImage),
		TasteStars:      TasteStars(r.TasteRating),
		DifficultyStars: DifficultyStars(r.DifficultyRating),
		Ingredients:     r.Ingredients.Normalize(),
		Steps:           MultilineHTML(r.Steps),
	}
	if strings.TrimSpace(r.Notes) != "" {
		c.Notes = MultilineHTML(r.Notes)
	}
	return c
}

// FormView is the recipe form in create or edit mode.
type FormView struct {
	Input  forms.FormInput
	Errors []string
}

// NewFormView shows in, with any validation messages.
func NewFormView(in forms.FormInput, errs []string) FormView {
	return FormView{Input: in, Errors: errs}
}

// Editing reports whether the form targets an existing record.
func (f FormView) Editing() bool {
	return f.Input.EditState().IsEdit()
}

func (f FormView) SubmitLabel() string {
	if f.Editing() {
		return UpdateLabel
	}
	return CreateLabel
}

func (f FormView) Taste() int      { return forms.RatingValue(f.Input.TasteRating) }
func (f FormView) Difficulty() int { return forms.RatingValue(f.Input.DifficultyRating) }

// PageData is everything the full page needs.
type PageData struct {
	Form    FormView
	List    ListView
	Notices []notify.Notice
}

// ConfirmDelete asks before a delete when the browser could not.
type ConfirmDelete struct {
	ID       string
	DishName string
	Keyword  string
}

// ConfirmQuestion is shown before a delete.
const ConfirmQuestion = "確定要刪除這道料理的記錄嗎？"
