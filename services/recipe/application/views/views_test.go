package views

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/ghuser/recipelog/pkg/notify"
	"github.com/ghuser/recipelog/services/recipe/application/forms"
	"github.com/ghuser/recipelog/services/recipe/domain/models"
)

func miso() *models.Recipe {
	return &models.Recipe{
		ID:               "1704067200000",
		DishName:         "味噌湯",
		CookingDate:      "2024-01-01",
		TasteRating:      4,
		DifficultyRating: 1,
		Ingredients:      models.Ingredients{"豆腐", "海帶", "味噌"},
		Steps:            "煮水\n下料",
	}
}

func TestStars(t *testing.T) {
	tests := []struct {
		rating models.Rating
		glyph  string
		want   string
	}{
		{4, TasteGlyph, "⭐⭐⭐⭐☆"},
		{1, DifficultyGlyph, "✨☆☆☆☆"},
		{0, TasteGlyph, "☆☆☆☆☆"},
		{5, DifficultyGlyph, "✨✨✨✨✨"},
		{9, TasteGlyph, "⭐⭐⭐⭐⭐"},
		{-2, TasteGlyph, "☆☆☆☆☆"},
	}
	for _, tt := range tests {
		got := Stars(tt.rating, tt.glyph)
		if got != tt.want {
			t.Errorf("Stars(%d) = %q, want %q", tt.rating, got, tt.want)
		}
		if n := utf8.RuneCountInString(got); n != models.MaxRating {
			t.Errorf("Stars(%d) has %d glyphs", tt.rating, n)
		}
	}
}

func TestFormatDate(t *testing.T) {
	taipei := time.FixedZone("CST", 8*3600)
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-01", "2024年1月1日"},
		{"2024/3/9", "2024年3月9日"},
		{"2024-12-31T20:00:00Z", "2025年1月1日"},
		{"2024-12-31T10:00:00Z", "2024年12月31日"},
		{"昨天晚上", "昨天晚上"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in, taipei); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMultilineHTML(t *testing.T) {
	tests := map[string]string{
		"煮水\n下料":          "煮水<br>下料",
		"a\r\nb":          "a<br>b",
		"<b>大火</b>\n1 & 2": "大火<br>1 &amp; 2",
	}
	for in, want := range tests {
		if got := string(MultilineHTML(in)); got != want {
			t.Errorf("MultilineHTML(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProject(t *testing.T) {
	empty := Project(nil, "", time.UTC)
	if empty.Empty == nil || empty.Empty.Message != EmptyMessage || len(empty.Cards) != 0 {
		t.Fatalf("unexpected empty view: %+v", empty)
	}
	if empty.Empty.Image != PlaceholderImage || empty.Empty.Alt != PlaceholderAlt {
		t.Errorf("unexpected placeholder: %+v", empty.Empty)
	}

	noMatch := Project([]*models.Recipe{}, "  pizza ", time.UTC)
	if noMatch.Empty == nil || noMatch.Empty.Message != NoMatchMessage || noMatch.Keyword != "pizza" {
		t.Fatalf("unexpected no-match view: %+v", noMatch)
	}

	view := Project([]*models.Recipe{miso()}, "", time.UTC)
	if view.Empty != nil || len(view.Cards) != 1 {
		t.Fatalf("unexpected view: %+v", view)
	}
	want := Card{
		ID:              "1704067200000",
		DishName:        "味噌湯",
		Date:            "2024年1月1日",
		TasteStars:      "⭐⭐⭐⭐☆",
		DifficultyStars: "✨☆☆☆☆",
		Ingredients:     []string{"豆腐", "海帶", "味噌"},
		Steps:           "煮水<br>下料",
	}
	if diff := cmp.Diff(want, view.Cards[0]); diff != "" {
		t.Errorf("card mismatch (-want +got):\n%s", diff)
	}
}

func TestFormView(t *testing.T) {
	create := NewFormView(forms.Blank(), nil)
	if create.Editing() || create.SubmitLabel() != CreateLabel {
		t.Errorf("blank form should be in create mode")
	}
	edit := NewFormView(forms.FromRecipe(miso()), nil)
	if !edit.Editing() || edit.SubmitLabel() != UpdateLabel {
		t.Errorf("loaded form should be in edit mode")
	}
	if edit.Taste() != 4 || edit.Difficulty() != 1 {
		t.Errorf("ratings: %d/%d", edit.Taste(), edit.Difficulty())
	}
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(time.UTC)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestRenderer_Page(t *testing.T) {
	r := newRenderer(t)
	rec := miso()
	rec.DishImage = "https://example.com/miso.jpg"
	rec.Notes = "<i>下次少放鹽</i>"

	body, err := r.Page(PageData{
		Form:    NewFormView(forms.FromRecipe(rec), []string{"steps are required"}),
		List:    r.Project([]*models.Recipe{rec}, ""),
		Notices: []notify.Notice{notify.Info("正在編輯: 味噌湯")},
	})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	html := string(body)
	for _, want := range []string{
		`<div class="record-card" data-id="1704067200000">`,
		"美味度: ⭐⭐⭐⭐☆",
		"難易度: ✨☆☆☆☆",
		"<span>豆腐</span><span>海帶</span><span>味噌</span>",
		"煮水<br>下料",
		`<div class="record-notes">下次少放鹽</div>`,
		`class="food-image"`,
		UpdateLabel,
		ResetLabel,
		"<li>steps are required</li>",
		`<div class="message info" role="status" data-duration="3000">正在編輯: 味噌湯</div>`,
		`name="tasteRating" value="4" checked`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(html, "<i>") {
		t.Error("notes markup was not stripped")
	}
}

func TestRenderer_RecordsEmpty(t *testing.T) {
	r := newRenderer(t)
	body, err := r.Records(r.Project(nil, "咖哩"))
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	html := string(body)
	if !strings.Contains(html, NoMatchMessage) || !strings.Contains(html, `class="totoro-img"`) {
		t.Errorf("unexpected fragment: %s", html)
	}
	if strings.Contains(html, "record-card") {
		t.Error("empty fragment should not contain cards")
	}
}

func TestRenderer_ConfirmDelete(t *testing.T) {
	r := newRenderer(t)
	body, err := r.ConfirmDelete(ConfirmDelete{ID: "7", DishName: "味噌湯"})
	if err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}
	html := string(body)
	for _, want := range []string{ConfirmQuestion, `name="confirmed" value="yes"`, `name="id" value="7"`} {
		if !strings.Contains(html, want) {
			t.Errorf("confirm page missing %q", want)
		}
	}
}

func TestStatic(t *testing.T) {
	h := http.StripPrefix("/static/", Static())
	for _, path := range []string{"/static/app.js", "/static/app.css"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d", path, rec.Code)
		}
	}
}
