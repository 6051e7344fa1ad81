package validator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgvalidator "github.com/ghuser/recipelog/pkg/validator"
)

type sampleStruct struct {
	Name   string   `validate:"notblank,max=10"`
	Image  string   `validate:"omitempty,http_url"`
	Tags   []string `validate:"min=1"`
	Rating int      `validate:"gte=0,lte=5"`
}

func validSample() sampleStruct {
	return sampleStruct{Name: "hello", Tags: []string{"a"}, Rating: 3}
}

func TestValidate_valid(t *testing.T) {
	s := validSample()
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_notblankRejectsWhitespace(t *testing.T) {
	s := validSample()
	s.Name = "   "
	m := pkgvalidator.FormatValidationErrors(pkgvalidator.Validate(&s))
	if m["Name"] != "This field is required" {
		t.Errorf("unexpected Name message: %q", m["Name"])
	}
}

func TestFormatValidationErrors_messages(t *testing.T) {
	s := sampleStruct{Name: "12345678901", Image: "ftp://x", Rating: 6}
	m := pkgvalidator.FormatValidationErrors(pkgvalidator.Validate(&s))

	want := map[string]string{
		"Name":   "Maximum length is 10",
		"Image":  "Must be a valid URL",
		"Tags":   "Must contain at least 1 entries",
		"Rating": "Must be less than or equal to 5",
	}
	for field, msg := range want {
		if m[field] != msg {
			t.Errorf("%s: got %q, want %q", field, m[field], msg)
		}
	}
}

func TestFieldErrors_declarationOrder(t *testing.T) {
	s := sampleStruct{Rating: -1}
	got := pkgvalidator.FieldErrors(pkgvalidator.Validate(&s))
	var fields []string
	for _, fe := range got {
		fields = append(fields, fe.Field)
	}
	if strings.Join(fields, ",") != "Name,Tags,Rating" {
		t.Fatalf("got %v", fields)
	}
	if got[2].Tag != "gte" || got[2].Param != "0" {
		t.Errorf("rating error: %+v", got[2])
	}
}

func TestFormatValidationErrors_nonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie)
	if len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
	if pkgvalidator.FieldErrors(http.ErrNoCookie) != nil {
		t.Error("expected nil FieldErrors for non-validation error")
	}
}

// --- ValidateRequest ---

type ratingReq struct {
	DishName    *string `json:"dishName"    validate:"omitempty,notblank"`
	TasteRating *int    `json:"tasteRating" validate:"omitempty,gte=0,lte=5"`
}

func TestValidateRequest_valid(t *testing.T) {
	body := `{"dishName":"味噌湯","tasteRating":4}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	req, ok := pkgvalidator.ValidateRequest[ratingReq](w, r)
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if *req.DishName != "味噌湯" || *req.TasteRating != 4 {
		t.Errorf("unexpected request: %+v", req)
	}
}

func TestValidateRequest_invalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{bad json"))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[ratingReq](w, r)
	if ok {
		t.Fatal("expected ok=false for malformed JSON")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid JSON") {
		t.Errorf("expected 'Invalid JSON' in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_outOfRange(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"tasteRating":9}`))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[ratingReq](w, r)
	if ok {
		t.Fatal("expected ok=false for out-of-range rating")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "tasteRating") {
		t.Errorf("expected tasteRating error in body, got: %s", w.Body.String())
	}
}

func TestMessages_declarationOrder(t *testing.T) {
	s := sampleStruct{Name: " ", Rating: 9}
	got := pkgvalidator.Messages(pkgvalidator.Validate(&s))
	want := []string{
		"Name: This field is required",
		"Tags: Must contain at least 1 entries",
		"Rating: Must be less than or equal to 5",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestValidateRequest_bodyCarriesMessages(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"tasteRating":9}`))
	w := httptest.NewRecorder()
	if _, ok := pkgvalidator.ValidateRequest[ratingReq](w, r); ok {
		t.Fatal("expected ok=false")
	}
	if !strings.Contains(w.Body.String(), `"messages":["tasteRating: Must be less than or equal to 5"]`) {
		t.Errorf("messages missing from body: %s", w.Body.String())
	}
}
