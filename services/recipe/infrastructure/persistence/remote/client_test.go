package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/recipelog/pkg/logger"
	recipedomain "github.com/ghuser/recipelog/services/recipe/domain"
	"github.com/ghuser/recipelog/services/recipe/domain/models"
)

const misoRow = `{"ID":17,"料理名稱":"味噌湯","烹飪日期":"2024-01-01","圖片URL":"","美味度":"4","難易度":1,"食材":"豆腐,海帶,味噌","步驟":"煮水, 下料","備註":"","建立時間":"2024-01-01T08:00:00Z"}`

// fakeService records POST bodies and answers GETs from fixed responses.
type fakeService struct {
	mu       sync.Mutex
	posts    []map[string]any
	postCT   string
	list     string
	getOne   string
	postResp string
	postCode int
	queries  []string
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch r.Method {
	case http.MethodGet:
		f.queries = append(f.queries, r.URL.RawQuery)
		if r.URL.Query().Get("action") == "getOne" {
			_, _ = io.WriteString(w, f.getOne)
			return
		}
		_, _ = io.WriteString(w, f.list)
	case http.MethodPost:
		f.postCT = r.Header.Get("Content-Type")
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.posts = append(f.posts, body)
		if f.postCode != 0 {
			w.WriteHeader(f.postCode)
		}
		_, _ = io.WriteString(w, f.postResp)
	}
}

func newTestClient(t *testing.T, f *fakeService, opaque bool) *Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	c, err := NewClient(Options{Endpoint: srv.URL + "/exec", Timeout: 2 * time.Second, OpaqueWrites: opaque}, logger.Nop())
	require.NoError(t, err)
	return c
}

func TestNewClient_RejectsBadEndpoint(t *testing.T) {
	for _, ep := range []string{"", "not a url", "ftp://host/x", "https://"} {
		_, err := NewClient(Options{Endpoint: ep}, logger.Nop())
		assert.Error(t, err, "endpoint %q", ep)
	}
}

func TestClient_List(t *testing.T) {
	f := &fakeService{list: `{"status":"success","data":[` + misoRow + `,{"料理名稱":"no id"},"junk"]}`}
	c := newTestClient(t, f, false)

	list, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	r := list[0]
	assert.Equal(t, models.RecipeID("17"), r.ID)
	assert.Equal(t, models.Rating(4), r.TasteRating)
	assert.Equal(t, models.Ingredients{"豆腐", "海帶", "味噌"}, r.Ingredients)
	assert.Equal(t, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), r.CreatedAt)
}

func TestClient_ListErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"error status", `{"status":"error","message":"quota exceeded"}`, "quota exceeded"},
		{"unreadable", `<html>oops</html>`, "unreadable response"},
		{"data not a list", `{"status":"success","data":{"a":1}}`, "unreadable list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, &fakeService{list: tt.body}, false)
			_, err := c.List(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, recipedomain.ErrStoreUnavailable))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestClient_ListNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	c, err := NewClient(Options{Endpoint: srv.URL}, logger.Nop())
	require.NoError(t, err)

	_, err = c.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestClient_TimeoutIsStoreError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = io.WriteString(w, `{"status":"success","data":[]}`)
	}))
	defer srv.Close()
	c, err := NewClient(Options{Endpoint: srv.URL, Timeout: 30 * time.Millisecond}, logger.Nop())
	require.NoError(t, err)

	_, err = c.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, recipedomain.ErrStoreUnavailable))

	res, err := c.Create(context.Background(), models.RecipeDraft{DishName: "x"})
	require.NoError(t, err)
	assert.Equal(t, models.WriteFailure, res.Outcome)
}

func TestClient_SearchSendsKeyword(t *testing.T) {
	f := &fakeService{list: `{"status":"success","data":[]}`}
	c := newTestClient(t, f, false)

	_, err := c.Search(context.Background(), "  豆腐 ")
	require.NoError(t, err)
	_, err = c.Search(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, f.queries, 2)
	assert.Equal(t, "search=%E8%B1%86%E8%85%90", f.queries[0])
	assert.Equal(t, "", f.queries[1], "blank keyword lists everything")
}

func TestClient_GetNotFound(t *testing.T) {
	for name, body := range map[string]string{
		"null data":       `{"status":"success","data":null}`,
		"error not found": `{"status":"error","message":"Record not found"}`,
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, &fakeService{getOne: body}, false)
			_, err := c.Get(context.Background(), "99")
			assert.True(t, errors.Is(err, recipedomain.ErrRecipeNotFound), "got %v", err)
		})
	}
}

func TestClient_CreateOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		opaque   bool
		code     int
		resp     string
		want     models.WriteOutcome
		wantMsg  string
		wantBody bool
	}{
		{name: "success", resp: `{"status":"success"}`, want: models.WriteSuccess},
		{name: "explicit error", resp: `{"status":"error","message":"sheet locked"}`, want: models.WriteFailure, wantMsg: "sheet locked"},
		{name: "empty body", resp: ``, want: models.WriteUnknown},
		{name: "unparseable body", resp: `ok`, want: models.WriteUnknown},
		{name: "http error", code: http.StatusBadGateway, resp: `x`, want: models.WriteFailure, wantMsg: "HTTP 502"},
		{name: "opaque ignores body", opaque: true, resp: `{"status":"error","message":"ignored"}`, want: models.WriteUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeService{postResp: tt.resp, postCode: tt.code}
			c := newTestClient(t, f, tt.opaque)

			res, err := c.Create(context.Background(), models.RecipeDraft{
				DishName:    "味噌湯",
				CookingDate: "2024-01-01",
				TasteRating: 4,
				Ingredients: models.Ingredients{"豆腐", "海帶", "味噌"},
				Steps:       "煮",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Outcome)
			if tt.wantMsg != "" {
				assert.Contains(t, res.Message, tt.wantMsg)
			}

			require.Len(t, f.posts, 1)
			body := f.posts[0]
			assert.Equal(t, "add", body["action"])
			assert.Equal(t, "豆腐,海帶,味噌", body["食材"])
			assert.Equal(t, float64(4), body["美味度"])
			assert.NotContains(t, body, "ID")
			assert.Equal(t, "text/plain;charset=utf-8", f.postCT)
		})
	}
}

func TestClient_UpdateSendsFullMergedRecord(t *testing.T) {
	f := &fakeService{
		getOne:   `{"status":"success","data":` + misoRow + `}`,
		postResp: `{"status":"success"}`,
	}
	c := newTestClient(t, f, false)

	name := "紅味噌湯"
	res, err := c.Update(context.Background(), "17", models.RecipePatch{DishName: &name})
	require.NoError(t, err)
	assert.Equal(t, models.WriteSuccess, res.Outcome)
	require.NotNil(t, res.Recipe)
	assert.Equal(t, "紅味噌湯", res.Recipe.DishName)

	require.Len(t, f.posts, 1)
	body := f.posts[0]
	assert.Equal(t, "update", body["action"])
	assert.Equal(t, "17", body["ID"])
	assert.Equal(t, "紅味噌湯", body["料理名稱"])
	assert.Equal(t, "煮水, 下料", body["步驟"], "unpatched columns are resent")
	assert.Equal(t, float64(4), body["美味度"])
}

func TestClient_UpdateMissingRecordSendsNothing(t *testing.T) {
	f := &fakeService{getOne: `{"status":"success","data":null}`}
	c := newTestClient(t, f, false)

	_, err := c.Update(context.Background(), "5", models.RecipePatch{})
	assert.True(t, errors.Is(err, recipedomain.ErrRecipeNotFound))
	_, err = c.Delete(context.Background(), "5")
	assert.True(t, errors.Is(err, recipedomain.ErrRecipeNotFound))
	assert.Empty(t, f.posts)
}

func TestClient_DeleteOpaque(t *testing.T) {
	f := &fakeService{getOne: `{"status":"success","data":` + misoRow + `}`}
	c := newTestClient(t, f, true)

	res, err := c.Delete(context.Background(), "17")
	require.NoError(t, err)
	assert.Equal(t, models.WriteUnknown, res.Outcome)
	assert.True(t, res.Accepted())
	require.NotNil(t, res.Recipe)
	assert.Equal(t, "味噌湯", res.Recipe.DishName)

	require.Len(t, f.posts, 1)
	assert.Equal(t, map[string]any{"action": "delete", "ID": "17"}, f.posts[0])
}
