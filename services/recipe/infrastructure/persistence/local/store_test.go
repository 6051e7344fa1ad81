package local

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/recipelog/pkg/logger"
	recipedomain "github.com/ghuser/recipelog/services/recipe/domain"
	"github.com/ghuser/recipelog/services/recipe/domain/models"
)

func misoDraft() models.RecipeDraft {
	return models.RecipeDraft{
		DishName:         "味噌湯",
		CookingDate:      "2024-01-01",
		TasteRating:      4,
		DifficultyRating: 1,
		Ingredients:      models.ParseIngredients("豆腐, 海帶, 味噌"),
		Steps:            "煮水, 下料",
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func decodeSlot(t *testing.T, slot *MemorySlot) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal([]byte(slot.Raw()), &out))
	return out
}

func TestStore_CreateThenList(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(slot, logger.Nop(), WithClock(fixedClock(now)))

	res, err := s.Create(ctx, misoDraft())
	require.NoError(t, err)
	require.Equal(t, models.WriteSuccess, res.Outcome)
	require.NotNil(t, res.Recipe)
	assert.Equal(t, models.RecipeID("1704110400000"), res.Recipe.ID)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.Ingredients{"豆腐", "海帶", "味噌"}, list[0].Ingredients)
	assert.Equal(t, models.Rating(4), list[0].TasteRating)
	assert.True(t, list[0].CreatedAt.Equal(now))

	stored := decodeSlot(t, slot)
	require.Len(t, stored, 1)
	assert.IsType(t, float64(0), stored[0]["id"], "numeric ids are written as JSON numbers")
	assert.Equal(t, "味噌湯", stored[0]["dishName"])
}

func TestStore_CreateAssignsStrictlyIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemorySlot(), logger.Nop(), WithClock(fixedClock(time.UnixMilli(5000))))

	var ids []models.RecipeID
	for range 3 {
		res, err := s.Create(ctx, misoDraft())
		require.NoError(t, err)
		ids = append(ids, res.Recipe.ID)
	}
	assert.Equal(t, []models.RecipeID{"5000", "5001", "5002"}, ids)
}

func TestStore_CreateSkipsIDsAlreadyInSlot(t *testing.T) {
	slot := NewMemorySlotWith(`[{"id":5000,"dishName":"old"}]`)
	s := NewStore(slot, logger.Nop(), WithClock(fixedClock(time.UnixMilli(5000))))

	res, err := s.Create(context.Background(), misoDraft())
	require.NoError(t, err)
	assert.Equal(t, models.RecipeID("5001"), res.Recipe.ID)
}

func TestStore_UpdateIsShallowMerge(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlotWith(`[{"id":1,"dishName":"咖哩","notes":"keep me","extra":{"x":1},"createdAt":"2024-01-01T00:00:00Z"}]`)
	s := NewStore(slot, logger.Nop())

	name := "咖哩飯"
	taste := models.Rating(5)
	res, err := s.Update(ctx, "1", models.RecipePatch{DishName: &name, TasteRating: &taste})
	require.NoError(t, err)
	require.Equal(t, models.WriteSuccess, res.Outcome)
	assert.Equal(t, "咖哩飯", res.Recipe.DishName)
	assert.Equal(t, "keep me", res.Recipe.Notes)

	stored := decodeSlot(t, slot)
	require.Len(t, stored, 1)
	assert.Equal(t, "咖哩飯", stored[0]["dishName"])
	assert.Equal(t, "keep me", stored[0]["notes"])
	assert.Equal(t, map[string]any{"x": float64(1)}, stored[0]["extra"])
	assert.Equal(t, "2024-01-01T00:00:00Z", stored[0]["createdAt"])
	assert.Equal(t, float64(1), stored[0]["id"])
}

func TestStore_WritesLeaveOtherRecordsByteForByte(t *testing.T) {
	ctx := context.Background()
	other := `{"notes":"x < y & z","id":2,"dishName":"b"}`
	slot := NewMemorySlotWith(`[{"id":1,"dishName":"a"},` + other + `]`)
	s := NewStore(slot, logger.Nop())

	name := "a & <b>"
	_, err := s.Update(ctx, "1", models.RecipePatch{DishName: &name})
	require.NoError(t, err)
	assert.Equal(t, `[{"dishName":"a & <b>","id":1},`+other+`]`, slot.Raw())

	_, err = s.Delete(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, `[`+other+`]`, slot.Raw())
}

func TestStore_UpdateAndDeleteUnknownID(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlotWith(`[{"id":1,"dishName":"a"}]`)
	s := NewStore(slot, logger.Nop())
	before := slot.Raw()

	_, err := s.Update(ctx, "2", models.RecipePatch{})
	assert.True(t, errors.Is(err, recipedomain.ErrRecipeNotFound))

	_, err = s.Delete(ctx, "2")
	assert.True(t, errors.Is(err, recipedomain.ErrRecipeNotFound))

	_, err = s.Get(ctx, "2")
	assert.True(t, errors.Is(err, recipedomain.ErrRecipeNotFound))

	assert.Equal(t, before, slot.Raw(), "collection must be unchanged")
}

func TestStore_DeleteRemovesExactlyOne(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlotWith(`[{"id":1,"dishName":"a"},{"id":"2","dishName":"b"},{"id":3,"dishName":"c"}]`)
	s := NewStore(slot, logger.Nop())

	res, err := s.Delete(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "b", res.Recipe.DishName)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.RecipeID("1"), list[0].ID)
	assert.Equal(t, models.RecipeID("3"), list[1].ID)
}

func TestStore_MalformedSlotResetsToEmpty(t *testing.T) {
	for name, raw := range map[string]string{
		"object":  `{"not":"an array"}`,
		"garbage": `{{{`,
		"null":    `null`,
	} {
		t.Run(name, func(t *testing.T) {
			slot := NewMemorySlotWith(raw)
			s := NewStore(slot, logger.Nop())

			list, err := s.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, list)
			assert.Equal(t, "[]", slot.Raw())
		})
	}
}

func TestStore_AbsentSlotIsInitialised(t *testing.T) {
	slot := NewMemorySlot()
	s := NewStore(slot, logger.Nop())

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, "[]", slot.Raw())
}

func TestStore_DropsBadElements(t *testing.T) {
	slot := NewMemorySlotWith(`[42,{"dishName":"no id"},{"id":7,"dishName":"ok","tasteRating":"9","ingredients":"a, ,b"}]`)
	s := NewStore(slot, logger.Nop())

	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.Rating(5), list[0].TasteRating, "stored ratings are clamped")
	assert.Equal(t, models.Ingredients{"a", "b"}, list[0].Ingredients)
}

func TestStore_Search(t *testing.T) {
	slot := NewMemorySlotWith(`[{"id":1,"dishName":"Curry","ingredients":["rice"]},{"id":2,"dishName":"Soup","ingredients":["Tofu"]}]`)
	s := NewStore(slot, logger.Nop())
	ctx := context.Background()

	got, err := s.Search(ctx, "tofu")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Soup", got[0].DishName)

	all, err := s.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStore_ConcurrentCreatesAllPersist(t *testing.T) {
	s := NewStore(NewMemorySlot(), logger.Nop())
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Create(ctx, misoDraft())
		}()
	}
	wg.Wait()

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 20)

	seen := map[models.RecipeID]bool{}
	for _, r := range list {
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
}

type failingSlot struct{ MemorySlot }

func (f *failingSlot) Store(context.Context, []byte) error { return errors.New("disk full") }

func TestStore_WriteFailureIsReportedAsFailure(t *testing.T) {
	slot := &failingSlot{}
	slot.present = true
	slot.data = []byte("[]")
	s := NewStore(slot, logger.Nop())

	res, err := s.Create(context.Background(), misoDraft())
	require.NoError(t, err)
	assert.Equal(t, models.WriteFailure, res.Outcome)
	assert.Contains(t, res.Message, "local slot unwritable")
}
