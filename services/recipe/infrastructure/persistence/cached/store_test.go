package cached

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/recipelog/pkg/cache"
	"github.com/ghuser/recipelog/pkg/logger"
	recipedomain "github.com/ghuser/recipelog/services/recipe/domain"
	"github.com/ghuser/recipelog/services/recipe/domain/models"
	"github.com/ghuser/recipelog/services/recipe/infrastructure/persistence/local"
)

type memCache struct {
	mu          sync.Mutex
	list        []cache.CachedRecipe
	ok          bool
	invalidated int
	getErr      error
}

func (m *memCache) GetList(context.Context) ([]cache.CachedRecipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if !m.ok {
		return nil, cache.ErrCacheMiss
	}
	return m.list, nil
}

func (m *memCache) SetList(_ context.Context, l []cache.CachedRecipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list, m.ok = l, true
	return nil
}

func (m *memCache) Invalidate(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list, m.ok = nil, false
	m.invalidated++
	return nil
}

// countingStore counts List calls on the wrapped store.
type countingStore struct {
	*local.Store
	lists atomic.Int32
	delay time.Duration
}

func (c *countingStore) List(ctx context.Context) ([]*models.Recipe, error) {
	c.lists.Add(1)
	time.Sleep(c.delay)
	return c.Store.List(ctx)
}

func newFixture(t *testing.T, seed string) (*Store, *countingStore, *memCache) {
	t.Helper()
	inner := &countingStore{Store: local.NewStore(local.NewMemorySlotWith(seed), logger.Nop())}
	mc := &memCache{}
	return NewStore(inner, mc, logger.Nop()), inner, mc
}

func TestStore_ListIsCached(t *testing.T) {
	s, inner, _ := newFixture(t, `[{"id":1,"dishName":"味噌湯","ingredients":["豆腐"]}]`)
	ctx := context.Background()

	for range 3 {
		list, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
	}
	assert.Equal(t, int32(1), inner.lists.Load())

	got, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "味噌湯", got.DishName)

	found, err := s.Search(ctx, "豆腐")
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, int32(1), inner.lists.Load())
}

func TestStore_GetMissing(t *testing.T) {
	s, _, _ := newFixture(t, `[]`)
	_, err := s.Get(context.Background(), "9")
	assert.True(t, errors.Is(err, recipedomain.ErrRecipeNotFound))
}

func TestStore_WritesInvalidate(t *testing.T) {
	s, inner, mc := newFixture(t, `[]`)
	ctx := context.Background()

	_, err := s.List(ctx)
	require.NoError(t, err)

	res, err := s.Create(ctx, models.RecipeDraft{DishName: "咖哩", Ingredients: models.Ingredients{"飯"}})
	require.NoError(t, err)
	require.True(t, res.Accepted())
	assert.Equal(t, 1, mc.invalidated)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, int32(2), inner.lists.Load())

	_, err = s.Delete(ctx, "404")
	assert.True(t, errors.Is(err, recipedomain.ErrRecipeNotFound))
	assert.Equal(t, 1, mc.invalidated, "failed writes keep the cache")
}

func TestStore_ConcurrentMissesCollapse(t *testing.T) {
	s, inner, _ := newFixture(t, `[{"id":1,"dishName":"a"}]`)
	inner.delay = 50 * time.Millisecond

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.List(context.Background())
		}()
	}
	wg.Wait()
	assert.Less(t, inner.lists.Load(), int32(10))
}

func TestStore_CacheErrorFallsBack(t *testing.T) {
	s, inner, mc := newFixture(t, `[{"id":1,"dishName":"a"}]`)
	mc.getErr = errors.New("redis down")

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, int32(1), inner.lists.Load())
}

// gatedStore parks the first List after it has read its snapshot.
type gatedStore struct {
	*local.Store
	gated   atomic.Bool
	read    chan struct{}
	release chan struct{}
}

func (g *gatedStore) List(ctx context.Context) ([]*models.Recipe, error) {
	list, err := g.Store.List(ctx)
	if g.gated.CompareAndSwap(false, true) {
		close(g.read)
		<-g.release
	}
	return list, err
}

func TestStore_FetchOverlappingWriteDoesNotFillCache(t *testing.T) {
	inner := &gatedStore{
		Store:   local.NewStore(local.NewMemorySlotWith(`[{"id":1,"dishName":"a"}]`), logger.Nop()),
		read:    make(chan struct{}),
		release: make(chan struct{}),
	}
	mc := &memCache{}
	s := NewStore(inner, mc, logger.Nop())
	ctx := context.Background()

	done := make(chan []*models.Recipe)
	go func() {
		list, _ := s.List(ctx)
		done <- list
	}()
	<-inner.read

	res, err := s.Create(ctx, models.RecipeDraft{DishName: "b", Ingredients: models.Ingredients{"x"}})
	require.NoError(t, err)
	require.True(t, res.Accepted())

	close(inner.release)
	assert.Len(t, <-done, 1)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2, "records after a create include the new one")
}

// ctxStore fails List when its context is done.
type ctxStore struct{ *local.Store }

func (c ctxStore) List(ctx context.Context) ([]*models.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.Store.List(ctx)
}

func TestStore_FillIgnoresCallerCancellation(t *testing.T) {
	inner := ctxStore{local.NewStore(local.NewMemorySlotWith(`[{"id":1,"dishName":"a"}]`), logger.Nop())}
	mc := &memCache{}
	s := NewStore(inner, mc, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.True(t, mc.ok, "shared fill should populate the cache")
}
