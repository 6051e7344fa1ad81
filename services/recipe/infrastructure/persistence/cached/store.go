// Package cached puts a Redis read-through cache of the whole collection in
// front of a slower record store.
package cached

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/ghuser/recipelog/pkg/cache"
	"github.com/ghuser/recipelog/pkg/logger"
	recipedomain "github.com/ghuser/recipelog/services/recipe/domain"
	"github.com/ghuser/recipelog/services/recipe/domain/models"
	"github.com/ghuser/recipelog/services/recipe/domain/repositories"
	"github.com/ghuser/recipelog/services/recipe/domain/services"
)

// ListCache is the subset of cache.RecipeCache the store needs.
type ListCache interface {
	GetList(ctx context.Context) ([]cache.CachedRecipe, error)
	SetList(ctx context.Context, recipes []cache.CachedRecipe) error
	Invalidate(ctx context.Context) error
}

// Store serves List, Get and Search from the cached collection and
// invalidates it after every accepted write. Cache failures fall back to the
// inner store.
type Store struct {
	inner repositories.RecipeStore
	cache ListCache
	log   logger.Logger
	group singleflight.Group

	// mu orders cache fills against invalidations; gen counts accepted writes.
	mu  sync.Mutex
	gen uint64
}

// NewStore wraps inner.
func NewStore(inner repositories.RecipeStore, c ListCache, log logger.Logger) *Store {
	return &Store{inner: inner, cache: c, log: log}
}

func (s *Store) List(ctx context.Context) ([]*models.Recipe, error) {
	cached, err := s.cache.GetList(ctx)
	if err == nil {
		return fromCache(cached), nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.WarnContext(ctx, "recipe cache read failed, using store", "error", err)
	}

	// Concurrent misses share one upstream fetch, detached from the first
	// caller's cancellation.
	v, err, _ := s.group.Do(listKey, func() (any, error) {
		fillCtx := context.WithoutCancel(ctx)
		started := s.generation()
		list, err := s.inner.List(fillCtx)
		if err != nil {
			return nil, err
		}
		s.fill(fillCtx, started, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	shared := v.([]*models.Recipe)
	out := make([]*models.Recipe, len(shared))
	for i, r := range shared {
		out[i] = r.Clone()
	}
	return out, nil
}

const listKey = "list"

func (s *Store) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// fill stores list unless a write was accepted after the fetch started.
func (s *Store) fill(ctx context.Context, started uint64, list []*models.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != started {
		return
	}
	if err := s.cache.SetList(ctx, toCache(list)); err != nil {
		s.log.WarnContext(ctx, "recipe cache write failed", "error", err)
	}
}

func (s *Store) Get(ctx context.Context, id models.RecipeID) (*models.Recipe, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range list {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("get %s: %w", id, recipedomain.ErrRecipeNotFound)
}

func (s *Store) Search(ctx context.Context, keyword string) ([]*models.Recipe, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return services.Filter(list, keyword), nil
}

func (s *Store) Create(ctx context.Context, d models.RecipeDraft) (models.WriteResult, error) {
	res, err := s.inner.Create(ctx, d)
	s.afterWrite(ctx, res, err)
	return res, err
}

func (s *Store) Update(ctx context.Context, id models.RecipeID, p models.RecipePatch) (models.WriteResult, error) {
	res, err := s.inner.Update(ctx, id, p)
	s.afterWrite(ctx, res, err)
	return res, err
}

func (s *Store) Delete(ctx context.Context, id models.RecipeID) (models.WriteResult, error) {
	res, err := s.inner.Delete(ctx, id)
	s.afterWrite(ctx, res, err)
	return res, err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

func (s *Store) afterWrite(ctx context.Context, res models.WriteResult, err error) {
	if err != nil || !res.Accepted() {
		return
	}
	s.group.Forget(listKey)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WarnContext(ctx, "recipe cache invalidate failed", "error", err)
	}
}

func toCache(list []*models.Recipe) []cache.CachedRecipe {
	out := make([]cache.CachedRecipe, 0, len(list))
	for _, r := range list {
		out = append(out, cache.CachedRecipe{
			ID:               r.ID.String(),
			DishName:         r.DishName,
			CookingDate:      r.CookingDate,
			DishImage:        r.DishImage,
			TasteRating:      r.TasteRating.Int(),
			DifficultyRating: r.DifficultyRating.Int(),
			Ingredients:      r.Ingredients.Clone(),
			Steps:            r.Steps,
			Notes:            r.Notes,
			CreatedAt:        r.CreatedAt,
		})
	}
	return out
}

func fromCache(list []cache.CachedRecipe) []*models.Recipe {
	out := make([]*models.Recipe, 0, len(list))
	for _, c := range list {
		out = append(out, &models.Recipe{
			ID:               models.RecipeID(c.ID),
			DishName:         c.DishName,
			CookingDate:      c.CookingDate,
			DishImage:        c.DishImage,
			TasteRating:      models.ClampRating(c.TasteRating),
			DifficultyRating: models.ClampRating(c.DifficultyRating),
			Ingredients:      models.Ingredients(c.Ingredients).Normalize(),
			Steps:            c.Steps,
			Notes:            c.Notes,
			CreatedAt:        c.CreatedAt,
		})
	}
	return out
}
