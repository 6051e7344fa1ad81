package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const recipeListKey = "recipes:list"

// ErrCacheMiss is returned by RecipeCache.GetList when nothing is cached.
var ErrCacheMiss = errors.New("cache miss")

// CachedRecipe is the read model stored in Redis.
type CachedRecipe struct {
	ID               string    `json:"id"`
	DishName         string    `json:"dish_name"`
	CookingDate      string    `json:"cooking_date"`
	DishImage        string    `json:"dish_image,omitempty"`
	TasteRating      int       `json:"taste_rating"`
	DifficultyRating int       `json:"difficulty_rating"`
	Ingredients      []string  `json:"ingredients"`
	Steps            string    `json:"steps"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at,omitzero"`
}

// RecipeCache holds the whole remote collection under one key.
// Key format: "recipes:list"
type RecipeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRecipeCache creates a RecipeCache whose entries expire after ttl.
func NewRecipeCache(r *RedisClient, ttl time.Duration) *RecipeCache {
	return &RecipeCache{client: r.Client(), ttl: ttl}
}

// GetList returns the cached collection or ErrCacheMiss.
func (c *RecipeCache) GetList(ctx context.Context) ([]CachedRecipe, error) {
	data, err := c.client.Get(ctx, recipeListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var out []CachedRecipe
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return out, nil
}

// SetList replaces the cached collection.
func (c *RecipeCache) SetList(ctx context.Context, recipes []CachedRecipe) error {
	if recipes == nil {
		recipes = []CachedRecipe{}
	}
	data, err := json.Marshal(recipes)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, recipeListKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached collection.
func (c *RecipeCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, recipeListKey).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}
