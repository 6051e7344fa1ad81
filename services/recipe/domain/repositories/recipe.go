package repositories

import (
	"context"

	"github.com/ghuser/recipelog/services/recipe/domain/models"
)

// RecipeStore is the persistence interface for the Recipe collection.
// The domain layer owns this interface; infrastructure implements it for the
// local slot and the remote record service.
type RecipeStore interface {
	// List returns the whole collection in store order.
	List(ctx context.Context) ([]*models.Recipe, error)

	// Get returns domain.ErrRecipeNotFound when no record has the given ID.
	Get(ctx context.Context, id models.RecipeID) (*models.Recipe, error)

	// Create stores a new record. A returned error means the write was never
	// attempted; a delivered write reports its outcome in the WriteResult.
	Create(ctx context.Context, d models.RecipeDraft) (models.WriteResult, error)

	Update(ctx context.Context, id models.RecipeID, p models.RecipePatch) (models.WriteResult, error)
	Delete(ctx context.Context, id models.RecipeID) (models.WriteResult, error)

	// Search matches the keyword against dish names and ingredients. An empty
	// keyword returns the whole collection.
	Search(ctx context.Context, keyword string) ([]*models.Recipe, error)

	Ping(ctx context.Context) error
}
