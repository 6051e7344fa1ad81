package services

import (
	"fmt"
	"time"

	"github.com/ghuser/recipelog/pkg/app"
	"github.com/ghuser/recipelog/pkg/cache"
	"github.com/ghuser/recipelog/pkg/config"
	"github.com/ghuser/recipelog/pkg/errhttp"
	"github.com/ghuser/recipelog/services/recipe/domain/repositories"
	"github.com/ghuser/recipelog/services/recipe/infrastructure/persistence/cached"
	"github.com/ghuser/recipelog/services/recipe/infrastructure/persistence/local"
	"github.com/ghuser/recipelog/services/recipe/infrastructure/persistence/remote"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Recipe   *RecipeService
	Location *time.Location
	Errors   errhttp.Writer
}

// New wires the recipe services with the store selected by configuration.
func New(a *app.Application) (*Services, error) {
	store, err := NewStore(a)
	if err != nil {
		return nil, err
	}
	loc, err := a.Config.Location()
	if err != nil {
		return nil, err
	}
	var pub Publisher
	if a.EventBus != nil {
		pub = a.EventBus
	}
	return &Services{
		Recipe:   NewRecipeService(store, pub, a.Logger),
		Location: loc,
		Errors:   errhttp.Writer{Production: a.Config.Environment == config.EnvProduction},
	}, nil
}

// NewStore builds the record store for cfg.StoreBackend.
func NewStore(a *app.Application) (repositories.RecipeStore, error) {
	cfg := a.Config
	switch cfg.StoreBackend {
	case config.StoreRemote:
		client, err := remote.NewClient(remote.Options{
			Endpoint:     cfg.RemoteEndpoint,
			Timeout:      cfg.RemoteTimeout,
			OpaqueWrites: cfg.RemoteOpaqueWrites,
		}, a.Logger)
		if err != nil {
			return nil, fmt.Errorf("remote store: %w", err)
		}
		if cfg.RemoteCacheTTL > 0 && a.Redis != nil {
			return cached.NewStore(client, cache.NewRecipeCache(a.Redis, cfg.RemoteCacheTTL), a.Logger), nil
		}
		return client, nil

	case config.StoreLocal, "":
		var slot local.Slot
		switch cfg.LocalSlotBackend {
		case config.SlotMemory:
			slot = local.NewMemorySlot()
		default:
			if a.Redis == nil {
				return nil, fmt.Errorf("local store: LOCAL_SLOT_BACKEND=%s needs Redis", cfg.LocalSlotBackend)
			}
			slot = local.NewRedisSlot(a.Redis.Client(), cfg.LocalSlotKey)
		}
		return local.NewStore(slot, a.Logger), nil

	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}
