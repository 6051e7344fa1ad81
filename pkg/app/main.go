package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/recipelog/pkg/cache"
	"github.com/ghuser/recipelog/pkg/config"
	"github.com/ghuser/recipelog/pkg/events"
	"github.com/ghuser/recipelog/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Built once in cmd/api and passed to recipe services.New and api.PageRoutes.
//
// Logging: app.Logger is backed by a trace-aware handler; use slog's context
// methods and trace_id, span_id and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "recipe saved", "recipe_id", id)
//	app.Logger.ErrorContext(ctx, "remote store failed", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config       *config.Config
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient // nil when no component needs Redis
	SessionStore sessions.Store
}
