package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/recipelog/docs/swagger"
	"github.com/ghuser/recipelog/pkg/app"
	"github.com/ghuser/recipelog/pkg/cache"
	"github.com/ghuser/recipelog/pkg/config"
	"github.com/ghuser/recipelog/pkg/events"
	"github.com/ghuser/recipelog/pkg/httpx"
	"github.com/ghuser/recipelog/pkg/logger"
	"github.com/ghuser/recipelog/pkg/session"
	"github.com/ghuser/recipelog/pkg/telemetry"
	recipeApi "github.com/ghuser/recipelog/services/recipe/application/api"
	recipeSvcs "github.com/ghuser/recipelog/services/recipe/application/services"
)

// @title					recipelog API
// @version				1.0
// @description			Personal recipe log: record, edit, search and delete cooking entries.
// @contact.name			API Support
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Telemetry: OTel tracing + metrics
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	// Crash reporting: Sentry (optional; log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	redisClient := connectRedis(cfg, log)
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
	}

	eventBus := events.NewEventBus(log)
	defer eventBus.Close() //nolint:errcheck
	if err := recipeSvcs.RegisterSubscribers(ctx, eventBus, log); err != nil {
		log.Error("failed to subscribe to recipe events", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure
	}

	appConfig := &app.Application{
		Config:       cfg,
		Logger:       log,
		EventBus:     eventBus,
		Redis:        redisClient,
		SessionStore: newSessionStore(cfg, redisClient, log),
	}

	svcs, err := recipeSvcs.New(appConfig)
	if err != nil {
		log.Error("failed to wire recipe services", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	log.Info("record store ready", "backend", cfg.StoreBackend)

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		httpx.Middlewares{
			Recovery: logger.Recovery(log),
			Sentry:   telemetry.SentryMiddleware(),
			Tracing:  otelhttp.NewMiddleware(cfg.ServiceName),
			Logger:   logger.Middleware(log),
		},
	)

	checks := httpx.HealthChecks{Store: svcs.Recipe, EventBus: eventBus}
	if redisClient != nil {
		checks.Redis = redisClient
	}
	r.Get("/health", httpx.HealthHandler(checks))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	if err := recipeApi.PageRoutes(r, svcs, appConfig); err != nil {
		log.Error("failed to register pages", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, svcs)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	stop()
	log.Info("server stopped")
}

// registerRoutes mounts all JSON service routes under /api.
func registerRoutes(r chi.Router, svcs *recipeSvcs.Services) {
	recipeApi.RecipeRoutes(r, svcs)
}

// connectRedis connects when a component needs Redis. The local Redis slot
// cannot run without it; the remote read cache and Redis sessions degrade.
func connectRedis(cfg *config.Config, log logger.Logger) *cache.RedisClient {
	required := cfg.StoreBackend == config.StoreLocal && cfg.LocalSlotBackend == config.SlotRedis
	wanted := required || (cfg.StoreBackend == config.StoreRemote && cfg.RemoteCacheTTL > 0)
	if !wanted {
		return nil
	}
	client, err := cache.NewRedisClient(context.Background(), cfg.RedisURL)
	if err != nil {
		if required {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		log.Warn("redis unavailable, continuing without read cache", "error", err)
		return nil
	}
	log.Info("redis connected")
	return client
}

// newSessionStore keeps sessions in Redis when it is connected and in signed,
// encrypted cookies otherwise.
func newSessionStore(cfg *config.Config, redisClient *cache.RedisClient, log logger.Logger) sessions.Store {
	secureCookie := cfg.Environment == config.EnvProduction
	if redisClient != nil {
		log.Info("session store initialized", "backend", "redis")
		return session.NewRedisStore(
			redisClient.Client(),
			[]byte(cfg.SessionAuthKey),
			[]byte(cfg.SessionEncryptionKey),
			secureCookie,
		)
	}
	store := sessions.NewCookieStore([]byte(cfg.SessionAuthKey), []byte(cfg.SessionEncryptionKey))
	store.Options.HttpOnly = true
	store.Options.Secure = secureCookie
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.MaxAge = 86400
	log.Info("session store initialized", "backend", "cookie")
	return store
}
