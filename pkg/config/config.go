package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
)

// Environment name constants used in ENVIRONMENT config field.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// Store backend names used in STORE_BACKEND.
const (
	StoreLocal  = "local"
	StoreRemote = "remote"
)

// Local slot backend names used in LOCAL_SLOT_BACKEND.
const (
	SlotRedis  = "redis"
	SlotMemory = "memory"
)

// Config holds all configuration for the application
type Config struct {
	// HTTP
	HTTPAddr string `conf:"default::8080,env:HTTP_ADDR"`

	// Record store
	StoreBackend     string `conf:"default:local,enum:local|remote,env:STORE_BACKEND"`
	LocalSlotBackend string `conf:"default:redis,enum:redis|memory,env:LOCAL_SLOT_BACKEND"`
	LocalSlotKey     string `conf:"default:recipes,env:LOCAL_SLOT_KEY"`

	// Remote spreadsheet endpoint; required when StoreBackend=remote.
	RemoteEndpoint     string        `conf:"env:REMOTE_ENDPOINT"`
	RemoteTimeout      time.Duration `conf:"default:15s,env:REMOTE_TIMEOUT"`
	RemoteOpaqueWrites bool          `conf:"default:true,env:REMOTE_OPAQUE_WRITES"`
	// RemoteCacheTTL enables the Redis read cache in front of the remote store; 0 disables it.
	RemoteCacheTTL time.Duration `conf:"default:1m,env:REMOTE_CACHE_TTL"`

	// Rendering
	DisplayTimezone string `conf:"default:Local,env:DISPLAY_TIMEZONE"`

	// Redis
	RedisURL string `conf:"default:redis://localhost:6379,env:REDIS_URL"`

	// Application
	LogLevel    string `conf:"default:info,env:LOG_LEVEL"`
	Environment string `conf:"default:development,enum:development|testing|production,env:ENVIRONMENT"`

	// Session
	SessionAuthKey       string `conf:"default:dev-auth-key-must-be-32-bytes!!!,env:SESSION_AUTH_KEY"`
	SessionEncryptionKey string `conf:"default:dev-encryption-key-32-bytes-long,env:SESSION_ENCRYPTION_KEY"`

	// CORS: comma-separated list of allowed origins; use * to allow all (dev only)
	CORSAllowedOrigins string `conf:"default:*,env:CORS_ALLOWED_ORIGINS"`

	// Observability
	ServiceName    string `conf:"default:recipelog,env:SERVICE_NAME"`
	ServiceVersion string `conf:"default:dev,env:SERVICE_VERSION"`
	OtelEndpoint   string `conf:"env:OTEL_ENDPOINT"`
	SentryDSN      string `conf:"env:SENTRY_DSN,noprint"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	var cfg Config
	_ = godotenv.Load()
	if _, err := conf.Parse("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field rules that struct tags cannot express.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.StoreBackend == StoreRemote {
		endpoint := strings.TrimSpace(cfg.RemoteEndpoint)
		if endpoint == "" {
			errs = append(errs, "REMOTE_ENDPOINT is required when STORE_BACKEND=remote")
		} else if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			errs = append(errs, "REMOTE_ENDPOINT must be an http(s) URL")
		}
		if cfg.RemoteTimeout <= 0 {
			errs = append(errs, "REMOTE_TIMEOUT must be positive")
		}
	}

	if strings.TrimSpace(cfg.LocalSlotKey) == "" && cfg.StoreBackend == StoreLocal {
		errs = append(errs, "LOCAL_SLOT_KEY must not be empty")
	}

	if _, err := cfg.Location(); err != nil {
		errs = append(errs, err.Error())
	}

	// AES accepts only these key sizes; empty disables cookie encryption.
	switch len(cfg.SessionEncryptionKey) {
	case 0, 16, 24, 32:
	default:
		errs = append(errs, fmt.Sprintf("SESSION_ENCRYPTION_KEY must be 16, 24 or 32 bytes (got %d)", len(cfg.SessionEncryptionKey)))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
}

// Location resolves DisplayTimezone. An empty value or "Local" yields time.Local.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.DisplayTimezone)
	if tz == "" || tz == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("DISPLAY_TIMEZONE %q: %w", tz, err)
	}
	return loc, nil
}

// ValidateForProduction enforces security requirements when ENVIRONMENT=production.
// Returns an error if any critical settings are missing or unsafe.
// No-ops for non-production environments.
func ValidateForProduction(cfg *Config) error {
	if cfg.Environment != EnvProduction {
		return nil
	}

	var errs []string

	if len(cfg.SessionAuthKey) < 32 {
		errs = append(errs, fmt.Sprintf(
			"SESSION_AUTH_KEY must be at least 32 bytes (got %d); generate with: openssl rand -base64 32",
			len(cfg.SessionAuthKey),
		))
	}

	if len(cfg.SessionEncryptionKey) < 16 {
		errs = append(errs, fmt.Sprintf(
			"SESSION_ENCRYPTION_KEY must be at least 16 bytes (got %d); generate with: openssl rand -base64 16",
			len(cfg.SessionEncryptionKey),
		))
	}

	if cfg.LogLevel == "debug" {
		errs = append(errs, "LOG_LEVEL must not be 'debug' in production (may leak sensitive data)")
	}

	if cfg.StoreBackend == StoreLocal && cfg.LocalSlotBackend == SlotMemory {
		errs = append(errs, "LOCAL_SLOT_BACKEND=memory loses every record on restart; use redis in production")
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("production config validation failed: %s", strings.Join(errs, "; "))
}
