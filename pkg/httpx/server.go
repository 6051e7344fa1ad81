package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

// ServerConfig holds the options for NewRouter.
type ServerConfig struct {
	ServiceName   string
	IsDevelopment bool
	// CORSAllowedOrigins is a comma-separated list of allowed origins.
	// Pass "*" (dev only) to allow all origins.
	CORSAllowedOrigins string
	// RequestsPerMinute caps requests per client IP. Zero means 100.
	RequestsPerMinute int
	// MaxBodyBytes caps request bodies. Zero means 10 MB.
	MaxBodyBytes int64
}

// Middlewares are the app-specific handlers NewRouter installs around the
// chi built-ins. Nil entries are skipped.
type Middlewares struct {
	Recovery func(http.Handler) http.Handler
	Sentry   func(http.Handler) http.Handler
	Tracing  func(http.Handler) http.Handler
	Logger   func(http.Handler) http.Handler
}

// NewRouter returns a chi.Mux with the standard middleware stack, outermost
// first: recovery, sentry, request id, tracing, request log, real ip, rate
// limit, CORS, body limit, 30s timeout, security headers.
func NewRouter(cfg ServerConfig, mw Middlewares) *chi.Mux {
	perMinute := cfg.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 100
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 10 << 20
	}
	sec := secure.New(SecurityOptions(cfg.IsDevelopment))

	stack := make([]func(http.Handler) http.Handler, 0, 11)
	add := func(m func(http.Handler) http.Handler) {
		if m != nil {
			stack = append(stack, m)
		}
	}
	add(mw.Recovery)
	add(mw.Sentry)
	add(middleware.RequestID)
	add(mw.Tracing)
	add(mw.Logger)
	add(middleware.RealIP)
	add(httprate.LimitByIP(perMinute, time.Minute))
	add(CORSMiddleware(cfg.CORSAllowedOrigins))
	add(RequestBodyLimit(maxBody))
	add(middleware.Timeout(30 * time.Second))
	add(sec.Handler)

	r := chi.NewRouter()
	r.Use(stack...)
	return r
}

// ContentSecurityPolicy allows same-origin scripts and styles. Dish images may
// come from any http or https URL the recipe form accepts.
const ContentSecurityPolicy = "default-src 'self'; img-src 'self' http: https: data:"

// SecurityOptions returns the unrolled/secure settings used by NewRouter.
func SecurityOptions(isDevelopment bool) secure.Options {
	return secure.Options{
		STSSeconds:            63072000,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: ContentSecurityPolicy,
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=(), usb=(), magnetometer=(), gyroscope=()",
		IsDevelopment:         isDevelopment,
	}
}

// CORSMiddleware returns a CORS handler restricted to the given allowed origins.
// allowedOrigins is a comma-separated list (e.g. "https://app.example.com,http://localhost:3000").
// Pass "*" to allow all origins (development only).
func CORSMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	origins := parseOrigins(allowedOrigins)
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id", "X-Requested-With"},
		ExposedHeaders:   []string{"Link", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// parseOrigins splits a comma-separated origins string into a slice, trimming spaces.
func parseOrigins(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p := strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// RequestBodyLimit returns middleware that caps the request body at maxBytes.
// Reads past the cap fail with *http.MaxBytesError.
func RequestBodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// NewServer returns an *http.Server with production-ready timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}
}
