// Package api provides the HTTP API server and handlers for MediaBase.
package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vitalii-holoienko/MediaBase/internal/auth"
	"github.com/vitalii-holoienko/MediaBase/internal/config"
	"github.com/vitalii-holoienko/MediaBase/internal/ratelimit"
	"github.com/vitalii-holoienko/MediaBase/internal/search"
	"github.com/vitalii-holoienko/MediaBase/internal/store"
	"github.com/vitalii-holoienko/MediaBase/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           store.DocumentStore
	index           *search.SearchIndex
	services        *Services
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	validate        *validation.Validator
	authRateLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, docs store.DocumentStore, index *search.SearchIndex, tokens *auth.TokenService, services *Services, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	router.Use(authMiddleware(tokens))

	s := &Server{
		store:           docs,
		index:           index,
		services:        services,
		router:          router,
		logger:          logger,
		validate:        validation.New(),
		authRateLimiter: ratelimit.New(20.0/60.0, 10),
	}
	router.Use(s.rateLimitAuth)

	humaConfig := huma.DefaultConfig(cfg.Server.Name, "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerListRoutes()
	s.registerRatingRoutes()
	s.registerStatsRoutes()
	s.registerHistoryRoutes()
	s.registerProfileRoutes()
	s.registerCatalogRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer builds an http.Server for this API using the configured timeouts.
func (s *Server) HTTPServer(cfg *config.Config) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      s,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}

// rateLimitAuth throttles credential endpoints by client IP. Other routes
// pass through untouched.
func (s *Server) rateLimitAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/v1/auth/") {
			next.ServeHTTP(w, r)
			return
		}

		ip := clientIP(r)
		if !s.authRateLimiter.Allow(ip) {
			s.logger.Warn("auth rate limit exceeded", "ip", ip, "path", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "60")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"code":"UNAVAILABLE","message":"Too many requests. Please try again later."}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
