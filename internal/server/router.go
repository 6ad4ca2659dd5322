// Package server собирает HTTP API credadmin: chi роутер, middleware и handlers.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/iudanet/credadmin/internal/models"
	"github.com/iudanet/credadmin/internal/server/handlers"
	"github.com/iudanet/credadmin/internal/server/jwt"
	"github.com/iudanet/credadmin/internal/server/middleware"
	"github.com/iudanet/credadmin/internal/server/storage"
)

// Deps зависимости роутера
type Deps struct {
	Logger      *slog.Logger
	Credentials storage.CredentialStorage
	Users       storage.UserStorage
	DB          handlers.Pinger
	Tokens      *jwt.Service
	// LoginLimiter ограничивает POST /api/authenticate; nil отключает ограничение
	LoginLimiter *middleware.RateLimiter
	Version      string
	CORSOrigins  []string
}

// NewRouter creates the chi router serving the credadmin API.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingWithSkip(d.Logger, []string{"/api/health"}))
	r.Use(middleware.RecoveryMiddleware(d.Logger))

	if len(d.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: d.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
			// клиенту нужны alert заголовки, Location и общее число записей
			ExposedHeaders: []string{
				"Authorization",
				"Location",
				"X-Total-Count",
				"X-" + handlers.ApplicationName + "-alert",
				"X-" + handlers.ApplicationName + "-error",
				"X-" + handlers.ApplicationName + "-params",
			},
			MaxAge: 300,
		}))
	}

	healthHandler := handlers.NewHealthHandler(d.Logger, d.DB, d.Version)
	authHandler := handlers.NewAuthHandler(d.Logger, d.Users, d.Tokens)
	credentialHandler := handlers.NewCredentialHandler(d.Logger, d.Credentials, d.Users)
	userHandler := handlers.NewUserHandler(d.Logger, d.Users)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)

		r.Group(func(r chi.Router) {
			if d.LoginLimiter != nil {
				r.Use(middleware.RateLimitMiddleware(d.LoginLimiter))
			}
			r.Post("/authenticate", authHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(d.Logger, d.Tokens))
			r.Use(middleware.RequireAuthority(d.Logger, models.RoleUser))

			r.Route("/credentials", func(r chi.Router) {
				r.Get("/", credentialHandler.List)
				r.Post("/", credentialHandler.Create)
				r.Put("/", credentialHandler.Update)
				r.Get("/{id}", credentialHandler.Get)
				r.Delete("/{id}", credentialHandler.Delete)
			})
			r.Get("/_search/credentials", credentialHandler.Search)
			r.Get("/users", userHandler.List)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	return r
}
