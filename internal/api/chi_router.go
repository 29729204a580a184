// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/vitrine/internal/middleware"
)

// Router wires the storefront handlers into the Chi routing tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router around the given handler set.
func NewRouter(handler *Handler) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddlewareFromSecurity(&handler.config.Security),
	}
}

// SetupChi configures all HTTP routes using the Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	// ========================
	// Health Endpoints
	// ========================
	// Permissive rate limiting so monitoring tools can poll frequently
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// ========================
	// Authentication Endpoints
	// ========================
	// Strictest rate limiting on login (5 attempts per 5 minutes)
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", router.handler.Login)
	})

	// ========================
	// Catalog Endpoints
	// ========================
	// Public storefront reads plus the WebSocket upgrade
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/", router.handler.Catalog)
		r.Get("/rows", router.handler.CatalogRows)
		r.Get("/search", router.handler.Search)
		r.Get("/{id}", router.handler.ContentByID)
		r.With(router.chiMiddleware.RateLimitWrite()).Post("/{id}/comments", router.handler.AddComment)
	})

	// ========================
	// Session Endpoints
	// ========================
	// One session per connected storefront client
	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Post("/", router.handler.StartSession)
		r.Get("/{id}", router.handler.GetSession)
		r.Delete("/{id}", router.handler.EndSession)
		r.Post("/{id}/profile", router.handler.SelectProfile)
		r.Post("/{id}/detail", router.handler.OpenDetail)
		r.Post("/{id}/play", router.handler.Play)
		r.Post("/{id}/admin", router.handler.OpenAdmin)
		r.Post("/{id}/close", router.handler.CloseOverlay)
		r.With(router.chiMiddleware.RateLimitRecommend()).Get("/{id}/recommendations", router.handler.Recommendations)
	})

	// ========================
	// Profile Endpoints
	// ========================
	r.Route("/api/v1/profiles", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/", router.handler.Profiles)
		r.Get("/{id}", router.handler.ProfileByID)
		r.Put("/{id}", router.handler.UpsertProfile)
		r.Get("/{id}/watchlist", router.handler.Watchlist)
		r.Get("/{id}/continue-watching", router.handler.ContinueWatching)
		r.With(router.chiMiddleware.RateLimitWrite()).Post("/{id}/watchlist/{contentId}", router.handler.ToggleWatchlist)
	})

	// ========================
	// WebSocket Endpoint
	// ========================
	r.With(router.chiMiddleware.RateLimit()).Get("/api/v1/ws", router.handler.WebSocket)

	// ========================
	// Admin Console Endpoints
	// ========================
	// Everything behind the token gate, write-tier rate limiting
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitWrite())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(router.handler.RequireAdmin)

		r.Get("/stats", router.handler.Stats)
		r.Post("/content", router.handler.UpsertContent)
		r.Delete("/content/{id}", router.handler.DeleteContent)
		r.Post("/content/{id}/episodes", router.handler.UpsertEpisode)
		r.Delete("/content/{id}/episodes/{episodeId}", router.handler.DeleteEpisode)
		r.Post("/save", router.handler.SaveCatalog)
	})

	// ========================
	// Prometheus Metrics
	// ========================
	r.With(router.chiMiddleware.RateLimitHealth()).Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
