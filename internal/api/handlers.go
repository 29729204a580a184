// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

// Package api provides the HTTP surface of the storefront.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, WebSocket upgrade
//   - handlers_helpers.go: shared response and validation helpers
//   - handlers_health.go: health and readiness endpoints
//   - handlers_catalog.go: catalog reads, rows, search, recommendations
//   - handlers_session.go: sessions, profiles, watchlist, playback
//   - handlers_admin.go: console login and the mutation surface
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/vitrine/internal/auth"
	"github.com/tomtom215/vitrine/internal/catalog"
	"github.com/tomtom215/vitrine/internal/config"
	"github.com/tomtom215/vitrine/internal/logging"
	"github.com/tomtom215/vitrine/internal/recommend"
	"github.com/tomtom215/vitrine/internal/session"
	ws "github.com/tomtom215/vitrine/internal/websocket"
)

// Handler carries the dependencies of every API endpoint.
type Handler struct {
	store       *catalog.Store
	sessions    *session.Manager
	recommender recommend.Recommender
	config      *config.Config
	gate        *auth.Gate
	jwtManager  *auth.JWTManager
	wsHub       *ws.Hub
	startTime   time.Time
}

// NewHandler wires the API handler.
func NewHandler(store *catalog.Store, sessions *session.Manager, recommender recommend.Recommender, cfg *config.Config, gate *auth.Gate, jwtManager *auth.JWTManager, wsHub *ws.Hub) *Handler {
	if recommender == nil {
		recommender = recommend.Disabled{}
	}
	return &Handler{
		store:       store,
		sessions:    sessions,
		recommender: recommender,
		config:      cfg,
		gate:        gate,
		jwtManager:  jwtManager,
		wsHub:       wsHub,
		startTime:   time.Now(),
	}
}

// WebSocket upgrades the connection and registers the client with the
// hub for catalog-change notifications.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		respondError(w, http.StatusServiceUnavailable, "WEBSOCKET_DISABLED", "WebSocket hub is not running", nil)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}

// checkWebSocketOrigin validates the Origin header against the
// configured CORS origins. Browser clients always send Origin; an
// absent header is rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if h.config == nil {
		return true
	}

	for _, allowed := range h.config.Security.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
