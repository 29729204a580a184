// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

// Package main is the entry point for the Vitrine server application.
//
// Vitrine is a self-hosted streaming storefront backend: a browsable
// movie and series catalog with viewing profiles, watchlists, playback
// history, a management console, and optional LLM-backed
// recommendations.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: settings from environment variables and config files (Koanf v2)
//  2. Storage: BadgerDB key-value store seeded with the demo catalog
//  3. Catalog store: in-memory working set over the persisted blobs
//  4. WebSocket hub: real-time catalog updates to connected clients
//  5. Authentication: console credential gate and JWT token manager
//  6. Recommendations: Gemini-backed client behind a circuit breaker
//  7. HTTP server: REST API under /api/v1 plus Prometheus metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file (config.yaml),
// built-in defaults.
//
// Required for the management console:
//   - JWT_SECRET: 32+ character secret for token signing
//   - ADMIN_USERNAME / ADMIN_PASSWORD
//
// Optional recommendation service:
//   - RECOMMEND_ENABLED=true
//   - RECOMMEND_API_KEY: Gemini API key
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections, drains in-flight requests, flushes the
// catalog to storage best-effort, and closes the database.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/vitrine/internal/api"
	"github.com/tomtom215/vitrine/internal/auth"
	"github.com/tomtom215/vitrine/internal/catalog"
	"github.com/tomtom215/vitrine/internal/config"
	"github.com/tomtom215/vitrine/internal/logging"
	"github.com/tomtom215/vitrine/internal/recommend"
	"github.com/tomtom215/vitrine/internal/session"
	"github.com/tomtom215/vitrine/internal/storage"
	"github.com/tomtom215/vitrine/internal/supervisor"
	"github.com/tomtom215/vitrine/internal/supervisor/services"
	ws "github.com/tomtom215/vitrine/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("storage_path", cfg.Storage.Path).
		Bool("in_memory", cfg.Storage.InMemory).
		Bool("cascade_delete", cfg.Catalog.CascadeDelete).
		Bool("recommend_enabled", cfg.Recommend.Enabled).
		Msg("Configuration loaded")

	store, err := storage.Open(cfg.Storage.Path, cfg.Storage.InMemory)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing storage")
		}
	}()
	logging.Info().Msg("Storage initialized")

	catalogStore, err := catalog.NewStore(context.Background(), store,
		catalog.WithCascadeDelete(cfg.Catalog.CascadeDelete))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load catalog")
	}

	gate := auth.NewGate(&cfg.Security)
	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize token manager")
	}

	var recommender recommend.Recommender = recommend.Disabled{}
	if cfg.Recommend.Enabled && cfg.Recommend.APIKey != "" {
		recommender = recommend.NewClient(&cfg.Recommend)
		logging.Info().Str("model", cfg.Recommend.Model).Msg("Recommendation client enabled")
	} else {
		logging.Info().Msg("Recommendations disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog.
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	wsHub := ws.NewHub()
	sessions := session.NewManager(catalogStore)

	handler := api.NewHandler(catalogStore, sessions, recommender, cfg, gate, jwtManager, wsHub)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	// Content edits are deliberately not flushed here: persistence of
	// content happens only on an explicit console save, so unsaved edits
	// are discarded across restarts.
	logging.Info().Msg("Application stopped gracefully")
}
