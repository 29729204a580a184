// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

package api

import (
	"net/http"
	"time"
)

// HealthLive handles liveness probe requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests. Ready means the catalog
// store loaded; there is no external dependency to wait on, the
// recommendation service being down is normal operation.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Catalog store not loaded", nil)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"ready": true,
	})
}

// Health reports overall service health with component detail.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"status":        "healthy",
		"uptime":        time.Since(h.startTime).Seconds(),
		"content_items": len(h.store.ListContent()),
		"ws_clients":    h.wsClientCount(),
	})
}

func (h *Handler) wsClientCount() int {
	if h.wsHub == nil {
		return 0
	}
	return h.wsHub.GetClientCount()
}
