// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/vitrine/internal/catalog"
	"github.com/tomtom215/vitrine/internal/logging"
	"github.com/tomtom215/vitrine/internal/metrics"
	"github.com/tomtom215/vitrine/internal/models"
)

// Login unlocks the management console. On success it returns a signed
// token the client presents on subsequent admin requests. Any failure
// collapses to a single 401 so the response does not reveal which field
// was wrong.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	if err := h.gate.Unlock(req.Username, req.Password); err != nil {
		logging.Warn().
			Str("username", sanitizeLogValue(req.Username)).
			Msg("Admin login rejected")
		respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error(), nil)
		return
	}

	token, err := h.jwtManager.GenerateToken(req.Username, models.RoleAdmin)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "TOKEN_GENERATION_FAILED", "Failed to generate session token", err)
		return
	}

	respondSuccess(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.jwtManager.Timeout()),
		Username:  req.Username,
		Role:      models.RoleAdmin,
	})
}

// RequireAdmin guards the console routes. It expects a Bearer token
// minted by Login and rejects anything else before the handler runs.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header with Bearer token required", nil)
			return
		}

		claims, err := h.jwtManager.ValidateToken(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired", nil)
			return
		}
		if claims.Role != models.RoleAdmin {
			respondError(w, http.StatusForbidden, "FORBIDDEN", "Admin role required", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UpsertContent creates or replaces a catalog item from the console
// form. An empty ID creates a new item with a generated ID.
func (h *Handler) UpsertContent(w http.ResponseWriter, r *http.Request) {
	var item models.ContentItem
	if !decodeJSON(w, r, &item) {
		return
	}

	if missing := missingContentFields(&item); len(missing) > 0 {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Missing required fields: "+strings.Join(missing, ", "), nil)
		return
	}
	if item.Type != models.ContentTypeMovie && item.Type != models.ContentTypeSeries {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Type must be movie or series", nil)
		return
	}

	saved := h.store.UpsertContent(item)

	metrics.UpdateCatalogGauges(len(h.store.ListContent()), len(h.store.ListProfiles()))
	if h.wsHub != nil {
		h.wsHub.BroadcastCatalogUpdated(len(h.store.ListContent()), "content")
	}

	respondSuccess(w, http.StatusOK, saved)
}

func missingContentFields(item *models.ContentItem) []string {
	var missing []string
	if strings.TrimSpace(item.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(item.Thumbnail) == "" {
		missing = append(missing, "thumbnail")
	}
	if strings.TrimSpace(item.Backdrop) == "" {
		missing = append(missing, "backdrop")
	}
	return missing
}

// DeleteContent removes a catalog item. Deleting an absent ID succeeds
// so repeated clicks in the console stay harmless.
func (h *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteContent(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete content", err)
		return
	}

	metrics.UpdateCatalogGauges(len(h.store.ListContent()), len(h.store.ListProfiles()))
	if h.wsHub != nil {
		h.wsHub.BroadcastCatalogUpdated(len(h.store.ListContent()), "content")
	}

	respondSuccess(w, http.StatusOK, nil)
}

// UpsertEpisode creates or replaces an episode inside a series. An
// empty episode ID creates a new episode with a generated ID.
func (h *Handler) UpsertEpisode(w http.ResponseWriter, r *http.Request) {
	seriesID := chi.URLParam(r, "id")

	var ep models.Episode
	if !decodeJSON(w, r, &ep) {
		return
	}
	if strings.TrimSpace(ep.Title) == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Missing required fields: title", nil)
		return
	}

	saved, err := h.store.UpsertEpisode(seriesID, ep)
	if err != nil {
		if err == catalog.ErrContentNotFound {
			respondError(w, http.StatusNotFound, "CONTENT_NOT_FOUND", "Series not found", nil)
			return
		}
		respondError(w, http.StatusBadRequest, "NOT_A_SERIES", err.Error(), nil)
		return
	}

	if h.wsHub != nil {
		h.wsHub.BroadcastCatalogUpdated(len(h.store.ListContent()), "episode")
	}
	respondSuccess(w, http.StatusOK, saved)
}

// DeleteEpisode removes one episode from a series. Absent series or
// episode IDs are no-ops.
func (h *Handler) DeleteEpisode(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteEpisode(chi.URLParam(r, "id"), chi.URLParam(r, "episodeId"))
	if h.wsHub != nil {
		h.wsHub.BroadcastCatalogUpdated(len(h.store.ListContent()), "episode")
	}
	respondSuccess(w, http.StatusOK, nil)
}

// SaveCatalog flushes the in-memory catalog to persistent storage.
// Content changes stay memory-only until the console asks for this.
func (h *Handler) SaveCatalog(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Save(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, "SAVE_FAILED", "Failed to persist catalog", err)
		return
	}

	count := len(h.store.ListContent())
	if h.wsHub != nil {
		h.wsHub.BroadcastDatabaseSaved(count)
	}
	logging.Info().Int("content_items", count).Msg("Catalog persisted")

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"saved":         true,
		"content_items": count,
	})
}

// Stats returns dashboard counters for the console.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := h.store.Stats()
	metrics.UpdateCatalogGauges(stats.TotalContent, stats.Profiles)
	respondSuccess(w, http.StatusOK, stats)
}

// UpsertProfile creates or replaces a viewing profile and persists the
// profile collection immediately.
func (h *Handler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var p models.UserProfile
	if !decodeJSON(w, r, &p) {
		return
	}
	p.ID = chi.URLParam(r, "id")
	if strings.TrimSpace(p.Name) == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Missing required fields: name", nil)
		return
	}

	if err := h.store.UpsertProfile(r.Context(), p); err != nil {
		if err == catalog.ErrProfileNotFound {
			respondError(w, http.StatusNotFound, "PROFILE_NOT_FOUND", "Profile not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "SAVE_FAILED", "Failed to persist profiles", err)
		return
	}

	metrics.UpdateCatalogGauges(len(h.store.ListContent()), len(h.store.ListProfiles()))
	respondSuccess(w, http.StatusOK, p)
}
