// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/vitrine/internal/catalog"
	"github.com/tomtom215/vitrine/internal/metrics"
	"github.com/tomtom215/vitrine/internal/models"
	"github.com/tomtom215/vitrine/internal/session"
)

// Catalog returns the full catalog snapshot in insertion order.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, h.store.ListContent())
}

// ContentByID returns one content item.
func (h *Handler) ContentByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.store.GetContent(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "CONTENT_NOT_FOUND", "Content not found", nil)
		return
	}
	respondSuccess(w, http.StatusOK, item)
}

// CatalogRows returns the precomputed storefront rows in one response:
// the hero pick, movies, series, popular and new releases, each derived
// fresh from the current snapshot.
func (h *Handler) CatalogRows(w http.ResponseWriter, r *http.Request) {
	rows := map[string]interface{}{
		"movies":       h.store.ByType(models.ContentTypeMovie),
		"series":       h.store.ByType(models.ContentTypeSeries),
		"popular":      h.store.Popular(),
		"new_releases": h.store.NewReleases(),
	}
	// The hero banner shows the first catalog entry.
	if all := h.store.ListContent(); len(all) > 0 {
		rows["featured"] = all[0]
	}
	respondSuccess(w, http.StatusOK, rows)
}

// Search matches the query against titles and genre tags. An empty
// query yields an empty result, not the full catalog.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	respondSuccess(w, http.StatusOK, h.store.Search(query))
}

// AddComment posts a comment from the session's active profile onto a
// content item. Matching the storefront's fire-and-forget submit, a
// missing content ID or blank body is accepted and dropped silently.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "id")

	var req struct {
		SessionID string `json:"sessionId" validate:"required"`
		Text      string `json:"text"`
		Rating    int    `json:"rating"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	profile, err := h.sessions.ActiveProfile(req.SessionID)
	if err != nil {
		respondSessionError(w, err)
		return
	}

	h.store.AddComment(contentID, models.Comment{
		UserID:   profile.ID,
		UserName: profile.Name,
		Text:     req.Text,
		Rating:   req.Rating,
	})

	if h.wsHub != nil {
		h.wsHub.BroadcastCatalogUpdated(len(h.store.ListContent()), "comment")
	}
	respondSuccess(w, http.StatusAccepted, nil)
}

// Recommendations runs the recommendation flow for a session: issue a
// generation, call the external service with the active profile's
// history titles and the catalog projection, and store the result if the
// generation is still current. The response carries the catalog items
// the surviving IDs resolve to; a failed external call yields an empty
// list with a success envelope.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	profile, err := h.sessions.ActiveProfile(sessionID)
	if err != nil {
		respondSessionError(w, err)
		return
	}

	gen, err := h.sessions.BeginRecommendation(sessionID)
	if err != nil {
		respondSessionError(w, err)
		return
	}

	titles, err := h.store.HistoryTitles(profile.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "PROFILE_ERROR", "Failed to resolve history", err)
		return
	}

	start := time.Now()
	ids := h.recommender.Recommend(r.Context(), titles, h.store.Projections())

	applied, err := h.sessions.CompleteRecommendation(sessionID, gen, ids)
	if err != nil {
		respondSessionError(w, err)
		return
	}
	if !applied {
		// A newer request was issued while this one was in flight; its
		// result wins. Return the session's current list.
		metrics.RecordRecommendation("stale", time.Since(start))
		current, err := h.sessions.Get(sessionID)
		if err != nil {
			respondSessionError(w, err)
			return
		}
		respondSuccess(w, http.StatusOK, h.store.ResolveIDs(current.Recommendations))
		return
	}

	result := "success"
	if len(ids) == 0 {
		result = "failure"
	}
	metrics.RecordRecommendation(result, time.Since(start))

	respondSuccess(w, http.StatusOK, h.store.ResolveIDs(ids))
}

// respondSessionError maps session, catalog and persistence failures
// onto the right status codes.
func respondSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrProfileNotFound):
		respondError(w, http.StatusNotFound, "PROFILE_NOT_FOUND", "Profile not found", nil)
	case errors.Is(err, catalog.ErrContentNotFound):
		respondError(w, http.StatusNotFound, "CONTENT_NOT_FOUND", "Content not found", nil)
	case errors.Is(err, session.ErrNoActiveProfile):
		respondError(w, http.StatusConflict, "NO_ACTIVE_PROFILE", "No active profile selected", nil)
	case errors.Is(err, catalog.ErrSaveFailed):
		respondError(w, http.StatusInternalServerError, "SAVE_FAILED", "Failed to persist profile changes", err)
	default:
		respondError(w, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found", err)
	}
}
