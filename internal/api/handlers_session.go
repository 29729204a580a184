// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/vitrine/internal/catalog"
	"github.com/tomtom215/vitrine/internal/metrics"
)

// StartSession creates a new storefront session in the profile-picker
// state.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusCreated, h.sessions.Start())
}

// GetSession returns the session's current state.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondSessionError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, s)
}

// EndSession drops the session. Unknown IDs succeed.
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	h.sessions.End(chi.URLParam(r, "id"))
	respondSuccess(w, http.StatusOK, nil)
}

// SelectProfile activates a profile for the session.
func (h *Handler) SelectProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProfileID string `json:"profileId" validate:"required"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	s, err := h.sessions.SelectProfile(chi.URLParam(r, "id"), req.ProfileID)
	if err != nil {
		respondSessionError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, s)
}

// OpenDetail opens the detail overlay for a content item.
func (h *Handler) OpenDetail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ContentID string `json:"contentId" validate:"required"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	s, err := h.sessions.OpenDetail(chi.URLParam(r, "id"), req.ContentID)
	if err != nil {
		respondSessionError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, s)
}

// Play enters playback, closing the detail overlay and recording the
// content in the active profile's history.
func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ContentID string `json:"contentId" validate:"required"`
		EpisodeID string `json:"episodeId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	s, err := h.sessions.Play(r.Context(), chi.URLParam(r, "id"), req.ContentID, req.EpisodeID)
	if err != nil {
		respondSessionError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, s)
}

// OpenAdmin switches the session to the admin console overlay. The
// credential gate is a separate concern handled by Login.
func (h *Handler) OpenAdmin(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.OpenAdmin(chi.URLParam(r, "id"))
	if err != nil {
		respondSessionError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, s)
}

// CloseOverlay returns the session to browsing.
func (h *Handler) CloseOverlay(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.CloseOverlay(chi.URLParam(r, "id"))
	if err != nil {
		respondSessionError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, s)
}

// Profiles lists all viewing profiles for the profile picker.
func (h *Handler) Profiles(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, h.store.ListProfiles())
}

// ProfileByID returns one profile.
func (h *Handler) ProfileByID(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetProfile(chi.URLParam(r, "id"))
	if err != nil {
		respondSessionError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, p)
}

// ToggleWatchlist flips a content ID in the profile's watchlist and
// returns the updated profile.
func (h *Handler) ToggleWatchlist(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")
	contentID := chi.URLParam(r, "contentId")

	if _, err := h.store.GetContent(contentID); errors.Is(err, catalog.ErrContentNotFound) {
		respondError(w, http.StatusNotFound, "CONTENT_NOT_FOUND", "Content not found", nil)
		return
	}

	p, err := h.store.ToggleWatchlist(r.Context(), profileID, contentID)
	if err != nil {
		respondSessionError(w, err)
		return
	}

	metrics.UpdateCatalogGauges(len(h.store.ListContent()), len(h.store.ListProfiles()))
	respondSuccess(w, http.StatusOK, p)
}

// Watchlist returns the catalog items saved in the profile's watchlist.
func (h *Handler) Watchlist(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.Watchlist(chi.URLParam(r, "id"))
	if err != nil {
		respondSessionError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, items)
}

// ContinueWatching returns the profile's history items in catalog order.
func (h *Handler) ContinueWatching(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ContinueWatching(chi.URLParam(r, "id"))
	if err != nil {
		respondSessionError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, items)
}
