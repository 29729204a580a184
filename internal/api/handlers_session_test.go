// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

package api

import (
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/tomtom215/vitrine/internal/catalog"
	"github.com/tomtom215/vitrine/internal/models"
	"github.com/tomtom215/vitrine/internal/session"
)

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()
	_, router := newTestEnv(t, nil)

	s := startSession(t, router, "")
	if s.ID == "" {
		t.Fatal("Expected generated session ID")
	}
	if s.ActiveProfileID != "" {
		t.Errorf("Expected no active profile, got %q", s.ActiveProfileID)
	}
	if s.Overlay.Kind != session.OverlayNone {
		t.Errorf("Expected browsing overlay, got %q", s.Overlay.Kind)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/sessions/"+s.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/sessions/"+s.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/sessions/"+s.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected status %d after end, got %d", http.StatusNotFound, rec.Code)
	}

	// Ending twice stays harmless.
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/sessions/"+s.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected repeated delete to succeed, got %d", rec.Code)
	}
}

func TestSelectProfileUnknown(t *testing.T) {
	t.Parallel()
	_, router := newTestEnv(t, nil)

	s := startSession(t, router, "")
	rec := doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+s.ID+"/profile", map[string]string{"profileId": "p99"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
	if code := errorCode(t, rec); code != "PROFILE_NOT_FOUND" {
		t.Errorf("Expected code PROFILE_NOT_FOUND, got %q", code)
	}
}

func TestOverlayExclusivity(t *testing.T) {
	t.Parallel()
	_, router := newTestEnv(t, nil)

	s := startSession(t, router, "p2")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+s.ID+"/detail", map[string]string{"contentId": "3"})
	decodeData(t, rec, &s)
	if s.Overlay.Kind != session.OverlayDetail || s.Overlay.ContentID != "3" {
		t.Fatalf("Expected detail overlay on 3, got %+v", s.Overlay)
	}

	// Opening the admin console replaces the detail overlay. Zero the
	// struct first: omitempty fields absent from the response would
	// otherwise keep their stale values through json.Unmarshal.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+s.ID+"/admin", nil)
	s = session.Session{}
	decodeData(t, rec, &s)
	if s.Overlay.Kind != session.OverlayAdmin {
		t.Fatalf("Expected admin overlay, got %q", s.Overlay.Kind)
	}
	if s.Overlay.ContentID != "" {
		t.Errorf("Expected content ID cleared, got %q", s.Overlay.ContentID)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+s.ID+"/close", nil)
	decodeData(t, rec, &s)
	if s.Overlay.Kind != session.OverlayNone {
		t.Errorf("Expected browsing after close, got %q", s.Overlay.Kind)
	}
}

func TestPlayRecordsHistory(t *testing.T) {
	t.Parallel()
	_, router := newTestEnv(t, nil)

	s := startSession(t, router, "p2")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+s.ID+"/play", map[string]string{
		"contentId": "1",
		"episodeId": "1-e2",
	})
	decodeData(t, rec, &s)
	if s.Overlay.Kind != session.OverlayPlayer {
		t.Fatalf("Expected player overlay, got %q", s.Overlay.Kind)
	}
	if s.Overlay.EpisodeID != "1-e2" {
		t.Errorf("Expected episode 1-e2, got %q", s.Overlay.EpisodeID)
	}

	// Content 1 was already in p2's history, so it must not move.
	var profile models.UserProfile
	rec = doJSON(t, router, http.MethodGet, "/api/v1/profiles/p2", nil)
	decodeData(t, rec, &profile)
	if !reflect.DeepEqual(profile.History, []string{"1"}) {
		t.Errorf("Expected history unchanged [1], got %v", profile.History)
	}

	// A fresh title goes to the front.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+s.ID+"/play", map[string]string{"contentId": "3"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/v1/profiles/p2", nil)
	decodeData(t, rec, &profile)
	if !reflect.DeepEqual(profile.History, []string{"3", "1"}) {
		t.Errorf("Expected history [3 1], got %v", profile.History)
	}
}

func TestPlayWithoutProfile(t *testing.T) {
	t.Parallel()
	_, router := newTestEnv(t, nil)

	s := startSession(t, router, "")
	rec := doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+s.ID+"/play", map[string]string{"contentId": "1"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("Expected status %d, got %d", http.StatusConflict, rec.Code)
	}
	if code := errorCode(t, rec); code != "NO_ACTIVE_PROFILE" {
		t.Errorf("Expected code NO_ACTIVE_PROFILE, got %q", code)
	}
}

func TestProfilesList(t *testing.T) {
	t.Parallel()
	_, router := newTestEnv(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/profiles/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var profiles []models.UserProfile
	decodeData(t, rec, &profiles)
	if len(profiles) != 4 {
		t.Errorf("Expected 4 seeded profiles, got %d", len(profiles))
	}
}

func TestToggleWatchlistEndpoint(t *testing.T) {
	t.Parallel()
	_, router := newTestEnv(t, nil)

	// p3 starts empty: toggle on, then off again.
	rec := doJSON(t, router, http.MethodPost, "/api/v1/profiles/p3/watchlist/6", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var profile models.UserProfile
	decodeData(t, rec, &profile)
	if !profile.InWatchlist("6") {
		t.Fatalf("Expected 6 in watchlist, got %v", profile.Watchlist)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/profiles/p3/watchlist/6", nil)
	decodeData(t, rec, &profile)
	if profile.InWatchlist("6") {
		t.Errorf("Expected 6 removed after second toggle, got %v", profile.Watchlist)
	}
}

func TestToggleWatchlistSaveFailure(t *testing.T) {
	t.Parallel()
	_, router := newTestEnvPersist(t, nil, func(p catalog.Persistence) catalog.Persistence {
		return failingProfileSaves{Persistence: p, err: errors.New("disk full")}
	})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/profiles/p2/watchlist/1", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusInternalServerError, rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "SAVE_FAILED" {
		t.Errorf("Expected SAVE_FAILED, got %q", code)
	}
}

func TestPlaySaveFailure(t *testing.T) {
	t.Parallel()
	_, router := newTestEnvPersist(t, nil, func(p catalog.Persistence) catalog.Persistence {
		return failingProfileSaves{Persistence: p, err: errors.New("disk full")}
	})

	s := startSession(t, router, "p2")
	rec := doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+s.ID+"/play", map[string]string{"contentId": "3"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusInternalServerError, rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "SAVE_FAILED" {
		t.Errorf("Expected SAVE_FAILED, got %q", code)
	}
}

func TestToggleWatchlistUnknownContent(t *testing.T) {
	t.Parallel()
	_, router := newTestEnv(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/profiles/p3/watchlist/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestWatchlistView(t *testing.T) {
	t.Parallel()
	_, router := newTestEnv(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/profiles/p2/watchlist", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var items []models.ContentItem
	decodeData(t, rec, &items)
	if len(items) != 2 || items[0].ID != "2" || items[1].ID != "5" {
		t.Errorf("Expected watchlist [2 5], got %v", itemIDs(items))
	}
}

func TestContinueWatchingView(t *testing.T) {
	t.Parallel()
	_, router := newTestEnv(t, nil)

	// p1's history is [2 4]; the view is in catalog order, which happens
	// to match here.
	rec := doJSON(t, router, http.MethodGet, "/api/v1/profiles/p1/continue-watching", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var items []models.ContentItem
	decodeData(t, rec, &items)
	if len(items) != 2 || items[0].ID != "2" || items[1].ID != "4" {
		t.Errorf("Expected continue watching [2 4], got %v", itemIDs(items))
	}
}

func itemIDs(items []models.ContentItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}
